package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qalamkar/qalampress"
)

func main() {
	cfg, err := qalampress.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := qalampress.New(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	go func() {
		if err := app.Start(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
