package qalampress

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// uploadsDir mirrors the subdirectory the disk media backend writes to.
const uploadsDir = "uploads"

func (a *App) setupStatic() {
	e := a.Echo

	// Disk media uploads are always served locally; remote backends
	// hand out absolute URLs and never hit this route.
	e.Static("/uploads", filepath.Join(a.Config.uploadsRoot(), uploadsDir))

	if a.Config.StaticRoot != "" {
		e.Static("/assets", filepath.Join(a.Config.StaticRoot, "assets"))
		return
	}
	sub, err := fs.Sub(embeddedFrontend, "web")
	if err != nil {
		panic(err)
	}
	e.GET("/assets/*", echo.WrapHandler(http.FileServer(http.FS(sub))))
}

// serveFrontendFile serves a page from the static root when one is
// configured and present, falling back to the embedded frontend.
func (a *App) serveFrontendFile(c echo.Context, name string) error {
	if a.Config.StaticRoot != "" {
		path := filepath.Join(a.Config.StaticRoot, name)
		if _, err := os.Stat(path); err == nil {
			return c.File(path)
		}
	}
	data, err := embeddedFrontend.ReadFile("web/" + name)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "page not found")
	}
	return c.HTMLBlob(http.StatusOK, data)
}

func (a *App) handleIndex(c echo.Context) error {
	return a.serveFrontendFile(c, "index.html")
}
