package qalampress

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "s3cret")
	// Blank out knobs the host environment might carry.
	for _, key := range []string{"PORT", "DATABASE_PATH", "MEDIA_BACKEND", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Errorf("Addr = %q, want :5000", cfg.Addr)
	}
	if cfg.MediaBackend != "disk" {
		t.Errorf("MediaBackend = %q, want disk", cfg.MediaBackend)
	}
	if cfg.DatabasePath != "data/blog.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestValidateRequiresAdminSecret(t *testing.T) {
	cfg := Config{MediaBackend: "disk"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for missing admin secret")
	}
}

func TestValidateBackendRequirements(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"disk needs nothing", Config{AdminSecret: "x", MediaBackend: "disk"}, true},
		{"s3 without bucket", Config{AdminSecret: "x", MediaBackend: "s3"}, false},
		{"s3 with bucket", Config{AdminSecret: "x", MediaBackend: "s3", S3Bucket: "b"}, true},
		{"http without url", Config{AdminSecret: "x", MediaBackend: "http"}, false},
		{"http with url", Config{AdminSecret: "x", MediaBackend: "http", MediaUploadURL: "https://img.example.com/upload"}, true},
		{"unknown backend", Config{AdminSecret: "x", MediaBackend: "ftp"}, false},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}
