package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const uploadsSubdir = "uploads"

// Disk stores images on the local filesystem under the static root,
// so the HTTP server hands them out as plain files. URLs are
// root-relative paths.
type Disk struct {
	root string
}

// NewDisk creates a disk backend rooted at the given static directory.
func NewDisk(staticRoot string) *Disk {
	return &Disk{root: staticRoot}
}

// Upload writes the image under <root>/uploads. An existing file with
// the same name is never overwritten: a counter suffix is appended
// until a free name is found.
func (d *Disk) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(d.root, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	name := d.uniqueName(dir, filename)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return "/" + uploadsSubdir + "/" + name, nil
}

func (d *Disk) uniqueName(dir, filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	candidate := filename
	for counter := 2; ; counter++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", base, counter, ext)
	}
}
