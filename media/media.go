// Package media stores uploaded post images. A backend takes the
// processed image bytes and returns a publicly dereferenceable URL —
// either a fully-qualified one (remote hosts) or a root-relative path
// (local disk); the blog service normalizes both forms before storing.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 80
)

// Uploader stores an image payload and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// ProcessImage decodes an image, caps its width at maxImageWidth
// preserving aspect ratio, and re-encodes it as JPEG. It returns the
// normalized filename and the encoded bytes.
func ProcessImage(r io.Reader, originalName string) (string, []byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return normalizeFilename(originalName), buf.Bytes(), nil
}

// normalizeFilename converts an uploaded filename to a URL-safe .jpg
// name. Names with no safe characters fall back to a timestamp.
func normalizeFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	slug := slugify(base)
	if slug == "" {
		slug = fmt.Sprintf("image-%d", time.Now().Unix())
	}
	return slug + ".jpg"
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
