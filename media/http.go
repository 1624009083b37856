package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTP stores images on a remote media host (a Cloudinary-style
// service) via a multipart POST and returns the URL the host assigns.
type HTTP struct {
	client    *resty.Client
	uploadURL string
}

// uploadResponse covers the field names the known hosts answer with.
type uploadResponse struct {
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
}

// NewHTTP creates an HTTP media backend posting to uploadURL. apiKey
// may be empty for hosts using unsigned upload presets.
func NewHTTP(uploadURL, apiKey string) *HTTP {
	client := resty.New().SetTimeout(30 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &HTTP{client: client, uploadURL: uploadURL}
}

// Upload posts the image to the remote host and returns the hosted URL.
func (h *HTTP) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var result uploadResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetFileReader("image", filename, r).
		SetResult(&result).
		Post(h.uploadURL)
	if err != nil {
		return "", fmt.Errorf("post to media host: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("media host returned %s", resp.Status())
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	if url == "" {
		return "", fmt.Errorf("media host response missing url")
	}
	return url, nil
}
