package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultDownloadURL is the anonymous direct-download endpoint.
const DefaultDownloadURL = "https://drive.google.com/uc"

// HTTPTransport downloads publicly shared files without credentials.
type HTTPTransport struct {
	Client  *http.Client
	BaseURL string
}

// NewHTTP creates an HTTPTransport. A nil client gets a 60-second timeout.
func NewHTTP(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &HTTPTransport{Client: client, BaseURL: DefaultDownloadURL}
}

// Download fetches <BaseURL>?id=<fileID>&export=download into w.
func (t *HTTPTransport) Download(ctx context.Context, fileID string, w io.Writer) error {
	q := url.Values{}
	q.Set("id", fileID)
	q.Set("export", "download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", "aliasdex")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download: read body: %w", err)
	}
	return nil
}

// Upload always fails; anonymous links are read-only.
func (t *HTTPTransport) Upload(context.Context, io.Reader, string, UploadOptions) (string, error) {
	return "", ErrUploadUnsupported
}

// CanUpload reports false.
func (t *HTTPTransport) CanUpload() bool { return false }
