package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"time"
)

// ErrUploadUnsupported is returned by transports that cannot write back.
var ErrUploadUnsupported = errors.New("upload requires Drive API credentials")

// ErrInvalidURL is returned when a share link carries no /d/<id> segment.
var ErrInvalidURL = errors.New("invalid Google Drive URL: could not extract file ID")

// SQLiteMIMEType is the content type used for uploaded database files.
const SQLiteMIMEType = "application/x-sqlite3"

// Transport downloads and uploads one remote database object.
type Transport interface {
	// Download writes the content of the remote object to w.
	Download(ctx context.Context, fileID string, w io.Writer) error

	// Upload sends r to the remote store. With Overwrite set the object
	// fileID is replaced in place; otherwise a new object named Name is
	// created. Returns the ID of the object that now holds the content.
	Upload(ctx context.Context, r io.Reader, fileID string, opts UploadOptions) (string, error)

	// CanUpload reports whether Upload is supported.
	CanUpload() bool
}

// UploadOptions controls how Upload publishes content.
type UploadOptions struct {
	Overwrite bool
	Name      string
}

var fileIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

// ParseFileID extracts the file ID from a share link such as
// https://drive.google.com/file/d/<id>/view.
func ParseFileID(url string) (string, error) {
	m := fileIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	return m[1], nil
}

// VersionedName returns the object name for a newly published version,
// e.g. pokemons_20240102_150405.db.
func VersionedName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.db", prefix, t.Format("20060102_150405"))
}

// New returns a DriveTransport when credentialsFile names an existing file,
// and an anonymous HTTPTransport otherwise. An existing but unusable
// credentials file is an error, not a silent fallback.
func New(ctx context.Context, credentialsFile string, logger *slog.Logger) (Transport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err == nil {
			t, err := NewDriveFromFile(ctx, credentialsFile)
			if err != nil {
				return nil, err
			}
			logger.Debug("using Drive API transport", "credentials", credentialsFile)
			return t, nil
		}
	}
	logger.Debug("no credentials, using anonymous download transport")
	return NewHTTP(nil), nil
}
