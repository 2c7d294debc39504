package transport

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveTransport talks to the Drive v3 API.
type DriveTransport struct {
	files *drive.FilesService
}

// NewDriveFromFile builds a DriveTransport from a service-account JSON key.
func NewDriveFromFile(ctx context.Context, credentialsFile string) (*DriveTransport, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("drive authentication failed: %w", err)
	}
	return NewDrive(ctx, option.WithCredentials(creds))
}

// NewDrive builds a DriveTransport from arbitrary client options.
func NewDrive(ctx context.Context, opts ...option.ClientOption) (*DriveTransport, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create Drive service: %w", err)
	}
	return &DriveTransport{files: svc.Files}, nil
}

// Download streams the content of fileID into w.
func (t *DriveTransport) Download(ctx context.Context, fileID string, w io.Writer) error {
	resp, err := t.files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("download %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download %s: read body: %w", fileID, err)
	}
	return nil
}

// Upload overwrites fileID in place or creates a new file named opts.Name.
func (t *DriveTransport) Upload(ctx context.Context, r io.Reader, fileID string, opts UploadOptions) (string, error) {
	media := googleapi.ContentType(SQLiteMIMEType)

	if opts.Overwrite {
		f, err := t.files.Update(fileID, &drive.File{}).
			Media(r, media).
			Fields("id").
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("update %s: %w", fileID, err)
		}
		if f.Id == "" {
			return fileID, nil
		}
		return f.Id, nil
	}

	f, err := t.files.Create(&drive.File{Name: opts.Name}).
		Media(r, media).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("create %s: %w", opts.Name, err)
	}
	return f.Id, nil
}

// CanUpload reports true.
func (t *DriveTransport) CanUpload() bool { return true }
