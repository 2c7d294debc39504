// Package transport moves the alias database file to and from Google Drive.
//
// Two implementations share the Transport interface:
//   - DriveTransport: authenticated Drive v3 API client built from a
//     service-account key; can download, overwrite and publish new versions
//   - HTTPTransport: anonymous direct-download link; download only
//
// New picks DriveTransport when a credentials file is present and falls
// back to HTTPTransport otherwise.
//
// Fetch downloads into a fresh temporary file and removes it again on any
// failure, so callers never see a partially written database.
package transport
