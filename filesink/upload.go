package filesink

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/spf13/afero"
)

//go:generate mockgen -typed -package=filesink -destination=./mocks.go -source=./upload.go

// Uploader copies a completed file to remote storage.
type Uploader interface {
	Upload(ctx context.Context, fs afero.Fs, path, name string) error
}

// GCSUploader uploads files into a google cloud storage bucket.
type GCSUploader struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSUploader creates an uploader for a gs://bucket/prefix uri.
// Credentials are resolved by the storage client from the environment.
func NewGCSUploader(ctx context.Context, uri string) (*GCSUploader, error) {
	bucket, prefix, err := ParseGsURI(uri)
	if err != nil {
		return nil, fmt.Errorf("parse upload uri %v: %w", uri, err)
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gs client: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket, prefix: prefix}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, fs afero.Fs, path, name string) error {
	r, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("open file %v: %w", path, err)
	}
	defer r.Close()
	object := name
	if u.prefix != "" {
		object = u.prefix + "/" + name
	}
	w := u.client.Bucket(u.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("upload %v to gs://%s/%s: %w", path, u.bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize gs://%s/%s: %w", u.bucket, object, err)
	}
	return nil
}

func (u *GCSUploader) Close() error {
	return u.client.Close()
}

// ParseGsURI splits gs://bucket/path into bucket and path.
func ParseGsURI(gsPath string) (bucket, path string, err error) {
	parsed, err := url.Parse(gsPath)
	if err != nil {
		return "", "", err
	}
	if parsed.Scheme != "gs" {
		return "", "", fmt.Errorf("path %s must have 'gs' scheme", gsPath)
	}
	if parsed.Host == "" {
		return "", "", fmt.Errorf("path %s must have bucket", gsPath)
	}
	if parsed.Path == "" {
		return parsed.Host, "", nil
	}
	// remove leading "/" in URL path
	return parsed.Host, parsed.Path[1:], nil
}
