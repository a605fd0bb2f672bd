package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"playbook/internal/metrics"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
)

const bannerContentType = "image/png"

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore keeps banner images in one Cloud Storage bucket.
type ObjectStore struct {
	objects *storage.ObjectsService
	bucket  string
	metrics *metrics.Recorder
}

func NewObjectStore(ctx context.Context, bucket string, recorder *metrics.Recorder, opts ...option.ClientOption) (*ObjectStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	srv, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Storage client: %w", err)
	}

	return &ObjectStore{
		objects: srv.Objects,
		bucket:  bucket,
		metrics: recorder,
	}, nil
}

// Exists reports whether the object is present.
func (s *ObjectStore) Exists(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	_, err := s.objects.Get(s.bucket, name).Context(ctx).Do()
	err = mapStorageError(err)
	s.record(err, start)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrObjectNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
}

// Upload writes a PNG object, replacing any previous content.
func (s *ObjectStore) Upload(ctx context.Context, name string, data []byte) error {
	start := time.Now()
	_, err := s.objects.Insert(s.bucket, &storage.Object{
		Name:        name,
		ContentType: bannerContentType,
	}).Media(bytes.NewReader(data), googleapi.ContentType(bannerContentType)).Context(ctx).Do()
	s.record(err, start)
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

// Download returns the object content.
func (s *ObjectStore) Download(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	data, err := s.download(ctx, name)
	s.record(err, start)
	return data, err
}

func (s *ObjectStore) download(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.objects.Get(s.bucket, name).Context(ctx).Download()
	if err != nil {
		return nil, mapStorageError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (s *ObjectStore) record(err error, start time.Time) {
	if errors.Is(err, ErrObjectNotFound) {
		err = nil
	}
	s.metrics.RecordExternalCall(metrics.ServiceObjectStore, metrics.Outcome(err, nil), time.Since(start))
}

func mapStorageError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return ErrObjectNotFound
	}
	return err
}
