//go:build gcp

package federation

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSSink stores export payloads in a Google Cloud Storage bucket.
type GCSSink struct {
	client *storage.Client
	bucket string
	prefix string
}

// GCSSinkConfig configures a GCSSink.
type GCSSinkConfig struct {
	Bucket string
	Prefix string
}

// NewGCSSink creates a GCS-backed export sink using ADC credentials.
func NewGCSSink(ctx context.Context, cfg GCSSinkConfig) (*GCSSink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("federation: gcs sink requires a bucket")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("federation: gcs sink client: %w", err)
	}
	return &GCSSink{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *GCSSink) Name() string { return "gcs" }

// Dispatch writes the payload to <prefix><artifact_id>.json.
func (s *GCSSink) Dispatch(ctx context.Context, artifactID string, payload []byte) error {
	obj := s.client.Bucket(s.bucket).Object(s.prefix + artifactID + ".json")
	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(payload); err != nil {
		_ = w.Close()
		return fmt.Errorf("federation: gcs sink write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("federation: gcs sink close: %w", err)
	}
	return nil
}
