//go:build gcp

package federation

import (
	"context"
	"os"
)

func newGCSSinkFromEnv(ctx context.Context, bucket string) (Sink, error) {
	return NewGCSSink(ctx, GCSSinkConfig{
		Bucket: bucket,
		Prefix: os.Getenv("ADRA_EXPORT_GCS_PREFIX"),
	})
}
