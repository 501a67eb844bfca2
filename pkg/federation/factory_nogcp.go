//go:build !gcp

package federation

import (
	"context"
	"fmt"
)

func newGCSSinkFromEnv(_ context.Context, _ string) (Sink, error) {
	return nil, fmt.Errorf("gcs export is not enabled in this build (use -tags gcp)")
}
