package federation

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

// SinksFromEnv assembles the sink list from environment configuration.
// Unset backends are simply skipped; a misconfigured one is an error so
// deployments notice at startup rather than at first export.
func SinksFromEnv(ctx context.Context) ([]Sink, error) {
	var sinks []Sink

	if dir := os.Getenv("ADRA_EXPORT_DIR"); dir != "" {
		fs, err := NewFilesystemSink(dir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fs)
	}

	if endpoint := os.Getenv("ADRA_EXPORT_HTTPS_ENDPOINT"); endpoint != "" {
		rps, _ := strconv.ParseFloat(os.Getenv("ADRA_EXPORT_HTTPS_RPS"), 64)
		https, err := NewHTTPSSink(HTTPSSinkConfig{
			Endpoint:          endpoint,
			Issuer:            os.Getenv("ADRA_EXPORT_HTTPS_ISSUER"),
			Secret:            []byte(os.Getenv("ADRA_EXPORT_HTTPS_SECRET")),
			RequestsPerSecond: rps,
			Timeout:           10 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, https)
	}

	if bucket := os.Getenv("ADRA_EXPORT_S3_BUCKET"); bucket != "" {
		s3sink, err := NewS3Sink(ctx, S3SinkConfig{
			Bucket:   bucket,
			Region:   os.Getenv("ADRA_EXPORT_S3_REGION"),
			Endpoint: os.Getenv("ADRA_EXPORT_S3_ENDPOINT"),
			Prefix:   os.Getenv("ADRA_EXPORT_S3_PREFIX"),
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s3sink)
	}

	if bucket := os.Getenv("ADRA_EXPORT_GCS_BUCKET"); bucket != "" {
		gcs, err := newGCSSinkFromEnv(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("federation: gcs sink: %w", err)
		}
		sinks = append(sinks, gcs)
	}

	return sinks, nil
}
