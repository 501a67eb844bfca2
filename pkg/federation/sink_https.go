package federation

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"
)

// HTTPSSink POSTs export payloads to a remote collector. Requests carry a
// short-lived HS256 bearer token and are rate limited so a burst of
// decisions cannot flood the collector.
type HTTPSSink struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	issuer   string
	secret   []byte
}

// HTTPSSinkConfig configures an HTTPSSink.
type HTTPSSinkConfig struct {
	Endpoint string
	Issuer   string
	Secret   []byte
	// RequestsPerSecond bounds dispatch rate; 0 means 10/s.
	RequestsPerSecond float64
	Timeout           time.Duration
}

// NewHTTPSSink creates the sink.
func NewHTTPSSink(cfg HTTPSSinkConfig) (*HTTPSSink, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("federation: https sink requires an endpoint")
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSSink{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		issuer:   cfg.Issuer,
		secret:   cfg.Secret,
	}, nil
}

func (s *HTTPSSink) Name() string { return "https" }

// Dispatch POSTs the payload, waiting for rate-limit headroom first.
func (s *HTTPSSink) Dispatch(ctx context.Context, artifactID string, payload []byte) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("federation: https sink rate wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("federation: https sink request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if len(s.secret) > 0 {
		token, err := s.bearerToken(artifactID)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("federation: https sink post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("federation: https sink: collector returned %d", resp.StatusCode)
	}
	return nil
}

func (s *HTTPSSink) bearerToken(artifactID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   artifactID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("federation: https sink token: %w", err)
	}
	return token, nil
}
