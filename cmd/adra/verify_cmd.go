package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/adra-labs/adra/pkg/artifact"
)

// runVerifyCmd implements `adra verify`.
//
// Recomputes the content hash (and, for the built-in scheme, the
// signature) of a stored artifact and compares against its integrity
// token.
//
// Exit codes:
//
//	0 = verification passed
//	1 = verification failed
//	2 = runtime error
func runVerifyCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("verify", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var path string
	cmd.StringVar(&path, "artifact", "", "Path to artifact JSON (REQUIRED)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if path == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --artifact is required")
		return 2
	}

	a, err := loadArtifact(path)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if err := artifact.Verify(a); err != nil {
		_, _ = fmt.Fprintf(stdout, "❌ Artifact verification FAILED\n")
		_, _ = fmt.Fprintf(stdout, "Artifact: %s\n", a.ID)
		_, _ = fmt.Fprintf(stdout, "  - %v\n", err)
		return 1
	}

	_, _ = fmt.Fprintf(stdout, "✅ Artifact verification PASSED\n")
	_, _ = fmt.Fprintf(stdout, "Artifact: %s\n", a.ID)
	if a.Integrity != nil {
		_, _ = fmt.Fprintf(stdout, "Hash:     %s\n", a.Integrity.ContentHash)
		_, _ = fmt.Fprintf(stdout, "Scheme:   %s\n", a.Integrity.Algorithm)
	}
	return 0
}

func loadArtifact(path string) (*artifact.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a artifact.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return &a, nil
}
