package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/adra-labs/adra/pkg/federation"
)

// runExportCmd implements `adra export`.
//
// Re-dispatches a stored artifact through the federation gateway, or
// with --stdout prints the disclosure payload for the requested mode
// without touching any sink.
func runExportCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("export", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		path     string
		mode     string
		toStdout bool
	)

	cmd.StringVar(&path, "artifact", "", "Path to artifact JSON (REQUIRED)")
	cmd.StringVar(&mode, "mode", string(federation.ModeHashOnly), "Disclosure mode: HASH_ONLY, REDACTED, FULL")
	cmd.BoolVar(&toStdout, "stdout", false, "Print the export payload instead of dispatching to sinks")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if path == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --artifact is required")
		return 2
	}

	parsed := federation.ParseMode(mode)
	if parsed == federation.ModeOff {
		_, _ = fmt.Fprintf(stderr, "Error: nothing to export in mode %q\n", mode)
		return 2
	}

	a, err := loadArtifact(path)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	ctx := context.Background()

	if toStdout {
		payload, err := federation.BuildPayload(a, parsed)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		_, _ = fmt.Fprintln(stdout, string(payload))
		return 0
	}

	sinks, err := federation.SinksFromEnv(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if len(sinks) == 0 {
		_, _ = fmt.Fprintln(stderr, "Error: no export sinks configured (set ADRA_EXPORT_* variables)")
		return 2
	}

	gw := federation.NewGateway(parsed, sinks, nil)
	report := gw.Export(ctx, a)
	_, _ = fmt.Fprintf(stdout, "Export mode %s: %d dispatched, %d failed\n",
		report.Mode, report.Dispatched, report.Failed)
	if report.Failed > 0 {
		return 1
	}
	return 0
}
