package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/adra-labs/adra/pkg/authority"
	"github.com/adra-labs/adra/pkg/config"
	"github.com/adra-labs/adra/pkg/detect"
	"github.com/adra-labs/adra/pkg/drift"
	"github.com/adra-labs/adra/pkg/engine"
	"github.com/adra-labs/adra/pkg/federation"
	"github.com/adra-labs/adra/pkg/ledger"
	"github.com/adra-labs/adra/pkg/observability"
	"github.com/adra-labs/adra/pkg/profile"
	"github.com/adra-labs/adra/pkg/regime"
	"github.com/adra-labs/adra/pkg/regimes"
	"github.com/adra-labs/adra/pkg/scope"

	_ "github.com/lib/pq"  // Postgres driver
	_ "modernc.org/sqlite" // SQLite driver
)

// runEvaluateCmd implements `adra evaluate`.
//
// Reads one payload (JSON object) from --input or stdin, runs the full
// decision pipeline, and prints the frozen artifact.
//
// Exit codes:
//
//	0 = decision ALLOW
//	1 = decision DENY
//	2 = runtime or configuration error
func runEvaluateCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		input       string
		profilesDir string
		compact     bool
		noSuggest   bool
	)

	cmd.StringVar(&input, "input", "-", "Path to payload JSON ('-' for stdin)")
	cmd.StringVar(&profilesDir, "profiles", "", "Directory of profile_*.yaml documents (default: built-ins)")
	cmd.BoolVar(&compact, "compact", false, "Emit the artifact as compact JSON")
	cmd.BoolVar(&noSuggest, "no-suggest", false, "Disable best-effort industry detection")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	payload, err := readPayload(input)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	cfg := config.Load()
	if profilesDir == "" {
		profilesDir = cfg.ProfilesDir
	}

	profiles, err := loadProfiles(profilesDir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	reg := regimes.DefaultRegistry(regimes.Options{
		CustomRules: engine.ProfileRuleSource{Store: profiles},
	})
	resolver := scope.NewResolver(reg, profiles, scope.RoutingFromStore(profiles), true)

	ctx := context.Background()

	opts := []engine.Option{}
	if !noSuggest {
		opts = append(opts, engine.WithSuggester(detect.NewClassifier()))
	}

	if cfg.OTelEnabled {
		obsCfg := observability.DefaultConfig()
		obsCfg.ServiceVersion = engine.Version
		obs, oerr := observability.New(ctx, obsCfg)
		if oerr != nil {
			_, _ = fmt.Fprintf(stderr, "Error: observability: %v\n", oerr)
			return 2
		}
		defer func() { _ = obs.Shutdown(ctx) }()
		opts = append(opts, engine.WithRecorder(obs))
	}

	baselines, closeBaselines, err := openBaselines(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer closeBaselines()
	if baselines != nil {
		opts = append(opts, engine.WithBaselines(baselines))
	}

	kernel, err := engine.NewKernel(reg, resolver, opts...)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	artifactResult, evalErr := kernel.Evaluate(ctx, payload)
	if evalErr != nil && artifactResult == nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", evalErr)
		return 2
	}

	if led, closeLedger, lerr := openLedger(cfg); lerr != nil {
		_, _ = fmt.Fprintf(stderr, "Error: ledger: %v\n", lerr)
		return 2
	} else if led != nil {
		defer closeLedger()
		if rerr := led.Record(ctx, artifactResult); rerr != nil {
			_, _ = fmt.Fprintf(stderr, "Error: ledger: %v\n", rerr)
			return 2
		}
	}

	if cfg.ExportMode != federation.ModeOff {
		sinks, serr := federation.SinksFromEnv(ctx)
		if serr != nil {
			_, _ = fmt.Fprintf(stderr, "Error: export: %v\n", serr)
			return 2
		}
		gw := federation.NewGateway(cfg.ExportMode, sinks, nil)
		report := gw.Export(ctx, artifactResult)
		if report.Failed > 0 {
			_, _ = fmt.Fprintf(stderr, "Warning: %d export sink(s) failed\n", report.Failed)
		}
	}

	if err := printJSON(stdout, artifactResult, !compact); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if evalErr != nil {
		// Scope configuration failures surface as both the explicit
		// could-not-evaluate artifact (printed above) and a hard error.
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", evalErr)
		return 2
	}
	if artifactResult.Verdict != nil && artifactResult.Verdict.Decision == authority.Deny {
		return 1
	}
	return 0
}

func readPayload(input string) (regime.Payload, error) {
	var data []byte
	var err error
	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	var payload regime.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	return payload, nil
}

func loadProfiles(dir string) (*profile.Store, error) {
	if dir == "" {
		return profile.Builtin(), nil
	}
	return profile.LoadDir(dir)
}

// openBaselines wires the drift baseline store named by the config.
// An unknown backend is a configuration error, not a silent fallback.
func openBaselines(cfg *config.Config) (drift.BaselineStore, func(), error) {
	noop := func() {}
	switch cfg.DriftBackend {
	case "", "memory":
		return drift.NewMemoryStore(), noop, nil
	case "sqlite":
		dsn := cfg.DriftDSN
		if dsn == "" {
			dsn = "adra_drift.db"
		}
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, noop, fmt.Errorf("drift sqlite: %w", err)
		}
		store, err := drift.NewSQLiteStore(db)
		if err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("drift sqlite: %w", err)
		}
		return store, func() { _ = db.Close() }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return drift.NewRedisStore(client, 0), func() { _ = client.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown drift backend %q", cfg.DriftBackend)
	}
}

func openLedger(cfg *config.Config) (*ledger.Ledger, func(), error) {
	noop := func() {}
	switch cfg.LedgerDriver {
	case "", "memory":
		return ledger.New(nil), noop, nil
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.LedgerDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("sqlite: %w", err)
		}
		backend, err := ledger.NewSQLiteBackend(db)
		if err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("sqlite: %w", err)
		}
		return ledger.New(backend), func() { _ = db.Close() }, nil
	case "postgres":
		db, err := ledger.Open(cfg.LedgerDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres: %w", err)
		}
		backend, err := ledger.NewPostgresBackend(db)
		if err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("postgres: %w", err)
		}
		return ledger.New(backend), func() { _ = db.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown ledger driver %q", cfg.LedgerDriver)
	}
}

func printJSON(w io.Writer, v any, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
