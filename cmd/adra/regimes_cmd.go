package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/adra-labs/adra/pkg/engine"
	"github.com/adra-labs/adra/pkg/regimes"
)

// runRegimesCmd lists the registered regimes in catalog order.
func runRegimesCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("regimes", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var jsonOutput bool
	cmd.BoolVar(&jsonOutput, "json", false, "Output as JSON")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	reg := regimes.DefaultRegistry(regimes.Options{})

	type row struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Domain       string `json:"domain"`
		Framework    string `json:"framework"`
		Kind         string `json:"kind"`
		Jurisdiction string `json:"jurisdiction"`
		Enforceable  bool   `json:"enforceable"`
	}

	rows := make([]row, 0, reg.Len())
	for _, id := range reg.IDs() {
		spec, ok := reg.Get(id)
		if !ok {
			continue
		}
		rows = append(rows, row{
			ID:           spec.ID,
			Name:         spec.Name,
			Domain:       spec.Domain,
			Framework:    spec.Framework,
			Kind:         string(spec.Kind),
			Jurisdiction: spec.Jurisdiction,
			Enforceable:  spec.Enforceable,
		})
	}

	if jsonOutput {
		if err := printJSON(stdout, rows, true); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		return 0
	}

	_, _ = fmt.Fprintf(stdout, "%sRegistered regimes (engine %s):%s\n", ColorBold, engine.Version, ColorReset)
	for _, r := range rows {
		enforce := " "
		if r.Enforceable {
			enforce = "*"
		}
		_, _ = fmt.Fprintf(stdout, "  %s %s%-24s%s %-14s %-6s %s\n",
			enforce, ColorGreen, r.ID, ColorReset, r.Jurisdiction, r.Kind, r.Name)
	}
	_, _ = fmt.Fprintln(stdout, "\n  * = enforceable at transaction scope")
	return 0
}
