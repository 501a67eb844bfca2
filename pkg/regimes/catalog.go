// Package regimes is the compile-time discovery table for the regime
// catalog. Each entry names an independently-developed regime pack and its
// registration entry point; registry Init walks this table, isolating
// per-pack failures.
package regimes

import (
	"github.com/adra-labs/adra/pkg/regime"
	"github.com/adra-labs/adra/pkg/regimes/aiact"
	"github.com/adra-labs/adra/pkg/regimes/airmf"
	"github.com/adra-labs/adra/pkg/regimes/aml"
	"github.com/adra-labs/adra/pkg/regimes/coppa"
	"github.com/adra-labs/adra/pkg/regimes/custom"
	"github.com/adra-labs/adra/pkg/regimes/dsa"
	"github.com/adra-labs/adra/pkg/regimes/gdpr"
	"github.com/adra-labs/adra/pkg/regimes/mica"
	"github.com/adra-labs/adra/pkg/regimes/pci"
	"github.com/adra-labs/adra/pkg/regimes/txnintegrity"
)

// Options configures optional catalog members.
type Options struct {
	// CustomRules supplies profile-declared CEL rules; when nil the
	// PROFILE_CUSTOM regime still registers but applies to nothing.
	CustomRules custom.RuleSource
}

// Providers returns the full discovery table in canonical catalog order.
// This order is the registry order, and therefore the finding order.
func Providers(opts Options) []regime.Provider {
	table := []regime.Provider{
		{Name: "gdpr", Register: gdpr.Register},
		{Name: "dsa", Register: dsa.Register},
		{Name: "aiact", Register: aiact.Register},
		{Name: "txnintegrity", Register: txnintegrity.Register},
		{Name: "aml", Register: aml.Register},
		{Name: "pci", Register: pci.Register},
		{Name: "mica", Register: mica.Register},
		{Name: "airmf", Register: airmf.Register},
		{Name: "coppa", Register: coppa.Register},
	}

	table = append(table, regime.Provider{
		Name: "custom",
		Register: func(r *regime.Registry) error {
			ev, err := custom.NewEvaluator(opts.CustomRules)
			if err != nil {
				return err
			}
			return ev.Register(r)
		},
	})

	return table
}

// DefaultRegistry builds and populates a registry from the discovery table.
func DefaultRegistry(opts Options) *regime.Registry {
	r := regime.NewRegistry()
	_ = r.Init(false, Providers(opts))
	return r
}
