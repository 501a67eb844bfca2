// Package detect is the best-effort industry classifier. It inspects
// payload shape and suggests an industry/profile pair for scope
// resolution. The suggestion carries no special trust; correctness never
// depends on it.
package detect

import (
	"github.com/adra-labs/adra/pkg/regime"
)

// Classifier suggests scope identity from payload shape.
type Classifier struct{}

// NewClassifier creates the heuristic classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Suggest maps payload shape to (industry, profile). ok is false when no
// heuristic fires; the resolver then proceeds with inference alone.
func (c *Classifier) Suggest(p regime.Payload) (string, string, bool) {
	action := regime.GetString(p, "action")
	meta := regime.Meta(p)

	switch {
	case regime.GetBool(meta, "is_vlop"), contentAction(action):
		if regime.GetString(meta, "jurisdiction") == "EU" {
			return "SOCIAL_MEDIA", "VLOP_SOCIAL_META", true
		}
		return "SOCIAL_MEDIA", "", true
	case regime.GetMap(p, "crypto_asset") != nil:
		return "FINTECH", "FINTECH_EU_CASP", true
	case commerceAction(action), regime.GetMap(p, "payment") != nil:
		if regime.GetString(meta, "jurisdiction") == "EU" {
			return "ECOMMERCE", "ECOM_EU_RETAIL", true
		}
		return "ECOMMERCE", "", true
	case financialAction(action):
		return "FINTECH", "", true
	}
	return "", "", false
}

func contentAction(action string) bool {
	switch action {
	case "POST_CONTENT", "SHARE_CONTENT", "PROMOTE_CONTENT", "LIVE_STREAM":
		return true
	}
	return false
}

func commerceAction(action string) bool {
	switch action {
	case "PURCHASE", "REFUND_REQUEST", "CHARGEBACK":
		return true
	}
	return false
}

func financialAction(action string) bool {
	switch action {
	case "TRANSFER", "PAYOUT", "WITHDRAWAL", "DEPOSIT", "EXCHANGE":
		return true
	}
	return false
}
