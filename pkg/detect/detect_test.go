package detect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adra-labs/adra/pkg/regime"
)

func TestSuggest(t *testing.T) {
	cases := []struct {
		name         string
		payload      regime.Payload
		wantIndustry string
		wantProfile  string
		wantOK       bool
	}{
		{
			name: "EU VLOP content action",
			payload: regime.Payload{
				"action": "POST_CONTENT",
				"meta":   map[string]any{"jurisdiction": "EU"},
			},
			wantIndustry: "SOCIAL_MEDIA",
			wantProfile:  "VLOP_SOCIAL_META",
			wantOK:       true,
		},
		{
			name:         "non-EU content action has no profile",
			payload:      regime.Payload{"action": "LIVE_STREAM"},
			wantIndustry: "SOCIAL_MEDIA",
			wantProfile:  "",
			wantOK:       true,
		},
		{
			name: "crypto asset maps to fintech CASP",
			payload: regime.Payload{
				"action":       "EXCHANGE",
				"crypto_asset": map[string]any{"type": "ART"},
			},
			wantIndustry: "FINTECH",
			wantProfile:  "FINTECH_EU_CASP",
			wantOK:       true,
		},
		{
			name: "EU purchase maps to retail",
			payload: regime.Payload{
				"action": "PURCHASE",
				"meta":   map[string]any{"jurisdiction": "EU"},
			},
			wantIndustry: "ECOMMERCE",
			wantProfile:  "ECOM_EU_RETAIL",
			wantOK:       true,
		},
		{
			name:         "transfer is fintech without profile",
			payload:      regime.Payload{"action": "TRANSFER"},
			wantIndustry: "FINTECH",
			wantProfile:  "",
			wantOK:       true,
		},
		{
			name:    "unrecognized shape yields nothing",
			payload: regime.Payload{"action": "LOGIN"},
			wantOK:  false,
		},
	}

	c := NewClassifier()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			industry, prof, ok := c.Suggest(tc.payload)
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.wantIndustry, industry)
			require.Equal(t, tc.wantProfile, prof)
		})
	}
}
