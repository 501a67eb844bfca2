package profile

// Builtin returns a store pre-populated with the shipped profile
// documents. Deployments that mount their own profile directory override
// these with LoadDir.
func Builtin() *Store {
	s := NewStore()
	for _, doc := range builtinDocs() {
		d := doc
		_ = s.Put(&d)
	}
	return s
}

func builtinDocs() []Document {
	return []Document{
		{
			ProfileID:    "VLOP_SOCIAL_META",
			IndustryID:   "SOCIAL_MEDIA",
			Jurisdiction: "EU",
			EnabledRegimes: []string{
				"EU_GDPR", "EU_DSA", "EU_AI_ACT", "NIST_AI_RMF",
			},
		},
		{
			ProfileID:    "ECOM_EU_RETAIL",
			IndustryID:   "ECOMMERCE",
			Jurisdiction: "EU",
			EnabledRegimes: []string{
				"EU_GDPR", "TRANSACTION_INTEGRITY", "PCI_DSS", "NIST_AI_RMF",
			},
		},
		{
			ProfileID:    "FINTECH_EU_CASP",
			IndustryID:   "FINTECH",
			Jurisdiction: "EU",
			EnabledRegimes: []string{
				"EU_GDPR", "AML_CFT", "EU_MICA", "TRANSACTION_INTEGRITY",
			},
		},
		{
			ProfileID:    "KIDS_APP_US",
			IndustryID:   "SOCIAL_MEDIA",
			Jurisdiction: "US",
			EnabledRegimes: []string{
				"US_COPPA", "NIST_AI_RMF",
			},
		},
	}
}
