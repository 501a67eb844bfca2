package regime

// Payload is the inbound request under evaluation. It is read-only to the
// kernel and to every regime resolver; nothing in this package mutates it.
type Payload = map[string]any

// GetString reads a string field from the payload, "" if absent or not a string.
func GetString(p Payload, key string) string {
	if p == nil {
		return ""
	}
	s, _ := p[key].(string)
	return s
}

// GetBool reads a boolean field, false if absent or not a bool.
func GetBool(p Payload, key string) bool {
	if p == nil {
		return false
	}
	b, _ := p[key].(bool)
	return b
}

// GetMap reads a nested section, nil if absent or not an object.
func GetMap(p Payload, key string) Payload {
	if p == nil {
		return nil
	}
	m, _ := p[key].(map[string]any)
	return m
}

// GetNumber reads a numeric field. JSON decoding yields float64; explicit
// ints from Go callers are accepted too.
func GetNumber(p Payload, key string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// RiskIndicators returns the conventional nested risk section.
func RiskIndicators(p Payload) Payload {
	return GetMap(p, "risk_indicators")
}

// Meta returns the conventional jurisdiction/metadata section.
func Meta(p Payload) Payload {
	return GetMap(p, "meta")
}
