package effectchain

import "math"

// Params holds the parsed parameters for a single chain node.
type Params struct {
	ID       string
	Type     string
	Bypassed bool
	Num      map[string]float64
	Str      map[string]string
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// GetStr extracts a string parameter, returning def if missing or empty.
func (p Params) GetStr(key, def string) string {
	if v := p.Str[key]; v != "" {
		return v
	}

	return def
}

// GetBool reports whether a numeric parameter is set to a non-zero value.
func (p Params) GetBool(key string) bool {
	return p.GetNum(key, 0) != 0
}
