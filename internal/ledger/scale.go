package ledger

import "fmt"

// Scale defines the valid score range and the passing threshold.
type Scale struct {
	Name    string  `yaml:"name" json:"name"`
	Min     float64 `yaml:"min" json:"min"`
	Max     float64 `yaml:"max" json:"max"`
	Passing float64 `yaml:"passing" json:"passing"`
}

// Canonical scales.
var (
	ScaleFive    = Scale{Name: "0-5", Min: 0, Max: 5, Passing: 3}
	ScaleTen     = Scale{Name: "0-10", Min: 0, Max: 10, Passing: 6}
	ScaleHundred = Scale{Name: "0-100", Min: 0, Max: 100, Passing: 60}
)

// DefaultScale is the scale a new ledger starts with.
var DefaultScale = ScaleFive

// SupportedScales returns the scales SetScale accepts, in display order.
func SupportedScales() []Scale {
	return []Scale{ScaleFive, ScaleTen, ScaleHundred}
}

// LookupScale finds a supported scale by name.
func LookupScale(name string) (Scale, bool) {
	for _, s := range SupportedScales() {
		if s.Name == name {
			return s, true
		}
	}
	return Scale{}, false
}

// IsSupported reports whether s is exactly one of the supported scales.
func IsSupported(s Scale) bool {
	for _, candidate := range SupportedScales() {
		if candidate == s {
			return true
		}
	}
	return false
}

// Contains reports whether v lies within [Min, Max].
func (s Scale) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Clamp limits v to [Min, Max].
func (s Scale) Clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

func (s Scale) String() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%g-%g", s.Min, s.Max)
}
