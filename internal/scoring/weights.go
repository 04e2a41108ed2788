package scoring

import (
	"errors"
	"fmt"
)

var ErrInvalidWeights = errors.New("invalid weights")

const (
	MinWeight = 0
	MaxWeight = 100
)

// WeightConfig holds the user's relative importance for each dimension, each
// an integer percentage in [0,100]. The four values are independent and do not
// need to sum to 100.
type WeightConfig struct {
	Performance      int `json:"performance" yaml:"performance"`
	Battery          int `json:"battery" yaml:"battery"`
	Portability      int `json:"portability" yaml:"portability"`
	PriceSensitivity int `json:"price_sensitivity" yaml:"price_sensitivity"`
}

// DefaultWeights returns the dashboard's initial weight configuration.
func DefaultWeights() WeightConfig {
	return WeightConfig{
		Performance:      50,
		Battery:          20,
		Portability:      30,
		PriceSensitivity: 50,
	}
}

// TechSum returns the total of the three technical weights.
func (w WeightConfig) TechSum() int {
	return w.Performance + w.Battery + w.Portability
}

// Validate checks that every weight lies in [0,100].
func (w WeightConfig) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"performance", w.Performance},
		{"battery", w.Battery},
		{"portability", w.Portability},
		{"price_sensitivity", w.PriceSensitivity},
	} {
		if f.v < MinWeight || f.v > MaxWeight {
			return fmt.Errorf("%w: %s=%d outside [%d,%d]", ErrInvalidWeights, f.name, f.v, MinWeight, MaxWeight)
		}
	}
	return nil
}
