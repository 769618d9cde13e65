package scoring

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	apperrors "github.com/ceylontrails/travelmatch/pkg/errors"
)

var defaultLodgingWeights = [NumLodgingComponents]float64{
	0.18, // interests
	0.05, // style
	0.10, // price
	0.13, // amenities
	0.15, // location
	0.08, // capacity
	0.18, // rating
	0.05, // popularity
	0.08, // origin
}

// weightSumTolerance is the relative tolerance on the weight sum before a warning is logged.
const weightSumTolerance = 0.01

// WeightProfile is an immutable lodging weight vector indexed by LodgingComponent.
type WeightProfile struct {
	weights [NumLodgingComponents]float64
}

func DefaultWeightProfile() WeightProfile {
	return WeightProfile{weights: defaultLodgingWeights}
}

// NewWeightProfile validates a caller-supplied weight vector. A vector of the
// wrong length or with negative or non-finite entries is rejected; a vector
// whose sum drifts from 1.0 is accepted with a warning on logger.
func NewWeightProfile(weights []float64, logger zerolog.Logger) (WeightProfile, error) {
	if len(weights) != NumLodgingComponents {
		return WeightProfile{}, apperrors.NewConfigurationError(
			fmt.Sprintf("lodging weights must have exactly %d values, got %d", NumLodgingComponents, len(weights)))
	}

	var p WeightProfile
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return WeightProfile{}, apperrors.NewConfigurationError(
				fmt.Sprintf("weight for %s must be a finite non-negative number, got %v", LodgingComponent(i), w))
		}
		p.weights[i] = w
	}

	sum := p.Sum()
	if math.Abs(sum-1) > weightSumTolerance*math.Max(1, math.Abs(sum)) {
		logger.Warn().
			Float64("weight_sum", sum).
			Floats64("weights", weights).
			Msg("lodging weights do not sum to 1.0; scores will be clamped to [0,1]")
	}
	return p, nil
}

func (p WeightProfile) Weight(c LodgingComponent) float64 {
	return p.weights[c]
}

// Weights returns a copy of the vector in component order.
func (p WeightProfile) Weights() []float64 {
	out := make([]float64, NumLodgingComponents)
	copy(out, p.weights[:])
	return out
}

func (p WeightProfile) Sum() float64 {
	sum := 0.0
	for _, w := range p.weights {
		sum += w
	}
	return sum
}

// Aggregate fills in RawTotal and Denominator on c and returns the weighted
// score clamped to [0,1].
func (p WeightProfile) Aggregate(c *LodgingComponents) float64 {
	total := 0.0
	for i, v := range c.Values {
		total += p.weights[i] * v
	}
	c.RawTotal = total
	c.Denominator = 1
	return clamp(total, 0, 1)
}
