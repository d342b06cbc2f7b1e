package prompt

import (
	"github.com/limaJavier/semester-planner/pkg/model"
	"github.com/samber/lo"
)

// InputProvider supplies the subjective inputs of a planning run
type InputProvider interface {
	// Returns the student's interest (within [0, 1]) for each of the given topics
	InterestProfile(topics []string) (model.InterestProfile, error)

	// Returns the weights for the given weight keys
	Weights(keys []string) (model.Weights, error)
}

type staticProvider struct {
	profile model.InterestProfile
	weights model.Weights
}

// NewStaticProvider returns a provider backed by programmatic values
func NewStaticProvider(profile model.InterestProfile, weights model.Weights) InputProvider {
	return &staticProvider{profile: profile, weights: weights}
}

// Topics absent from the profile are left out, which scores them as 0
func (provider *staticProvider) InterestProfile(topics []string) (model.InterestProfile, error) {
	profile := model.InterestProfile(lo.PickByKeys(provider.profile, topics))
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Keys absent from the requested ones are zeroed
func (provider *staticProvider) Weights(keys []string) (model.Weights, error) {
	return model.WeightsFromMap(lo.PickByKeys(provider.weights.Map(), keys))
}
