package prompt

import (
	"fmt"
	"os"

	"github.com/limaJavier/semester-planner/pkg/model"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// InterestsFromFile reads an interest profile from a JSON or YAML mapping of topic to interest
func InterestsFromFile(file string) (model.InterestProfile, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	// JSON documents are valid YAML, hence a single decoder serves both formats
	var profileMap map[string]any
	if err := yaml.Unmarshal(bytes, &profileMap); err != nil {
		return nil, fmt.Errorf("cannot parse interests file \"%v\": %w", file, err)
	}

	var profile model.InterestProfile
	if err := mapstructure.Decode(profileMap, &profile); err != nil {
		return nil, fmt.Errorf("cannot decode interests file \"%v\": %w", file, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}
