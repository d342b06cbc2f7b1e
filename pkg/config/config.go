package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/limaJavier/semester-planner/pkg/model"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the file looked up when no explicit configuration file is given
var ConfigPath = "config.json"

var validStrategies = []string{"sequential", "parallel"}

type Config struct {
	MinUnits       float64                       `mapstructure:"min_units"`
	MaxUnits       float64                       `mapstructure:"max_units"`
	CourseCount    int                           `mapstructure:"course_count"`
	TopK           int                           `mapstructure:"top_k"`
	MaxCandidates  uint64                        `mapstructure:"max_candidates"`
	Strategy       string                        `mapstructure:"strategy"`
	Workers        int                           `mapstructure:"workers"`
	WeightProfile  string                        `mapstructure:"weight_profile"`
	WeightProfiles map[string]map[string]float64 `mapstructure:"weight_profiles"`
}

func Default() Config {
	return Config{
		MinUnits:      model.DefaultMinUnits,
		MaxUnits:      model.DefaultMaxUnits,
		CourseCount:   3,
		TopK:          model.DefaultTopK,
		MaxCandidates: model.DefaultMaxCandidates,
		Strategy:      "sequential",
		Workers:       0,
		WeightProfile: "standard",
		WeightProfiles: map[string]map[string]float64{
			"standard": {
				model.WeightInterest:   1,
				model.WeightDifficulty: 0.5,
				model.WeightProfessor:  0.2,
			},
			"progress": {
				model.WeightInterest: 1,
				model.WeightWorkload: 0.5,
				model.WeightMajor:    0.5,
			},
		},
	}
}

// Load reads a JSON (or YAML, by extension) configuration file. Keys absent from the file keep their default values and weight profiles are merged into the default ones
func Load(file string) (Config, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Config{}, err
	}

	var configMap map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &configMap)
	default:
		err = json.Unmarshal(bytes, &configMap)
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file \"%v\": %w", file, err)
	}

	config := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &config,
		ErrorUnused: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(configMap); err != nil {
		return Config{}, fmt.Errorf("cannot decode config file \"%v\": %w", file, err)
	}

	return config, config.Validate()
}

// LoadOrDefault loads the file if it exists, otherwise the default configuration is returned
func LoadOrDefault(file string) (Config, error) {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(file)
}

func (config Config) Validate() error {
	if config.MinUnits > config.MaxUnits {
		return fmt.Errorf("min_units (%v) must not exceed max_units (%v)", config.MinUnits, config.MaxUnits)
	} else if config.CourseCount < 0 {
		return fmt.Errorf("course_count must not be negative: %v", config.CourseCount)
	} else if config.TopK < 0 {
		return fmt.Errorf("top_k must not be negative: %v", config.TopK)
	} else if !slices.Contains(validStrategies, strings.ToLower(config.Strategy)) {
		return fmt.Errorf("%v is not a valid strategy", config.Strategy)
	} else if _, ok := config.WeightProfiles[config.WeightProfile]; !ok {
		return fmt.Errorf("weight profile \"%v\" is not defined: %v", config.WeightProfile, config.ProfileNames())
	}

	for _, name := range config.ProfileNames() {
		if _, err := model.WeightsFromMap(config.WeightProfiles[name]); err != nil {
			return fmt.Errorf("weight profile \"%v\": %w", name, err)
		}
	}
	return nil
}

func (config Config) ProfileNames() []string {
	names := lo.Keys(config.WeightProfiles)
	slices.Sort(names)
	return names
}

// Weights returns the weights of the named profile
func (config Config) Weights(profile string) (model.Weights, error) {
	values, ok := config.WeightProfiles[profile]
	if !ok {
		return model.Weights{}, fmt.Errorf("weight profile \"%v\" is not defined: %v", profile, config.ProfileNames())
	}
	return model.WeightsFromMap(values)
}

// Request builds a planning request carrying the configured bounds
func (config Config) Request() model.Request {
	request := model.DefaultRequest()
	request.MinUnits = config.MinUnits
	request.MaxUnits = config.MaxUnits
	request.CourseCount = config.CourseCount
	request.TopK = config.TopK
	request.MaxCandidates = config.MaxCandidates
	return request
}

// Planner builds the planner named by the configured strategy
func (config Config) Planner() model.Planner {
	if strings.ToLower(config.Strategy) == "parallel" {
		return model.NewParallelPlanner(config.Workers)
	}
	return model.NewSequentialPlanner()
}
