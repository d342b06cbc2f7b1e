package model

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

const (
	WeightInterest   = "interest"
	WeightDifficulty = "difficulty"
	WeightProfessor  = "professor"
	WeightWorkload   = "workload"
	WeightMajor      = "major"
)

// Weights tune the scoring function. A positive Difficulty or Workload weight lowers the score of demanding schedules
type Weights struct {
	Interest   float64 `mapstructure:"interest"`
	Difficulty float64 `mapstructure:"difficulty"`
	Professor  float64 `mapstructure:"professor"`
	Workload   float64 `mapstructure:"workload"`
	Major      float64 `mapstructure:"major"`
}

// WeightsFromMap builds weights from a mapping keyed by the recognized weight names. Missing keys are 0
func WeightsFromMap(values map[string]float64) (Weights, error) {
	weights := Weights{}
	keys := lo.Keys(values)
	slices.Sort(keys)
	for _, key := range keys {
		value := values[key]
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return Weights{}, InvalidWeightValueError{Key: key, Reason: fmt.Sprintf("must be a finite number: %v", value)}
		}

		switch key {
		case WeightInterest:
			weights.Interest = value
		case WeightDifficulty:
			weights.Difficulty = value
		case WeightProfessor:
			weights.Professor = value
		case WeightWorkload:
			weights.Workload = value
		case WeightMajor:
			weights.Major = value
		default:
			return Weights{}, InvalidWeightValueError{Key: key, Reason: "unknown weight"}
		}
	}
	return weights, nil
}

func (weights Weights) Map() map[string]float64 {
	return map[string]float64{
		WeightInterest:   weights.Interest,
		WeightDifficulty: weights.Difficulty,
		WeightProfessor:  weights.Professor,
		WeightWorkload:   weights.Workload,
		WeightMajor:      weights.Major,
	}
}

func (weights Weights) validate() error {
	_, err := WeightsFromMap(weights.Map())
	return err
}

// InterestProfile maps a topic to the student's interest in it, within [0, 1]
type InterestProfile map[string]float64

func (profile InterestProfile) Validate() error {
	topics := lo.Keys(profile)
	slices.Sort(topics)
	for _, topic := range topics {
		value := profile[topic]
		if math.IsNaN(value) || value < 0 || value > 1 {
			return InvalidInterestValueError{Topic: topic, Value: value}
		}
	}
	return nil
}

type scorer interface {
	// Returns the desirability of a schedule. The schedule's courses must belong to the catalog
	Score(schedule []string) float64
}

type scorerStandard struct {
	catalog   Catalog
	weights   Weights
	alignment map[string]float64 // Interest alignment per course
}

func newScorer(catalog Catalog, profile InterestProfile, weights Weights) scorer {
	alignment := make(map[string]float64, catalog.Len())
	for _, id := range catalog.ids {
		alignment[id] = interestAlignment(catalog.courses[id], profile)
	}

	return &scorerStandard{
		catalog:   catalog,
		weights:   weights,
		alignment: alignment,
	}
}

func (scorer *scorerStandard) Score(schedule []string) float64 {
	if len(schedule) == 0 {
		return 0
	}

	var alignment, difficulty, rating, workload, major float64
	for _, id := range schedule {
		course := scorer.catalog.courses[id]
		alignment += scorer.alignment[id]
		difficulty += course.Difficulty
		rating += course.ProfessorRating
		workload += course.Workload
		if course.Major {
			major++
		}
	}

	size := float64(len(schedule))
	return scorer.weights.Interest*(alignment/size) -
		scorer.weights.Difficulty*(difficulty/size) +
		scorer.weights.Professor*(rating/size) -
		scorer.weights.Workload*(workload/size) +
		scorer.weights.Major*(major/size)
}

// Sum over the course's topics of the topic's weight times the student's interest in it. Topics are visited in sorted order so that the result does not depend on map iteration
func interestAlignment(course Course, profile InterestProfile) float64 {
	topics := lo.Keys(course.Topics)
	slices.Sort(topics)

	alignment := 0.0
	for _, topic := range topics {
		alignment += course.Topics[topic] * profile[topic]
	}
	return alignment
}

// Score computes the desirability of a schedule:
//
//	interest·avg(alignment) - difficulty·avg(difficulty) + professor·avg(rating) - workload·avg(workload) + major·fraction(major)
//
// An empty schedule scores 0
func Score(catalog Catalog, schedule []string, profile InterestProfile, weights Weights) (float64, error) {
	for _, id := range schedule {
		if !catalog.Contains(id) {
			return 0, UnknownCourseError{Course: id, Context: fmt.Sprintf("schedule %v", schedule)}
		}
	}
	return newScorer(catalog, profile, weights).Score(schedule), nil
}
