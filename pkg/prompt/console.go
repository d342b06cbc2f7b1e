package prompt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/limaJavier/semester-planner/pkg/model"
)

type consoleProvider struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsoleProvider returns a provider that prompts for every value on out and reads the answers from in, one per line.
// Invalid answers are reported and prompted again
func NewConsoleProvider(in io.Reader, out io.Writer) InputProvider {
	return &consoleProvider{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (provider *consoleProvider) InterestProfile(topics []string) (model.InterestProfile, error) {
	fmt.Fprintln(provider.out, "Rate your interest in the following topics from 0 to 1 (e.g., 0.8):")

	profile := make(model.InterestProfile, len(topics))
	for _, topic := range topics {
		value, err := provider.ask(topic, func(value float64) error {
			if value < 0 || value > 1 {
				return model.InvalidInterestValueError{Topic: topic, Value: value}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		profile[topic] = value
	}
	return profile, nil
}

func (provider *consoleProvider) Weights(keys []string) (model.Weights, error) {
	// Unknown keys cannot be fixed by prompting again
	for _, key := range keys {
		if _, err := model.WeightsFromMap(map[string]float64{key: 0}); err != nil {
			return model.Weights{}, err
		}
	}

	fmt.Fprintln(provider.out, "Enter a weight for each scoring criterion (e.g., 1, 0.5 or -0.2):")

	values := make(map[string]float64, len(keys))
	for _, key := range keys {
		value, err := provider.ask(key, func(value float64) error {
			_, err := model.WeightsFromMap(map[string]float64{key: value})
			return err
		})
		if err != nil {
			return model.Weights{}, err
		}
		values[key] = value
	}
	return model.WeightsFromMap(values)
}

// Prompts until a number accepted by validate is read. Fails only when the input is exhausted or cannot be read
func (provider *consoleProvider) ask(label string, validate func(value float64) error) (float64, error) {
	for {
		fmt.Fprintf(provider.out, "%v: ", label)
		if !provider.scanner.Scan() {
			if err := provider.scanner.Err(); err != nil {
				return 0, fmt.Errorf("cannot read value for \"%v\": %w", label, err)
			}
			return 0, fmt.Errorf("cannot read value for \"%v\": %w", label, io.ErrUnexpectedEOF)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(provider.scanner.Text()), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			fmt.Fprintln(provider.out, "Invalid input. Enter a number.")
			continue
		}

		if err := validate(value); err != nil {
			if _, ok := err.(model.InvalidInterestValueError); ok {
				fmt.Fprintln(provider.out, "Please enter a number between 0 and 1.")
			} else {
				fmt.Fprintf(provider.out, "%v. Try again.\n", err)
			}
			continue
		}
		return value, nil
	}
}
