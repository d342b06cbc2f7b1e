package model

import "fmt"

// UnknownCourseError is returned when a course identifier referenced by a prerequisite, a schedule or a completed set is not part of the catalog
type UnknownCourseError struct {
	Course  string
	Context string // Where the identifier was referenced (e.g. "prerequisite of MATH 53")
}

func (err UnknownCourseError) Error() string {
	if err.Context == "" {
		return fmt.Sprintf("unknown course \"%v\"", err.Course)
	}
	return fmt.Sprintf("unknown course \"%v\" (%v)", err.Course, err.Context)
}

// MalformedRequirementError is returned when a prerequisite expression is neither a course identifier, an and-node, an or-node nor the none-marker
type MalformedRequirementError struct {
	Course     string
	Expression any
	Reason     string
}

func (err MalformedRequirementError) Error() string {
	message := fmt.Sprintf("malformed requirement %#v", err.Expression)
	if err.Course != "" {
		message = fmt.Sprintf("malformed requirement for course \"%v\": %#v", err.Course, err.Expression)
	}
	if err.Reason != "" {
		message += ": " + err.Reason
	}
	return message
}

type InvalidInterestValueError struct {
	Topic string
	Value float64
}

func (err InvalidInterestValueError) Error() string {
	return fmt.Sprintf("interest for topic \"%v\" must be between 0 and 1: %v", err.Topic, err.Value)
}

type InvalidWeightValueError struct {
	Key    string
	Reason string
}

func (err InvalidWeightValueError) Error() string {
	return fmt.Sprintf("invalid weight \"%v\": %v", err.Key, err.Reason)
}

// CandidateLimitError is returned when the candidate space exceeds the configured cap. Candidates are never silently truncated
type CandidateLimitError struct {
	Eligible   int
	Candidates uint64 // math.MaxUint64 when the count overflows
	Limit      uint64
}

func (err CandidateLimitError) Error() string {
	return fmt.Sprintf("%v eligible courses produce %v candidate schedules, which exceeds the limit of %v: narrow the size range or raise the limit", err.Eligible, err.Candidates, err.Limit)
}
