package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// CompletedSet holds the identifiers of the courses already taken. The engine only reads it
type CompletedSet map[string]bool

func NewCompletedSet(courses ...string) CompletedSet {
	return CompletedSet(lo.SliceToMap(courses, func(course string) (string, bool) { return course, true }))
}

func (completed CompletedSet) Contains(course string) bool {
	return completed[course]
}

// Verify every completed course belongs to the catalog
func (completed CompletedSet) validate(catalog Catalog) error {
	courses := lo.Keys(completed)
	slices.Sort(courses)
	for _, course := range courses {
		if completed[course] && !catalog.Contains(course) {
			return UnknownCourseError{Course: course, Context: "completed courses"}
		}
	}
	return nil
}

// Satisfies checks whether the requirement holds for the completed courses
func Satisfies(requirement Requirement, completed CompletedSet) (bool, error) {
	switch node := requirement.(type) {
	case NoRequirement:
		return true, nil
	case LeafRequirement:
		return completed.Contains(node.Course), nil
	case AndRequirement:
		for _, operand := range node.Operands {
			satisfied, err := Satisfies(operand, completed)
			if err != nil {
				return false, err
			} else if !satisfied {
				return false, nil
			}
		}
		return true, nil
	case OrRequirement:
		for _, operand := range node.Operands {
			satisfied, err := Satisfies(operand, completed)
			if err != nil {
				return false, err
			} else if satisfied {
				return true, nil
			}
		}
		return false, nil
	}
	return false, MalformedRequirementError{Expression: requirement}
}

type requirementEvaluator interface {
	// Checks whether the requirement holds for the completed courses the evaluator is bound to
	Satisfies(requirement Requirement) (bool, error)

	// Checks whether the course's prerequisites hold for the completed courses the evaluator is bound to
	PrerequisitesMet(course string) (bool, error)
}

type requirementEvaluatorStandard struct {
	catalog   Catalog
	completed CompletedSet
	met       map[string]bool // Memoized PrerequisitesMet results, valid since both catalog and completed are immutable during a run
}

func newRequirementEvaluator(catalog Catalog, completed CompletedSet) requirementEvaluator {
	return &requirementEvaluatorStandard{
		catalog:   catalog,
		completed: completed,
		met:       make(map[string]bool),
	}
}

func (evaluator *requirementEvaluatorStandard) Satisfies(requirement Requirement) (bool, error) {
	return Satisfies(requirement, evaluator.completed)
}

func (evaluator *requirementEvaluatorStandard) PrerequisitesMet(course string) (bool, error) {
	if met, ok := evaluator.met[course]; ok {
		return met, nil
	}

	entry, err := evaluator.catalog.Lookup(course)
	if err != nil {
		return false, err
	}

	met, err := Satisfies(entry.Prerequisites, evaluator.completed)
	if err != nil {
		if malformed, ok := err.(MalformedRequirementError); ok && malformed.Course == "" {
			malformed.Course = course
			return false, malformed
		}
		return false, fmt.Errorf("cannot evaluate prerequisites of \"%v\": %w", course, err)
	}

	evaluator.met[course] = met
	return met, nil
}
