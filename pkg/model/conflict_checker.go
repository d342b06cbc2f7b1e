package model

import (
	"slices"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// conflictChecker is the extension point for meeting-time conflicts between the courses of a schedule
type conflictChecker interface {
	// Checks whether the courses cannot be taken together due to their meeting times
	Conflicts(courses []Course) (bool, error)
}

type noConflictChecker struct{}

func newNoConflictChecker() conflictChecker {
	return noConflictChecker{}
}

func (noConflictChecker) Conflicts([]Course) (bool, error) {
	return false, nil
}

// sectionConflictChecker takes a course's sections as alternative meeting slots. Courses without sections are unconstrained.
// A schedule is conflict-free iff every sectioned course can be given a distinct slot
type sectionConflictChecker struct{}

func newSectionConflictChecker() conflictChecker {
	return sectionConflictChecker{}
}

func (sectionConflictChecker) Conflicts(courses []Course) (bool, error) {
	sectioned := lo.Filter(courses, func(course Course, _ int) bool { return len(course.Sections) > 0 })
	if len(sectioned) < 2 {
		return false, nil
	}

	slots := lo.Uniq(lo.FlatMap(sectioned, func(course Course, _ int) []string { return course.Sections }))
	if len(slots) < len(sectioned) {
		return true, nil
	}

	// Build neighbors predicate based on the course's sections
	neighbors := func(courseAny any, slotAny any) (bool, error) {
		course := courseAny.(Course)
		slot := slotAny.(string)

		return slices.Contains(course.Sections, slot), nil
	}

	// Transform courses and slots to slices of any
	coursesAny, slotsAny := lo.Map(sectioned, func(course Course, _ int) any { return course }), lo.Map(slots, func(slot string, _ int) any { return slot })

	graph, err := bipartitegraph.NewBipartiteGraph(coursesAny, slotsAny, neighbors)
	if err != nil {
		return false, err
	}

	// Courses conflict when the matching is not a perfect one on the courses' side
	return len(graph.LargestMatching()) < len(sectioned), nil
}
