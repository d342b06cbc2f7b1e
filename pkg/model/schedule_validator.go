package model

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	DefaultMinUnits float64 = 8
	DefaultMaxUnits float64 = 12
)

type scheduleValidator interface {
	// Checks whether the schedule's total units are within bounds, it holds no duplicates and its courses do not conflict
	IsValid(schedule []string) (bool, error)
}

type scheduleValidatorStandard struct {
	catalog            Catalog
	minUnits, maxUnits float64
	checker            conflictChecker
}

func newScheduleValidator(catalog Catalog, minUnits, maxUnits float64, checker conflictChecker) scheduleValidator {
	if checker == nil {
		checker = newNoConflictChecker()
	}
	return &scheduleValidatorStandard{
		catalog:  catalog,
		minUnits: minUnits,
		maxUnits: maxUnits,
		checker:  checker,
	}
}

func (validator *scheduleValidatorStandard) IsValid(schedule []string) (bool, error) {
	courses := make([]Course, 0, len(schedule))
	for _, id := range schedule {
		course, err := validator.catalog.Lookup(id)
		if err != nil {
			return false, UnknownCourseError{Course: id, Context: fmt.Sprintf("schedule %v", schedule)}
		}
		courses = append(courses, course)
	}

	if len(lo.Uniq(schedule)) != len(schedule) {
		return false, nil
	}

	total := totalUnits(courses)
	if total < validator.minUnits || total > validator.maxUnits {
		return false, nil
	}

	conflicts, err := validator.checker.Conflicts(courses)
	if err != nil {
		return false, err
	}
	return !conflicts, nil
}

func totalUnits(courses []Course) float64 {
	return lo.SumBy(courses, func(course Course) float64 { return course.Units })
}

// IsValid checks whether the schedule's total units lie within [minUnits, maxUnits] and the schedule holds no duplicates
func IsValid(catalog Catalog, schedule []string, minUnits, maxUnits float64) (bool, error) {
	return newScheduleValidator(catalog, minUnits, maxUnits, nil).IsValid(schedule)
}

// Returns a monotonic constraint for the combination generator that rejects partial schedules exceeding maxUnits
func unitsCapConstraint(catalog Catalog, maxUnits float64) func(combination []string) bool {
	return func(combination []string) bool {
		units := lo.SumBy(combination, func(id string) float64 { return catalog.courses[id].Units })
		return units <= maxUnits
	}
}
