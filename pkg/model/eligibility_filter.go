package model

type eligibilityFilter interface {
	// Returns the sorted identifiers of the courses that can be taken next. If term is not nil only courses offered in that term are returned
	Eligible(term *Term) ([]string, error)
}

type eligibilityFilterStandard struct {
	catalog   Catalog
	completed CompletedSet
	evaluator requirementEvaluator
}

func newEligibilityFilter(catalog Catalog, completed CompletedSet, evaluator requirementEvaluator) eligibilityFilter {
	return &eligibilityFilterStandard{
		catalog:   catalog,
		completed: completed,
		evaluator: evaluator,
	}
}

func (filter *eligibilityFilterStandard) Eligible(term *Term) ([]string, error) {
	eligible := make([]string, 0, filter.catalog.Len())
	for _, id := range filter.catalog.ids {
		course := filter.catalog.courses[id]

		// Skip completed courses and courses not offered in the requested term
		if filter.completed.Contains(id) || (term != nil && !course.OfferedIn(*term)) {
			continue
		}

		met, err := filter.evaluator.PrerequisitesMet(id)
		if err != nil {
			return nil, err
		} else if met {
			eligible = append(eligible, id)
		}
	}
	return eligible, nil
}

// Eligible returns the sorted identifiers of the courses that are not completed, whose prerequisites hold and, when term is given, that are offered in that term
func Eligible(catalog Catalog, completed CompletedSet, term *Term) ([]string, error) {
	if err := completed.validate(catalog); err != nil {
		return nil, err
	}
	return newEligibilityFilter(catalog, completed, newRequirementEvaluator(catalog, completed)).Eligible(term)
}

