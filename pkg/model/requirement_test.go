package model

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requirementCourseIds = []string{"MATH 51", "PHYSICS 7A", "BIOENG 11", "BIOLOGY 1A", "DATA C8"}

func TestDecodeRequirement(t *testing.T) {
	t.Run("Correct flow", func(t *testing.T) {
		scenarios := []struct {
			raw      any
			expected Requirement
		}{
			{nil, None()},
			{"none", None()},
			{"NONE", None()},
			{"MATH 51", Leaf("MATH 51")},
			{map[string]any{"and": []any{"MATH 51", "PHYSICS 7A"}}, And(Leaf("MATH 51"), Leaf("PHYSICS 7A"))},
			{map[string]any{"or": []any{"BIOLOGY 1A", "BIOENG 11"}}, Or(Leaf("BIOLOGY 1A"), Leaf("BIOENG 11"))},
			{map[string]any{"and": []any{}}, AndRequirement{Operands: []Requirement{}}},
			{[]any{"CS 61A", "BIOENG 11"}, And(Leaf("CS 61A"), Leaf("BIOENG 11"))},
			{
				map[string]any{"and": []any{"MATH 51", map[string]any{"or": []any{"BIOLOGY 1A", "BIOENG 11"}}}},
				And(Leaf("MATH 51"), Or(Leaf("BIOLOGY 1A"), Leaf("BIOENG 11"))),
			},
		}

		for _, scenario := range scenarios {
			//** Act
			requirement, err := DecodeRequirement(scenario.raw)

			//** Assert
			require.NoError(t, err)
			assert.Equal(t, scenario.expected, requirement)
		}
	})

	t.Run("Malformed flow", func(t *testing.T) {
		scenarios := []any{
			42,
			4.5,
			true,
			"",
			map[string]any{"xor": []any{"MATH 51"}},
			map[string]any{"and": "MATH 51"},
			map[string]any{"and": []any{"MATH 51"}, "or": []any{"DATA C8"}},
			map[string]any{},
			[]any{"MATH 51", nil},
			map[string]any{"or": []any{"MATH 51", 7}},
		}

		for _, raw := range scenarios {
			//** Act
			_, err := DecodeRequirement(raw)

			//** Assert
			var malformed MalformedRequirementError
			assert.True(t, errors.As(err, &malformed), "expected a malformed requirement error for %#v, got %v", raw, err)
		}
	})
}

func TestRequirementString(t *testing.T) {
	requirement := And(Leaf("MATH 51"), Or(Leaf("BIOLOGY 1A"), Leaf("BIOENG 11")))
	assert.Equal(t, "(MATH 51 AND (BIOLOGY 1A OR BIOENG 11))", requirement.String())
	assert.Equal(t, "none", None().String())
}

func TestSatisfies(t *testing.T) {
	taken := NewCompletedSet("MATH 51", "PHYSICS 7A", "BIOENG 11")

	t.Run("Examples", func(t *testing.T) {
		scenarios := []struct {
			requirement Requirement
			expected    bool
		}{
			{Leaf("MATH 51"), true},
			{Leaf("DATA C8"), false},
			{And(Leaf("MATH 51"), Leaf("PHYSICS 7A")), true},
			{And(Leaf("MATH 51"), Leaf("DATA C8")), false},
			{Or(Leaf("BIOLOGY 1A"), Leaf("BIOENG 11")), true},
			{Or(Leaf("BIOLOGY 1A"), Leaf("DATA C8")), false},
			{And(), true},
			{Or(), false},
			{None(), true},
			{And(Leaf("MATH 51"), Or(Leaf("BIOLOGY 1A"), And(Leaf("BIOENG 11"), None()))), true},
		}

		for _, scenario := range scenarios {
			satisfied, err := Satisfies(scenario.requirement, taken)
			require.NoError(t, err)
			assert.Equal(t, scenario.expected, satisfied, scenario.requirement.String())
		}
	})

	t.Run("Leaf law", func(t *testing.T) {
		random := rand.New(rand.NewPCG(1, 2))
		for range 100 {
			completed := randomCompletedSet(random)
			for _, course := range requirementCourseIds {
				satisfied, err := Satisfies(Leaf(course), completed)
				require.NoError(t, err)
				assert.Equal(t, completed.Contains(course), satisfied)
			}
		}
	})

	t.Run("And and Or laws", func(t *testing.T) {
		random := rand.New(rand.NewPCG(3, 4))
		for range 200 {
			//** Arrange
			completed := randomCompletedSet(random)
			first, second := randomRequirement(random, 3), randomRequirement(random, 3)

			//** Act
			firstSatisfied, err := Satisfies(first, completed)
			require.NoError(t, err)
			secondSatisfied, err := Satisfies(second, completed)
			require.NoError(t, err)
			andSatisfied, err := Satisfies(And(first, second), completed)
			require.NoError(t, err)
			orSatisfied, err := Satisfies(Or(first, second), completed)
			require.NoError(t, err)

			//** Assert
			assert.Equal(t, firstSatisfied && secondSatisfied, andSatisfied)
			assert.Equal(t, firstSatisfied || secondSatisfied, orSatisfied)
		}
	})

	t.Run("None law", func(t *testing.T) {
		random := rand.New(rand.NewPCG(5, 6))
		for range 50 {
			satisfied, err := Satisfies(None(), randomCompletedSet(random))
			require.NoError(t, err)
			assert.True(t, satisfied)
		}
	})

	t.Run("Malformed flow", func(t *testing.T) {
		scenarios := []Requirement{
			nil,
			And(Leaf("MATH 51"), nil),
			Or(Leaf("DATA C8"), nil),
		}

		for _, requirement := range scenarios {
			_, err := Satisfies(requirement, taken)

			var malformed MalformedRequirementError
			assert.True(t, errors.As(err, &malformed), "expected a malformed requirement error for %v", requirement)
		}
	})
}

func TestRequirementEvaluatorPrerequisitesMet(t *testing.T) {
	t.Run("Memoized flow", func(t *testing.T) {
		catalog, err := CatalogFromJson(catalogFile)
		require.NoError(t, err)
		evaluator := newRequirementEvaluator(catalog, NewCompletedSet("MATH 51", "BIOENG 11"))

		for range 2 {
			met, err := evaluator.PrerequisitesMet("BIOENG 103")
			require.NoError(t, err)
			assert.True(t, met)

			met, err = evaluator.PrerequisitesMet("STAT 134")
			require.NoError(t, err)
			assert.False(t, met)
		}
	})

	t.Run("Unknown course flow", func(t *testing.T) {
		catalog, err := CatalogFromJson(catalogFile)
		require.NoError(t, err)
		evaluator := newRequirementEvaluator(catalog, NewCompletedSet())

		_, err = evaluator.PrerequisitesMet("ASTRO 1")

		var unknown UnknownCourseError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "ASTRO 1", unknown.Course)
	})

	t.Run("Malformed flow", func(t *testing.T) {
		catalog, err := NewCatalog(
			Course{Id: "X", Units: 4, Prerequisites: And(Leaf("Y"), nil)},
			Course{Id: "Y", Units: 4},
		)
		require.NoError(t, err)
		evaluator := newRequirementEvaluator(catalog, NewCompletedSet("Y"))

		_, err = evaluator.PrerequisitesMet("X")

		var malformed MalformedRequirementError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "X", malformed.Course)
	})
}

func randomCompletedSet(random *rand.Rand) CompletedSet {
	completed := NewCompletedSet()
	for _, course := range requirementCourseIds {
		if random.IntN(2) == 0 {
			completed[course] = true
		}
	}
	return completed
}

func randomRequirement(random *rand.Rand, depth int) Requirement {
	kind := random.IntN(4)
	if depth == 0 {
		kind = random.IntN(2)
	}

	switch kind {
	case 0:
		return Leaf(requirementCourseIds[random.IntN(len(requirementCourseIds))])
	case 1:
		return None()
	}

	operands := make([]Requirement, random.IntN(4))
	for i := range operands {
		operands[i] = randomRequirement(random, depth-1)
	}
	if kind == 2 {
		return And(operands...)
	}
	return Or(operands...)
}

func ExampleSatisfies() {
	requirement := And(Leaf("MATH 51"), Or(Leaf("BIOLOGY 1A"), Leaf("BIOENG 11")))
	satisfied, _ := Satisfies(requirement, NewCompletedSet("MATH 51", "BIOENG 11"))
	fmt.Println(satisfied)
	// Output: true
}
