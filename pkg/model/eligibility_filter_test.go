package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligible(t *testing.T) {
	catalog, err := CatalogFromJson(catalogFile)
	require.NoError(t, err)
	spring := Spring

	scenarios := []struct {
		name      string
		completed CompletedSet
		term      *Term
		expected  []string
	}{
		{
			name:      "Nothing completed",
			completed: NewCompletedSet(),
			expected:  []string{"BIOENG 11", "BIOLOGY 1A", "CS 61A", "DATA C8", "MATH 51"},
		},
		{
			name:      "Some courses completed",
			completed: NewCompletedSet("MATH 51", "PHYSICS 7A", "BIOENG 11"),
			expected:  []string{"BIOENG 103", "BIOLOGY 1A", "CS 61A", "DATA C8"},
		},
		{
			name:      "Term filter",
			completed: NewCompletedSet(),
			term:      &spring,
			expected:  []string{"BIOLOGY 1A", "CS 61A", "DATA C8", "MATH 51"},
		},
		{
			name:      "Flat prerequisite list",
			completed: NewCompletedSet("CS 61A", "BIOENG 11", "MATH 51", "DATA C8"),
			term:      &spring,
			expected:  []string{"BIOENG 103", "BIOENG 131", "BIOLOGY 1A", "PHYSICS 7A", "STAT 134"},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			//** Act
			eligible, err := Eligible(catalog, scenario.completed, scenario.term)

			//** Assert
			require.NoError(t, err)
			assert.Equal(t, scenario.expected, eligible)
			for _, id := range eligible {
				assert.False(t, scenario.completed.Contains(id))
			}
		})
	}

	t.Run("Unknown completed course", func(t *testing.T) {
		_, err := Eligible(catalog, NewCompletedSet("MATH 51", "ASTRO 1"), nil)

		var unknown UnknownCourseError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "ASTRO 1", unknown.Course)
	})

	t.Run("Malformed requirement", func(t *testing.T) {
		catalog, err := NewCatalog(
			Course{Id: "X", Units: 4, Prerequisites: Or(Leaf("Y"), nil)},
			Course{Id: "Y", Units: 4},
		)
		require.NoError(t, err)

		_, err = Eligible(catalog, NewCompletedSet(), nil)

		var malformed MalformedRequirementError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "X", malformed.Course)
	})
}
