package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	catalog, err := CatalogFromJson(catalogFile)
	require.NoError(t, err)

	scenarios := []struct {
		name     string
		schedule []string
		expected bool
	}{
		{"Below the minimum", []string{"MATH 51", "BIOENG 11"}, false},
		{"On the minimum", []string{"MATH 51", "CS 61A"}, true},
		{"Within bounds", []string{"MATH 51", "BIOENG 11", "BIOLOGY 1A"}, true},
		{"On the maximum", []string{"MATH 51", "CS 61A", "DATA C8"}, true},
		{"Above the maximum", []string{"MATH 51", "CS 61A", "DATA C8", "BIOENG 11"}, false},
		{"Duplicates", []string{"MATH 51", "MATH 51"}, false},
		{"Empty", []string{}, false},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			//** Act
			valid, err := IsValid(catalog, scenario.schedule, DefaultMinUnits, DefaultMaxUnits)

			//** Assert
			require.NoError(t, err)
			assert.Equal(t, scenario.expected, valid)
		})
	}

	t.Run("Custom bounds", func(t *testing.T) {
		valid, err := IsValid(catalog, []string{"MATH 51"}, 4, 4)
		require.NoError(t, err)
		assert.True(t, valid)

		valid, err = IsValid(catalog, []string{"BIOENG 11"}, 4, 4)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("Unknown course", func(t *testing.T) {
		_, err := IsValid(catalog, []string{"MATH 51", "ASTRO 1"}, DefaultMinUnits, DefaultMaxUnits)

		var unknown UnknownCourseError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "ASTRO 1", unknown.Course)
	})

	t.Run("Monotonic on the maximum", func(t *testing.T) {
		//** Arrange
		schedule := []string{"MATH 51", "CS 61A", "DATA C8"}
		valid, err := IsValid(catalog, schedule, DefaultMinUnits, DefaultMaxUnits)
		require.NoError(t, err)
		require.True(t, valid)

		//** Act & Assert
		for _, id := range catalog.Ids() {
			if id == "MATH 51" || id == "CS 61A" || id == "DATA C8" {
				continue
			}
			valid, err := IsValid(catalog, append([]string{id}, schedule...), DefaultMinUnits, DefaultMaxUnits)
			require.NoError(t, err)
			assert.False(t, valid, id)
		}
	})
}

func TestScheduleValidatorConflicts(t *testing.T) {
	//** Arrange
	catalog, err := CatalogFromJson(catalogFile)
	require.NoError(t, err)
	validator := newScheduleValidator(catalog, DefaultMinUnits, DefaultMaxUnits, newSectionConflictChecker())

	//** Act
	conflicting, err := validator.IsValid([]string{"MATH 51", "DATA C8"})
	require.NoError(t, err)
	compatible, err := validator.IsValid([]string{"CS 61A", "DATA C8"})
	require.NoError(t, err)

	//** Assert
	assert.False(t, conflicting)
	assert.True(t, compatible)
}

func TestUnitsCapConstraint(t *testing.T) {
	catalog, err := CatalogFromJson(catalogFile)
	require.NoError(t, err)
	constraint := unitsCapConstraint(catalog, DefaultMaxUnits)

	assert.True(t, constraint([]string{}))
	assert.True(t, constraint([]string{"MATH 51", "CS 61A", "DATA C8"}))
	assert.False(t, constraint([]string{"MATH 51", "CS 61A", "DATA C8", "BIOENG 11"}))
}
