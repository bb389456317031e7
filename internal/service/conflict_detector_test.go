package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordConflictDetector_TimeConflict(t *testing.T) {
	detector := NewKeywordConflictDetector()

	conflicts := detector.Detect(
		"Student needs more_time on calculus fundamentals",
		"We should reduce the evening workload",
	)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "time_difficulty_conflict", conflicts[0].Type)
	assert.Equal(t, "more_time", conflicts[0].TeacherConcern)
	assert.Equal(t, "reduce", conflicts[0].ParentConcern)
	assert.Equal(t, "Conflicting views on more_time vs reduce", conflicts[0].Description)
}

func TestKeywordConflictDetector_DifficultyConflict(t *testing.T) {
	detector := NewKeywordConflictDetector()

	conflicts := detector.Detect(
		"Tasks are too difficult for the current level",
		"Keep the material easy for now",
	)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "difficult", conflicts[0].TeacherConcern)
	assert.Equal(t, "easy", conflicts[0].ParentConcern)
}

func TestKeywordConflictDetector_CaseInsensitive(t *testing.T) {
	detector := NewKeywordConflictDetector()

	conflicts := detector.Detect("The plan is too DIFFICULT", "Please keep it SIMPLE")
	require.Len(t, conflicts, 1)
	assert.Equal(t, "simple", conflicts[0].ParentConcern)
}

func TestKeywordConflictDetector_SwappedParties(t *testing.T) {
	detector := NewKeywordConflictDetector()

	conflicts := detector.Detect(
		"Student needs more_time on problem solving",
		"Please spend less_time on drills",
	)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "time_difficulty_conflict", conflicts[0].Type)
	assert.Equal(t, "more_time", conflicts[0].TeacherConcern)
	assert.Equal(t, "less_time", conflicts[0].ParentConcern)

	// The mirrored pairing is detected the same way.
	swapped := detector.Detect(
		"Please spend less_time on drills",
		"Student needs more_time on problem solving",
	)
	require.Len(t, swapped, 1)
	assert.Equal(t, "time_difficulty_conflict", swapped[0].Type)
	assert.Equal(t, "less_time", swapped[0].TeacherConcern)
	assert.Equal(t, "more_time", swapped[0].ParentConcern)
}

func TestKeywordConflictDetector_NoConflict(t *testing.T) {
	detector := NewKeywordConflictDetector()

	conflicts := detector.Detect(
		"The pacing looks appropriate",
		"We are happy with the current schedule",
	)
	assert.Empty(t, conflicts)
}

func TestKeywordConflictDetector_MultipleKeywords(t *testing.T) {
	detector := NewKeywordConflictDetector()

	conflicts := detector.Detect(
		"The work is difficult and needs more_time",
		"Make it easy and decrease the load",
	)
	assert.Len(t, conflicts, 2)
}
