package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldRatingSequence(t *testing.T) {
	mean, count := 0.0, 0
	for _, vote := range []int{3, 4, 5, 2, 1} {
		mean, count = FoldRating(mean, count, vote)
	}
	assert.Equal(t, 3.0, mean)
	assert.Equal(t, 5, count)
}

func TestFoldRatingFirstVote(t *testing.T) {
	mean, count := FoldRating(0, 0, 4)
	assert.Equal(t, 4.0, mean)
	assert.Equal(t, 1, count)
}

func TestGradeForRank(t *testing.T) {
	expected := []string{"A", "A", "A", "B", "B", "B", "C", "C", "C", "D", "D"}
	for rank, grade := range expected {
		assert.Equal(t, grade, GradeForRank(rank), "rank %d", rank)
	}
}
