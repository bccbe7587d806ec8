package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAssignmentStatus(t *testing.T) {
	assert.True(t, IsValidAssignmentStatus(AssignmentStatusAssigned))
	assert.True(t, IsValidAssignmentStatus(AssignmentStatusInTransit))
	assert.True(t, IsValidAssignmentStatus(AssignmentStatusDelivered))
	assert.False(t, IsValidAssignmentStatus("Pending"))
	assert.False(t, IsValidAssignmentStatus(""))
}

func TestIsValidAccidentStatus(t *testing.T) {
	assert.True(t, IsValidAccidentStatus(AccidentReported))
	assert.True(t, IsValidAccidentStatus(AccidentUnderInvestigation))
	assert.True(t, IsValidAccidentStatus(AccidentResolved))
	assert.False(t, IsValidAccidentStatus("Closed"))
	assert.False(t, IsValidAccidentStatus(""))
}
