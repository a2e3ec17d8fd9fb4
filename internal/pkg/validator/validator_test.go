package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employee_id", Message: "employee_id is required"},
		{Field: "date", Message: "date must be in YYYY-MM-DD format"},
	}

	assert.Equal(t, "employee_id: employee_id is required; date: date must be in YYYY-MM-DD format", errs.Error())
	assert.Equal(t, map[string]string{
		"employee_id": "employee_id is required",
		"date":        "date must be in YYYY-MM-DD format",
	}, errs.ToMap())
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2025-04-21"))
	assert.True(t, IsValidDate("2024-02-29"))
	assert.False(t, IsValidDate("2025-13-01"))
	assert.False(t, IsValidDate("2025-02-30"))
	assert.False(t, IsValidDate("21-04-2025"))
	assert.False(t, IsValidDate("2025/04/21"))
	assert.False(t, IsValidDate(""))
}

func TestIsValidClock(t *testing.T) {
	assert.True(t, IsValidClock("08:00"))
	assert.True(t, IsValidClock("23:59"))
	assert.True(t, IsValidClock("08:00:30"))
	assert.False(t, IsValidClock("24:00"))
	assert.False(t, IsValidClock("8時"))
	assert.False(t, IsValidClock(""))
}
