package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"{123e4567-e89b-12d3-a456-426614174000}",
		"",
	}
	for _, id := range valid {
		assert.True(t, IsValidUUID(id), id)
	}
	for _, id := range invalid {
		assert.False(t, IsValidUUID(id), id)
	}
}

func TestIsValidPeriod(t *testing.T) {
	for _, p := range []string{"01-2025", "06-2025", "12-1999"} {
		assert.True(t, IsValidPeriod(p), p)
	}
	for _, p := range []string{"6-2025", "13-2025", "00-2025", "2025-06", "06/2025", ""} {
		assert.False(t, IsValidPeriod(p), p)
	}
}

type sampleRequest struct {
	Name   string `json:"name" validate:"notblank,max=10"`
	Email  string `json:"email" validate:"required,email"`
	Period string `json:"period" validate:"period"`
	Status string `json:"status" validate:"oneof=active inactive"`
	Secret string `json:"-"`
}

func TestStruct_AggregatesAllFailures(t *testing.T) {
	errs := Struct(&sampleRequest{
		Name:   "   ",
		Email:  "nope",
		Period: "2025-06",
		Status: "paused",
	})
	require.Len(t, errs, 4)

	byField := errs.ToMap()
	assert.Equal(t, "name is required", byField["name"])
	assert.Equal(t, "email must be a valid email address", byField["email"])
	assert.Equal(t, "period must be in MM-YYYY format", byField["period"])
	assert.Equal(t, "status must be one of: active, inactive", byField["status"])
}

func TestStruct_Valid(t *testing.T) {
	errs := Struct(&sampleRequest{
		Name:   "Payroll",
		Email:  "hr@example.com",
		Period: "06-2025",
		Status: "active",
	})
	assert.Nil(t, errs)
	assert.NoError(t, errs.Err())
}

func TestValidationErrors_Add(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("base_salary", "base_salary must be greater than 0")
	errs.Add("total_deductions", "total_deductions must not be negative")

	err := errs.Err()
	require.Error(t, err)
	assert.Equal(t, "base_salary: base_salary must be greater than 0; total_deductions: total_deductions must not be negative", err.Error())
}
