package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRoommatePayload() map[string]any {
	return map[string]any{
		"title":        "Looking for a roommate",
		"description":  "Quiet grad student, no pets, tidy kitchen.",
		"placesToLive": "Brooklyn",
		"region":       "NYC",
		"year":         2.0,
	}
}

func TestValidateRoommateAccepted(t *testing.T) {
	require.Empty(t, ValidateRoommate(validRoommatePayload()))
}

func TestValidateRoommateCollectsAllViolations(t *testing.T) {
	violations := ValidateRoommate(map[string]any{})

	assert.Contains(t, violations, "Title is required")
	assert.Contains(t, violations, "Description is required")
	assert.Contains(t, violations, "Places to live preference is required")
	assert.Contains(t, violations, "Region is required")
	assert.Contains(t, violations, "Year is required")
	assert.Len(t, violations, 5)
}

func TestValidateRoommateLengthRules(t *testing.T) {
	payload := validRoommatePayload()
	payload["title"] = "ab"
	payload["description"] = "short"

	violations := ValidateRoommate(payload)
	assert.Contains(t, violations, "Title must be between 3 and 100 characters")
	assert.Contains(t, violations, "Description must be between 10 and 1000 characters")
	assert.Len(t, violations, 2)
}

func TestValidateRoommateYear(t *testing.T) {
	cases := []struct {
		name string
		year any
		ok   bool
	}{
		{"first year", 1.0, true},
		{"fourth year", 4.0, true},
		{"numeric string", "3", true},
		{"zero", 0.0, false}, // falsy: reported as missing
		{"too high", 5.0, false},
		{"negative", -1.0, false},
		{"fractional", 2.5, false},
		{"non numeric", "sophomore", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validRoommatePayload()
			payload["year"] = tc.year

			violations := ValidateRoommate(payload)
			if tc.ok {
				assert.Empty(t, violations)
				return
			}
			require.NotEmpty(t, violations)
			joined := strings.ToLower(strings.Join(violations, ", "))
			assert.Contains(t, joined, "year")
		})
	}
}

func TestValidateRoommateImagesMustBeSequence(t *testing.T) {
	payload := validRoommatePayload()
	payload["images"] = map[string]any{"url": "a.jpg"}

	violations := ValidateRoommate(payload)
	require.Len(t, violations, 1)
	assert.Equal(t, "Images must be provided as an array", violations[0])
}

func TestValidateRoommateLongTitleStillReportsYear(t *testing.T) {
	// rules evaluate independently: both violations collected
	payload := validRoommatePayload()
	payload["title"] = strings.Repeat("t", 101)
	payload["year"] = 9.0

	violations := ValidateRoommate(payload)
	assert.Contains(t, violations, "Title must be between 3 and 100 characters")
	assert.Contains(t, violations, "Year must be a number between 1 and 4")
}
