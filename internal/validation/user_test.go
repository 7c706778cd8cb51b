package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserValidator() *UserValidator {
	return NewUserValidator("nyu.edu")
}

func TestValidateUpdateEmptyPayloadAccepted(t *testing.T) {
	require.Empty(t, newTestUserValidator().ValidateUpdate(map[string]any{}))
}

func TestValidateUpdateEmail(t *testing.T) {
	v := newTestUserValidator()

	cases := []struct {
		email string
		ok    bool
	}{
		{"student@nyu.edu", true},
		{"first.last@nyu.edu", true},
		{"student@gmail.com", false},
		{"student@nyu.edu.org", false},
		{"has space@nyu.edu", false},
		{"@nyu.edu", false},
	}
	for _, tc := range cases {
		violations := v.ValidateUpdate(map[string]any{"email": tc.email})
		if tc.ok {
			assert.Empty(t, violations, tc.email)
		} else {
			require.Len(t, violations, 1, tc.email)
			assert.Equal(t, "Email must be a valid NYU email address", violations[0])
		}
	}
}

func TestValidateUpdateAccountName(t *testing.T) {
	v := newTestUserValidator()

	violations := v.ValidateUpdate(map[string]any{"account_name": "a"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Account name must be between 2 and 50 characters", violations[0])

	assert.Empty(t, v.ValidateUpdate(map[string]any{"account_name": "ab"}))
	assert.Empty(t, v.ValidateUpdate(map[string]any{"account_name": strings.Repeat("n", 50)}))
	assert.NotEmpty(t, v.ValidateUpdate(map[string]any{"account_name": strings.Repeat("n", 51)}))
}

func TestValidateUpdateNyuID(t *testing.T) {
	v := newTestUserValidator()

	assert.Empty(t, v.ValidateUpdate(map[string]any{"nyu_id": "N1234567"}))

	for _, id := range []string{"N123456", "N12345678", "X1234567", "n1234567", "N123456a"} {
		violations := v.ValidateUpdate(map[string]any{"nyu_id": id})
		require.Len(t, violations, 1, id)
		assert.Equal(t, "NYU ID must be in the format N1234567", violations[0])
	}
}

func TestValidateUpdatePasswordAndBio(t *testing.T) {
	v := newTestUserValidator()

	violations := v.ValidateUpdate(map[string]any{"password": "12345"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Password must be at least 6 characters long", violations[0])

	assert.Empty(t, v.ValidateUpdate(map[string]any{"password": "123456"}))

	assert.Empty(t, v.ValidateUpdate(map[string]any{"bio": strings.Repeat("b", 280)}))
	violations = v.ValidateUpdate(map[string]any{"bio": strings.Repeat("b", 281)})
	require.Len(t, violations, 1)
	assert.Equal(t, "Bio must not exceed 280 characters", violations[0])
}

func TestValidateUpdateCollectsAllViolations(t *testing.T) {
	v := newTestUserValidator()

	violations := v.ValidateUpdate(map[string]any{
		"email":    "nope@gmail.com",
		"nyu_id":   "bogus",
		"password": "123",
	})
	assert.Len(t, violations, 3)
}

func TestValidateUpdateMistypedFieldIsViolation(t *testing.T) {
	v := newTestUserValidator()

	violations := v.ValidateUpdate(map[string]any{"bio": 12.5})
	require.Len(t, violations, 1)
	assert.Equal(t, "Bio must not exceed 280 characters", violations[0])
}
