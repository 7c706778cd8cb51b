package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Violation messages for profile update payloads.
const (
	msgUserEmailInvalid  = "Email must be a valid NYU email address"
	msgUserAccountLength = "Account name must be between 2 and 50 characters"
	msgUserNyuIDFormat   = "NYU ID must be in the format N1234567"
	msgUserPasswordShort = "Password must be at least 6 characters long"
	msgUserBioLength     = "Bio must not exceed 280 characters"
	msgUserGeneric       = "Error validating user data"
)

var nyuIDPattern = regexp.MustCompile(`^N\d{7}$`)

// UserValidator checks profile update payloads against the configured
// institutional email domain.
type UserValidator struct {
	emailPattern *regexp.Regexp
}

// NewUserValidator builds a validator restricted to the given email domain.
func NewUserValidator(emailDomain string) *UserValidator {
	pattern := fmt.Sprintf(`^[^\s@]+@%s$`, regexp.QuoteMeta(emailDomain))
	return &UserValidator{emailPattern: regexp.MustCompile(pattern)}
}

// ValidateUpdate checks a raw profile-update payload. Every field is
// optional; rules apply only to fields that are present, and all violations
// are collected.
func (v *UserValidator) ValidateUpdate(payload map[string]any) (violations []string) {
	defer func() {
		if r := recover(); r != nil {
			violations = []string{msgUserGeneric}
		}
	}()

	var errs []string

	if email := payload["email"]; present(email) {
		s, ok := stringValue(email)
		if !ok || !v.emailPattern.MatchString(s) {
			errs = append(errs, msgUserEmailInvalid)
		}
	}

	if accountName := payload["account_name"]; present(accountName) {
		if !lengthIn(accountName, 2, 50) {
			errs = append(errs, msgUserAccountLength)
		}
	}

	if nyuID := payload["nyu_id"]; present(nyuID) {
		s, ok := stringValue(nyuID)
		if !ok || !nyuIDPattern.MatchString(s) {
			errs = append(errs, msgUserNyuIDFormat)
		}
	}

	if password := payload["password"]; present(password) {
		s, ok := stringValue(password)
		if !ok || utf8.RuneCountInString(s) < 6 {
			errs = append(errs, msgUserPasswordShort)
		}
	}

	if bio := payload["bio"]; present(bio) {
		s, ok := stringValue(bio)
		if !ok || utf8.RuneCountInString(s) > 280 {
			errs = append(errs, msgUserBioLength)
		}
	}

	return errs
}
