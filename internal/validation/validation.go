// File: internal/validation/validation.go

// Package validation implements the pure form-validation rules for the login
// and signup flows, including the derived password-strength score. Everything
// here is synchronous and side-effect free: callers get back a field->message
// map and treat an empty map as the only success signal.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names used as keys in the returned error maps. They match the JSON
// field names of the corresponding request DTOs.
const (
	FieldFullName        = "full_name"
	FieldPhoneNumber     = "phone_number"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldCompanyID       = "company_id"
	FieldAgreeToTerms    = "agree_to_terms"
)

// MinSignupStrength is the minimum password-strength score accepted at signup,
// on top of the 8-character minimum.
const MinSignupStrength = 3

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)
)

// LoginFields holds the raw values of the login form.
type LoginFields struct {
	Email    string
	Password string
}

// SignupFields holds the raw values of the signup form. CompanyID of zero
// means no organization was selected.
type SignupFields struct {
	FullName        string
	PhoneNumber     string
	Email           string
	Password        string
	ConfirmPassword string
	CompanyID       int64
	AgreeToTerms    bool
}

// ValidateLogin returns a field->message map; an empty map means the fields
// are valid. Login only enforces the relaxed 6-character password minimum.
func ValidateLogin(fields LoginFields) map[string]string {
	errs := make(map[string]string)

	if fields.Email == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailPattern.MatchString(fields.Email) {
		errs[FieldEmail] = "Please enter a valid email"
	}

	if fields.Password == "" {
		errs[FieldPassword] = "Password is required"
	} else if utf8.RuneCountInString(fields.Password) < 6 {
		errs[FieldPassword] = "Password must be at least 6 characters"
	}

	return errs
}

// ValidateSignup returns a field->message map; an empty map means the fields
// are valid.
func ValidateSignup(fields SignupFields) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(fields.FullName) == "" {
		errs[FieldFullName] = "Full name is required"
	}

	if strings.TrimSpace(fields.PhoneNumber) == "" {
		errs[FieldPhoneNumber] = "Phone number is required"
	} else if !phonePattern.MatchString(fields.PhoneNumber) {
		errs[FieldPhoneNumber] = "Please enter a valid phone number"
	}

	if fields.Email == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailPattern.MatchString(fields.Email) {
		errs[FieldEmail] = "Please enter a valid email"
	}

	if fields.Password == "" {
		errs[FieldPassword] = "Password is required"
	} else if utf8.RuneCountInString(fields.Password) < 8 {
		errs[FieldPassword] = "Password must be at least 8 characters"
	} else if PasswordStrength(fields.Password) < MinSignupStrength {
		errs[FieldPassword] = "Password is too weak"
	}

	if fields.ConfirmPassword == "" {
		errs[FieldConfirmPassword] = "Please confirm your password"
	} else if fields.Password != fields.ConfirmPassword {
		errs[FieldConfirmPassword] = "Passwords do not match"
	}

	if fields.CompanyID == 0 {
		errs[FieldCompanyID] = "Please select a company"
	}

	if !fields.AgreeToTerms {
		errs[FieldAgreeToTerms] = "You must agree to the terms and conditions"
	}

	return errs
}

// PasswordStrength scores a password 0..5, one point for each of: length of
// at least 8 characters, an uppercase letter, a lowercase letter, a digit,
// and a non-alphanumeric character. Length is counted in runes, not bytes.
func PasswordStrength(password string) int {
	strength := 0
	if utf8.RuneCountInString(password) >= 8 {
		strength++
	}

	// Character classes are ASCII on purpose: anything outside A-Za-z0-9
	// counts toward the symbol point.
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if hasUpper {
		strength++
	}
	if hasLower {
		strength++
	}
	if hasDigit {
		strength++
	}
	if hasSymbol {
		strength++
	}
	return strength
}

// StrengthLabel maps a strength score to its display label.
func StrengthLabel(strength int) string {
	switch strength {
	case 0, 1:
		return "Very Weak"
	case 2:
		return "Weak"
	case 3:
		return "Good"
	case 4:
		return "Strong"
	case 5:
		return "Very Strong"
	default:
		return ""
	}
}
