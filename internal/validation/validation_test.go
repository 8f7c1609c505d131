package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		expected int
	}{
		{"empty", "", 0},
		{"lowercase only, short", "abc", 1},
		{"lowercase only, long", "abcdefgh", 2},
		{"lower and digit, long", "abcdefg1", 3},
		{"lower, upper, digit, long", "Abcdefg1", 4},
		{"all classes", "Abcdef1!", 5},
		{"all classes, short", "Ab1!", 4},
		{"non-ascii letter counts as symbol", "abcdefgé", 3},
		{"length counts runes not bytes", "äääääää", 1},
		{"digits only, long", "12345678", 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PasswordStrength(tc.password))
		})
	}
}

func TestPasswordStrengthBounds(t *testing.T) {
	passwords := []string{"", "a", "A", "1", "!", "aA1!x", "Abcdef1!", "passwordpassword"}
	for _, p := range passwords {
		s := PasswordStrength(p)
		assert.GreaterOrEqual(t, s, 0, "password %q", p)
		assert.LessOrEqual(t, s, 5, "password %q", p)
	}
}

func TestStrengthLabel(t *testing.T) {
	assert.Equal(t, "Very Weak", StrengthLabel(0))
	assert.Equal(t, "Very Weak", StrengthLabel(1))
	assert.Equal(t, "Weak", StrengthLabel(2))
	assert.Equal(t, "Good", StrengthLabel(3))
	assert.Equal(t, "Strong", StrengthLabel(4))
	assert.Equal(t, "Very Strong", StrengthLabel(5))
}

func TestValidateLogin(t *testing.T) {
	testCases := []struct {
		name     string
		fields   LoginFields
		expected map[string]string
	}{
		{
			name:     "valid credentials",
			fields:   LoginFields{Email: "a@b.com", Password: "abcdef"},
			expected: map[string]string{},
		},
		{
			name:   "missing everything",
			fields: LoginFields{},
			expected: map[string]string{
				FieldEmail:    "Email is required",
				FieldPassword: "Password is required",
			},
		},
		{
			name:   "malformed email",
			fields: LoginFields{Email: "not-an-email", Password: "abcdef"},
			expected: map[string]string{
				FieldEmail: "Please enter a valid email",
			},
		},
		{
			name:   "password below login minimum",
			fields: LoginFields{Email: "a@b.com", Password: "abcde"},
			expected: map[string]string{
				FieldPassword: "Password must be at least 6 characters",
			},
		},
		{
			name:   "multibyte password below minimum despite byte length",
			fields: LoginFields{Email: "a@b.com", Password: "päss1"},
			expected: map[string]string{
				FieldPassword: "Password must be at least 6 characters",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidateLogin(tc.fields))
		})
	}
}

func validSignupFields() SignupFields {
	return SignupFields{
		FullName:        "Jane Doe",
		PhoneNumber:     "+1 (206) 555-0100",
		Email:           "jane@example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		CompanyID:       1,
		AgreeToTerms:    true,
	}
}

func TestValidateSignup(t *testing.T) {
	t.Run("valid fields pass", func(t *testing.T) {
		assert.Empty(t, ValidateSignup(validSignupFields()))
	})

	t.Run("whitespace full name is rejected", func(t *testing.T) {
		fields := validSignupFields()
		fields.FullName = "   "
		errs := ValidateSignup(fields)
		assert.Equal(t, "Full name is required", errs[FieldFullName])
	})

	t.Run("phone with letters is rejected", func(t *testing.T) {
		fields := validSignupFields()
		fields.PhoneNumber = "call me"
		errs := ValidateSignup(fields)
		assert.Equal(t, "Please enter a valid phone number", errs[FieldPhoneNumber])
	})

	t.Run("short password reported before weakness", func(t *testing.T) {
		fields := validSignupFields()
		fields.Password = "Ab1!"
		fields.ConfirmPassword = "Ab1!"
		errs := ValidateSignup(fields)
		assert.Equal(t, "Password must be at least 8 characters", errs[FieldPassword])
	})

	t.Run("multibyte password length counts runes", func(t *testing.T) {
		fields := validSignupFields()
		fields.Password = "Päss1!ä" // 7 characters, more than 8 bytes
		fields.ConfirmPassword = fields.Password
		errs := ValidateSignup(fields)
		assert.Equal(t, "Password must be at least 8 characters", errs[FieldPassword])
	})

	t.Run("long but weak password is rejected", func(t *testing.T) {
		fields := validSignupFields()
		fields.Password = "abcdefgh"
		fields.ConfirmPassword = "abcdefgh"
		errs := ValidateSignup(fields)
		assert.Equal(t, "Password is too weak", errs[FieldPassword])
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		fields := validSignupFields()
		fields.Password = "Abcdef1!"
		fields.ConfirmPassword = "Abcdef1"
		errs := ValidateSignup(fields)
		assert.Equal(t, "Passwords do not match", errs[FieldConfirmPassword])
	})

	t.Run("empty confirmation has its own message", func(t *testing.T) {
		fields := validSignupFields()
		fields.ConfirmPassword = ""
		errs := ValidateSignup(fields)
		assert.Equal(t, "Please confirm your password", errs[FieldConfirmPassword])
	})

	t.Run("no company selected", func(t *testing.T) {
		fields := validSignupFields()
		fields.CompanyID = 0
		errs := ValidateSignup(fields)
		assert.Equal(t, "Please select a company", errs[FieldCompanyID])
	})

	t.Run("terms not agreed", func(t *testing.T) {
		fields := validSignupFields()
		fields.AgreeToTerms = false
		errs := ValidateSignup(fields)
		assert.Equal(t, "You must agree to the terms and conditions", errs[FieldAgreeToTerms])
	})

	t.Run("all failures reported together", func(t *testing.T) {
		errs := ValidateSignup(SignupFields{})
		assert.Len(t, errs, 7)
	})
}
