package errors

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

// Registration holds the sign-up form as entered.
type Registration struct {
	FullName        string
	Email           string
	PhoneNumber     string
	CompanyName     string
	Password        string
	ConfirmPassword string
}

// phoneRegex accepts an optional leading + and 9 to 15 digits, with spaces
// or dashes between groups.
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{7,18}[0-9]$`)

// ValidateRegistration checks the sign-up form before it is sent. The
// required-field and password-match messages are shown to users as-is.
func ValidateRegistration(r Registration) error {
	fields := []string{r.FullName, r.Email, r.PhoneNumber, r.CompanyName, r.Password, r.ConfirmPassword}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return New(ErrCodeValidation, "All fields are required.")
		}
	}
	if r.Password != r.ConfirmPassword {
		return New(ErrCodeValidation, "Passwords do not match.")
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if !phoneRegex.MatchString(strings.TrimSpace(r.PhoneNumber)) {
		return New(ErrCodeValidation, "invalid phone number: %q", r.PhoneNumber)
	}
	return nil
}

// ValidateLogin checks that both credentials are present.
func ValidateLogin(usernameOrEmail, password string) error {
	if strings.TrimSpace(usernameOrEmail) == "" || password == "" {
		return New(ErrCodeValidation, "Email and password are required.")
	}
	return nil
}

// ValidateEmail checks for a bare address such as "name@example.com".
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return New(ErrCodeValidation, "invalid email address: %q", email)
	}
	return nil
}

// ValidateID validates an identifier taken from the command line before it
// is interpolated into a request path.
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "%s id too long (max 64 characters)", kind)
	}
	for _, r := range id {
		if unicode.IsControl(r) || r == '/' || r == '\\' || r == '?' || r == '#' || r == '%' {
			return New(ErrCodeInvalidInput, "%s id contains invalid characters: %q", kind, id)
		}
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "%s id contains invalid characters: %q", kind, id)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
