package errors

import (
	"testing"
)

func validRegistration() Registration {
	return Registration{
		FullName:        "Nimal Perera",
		Email:           "nimal@example.com",
		PhoneNumber:     "+94771234570",
		CompanyName:     "Sarasavi Books",
		Password:        "s3cret!pass",
		ConfirmPassword: "s3cret!pass",
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Registration)
		wantMsg string
	}{
		{"valid", func(*Registration) {}, ""},
		{"missing name", func(r *Registration) { r.FullName = "" }, "All fields are required."},
		{"blank company", func(r *Registration) { r.CompanyName = "   " }, "All fields are required."},
		{"missing confirm", func(r *Registration) { r.ConfirmPassword = "" }, "All fields are required."},
		{"password mismatch", func(r *Registration) { r.ConfirmPassword = "other" }, "Passwords do not match."},
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }, `invalid email address: "not-an-email"`},
		{"bad phone", func(r *Registration) { r.PhoneNumber = "12ab" }, `invalid phone number: "12ab"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)
			err := ValidateRegistration(r)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("ValidateRegistration() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateRegistration() = nil, want error")
			}
			if !Is(err, ErrCodeValidation) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeValidation)
			}
			if got := UserMessage(err); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	if err := ValidateLogin("nimal@example.com", "pw"); err != nil {
		t.Errorf("ValidateLogin() error = %v", err)
	}
	if err := ValidateLogin(" ", "pw"); err == nil {
		t.Error("ValidateLogin() with blank user should fail")
	}
	if err := ValidateLogin("nimal", ""); err == nil {
		t.Error("ValidateLogin() with empty password should fail")
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"a@example.com", false},
		{"first.last+tag@books.lk", false},
		{"", true},
		{"plain", true},
		{"a@localhost", true},
		{"Name <a@example.com>", true},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"numeric", "42", false},
		{"generated stall", "1-stall-7", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 65)), true},
		{"slash", "1/2", true},
		{"query", "1?x=2", true},
		{"traversal", "..", true},
		{"control char", "4\n2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID("event", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://api.bookfair.lk", false},
		{"http://localhost:8080", false},
		{"", true},
		{"ftp://example.com", true},
		{"localhost:8080", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
