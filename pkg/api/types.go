package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an identifier that the backend may send as a JSON number or string.
type ID string

// UnmarshalJSON accepts 12, "12" and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as text.
func (id ID) String() string { return string(id) }

// Int returns the numeric value of the id, or 0 when it is not numeric.
func (id ID) Int() int64 {
	n, _ := strconv.ParseInt(string(id), 10, 64)
	return n
}

// Event is a bookfair event.
type Event struct {
	ID               ID     `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Venue            string `json:"venue"`
	Status           string `json:"status"`
	RegistrationOpen bool   `json:"registrationOpen"`
	TotalStalls      int    `json:"totalStalls"`
	AvailableStalls  int    `json:"availableStalls"`
}

// Genre is a literary category that can be attached to a reservation.
type Genre struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// StallRecord is a stall as the backend describes it.
type StallRecord struct {
	ID            ID      `json:"id"`
	StallNumber   string  `json:"stallNumber"`
	HallNumber    string  `json:"hallNumber"`
	EventID       ID      `json:"eventId"`
	Size          string  `json:"size"`
	PricePerStall float64 `json:"pricePerStall"`
	Available     bool    `json:"available"`
	Location      string  `json:"location"`
}

// Hall returns the numeric hall number. ok is false when it does not parse.
func (s StallRecord) Hall() (n int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s.HallNumber))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Reservation is a confirmed booking.
type Reservation struct {
	ID              int64    `json:"id"`
	ReservationCode string   `json:"reservationCode"`
	QRCode          string   `json:"qrCode"`
	Status          string   `json:"status"`
	UserID          int64    `json:"userId"`
	UserName        string   `json:"userName"`
	EventID         int64    `json:"eventId"`
	EventName       string   `json:"eventName"`
	StallID         int64    `json:"stallId"`
	StallNumber     string   `json:"stallNumber"`
	HallNumber      string   `json:"hallNumber"`
	Genres          []string `json:"genres"`
	CreatedAt       string   `json:"createdAt"`
	ConfirmedAt     string   `json:"confirmedAt"`
}

// ReservationRequest is the body of POST /api/reservations.
type ReservationRequest struct {
	EventID  int64   `json:"eventId"`
	StallID  int64   `json:"stallId"`
	GenreIDs []int64 `json:"genreIds"`
}

// User is the signed-in account.
type User struct {
	ID          ID     `json:"id"`
	Username    string `json:"username,omitempty"`
	FullName    string `json:"fullName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Role        string `json:"role,omitempty"`
}

// DisplayName returns the most human-friendly name available.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.FullName != "":
		return u.FullName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	CompanyName string `json:"companyName"`
	Password    string `json:"password"`
}

// AuthResult is the data of a successful login or registration: the token
// plus the user's fields, flattened in one object.
type AuthResult struct {
	Token  string `json:"token"`
	UserID ID     `json:"userId,omitempty"`
	User
}

// Account returns the user, filling a missing id from userId or, failing
// that, from the token's claims.
func (a *AuthResult) Account() *User {
	u := a.User
	if u.ID == "" {
		u.ID = a.UserID
	}
	if u.ID == "" || u.Email == "" || u.Role == "" {
		if claims, err := ParseClaims(a.Token); err == nil {
			if u.ID == "" {
				u.ID = claims.UserKey()
			}
			if u.Email == "" {
				u.Email = claims.Email
			}
			if u.Role == "" {
				u.Role = claims.Role
			}
		}
	}
	return &u
}
