package nurse

import (
	"time"

	"github.com/google/uuid"
)

// Nurse is an authenticated clinician account. The password hash never
// leaves the server: the json tag strips it from every response.
type Nurse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FullName      string    `json:"full_name"`
	LicenseNumber string    `json:"license_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegisterRequest is the register payload.
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	LicenseNumber string `json:"license_number"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token string `json:"token"`
	Nurse *Nurse `json:"nurse"`
}
