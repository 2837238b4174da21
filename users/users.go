package users

import (
	"fmt"
	"time"
	"unicode"
)

// RoleCode classifies a user's permission tier within the consultancy
type RoleCode string

const (
	// Staff-side roles
	RoleAdmin      RoleCode = "ADMIN"      // Full administrative access
	RoleConsultant RoleCode = "CONSULTANT" // Handles client applications and consultations
	RoleFinance    RoleCode = "FINANCE"    // Invoicing and payments
	RoleSupport    RoleCode = "SUPPORT"    // Client support and triage

	// Client-side role
	RoleClient RoleCode = "CLIENT" // Regular portal client
)

// staffRoles are the role codes that grant access to the admin dashboard
var staffRoles = map[RoleCode]struct{}{
	RoleAdmin:      {},
	RoleConsultant: {},
	RoleFinance:    {},
	RoleSupport:    {},
}

// Role is a named permission tier as served by the backend
type Role struct {
	Code RoleCode `json:"code"`
	Name string   `json:"name"`
}

// RoleAssignment wraps a role the way the /me/ endpoint nests it
type RoleAssignment struct {
	Role Role `json:"role"`
}

// ClientProfile holds the client-facing profile attached to a user
type ClientProfile struct {
	ID          string    `json:"id,omitempty"`
	Email       string    `json:"email,omitempty"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Nationality string    `json:"nationality,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// StaffProfile holds the staff-facing profile attached to a user
type StaffProfile struct {
	ID           string    `json:"id,omitempty"`
	Email        string    `json:"email,omitempty"`
	Title        string    `json:"title,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CalendarLink string    `json:"calendar_link,omitempty"`
	WhatsappNo   string    `json:"whatsapp_no,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// User is the profile record served by the /me/ endpoint. It is replaced
// wholesale after each fetch, never mutated field by field.
type User struct {
	ID               string           `json:"id,omitempty"`                 // Unique identifier for the user
	Email            string           `json:"email,omitempty"`              // User's email address
	FirstName        string           `json:"first_name,omitempty"`         // First name of the user
	LastName         string           `json:"last_name,omitempty"`          // Last name of the user
	IsStaff          bool             `json:"is_staff,omitempty"`           // Django staff flag
	IsActive         bool             `json:"is_active,omitempty"`          // Account enabled
	TwoFactorEnabled bool             `json:"two_factor_enabled,omitempty"` // 2FA configured
	DateJoined       time.Time        `json:"date_joined,omitempty"`        // When the user registered
	LastLogin        time.Time        `json:"last_login,omitempty"`         // Last successful login
	UserRoles        []RoleAssignment `json:"user_roles,omitempty"`         // Role assignments (order irrelevant)
	ClientProfile    *ClientProfile   `json:"client_profile,omitempty"`     // Present for portal clients
	StaffProfile     *StaffProfile    `json:"staff_profile,omitempty"`      // Present for staff members
}

// IsAdmin reports whether the user belongs on the staff side: either the
// staff flag is set or any assigned role is a staff role. A nil user is
// neither admin nor client.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	if u.IsStaff {
		return true
	}
	for _, assignment := range u.UserRoles {
		if _, ok := staffRoles[assignment.Role.Code]; ok {
			return true
		}
	}
	return false
}

// IsClient reports whether the user is a regular portal client
func (u *User) IsClient() bool {
	if u == nil {
		return false
	}
	return !u.IsAdmin()
}

// HasRole checks if the user has a specific role assignment
func (u *User) HasRole(code RoleCode) bool {
	if u == nil {
		return false
	}
	for _, assignment := range u.UserRoles {
		if assignment.Role.Code == code {
			return true
		}
	}
	return false
}

// FullName returns the display name for the user
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ValidatePasswordStrength mirrors the server-side password validator so a
// weak password is rejected before any network call:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}
