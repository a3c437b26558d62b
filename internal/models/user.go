package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/chairside/internal/constants"
)

type User struct {
	ID        string `json:"userID"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Roles     Roles  `json:"roles"`
}

// DisplayName returns "First Last", falling back to the username
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Roles is a user's role set. The backend sends it either as a JSON array
// or as a JSON string holding an encoded array; Encoded records which form
// was received so it is written back the same way.
type Roles struct {
	Values  []string
	Encoded bool
}

// NewRoles builds a plain (array-encoded) role set
func NewRoles(roles ...string) Roles {
	return Roles{Values: roles}
}

// Has reports whether role is in the set
func (r Roles) Has(role string) bool {
	return slices.Contains(r.Values, role)
}

// HasAny reports whether any of roles is in the set
func (r Roles) HasAny(roles ...string) bool {
	for _, role := range roles {
		if r.Has(role) {
			return true
		}
	}
	return false
}

func (r Roles) String() string {
	return strings.Join(r.Values, ",")
}

func (r *Roles) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = Roles{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		var values []string
		if strings.TrimSpace(raw) != "" {
			if err := json.Unmarshal([]byte(raw), &values); err != nil {
				return fmt.Errorf("invalid encoded roles %q: %w", raw, err)
			}
		}
		*r = Roles{Values: values, Encoded: true}
		return nil
	}

	var values []string
	if err := json.Unmarshal(b, &values); err != nil {
		return fmt.Errorf("invalid roles: %w", err)
	}
	*r = Roles{Values: values}
	return nil
}

func (r Roles) MarshalJSON() ([]byte, error) {
	values := r.Values
	if !r.Encoded {
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	if values == nil {
		return json.Marshal("")
	}
	inner, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(inner))
}

// IsStaff reports whether the user is a dentist or an admin
func (u User) IsStaff() bool {
	return u.Roles.HasAny(constants.RoleAdmin, constants.RoleDentist)
}

// UserRequest is the admin create/update body for a user
type UserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Roles     Roles  `json:"roles"`
}

// Credentials is the login body
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the self-service signup body
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// PasswordChange is the body of a password update
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
