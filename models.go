package auth

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role is the principal's role tag
type Role string

const (
	// RoleAdmin is the administrative role; the only role the backend
	// currently defines. Every privileged write/delete requires it.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}

// Principal is the identity record guarded by this package. The credential
// hash is opaque and never serialized; usernames are unique and
// case-sensitive.
type Principal struct {
	bun.BaseModel `bun:"table:principals,alias:prn"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          Role       `bun:"role,notnull" json:"role,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Validate will run validation rules. Store implementations call this at the
// boundary so nothing downstream has to trust document shapes.
func (p Principal) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.PasswordHash, validation.Required),
		validation.Field(&p.Role, validation.Required, validation.By(validateRole)),
	)
}

func validateRole(value any) error {
	role, ok := value.(Role)
	if !ok || !role.IsValid() {
		return errInvalidRole
	}
	return nil
}

var errInvalidRole = goerrors.New("principal has an unknown or invalid role", goerrors.CategoryValidation).
	WithTextCode("INVALID_ROLE")
