package auth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Access profiles carried in the "perfil" claim.
const (
	ProfileAdmin    = "ADMIN"
	ProfileMechanic = "MECANICO"
	ProfileCustomer = "CLIENTE"
)

// Person types carried in the "tipoPessoa" claim.
const (
	PersonTypeIndividual   = "FISICA"
	PersonTypeOrganization = "JURIDICA"
)

var errEmptyClaim = errors.New("claim must not be empty")

// UserDetails is the decoded, trusted identity of the caller for the duration
// of one request. It is built once by the TokenManager, never persisted and
// never mutated. Two values are equal iff all fields are equal.
type UserDetails struct {
	Username       string
	PersonID       uuid.UUID
	DocumentNumber string
	PersonType     string
	Role           string
	Profile        string

	// credential is only set for locally constructed principals, never for
	// token-derived ones.
	credential string
}

// NewUserDetails builds a token-derived principal. Every field is required and
// personID must be a valid UUID; construction fails rather than producing a
// partial value.
func NewUserDetails(username, personID, documentNumber, personType, role, profile string) (*UserDetails, error) {
	if err := requireAll(username, personID, documentNumber, personType, profile); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(personID)
	if err != nil {
		return nil, fmt.Errorf("person id %q is not a valid uuid: %w", personID, err)
	}
	return &UserDetails{
		Username:       username,
		PersonID:       id,
		DocumentNumber: documentNumber,
		PersonType:     personType,
		Role:           role,
		Profile:        profile,
	}, nil
}

// NewUserDetailsWithCredential builds a principal carrying an opaque
// credential, used only for local construction outside token decoding.
func NewUserDetailsWithCredential(username, credential, personID, documentNumber, personType, role, profile string) (*UserDetails, error) {
	if credential == "" {
		return nil, fmt.Errorf("credential: %w", errEmptyClaim)
	}
	details, err := NewUserDetails(username, personID, documentNumber, personType, role, profile)
	if err != nil {
		return nil, err
	}
	details.credential = credential
	return details, nil
}

// Credential returns the stored credential, empty for token-derived principals.
func (u *UserDetails) Credential() string {
	return u.credential
}

// IsStaffOrHigher reports whether the caller holds a staff profile.
func (u *UserDetails) IsStaffOrHigher() bool {
	return u.Profile == ProfileMechanic || u.Profile == ProfileAdmin
}

// IsCustomer reports whether the caller is a customer.
func (u *UserDetails) IsCustomer() bool {
	return u.Profile == ProfileCustomer
}

// IsOwnerOrStaff grants ADMIN unconditionally, otherwise requires the caller's
// own person id to match the target resource's person id.
func (u *UserDetails) IsOwnerOrStaff(target uuid.UUID) bool {
	if u.Profile == ProfileAdmin {
		return true
	}
	if u.PersonID == uuid.Nil {
		return false
	}
	return u.PersonID == target
}

func requireAll(username, personID, documentNumber, personType, profile string) error {
	for name, val := range map[string]string{
		"username":       username,
		"personId":       personID,
		"documentNumber": documentNumber,
		"personType":     personType,
		"profile":        profile,
	} {
		if val == "" {
			return fmt.Errorf("%s: %w", name, errEmptyClaim)
		}
	}
	return nil
}
