package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPersonID = uuid.MustParse("7b8e1432-55c2-4a3f-9d15-0a4279e1a2bc")

func validDetails(t *testing.T, profile string) *UserDetails {
	t.Helper()
	details, err := NewUserDetails("joao.silva", testPersonID.String(), "12345678901", PersonTypeIndividual, "MECANICO", profile)
	require.NoError(t, err)
	return details
}

func TestNewUserDetails(t *testing.T) {
	details, err := NewUserDetails("joao.silva", testPersonID.String(), "12345678901", PersonTypeIndividual, "MECANICO", ProfileAdmin)
	require.NoError(t, err)

	assert.Equal(t, "joao.silva", details.Username)
	assert.Equal(t, testPersonID, details.PersonID)
	assert.Equal(t, "12345678901", details.DocumentNumber)
	assert.Equal(t, PersonTypeIndividual, details.PersonType)
	assert.Equal(t, "MECANICO", details.Role)
	assert.Equal(t, ProfileAdmin, details.Profile)
	assert.Empty(t, details.Credential())
}

func TestNewUserDetailsRejectsMissingFields(t *testing.T) {
	id := testPersonID.String()

	tests := []struct {
		name string
		args [6]string
	}{
		{"empty username", [6]string{"", id, "123", PersonTypeIndividual, "cargo", ProfileAdmin}},
		{"empty person id", [6]string{"user", "", "123", PersonTypeIndividual, "cargo", ProfileAdmin}},
		{"empty document", [6]string{"user", id, "", PersonTypeIndividual, "cargo", ProfileAdmin}},
		{"empty person type", [6]string{"user", id, "123", "", "cargo", ProfileAdmin}},
		{"empty profile", [6]string{"user", id, "123", PersonTypeIndividual, "cargo", ""}},
		{"person id not a uuid", [6]string{"user", "not-a-uuid", "123", PersonTypeIndividual, "cargo", ProfileAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := NewUserDetails(tt.args[0], tt.args[1], tt.args[2], tt.args[3], tt.args[4], tt.args[5])
			assert.Error(t, err)
			assert.Nil(t, details)
		})
	}
}

func TestNewUserDetailsWithCredential(t *testing.T) {
	details, err := NewUserDetailsWithCredential("user", "s3cret", testPersonID.String(), "123", PersonTypeIndividual, "cargo", ProfileCustomer)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", details.Credential())

	_, err = NewUserDetailsWithCredential("user", "", testPersonID.String(), "123", PersonTypeIndividual, "cargo", ProfileCustomer)
	assert.Error(t, err)
}

func TestUserDetailsValueSemantics(t *testing.T) {
	a := validDetails(t, ProfileCustomer)
	b := validDetails(t, ProfileCustomer)
	assert.Equal(t, *a, *b)

	c := validDetails(t, ProfileAdmin)
	assert.NotEqual(t, *a, *c)
}

func TestIsStaffOrHigher(t *testing.T) {
	assert.True(t, validDetails(t, ProfileAdmin).IsStaffOrHigher())
	assert.True(t, validDetails(t, ProfileMechanic).IsStaffOrHigher())
	assert.False(t, validDetails(t, ProfileCustomer).IsStaffOrHigher())
	assert.False(t, validDetails(t, "UNKNOWN").IsStaffOrHigher())
}

func TestIsCustomer(t *testing.T) {
	assert.True(t, validDetails(t, ProfileCustomer).IsCustomer())
	assert.False(t, validDetails(t, ProfileAdmin).IsCustomer())
}

func TestIsOwnerOrStaff(t *testing.T) {
	other := uuid.MustParse("03c2f1fc-45bf-4d49-8461-5f186f9b0a51")

	admin := validDetails(t, ProfileAdmin)
	assert.True(t, admin.IsOwnerOrStaff(testPersonID))
	assert.True(t, admin.IsOwnerOrStaff(other))

	customer := validDetails(t, ProfileCustomer)
	assert.True(t, customer.IsOwnerOrStaff(testPersonID))
	assert.False(t, customer.IsOwnerOrStaff(other))

	mechanic := validDetails(t, ProfileMechanic)
	assert.True(t, mechanic.IsOwnerOrStaff(testPersonID))
	assert.False(t, mechanic.IsOwnerOrStaff(other))
}
