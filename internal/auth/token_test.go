package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	return NewTokenManager("test-secret", 10)
}

func signedToken(t *testing.T, tm *TokenManager, profile string) (string, *UserDetails) {
	t.Helper()
	details := validDetails(t, profile)
	token, _, err := tm.GenerateToken(details)
	require.NoError(t, err)
	return token, details
}

func TestDecodeRoundTrip(t *testing.T) {
	tm := newTestManager(t)
	token, want := signedToken(t, tm, ProfileMechanic)

	got, err := tm.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, want.Username, got.Username)
	assert.Equal(t, want.PersonID, got.PersonID)
	assert.Equal(t, want.DocumentNumber, got.DocumentNumber)
	assert.Equal(t, want.PersonType, got.PersonType)
	assert.Equal(t, want.Role, got.Role)
	assert.Equal(t, want.Profile, got.Profile)
}

func TestDecodeMalformedToken(t *testing.T) {
	tm := newTestManager(t)

	_, err := tm.Decode("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestDecodeWrongSecret(t *testing.T) {
	tm := newTestManager(t)
	other := NewTokenManager("another-secret", 10)
	token, _ := signedToken(t, other, ProfileAdmin)

	_, err := tm.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeExpiredToken(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _ := signedToken(t, tm, ProfileAdmin)

	_, err := tm.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIsStillValid(t *testing.T) {
	tm := newTestManager(t)
	token, details := signedToken(t, tm, ProfileCustomer)

	assert.True(t, tm.IsStillValid(token, details))

	// Identity mismatch between token and decoded principal.
	otherUser := *details
	otherUser.Username = "someone.else"
	assert.False(t, tm.IsStillValid(token, &otherUser))

	assert.False(t, tm.IsStillValid("garbage", details))
	assert.False(t, tm.IsStillValid(token, nil))

	expired := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	staleToken, staleDetails := signedToken(t, expired, ProfileCustomer)
	assert.False(t, tm.IsStillValid(staleToken, staleDetails))
}

func TestExtractionHelpers(t *testing.T) {
	tm := newTestManager(t)
	token, details := signedToken(t, tm, ProfileCustomer)

	profile, err := tm.ExtractProfile(token)
	require.NoError(t, err)
	assert.Equal(t, ProfileCustomer, profile)

	personID, err := tm.ExtractPersonID(token)
	require.NoError(t, err)
	assert.Equal(t, details.PersonID.String(), personID)

	_, err = tm.ExtractProfile("garbage")
	assert.Error(t, err)
	_, err = tm.ExtractPersonID("garbage")
	assert.Error(t, err)
}
