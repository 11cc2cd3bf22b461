package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return c
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	_, err := NewCodec("", "", 15*time.Minute, 7*24*time.Hour)
	assert.Error(t, err)
}

func TestNewCodec_RequiresPositiveTTL(t *testing.T) {
	_, err := NewCodec("secret", "", 0, 7*24*time.Hour)
	assert.Error(t, err)

	_, err = NewCodec("secret", "", 15*time.Minute, -time.Hour)
	assert.Error(t, err)
}

func TestIssueAccess_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	signed, err := codec.IssueAccess("user-1", "ivan@salon.ru", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := codec.VerifyAccess(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ivan@salon.ru", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	// Access token jti taşımaz
	assert.Empty(t, claims.ID)
}

func TestVerifyAccess_TamperedToken(t *testing.T) {
	codec := newTestCodec(t)

	signed, err := codec.IssueAccess("user-1", "ivan@salon.ru", "admin")
	require.NoError(t, err)

	// Son karakteri boz — imza artık tutmaz
	tampered := signed[:len(signed)-2] + "xx"
	_, err = codec.VerifyAccess(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewCodec("completely-different-secret", "", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	signed, err := codec.IssueAccess("user-1", "ivan@salon.ru", "admin")
	require.NoError(t, err)

	_, err = other.VerifyAccess(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Expired(t *testing.T) {
	codec, err := NewCodec("secret", "", time.Millisecond, 7*24*time.Hour)
	require.NoError(t, err)

	signed, err := codec.IssueAccess("user-1", "ivan@salon.ru", "admin")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = codec.VerifyAccess(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccess_Garbage(t *testing.T) {
	codec := newTestCodec(t)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := codec.VerifyAccess(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input: %q", input)
	}
}

func TestIssueRefresh_CarriesUniqueJTI(t *testing.T) {
	codec := newTestCodec(t)

	signed1, jti1, exp1, err := codec.IssueRefresh("user-1", "ivan@salon.ru", "master")
	require.NoError(t, err)
	signed2, jti2, _, err := codec.IssueRefresh("user-1", "ivan@salon.ru", "master")
	require.NoError(t, err)

	assert.NotEmpty(t, jti1)
	assert.NotEqual(t, jti1, jti2)
	assert.NotEqual(t, signed1, signed2)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp1, time.Minute)

	claims, err := codec.VerifyRefresh(signed1)
	require.NoError(t, err)
	assert.Equal(t, jti1, claims.ID)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestVerifyRefresh_RejectsAccessToken(t *testing.T) {
	// Aynı secret'la üretilmiş olsa bile jti'siz token refresh olarak
	// kabul edilmez — access token refresh endpoint'inde kullanılamaz.
	codec, err := NewCodec("shared-secret", "", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	access, err := codec.IssueAccess("user-1", "ivan@salon.ru", "admin")
	require.NoError(t, err)

	_, err = codec.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshSecret_FallsBackToAccessSecret(t *testing.T) {
	withFallback, err := NewCodec("only-secret", "", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	signed, _, _, err := withFallback.IssueRefresh("user-1", "ivan@salon.ru", "admin")
	require.NoError(t, err)

	_, err = withFallback.VerifyRefresh(signed)
	assert.NoError(t, err)
}

func TestSeparateSecrets_AreIsolated(t *testing.T) {
	codec := newTestCodec(t)

	// Refresh secret'la imzalanmış token access secret'la doğrulanamaz
	refresh, _, _, err := codec.IssueRefresh("user-1", "ivan@salon.ru", "admin")
	require.NoError(t, err)

	_, err = codec.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
