package managers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateAndValidate(t *testing.T) {
	jwtMgr := NewJWTManagerWithSecret(testSecret, time.Hour)

	token, err := jwtMgr.Generate(42, "testUser")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := jwtMgr.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), principal.UserID)
	assert.Equal(t, "testUser", principal.DisplayName)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	jwtMgr := NewJWTManagerWithSecret(testSecret, -time.Minute)

	token, err := jwtMgr.Generate(42, "testUser")
	require.NoError(t, err)

	principal, err := jwtMgr.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, principal)
}

func TestValidateRejectsForeignKey(t *testing.T) {
	jwtMgr := NewJWTManagerWithSecret(testSecret, time.Hour)
	otherMgr := NewJWTManagerWithSecret([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)

	token, err := otherMgr.Generate(42, "testUser")
	require.NoError(t, err)

	principal, err := jwtMgr.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, principal)
}

func TestValidateRejectsGarbage(t *testing.T) {
	jwtMgr := NewJWTManagerWithSecret(testSecret, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		principal, err := jwtMgr.Validate(token)
		assert.Error(t, err)
		assert.Nil(t, principal)
	}
}

func TestNewJWTManagerRequiresStrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "tooShort")

	_, err := NewJWTManager()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", string(testSecret))
	t.Setenv("TOKEN_LIFETIME", "12h")

	jwtMgr, err := NewJWTManager()
	require.NoError(t, err)
	assert.NotNil(t, jwtMgr)
}
