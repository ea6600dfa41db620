package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server-match/internal/schemas"
)

func TestSanitizeDataStripsMarkupAndTrims(t *testing.T) {
	v := GetValidator()

	req := &schemas.MemberUpdateRequest{
		Introduction: "  <script>alert(1)</script>hello  ",
		City:         " Berlin ",
	}
	require.NoError(t, v.SanitizeData(req))

	assert.Equal(t, "hello", req.Introduction)
	assert.Equal(t, "Berlin", req.City)
}

func TestSanitizeDataLeavesPasswordUntouched(t *testing.T) {
	v := GetValidator()

	req := &schemas.RegisterRequest{
		Username: "  testUser  ",
		Password: " <b>p& ",
	}
	require.NoError(t, v.SanitizeData(req))

	assert.Equal(t, "testUser", req.Username)
	assert.Equal(t, " <b>p& ", req.Password)

	login := &schemas.LoginRequest{Username: "testUser", Password: " <b>p& "}
	require.NoError(t, v.SanitizeData(login))
	assert.Equal(t, " <b>p& ", login.Password)
}

func TestSanitizeDataRejectsNonStructPointer(t *testing.T) {
	v := GetValidator()

	assert.Error(t, v.SanitizeData("not a struct"))
	value := 3
	assert.Error(t, v.SanitizeData(&value))
}
