package managers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	credentialMgr := NewCredentialManager()

	digest, salt, err := credentialMgr.Hash([]byte("Pa$$w0rd"))
	require.NoError(t, err)
	assert.Len(t, salt, SaltLength)
	assert.NotEmpty(t, digest)

	assert.True(t, credentialMgr.Verify([]byte("Pa$$w0rd"), digest, salt))
	assert.False(t, credentialMgr.Verify([]byte("Pa$$w0rd "), digest, salt))
	assert.False(t, credentialMgr.Verify([]byte("wrong"), digest, salt))
}

func TestHashProducesDistinctSalts(t *testing.T) {
	credentialMgr := NewCredentialManager()

	digest1, salt1, err := credentialMgr.Hash([]byte("samePassword"))
	require.NoError(t, err)
	digest2, salt2, err := credentialMgr.Hash([]byte("samePassword"))
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, digest1, digest2)

	// Each record still verifies under its own salt
	assert.True(t, credentialMgr.Verify([]byte("samePassword"), digest1, salt1))
	assert.True(t, credentialMgr.Verify([]byte("samePassword"), digest2, salt2))
}

func TestVerifyRejectsMalformedRecords(t *testing.T) {
	credentialMgr := NewCredentialManager()

	digest, salt, err := credentialMgr.Hash([]byte("Pa$$w0rd"))
	require.NoError(t, err)

	assert.False(t, credentialMgr.Verify([]byte("Pa$$w0rd"), nil, salt))
	assert.False(t, credentialMgr.Verify([]byte("Pa$$w0rd"), digest, nil))
	assert.False(t, credentialMgr.Verify([]byte("Pa$$w0rd"), []byte{}, []byte{}))
	assert.False(t, credentialMgr.Verify([]byte("Pa$$w0rd"), digest[:len(digest)-1], salt))
	assert.False(t, credentialMgr.Verify([]byte("Pa$$w0rd"), digest, salt[:len(salt)-1]))
}
