package managers

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"

	log "github.com/sirupsen/logrus"
)

// SaltLength is the size of the per-user random salt. The salt doubles as
// the HMAC key, so it matches the SHA-512 block-friendly digest size.
const SaltLength = 64

// CredentialMgr derives and verifies salted password digests.
type CredentialMgr interface {
	Hash(secret []byte) (digest, salt []byte, err error)
	Verify(secret, digest, salt []byte) bool
}

// CredentialManager computes HMAC-SHA512 digests keyed by a fresh random
// salt. Two calls with the same secret never share a salt.
type CredentialManager struct{}

// NewCredentialManager creates a new CredentialManager.
func NewCredentialManager() CredentialMgr {
	log.Info("Initializing credential manager")
	return &CredentialManager{}
}

// Hash generates a random salt and returns the keyed digest of secret
// together with the salt. Digest and salt must be stored together.
func (cm *CredentialManager) Hash(secret []byte) ([]byte, []byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}

	return computeDigest(secret, salt), salt, nil
}

// Verify recomputes the digest of secret under salt and compares it against
// the stored digest in constant time. Any mismatch, including a malformed
// stored record, yields false rather than an error.
func (cm *CredentialManager) Verify(secret, digest, salt []byte) bool {
	if len(digest) == 0 || len(salt) == 0 {
		return false
	}

	return hmac.Equal(digest, computeDigest(secret, salt))
}

func computeDigest(secret, salt []byte) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write(secret)
	return mac.Sum(nil)
}
