package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Siri12345!")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckPassword("Siri12345!", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(6)
	assert.NoError(t, err)
	assert.Len(t, token, 12) // hex encoded

	other, err := GenerateRandomToken(6)
	assert.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestHashPasswordAndGenerateRandomToken_ErrorBranches(t *testing.T) {
	origBcrypt := bcryptGenerateFromPassword
	origRandRead := randomRead
	t.Cleanup(func() {
		bcryptGenerateFromPassword = origBcrypt
		randomRead = origRandRead
	})

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashPassword("Siri12345!")
	assert.Error(t, err)

	bcryptGenerateFromPassword = origBcrypt
	randomRead = func([]byte) (int, error) {
		return 0, errors.New("rand failed")
	}
	_, err = GenerateRandomToken(6)
	assert.Error(t, err)
}
