package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	h1, err := HashPassword("pw")
	require.NoError(t, err)
	h2, err := HashPassword("pw")
	require.NoError(t, err)

	assert.NotEqual(t, "pw", h1)
	assert.NotEqual(t, h1, h2, "two hashes of the same input must differ")
	assert.True(t, CheckPassword("pw", h1))
	assert.True(t, CheckPassword("pw", h2))

	cost, err := bcrypt.Cost([]byte(h1))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestCheckPassword_Rejects(t *testing.T) {
	h, err := HashPassword("secret")
	require.NoError(t, err)

	cases := map[string]struct {
		pw, hash string
	}{
		"wrong password":  {"nope", h},
		"malformed hash":  {"secret", "not-a-bcrypt-hash"},
		"empty hash":      {"secret", ""},
		"truncated hash":  {"secret", h[:20]},
		"plaintext match": {"secret", "secret"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, CheckPassword(tc.pw, tc.hash))
		})
	}
}

func TestPasswordFits_CountsBytes(t *testing.T) {
	assert.True(t, PasswordFits(strings.Repeat("a", 72)))
	assert.False(t, PasswordFits(strings.Repeat("a", 73)))
	// 36 个 "é" 正好 72 字节，37 个超限
	assert.True(t, PasswordFits(strings.Repeat("é", 36)))
	assert.False(t, PasswordFits(strings.Repeat("é", 37)))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
