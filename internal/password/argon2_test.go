package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() *Argon2 {
	return NewArgon2(Params{Time: 1, MemKiB: 8 * 1024, Par: 1})
}

func TestArgon2_HashVerify(t *testing.T) {
	h := newTestHasher()

	digest, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
	assert.Contains(t, digest, "m=8192")
	assert.Contains(t, digest, "t=1")
	assert.True(t, h.Verify("correct horse", digest))
	assert.False(t, h.Verify("correct horsf", digest))
	assert.False(t, h.Verify("", digest))
}

func TestArgon2_SaltedDigests(t *testing.T) {
	h := newTestHasher()

	first, err := h.Hash("same password")
	require.NoError(t, err)
	second, err := h.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2_VerifyAfterParameterChange(t *testing.T) {
	old := newTestHasher()
	digest, err := old.Hash("long enough")
	require.NoError(t, err)

	upgraded := NewArgon2(Params{Time: 2, MemKiB: 16 * 1024, Par: 2})

	assert.True(t, upgraded.Verify("long enough", digest))
}

func TestArgon2_VerifyMalformedDigest(t *testing.T) {
	h := newTestHasher()

	tests := []struct {
		name   string
		digest string
	}{
		{name: "empty", digest: ""},
		{name: "garbage", digest: "not-a-digest"},
		{name: "plain sha256 hex", digest: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"},
		{name: "truncated", digest: "$argon2id$v=19$m=8192,t=1,p=1$"},
		{name: "bad params", digest: "$argon2id$v=19$m=x,t=y,p=z$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, h.Verify("password", tt.digest))
			})
		})
	}
}
