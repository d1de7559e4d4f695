package commitment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	digest, err := Digest("abc")
	require.NoError(t, err)

	// Published SHA-256 test vector.
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digest)
}

func TestDigest_Deterministic(t *testing.T) {
	first, err := Digest("Company Name: Acme Corp")
	require.NoError(t, err)
	second, err := Digest("Company Name: Acme Corp")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDigest_Sensitivity(t *testing.T) {
	first, err := Digest("Company Name: Acme Corp")
	require.NoError(t, err)
	second, err := Digest("Company Name: Acme Corp ")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDigest_InvalidEncoding(t *testing.T) {
	_, err := Digest(string([]byte{0xff, 0xfe, 0xfd}))
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestEqual_CaseInsensitive(t *testing.T) {
	assert.True(t, Equal("ABC123", "abc123"))
	assert.True(t, Equal("abc123", "abc123"))
	assert.False(t, Equal("abc123", "abc124"))
	assert.False(t, Equal("", "abc124"))
	assert.True(t, Equal("", ""))
}
