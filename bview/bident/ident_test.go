package bident_test

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/Countermatt/Brahms/bview/bident"
	"github.com/stretchr/testify/require"
)

func TestNewSalt(t *testing.T) {
	t.Parallel()

	for range 100 {
		salt, err := bident.NewSalt(rand.Reader)
		require.NoError(t, err)
		require.Len(t, salt, bident.SaltLen)

		for _, c := range salt {
			require.Contains(t, bident.Alphabet, string(c))
		}
	}
}

func TestNewSalt_rejectsBiasedBytes(t *testing.T) {
	t.Parallel()

	// 0xff is above the rejection threshold and must be skipped entirely.
	// 0 and 61 map to the first and last alphabet characters.
	src := make([]byte, 0, 4*bident.SaltLen)
	for range bident.SaltLen {
		src = append(src, 0xff, 0, 0xf8, 61)
	}

	salt, err := bident.NewSalt(bytes.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, "a9a9a9a9a9", salt)
}

func TestNewSalt_shortReader(t *testing.T) {
	t.Parallel()

	_, err := bident.NewSalt(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)
}

func TestDigest(t *testing.T) {
	t.Parallel()

	got, err := bident.Digest(crypto.SHA256, "node-42", "abcdefghij")
	require.NoError(t, err)

	want := sha256.Sum256([]byte("node-42abcdefghij"))
	require.Equal(t, hex.EncodeToString(want[:]), got)
	require.Len(t, got, 2*bident.DigestSize)
	require.Equal(t, strings.ToLower(got), got)

	again, err := bident.Digest(crypto.SHA256, "node-42", "abcdefghij")
	require.NoError(t, err)
	require.Equal(t, got, again)

	other, err := bident.Digest(crypto.SHA256, "node-42", "abcdefghik")
	require.NoError(t, err)
	require.NotEqual(t, got, other)
}

func TestDigest_unavailable(t *testing.T) {
	t.Parallel()

	// Nothing in this test binary links in a BLAKE2s implementation.
	_, err := bident.Digest(crypto.BLAKE2s_256, "node-42", "abcdefghij")
	require.ErrorIs(t, err, bident.ErrHashUnavailable)
}
