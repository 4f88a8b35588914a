// Package bident derives salted pseudonyms from a node's base identifier.
//
// A pseudonym is the hex-encoded digest of the base identifier
// concatenated with a short random salt.
// Fresh salt on every derivation keeps two pseudonyms
// for the same node unlinkable to an observer.
package bident

import (
	"crypto"
	_ "crypto/sha256" // Registers crypto.SHA256.
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// SaltLen is the number of characters in a salt produced by [NewSalt].
const SaltLen = 10

// Alphabet is the set of characters a salt is drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DigestSize is the required output size, in bytes, of the hash
// used for pseudonyms.
const DigestSize = 32

// Bytes at or above this value are rejected while sampling salt characters,
// so that every character of Alphabet is equally likely.
const rejectAbove = 256 - (256 % len(Alphabet))

// ErrHashUnavailable is returned when the configured hash function
// is not linked into the binary.
var ErrHashUnavailable = errors.New("hash function unavailable")

// NewSalt reads from r to produce a salt of [SaltLen] characters,
// each chosen uniformly from [Alphabet].
func NewSalt(r io.Reader) (string, error) {
	out := make([]byte, 0, SaltLen)

	// Usually one read is enough;
	// rejection only discards about 3% of bytes.
	var buf [2 * SaltLen]byte
	for len(out) < SaltLen {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return "", fmt.Errorf("failed to read salt: %w", err)
		}

		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == SaltLen {
				break
			}
		}
	}

	return string(out), nil
}

// Digest returns the lowercase hex encoding of h(base || salt).
// The result is deterministic for a given hash, base, and salt.
func Digest(h crypto.Hash, base, salt string) (string, error) {
	if !h.Available() {
		return "", fmt.Errorf("%w: %v", ErrHashUnavailable, h)
	}

	hh := h.New()
	_, _ = io.WriteString(hh, base)
	_, _ = io.WriteString(hh, salt)
	return hex.EncodeToString(hh.Sum(nil)), nil
}
