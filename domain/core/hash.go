package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// ComputeScenarioFingerprint hashes a scenario's declared inputs together
// with the run seed so that identical inputs are recognizable across runs.
func ComputeScenarioFingerprint(name string, seed int64, fields map[string]string) Hash {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	data.WriteString(fmt.Sprintf("scenario:%s|seed:%d", name, seed))
	for _, key := range keys {
		data.WriteString(fmt.Sprintf("|%s:%s", key, fields[key]))
	}
	return NewHash([]byte(data.String()))
}

// DeriveSeed deterministically derives a sub-seed from a base seed and a
// stream name. Every stochastic stage draws from its own derived stream so
// that concurrent evaluations cannot interfere and adding a stage never
// shifts another stage's draws.
func DeriveSeed(base int64, parts ...string) int64 {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(base))
	h.Write(buf[:])
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
