package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// RandomSource supplies the engine's randomness
type RandomSource interface {
	RandomU32() (uint32, error)
}

// RandomFunc adapts a function to RandomSource
type RandomFunc func() (uint32, error)

func (f RandomFunc) RandomU32() (uint32, error) { return f() }

// SaltedSource derives values from a process seed and a per-request salt.
// The same seed and salt always yield the same sequence.
type SaltedSource struct {
	key     [32]byte
	salt    []byte
	counter uint64
}

// NewSaltedSource returns a source for one request. Seeds of any length are
// hashed down to a 32-byte BLAKE2b key.
func NewSaltedSource(seed, salt []byte) *SaltedSource {
	return &SaltedSource{
		key:  blake2b.Sum256(seed),
		salt: append([]byte(nil), salt...),
	}
}

// RandomU32 hashes seed, salt and call counter, then decodes the first four bytes little-endian
func (s *SaltedSource) RandomU32() (uint32, error) {
	h, err := blake2b.New256(s.key[:])
	if err != nil {
		return 0, fmt.Errorf("derive random value: %w", err)
	}
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], s.counter)
	s.counter++

	h.Write(s.salt)
	h.Write(ctr[:])
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint32(sum[:4]), nil
}

// CryptoSource reads from crypto/rand
type CryptoSource struct{}

func (CryptoSource) RandomU32() (uint32, error) {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("crypto/rand: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// NewSeed returns a fresh 32-byte process seed
func NewSeed() ([]byte, error) {
	seed := make([]byte, 32)
	if _, err := crand.Read(seed); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return seed, nil
}
