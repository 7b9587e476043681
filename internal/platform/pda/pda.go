// Package pda derives program addresses: 32-byte keys computed from a program id and an
// ordered list of seeds. A derived address is never a valid ed25519 public key, so no
// private key can sign for it.
package pda

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

const (
	AddressLength = 32
	MaxSeedLength = 32
	MaxSeeds      = 16
)

const pdaMarker = "ProgramDerivedAddress"

var (
	ErrInvalidSeeds   = errors.New("invalid seeds")
	ErrOnCurve        = errors.New("derived address lies on the ed25519 curve")
	ErrNoViableBump   = errors.New("unable to find a viable program address bump seed")
	ErrInvalidAddress = errors.New("invalid address")
)

// Address is a 32-byte account key. Its text form is base58.
type Address [AddressLength]byte

// Zero is the all-zero address.
var Zero Address

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

func (a Address) IsZero() bool {
	return a == Zero
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Parse decodes a base58 address.
func Parse(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return FromBytes(raw)
}

func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidAddress, AddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// NewRandom returns a random address. It is used for identities that only need to be unique.
func NewRandom() (Address, error) {
	var a Address
	if _, err := rand.Read(a[:]); err != nil {
		return Zero, fmt.Errorf("generate address: %w", err)
	}
	return a, nil
}

// FromName hashes name into an address. Handy for a deterministic default program id.
func FromName(name string) Address {
	return Address(sha256.Sum256([]byte(name)))
}

// U64 encodes v as an 8-byte little-endian seed.
func U64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// CreateProgramAddress hashes the seeds with the program id. It fails when the result is a
// valid curve point, in which case the caller should try another bump.
func CreateProgramAddress(seeds [][]byte, programID Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Zero, fmt.Errorf("%w: %d seeds, max %d", ErrInvalidSeeds, len(seeds), MaxSeeds)
	}

	h := sha256.New()
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return Zero, fmt.Errorf("%w: seed %d is %d bytes, max %d", ErrInvalidSeeds, i, len(seed), MaxSeedLength)
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	var a Address
	copy(a[:], h.Sum(nil))
	if IsOnCurve(a) {
		return Zero, ErrOnCurve
	}
	return a, nil
}

// FindProgramAddress searches bumps from 255 down and returns the first off-curve address.
func FindProgramAddress(seeds [][]byte, programID Address) (Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return Zero, 0, fmt.Errorf("%w: %d seeds leave no room for a bump", ErrInvalidSeeds, len(seeds))
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		a, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return a, uint8(bump), nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return Zero, 0, err
		}
	}
	return Zero, 0, ErrNoViableBump
}

// IsOnCurve reports whether a decodes to a point on the ed25519 curve.
func IsOnCurve(a Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err == nil
}
