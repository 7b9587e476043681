package pda

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProgramAddressIsDeterministic(t *testing.T) {
	program := FromName("votee-test")
	seeds := [][]byte{[]byte("counter")}

	a1, bump1, err := FindProgramAddress(seeds, program)
	require.NoError(t, err)
	a2, bump2, err := FindProgramAddress(seeds, program)
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, bump1, bump2)
	assert.False(t, IsOnCurve(a1))

	again, err := CreateProgramAddress([][]byte{[]byte("counter"), {bump1}}, program)
	require.NoError(t, err)
	assert.Equal(t, a1, again)
}

func TestFindProgramAddressSeparatesSeeds(t *testing.T) {
	program := FromName("votee-test")

	seen := map[Address]string{}
	cases := map[string][][]byte{
		"counter":       {[]byte("counter")},
		"registrations": {[]byte("registerations")},
		"poll-1":        {U64(1)},
		"poll-2":        {U64(2)},
		"candidate-1-1": {U64(1), U64(1)},
		"candidate-1-2": {U64(1), U64(2)},
		"voter-1":       {[]byte("voter"), U64(1), FromName("alice").Bytes()},
		"voter-1-bob":   {[]byte("voter"), U64(1), FromName("bob").Bytes()},
	}
	for name, seeds := range cases {
		a, _, err := FindProgramAddress(seeds, program)
		require.NoError(t, err, name)
		if prev, ok := seen[a]; ok {
			t.Fatalf("%s collides with %s", name, prev)
		}
		seen[a] = name
	}

	other, _, err := FindProgramAddress([][]byte{[]byte("counter")}, FromName("another-program"))
	require.NoError(t, err)
	_, dup := seen[other]
	assert.False(t, dup, "program id must take part in derivation")
}

func TestCreateProgramAddressRejectsBadSeeds(t *testing.T) {
	program := FromName("votee-test")

	_, err := CreateProgramAddress([][]byte{bytes.Repeat([]byte{1}, MaxSeedLength+1)}, program)
	require.ErrorIs(t, err, ErrInvalidSeeds)

	tooMany := make([][]byte, MaxSeeds+1)
	for i := range tooMany {
		tooMany[i] = []byte{byte(i)}
	}
	_, err = CreateProgramAddress(tooMany, program)
	require.ErrorIs(t, err, ErrInvalidSeeds)

	_, _, err = FindProgramAddress(tooMany[:MaxSeeds], program)
	require.ErrorIs(t, err, ErrInvalidSeeds)
}

func TestAddressText(t *testing.T) {
	a := FromName("alice")

	parsed, err := Parse(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	text, err := a.MarshalText()
	require.NoError(t, err)
	var back Address
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, a, back)

	_, err = Parse("0OIl")
	require.ErrorIs(t, err, ErrInvalidAddress)

	_, err = Parse(strings.Repeat("1", 5))
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestU64IsLittleEndian(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, U64(1))
	assert.Equal(t, []byte{0x02, 0x01, 0, 0, 0, 0, 0, 0}, U64(0x0102))
}
