package account

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscriminatorMatchesAccountNamespace(t *testing.T) {
	sum := sha256.Sum256([]byte("account:Poll"))
	d := Discriminator(KindPoll)
	assert.Equal(t, sum[:8], d[:])

	kind, err := KindOf((&Voter{}).Encode())
	require.NoError(t, err)
	assert.Equal(t, KindVoter, kind)

	_, err = KindOf([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrAccountDataTooSmall)
	_, err = KindOf(make([]byte, 16))
	require.ErrorIs(t, err, ErrUnknownDiscriminator)
}

func TestPollLayout(t *testing.T) {
	p := &Poll{ID: 7, Description: "lunch", Start: -5, End: 86400, Candidates: 2}
	data := p.Encode()

	// discriminator | id u64 | len u32 | "lunch" | start i64 | end i64 | candidates u64
	require.Len(t, data, 8+8+4+5+8+8+8)
	assert.Equal(t, uint64(7), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(data[16:20]))
	assert.Equal(t, "lunch", string(data[20:25]))
	assert.Equal(t, int64(-5), int64(binary.LittleEndian.Uint64(data[25:33])))
	assert.Equal(t, int64(86400), int64(binary.LittleEndian.Uint64(data[33:41])))
	assert.Equal(t, uint64(2), binary.LittleEndian.Uint64(data[41:49]))

	var back Poll
	require.NoError(t, back.Decode(data))
	assert.Equal(t, *p, back)
}

func TestCandidateLayout(t *testing.T) {
	c := &Candidate{CID: 7, PollID: 1, Name: "Ada", Votes: 9, HasRegistered: true}
	data := c.Encode()

	// discriminator | poll_id u64 | len u32 | "Ada" | has_registered u8 | votes u64 | cid u64
	require.Len(t, data, 8+8+4+3+1+8+8)
	assert.Equal(t, uint64(1), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(data[16:20]))
	assert.Equal(t, "Ada", string(data[20:23]))
	assert.Equal(t, byte(1), data[23])
	assert.Equal(t, uint64(9), binary.LittleEndian.Uint64(data[24:32]))
	assert.Equal(t, uint64(7), binary.LittleEndian.Uint64(data[32:40]))

	var back Candidate
	require.NoError(t, back.Decode(data))
	assert.Equal(t, *c, back)
}

func TestVoterLayout(t *testing.T) {
	v := &Voter{CID: 7, PollID: 1, HasVoted: true}
	data := v.Encode()

	// discriminator | poll_id u64 | cid u64 | has_voted u8
	require.Len(t, data, 8+8+8+1)
	assert.Equal(t, uint64(1), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint64(7), binary.LittleEndian.Uint64(data[16:24]))
	assert.Equal(t, byte(1), data[24])

	var back Voter
	require.NoError(t, back.Decode(data))
	assert.Equal(t, *v, back)
}

func TestDecodeRejectsMalformedData(t *testing.T) {
	counter := (&Counter{Count: 1}).Encode()

	var c Counter
	require.ErrorIs(t, c.Decode(counter[:10]), ErrAccountDataTooSmall)
	require.ErrorIs(t, c.Decode(append(counter, 0)), ErrAccountDataTrailing)

	var r Registrations
	require.ErrorIs(t, r.Decode(counter), ErrDiscriminatorMismatch)

	voter := (&Voter{CID: 1, PollID: 1, HasVoted: true}).Encode()
	voter[len(voter)-1] = 2
	var v Voter
	require.Error(t, v.Decode(voter))

	poll := (&Poll{ID: 1, Description: "x"}).Encode()
	binary.LittleEndian.PutUint32(poll[16:20], 1000)
	var p Poll
	require.ErrorIs(t, p.Decode(poll), ErrAccountDataTooSmall)
}
