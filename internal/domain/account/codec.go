package account

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
)

const DiscriminatorLength = 8

var discriminators = map[Kind][DiscriminatorLength]byte{}

func init() {
	for _, k := range []Kind{KindCounter, KindRegistrations, KindPoll, KindCandidate, KindVoter} {
		discriminators[k] = computeDiscriminator(k)
	}
}

func computeDiscriminator(k Kind) [DiscriminatorLength]byte {
	sum := sha256.Sum256([]byte("account:" + string(k)))
	var d [DiscriminatorLength]byte
	copy(d[:], sum[:DiscriminatorLength])
	return d
}

// Discriminator returns the 8-byte tag that prefixes every record of kind k.
func Discriminator(k Kind) [DiscriminatorLength]byte {
	return discriminators[k]
}

// KindOf reads the discriminator of data.
func KindOf(data []byte) (Kind, error) {
	if len(data) < DiscriminatorLength {
		return "", ErrAccountDataTooSmall
	}
	for k, d := range discriminators {
		if bytes.Equal(d[:], data[:DiscriminatorLength]) {
			return k, nil
		}
	}
	return "", ErrUnknownDiscriminator
}

type encoder struct {
	buf bytes.Buffer
}

func newEncoder(k Kind) *encoder {
	e := &encoder{}
	d := Discriminator(k)
	e.buf.Write(d[:])
	return e
}

func (e *encoder) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) i64(v int64) {
	e.u64(uint64(v))
}

func (e *encoder) str(s string) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(len(s)))
	e.buf.Write(b[:])
	e.buf.WriteString(s)
}

func (e *encoder) boolean(v bool) {
	if v {
		e.buf.WriteByte(1)
		return
	}
	e.buf.WriteByte(0)
}

type decoder struct {
	data []byte
	off  int
	err  error
}

func newDecoder(k Kind, data []byte) *decoder {
	d := &decoder{data: data}
	if len(data) < DiscriminatorLength {
		d.err = ErrAccountDataTooSmall
		return d
	}
	want := Discriminator(k)
	if !bytes.Equal(want[:], data[:DiscriminatorLength]) {
		d.err = fmt.Errorf("%w: expected %s", ErrDiscriminatorMismatch, k)
		return d
	}
	d.off = DiscriminatorLength
	return d
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || len(d.data)-d.off < n {
		d.err = ErrAccountDataTooSmall
		return nil
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) u64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *decoder) i64() int64 {
	return int64(d.u64())
}

func (d *decoder) str() string {
	lb := d.take(4)
	if lb == nil {
		return ""
	}
	n := binary.LittleEndian.Uint32(lb)
	if uint64(n) > math.MaxInt32 {
		d.err = ErrAccountDataTooSmall
		return ""
	}
	return string(d.take(int(n)))
}

func (d *decoder) boolean() bool {
	b := d.take(1)
	if b == nil {
		return false
	}
	switch b[0] {
	case 0:
		return false
	case 1:
		return true
	default:
		d.err = fmt.Errorf("invalid bool byte %d", b[0])
		return false
	}
}

func (d *decoder) finish() error {
	if d.err != nil {
		return d.err
	}
	if d.off != len(d.data) {
		return ErrAccountDataTrailing
	}
	return nil
}

func (c *Counter) Encode() []byte {
	e := newEncoder(KindCounter)
	e.u64(c.Count)
	return e.buf.Bytes()
}

func (c *Counter) Decode(data []byte) error {
	d := newDecoder(KindCounter, data)
	c.Count = d.u64()
	return d.finish()
}

func (r *Registrations) Encode() []byte {
	e := newEncoder(KindRegistrations)
	e.u64(r.Count)
	return e.buf.Bytes()
}

func (r *Registrations) Decode(data []byte) error {
	d := newDecoder(KindRegistrations, data)
	r.Count = d.u64()
	return d.finish()
}

func (p *Poll) Encode() []byte {
	e := newEncoder(KindPoll)
	e.u64(p.ID)
	e.str(p.Description)
	e.i64(p.Start)
	e.i64(p.End)
	e.u64(p.Candidates)
	return e.buf.Bytes()
}

func (p *Poll) Decode(data []byte) error {
	d := newDecoder(KindPoll, data)
	p.ID = d.u64()
	p.Description = d.str()
	p.Start = d.i64()
	p.End = d.i64()
	p.Candidates = d.u64()
	return d.finish()
}

// Candidate layout: poll_id, name, has_registered, votes, then cid. The id is also implied by
// the address; it trails the record so enumeration can report it without re-deriving.
func (c *Candidate) Encode() []byte {
	e := newEncoder(KindCandidate)
	e.u64(c.PollID)
	e.str(c.Name)
	e.boolean(c.HasRegistered)
	e.u64(c.Votes)
	e.u64(c.CID)
	return e.buf.Bytes()
}

func (c *Candidate) Decode(data []byte) error {
	d := newDecoder(KindCandidate, data)
	c.PollID = d.u64()
	c.Name = d.str()
	c.HasRegistered = d.boolean()
	c.Votes = d.u64()
	c.CID = d.u64()
	return d.finish()
}

func (v *Voter) Encode() []byte {
	e := newEncoder(KindVoter)
	e.u64(v.PollID)
	e.u64(v.CID)
	e.boolean(v.HasVoted)
	return e.buf.Bytes()
}

func (v *Voter) Decode(data []byte) error {
	d := newDecoder(KindVoter, data)
	v.PollID = d.u64()
	v.CID = d.u64()
	v.HasVoted = d.boolean()
	return d.finish()
}
