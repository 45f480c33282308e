package imf

import (
	"github.com/sandflow/ffmpeg-imf/essence"
	"github.com/sandflow/ffmpeg-imf/internal/ratio"
)

// fakeOpener is a deterministic in-memory essence.Opener registered
// under the "faketrack" extension: every context it opens delivers
// packetCount packets of packetDuration edit units each, so the
// scheduler and builder tests never touch the filesystem.
type fakeOpener struct {
	packetCount    int
	packetDuration int64
	editRate       Rational
	opens          int
}

func (f *fakeOpener) Open(uri string) (essence.Context, error) {
	f.opens++
	return &fakeContext{count: f.packetCount, duration: f.packetDuration, editRate: f.editRate}, nil
}

type fakeContext struct {
	count    int
	duration int64
	editRate Rational
	index    int
	closed   bool
}

func (c *fakeContext) Streams() []essence.Stream {
	return []essence.Stream{{Index: 0, TimeBase: ratio.Rational{Num: c.editRate.Den, Den: c.editRate.Num}}}
}

func (c *fakeContext) SeekMicroseconds(us int64) error {
	c.index = int(us * c.editRate.Num / c.editRate.Den / 1_000_000 / max64(c.duration, 1))
	return nil
}

func (c *fakeContext) ReadPacket() (*essence.Packet, error) {
	if c.index >= c.count {
		return nil, essence.ErrEOF
	}
	pkt := &essence.Packet{
		StreamIndex: 0,
		DTS:         int64(c.index) * c.duration,
		PTS:         int64(c.index) * c.duration,
		Duration:    c.duration,
	}
	c.index++
	return pkt, nil
}

func (c *fakeContext) Close() error {
	c.closed = true
	return nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func registerFakeBackend(o *fakeOpener) {
	essence.Register("faketrack", o)
}
