// Package essence describes the media-demuxer collaborator that the
// resource opener and playback scheduler pull packets through: open a
// context on a URI, report stream time bases and codec parameters,
// seek, read packets, close. The bundled mp4demux backend is one
// concrete implementation; hosts may register others by extension.
package essence

import (
	"io"

	"github.com/sandflow/ffmpeg-imf/internal/ratio"
)

// CodecParameters is the subset of a stream's decoder configuration
// the demuxer reports out-of-band, for callers that copy it onto a
// virtual track without needing to decode anything themselves.
type CodecParameters struct {
	CodecID       string
	Width, Height int
	SampleRate    int
	Channels      int
	Extra         []byte
}

// Stream describes one elementary stream inside an opened Context.
type Stream struct {
	Index           int
	TimeBase        ratio.Rational
	CodecParameters CodecParameters
}

// Packet is one demuxed access unit, timestamped in its stream's
// TimeBase.
type Packet struct {
	StreamIndex int
	PTS, DTS    int64
	Duration    int64
	Data        []byte
}

// ErrEOF is returned by Context.ReadPacket when a context has no more
// packets to deliver. It is io.EOF so callers written against Go's
// usual EOF convention compose without a second sentinel.
var ErrEOF = io.EOF

// Context is an open demuxing session on one essence file.
type Context interface {
	// Streams returns the context's elementary streams, most
	// recently reported by Open.
	Streams() []Stream

	// SeekMicroseconds repositions every stream to the first access
	// unit at or before the given microsecond offset.
	SeekMicroseconds(us int64) error

	// ReadPacket returns the next packet across any stream, or
	// ErrEOF once the context is exhausted.
	ReadPacket() (*Packet, error)

	// Close releases the context's resources. It is safe to call at
	// most once.
	Close() error
}

// Opener opens a Context on a resolved essence file URI.
type Opener interface {
	Open(uri string) (Context, error)
}
