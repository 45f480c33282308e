// Package mp4demux is the bundled essence.Opener backend for IMF
// track files wrapped in ISOBMFF ("MP4"): one video or audio elementary
// stream per file, the shape every CPL TrackFileResource points at.
package mp4demux

import (
	"fmt"
	"os"

	"github.com/go-webdl/mp4"

	"github.com/sandflow/ffmpeg-imf/essence"
	"github.com/sandflow/ffmpeg-imf/internal/ratio"
)

// Backend is the essence.Opener registered for the "mp4", "m4a" and
// "m4v" extensions. IMF essence is nominally MXF-wrapped, but the
// retrieval pack's only demuxing collaborator is go-webdl/mp4's
// ISOBMFF reader, so that is what this backend speaks; a host linking
// a real MXF reader registers it under "mxf" ahead of this package's
// init.
type Backend struct{}

func init() {
	essence.Register("mp4", Backend{})
	essence.Register("m4a", Backend{})
	essence.Register("m4v", Backend{})
}

func (Backend) Open(uri string) (essence.Context, error) {
	f, err := os.Open(uri)
	if err != nil {
		return nil, fmt.Errorf("mp4demux: opening %q: %w", uri, err)
	}

	boxes, err := mp4.DecodeBoxes(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mp4demux: decoding %q: %w", uri, err)
	}

	track, err := firstTrack(boxes)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mp4demux: %q: %w", uri, err)
	}

	return &Context{file: f, track: track}, nil
}

// firstTrack walks the top-level box list for the moov box and
// returns the sample table of its first TrackBox. IMF essence files
// carry exactly one elementary stream, so "first" is "only".
func firstTrack(boxes []mp4.Box) (*trackInfo, error) {
	var moov *mp4.MovieBox
	for _, b := range boxes {
		if m, ok := b.(*mp4.MovieBox); ok {
			moov = m
			break
		}
	}
	if moov == nil {
		return nil, fmt.Errorf("no moov box")
	}

	for _, child := range moov.Mp4BoxChildren() {
		trak, ok := child.(*mp4.TrackBox)
		if !ok {
			continue
		}
		info, err := readTrack(trak)
		if err != nil {
			return nil, err
		}
		return info, nil
	}
	return nil, fmt.Errorf("moov has no trak box")
}

type sample struct {
	offset   int64
	size     uint32
	dts      int64
	duration uint32
}

type trackInfo struct {
	timescale uint32
	codec     essence.CodecParameters
	samples   []sample
}

func readTrack(trak *mp4.TrackBox) (*trackInfo, error) {
	var mdia *mp4.MediaBox
	for _, c := range trak.Mp4BoxChildren() {
		if m, ok := c.(*mp4.MediaBox); ok {
			mdia = m
		}
	}
	if mdia == nil {
		return nil, fmt.Errorf("trak has no mdia box")
	}

	info := &trackInfo{}
	var stbl *mp4.SampleTableBox
	for _, c := range mdia.Mp4BoxChildren() {
		switch b := c.(type) {
		case *mp4.MediaHeaderBox:
			info.timescale = b.Timescale
		case *mp4.MediaInformationBox:
			for _, minfChild := range b.Mp4BoxChildren() {
				if s, ok := minfChild.(*mp4.SampleTableBox); ok {
					stbl = s
				}
			}
		}
	}
	if stbl == nil {
		return nil, fmt.Errorf("mdia has no stbl box")
	}

	var stsz *mp4.SampleSizeBox
	var stsc *mp4.SampleToChunkBox
	var stco *mp4.ChunkOffsetBox
	var stts *mp4.TimeToSampleBox
	for _, c := range stbl.Mp4BoxChildren() {
		switch b := c.(type) {
		case *mp4.SampleDescriptionBox:
			info.codec = readSampleEntry(b)
		case *mp4.SampleSizeBox:
			stsz = b
		case *mp4.SampleToChunkBox:
			stsc = b
		case *mp4.ChunkOffsetBox:
			stco = b
		case *mp4.TimeToSampleBox:
			stts = b
		}
	}
	if stsz == nil || stsc == nil || stco == nil || stts == nil {
		return nil, fmt.Errorf("stbl is missing a required sample table box")
	}

	offsets := sampleOffsets(stsc, stco, stsz)
	durations := sampleDurations(stts, len(offsets))

	samples := make([]sample, len(offsets))
	var dts int64
	for i := range offsets {
		samples[i] = sample{
			offset:   offsets[i],
			size:     sampleSize(stsz, i),
			dts:      dts,
			duration: durations[i],
		}
		dts += int64(durations[i])
	}
	info.samples = samples

	return info, nil
}

// sampleOffsets expands the chunk-oriented stsc/stco tables into a
// flat per-sample byte-offset list.
func sampleOffsets(stsc *mp4.SampleToChunkBox, stco *mp4.ChunkOffsetBox, stsz *mp4.SampleSizeBox) []int64 {
	total := sampleCount(stsz)
	offsets := make([]int64, 0, total)

	sample := 0
	for chunkIdx, chunkOffset := range stco.ChunkOffsets {
		chunkNumber := uint32(chunkIdx + 1)
		samplesInChunk := samplesPerChunk(stsc, chunkNumber)
		pos := int64(chunkOffset)
		for i := uint32(0); i < samplesInChunk && sample < total; i++ {
			offsets = append(offsets, pos)
			pos += int64(sampleSize(stsz, sample))
			sample++
		}
	}
	return offsets
}

func samplesPerChunk(stsc *mp4.SampleToChunkBox, chunkNumber uint32) uint32 {
	var samplesPerChunk uint32 = 1
	for _, e := range stsc.Entries {
		if chunkNumber < e.FirstChunk {
			break
		}
		samplesPerChunk = e.SamplesPerChunk
	}
	return samplesPerChunk
}

func sampleCount(stsz *mp4.SampleSizeBox) int {
	if stsz.SampleSize != 0 {
		return int(stsz.SampleCount)
	}
	return len(stsz.EntrySizes)
}

func sampleSize(stsz *mp4.SampleSizeBox, index int) uint32 {
	if stsz.SampleSize != 0 {
		return stsz.SampleSize
	}
	return stsz.EntrySizes[index]
}

func sampleDurations(stts *mp4.TimeToSampleBox, total int) []uint32 {
	durations := make([]uint32, 0, total)
	for _, e := range stts.Entries {
		for i := uint32(0); i < e.SampleCount && len(durations) < total; i++ {
			durations = append(durations, e.SampleDelta)
		}
	}
	for len(durations) < total {
		durations = append(durations, 0)
	}
	return durations
}

func readSampleEntry(stsd *mp4.SampleDescriptionBox) essence.CodecParameters {
	children := stsd.Mp4BoxChildren()
	if len(children) == 0 {
		return essence.CodecParameters{}
	}

	switch e := children[0].(type) {
	case *mp4.VisualSampleEntryBox:
		return essence.CodecParameters{
			CodecID: string(e.SampleEntry.Header.Type.String()),
			Width:   int(e.Width),
			Height:  int(e.Height),
			Extra:   sampleEntryExtra(e.Mp4BoxChildren()),
		}
	case *mp4.AudioSampleEntryBox:
		return essence.CodecParameters{
			CodecID:    string(e.SampleEntry.Header.Type.String()),
			SampleRate: int(e.SampleRate >> 16),
			Channels:   int(e.ChannelCount),
			Extra:      sampleEntryExtra(e.Mp4BoxChildren()),
		}
	default:
		return essence.CodecParameters{}
	}
}

// sampleEntryExtra reassembles the Annex-B byte stream (start-code
// prefixed NAL units) from an avcC box's parameter sets. HEVC
// decoder-configuration records are not unpacked here: the teacher
// code this is grounded on only shows the hvcC construction path, not
// a field-accurate decode-side layout, so CodecParameters.Extra stays
// empty for hvc1/hev1 sample entries rather than guessing field names.
func sampleEntryExtra(children []mp4.Box) []byte {
	startCode := []byte{0, 0, 0, 1}
	for _, c := range children {
		if b, ok := c.(*mp4.AVCConfigurationBox); ok {
			var extra []byte
			for _, sps := range b.AVCConfig.SequenceParameterSets {
				extra = append(extra, startCode...)
				extra = append(extra, sps.NALUnit...)
			}
			for _, pps := range b.AVCConfig.PictureParameterSets {
				extra = append(extra, startCode...)
				extra = append(extra, pps.NALUnit...)
			}
			return extra
		}
	}
	return nil
}

// Context is an open ISOBMFF demuxing session over a single
// elementary stream.
type Context struct {
	file  *os.File
	track *trackInfo
	index int
}

func (c *Context) Streams() []essence.Stream {
	return []essence.Stream{{
		Index:           0,
		TimeBase:        ratio.Rational{Num: 1, Den: int64(c.track.timescale)},
		CodecParameters: c.track.codec,
	}}
}

func (c *Context) SeekMicroseconds(us int64) error {
	target := us * int64(c.track.timescale) / 1_000_000
	c.index = 0
	for i, s := range c.track.samples {
		if s.dts > target {
			break
		}
		c.index = i
	}
	return nil
}

func (c *Context) ReadPacket() (*essence.Packet, error) {
	if c.index >= len(c.track.samples) {
		return nil, essence.ErrEOF
	}
	s := c.track.samples[c.index]
	c.index++

	data := make([]byte, s.size)
	if _, err := c.file.ReadAt(data, s.offset); err != nil {
		return nil, fmt.Errorf("mp4demux: reading sample at offset %d: %w", s.offset, err)
	}

	return &essence.Packet{
		StreamIndex: 0,
		PTS:         s.dts,
		DTS:         s.dts,
		Duration:    int64(s.duration),
		Data:        data,
	}, nil
}

func (c *Context) Close() error {
	return c.file.Close()
}
