package imf

import (
	"errors"
	"fmt"

	"github.com/sandflow/ffmpeg-imf/essence"
)

// Packet is one access unit emitted by the Scheduler, already
// rewritten into the composition's time domain and tagged with the
// virtual track it came from. Markers is non-nil only for packets
// drawn from the markers track, whose resources carry no essence
// bytes to emit.
type Packet struct {
	StreamIndex int
	PTS, DTS    int64
	Duration    int64
	Data        []byte
	Markers     []Marker
}

type trackState struct {
	track VirtualTrack

	currentTime          ContentTime
	currentResourceIndex int
	opened               bool
	lastPTS              int64
	duration             ContentTime
	streamIndex          int
}

// Scheduler interleaves a Composition's virtual tracks into a single
// stream of Packets, advancing whichever track is currently behind
// and transparently switching essence contexts at resource
// boundaries.
type Scheduler struct {
	opener    *Opener
	tracks    []*trackState
	interrupt func() bool
}

// NewScheduler builds a Scheduler over every virtual track of c, in
// declaration order (markers, image, audio). BuildVirtualTracks must
// have already run. interrupt, if non-nil, is polled at the start of
// every iteration of NextPacket's loop, before a packet read; a true
// result ends that call with ErrEndOfStream without reading further.
func NewScheduler(c *Composition, opener *Opener, interrupt func() bool) *Scheduler {
	s := &Scheduler{opener: opener, interrupt: interrupt}
	for i, t := range c.Tracks() {
		s.tracks = append(s.tracks, &trackState{
			track:       t,
			currentTime: ZeroContentTime(),
			duration:    TrackDuration(t),
			streamIndex: i,
		})
	}
	return s
}

// NextPacket returns the next packet in composition order, or
// ErrEndOfStream once every track has reached its duration.
func (s *Scheduler) NextPacket() (*Packet, error) {
	for {
		if s.interrupt != nil && s.interrupt() {
			return nil, ErrEndOfStream
		}

		ts := s.selectTrack()
		if ts == nil {
			return nil, ErrEndOfStream
		}

		pkt, err := s.advance(ts)
		if err != nil {
			if errors.Is(err, ErrEndOfStream) {
				// transient underlying EOF: this call loops, but the
				// track's current_time already moved by one edit unit
				// so the selection above cannot pick the same
				// exhausted resource forever.
				continue
			}
			return nil, err
		}
		if pkt == nil {
			continue
		}
		return pkt, nil
	}
}

// selectTrack returns the track with strictly minimal current_time,
// breaking ties by declaration order (the order s.tracks was built
// in). It returns nil once every track has reached its duration.
func (s *Scheduler) selectTrack() *trackState {
	var best *trackState
	allDone := true
	for _, ts := range s.tracks {
		if CompareContentTime(ts.currentTime, ts.duration) < 0 {
			allDone = false
			if best == nil || CompareContentTime(ts.currentTime, best.currentTime) < 0 {
				best = ts
			}
		}
	}
	if allDone {
		return nil
	}
	return best
}

// editUnitDuration returns 1/editRate, in seconds: the smallest
// step current_time can advance by within a single resource.
func editUnitDuration(editRate Rational) Rational {
	return editRate.Inv()
}

// activeResource walks ts's expanded resource list accumulating
// cumulative ContentTime, and returns the index of the first
// resource whose cumulative end is at least current_time plus one
// edit unit. It returns -1 if the track's current_time has reached
// its duration (within one edit unit).
func activeResource(resources []Resource, currentTime ContentTime) (int, error) {
	if len(resources) == 0 {
		return -1, fmt.Errorf("imf: virtual track has no resources: %w", ErrStreamNotFound)
	}

	step := FromEditUnits(1, Base(resources[0]).EditRate)
	threshold := currentTime.Add(step.Rational)

	cumulative := ZeroContentTime()
	for i, r := range resources {
		base := Base(r)
		cumulative = cumulative.Add(FromEditUnits(base.Duration, base.EditRate).Rational)
		if CompareContentTime(cumulative, threshold) >= 0 {
			return i, nil
		}
	}
	return -1, nil
}

// advance runs one iteration of §4.G step 2-4 for ts. When the active
// resource changes, the new context is opened and the packet is read
// from it in the same call. ErrEndOfStream means this track's
// current_time has moved on (by one edit unit, or to the track's
// duration) without a packet, and the caller's loop should retry.
func (s *Scheduler) advance(ts *trackState) (*Packet, error) {
	resources := ExpandedResources(ts.track)

	idx, err := activeResource(resources, ts.currentTime)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		step := editUnitDuration(Base(resources[0]).EditRate)
		if CompareContentTime(ts.currentTime.Add(step), ts.duration) > 0 {
			ts.currentTime = ts.duration
			return nil, ErrEndOfStream
		}
		return nil, fmt.Errorf("imf: no active resource at %v on track: %w", ts.currentTime, ErrStreamNotFound)
	}

	if !ts.opened || idx != ts.currentResourceIndex {
		if err := s.switchResource(ts, resources, idx); err != nil {
			return nil, err
		}
		ts.opened = true
	}
	ts.currentResourceIndex = idx

	resource := resources[idx]
	switch r := resource.(type) {
	case *MarkerResource:
		return s.readMarkerPacket(ts, r)
	case *TrackFileResource:
		return s.readTrackFilePacket(ts, r)
	default:
		return nil, fmt.Errorf("imf: unknown resource kind %T", resource)
	}
}

func (s *Scheduler) switchResource(ts *trackState, resources []Resource, idx int) error {
	if prev, ok := resources[ts.currentResourceIndex].(*TrackFileResource); ok && ts.currentResourceIndex != idx {
		if err := s.opener.Close(prev); err != nil {
			return fmt.Errorf("imf: closing resource: %w", err)
		}
	}
	if next, ok := resources[idx].(*TrackFileResource); ok {
		if _, err := s.opener.Open(next); err != nil {
			return err
		}
	}
	return nil
}

// readMarkerPacket emits a resource's full marker list as a single
// packet spanning the whole resource's duration, since a
// MarkerResource carries no essence file to read finer-grained access
// units from.
func (s *Scheduler) readMarkerPacket(ts *trackState, r *MarkerResource) (*Packet, error) {
	pkt := &Packet{
		StreamIndex: ts.streamIndex,
		PTS:         ts.lastPTS,
		DTS:         ts.lastPTS,
		Duration:    int64(r.Duration),
		Markers:     r.Markers,
	}
	ts.currentTime = ts.currentTime.Add(FromEditUnits(r.Duration, r.EditRate).Rational)
	ts.lastPTS += pkt.Duration
	return pkt, nil
}

func (s *Scheduler) readTrackFilePacket(ts *trackState, r *TrackFileResource) (*Packet, error) {
	ctx, err := s.opener.Open(r)
	if err != nil {
		return nil, err
	}

	ep, err := ctx.ReadPacket()
	if err != nil {
		if errors.Is(err, essence.ErrEOF) {
			step := editUnitDuration(r.EditRate)
			ts.currentTime = ts.currentTime.Add(step)
			return nil, ErrEndOfStream
		}
		return nil, fmt.Errorf("imf: reading packet: %w", err)
	}

	dts := ep.DTS
	if ts.lastPTS > 0 && dts < ts.lastPTS {
		dts = ts.lastPTS
	}
	dts -= int64(r.EntryPoint)

	pkt := &Packet{
		StreamIndex: ts.streamIndex,
		PTS:         ts.lastPTS,
		DTS:         dts,
		Duration:    ep.Duration,
		Data:        ep.Data,
	}

	ts.currentTime = ts.currentTime.Add(FromEditUnits(uint64(ep.Duration), r.EditRate).Rational)
	ts.lastPTS += ep.Duration
	return pkt, nil
}
