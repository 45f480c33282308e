package imf

// VirtualTrack is the tagged sum over a CPL's three track kinds:
// MarkerVirtualTrack, ImageVirtualTrack and AudioVirtualTrack. The
// concrete type is the tag.
type VirtualTrack interface {
	// TrackID returns the UUID shared by every sequence contributing
	// to this track.
	TrackID() UUID

	// expanded returns the resource list after repeat_count expansion,
	// populated by the virtual-track builder. Until the builder runs
	// this is empty.
	expanded() []Resource

	// duration returns the track's total ContentTime, populated by
	// the virtual-track builder.
	duration() ContentTime
}

// MarkerVirtualTrack is the CPL's single optional main markers track.
type MarkerVirtualTrack struct {
	ID        UUID
	Resources []*MarkerResource

	Expanded []*MarkerResource
	Duration ContentTime
}

func (t *MarkerVirtualTrack) TrackID() UUID { return t.ID }

func (t *MarkerVirtualTrack) expanded() []Resource {
	out := make([]Resource, len(t.Expanded))
	for i, r := range t.Expanded {
		out[i] = r
	}
	return out
}

func (t *MarkerVirtualTrack) duration() ContentTime { return t.Duration }

// ImageVirtualTrack is the CPL's single optional main 2D image track.
type ImageVirtualTrack struct {
	ID        UUID
	Resources []*TrackFileResource

	Expanded []*TrackFileResource
	Duration ContentTime

	// CodecParameters is filled in by the virtual-track builder from
	// the first resource's opened stream.
	CodecParameters any
}

func (t *ImageVirtualTrack) TrackID() UUID { return t.ID }

func (t *ImageVirtualTrack) expanded() []Resource {
	out := make([]Resource, len(t.Expanded))
	for i, r := range t.Expanded {
		out[i] = r
	}
	return out
}

func (t *ImageVirtualTrack) duration() ContentTime { return t.Duration }

// AudioVirtualTrack is one of the CPL's zero-or-more main audio
// tracks, keyed by TrackId across segments.
type AudioVirtualTrack struct {
	ID        UUID
	Resources []*TrackFileResource

	Expanded []*TrackFileResource
	Duration ContentTime

	CodecParameters any
}

func (t *AudioVirtualTrack) TrackID() UUID { return t.ID }

func (t *AudioVirtualTrack) expanded() []Resource {
	out := make([]Resource, len(t.Expanded))
	for i, r := range t.Expanded {
		out[i] = r
	}
	return out
}

func (t *AudioVirtualTrack) duration() ContentTime { return t.Duration }

// ExpandedResources exposes a VirtualTrack's post-repeat_count
// resource list to callers outside the package, in the order the
// scheduler walks them.
func ExpandedResources(t VirtualTrack) []Resource { return t.expanded() }

// TrackDuration exposes a VirtualTrack's total ContentTime.
func TrackDuration(t VirtualTrack) ContentTime { return t.duration() }
