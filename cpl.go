package imf

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/sandflow/ffmpeg-imf/internal/xmlhelp"
)

// ParseCPL reads a Composition Playlist document and returns a fully
// validated Composition, or an error wrapping ErrInvalidData or
// ErrPatchWelcome. Parsing is single-pass over the XML tree; any
// failure aborts the walk and discards whatever had been accumulated.
func ParseCPL(r io.Reader) (*Composition, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("imf: reading CPL document: %w", ErrInvalidData)
	}

	root := doc.Root()
	if root == nil || xmlhelp.LocalName(root) != "CompositionPlaylist" {
		return nil, fmt.Errorf("imf: root element is not CompositionPlaylist: %w", ErrInvalidData)
	}

	for _, child := range root.ChildElements() {
		switch xmlhelp.LocalName(child) {
		case "Id", "ContentTitle", "EditRate", "SegmentList":
		default:
			log.Info().Str("element", xmlhelp.LocalName(child)).Msg("imf: ignoring unrecognized CompositionPlaylist child")
		}
	}

	idEl := xmlhelp.ChildByName(root, "Id")
	if idEl == nil {
		return nil, fmt.Errorf("imf: CompositionPlaylist missing Id: %w", ErrInvalidData)
	}
	id, err := xmlhelp.ReadUUID(idEl)
	if err != nil {
		return nil, fmt.Errorf("imf: CompositionPlaylist Id: %w: %v", ErrInvalidData, err)
	}

	titleEl := xmlhelp.ChildByName(root, "ContentTitle")
	if titleEl == nil {
		return nil, fmt.Errorf("imf: CompositionPlaylist missing ContentTitle: %w", ErrInvalidData)
	}

	editRateEl := xmlhelp.ChildByName(root, "EditRate")
	if editRateEl == nil {
		return nil, fmt.Errorf("imf: CompositionPlaylist missing EditRate: %w", ErrInvalidData)
	}
	editRate, err := xmlhelp.ReadRational(editRateEl)
	if err != nil {
		return nil, fmt.Errorf("imf: CompositionPlaylist EditRate: %w: %v", ErrInvalidData, err)
	}

	c := &Composition{
		ID:               id,
		ContentTitleUTF8: xmlhelp.Text(titleEl),
		EditRate:         editRate,
	}

	segmentList := xmlhelp.ChildByName(root, "SegmentList")
	for _, segment := range xmlhelp.ChildrenByName(segmentList, "Segment") {
		sequenceList := xmlhelp.ChildByName(segment, "SequenceList")
		if sequenceList == nil {
			continue
		}
		for _, sequence := range sequenceList.ChildElements() {
			switch xmlhelp.LocalName(sequence) {
			case "MarkerSequence":
				if err := c.appendMarkerSequence(sequence, editRate); err != nil {
					return nil, err
				}
			case "MainImageSequence":
				if err := c.appendImageSequence(sequence, editRate); err != nil {
					return nil, err
				}
			case "MainAudioSequence":
				if err := c.appendAudioSequence(sequence, editRate); err != nil {
					return nil, err
				}
			default:
				log.Info().Str("sequence", xmlhelp.LocalName(sequence)).Msg("imf: ignoring unrecognized sequence kind")
			}
		}
	}

	return c, nil
}

func (c *Composition) appendMarkerSequence(sequence *etree.Element, cplEditRate Rational) error {
	trackID, err := sequenceTrackID(sequence)
	if err != nil {
		return err
	}

	if c.MainMarkersTrack == nil {
		c.MainMarkersTrack = &MarkerVirtualTrack{ID: trackID}
	} else if c.MainMarkersTrack.ID != trackID {
		return fmt.Errorf("imf: MarkerSequence TrackId %s does not match earlier %s: %w", trackID, c.MainMarkersTrack.ID, ErrInvalidData)
	}

	resources := xmlhelp.ChildrenByName(xmlhelp.ChildByName(sequence, "ResourceList"), "Resource")
	for _, el := range resources {
		res, err := readMarkerResource(el, cplEditRate)
		if err != nil {
			return err
		}
		c.MainMarkersTrack.Resources = append(c.MainMarkersTrack.Resources, res)
	}
	return nil
}

func (c *Composition) appendImageSequence(sequence *etree.Element, cplEditRate Rational) error {
	if xmlhelp.DescendantNamed(sequence, "Left") || xmlhelp.DescendantNamed(sequence, "Right") {
		return fmt.Errorf("imf: stereoscopic MainImageSequence is not supported: %w", ErrPatchWelcome)
	}

	trackID, err := sequenceTrackID(sequence)
	if err != nil {
		return err
	}

	if c.MainImage2DTrack == nil {
		c.MainImage2DTrack = &ImageVirtualTrack{ID: trackID}
	} else if c.MainImage2DTrack.ID != trackID {
		return fmt.Errorf("imf: MainImageSequence TrackId %s does not match earlier %s: %w", trackID, c.MainImage2DTrack.ID, ErrInvalidData)
	}

	resources := xmlhelp.ChildrenByName(xmlhelp.ChildByName(sequence, "ResourceList"), "Resource")
	for _, el := range resources {
		res, err := readTrackFileResource(el, cplEditRate)
		if err != nil {
			return err
		}
		c.MainImage2DTrack.Resources = append(c.MainImage2DTrack.Resources, res)
	}
	return nil
}

func (c *Composition) appendAudioSequence(sequence *etree.Element, cplEditRate Rational) error {
	trackID, err := sequenceTrackID(sequence)
	if err != nil {
		return err
	}

	track := c.audioTrackByID(trackID)
	if track == nil {
		track = &AudioVirtualTrack{ID: trackID}
		c.MainAudioTracks = append(c.MainAudioTracks, track)
	}

	resources := xmlhelp.ChildrenByName(xmlhelp.ChildByName(sequence, "ResourceList"), "Resource")
	for _, el := range resources {
		res, err := readTrackFileResource(el, cplEditRate)
		if err != nil {
			return err
		}
		track.Resources = append(track.Resources, res)
	}
	return nil
}

func sequenceTrackID(sequence *etree.Element) (UUID, error) {
	el := xmlhelp.ChildByName(sequence, "TrackId")
	if el == nil {
		return UUID{}, fmt.Errorf("imf: %s missing TrackId: %w", xmlhelp.LocalName(sequence), ErrInvalidData)
	}
	id, err := xmlhelp.ReadUUID(el)
	if err != nil {
		return UUID{}, fmt.Errorf("imf: %s TrackId: %w: %v", xmlhelp.LocalName(sequence), ErrInvalidData, err)
	}
	return id, nil
}

// readBaseResource implements the common resource-field read
// described for §4.B's resource readers: edit_rate inherits the CPL
// default when absent, entry_point defaults to 0, duration is
// SourceDuration when present else IntrinsicDuration-EntryPoint, and
// repeat_count defaults to 1.
func readBaseResource(el *etree.Element, cplEditRate Rational) (BaseResource, error) {
	editRate := cplEditRate
	if editRateEl := xmlhelp.ChildByName(el, "EditRate"); editRateEl != nil {
		r, err := xmlhelp.ReadRational(editRateEl)
		if err != nil {
			return BaseResource{}, fmt.Errorf("imf: Resource EditRate: %w: %v", ErrInvalidData, err)
		}
		editRate = r
	}
	if editRate.Den == 0 {
		return BaseResource{}, fmt.Errorf("imf: Resource EditRate has a zero denominator: %w", ErrInvalidData)
	}

	var entryPoint uint64
	if entryPointEl := xmlhelp.ChildByName(el, "EntryPoint"); entryPointEl != nil {
		v, err := xmlhelp.ReadUint(entryPointEl)
		if err != nil {
			return BaseResource{}, fmt.Errorf("imf: Resource EntryPoint: %w: %v", ErrInvalidData, err)
		}
		entryPoint = v
	}

	intrinsicEl := xmlhelp.ChildByName(el, "IntrinsicDuration")
	if intrinsicEl == nil {
		return BaseResource{}, fmt.Errorf("imf: Resource missing IntrinsicDuration: %w", ErrInvalidData)
	}
	intrinsicDuration, err := xmlhelp.ReadUint(intrinsicEl)
	if err != nil {
		return BaseResource{}, fmt.Errorf("imf: Resource IntrinsicDuration: %w: %v", ErrInvalidData, err)
	}

	if entryPoint > intrinsicDuration {
		return BaseResource{}, fmt.Errorf("imf: Resource EntryPoint %d exceeds IntrinsicDuration %d: %w", entryPoint, intrinsicDuration, ErrInvalidData)
	}
	duration := intrinsicDuration - entryPoint
	if sourceDurationEl := xmlhelp.ChildByName(el, "SourceDuration"); sourceDurationEl != nil {
		v, err := xmlhelp.ReadUint(sourceDurationEl)
		if err != nil {
			return BaseResource{}, fmt.Errorf("imf: Resource SourceDuration: %w: %v", ErrInvalidData, err)
		}
		duration = v
	}

	if entryPoint+duration > intrinsicDuration {
		return BaseResource{}, fmt.Errorf("imf: Resource entry_point+duration %d exceeds IntrinsicDuration %d: %w", entryPoint+duration, intrinsicDuration, ErrInvalidData)
	}

	repeatCount := uint64(1)
	if repeatCountEl := xmlhelp.ChildByName(el, "RepeatCount"); repeatCountEl != nil {
		v, err := xmlhelp.ReadUint(repeatCountEl)
		if err != nil {
			return BaseResource{}, fmt.Errorf("imf: Resource RepeatCount: %w: %v", ErrInvalidData, err)
		}
		repeatCount = v
	}

	return BaseResource{
		EditRate:    editRate,
		EntryPoint:  entryPoint,
		Duration:    duration,
		RepeatCount: repeatCount,
	}, nil
}

func readTrackFileResource(el *etree.Element, cplEditRate Rational) (*TrackFileResource, error) {
	base, err := readBaseResource(el, cplEditRate)
	if err != nil {
		return nil, err
	}

	idEl := xmlhelp.ChildByName(el, "TrackFileId")
	if idEl == nil {
		return nil, fmt.Errorf("imf: Resource missing TrackFileId: %w", ErrInvalidData)
	}
	trackFileUUID, err := xmlhelp.ReadUUID(idEl)
	if err != nil {
		return nil, fmt.Errorf("imf: Resource TrackFileId: %w: %v", ErrInvalidData, err)
	}

	return &TrackFileResource{BaseResource: base, TrackFileUUID: trackFileUUID}, nil
}

func readMarkerResource(el *etree.Element, cplEditRate Rational) (*MarkerResource, error) {
	base, err := readBaseResource(el, cplEditRate)
	if err != nil {
		return nil, err
	}

	var markers []Marker
	for _, markerEl := range xmlhelp.ChildrenByName(el, "Marker") {
		offsetEl := xmlhelp.ChildByName(markerEl, "Offset")
		if offsetEl == nil {
			return nil, fmt.Errorf("imf: Marker missing Offset: %w", ErrInvalidData)
		}
		offset, err := xmlhelp.ReadUint(offsetEl)
		if err != nil {
			return nil, fmt.Errorf("imf: Marker Offset: %w: %v", ErrInvalidData, err)
		}

		labelEl := xmlhelp.ChildByName(markerEl, "Label")
		if labelEl == nil {
			return nil, fmt.Errorf("imf: Marker missing Label: %w", ErrInvalidData)
		}
		scope, ok := xmlhelp.Attribute(labelEl, "scope")
		if !ok {
			scope = StandardMarkersScope
		}

		markers = append(markers, Marker{
			LabelUTF8: xmlhelp.Text(labelEl),
			ScopeUTF8: scope,
			Offset:    offset,
		})
	}

	return &MarkerResource{BaseResource: base, Markers: markers}, nil
}
