package imf

import "fmt"

// BuildVirtualTracks expands every resource repetition on c's tracks
// into a flat ordered list, sums each track's duration, and probes
// the first resource of the image and audio tracks so their codec
// parameters are available before playback starts. It must run once,
// after ParseCPL and before the scheduler is used.
func BuildVirtualTracks(c *Composition, opener *Opener) error {
	if c.MainMarkersTrack != nil {
		buildMarkerTrack(c.MainMarkersTrack)
	}
	if c.MainImage2DTrack != nil {
		if err := buildTrackFileTrack(&c.MainImage2DTrack.Expanded, &c.MainImage2DTrack.Duration, &c.MainImage2DTrack.CodecParameters, c.MainImage2DTrack.Resources, opener); err != nil {
			return fmt.Errorf("imf: building main image track: %w", err)
		}
	}
	for _, audio := range c.MainAudioTracks {
		if err := buildTrackFileTrack(&audio.Expanded, &audio.Duration, &audio.CodecParameters, audio.Resources, opener); err != nil {
			return fmt.Errorf("imf: building audio track %s: %w", audio.ID, err)
		}
	}
	return nil
}

func buildMarkerTrack(t *MarkerVirtualTrack) {
	t.Duration = ZeroContentTime()
	for _, r := range t.Resources {
		for i := uint64(0); i < r.RepeatCount; i++ {
			t.Expanded = append(t.Expanded, r)
			t.Duration = t.Duration.Add(FromEditUnits(r.Duration, r.EditRate).Rational)
		}
	}
}

func buildTrackFileTrack(expanded *[]*TrackFileResource, duration *ContentTime, codecParams *any, resources []*TrackFileResource, opener *Opener) error {
	*duration = ZeroContentTime()
	for _, r := range resources {
		for i := uint64(0); i < r.RepeatCount; i++ {
			*expanded = append(*expanded, r)
			*duration = duration.Add(FromEditUnits(r.Duration, r.EditRate).Rational)
		}
	}

	if len(*expanded) == 0 {
		return nil
	}

	ctx, err := opener.Open((*expanded)[0])
	if err != nil {
		return err
	}
	streams := ctx.Streams()
	if len(streams) > 0 {
		p := streams[0].CodecParameters
		if p.Channels == 0 && (p.Width == 0 || p.Height == 0) {
			log.Warn().Str("uuid", (*expanded)[0].TrackFileUUID.String()).Msg("imf: first resource reports empty codec parameters")
		}
		*codecParams = p
	}
	return nil
}
