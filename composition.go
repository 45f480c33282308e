package imf

// Composition is the in-memory model of a parsed Composition
// Playlist: its identity, its default edit rate, and the virtual
// tracks assembled from its segments.
type Composition struct {
	ID               UUID
	ContentTitleUTF8 string
	EditRate         Rational

	MainMarkersTrack *MarkerVirtualTrack
	MainImage2DTrack *ImageVirtualTrack
	MainAudioTracks  []*AudioVirtualTrack
}

// Tracks returns every virtual track in declaration order: the
// markers track first, then the image track, then the audio tracks
// in first-occurrence order. This is the order the scheduler uses to
// break ties between tracks with equal current_time.
func (c *Composition) Tracks() []VirtualTrack {
	tracks := make([]VirtualTrack, 0, 2+len(c.MainAudioTracks))
	if c.MainMarkersTrack != nil {
		tracks = append(tracks, c.MainMarkersTrack)
	}
	if c.MainImage2DTrack != nil {
		tracks = append(tracks, c.MainImage2DTrack)
	}
	for _, a := range c.MainAudioTracks {
		tracks = append(tracks, a)
	}
	return tracks
}

// audioTrackByID returns the audio virtual track already accumulated
// for id, or nil if this is the first sequence seen for that TrackId.
func (c *Composition) audioTrackByID(id UUID) *AudioVirtualTrack {
	for _, a := range c.MainAudioTracks {
		if a.ID == id {
			return a
		}
	}
	return nil
}
