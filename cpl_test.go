package imf

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestParseCPLMinimalMarker(t *testing.T) {
	c, err := ParseCPL(openFixture(t, "minimal_marker_cpl.xml"))
	require.NoError(t, err)

	require.Equal(t, "8713c020-2489-45f5-a9f7-87be539e20b5", c.ID.String())
	require.Equal(t, "Hello", c.ContentTitleUTF8)
	require.Equal(t, Rational{Num: 24000, Den: 1001}, c.EditRate)

	require.NotNil(t, c.MainMarkersTrack)
	require.Len(t, c.MainMarkersTrack.Resources, 1)
	res := c.MainMarkersTrack.Resources[0]
	require.Len(t, res.Markers, 1)
	require.Equal(t, "LFOA", res.Markers[0].LabelUTF8)
	require.Equal(t, uint64(5), res.Markers[0].Offset)
	require.Equal(t, StandardMarkersScope, res.Markers[0].ScopeUTF8)
}

func TestParseCPLJoinsAudioAcrossSegments(t *testing.T) {
	c, err := ParseCPL(openFixture(t, "two_segment_audio_cpl.xml"))
	require.NoError(t, err)

	require.Len(t, c.MainAudioTracks, 1)
	track := c.MainAudioTracks[0]
	require.Equal(t, "68e3fae5-0000-0000-0000-b94877fbcdb5", track.ID.String())
	require.Len(t, track.Resources, 2)
}

func TestParseCPLStereoscopicIsPatchWelcome(t *testing.T) {
	_, err := ParseCPL(openFixture(t, "stereoscopic_cpl.xml"))
	require.ErrorIs(t, err, ErrPatchWelcome)
}

func TestParseCPLMissingRootIsInvalidData(t *testing.T) {
	_, err := ParseCPL(strReader("<NotACPL/>"))
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestParseCPLMismatchedMarkerTrackIdIsInvalidData(t *testing.T) {
	xml := `<CompositionPlaylist>
		<Id>urn:uuid:8713c020-2489-45f5-a9f7-87be539e20b5</Id>
		<ContentTitle>X</ContentTitle>
		<EditRate>24 1</EditRate>
		<SegmentList>
			<Segment><SequenceList><MarkerSequence>
				<TrackId>urn:uuid:aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa</TrackId>
				<ResourceList><Resource><IntrinsicDuration>1</IntrinsicDuration></Resource></ResourceList>
			</MarkerSequence></SequenceList></Segment>
			<Segment><SequenceList><MarkerSequence>
				<TrackId>urn:uuid:bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb</TrackId>
				<ResourceList><Resource><IntrinsicDuration>1</IntrinsicDuration></Resource></ResourceList>
			</MarkerSequence></SequenceList></Segment>
		</SegmentList>
	</CompositionPlaylist>`
	_, err := ParseCPL(strReader(xml))
	require.ErrorIs(t, err, ErrInvalidData)
}
