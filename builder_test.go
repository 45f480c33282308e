package imf

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBuildVirtualTracksExpandsRepeatCount(t *testing.T) {
	registerFakeBackend(&fakeOpener{packetCount: 1, packetDuration: 1, editRate: Rational{Num: 24, Den: 1}})

	trackFileUUID := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	resolver := NewResolver([]AssetLocator{{UUID: trackFileUUID, URI: "file:///pkg/video.faketrack"}})
	opener := NewOpener(resolver)

	c := &Composition{
		EditRate: Rational{Num: 24, Den: 1},
		MainImage2DTrack: &ImageVirtualTrack{
			ID: uuid.New(),
			Resources: []*TrackFileResource{
				{
					BaseResource:  BaseResource{EditRate: Rational{Num: 24, Den: 1}, Duration: 24, RepeatCount: 3},
					TrackFileUUID: trackFileUUID,
				},
			},
		},
	}

	require.NoError(t, BuildVirtualTracks(c, opener))

	require.Len(t, c.MainImage2DTrack.Expanded, 3)
	want := FromEditUnits(72, Rational{Num: 24, Den: 1})
	require.Equal(t, 0, CompareContentTime(want, c.MainImage2DTrack.Duration))
}

func TestBuildVirtualTracksMarkerTrackNeedsNoOpener(t *testing.T) {
	c := &Composition{
		MainMarkersTrack: &MarkerVirtualTrack{
			ID: uuid.New(),
			Resources: []*MarkerResource{
				{BaseResource: BaseResource{EditRate: Rational{Num: 24, Den: 1}, Duration: 24, RepeatCount: 2}},
			},
		},
	}

	require.NoError(t, BuildVirtualTracks(c, nil))
	require.Len(t, c.MainMarkersTrack.Expanded, 2)
}
