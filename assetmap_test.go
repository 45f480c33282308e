package imf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAssetMap(t *testing.T) {
	locators, err := ParseAssetMap(openFixture(t, "assetmap.xml"), "file:///imf/pkg/ASSETMAP.xml")
	require.NoError(t, err)
	require.Len(t, locators, 2)

	require.Equal(t, "11111111-1111-1111-1111-111111111111", locators[0].UUID.String())
	require.Equal(t, "file:///imf/pkg/video.mxf", locators[0].URI)

	require.Equal(t, "22222222-2222-2222-2222-222222222222", locators[1].UUID.String())
	require.Equal(t, "/srv/media/other.mxf", locators[1].URI)
}

func TestIsAbsoluteAssetPath(t *testing.T) {
	require.True(t, isAbsoluteAssetPath("https://example.com/a.mxf"))
	require.True(t, isAbsoluteAssetPath("/srv/media/a.mxf"))
	require.True(t, isAbsoluteAssetPath(`C:\media\a.mxf`))
	require.True(t, isAbsoluteAssetPath(`\\server\share\a.mxf`))
	require.False(t, isAbsoluteAssetPath("a.mxf"))
	require.False(t, isAbsoluteAssetPath("../a.mxf"))
}

func TestParseAssetMapRejectsWrongRoot(t *testing.T) {
	_, err := ParseAssetMap(strReader("<NotAnAssetMap/>"), "file:///x/AM.xml")
	require.ErrorIs(t, err, ErrInvalidData)
}
