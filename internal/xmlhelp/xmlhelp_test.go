package xmlhelp

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

func parseFragment(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc.Root()
}

func TestChildByNameIgnoresNamespacePrefix(t *testing.T) {
	root := parseFragment(t, `<cpl:CompositionPlaylist xmlns:cpl="urn:example"><cpl:Id>urn:uuid:8713c020-2489-45f5-a9f7-87be539e20b5</cpl:Id></cpl:CompositionPlaylist>`)
	id := ChildByName(root, "Id")
	require.NotNil(t, id)
}

func TestReadUUIDAcceptsUpperAndLowerCase(t *testing.T) {
	el := parseFragment(t, `<Id>URN:UUID:8713C020-2489-45F5-A9F7-87BE539E20B5</Id>`)
	got, err := ReadUUID(el)
	require.NoError(t, err)
	require.Equal(t, "8713c020-2489-45f5-a9f7-87be539e20b5", got.String())
}

func TestReadUUIDRejectsBareUUID(t *testing.T) {
	el := parseFragment(t, `<Id>8713c020-2489-45f5-a9f7-87be539e20b5</Id>`)
	_, err := ReadUUID(el)
	require.Error(t, err)
}

func TestReadRational(t *testing.T) {
	el := parseFragment(t, `<EditRate>24000 1001</EditRate>`)
	r, err := ReadRational(el)
	require.NoError(t, err)
	require.Equal(t, int64(24000), r.Num)
	require.Equal(t, int64(1001), r.Den)
}

func TestReadRationalRejectsZeroDenominator(t *testing.T) {
	el := parseFragment(t, `<EditRate>24 0</EditRate>`)
	_, err := ReadRational(el)
	require.Error(t, err)
}

func TestReadUint(t *testing.T) {
	el := parseFragment(t, `<IntrinsicDuration>24</IntrinsicDuration>`)
	v, err := ReadUint(el)
	require.NoError(t, err)
	require.Equal(t, uint64(24), v)
}

func TestDescendantNamedFindsNestedLeft(t *testing.T) {
	root := parseFragment(t, `<MainImageSequence><ResourceList><Resource><Left/></Resource></ResourceList></MainImageSequence>`)
	require.True(t, DescendantNamed(root, "Left"))
	require.False(t, DescendantNamed(root, "Right"))
}
