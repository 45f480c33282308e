package imf

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResolverLookup(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	r := NewResolver([]AssetLocator{
		{UUID: a, URI: "file:///pkg/a.mxf"},
	}, []AssetLocator{
		{UUID: b, URI: "file:///pkg/b.mxf"},
	})

	uri, ok := r.Resolve(a)
	require.True(t, ok)
	require.Equal(t, "file:///pkg/a.mxf", uri)

	_, ok = r.Resolve(uuid.New())
	require.False(t, ok)
}

func TestResolverLaterEntryWins(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	r := NewResolver([]AssetLocator{
		{UUID: a, URI: "file:///pkg/old.mxf"},
	}, []AssetLocator{
		{UUID: a, URI: "file:///pkg/new.mxf"},
	})

	uri, ok := r.Resolve(a)
	require.True(t, ok)
	require.Equal(t, "file:///pkg/new.mxf", uri)
}
