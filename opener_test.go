package imf

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestOpenerOpenIsIdempotent(t *testing.T) {
	fo := &fakeOpener{packetCount: 1, packetDuration: 1, editRate: Rational{Num: 24, Den: 1}}
	registerFakeBackend(fo)

	trackFileUUID := uuid.New()
	resolver := NewResolver([]AssetLocator{{UUID: trackFileUUID, URI: "file:///pkg/a.faketrack"}})
	opener := NewOpener(resolver)

	r := &TrackFileResource{
		BaseResource:  BaseResource{EditRate: Rational{Num: 24, Den: 1}, EntryPoint: 0, Duration: 24},
		TrackFileUUID: trackFileUUID,
	}

	ctx1, err := opener.Open(r)
	require.NoError(t, err)
	ctx2, err := opener.Open(r)
	require.NoError(t, err)
	require.Same(t, ctx1, ctx2)
	require.Equal(t, 1, fo.opens)
}

func TestOpenerOpenUnresolvedUUIDIsStreamNotFound(t *testing.T) {
	resolver := NewResolver()
	opener := NewOpener(resolver)

	r := &TrackFileResource{TrackFileUUID: uuid.New()}
	_, err := opener.Open(r)
	require.ErrorIs(t, err, ErrStreamNotFound)
}

func TestEntryPointMicroseconds(t *testing.T) {
	us := entryPointMicroseconds(24, Rational{Num: 24, Den: 1})
	require.Equal(t, int64(1_000_000), us)
}
