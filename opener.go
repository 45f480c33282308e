package imf

import (
	"fmt"

	"github.com/sandflow/ffmpeg-imf/essence"
)

// Opener lazily opens and caches the media-demuxer context backing a
// TrackFileResource. Marker resources never go through the opener:
// they carry no track file reference.
type Opener struct {
	resolver *Resolver
	contexts map[*TrackFileResource]essence.Context
}

// NewOpener builds an Opener that resolves UUIDs through resolver.
func NewOpener(resolver *Resolver) *Opener {
	return &Opener{resolver: resolver, contexts: map[*TrackFileResource]essence.Context{}}
}

// Open returns r's demuxer context, opening and seeking it to r's
// entry point on first call. A second call on an already-open
// resource is a no-op that returns the cached context.
func (o *Opener) Open(r *TrackFileResource) (essence.Context, error) {
	if ctx, ok := o.contexts[r]; ok {
		return ctx, nil
	}

	uri, ok := o.resolver.Resolve(r.TrackFileUUID)
	if !ok {
		return nil, fmt.Errorf("imf: track file %s: %w", r.TrackFileUUID, ErrStreamNotFound)
	}

	ctx, err := essence.Open(uri)
	if err != nil {
		return nil, fmt.Errorf("imf: opening %s: %w", uri, err)
	}

	if err := checkTimeBase(ctx, r.EditRate); err != nil {
		log.Warn().Str("uri", uri).Err(err).Msg("imf: stream time base does not match resource edit rate")
	}

	us := entryPointMicroseconds(r.EntryPoint, r.EditRate)
	if err := ctx.SeekMicroseconds(us); err != nil {
		ctx.Close()
		return nil, fmt.Errorf("imf: seeking %s to entry point %d: %w", uri, r.EntryPoint, err)
	}

	o.contexts[r] = ctx
	return ctx, nil
}

// Close releases r's context, if one is open, and forgets it.
func (o *Opener) Close(r *TrackFileResource) error {
	ctx, ok := o.contexts[r]
	if !ok {
		return nil
	}
	delete(o.contexts, r)
	return ctx.Close()
}

// entryPointMicroseconds converts an entry point expressed in edit
// units into microseconds, per §4.E: entry_point * edit_rate.den *
// 1_000_000 / edit_rate.num.
func entryPointMicroseconds(entryPoint uint64, editRate Rational) int64 {
	return int64(entryPoint) * editRate.Den * 1_000_000 / editRate.Num
}

func checkTimeBase(ctx essence.Context, editRate Rational) error {
	streams := ctx.Streams()
	if len(streams) == 0 {
		return fmt.Errorf("context has no streams")
	}
	primary := streams[0].TimeBase
	inverse := editRate.Inv()
	if CompareRational(primary, inverse) != 0 {
		return fmt.Errorf("stream time base %d/%d, expected %d/%d", primary.Num, primary.Den, inverse.Num, inverse.Den)
	}
	return nil
}
