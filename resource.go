package imf

// BaseResource holds the fields common to every resource kind: the
// edit rate it is expressed in, its entry point and duration in edit
// units, and how many times it repeats on its virtual track.
type BaseResource struct {
	EditRate    Rational
	EntryPoint  uint64
	Duration    uint64
	RepeatCount uint64
}

// Resource is the tagged sum over the two resource kinds a CPL can
// carry: MarkerResource and TrackFileResource. The type switch on the
// concrete type is the tag; there is no separate Kind field to keep in
// sync.
type Resource interface {
	base() *BaseResource
}

// TrackFileResource is a BaseResource that additionally names the
// essence file it draws from.
type TrackFileResource struct {
	BaseResource
	TrackFileUUID UUID
}

func (r *TrackFileResource) base() *BaseResource { return &r.BaseResource }

// MarkerResource is a BaseResource carrying an ordered list of
// Markers instead of a reference to an essence file.
type MarkerResource struct {
	BaseResource
	Markers []Marker
}

func (r *MarkerResource) base() *BaseResource { return &r.BaseResource }

// Base returns the BaseResource fields shared by every Resource kind.
func Base(r Resource) *BaseResource { return r.base() }
