package imf

// StandardMarkersScope is the scope URI a Marker's Label takes when the
// CPL does not specify one explicitly.
const StandardMarkersScope = "http://www.smpte-ra.org/schemas/2067-3/2013#standard-markers"

// Marker is a labelled point-in-time within a MarkerResource, expressed
// in edit units relative to the resource's start.
type Marker struct {
	LabelUTF8 string
	ScopeUTF8 string
	Offset    uint64
}
