package essence

import (
	"fmt"
	"path"
	"strings"
)

var openers = map[string]Opener{}

// Register binds an Opener to a file extension (without the leading
// dot, case-insensitive), so Open can dispatch a resolved URI to the
// right backend. Registration happens at init time; it is not
// goroutine-safe against concurrent Open calls, matching the rest of
// this package's single-threaded contract.
func Register(extension string, o Opener) {
	openers[strings.ToLower(extension)] = o
}

// Open dispatches uri to the Opener registered for its file
// extension.
func Open(uri string) (Context, error) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(uri)), ".")
	o, ok := openers[ext]
	if !ok {
		return nil, fmt.Errorf("essence: no demuxer registered for extension %q", ext)
	}
	return o.Open(uri)
}
