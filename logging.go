package imf

import "github.com/rs/zerolog"

// log is the package-wide logger. It is silent by default; hosts that
// want diagnostics call SetLogger once before Open.
var log = zerolog.Nop()

// SetLogger installs the logger the CPL parser, Asset Map parser,
// resource opener and scheduler write diagnostics to. Passing the
// zero value restores the no-op logger.
func SetLogger(l zerolog.Logger) {
	log = l
}
