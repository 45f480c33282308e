package imf

import (
	"io"
	"strings"
)

func strReader(s string) io.Reader {
	return strings.NewReader(s)
}
