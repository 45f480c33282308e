package imf

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
)

// openURL is the byte-I/O collaborator §6 leaves external: it opens a
// CPL, Asset Map or essence URI for reading. file:// and bare
// filesystem paths are read directly; http(s):// URLs are fetched.
// There is no ecosystem library in the retrieval pack for this this
// small a surface, so it is plain net/http and os.
func openURL(rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		f, err := os.Open(rawURL)
		if err != nil {
			return nil, fmt.Errorf("imf: opening %q: %w", rawURL, err)
		}
		return f, nil
	}

	switch u.Scheme {
	case "file":
		f, err := os.Open(u.Path)
		if err != nil {
			return nil, fmt.Errorf("imf: opening %q: %w", rawURL, err)
		}
		return f, nil
	case "http", "https":
		resp, err := http.Get(rawURL)
		if err != nil {
			return nil, fmt.Errorf("imf: fetching %q: %w", rawURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("imf: fetching %q: status %s", rawURL, resp.Status)
		}
		return resp.Body, nil
	default:
		return nil, fmt.Errorf("imf: unsupported URI scheme %q in %q", u.Scheme, rawURL)
	}
}

// dirnameURI returns the directory component of a document URI, used
// as the base for resolving a sibling ASSETMAP.xml and for joining
// relative Asset Map Chunk paths.
func dirnameURI(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Scheme != "" {
		u.Path = path.Dir(u.Path)
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		return u.String()
	}
	return path.Dir(rawURL) + string(os.PathSeparator)
}

// joinURI joins a directory URI and a sibling file name.
func joinURI(dir, name string) string {
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + "/" + name
}
