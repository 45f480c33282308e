package imf

import "strings"

// Format is the demuxer's registration descriptor: the name hosts
// register it under, the file extension it claims, and the MIME
// types it answers to.
var Format = struct {
	Name       string
	Extensions []string
	MIMETypes  []string
}{
	Name:       "imf",
	Extensions: []string{"xml"},
	MIMETypes:  []string{"application/xml", "text/xml"},
}

// Options is the demuxer's single recognized configuration surface.
type Options struct {
	// AssetMaps is a comma-separated list of absolute paths or URIs
	// to Asset Map XML documents. When empty, the CPL's sibling file
	// named ASSETMAP.xml is used.
	AssetMaps string
}

func (o Options) assetMapURIs(cplURI string) []string {
	if strings.TrimSpace(o.AssetMaps) == "" {
		return []string{joinURI(dirnameURI(cplURI), "ASSETMAP.xml")}
	}
	var uris []string
	for _, p := range strings.Split(o.AssetMaps, ",") {
		if p = strings.TrimSpace(p); p != "" {
			uris = append(uris, p)
		}
	}
	return uris
}
