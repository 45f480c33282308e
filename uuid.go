package imf

import "github.com/google/uuid"

// UUID is a 16-byte opaque identifier, compared byte-wise. It is never
// compared as a string; the parsers read it off the XML tree with
// xmlhelp.ReadUUID.
type UUID = uuid.UUID

// CanonicalURN renders id in the canonical "urn:uuid:" text form used
// throughout the CPL and Asset Map schemas.
func CanonicalURN(id UUID) string {
	return "urn:uuid:" + id.String()
}
