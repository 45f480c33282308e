// Package xmlhelp provides the typed, local-name-only readers that the
// CPL and Asset Map parsers are built on: child lookup by element name,
// and parsing of UUID, rational and unsigned-integer text content.
//
// Namespace comparison is deliberately not performed (see the
// "TODO: compare namespaces" design note the parsers are grounded on) -
// elements are matched by local name only, case-sensitively.
package xmlhelp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/sandflow/ffmpeg-imf/internal/ratio"
)

// LocalName strips any namespace prefix off an element's tag.
func LocalName(el *etree.Element) string {
	tag := el.Tag
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

// ChildByName returns the first child element of parent whose local name
// matches name, or nil if there is none.
func ChildByName(parent *etree.Element, name string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, child := range parent.ChildElements() {
		if LocalName(child) == name {
			return child
		}
	}
	return nil
}

// ChildrenByName returns every child element of parent whose local name
// matches name, in document order.
func ChildrenByName(parent *etree.Element, name string) []*etree.Element {
	if parent == nil {
		return nil
	}
	var out []*etree.Element
	for _, child := range parent.ChildElements() {
		if LocalName(child) == name {
			out = append(out, child)
		}
	}
	return out
}

// DescendantNamed reports whether element, or any of its descendants,
// has the given local name. Used to detect stereoscopic Left/Right
// image resources regardless of depth.
func DescendantNamed(element *etree.Element, name string) bool {
	if element == nil {
		return false
	}
	if LocalName(element) == name {
		return true
	}
	for _, child := range element.ChildElements() {
		if DescendantNamed(child, name) {
			return true
		}
	}
	return false
}

// Text returns the NFC-normalized text content of element. CPL fields
// tagged "_utf8" in the composition model (ContentTitle, Marker Label)
// are normalized here rather than at every call site.
func Text(element *etree.Element) string {
	if element == nil {
		return ""
	}
	return norm.NFC.String(strings.TrimSpace(element.Text()))
}

// ReadUUID parses element's text content as "urn:uuid:XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX".
func ReadUUID(element *etree.Element) (uuid.UUID, error) {
	if element == nil {
		return uuid.Nil, fmt.Errorf("xmlhelp: cannot read UUID from a missing element")
	}
	text := strings.TrimSpace(element.Text())
	lower := strings.ToLower(text)
	if !strings.HasPrefix(lower, "urn:uuid:") {
		return uuid.Nil, fmt.Errorf("xmlhelp: %q is not in urn:uuid: form", text)
	}
	id, err := uuid.Parse(text)
	if err != nil {
		return uuid.Nil, fmt.Errorf("xmlhelp: invalid UUID %q: %w", text, err)
	}
	return id, nil
}

// ReadRational parses element's text content as two decimal integers
// separated by whitespace, e.g. "24000 1001".
func ReadRational(element *etree.Element) (ratio.Rational, error) {
	if element == nil {
		return ratio.Rational{}, fmt.Errorf("xmlhelp: cannot read rational from a missing element")
	}
	fields := strings.Fields(element.Text())
	if len(fields) != 2 {
		return ratio.Rational{}, fmt.Errorf("xmlhelp: %q is not a rational number", element.Text())
	}
	num, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return ratio.Rational{}, fmt.Errorf("xmlhelp: invalid rational numerator %q: %w", fields[0], err)
	}
	den, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return ratio.Rational{}, fmt.Errorf("xmlhelp: invalid rational denominator %q: %w", fields[1], err)
	}
	if den == 0 {
		return ratio.Rational{}, fmt.Errorf("xmlhelp: rational %q has a zero denominator", element.Text())
	}
	return ratio.Rational{Num: num, Den: den}, nil
}

// ReadUint parses element's text content as a non-negative decimal integer.
func ReadUint(element *etree.Element) (uint64, error) {
	if element == nil {
		return 0, fmt.Errorf("xmlhelp: cannot read an integer from a missing element")
	}
	text := strings.TrimSpace(element.Text())
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("xmlhelp: invalid non-negative integer %q: %w", text, err)
	}
	return v, nil
}

// Attribute returns the value of the attribute named name on element,
// and whether it was present.
func Attribute(element *etree.Element, name string) (string, bool) {
	if element == nil {
		return "", false
	}
	attr := element.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}
