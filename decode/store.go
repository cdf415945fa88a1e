package decode

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/chromatools/resv6/container"
)

// Key-name markers used by the classification heuristics. The vendor
// encodes entry roles in path substrings rather than any structured index.
const (
	// MarkerXML marks entries holding descriptor XML documents.
	MarkerXML = "Xml"
	// MarkerRawNumeric marks nested entries holding raw coordinate arrays.
	MarkerRawNumeric = "True"
	// MarkerDataType marks sub-entries holding short data-type tags.
	MarkerDataType = "DataType"

	// emptyXMLThreshold is the size at or below which an untyped sub-entry
	// is treated as empty instead of attempting an XML decode.
	emptyXMLThreshold = 24
)

// Entry is a classified top-level container entry. Raw always holds the
// original bytes; Value holds the decoded form for entries decoded as a
// whole, and sub holds per-sub-entry values for nested archives.
type Entry struct {
	Path   string
	Raw    []byte
	Nested bool
	Value  *Value

	subOrder []string
	sub      map[string]*Value
}

// SubValue returns the decoded value of a nested sub-entry. The boolean
// reports whether the sub-entry exists; an existing sub-entry may still
// carry a nil (absent) or failed value.
func (e *Entry) SubValue(key string) (*Value, bool) {
	v, ok := e.sub[key]

	return v, ok
}

// SubKeys returns the nested sub-entry keys in archive order.
func (e *Entry) SubKeys() []string {
	out := make([]string, len(e.subOrder))
	copy(out, e.subOrder)

	return out
}

// Store is the decoded view of a container: classification outcomes for
// every top-level entry, keyed by path. It is the input to curve assembly
// and to the optional manifest cleanup pass.
type Store struct {
	order   []string
	entries map[string]*Entry
}

// Len returns the number of top-level entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Paths returns top-level entry paths in archive order.
func (s *Store) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)

	return out
}

// Entry returns the classified entry stored under path.
func (s *Store) Entry(path string) (*Entry, bool) {
	e, ok := s.entries[path]

	return e, ok
}

// Remove drops a top-level entry, reporting whether it was present.
func (s *Store) Remove(path string) bool {
	if _, ok := s.entries[path]; !ok {
		return false
	}
	delete(s.entries, path)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return true
}

// Decode classifies every entry of the extracted container and returns the
// decoded store. The pass is pure: the container is not mutated, and
// repeated decodes of the same container yield identical stores.
//
// Per top-level entry, in precedence order:
//  1. keys containing MarkerXML decode as XML from the raw bytes;
//  2. nested archives decode each sub-entry by sub-key heuristic (see the
//     package documentation);
//  3. anything else keeps its raw bytes with no decoded value.
func Decode(c *container.Container) *Store {
	paths := c.Paths()
	s := &Store{
		order:   paths,
		entries: make(map[string]*Entry, len(paths)),
	}

	for _, path := range paths {
		ce, _ := c.Entry(path)
		e := &Entry{Path: path, Raw: ce.Raw, Nested: ce.IsNested()}

		switch {
		case strings.Contains(path, MarkerXML):
			e.Value = decodeXMLValue(ce.Raw)
		case ce.IsNested():
			rawNumeric := strings.Contains(path, MarkerRawNumeric) &&
				!strings.Contains(path, MarkerXML)
			e.subOrder = ce.Sub.Paths()
			e.sub = make(map[string]*Value, len(e.subOrder))
			for _, key := range e.subOrder {
				se, _ := ce.Sub.Entry(key)
				e.sub[key] = decodeSub(key, se.Raw, rawNumeric)
			}
		}

		s.entries[path] = e
	}

	return s
}

// decodeSub decodes one nested sub-entry. rawNumeric is the owning entry's
// coordinate-array classification; it applies to every sub-entry except the
// data-type tags.
func decodeSub(key string, raw []byte, rawNumeric bool) *Value {
	switch {
	case strings.Contains(key, MarkerDataType):
		if !utf8.Valid(raw) {
			return FailedValue(errors.New("decode data type: invalid UTF-8"))
		}

		return TextValue(strings.Trim(string(raw), "\r\n"))
	case rawNumeric:
		return FloatsValue(decodeFloats(raw))
	case len(raw) > emptyXMLThreshold:
		return decodeXMLValue(raw)
	default:
		return nil
	}
}
