package decode

import (
	"fmt"

	"github.com/chromatools/resv6/errs"
	"github.com/chromatools/resv6/format"
)

// Value is the decoded form of an entry or sub-entry: exactly one of UTF-8
// text, a float32 array, or an XML node tree, or a failure carrying its
// reason. A nil *Value means the entry decodes to nothing (for example
// sub-entries at or under the empty-XML threshold).
type Value struct {
	kind   format.Kind
	text   string
	floats []float32
	xml    *Node
	err    error
}

// TextValue wraps decoded UTF-8 text.
func TextValue(s string) *Value {
	return &Value{kind: format.KindText, text: s}
}

// FloatsValue wraps a decoded float32 array.
func FloatsValue(f []float32) *Value {
	return &Value{kind: format.KindFloatArray, floats: f}
}

// XMLValue wraps a parsed XML node tree.
func XMLValue(n *Node) *Value {
	return &Value{kind: format.KindXML, xml: n}
}

// FailedValue records a decode failure. The value's kind is KindUnknown and
// every accessor returns the stored reason.
func FailedValue(err error) *Value {
	return &Value{kind: format.KindUnknown, err: err}
}

// Kind returns the decoded kind. Failed values report KindUnknown.
func (v *Value) Kind() format.Kind {
	return v.kind
}

// Ok reports whether the value decoded successfully. A nil (absent) value
// reports false.
func (v *Value) Ok() bool {
	return v != nil && v.err == nil && v.kind != format.KindUnknown
}

// Err returns the decode failure reason, or nil. A nil (absent) value
// carries no failure.
func (v *Value) Err() error {
	if v == nil {
		return nil
	}

	return v.err
}

// Text returns the decoded text.
func (v *Value) Text() (string, error) {
	if v.err != nil {
		return "", v.err
	}
	if v.kind != format.KindText {
		return "", fmt.Errorf("%w: have %s, want Text", errs.ErrWrongKind, v.kind)
	}

	return v.text, nil
}

// Floats returns the decoded float array. The slice is owned by the value;
// callers must not mutate it.
func (v *Value) Floats() ([]float32, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.kind != format.KindFloatArray {
		return nil, fmt.Errorf("%w: have %s, want FloatArray", errs.ErrWrongKind, v.kind)
	}

	return v.floats, nil
}

// XML returns the parsed node tree.
func (v *Value) XML() (*Node, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.kind != format.KindXML {
		return nil, fmt.Errorf("%w: have %s, want XML", errs.ErrWrongKind, v.kind)
	}

	return v.xml, nil
}
