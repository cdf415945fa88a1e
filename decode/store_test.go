package decode

import (
	"bytes"
	"encoding/binary"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chromatools/resv6/container"
	"github.com/chromatools/resv6/errs"
	"github.com/chromatools/resv6/format"
)

// coordinateBlob frames values the way the instrument writes coordinate
// arrays: 47-byte header, little-endian float32s, 49-byte trailer.
func coordinateBlob(values []float32, leftover int) []byte {
	buf := make([]byte, 0, floatHeaderSize+len(values)*4+leftover+floatTrailerSize)
	buf = append(buf, bytes.Repeat([]byte{0xEE}, floatHeaderSize)...)
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	buf = append(buf, bytes.Repeat([]byte{0x7F}, leftover)...)
	buf = append(buf, bytes.Repeat([]byte{0xDD}, floatTrailerSize)...)

	return buf
}

func nestedEntry(c *container.Container, path string, sub map[string][]byte, order []string) {
	e := c.Add(path, []byte("nested archive bytes"))
	e.Sub = container.New()
	for _, key := range order {
		e.Sub.Add(key, sub[key])
	}
}

func TestDecodeClassification(t *testing.T) {
	t.Run("XMLMarkerEntry", func(t *testing.T) {
		c := container.New()
		c.Add("Chrom.1.Xml", []byte("\x00\x01junk<Chromatogram><Curves/></Chromatogram>"))

		s := Decode(c)
		e, ok := s.Entry("Chrom.1.Xml")
		require.True(t, ok)
		require.NotNil(t, e.Value)
		require.Equal(t, format.KindXML, e.Value.Kind())

		root, err := e.Value.XML()
		require.NoError(t, err)
		require.Equal(t, "Chromatogram", root.Name)
		require.NotNil(t, root.Find("Curves"))

		// Raw bytes stay available for the structural parse.
		require.Contains(t, string(e.Raw), "<Chromatogram>")
	})

	t.Run("MalformedXMLIsolated", func(t *testing.T) {
		c := container.New()
		c.Add("Broken.Xml", []byte("<unclosed"))
		c.Add("Fine.Xml", []byte("<Doc/>"))

		s := Decode(c)
		broken, _ := s.Entry("Broken.Xml")
		require.NotNil(t, broken.Value)
		require.False(t, broken.Value.Ok())
		require.Error(t, broken.Value.Err())

		fine, _ := s.Entry("Fine.Xml")
		require.True(t, fine.Value.Ok())
	})

	t.Run("NoDocumentStart", func(t *testing.T) {
		c := container.New()
		c.Add("Odd.Xml", []byte{0x01, 0x02, 0x03})

		s := Decode(c)
		e, _ := s.Entry("Odd.Xml")
		require.False(t, e.Value.Ok())
	})

	t.Run("DataTypeSubEntry", func(t *testing.T) {
		c := container.New()
		nestedEntry(c, "Chrom.1_5_True", map[string][]byte{
			"CoordinateData.DataType": []byte("Volumes\r\n"),
		}, []string{"CoordinateData.DataType"})

		s := Decode(c)
		e, _ := s.Entry("Chrom.1_5_True")
		v, ok := e.SubValue("CoordinateData.DataType")
		require.True(t, ok)
		text, err := v.Text()
		require.NoError(t, err)
		require.Equal(t, "Volumes", text)
	})

	t.Run("FloatArraySubEntry", func(t *testing.T) {
		values := []float32{0.5, 1.25, -3.75, 100, 0.1}
		c := container.New()
		nestedEntry(c, "Chrom.1_5_True", map[string][]byte{
			"CoordinateData.Volumes": coordinateBlob(values, 0),
		}, []string{"CoordinateData.Volumes"})

		s := Decode(c)
		e, _ := s.Entry("Chrom.1_5_True")
		v, _ := e.SubValue("CoordinateData.Volumes")
		floats, err := v.Floats()
		require.NoError(t, err)
		require.Equal(t, values, floats)
	})

	t.Run("NonNumericNestedEntryTriesXML", func(t *testing.T) {
		// Owning key lacks the raw-numeric marker: large sub-entries decode
		// as XML, small ones are treated as empty.
		doc := []byte("<CoordinateData><Unit>ml</Unit></CoordinateData>")
		c := container.New()
		nestedEntry(c, "Chrom.1_5_Meta", map[string][]byte{
			"big":   doc,
			"small": bytes.Repeat([]byte{'x'}, emptyXMLThreshold),
		}, []string{"big", "small"})

		s := Decode(c)
		e, _ := s.Entry("Chrom.1_5_Meta")

		big, _ := e.SubValue("big")
		require.NotNil(t, big)
		require.Equal(t, format.KindXML, big.Kind())

		small, ok := e.SubValue("small")
		require.True(t, ok)
		require.Nil(t, small)
	})

	t.Run("FailedSubEntryKeepsSiblings", func(t *testing.T) {
		// Both documents sit above the empty-XML threshold, so both get a
		// decode attempt; only the malformed one fails.
		values := []float32{1, 2, 3}
		c := container.New()
		nestedEntry(c, "Chrom.1_5_Meta", map[string][]byte{
			"bad":  append([]byte("<nope"), bytes.Repeat([]byte{' '}, emptyXMLThreshold)...),
			"good": []byte("<CoordinateData><Unit>ml</Unit></CoordinateData>"),
		}, []string{"bad", "good"})
		nestedEntry(c, "Chrom.1_6_True", map[string][]byte{
			"CoordinateData.Amplitudes": coordinateBlob(values, 0),
		}, []string{"CoordinateData.Amplitudes"})

		s := Decode(c)

		meta, _ := s.Entry("Chrom.1_5_Meta")
		bad, _ := meta.SubValue("bad")
		require.False(t, bad.Ok())
		good, _ := meta.SubValue("good")
		require.NotNil(t, good)
		require.True(t, good.Ok())
		require.Equal(t, format.KindXML, good.Kind())

		num, _ := s.Entry("Chrom.1_6_True")
		v, _ := num.SubValue("CoordinateData.Amplitudes")
		floats, err := v.Floats()
		require.NoError(t, err)
		require.Equal(t, values, floats)
	})

	t.Run("PlainEntryKeepsRawOnly", func(t *testing.T) {
		c := container.New()
		c.Add("AuditTrail.dat", []byte{0xDE, 0xAD})

		s := Decode(c)
		e, _ := s.Entry("AuditTrail.dat")
		require.Nil(t, e.Value)
		require.False(t, e.Nested)
		require.Equal(t, []byte{0xDE, 0xAD}, e.Raw)
	})
}

func TestDecodeFloats(t *testing.T) {
	t.Run("CountFormula", func(t *testing.T) {
		// 47 + 5*4 + 3 leftover + 49 = 119 bytes: (119-96)/4 = 5 floats,
		// leftover bytes ignored.
		raw := coordinateBlob([]float32{1, 2, 3, 4, 5}, 3)
		require.Len(t, raw, 119)

		floats := decodeFloats(raw)
		require.Len(t, floats, (len(raw)-floatHeaderSize-floatTrailerSize)/4)
		require.Equal(t, []float32{1, 2, 3, 4, 5}, floats)
	})

	t.Run("TooShortIsEmpty", func(t *testing.T) {
		require.Empty(t, decodeFloats(make([]byte, floatHeaderSize+floatTrailerSize)))
		require.Empty(t, decodeFloats(nil))
	})

	t.Run("ReferenceBitPattern", func(t *testing.T) {
		raw := coordinateBlob(nil, 4)
		copy(raw[floatHeaderSize:], []byte{0x00, 0x00, 0x80, 0x3F}) // 1.0f LE

		floats := decodeFloats(raw)
		require.Equal(t, []float32{1.0}, floats)
	})
}

func TestDecodePurity(t *testing.T) {
	c := container.New()
	c.Add("Chrom.1.Xml", []byte("<Chromatogram><Curves/></Chromatogram>"))
	nestedEntry(c, "Chrom.1_1_True", map[string][]byte{
		"CoordinateData.Volumes":  coordinateBlob([]float32{1, 2}, 0),
		"CoordinateData.DataType": []byte("Volumes\r\n"),
	}, []string{"CoordinateData.Volumes", "CoordinateData.DataType"})

	first := Decode(c)
	second := Decode(c)
	require.True(t, reflect.DeepEqual(first, second))
}

func TestValueAccessors(t *testing.T) {
	t.Run("WrongKind", func(t *testing.T) {
		v := TextValue("x")
		_, err := v.Floats()
		require.ErrorIs(t, err, errs.ErrWrongKind)
		_, err = v.XML()
		require.ErrorIs(t, err, errs.ErrWrongKind)
	})

	t.Run("FailedValue", func(t *testing.T) {
		v := FailedValue(errs.ErrWrongKind)
		require.False(t, v.Ok())
		_, err := v.Text()
		require.Error(t, err)
	})

	t.Run("AbsentValue", func(t *testing.T) {
		var v *Value
		require.False(t, v.Ok())
		require.NoError(t, v.Err())
	})
}

func TestStoreRemove(t *testing.T) {
	c := container.New()
	c.Add("a", nil)
	c.Add("b", nil)

	s := Decode(c)
	require.True(t, s.Remove("a"))
	require.False(t, s.Remove("a"))
	require.Equal(t, []string{"b"}, s.Paths())
}
