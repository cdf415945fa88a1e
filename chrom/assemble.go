package chrom

import (
	"strconv"
	"strings"

	"github.com/chromatools/resv6/decode"
	"github.com/chromatools/resv6/errs"
)

const (
	// DescriptorMarker is the key substring identifying chromatogram
	// descriptor entries; the dataset name is the key with the marker
	// stripped.
	DescriptorMarker = ".Xml"

	// PrimaryChromatogram is the descriptor name of the run's primary
	// chromatogram.
	PrimaryChromatogram = "Chrom.1"

	// Coordinate array sub-entry keys inside a referenced nested archive.
	volumesKey    = "CoordinateData.Volumes"
	amplitudesKey = "CoordinateData.Amplitudes"

	// resultEntryPath holds run metadata, among it the creation timestamp.
	resultEntryPath = "Result.xml"
)

// Curve-name disambiguations carried over from the source vocabulary:
// "Fraction" event blocks are exposed as "Fractions", and the
// "UV cell path length" curve collides with a unit of the same name.
const (
	fractionName       = "Fraction"
	fractionsName      = "Fractions"
	uvCellPathName     = "UV cell path length"
	uvCellPathRenamed  = "xUV cell path length"
	originalDataMarker = "true"
)

// AssembleAll builds a Dataset for every descriptor entry in the store and
// returns them with the run metadata. Returns errs.ErrNoChromatogram when
// the store holds no parseable descriptor at all.
//
// Assembly never fails on individual curves: a curve whose coordinate
// reference is missing or undecoded is omitted, and a descriptor that does
// not parse is skipped. Both leave sibling curves and descriptors intact.
func AssembleAll(store *decode.Store) (*Result, error) {
	result := &Result{Datasets: make(map[string]*Dataset)}

	for _, path := range store.Paths() {
		if !strings.Contains(path, DescriptorMarker) {
			continue
		}
		entry, _ := store.Entry(path)
		ds, err := assembleDescriptor(store, path, entry.Raw)
		if err != nil {
			continue
		}
		result.Datasets[ds.Name] = ds
	}

	if len(result.Datasets) == 0 {
		return nil, errs.ErrNoChromatogram
	}
	result.Created = createdDate(store)

	return result, nil
}

// Assemble builds the dataset for a single descriptor entry.
func Assemble(store *decode.Store, path string) (*Dataset, error) {
	entry, ok := store.Entry(path)
	if !ok {
		return nil, errs.ErrNoChromatogram
	}

	return assembleDescriptor(store, path, entry.Raw)
}

func assembleDescriptor(store *decode.Store, path string, raw []byte) (*Dataset, error) {
	doc, err := parseDescriptor(raw)
	if err != nil {
		return nil, err
	}

	ds := NewDataset(strings.ReplaceAll(path, DescriptorMarker, ""))

	for i := range doc.EventCurves.Items {
		block := &doc.EventCurves.Items[i]
		ec, ok := assembleEventCurve(block)
		if !ok {
			continue
		}
		ds.PutEvents(ec)
	}

	for i := range doc.Curves.Items {
		block := &doc.Curves.Items[i]
		curve, ok := assembleCurve(store, block)
		if !ok {
			continue
		}
		ds.PutCurve(curve)
	}

	return ds, nil
}

// assembleEventCurve converts one event block. Blocks not flagged as
// original data are excluded; a block with an unparseable event volume is
// dropped whole, since a partial event list would misrepresent the run.
func assembleEventCurve(block *eventCurveXML) (*EventCurve, bool) {
	name := strings.TrimSpace(block.Name)
	if name == fractionName {
		name = fractionsName
	}
	if strings.TrimSpace(block.IsOriginalData) != originalDataMarker {
		return nil, false
	}

	events := make([]Event, 0, len(block.Events.Items))
	for _, ev := range block.Events.Items {
		volume, err := strconv.ParseFloat(strings.TrimSpace(ev.EventVolume), 64)
		if err != nil {
			return nil, false
		}
		events = append(events, Event{Volume: volume, Label: ev.EventText})
	}

	return &EventCurve{Name: name, Events: events}, true
}

// assembleCurve converts one signal curve block, resolving its coordinate
// reference against the decoded store. Any resolution failure omits the
// curve; it never propagates.
func assembleCurve(store *decode.Store, block *curveXML) (*Curve, bool) {
	source, ok := block.coordinateSource()
	if !ok {
		return nil, false
	}

	volumes, ok := lookupFloats(store, source, volumesKey)
	if !ok {
		return nil, false
	}
	amplitudes, ok := lookupFloats(store, source, amplitudesKey)
	if !ok {
		return nil, false
	}

	name := strings.TrimSpace(block.Name)
	if name == uvCellPathName {
		name = uvCellPathRenamed
	}

	// Pairing stops at the shorter array. The instrument writer should
	// emit equal lengths; the difference is surfaced as a diagnostic.
	n := len(volumes)
	if len(amplitudes) < n {
		n = len(amplitudes)
	}
	mismatch := len(volumes) + len(amplitudes) - 2*n

	points := make([]Point, n)
	for i := 0; i < n; i++ {
		points[i] = Point{
			Volume:    float64(volumes[i]),
			Amplitude: float64(amplitudes[i]),
		}
	}

	return &Curve{
		Name:           name,
		Unit:           strings.TrimSpace(block.AmplitudeUnit),
		DataType:       block.DataType,
		Source:         source,
		Points:         points,
		LengthMismatch: mismatch,
	}, true
}

// lookupFloats resolves a coordinate array by entry path and sub-key.
func lookupFloats(store *decode.Store, source, key string) ([]float32, bool) {
	entry, ok := store.Entry(source)
	if !ok || !entry.Nested {
		return nil, false
	}
	value, ok := entry.SubValue(key)
	if !ok || value == nil {
		return nil, false
	}
	floats, err := value.Floats()
	if err != nil {
		return nil, false
	}

	return floats, true
}

// createdDate extracts the run creation date (first 10 characters of the
// Created timestamp) from the result metadata entry.
func createdDate(store *decode.Store) string {
	entry, ok := store.Entry(resultEntryPath)
	if !ok {
		return ""
	}
	root, err := decode.ParseNode(entry.Raw)
	if err != nil {
		return ""
	}
	created := root.FindDescendant("Created")
	if created == nil {
		return ""
	}

	text := strings.TrimSpace(created.Text)
	if len(text) > 10 {
		text = text[:10]
	}

	return text
}
