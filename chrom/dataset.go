package chrom

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/chromatools/resv6/internal/hash"
)

// Point is one sample of a signal curve.
type Point struct {
	Volume    float64
	Amplitude float64
}

// Event is one entry of an event curve: a position and its label.
type Event struct {
	Volume float64
	Label  string
}

// Curve is an assembled signal curve: a named, unit-tagged series of
// (volume, amplitude) points. Points are owned copies; they do not alias
// container memory.
type Curve struct {
	Name     string
	Unit     string
	DataType string
	// Source is the container entry the coordinate arrays were read from.
	Source string
	Points []Point
	// LengthMismatch is the number of trailing samples dropped because the
	// referenced Volumes and Amplitudes arrays had unequal lengths. Zero
	// for well-formed curves.
	LengthMismatch int
}

// EventCurve is an assembled event curve: a named series of (volume, label)
// pairs drawn from blocks flagged as original data.
type EventCurve struct {
	Name   string
	Events []Event
}

// Dataset is the name-keyed union of signal and event curves assembled from
// one chromatogram descriptor.
type Dataset struct {
	// Name is the descriptor entry name with the ".Xml" suffix stripped,
	// e.g. "Chrom.1".
	Name string

	curves map[string]*Curve
	events map[string]*EventCurve
}

// NewDataset creates an empty dataset named after its descriptor entry.
func NewDataset(name string) *Dataset {
	return &Dataset{
		Name:   name,
		curves: make(map[string]*Curve),
		events: make(map[string]*EventCurve),
	}
}

// Len returns the total number of curves, signal and event.
func (d *Dataset) Len() int {
	return len(d.curves) + len(d.events)
}

// Curve returns the signal curve stored under name.
func (d *Dataset) Curve(name string) (*Curve, bool) {
	c, ok := d.curves[name]

	return c, ok
}

// EventCurve returns the event curve stored under name.
func (d *Dataset) EventCurve(name string) (*EventCurve, bool) {
	e, ok := d.events[name]

	return e, ok
}

// Names returns the sorted union of signal and event curve names.
func (d *Dataset) Names() []string {
	names := make([]string, 0, d.Len())
	for name := range d.curves {
		names = append(names, name)
	}
	for name := range d.events {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Has reports whether any curve, signal or event, is stored under name.
func (d *Dataset) Has(name string) bool {
	_, sig := d.curves[name]
	_, evt := d.events[name]

	return sig || evt
}

// PutCurve records a signal curve. Later curves with the same name
// overwrite earlier ones, including a same-named event curve: the dataset
// is one name-keyed union.
func (d *Dataset) PutCurve(c *Curve) {
	delete(d.events, c.Name)
	d.curves[c.Name] = c
}

// PutEvents records an event curve, overwriting any same-named curve.
func (d *Dataset) PutEvents(e *EventCurve) {
	delete(d.curves, e.Name)
	d.events[e.Name] = e
}

// Fingerprint returns an xxHash64 digest over every curve in name order.
// Decoding the same container bytes always yields the same fingerprint,
// which makes it a cheap determinism check and log token.
func (d *Dataset) Fingerprint() uint64 {
	digest := hash.NewDigest()
	digest.WriteString(d.Name)

	var scratch [8]byte
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v))
		digest.Write(scratch[:])
	}

	for _, name := range d.Names() {
		if c, ok := d.curves[name]; ok {
			digest.WriteString("s")
			digest.WriteString(c.Name)
			digest.WriteString(c.Unit)
			digest.WriteString(c.DataType)
			for _, p := range c.Points {
				writeFloat(p.Volume)
				writeFloat(p.Amplitude)
			}

			continue
		}
		e := d.events[name]
		digest.WriteString("e")
		digest.WriteString(e.Name)
		for _, ev := range e.Events {
			writeFloat(ev.Volume)
			digest.WriteString(ev.Label)
		}
	}

	return digest.Sum64()
}

// Result is the decoded output of one container: every assembled
// chromatogram dataset plus run metadata recovered from the result entry.
type Result struct {
	// Datasets is keyed by descriptor name; PrimaryChromatogram is the one
	// downstream consumers usually want.
	Datasets map[string]*Dataset

	// Created is the run creation date (yyyy-mm-dd) from the result
	// metadata entry, or "" when unavailable.
	Created string
}

// Primary returns the primary chromatogram dataset, or nil when the
// container holds none.
func (r *Result) Primary() *Dataset {
	return r.Datasets[PrimaryChromatogram]
}
