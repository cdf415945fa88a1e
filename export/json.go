package export

import (
	"encoding/json"
	"io"

	"github.com/chromatools/resv6/chrom"
)

type jsonPoint struct {
	Volume float64 `json:"volume"`
	Value  float64 `json:"value"`
}

type jsonEvent struct {
	Volume float64 `json:"volume"`
	Label  string  `json:"label"`
}

type jsonCurve struct {
	Name   string      `json:"name"`
	Kind   string      `json:"kind"`
	Unit   string      `json:"unit,omitempty"`
	Points []jsonPoint `json:"points,omitempty"`
	Events []jsonEvent `json:"events,omitempty"`
}

type jsonDataset struct {
	Dataset string      `json:"dataset"`
	Curves  []jsonCurve `json:"curves"`
}

// writeJSON encodes the selected curves as a single JSON document with one
// object per curve, in selection order.
func writeJSON(w io.Writer, ds *chrom.Dataset, names []string, volumeRange *[2]float64) error {
	doc := jsonDataset{Dataset: ds.Name, Curves: make([]jsonCurve, 0, len(names))}

	for _, name := range names {
		if curve, ok := ds.Curve(name); ok {
			jc := jsonCurve{Name: curve.Name, Kind: "signal", Unit: curve.Unit}
			for _, p := range curve.Points {
				if !inRange(p.Volume, volumeRange) {
					continue
				}
				jc.Points = append(jc.Points, jsonPoint{Volume: p.Volume, Value: p.Amplitude})
			}
			doc.Curves = append(doc.Curves, jc)

			continue
		}

		events, ok := ds.EventCurve(name)
		if !ok {
			continue
		}
		jc := jsonCurve{Name: events.Name, Kind: "event"}
		for _, ev := range events.Events {
			if !inRange(ev.Volume, volumeRange) {
				continue
			}
			jc.Events = append(jc.Events, jsonEvent{Volume: ev.Volume, Label: ev.Label})
		}
		doc.Curves = append(doc.Curves, jc)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}
