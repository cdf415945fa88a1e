package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/chromatools/resv6/chrom"
)

var csvHeader = []string{"curve", "kind", "unit", "volume", "value", "label"}

// writeCSV encodes the selected curves as one long-format table: a row per
// point, signal and event curves sharing the same columns.
func writeCSV(w io.Writer, ds *chrom.Dataset, names []string, volumeRange *[2]float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, name := range names {
		if curve, ok := ds.Curve(name); ok {
			for _, p := range curve.Points {
				if !inRange(p.Volume, volumeRange) {
					continue
				}
				// Coordinate values originate from float32; format them at
				// 32-bit precision for clean decimal output.
				row := []string{
					curve.Name, "signal", curve.Unit,
					strconv.FormatFloat(p.Volume, 'g', -1, 32),
					strconv.FormatFloat(p.Amplitude, 'g', -1, 32),
					"",
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}

			continue
		}

		events, ok := ds.EventCurve(name)
		if !ok {
			continue
		}
		for _, ev := range events.Events {
			if !inRange(ev.Volume, volumeRange) {
				continue
			}
			row := []string{
				events.Name, "event", "",
				strconv.FormatFloat(ev.Volume, 'g', -1, 64),
				"",
				ev.Label,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()

	return cw.Error()
}
