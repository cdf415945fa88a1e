package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chromatools/resv6/chrom"
	"github.com/chromatools/resv6/compress"
	"github.com/chromatools/resv6/format"
	"github.com/chromatools/resv6/internal/hash"
)

func sampleDataset() *chrom.Dataset {
	ds := chrom.NewDataset("Chrom.1")
	ds.PutCurve(&chrom.Curve{
		Name: "UV 1_280",
		Unit: "mAU",
		Points: []chrom.Point{
			{Volume: 0.0, Amplitude: 1.5},
			{Volume: 0.5, Amplitude: 2.5},
			{Volume: 1.0, Amplitude: 3.5},
		},
	})
	ds.PutEvents(&chrom.EventCurve{
		Name: "Fractions",
		Events: []chrom.Event{
			{Volume: 0.25, Label: "A1"},
			{Volume: 0.75, Label: "A2"},
		},
	})

	return ds
}

func TestRenderCSV(t *testing.T) {
	dir := t.TempDir()
	exp, err := New(dir, Options{})
	require.NoError(t, err)

	res, err := exp.Render(sampleDataset(), "run1")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "run1.csv"), res.Path)
	require.Equal(t, 2, res.Curves)
	require.Empty(t, res.Missing)

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// Header plus 3 signal points plus 2 events.
	require.Len(t, rows, 6)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, []string{"Fractions", "event", "", "0.25", "", "A1"}, rows[1])
	require.Equal(t, []string{"UV 1_280", "signal", "mAU", "0", "1.5", ""}, rows[3])

	written, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.Equal(t, hash.Sum64(written), res.Checksum)
}

func TestRenderJSON(t *testing.T) {
	dir := t.TempDir()
	exp, err := New(dir, Options{Artifact: format.ArtifactJSON})
	require.NoError(t, err)

	res, err := exp.Render(sampleDataset(), "run1")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(res.Path, "run1.json"))

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)

	var doc struct {
		Dataset string `json:"dataset"`
		Curves  []struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Unit   string `json:"unit"`
			Points []struct {
				Volume float64 `json:"volume"`
				Value  float64 `json:"value"`
			} `json:"points"`
			Events []struct {
				Volume float64 `json:"volume"`
				Label  string  `json:"label"`
			} `json:"events"`
		} `json:"curves"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, "Chrom.1", doc.Dataset)
	require.Len(t, doc.Curves, 2)
	require.Equal(t, "event", doc.Curves[0].Kind)
	require.Len(t, doc.Curves[0].Events, 2)
	require.Equal(t, "signal", doc.Curves[1].Kind)
	require.Equal(t, "mAU", doc.Curves[1].Unit)
	require.Len(t, doc.Curves[1].Points, 3)
}

func TestRenderCompressed(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			dir := t.TempDir()
			exp, err := New(dir, Options{Compression: ct})
			require.NoError(t, err)

			res, err := exp.Render(sampleDataset(), "run1")
			require.NoError(t, err)
			require.Equal(t, filepath.Join(dir, "run1.csv"+ct.Ext()), res.Path)

			packed, err := os.ReadFile(res.Path)
			require.NoError(t, err)
			// Checksum covers the compressed bytes, not the plain table.
			require.Equal(t, hash.Sum64(packed), res.Checksum)

			codec, err := compress.GetCodec(ct)
			require.NoError(t, err)
			plain, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(string(plain), "curve,kind,unit"))
		})
	}
}

func TestRenderCurveSelection(t *testing.T) {
	dir := t.TempDir()
	exp, err := New(dir, Options{Curves: []string{"UV 1_280", "Cond", "Fractions"}})
	require.NoError(t, err)

	res, err := exp.Render(sampleDataset(), "run1")
	require.NoError(t, err)
	require.Equal(t, 2, res.Curves)
	require.Equal(t, []string{"Cond"}, res.Missing)

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// Selection order is preserved: signal rows before event rows.
	require.Equal(t, "UV 1_280", rows[1][0])
	require.Equal(t, "Fractions", rows[4][0])
}

func TestRenderVolumeRange(t *testing.T) {
	dir := t.TempDir()
	window := [2]float64{0.2, 0.8}
	exp, err := New(dir, Options{VolumeRange: &window})
	require.NoError(t, err)

	res, err := exp.Render(sampleDataset(), "run1")
	require.NoError(t, err)

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// Header, both events, and the single in-window point at volume 0.5.
	require.Len(t, rows, 4)
	for _, row := range rows[1:] {
		require.NotEqual(t, "0", row[3])
		require.NotEqual(t, "1", row[3])
	}
}

func TestUnknownCompression(t *testing.T) {
	_, err := New(t.TempDir(), Options{Compression: format.CompressionType(0x99)})
	require.Error(t, err)
}
