package format

type (
	// Kind classifies the decoded form of a container entry. Classification
	// happens once, during the decode pass, and is carried as typed data
	// thereafter.
	Kind uint8

	// CompressionType selects the compression applied to exported artifacts.
	CompressionType uint8

	// ArtifactType selects the on-disk representation of an exported dataset.
	ArtifactType uint8
)

const (
	KindUnknown    Kind = 0x0 // KindUnknown represents raw bytes with no decoded form.
	KindText       Kind = 0x1 // KindText represents decoded UTF-8 text.
	KindFloatArray Kind = 0x2 // KindFloatArray represents a little-endian float32 array.
	KindXML        Kind = 0x3 // KindXML represents a parsed XML node tree.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	ArtifactCSV  ArtifactType = 0x1 // ArtifactCSV represents comma-separated point rows.
	ArtifactJSON ArtifactType = 0x2 // ArtifactJSON represents a JSON dataset document.
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindFloatArray:
		return "FloatArray"
	case KindXML:
		return "XML"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Ext returns the file extension appended to artifacts compressed with c,
// including the leading dot. CompressionNone has no extension.
func (c CompressionType) Ext() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

func (a ArtifactType) String() string {
	switch a {
	case ArtifactCSV:
		return "CSV"
	case ArtifactJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Ext returns the file extension for the artifact type, including the
// leading dot.
func (a ArtifactType) Ext() string {
	switch a {
	case ArtifactCSV:
		return ".csv"
	case ArtifactJSON:
		return ".json"
	default:
		return ""
	}
}

// ParseCompression maps a configuration string to a CompressionType.
// The empty string and "none" both select CompressionNone; the boolean
// result reports whether the name was recognized.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return CompressionNone, false
	}
}

// ParseArtifact maps a configuration string to an ArtifactType. The empty
// string selects ArtifactCSV.
func ParseArtifact(name string) (ArtifactType, bool) {
	switch name {
	case "", "csv":
		return ArtifactCSV, true
	case "json":
		return ArtifactJSON, true
	default:
		return ArtifactCSV, false
	}
}
