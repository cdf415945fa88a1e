// Package container opens chromatography result containers and extracts
// their entries into memory.
//
// A result container is an ordinary zip archive whose members may themselves
// be zip archives (one level deep). Instrument software writes the nested
// archives with corrupted trailing padding, so candidates are repaired
// before opening: a fixed 9-byte start signature marks a nested archive, and
// the buffer is truncated just past the last end-of-central-directory record
// before the zip reader sees it.
//
// Extraction is the first stage of the decode pipeline:
//
//	c, err := container.Open("run42.zip")
//	if err != nil {
//	    return err // errs.ErrNotContainer: file is not a container at all
//	}
//	store := decode.Decode(c)
//	result, err := chrom.AssembleAll(store)
//
// An entry that fails to open as a nested archive, with or without repair,
// is kept as raw bytes; that is a classification outcome, not an error.
package container
