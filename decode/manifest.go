package decode

import (
	"fmt"

	"github.com/chromatools/resv6/errs"
)

// ManifestPath is the container's manifest entry: an XML listing of the
// intermediate files that may be discarded once assembly is complete.
const ManifestPath = "Manifest.xml"

// Cleanup removes every entry listed in the manifest from the store, then
// removes the manifest itself. Each manifest item names its file in the
// item's first child element.
//
// Used by callers that want a minimal surface after assembly: what remains
// is the assembled datasets plus any entries not declared intermediate.
// A missing or unparseable manifest fails only this pass; assembled
// datasets are unaffected.
func Cleanup(s *Store) error {
	e, ok := s.Entry(ManifestPath)
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrManifestNotFound, ManifestPath)
	}

	root, err := ParseNode(e.Raw)
	if err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	for _, item := range root.Children {
		if len(item.Children) == 0 {
			continue
		}
		name := item.Children[0].Text
		s.Remove(name)
	}
	s.Remove(ManifestPath)

	return nil
}
