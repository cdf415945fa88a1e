package container

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"

	"github.com/chromatools/resv6/errs"
	"github.com/chromatools/resv6/internal/pool"
)

// Entry is a single path-keyed member of a Container. Raw always holds the
// member's full byte content; Sub is non-nil when the bytes were recognized
// (after any repair) as a nested archive.
type Entry struct {
	Path string
	Raw  []byte
	Sub  *Container
}

// IsNested reports whether the entry was unpacked as a nested archive.
func (e *Entry) IsNested() bool {
	return e.Sub != nil
}

// Container holds the ordered, path-keyed entries of one archive. The
// container exclusively owns its entries; nothing downstream mutates them.
type Container struct {
	path    string
	order   []string
	entries map[string]*Entry
}

// Path returns the source file path, or "" for in-memory containers.
func (c *Container) Path() string {
	return c.path
}

// Len returns the number of top-level entries.
func (c *Container) Len() int {
	return len(c.entries)
}

// Paths returns entry paths in archive order.
func (c *Container) Paths() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)

	return out
}

// Entry returns the entry stored under path.
func (c *Container) Entry(path string) (*Entry, bool) {
	e, ok := c.entries[path]

	return e, ok
}

// New creates an empty in-memory container. Useful for building synthetic
// containers in tests and tools; decoding real files goes through Open.
func New() *Container {
	return &Container{entries: make(map[string]*Entry)}
}

// Add inserts an entry holding raw under path and returns it. Adding an
// existing path replaces the entry's content but keeps its original
// position.
func (c *Container) Add(path string, raw []byte) *Entry {
	e := &Entry{Path: path, Raw: raw}
	c.add(e)

	return e
}

func (c *Container) add(e *Entry) {
	if _, exists := c.entries[e.Path]; !exists {
		c.order = append(c.order, e.Path)
	}
	c.entries[e.Path] = e
}

// Open reads the file at path and extracts it as a result container.
//
// Every member of the outer archive is read fully into memory, and each
// top-level entry is probed as a nested archive (repairing truncated
// trailing padding first, see repair.go). Exactly one level of nesting is
// unpacked; archives inside nested archives stay as raw bytes.
//
// Returns an error wrapping errs.ErrNotContainer when the file cannot be
// opened as an archive at all.
func Open(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read container %s: %w", path, err)
	}

	c, err := FromBytes(data)
	if err != nil {
		return nil, err
	}
	c.path = path

	return c, nil
}

// FromReader extracts a result container from r. The whole image is read
// into memory; size is a capacity hint and may be zero.
func FromReader(r io.Reader, size int64) (*Container, error) {
	buf := bytes.NewBuffer(make([]byte, 0, size))
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}

	return FromBytes(buf.Bytes())
}

// FromBytes extracts a result container from an in-memory archive image.
func FromBytes(data []byte) (*Container, error) {
	c, err := readArchive(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrNotContainer, err)
	}

	for _, path := range c.order {
		entry := c.entries[path]
		candidate := repairNested(entry.Raw)
		sub, err := readArchive(candidate)
		if err != nil {
			continue // plain bytes, not a nested archive
		}
		entry.Sub = sub
	}

	return c, nil
}

// readArchive opens data as a zip archive and slurps every member.
func readArchive(data []byte) (*Container, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	c := &Container{entries: make(map[string]*Entry, len(r.File))}
	for _, f := range r.File {
		raw, err := readMember(f)
		if err != nil {
			return nil, fmt.Errorf("read entry %s: %w", f.Name, err)
		}
		c.add(&Entry{Path: f.Name, Raw: raw})
	}

	return c, nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	buf := pool.GetEntryBuffer()
	defer pool.PutEntryBuffer(buf)

	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}

	raw := make([]byte, buf.Len())
	copy(raw, buf.Bytes())

	return raw, nil
}
