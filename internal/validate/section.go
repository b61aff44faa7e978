// section.go models a section directory and reads its manifest.
//
// Design: Section holds only the path and namespace. Every check lists the
// directory itself, so checks stay independent and a run always sees the
// filesystem as it is at that moment.

package validate

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/path"
)

// Auxiliary file names that are not content files.
const (
	LicenseFile = "LICENSE"
	RawDataDir  = "raw_data"
	SpeakerFile = "talere.json"
)

// AuxiliaryFile is a non-content entry a section may carry.
type AuxiliaryFile struct {
	Name     string
	Required bool
}

// Section is a corpus section directory.
type Section struct {
	Path      string // as given by the caller, cleaned
	Namespace string // directory name
}

// Open returns the section rooted at dir.
func Open(dir string) (*Section, error) {
	clean := filepath.Clean(dir)
	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSection, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotSection, clean)
	}
	ns, err := path.SectionName(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSection, err)
	}
	return &Section{Path: clean, Namespace: ns}, nil
}

// ManifestName returns the manifest file name, <namespace>.jsonl.
func (s *Section) ManifestName() string {
	return s.Namespace + ".jsonl"
}

// ManifestPath returns the path of the manifest file.
func (s *Section) ManifestPath() string {
	return filepath.Join(s.Path, s.ManifestName())
}

// AuxiliaryFiles returns the auxiliary entries of the section in a fixed
// order: manifest, LICENSE, raw_data, talere.json.
func (s *Section) AuxiliaryFiles() []AuxiliaryFile {
	return []AuxiliaryFile{
		{Name: s.ManifestName(), Required: true},
		{Name: LicenseFile, Required: true},
		{Name: RawDataDir},
		{Name: SpeakerFile},
	}
}

// isAuxiliary reports whether name is one of the auxiliary entries.
func (s *Section) isAuxiliary(name string) bool {
	for _, a := range s.AuxiliaryFiles() {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Unexpanded reports whether the section still holds only raw data: a
// raw_data directory exists but the manifest does not.
func (s *Section) Unexpanded() bool {
	info, err := os.Stat(filepath.Join(s.Path, RawDataDir))
	if err != nil || !info.IsDir() {
		return false
	}
	return !exists(s.ManifestPath())
}

// entries lists the section directory sorted by name.
func (s *Section) entries() ([]os.DirEntry, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading section %s: %w", s.Path, err)
	}
	return entries, nil
}

// entryPath joins an entry name onto the section path.
func (s *Section) entryPath(name string) string {
	return filepath.Join(s.Path, name)
}

// Record is one manifest line.
type Record struct {
	Line   int
	Fields map[string]any
}

// DocID returns the record's doc_id as a string and whether it was present
// and non-null.
func (r Record) DocID() (string, bool) {
	v, ok := r.Fields[FieldDocID]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// ReadManifest parses the manifest. Blank lines are skipped. A line that is
// not a JSON object fails the whole read with ErrMalformedManifest.
// Returns an error wrapping fs.ErrNotExist when the manifest is missing.
func (s *Section) ReadManifest() ([]Record, error) {
	f, err := os.Open(s.ManifestPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []Record
	r := bufio.NewReader(f)
	for line := 1; ; line++ {
		raw, err := r.ReadBytes('\n')
		if len(bytes.TrimSpace(raw)) > 0 {
			rec, perr := parseRecord(raw, line)
			if perr != nil {
				return nil, fmt.Errorf("%w: %s line %d: %w", ErrMalformedManifest, s.ManifestPath(), line, perr)
			}
			records = append(records, rec)
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading manifest %s: %w", s.ManifestPath(), err)
		}
	}
}

func parseRecord(raw []byte, line int) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return Record{}, err
	}
	if fields == nil {
		return Record{}, errors.New("record is null")
	}
	if dec.More() {
		return Record{}, errors.New("trailing data after record")
	}
	return Record{Line: line, Fields: fields}, nil
}

// exists reports whether path exists, following symlinks.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// isRegular reports whether path is a regular file, following symlinks.
func isRegular(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
