// checks.go implements the individual section checks.
//
// Each check lists or reads what it needs itself and returns one Report.
// Rule violations become report messages; only I/O and manifest parse
// failures are returned as errors.

package validate

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"math/big"
	"os"
	"slices"
	"strings"
	"time"
)

// Check names, as shown in the run summary.
const (
	CheckPrefix    = "Content files prefix"
	CheckAuxiliary = "Auxiliary files"
	CheckManifest  = "Test files manifest"
	CheckFields    = "Fields in metadata"
	CheckEncoding  = "UTF-8 encoding"
)

// checkPrefix requires every regular, non-auxiliary file to start with the
// namespace.
func (v *Validator) checkPrefix(s *Section) (Report, error) {
	r := NewReport(CheckPrefix)
	entries, err := s.entries()
	if err != nil {
		return r, err
	}
	for _, e := range entries {
		name := e.Name()
		if s.isAuxiliary(name) || strings.HasPrefix(name, s.Namespace) {
			continue
		}
		regular, err := isRegular(s.entryPath(name))
		if err != nil {
			return r, err
		}
		if regular {
			r = r.Fail(fmt.Sprintf("The name of file %s should start with the namespace %s", s.entryPath(name), s.Namespace))
		}
	}
	return r, nil
}

// checkAuxiliary requires the manifest and LICENSE to exist.
func (v *Validator) checkAuxiliary(s *Section) (Report, error) {
	r := NewReport(CheckAuxiliary)
	for _, a := range s.AuxiliaryFiles() {
		if a.Required && !exists(s.entryPath(a.Name)) {
			r = r.Fail(fmt.Sprintf("File %s does not exist", a.Name))
		}
	}
	return r, nil
}

// readManifest loads the manifest for a check. A missing manifest fails
// the report instead of the run; records is nil in that case.
func (v *Validator) readManifest(s *Section, r Report) ([]Record, Report, error) {
	records, err := s.ReadManifest()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, r.Fail("Could not find metadata file " + s.ManifestPath()), nil
	}
	return records, r, err
}

// checkManifest compares the doc_ids declared in the manifest with the
// entries actually present.
func (v *Validator) checkManifest(s *Section) (Report, error) {
	r := NewReport(CheckManifest)
	records, r, err := v.readManifest(s, r)
	if err != nil || !r.Passed {
		return r, err
	}

	expected := make(map[string]bool)
	for _, rec := range records {
		if id, ok := rec.DocID(); ok {
			expected[id] = true
		}
	}
	entries, err := s.entries()
	if err != nil {
		return r, err
	}
	actual := make(map[string]bool, len(entries))
	for _, e := range entries {
		actual[e.Name()] = true
	}

	var undeclared, nonexistent []string
	for name := range actual {
		if !expected[name] && !s.isAuxiliary(name) {
			undeclared = append(undeclared, name)
		}
	}
	for id := range expected {
		if !actual[id] {
			nonexistent = append(nonexistent, id)
		}
	}
	slices.Sort(undeclared)
	slices.Sort(nonexistent)

	r = Combine(r, checkSet(undeclared, "File %s not declared in meta file"))
	r = Combine(r, checkSet(nonexistent, "File %s declared in meta file, but does not exist"))
	return r, nil
}

// checkFields validates the key set and the date values of every record.
func (v *Validator) checkFields(s *Section) (Report, error) {
	r := NewReport(CheckFields)
	records, r, err := v.readManifest(s, r)
	if err != nil || !r.Passed {
		return r, err
	}

	now := v.now()
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		r = Combine(r, checkRecord(rec, seen, now))
	}
	return r, nil
}

// checkRecord runs the field rules on one record. seen holds the doc_ids of
// earlier records.
func checkRecord(rec Record, seen map[string]bool, now time.Time) Report {
	r := NewReport("")
	docID, hasID := rec.DocID()

	for _, key := range RequiredFields {
		if _, ok := rec.Fields[key]; !ok {
			r = r.Fail(fmt.Sprintf("Metadata missing field %s for doc_id = %s", key, docID))
		}
	}
	var extra []string
	for key := range rec.Fields {
		if !AllowedField(key) {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	for _, key := range extra {
		r = r.Fail(fmt.Sprintf("Metadata contains undocumented field %s for doc_id = %s", key, docID))
	}

	if y, ok := rec.Fields[FieldYearPublished]; ok && y != nil {
		year, err := toYear(y)
		switch {
		case err != nil:
			r = r.Fail(fmt.Sprintf("%s: %v is not an integer", FieldYearPublished, y))
		case year.Cmp(big.NewInt(int64(now.Year()))) > 0:
			r = r.Fail(fmt.Sprintf("%s: %s is in the future!", FieldYearPublished, year.String()))
		}
	}

	for _, key := range dateFields {
		d, ok := rec.Fields[key]
		if !ok || d == nil {
			continue
		}
		s, isString := d.(string)
		if !isString {
			r = r.Fail(fmt.Sprintf("%s: %v is not a string", key, d))
			continue
		}
		r = Combine(r, CheckDatetime(s, now))
	}

	if hasID {
		if seen[docID] {
			r = r.Fail("Metadata contains duplicate doc_id = " + docID)
		}
		seen[docID] = true
	}
	return r
}

// toYear converts a year_published value to an integer of any size.
// Numbers are truncated toward zero, strings must hold an integer.
func toYear(v any) (*big.Int, error) {
	switch y := v.(type) {
	case json.Number:
		return truncate(y.String())
	case float64:
		if math.IsInf(y, 0) || math.IsNaN(y) {
			return nil, fmt.Errorf("%v is not finite", y)
		}
		n, _ := big.NewFloat(y).Int(nil)
		return n, nil
	case string:
		n, ok := new(big.Int).SetString(strings.TrimSpace(y), 10)
		if !ok {
			return nil, fmt.Errorf("%q is not an integer", y)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// truncate parses a JSON number literal exactly, dropping any fraction.
func truncate(s string) (*big.Int, error) {
	if n, ok := new(big.Int).SetString(s, 10); ok {
		return n, nil
	}
	f, _, err := big.ParseFloat(s, 10, 256, big.ToZero)
	if err != nil {
		return nil, err
	}
	n, _ := f.Int(nil)
	return n, nil
}

// checkEncoding samples the first lines of every regular file and accepts
// only ASCII or UTF-8.
func (v *Validator) checkEncoding(s *Section) (Report, error) {
	r := NewReport(CheckEncoding)
	entries, err := s.entries()
	if err != nil {
		return r, err
	}
	var d Detector
	for _, e := range entries {
		path := s.entryPath(e.Name())
		regular, err := isRegular(path)
		if err != nil {
			return r, err
		}
		if !regular {
			continue
		}
		d.Reset()
		if err := v.sample(path, &d); err != nil {
			return r, err
		}
		res := d.Close()
		if res.Encoding != EncodingASCII && res.Encoding != EncodingUTF8 {
			r = r.Fail(fmt.Sprintf("File %s is not UTF-8 encoded, but %s (confidence: %.2f)", e.Name(), res.Encoding, res.Confidence))
		}
	}
	return r, nil
}

// sample feeds up to EncodingLines lines of path into d, stopping early
// once d is done.
func (v *Validator) sample(path string, d *Detector) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for n := 0; n < v.encodingLines(); n++ {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			d.Feed(line)
		}
		if errors.Is(err, io.EOF) || d.Done() {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return nil
}
