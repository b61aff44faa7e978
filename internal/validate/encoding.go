// encoding.go implements the streaming character encoding detector used by
// the UTF-8 encoding check.
//
// Design: ASCII and UTF-8 are decided directly from the bytes, which is
// exact. Only input that is not valid UTF-8 reaches chardet, whose job is
// then just to name the legacy charset for the failure message.

package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
)

// Encodings accepted by the encoding check.
const (
	EncodingASCII   = "ascii"
	EncodingUTF8    = "utf-8"
	EncodingUnknown = "unknown"
)

// utf8Confidence is reported for input that decoded as UTF-8 with at least
// one multi-byte sequence.
const utf8Confidence = 0.99

// Detection is the detector's verdict.
type Detection struct {
	Encoding   string
	Confidence float64 // 0..1
}

// Detector guesses the encoding of a byte stream fed line by line.
// The zero value is ready to use.
type Detector struct {
	buf      []byte
	nonASCII bool
	invalid  bool
}

// Feed adds a line to the sample.
func (d *Detector) Feed(line []byte) {
	d.buf = append(d.buf, line...)
	if d.invalid {
		return
	}
	for _, b := range line {
		if b >= utf8.RuneSelf {
			d.nonASCII = true
			break
		}
	}
	if d.nonASCII && !utf8.Valid(line) {
		d.invalid = true
	}
}

// Done reports whether the verdict is settled. Once a line failed to decode
// as UTF-8 more input cannot make the stream valid.
func (d *Detector) Done() bool {
	return d.invalid
}

// Close returns the verdict for everything fed since the last Reset.
func (d *Detector) Close() Detection {
	switch {
	case !d.nonASCII:
		return Detection{Encoding: EncodingASCII, Confidence: 1}
	case !d.invalid:
		return Detection{Encoding: EncodingUTF8, Confidence: utf8Confidence}
	}

	results, err := chardet.NewTextDetector().DetectAll(d.buf)
	if err != nil {
		return Detection{Encoding: EncodingUnknown}
	}
	// The sample is known not to be UTF-8, whatever chardet's ranking says.
	for _, res := range results {
		name := strings.ToLower(res.Charset)
		if name == EncodingUTF8 {
			continue
		}
		return Detection{Encoding: name, Confidence: float64(res.Confidence) / 100}
	}
	return Detection{Encoding: EncodingUnknown}
}

// Reset clears the detector for the next stream.
func (d *Detector) Reset() {
	d.buf = d.buf[:0]
	d.nonASCII = false
	d.invalid = false
}
