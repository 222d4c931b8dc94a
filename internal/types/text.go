package types

import (
	"unicode/utf8"

	"github.com/cwbudde/go-cel/internal/cerr"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// String is CEL's UTF-8 text value. size() is defined in terms of
// code-point count, not byte length (spec.md §4.1).
type String string

func (String) Kind() Kind          { return KindString }
func (v String) String() string    { return string(v) }
func (String) CELType() *TypeValue { return NewType(KindString) }

// Size returns the code-point length of the string, per spec.md §4.1
// ("size() returns code-point count").
func (v String) Size() Int {
	return Int(utf8.RuneCountInString(string(v)))
}

// Bytes is CEL's opaque octet-sequence value. size() returns byte length.
type Bytes []byte

func (Bytes) Kind() Kind          { return KindBytes }
func (v Bytes) String() string    { return string(v) }
func (Bytes) CELType() *TypeValue { return NewType(KindBytes) }

// Size returns the byte length of the sequence.
func (v Bytes) Size() Int { return Int(len(v)) }

// ToStringStrict converts Bytes to String, validating UTF-8 and failing
// otherwise (spec.md §4.1: "Conversion from Bytes to String must validate
// UTF-8 and fails otherwise"). Decoding goes through x/text's UTF-8
// transcoder (grounded on the teacher's internal/interp/encoding.go use of
// golang.org/x/text/encoding/unicode + transform). That transcoder
// substitutes U+FFFD for malformed sequences instead of reporting them, so
// validity is checked on the input bytes with utf8.Valid.
func (v Bytes) ToStringStrict() (String, *cerr.Error) {
	decoder := unicode.UTF8.NewDecoder()
	decoded, _, err := transform.String(decoder, string(v))
	if err != nil || !utf8.Valid(v) {
		return "", cerr.InvalidUTF8()
	}
	return String(decoded), nil
}
