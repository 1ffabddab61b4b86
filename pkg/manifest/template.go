package manifest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidTemplate = errors.New("invalid template")
)

const (
	captureMarker = '$'
)

// segment is a part of a template. It is either literal text or a reference to a capture group.
type segment struct {
	literal string
	capture int
}

func (s segment) isCapture() bool {
	return s.capture > 0
}

// Template is a name or version template, eg. "$1", "$1::$2" or "2.7.11". The $N references are resolved
// to the N-th capture group of a pattern (1-indexed). A '$' not followed by a digit is literal text.
type Template struct {
	source     string
	segments   []segment
	maxCapture int
}

// NewTemplate parses the template source into literal and capture reference segments.
func NewTemplate(source string) (*Template, error) {
	template := &Template{
		source:   source,
		segments: []segment{},
	}

	literal := &strings.Builder{}

	for i := 0; i < len(source); i++ {
		if source[i] != captureMarker {
			literal.WriteByte(source[i])

			continue
		}

		digitsEnd := i + 1
		for digitsEnd < len(source) && source[digitsEnd] >= '0' && source[digitsEnd] <= '9' {
			digitsEnd++
		}

		if digitsEnd == i+1 {
			literal.WriteByte(source[i])

			continue
		}

		capture, err := strconv.Atoi(source[i+1 : digitsEnd])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTemplate, source, err)
		}

		if capture == 0 {
			return nil, fmt.Errorf("%w: %q: captures are numbered from $1", ErrInvalidTemplate, source)
		}

		if literal.Len() > 0 {
			template.segments = append(template.segments, segment{literal: literal.String()})
			literal.Reset()
		}

		template.segments = append(template.segments, segment{capture: capture})
		if capture > template.maxCapture {
			template.maxCapture = capture
		}

		i = digitsEnd - 1
	}

	if literal.Len() > 0 {
		template.segments = append(template.segments, segment{literal: literal.String()})
	}

	return template, nil
}

// Expand builds the final string out of the captures, where captures[0] is the text of $1.
func (t *Template) Expand(captures []string) (string, error) {
	expanded := &strings.Builder{}

	for _, seg := range t.segments {
		if !seg.isCapture() {
			expanded.WriteString(seg.literal)

			continue
		}

		if seg.capture > len(captures) {
			return "", fmt.Errorf(
				"%w: %q refers to $%d but there are %d captures",
				ErrInvalidTemplate, t.source, seg.capture, len(captures),
			)
		}

		expanded.WriteString(captures[seg.capture-1])
	}

	return expanded.String(), nil
}

// IsEmpty checks if the template produces nothing.
func (t *Template) IsEmpty() bool {
	return len(t.segments) == 0
}

// IsLiteral checks if the template has no capture references.
func (t *Template) IsLiteral() bool {
	return t.maxCapture == 0
}

// MaxCapture returns the highest capture number the template refers to, or 0.
func (t *Template) MaxCapture() int {
	return t.maxCapture
}

func (t *Template) String() string {
	return t.source
}
