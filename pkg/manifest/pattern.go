package manifest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidPattern = errors.New("invalid match pattern")
)

const (
	literalDelimiter = "/"
)

// PatternKind tells how a pattern was written in the manifest.
type PatternKind int

const (
	// PatternPlain is a plain string, used as a regular expression as it is.
	PatternPlain PatternKind = iota
	// PatternLiteral is a tagged regular expression literal in the form of /body/flags.
	PatternLiteral
)

// Pattern is a compiled match pattern. Both kinds end up as the same regular expression so the matching
// does not depend on how a pattern was written.
type Pattern struct {
	kind   PatternKind
	source string
	re     *regexp.Regexp
}

// NewPlainPattern compiles a plain string pattern.
func NewPlainPattern(source string) (*Pattern, error) {
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, source, err)
	}

	return &Pattern{
		kind:   PatternPlain,
		source: source,
		re:     re,
	}, nil
}

// NewLiteralPattern compiles a regular expression literal such as /jruby_(\d+)\.tgz/i.
// Flag i is case-insensitive matching and m lets the dot match a newline.
func NewLiteralPattern(source string) (*Pattern, error) {
	literal := strings.TrimSpace(source)

	end := strings.LastIndex(literal, literalDelimiter)
	if !strings.HasPrefix(literal, literalDelimiter) || end < 1 {
		return nil, fmt.Errorf("%w: %q is not delimited with %s", ErrInvalidPattern, source, literalDelimiter)
	}

	body := literal[1:end]
	flags := literal[end+1:]

	goFlags := ""

	for _, flag := range flags {
		switch flag {
		case 'i':
			goFlags += "i"
		case 'm':
			goFlags += "s"
		default:
			return nil, fmt.Errorf("%w: %q: flag %q is not supported", ErrInvalidPattern, source, flag)
		}
	}

	if goFlags != "" {
		body = "(?" + goFlags + ")" + body
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, source, err)
	}

	return &Pattern{
		kind:   PatternLiteral,
		source: source,
		re:     re,
	}, nil
}

// Kind returns how the pattern was written.
func (p *Pattern) Kind() PatternKind {
	return p.kind
}

// NumCaptures returns number of capture groups.
func (p *Pattern) NumCaptures() int {
	return p.re.NumSubexp()
}

// Find searches for the pattern in s. It returns the texts of the capture groups, where captures[0] is
// the text of the first group. Group that did not participate in the match is an empty string.
func (p *Pattern) Find(s string) ([]string, bool) {
	submatches := p.re.FindStringSubmatch(s)
	if submatches == nil {
		return nil, false
	}

	return submatches[1:], true
}

func (p *Pattern) String() string {
	return p.source
}
