package lang

import "strings"

// Scanner is a forward-only cursor over an immutable string.
//
// The zero value scans the empty string.
type Scanner struct {
	src string
	pos int
}

// NewScanner returns a Scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// HasNext reports whether any input remains.
func (s *Scanner) HasNext() bool { return s.pos < len(s.src) }

// Next consumes and returns the next character.
// It returns the empty string once the input is exhausted.
func (s *Scanner) Next() string {
	if !s.HasNext() {
		return ""
	}

	s.pos++

	return s.src[s.pos-1 : s.pos]
}

// ReadAll consumes and returns everything remaining.
func (s *Scanner) ReadAll() string {
	rest := s.src[s.pos:]
	s.pos = len(s.src)

	return rest
}

// ReadUntil consumes input up to and including the first byte in set.
// It returns the text before that byte and the byte itself as term.
// If the input ends first, term is empty.
func (s *Scanner) ReadUntil(set string) (value, term string) {
	rest := s.src[s.pos:]

	i := strings.IndexAny(rest, set)
	if i < 0 {
		s.pos = len(s.src)

		return rest, ""
	}

	s.pos += i + 1

	return rest[:i], rest[i : i+1]
}

// ReadUntilNested is ReadUntil made aware of the two-character nest pair
// (open, close).
//
// Text inside a balanced nest is never split: while the nesting depth is
// positive only the nest characters are significant, and everything consumed
// is kept verbatim. At depth zero the scan stops at any byte in set or at a
// close. An open either stops the scan (stopOnOpen, without consuming the
// nest's content) or descends into the nest.
//
// When nested is set the scan starts at depth one, and the close that brings
// the depth back to zero ends the scan with that close as term; the close is
// not part of value.
func (s *Scanner) ReadUntilNested(
	set, nest string,
	stopOnOpen, nested bool,
) (value, term string) {
	nestOpen, nestClose := nest[:1], nest[1:2]
	symbols := set + nest

	var (
		buf   strings.Builder
		depth int
	)

	if nested {
		depth = 1
	}

	for s.HasNext() {
		if depth > 0 {
			v, t := s.ReadUntil(nest)

			switch t {
			case nestOpen:
				depth++
			case nestClose:
				depth--
				if depth == 0 && nested {
					buf.WriteString(v)

					return buf.String(), t
				}
			}

			buf.WriteString(v)
			buf.WriteString(t)

			continue
		}

		v, t := s.ReadUntil(symbols)
		if t == nestOpen && !stopOnOpen {
			depth++

			buf.WriteString(v)
			buf.WriteString(t)

			continue
		}

		buf.WriteString(v)

		return buf.String(), t
	}

	return buf.String(), ""
}
