package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/ams/lang"
)

// isWordBoundary reports whether r delimits words for completion: whitespace,
// the namespace separator, and the AMS grammar symbols. Hyphens are part of
// names (e.g., log-level).
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		lang.SymbolVariable,
		lang.SymbolInvoker,
		lang.SymbolSeparator,
		lang.SymbolOpen,
		lang.SymbolClose:
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte boundaries
// within input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// referencePath reports whether the word starting at wordStart is part of a
// variable reference, and returns the namespace path written before it.
//
// For input `{\ams.text.up` with the word "up", the path is "ams.text".
// Plain text words are not references.
func referencePath(input string, wordStart int) (parent string, ok bool) {
	pos := wordStart

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	if pos == 0 {
		return "", false
	}

	if r, _ := utf8.DecodeLastRuneInString(input[:pos]); r != lang.SymbolVariable {
		return "", false
	}

	return strings.TrimRight(input[pos:wordStart], "."), true
}

// childCandidates returns the names that may follow parent in a reference.
//
// At the top level these are the bound names, the members of imported
// namespaces and the first segment of every registered namespace. Below a
// namespace path they are its members and the next segment of the
// namespaces nested under it.
func childCandidates(scope *lang.NamespacedVariable, parent string) []string {
	var names []string

	seen := map[string]bool{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	registry := scope.Registry()

	if parent == "" {
		for _, name := range slices.Sorted(maps.Keys(scope.Visible())) {
			add(name)
		}

		for ns := range scope.Imports() {
			if vm, ok := registry.Lookup(ns); ok {
				for name := range vm.Own() {
					add(name)
				}
			}
		}
	} else if vm, ok := registry.Lookup(parent); ok {
		for name := range vm.Own() {
			add(name)
		}
	}

	prefix := ""
	if parent != "" {
		prefix = parent + "."
	}

	for _, ns := range registry.Names() {
		if rest, ok := strings.CutPrefix(ns, prefix); ok {
			segment, _, _ := strings.Cut(rest, ".")
			add(segment)
		}
	}

	return names
}

// computeMatches calculates the fuzzy matches for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries.
//
// The first word of a command line completes command names. Any other word
// completes only inside a variable reference. An empty word completes
// nothing at the top level, and every child after a namespace path.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	if strings.HasPrefix(input, commandPrefix) &&
		wordStart == len(commandPrefix) {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = commands
	} else {
		parent, ok := referencePath(input, wordStart)
		if !ok {
			return nil, nil, wordStart, wordEnd
		}

		candidates = childCandidates(m.scope, parent)

		if word == "" {
			if parent == "" || len(candidates) == 0 {
				return nil, nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// referenceDoc returns the qualified name and description of the builtin
// referenced by the word at the cursor, if any.
func (m model) referenceDoc() (name, doc string) {
	input := m.input.Value()

	word, start, _ := wordBounds(input, m.input.Position())
	if word == "" {
		return "", ""
	}

	parent, ok := referencePath(input, start)
	if !ok {
		return "", ""
	}

	name = word
	if parent != "" {
		name = parent + "." + word
	}

	return name, m.scope.Get(name).Doc()
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
