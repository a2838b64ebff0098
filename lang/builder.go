package lang

// Shape selects what a [Builder] constructs from its scanner.
type Shape int

// Builder shapes.
const (
	ShapeParagraph Shape = iota
	ShapeSentence
	ShapeWord
)

// Builder constructs nodes from a [Scanner].
//
// The zero value builds a Paragraph but has no scanner; Build panics with
// [ErrNoScanner] until one is set.
type Builder struct {
	scanner *Scanner
	shape   Shape
}

// NewBuilder returns a Builder for a Paragraph with no scanner.
func NewBuilder() *Builder { return &Builder{} }

// Scanner sets the source the builder reads from.
func (b *Builder) Scanner(s *Scanner) *Builder {
	b.scanner = s

	return b
}

// Shape sets what the builder constructs.
func (b *Builder) Shape(shape Shape) *Builder {
	b.shape = shape

	return b
}

// Build consumes the scanner and returns the constructed node.
func (b *Builder) Build() *Node {
	if b.scanner == nil {
		panic(ErrNoScanner)
	}

	switch b.shape {
	case ShapeParagraph:
		return buildParagraph(b.scanner)
	case ShapeSentence:
		return buildSentence(b.scanner)
	default:
		return buildWord(b.scanner)
	}
}

// buildParagraph splits the remaining input into top-level sentences.
// Sentences are only parsed when first accessed.
func buildParagraph(s *Scanner) *Node {
	n := &Node{kind: KindParagraph}

	for s.HasNext() {
		src, _ := s.ReadUntilNested(sentenceEnd, nestPair, false, false)
		n.slots = append(n.slots, slot{src: src})
	}

	return n
}

// buildSentence splits the remaining input into words.
//
// The terminator that ended one read is the sigil of the next word, so each
// word's source is that terminator followed by the text read after it. The
// loop keeps going after the input ends while a sigil is still pending.
func buildSentence(s *Scanner) *Node {
	n := &Node{kind: KindSentence}

	var last string

	for s.HasNext() || last != "" {
		value, term := s.ReadUntilNested(
			wordTerminals, nestPair, true, last == string(SymbolOpen),
		)

		if last == string(SymbolClose) {
			last = ""
		}

		switch {
		case last == string(SymbolVariable),
			last == string(SymbolInvoker),
			last == string(SymbolOpen),
			value != "":
			n.slots = append(n.slots, slot{
				node:   buildWord(NewScanner(last + value)),
				loaded: true,
			})
		}

		last = term
	}

	return n
}

// buildWord classifies a word by its leading sigil.
func buildWord(s *Scanner) *Node {
	switch first := s.Next(); first {
	case string(SymbolVariable):
		return NewVariable(s.ReadAll())

	case string(SymbolOpen):
		return buildParagraph(s)

	case string(SymbolInvoker):
		rest := s.ReadAll()
		if rest == "" {
			return NewInvoker(nil)
		}

		return NewInvoker(buildWord(NewScanner(rest)))

	default:
		text := first + s.ReadAll()
		if text == "" {
			return Null()
		}

		return NewText(text)
	}
}

// NewText returns a Text node holding s.
func NewText(s string) *Node { return &Node{kind: KindText, value: s} }

// NewVariable returns a Variable node named name.
func NewVariable(name string) *Node {
	return &Node{kind: KindVariable, value: name}
}

// NewInvoker returns an Invoker wrapping word, or an empty Invoker if word
// is nil.
func NewInvoker(word *Node) *Node {
	n := &Node{kind: KindInvoker}
	if word != nil {
		n.slots = []slot{{node: word, loaded: true}}
	}

	return n
}

// NewSentence returns a Sentence made of words.
func NewSentence(words ...*Node) *Node {
	return (&Node{kind: KindSentence}).Append(words...)
}

// NewParagraph returns a Paragraph holding already-built children.
func NewParagraph(children ...*Node) *Node {
	return (&Node{kind: KindParagraph}).Append(children...)
}
