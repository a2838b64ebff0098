// Package lang implements AMS, a small markup and macro language.
//
// AMS source is plain text with five reserved symbols:
//
//	\   variable sigil      \name
//	:   invoke sigil        \name:value
//	{ } nested paragraph    {a;b}
//	;   sentence separator  a;b
//
// Everything else is literal text. Runs of whitespace collapse to a single
// space between two literal characters and vanish next to a symbol.
//
// # Structure
//
// [Parse] returns a Paragraph: a list of Sentences separated by ";". Each
// Sentence is a list of words: Text, Variable, Invoker and nested
// Paragraph. Sentences are parsed lazily, when first accessed.
//
// # Evaluation
//
// A Sentence is reduced by folding its words from the left, each word
// invoked with the next one as its argument. A Variable followed by an
// Invoker holding a value binds that value; followed by an empty Invoker it
// reads its binding:
//
//	\abc:hello;\abc:     // "hellohello"
//
// Each Paragraph opens a new [Scope]. Assigning to a name already bound in an
// enclosing scope updates that binding; otherwise the name is bound locally.
//
// # Namespaces
//
// Builtins live in named namespaces held by a [Registry]. Reading a qualified
// name such as \ams.text.upper: yields the member directly, and the builtin
// is then applied to the next word:
//
//	\ams.text.upper:{hello}   // "HELLO"
//
// An unqualified name that is not bound falls back to the imported
// namespaces, most recent import first. [GrammarNamespace] is always
// imported, and assigning to the name "import" imports another.
//
// # Execution
//
// An [Executor] owns the registry and renders a parsed tree with a
// [Renderer], returning a [Result]. [NewPlainTextExecutor] renders text and
// [NewElementExecutor] renders a tree of [Element] values.
//
// A Stop node ends the enclosing Paragraph early and propagates outward. The
// executor records the first Stop on the result.
package lang
