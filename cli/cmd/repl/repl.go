package repl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ams/builtin"
	"github.com/ardnew/ams/cli/cmd"
	"github.com/ardnew/ams/lang"
	"github.com/ardnew/ams/log"
)

// Repl starts an interactive session.
//
// Every line entered is parsed as AMS source and its sentences are reduced
// in one persistent scope, so bindings made on one line are visible on the
// next. Lines beginning with ':' are session commands.
type Repl struct {
	Source   []string `arg:"" help:"Source file(s) declared before the first prompt" optional:"" type:"existingfile"`
	Import   []string `help:"Import namespace into the session scope"                short:"i"`
	MaxDepth int      `help:"Limit the depth of nested scopes (0 is unlimited)"`
	History  string   `default:"${cache}/history.utf8" help:"Input history file"       type:"path"`
}

const (
	prompt        = "➜ "
	commandPrefix = ":"
)

// commands are the session command names, without the prefix.
var commands = []string{"help", "scope", "imports", "tree", "clear", "quit"}

func helpMessage() string {
	return `
Commands:

  :help           Print this cruft and the builtin reference
  :scope          List the bindings made in this session
  :imports        List the imported namespaces, highest priority first
  :tree <source>  Print the parsed structure of source
  :clear          Clear screen
  :quit           Exit REPL

Usage:
  Type AMS source to declare and evaluate it
  Completions appear while typing a \reference
  Press Tab / Shift-Tab to cycle through candidates
  Keep typing to accept the current candidate
  Press Esc to restore the text before cycling
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatCommand formats the echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	scope        *lang.NamespacedVariable
	opts         []lang.Option
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := log.Default()
	streams := cmd.StreamsFrom(ctx)

	opts := []lang.Option{
		lang.WithLogger(logger),
		lang.WithMaxDepth(r.MaxDepth),
		lang.WithImports(r.Import...),
	}

	var src string

	sources := cmd.SourcesFrom(ctx).Merge(cmd.NewSources(r.Source...))
	if !sources.IsZero() {
		src, err = sources.ReadAll(streams.In)
		if err != nil {
			return err
		}
	}

	exec := lang.NewPlainTextExecutor(opts...)
	exec.AddNamespaces(builtin.Namespaces())

	scope := exec.Declare(ctx, lang.ParseContext(ctx, src, opts...))

	history := NewHistory(r.History)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "history unavailable", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("history", r.History),
		slog.Int("history_len", history.Len()),
		slog.Int("sources", len(sources.Paths())),
	)

	p := tea.NewProgram(
		newModel(ctx, scope, history, logger, opts...),
		tea.WithContext(ctx),
		tea.WithInput(streams.In),
		tea.WithOutput(streams.Out),
	)
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	scope *lang.NamespacedVariable,
	history *History,
	logger log.Logger,
	opts ...lang.Option,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		scope:      scope,
		opts:       opts,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch input := m.input.Value(); {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render("Type AMS source or :help for commands"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(
			m.matches, m.suggIdx, m.tabActive, m.width,
		))

	default:
		if name, doc := m.referenceDoc(); doc != "" {
			b.WriteString(suggestionStyle.Render(name) + " " + hintStyle.Render(doc))
		}
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)
		}

		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		// Typing breaks out of tab-cycling, keeping the candidate.
		m.tabActive = false

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the candidate selection by step, starting a tab-cycle if none
// is active. A sole candidate is completed and confirmed immediately.
func (m model) cycle(step int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly one
// candidate remains and the typed word already equals it. autoConfirm should
// be false for deletions and cursor navigation.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Write(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatCommand(input))

	if line, ok := strings.CutPrefix(input, commandPrefix); ok {
		return m.executeCommand(echo, line)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval", slog.String("input", input))

	out, stop := m.evaluate(input)
	if stop != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(stopMessage(stop))))
	}

	if out == "" {
		return m, echo
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

// evaluate declares the sentences of src in the session scope and returns
// the plain text of their results, or the Stop that ended evaluation.
func (m model) evaluate(src string) (string, *lang.Node) {
	results, stop := lang.Declare(lang.Parse(src, m.opts...), m.scope)
	if stop != nil {
		return "", stop
	}

	var b strings.Builder
	for _, result := range results {
		b.WriteString(result.PlainText(m.scope))
	}

	return b.String(), nil
}

func stopMessage(stop *lang.Node) string {
	msg := "stopped: " + stop.StopID()
	if trace := stop.TraceString(); trace != "" {
		msg += "\n" + trace
	}

	return msg
}

func (m model) executeCommand(echo tea.Cmd, line string) (model, tea.Cmd) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl command",
		slog.String("command", name),
		slog.String("arg", arg),
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()+builtinView()))

	case "scope":
		return m, tea.Sequence(echo, tea.Println(m.scopeView()))

	case "imports":
		return m, tea.Sequence(echo, tea.Println(m.importsView()))

	case "tree":
		return m, tea.Sequence(echo, tea.Println(treeView(arg, m.opts...)))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("Unknown command: "+name+" (try :help)"),
		))
	}
}

// preview returns the source of v shortened to fit a listing.
func preview(v *lang.Node) string {
	const limit = 40

	src := v.String()
	if len(src) > limit {
		return src[:limit-3] + "..."
	}

	return src
}

func (m model) scopeView() string {
	var b strings.Builder

	for name, value := range m.scope.Own() {
		fmt.Fprintf(&b, "  %c%s %s\n", lang.SymbolVariable, name,
			hintStyle.Render(preview(value)))
	}

	if b.Len() == 0 {
		return hintStyle.Render("  (no bindings)")
	}

	return b.String()
}

func (m model) importsView() string {
	var b strings.Builder

	for name := range m.scope.Imports() {
		fmt.Fprintf(&b, "  %s\n", name)
	}

	return b.String()
}

func builtinView() string {
	var b strings.Builder

	b.WriteString("Builtins:\n\n")

	for _, doc := range builtin.Docs() {
		fmt.Fprintf(&b, "  %-20s %s\n", doc.Qualified(), hintStyle.Render(doc.Doc))
	}

	return b.String()
}

func treeView(src string, opts ...lang.Option) string {
	var b strings.Builder

	lang.Parse(src, opts...).Load().Print(&b)

	return strings.TrimRight(b.String(), "\n")
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx > 0 {
		m.historyIdx--

		if line, err := m.history.GetLine(m.historyIdx); err == nil {
			m.input.SetValue(line)
			m.input.SetCursor(len(line))
			refreshMatches(&m, false)
		}
	}

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx < m.history.Len()-1 {
		m.historyIdx++

		if line, err := m.history.GetLine(m.historyIdx); err == nil {
			m.input.SetValue(line)
			m.input.SetCursor(len(line))
			refreshMatches(&m, false)
		}
	} else {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}
