package repl

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ams/builtin"
	"github.com/ardnew/ams/lang"
	"github.com/ardnew/ams/log"
)

// newTestModel returns a model whose session scope has declared src.
// The standard builtin namespaces are registered only if builtins is set.
func newTestModel(t *testing.T, src string, builtins bool) model {
	t.Helper()

	exec := lang.NewPlainTextExecutor()
	if builtins {
		exec.AddNamespaces(builtin.Namespaces())
	}

	scope := exec.Declare(t.Context(), lang.Parse(src))
	history := NewHistory(filepath.Join(t.TempDir(), "history.utf8"))

	return newModel(t.Context(), scope, history, log.Logger{})
}

func typeText(m model, s string) model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}

	return m
}

func press(m model, key tea.KeyType) (model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})

	return next.(model), cmd
}

func TestModel_TabCycle(t *testing.T) {
	m := typeText(newTestModel(t, `\zebra:1;\zeta:2`, false), `\ze`)

	if len(m.matches) != 2 {
		t.Fatalf("matches = %v, want 2 candidates", m.matches)
	}

	first, second := m.matches[0].Str, m.matches[1].Str

	m, _ = press(m, tea.KeyTab)
	if got := m.input.Value(); got != `\`+first {
		t.Errorf("after Tab input = %q, want %q", got, `\`+first)
	}

	m, _ = press(m, tea.KeyTab)
	if got := m.input.Value(); got != `\`+second {
		t.Errorf("after Tab Tab input = %q, want %q", got, `\`+second)
	}

	m, _ = press(m, tea.KeyShiftTab)
	if got := m.input.Value(); got != `\`+first {
		t.Errorf("after Shift-Tab input = %q, want %q", got, `\`+first)
	}

	m, _ = press(m, tea.KeyEsc)
	if got := m.input.Value(); got != `\ze` {
		t.Errorf("after Esc input = %q, want %q", got, `\ze`)
	}

	if m.tabActive {
		t.Error("Esc should end tab-cycling")
	}
}

func TestModel_Completion(t *testing.T) {
	tests := []struct {
		name      string
		typed     string
		tab       bool
		want      string
		wantMatch int
	}{
		{name: "sole candidate", typed: `\zeb`, tab: true, want: `\zebra`},
		{name: "typed in full", typed: `\zeta`, want: `\zeta`},
		{name: "plain text", typed: "ze", want: "ze"},
		{name: "empty reference", typed: `\`, want: `\`},
		{name: "command", typed: ":sc", tab: true, want: ":scope"},
		{name: "after invoker", typed: `\x:\zeb`, tab: true, want: `\x:\zebra`},
		{name: "in paragraph", typed: `{a;\ze`, want: `{a;\ze`, wantMatch: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := typeText(newTestModel(t, `\zebra:1;\zeta:2`, false), tt.typed)

			if tt.tab {
				m, _ = press(m, tea.KeyTab)
			}

			if got := m.input.Value(); got != tt.want {
				t.Errorf("input = %q, want %q", got, tt.want)
			}

			if len(m.matches) != tt.wantMatch {
				t.Errorf("matches = %v, want %d", m.matches, tt.wantMatch)
			}
		})
	}
}

func TestModel_Enter(t *testing.T) {
	m := typeText(newTestModel(t, "", false), `\n:5`)

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Error("Enter should print the result")
	}

	if got := m.input.Value(); got != "" {
		t.Errorf("input = %q, want empty", got)
	}

	if got := m.scope.Get("n").PlainText(m.scope); got != "5" {
		t.Errorf(`\n = %q, want "5"`, got)
	}

	if m.history.Len() != 1 {
		t.Fatalf("history length = %d, want 1", m.history.Len())
	}

	m, _ = press(m, tea.KeyUp)
	if got := m.input.Value(); got != `\n:5` {
		t.Errorf("history recall = %q, want %q", got, `\n:5`)
	}

	m, _ = press(m, tea.KeyDown)
	if got := m.input.Value(); got != "" {
		t.Errorf("past end of history input = %q, want empty", got)
	}
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		key   tea.KeyType
		want  bool
	}{
		{name: "ctrl-c on empty line", key: tea.KeyCtrlC, want: true},
		{name: "ctrl-c clears line", typed: "abc", key: tea.KeyCtrlC},
		{name: "ctrl-d on empty line", key: tea.KeyCtrlD, want: true},
		{name: "quit command", typed: ":quit", key: tea.KeyEnter, want: true},
		{name: "unknown command", typed: ":nope", key: tea.KeyEnter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := typeText(newTestModel(t, "", false), tt.typed)

			m, _ = press(m, tt.key)
			if m.quitting != tt.want {
				t.Errorf("quitting = %v, want %v", m.quitting, tt.want)
			}

			if m.quitting && m.View() != "" {
				t.Errorf("View() = %q, want empty after quit", m.View())
			}

			if !m.quitting && m.input.Value() != "" {
				t.Errorf("input = %q, want empty", m.input.Value())
			}
		})
	}
}

func TestModel_Evaluate(t *testing.T) {
	m := newTestModel(t, `\greeting:hello`, true)

	tests := []struct {
		src      string
		want     string
		wantStop string
		anyOut   bool
	}{
		{src: "plain", want: "plain"},
		{src: `\greeting:`, want: "hello"},
		{src: `\x:1`, want: "1"},
		{src: `\x:;\x:`, want: "11"},
		{src: `\ams.text.upper:{hi}`, want: "HI"},
		{src: `\import:ams.text`, anyOut: true},
		{src: `\upper:{hi}`, want: "HI"},
		{src: `a;\ams.grammar.stop:{done};b`, wantStop: "done"},
	}

	for _, tt := range tests {
		out, stop := m.evaluate(tt.src)

		if tt.wantStop != "" {
			if stop == nil || stop.StopID() != tt.wantStop {
				t.Errorf("evaluate(%q) stop = %v, want %q", tt.src, stop, tt.wantStop)
			}

			continue
		}

		if stop != nil {
			t.Errorf("evaluate(%q) stopped: %s", tt.src, stop.StopID())
		}

		if !tt.anyOut && out != tt.want {
			t.Errorf("evaluate(%q) = %q, want %q", tt.src, out, tt.want)
		}
	}
}

func TestStopMessage(t *testing.T) {
	stop := lang.NewStop("done", lang.NewStackTrace("ams.grammar", "stop", "done"))

	want := "stopped: done\n\tat (ams.grammar:stop:done)"
	if got := stopMessage(stop); got != want {
		t.Errorf("stopMessage() = %q, want %q", got, want)
	}

	if got := stopMessage(lang.NewStop("bare")); got != "stopped: bare" {
		t.Errorf("stopMessage() = %q, want %q", got, "stopped: bare")
	}
}

func TestModel_Views(t *testing.T) {
	m := newTestModel(t, `\zebra:1;\import:ams.text`, true)

	if got := m.scopeView(); !strings.Contains(got, `\zebra`) {
		t.Errorf("scopeView() = %q, want it to list \\zebra", got)
	}

	imports := m.importsView()
	for _, want := range []string{"ams.text", lang.GrammarNamespace} {
		if !strings.Contains(imports, want) {
			t.Errorf("importsView() = %q, want it to list %s", imports, want)
		}
	}

	if got := newTestModel(t, "", false).scopeView(); !strings.Contains(got, "no bindings") {
		t.Errorf("empty scopeView() = %q", got)
	}

	if got := treeView(`\x:a`); !strings.Contains(got, "Variable") {
		t.Errorf("treeView() = %q, want a Variable node", got)
	}

	if got := builtinView(); !strings.Contains(got, "ams.text.upper") {
		t.Errorf("builtinView() missing ams.text.upper")
	}
}

func TestModel_ReferenceDoc(t *testing.T) {
	m := typeText(newTestModel(t, "", true), `\ams.text.upper`)

	name, doc := m.referenceDoc()
	if name != "ams.text.upper" || doc == "" {
		t.Errorf("referenceDoc() = (%q, %q), want ams.text.upper with a doc", name, doc)
	}

	if !strings.Contains(m.View(), "ams.text.upper") {
		t.Errorf("View() should show the builtin doc:\n%s", m.View())
	}
}
