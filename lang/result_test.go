package lang

import (
	"context"
	"errors"
	"testing"

	"github.com/ardnew/ams/log"
)

func TestResult_Listeners(t *testing.T) {
	r := newResult[string](log.Logger{})

	var order []string

	r.AddListener(func(res *Result[string]) error {
		order = append(order, "before:"+res.Value())

		return nil
	})
	r.AddListener(func(*Result[string]) error {
		panic("listener panic")
	})
	r.AddListener(func(*Result[string]) error {
		order = append(order, "failing")

		return errors.New("listener error")
	})

	if r.Finished() {
		t.Fatal("result finished before Finish")
	}

	r.Finish(context.Background(), "v", nil)
	r.Finish(context.Background(), "ignored", NewStop("x"))

	r.AddListener(func(res *Result[string]) error {
		order = append(order, "after:"+res.Value())

		return nil
	})

	want := []string{"before:v", "failing", "after:v"}
	if len(order) != len(want) {
		t.Fatalf("listener calls = %v, want %v", order, want)
	}

	for i := range want {
		if order[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, order[i], want[i])
		}
	}

	if r.Value() != "v" || r.Stop() != nil || !r.Finished() {
		t.Errorf("result = (%q, %v, %v), want (v, nil, true)", r.Value(), r.Stop(), r.Finished())
	}
}

func TestResult_ID(t *testing.T) {
	exec := NewPlainTextExecutor()

	a := exec.Execute(t.Context(), Parse("a"))
	b := exec.Execute(t.Context(), Parse("a"))

	if a.ID() == b.ID() {
		t.Errorf("results share ID %s", a.ID())
	}
}
