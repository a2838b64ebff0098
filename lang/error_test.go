package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestError(t *testing.T) {
	cause := errors.New("unexpected EOF")

	tests := []struct {
		name string
		err  *Error
		want string
		is   []error
	}{
		{name: "sentinel", err: ErrStopped, want: "evaluation stopped", is: []error{ErrStopped}},
		{
			name: "wrapped",
			err:  ErrReadInput.Wrap(cause),
			want: "read input: unexpected EOF",
			is:   []error{ErrReadInput, cause},
		},
		{
			name: "attributed",
			err:  ErrDepthExceeded.With(slog.Int("depth", 3)),
			want: "scope depth limit reached",
			is:   []error{ErrDepthExceeded},
		},
		{name: "cause only", err: (&Error{}).Wrap(cause), want: "unexpected EOF", is: []error{cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}

			wrapped := fmt.Errorf("outer: %w", tt.err)
			for _, target := range tt.is {
				if !errors.Is(wrapped, target) {
					t.Errorf("errors.Is(%v, %v) = false", wrapped, target)
				}
			}

			if errors.Is(tt.err, ErrListener) {
				t.Errorf("%v matches an unrelated sentinel", tt.err)
			}
		})
	}
}

func TestError_With_DoesNotShare(t *testing.T) {
	base := ErrMarshal.With(slog.String("format", "json"))
	a := base.With(slog.Int("a", 1))
	b := base.With(slog.Int("b", 2))

	if len(base.attrs) != 1 || len(a.attrs) != 2 || len(b.attrs) != 2 {
		t.Fatalf("attr counts = %d %d %d", len(base.attrs), len(a.attrs), len(b.attrs))
	}

	if a.attrs[1].Key != "a" || b.attrs[1].Key != "b" {
		t.Errorf("copies share attrs: %v %v", a.attrs, b.attrs)
	}

	if len(ErrMarshal.attrs) != 0 {
		t.Errorf("sentinel modified: %v", ErrMarshal.attrs)
	}
}

func TestError_LogValue(t *testing.T) {
	v := ErrListener.Wrap(errors.New("boom")).With(slog.Int("node", 4)).LogValue()

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{"msg": "result listener", "cause": "boom", "node": "4"}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("%s = %q, want %q", k, got[k], w)
		}
	}
}
