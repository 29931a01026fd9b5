package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func containsPlain(rendered, want string) bool {
	return strings.Contains(xansi.Strip(rendered), want)
}

func TestRenderPathField_SingleRowOfBodyWidth(t *testing.T) {
	cases := []struct {
		name  string
		bodyW int
		view  string
		want  int
	}{
		{"short", 30, "~/notes", 30},
		{"long", 20, strings.Repeat("/very/long/path", 5), 20},
		{"newline", 30, "~/notes\ndaily", 30},
		{"minimum width", 4, "x", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := renderPathField(tc.bodyW, tc.view)
			if strings.Contains(got, "\n") {
				t.Fatalf("expected one row, got %q", got)
			}
			if w := xansi.StringWidth(got); w != tc.want {
				t.Fatalf("width=%d, want %d", w, tc.want)
			}
		})
	}
	if !containsPlain(renderPathField(30, "~/notes\ndaily"), "~/notes daily") {
		t.Fatalf("newline not flattened")
	}
}

func TestFitLine(t *testing.T) {
	if got := fitLine("hello", 0); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := fitLine("hello", 10); got != "hello" {
		t.Fatalf("got %q", got)
	}
	if got := fitLine("hello world", 6); xansi.StringWidth(got) != 6 || !strings.HasSuffix(got, "…") {
		t.Fatalf("got %q", got)
	}
}
