package cli

import (
	"fmt"
	"strings"
	"testing"
)

func TestStash_SaveListBounded(t *testing.T) {
	setupCLI(t)

	for i := 1; i <= 11; i++ {
		mustRun(t, "stash", "save", fmt.Sprintf("s%d", i))
	}

	out := mustRun(t, "stash", "list")
	xs := dataList(t, out)
	if len(xs) != 10 {
		t.Fatalf("len=%d", len(xs))
	}
	first := xs[0].(map[string]any)
	last := xs[9].(map[string]any)
	if first["content"] != "s11" || first["index"] != float64(1) {
		t.Fatalf("first=%v", first)
	}
	if last["content"] != "s2" {
		t.Fatalf("last=%v", last)
	}
	meta := decodeEnvelope(t, out)["meta"].(map[string]any)
	if meta["count"] != float64(10) || meta["max"] != float64(10) {
		t.Fatalf("meta=%v", meta)
	}
}

func TestStash_SaveTrimsAndRejectsBlank(t *testing.T) {
	setupCLI(t)

	m := dataMap(t, mustRun(t, "stash", "save", "  padded  "))
	if m["content"] != "padded" {
		t.Fatalf("content=%q", m["content"])
	}

	_, stderr, err := runCLI(t, []string{"stash", "save", "   "})
	if err == nil || !strings.Contains(string(stderr), "nothing to stash") {
		t.Fatalf("err=%v stderr=%q", err, string(stderr))
	}
}

func TestStash_ApplyWritesDraft(t *testing.T) {
	setupCLI(t)
	mustRun(t, "stash", "save", "older")
	mustRun(t, "stash", "save", "newer")

	m := dataMap(t, mustRun(t, "stash", "apply", "2"))
	if m["content"] != "older" || m["status"] != "Applied" {
		t.Fatalf("unexpected data: %v", m)
	}
	d := dataMap(t, mustRun(t, "draft", "show"))
	if d["present"] != true || d["content"] != "older" {
		t.Fatalf("draft=%v", d)
	}

	// Applying does not consume the stash.
	if xs := dataList(t, mustRun(t, "stash", "list")); len(xs) != 2 {
		t.Fatalf("len=%d", len(xs))
	}
}

func TestStash_IndexErrors(t *testing.T) {
	setupCLI(t)
	mustRun(t, "stash", "save", "only")

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"stash", "apply", "2"}, "no stash at index 2"},
		{[]string{"stash", "show", "0"}, "invalid stash index"},
		{[]string{"stash", "copy", "11"}, "invalid stash index"},
		{[]string{"stash", "apply", "x"}, "invalid stash index"},
	}
	for _, tc := range cases {
		_, stderr, err := runCLI(t, tc.args)
		if err == nil || !strings.Contains(string(stderr), tc.want) {
			t.Fatalf("%v: err=%v stderr=%q", tc.args, err, string(stderr))
		}
	}

	d := dataMap(t, mustRun(t, "draft", "show"))
	if d["present"] != false {
		t.Fatalf("draft changed: %v", d)
	}
}

func TestStash_ShowRender(t *testing.T) {
	setupCLI(t)
	mustRun(t, "stash", "save", "# Title\n\n- item one")

	m := dataMap(t, mustRun(t, "stash", "show", "1"))
	if m["content"] != "# Title\n\n- item one" {
		t.Fatalf("content=%q", m["content"])
	}

	out := string(mustRun(t, "stash", "show", "1", "--render", "--style", "ascii"))
	if !strings.Contains(out, "Title") || !strings.Contains(out, "item one") {
		t.Fatalf("rendered:\n%s", out)
	}
	if strings.Contains(out, `"data"`) {
		t.Fatalf("expected rendered text, got envelope:\n%s", out)
	}
}

func TestStash_Copy(t *testing.T) {
	setupCLI(t)
	var copied string
	prev := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = prev })

	mustRun(t, "stash", "save", "to the clipboard")
	m := dataMap(t, mustRun(t, "stash", "copy", "1"))
	if m["copied"] != true || copied != "to the clipboard" {
		t.Fatalf("data=%v copied=%q", m, copied)
	}
}

func TestStash_ListTextAndClear(t *testing.T) {
	setupCLI(t)

	if out := string(mustRun(t, "stash", "list", "--text")); out != "No stashes yet.\n" {
		t.Fatalf("empty list text=%q", out)
	}

	mustRun(t, "stash", "save", "a\nb")
	out := string(mustRun(t, "stash", "list", "--text"))
	if !strings.HasPrefix(out, "Stashes (newest first)\n") || !strings.Contains(out, "    a\n    b\n") {
		t.Fatalf("list text:\n%s", out)
	}

	mustRun(t, "stash", "clear")
	if xs := dataList(t, mustRun(t, "stash", "list")); len(xs) != 0 {
		t.Fatalf("expected empty, got %v", xs)
	}
}
