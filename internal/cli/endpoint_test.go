package cli

import (
	"strings"
	"testing"
)

func TestEndpoint_SetValidatesAndMasks(t *testing.T) {
	setupCLI(t)

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"endpoint", "set", "--auth", "none"}, "URL is required"},
		{[]string{"endpoint", "set", "--url", "not a url"}, "Invalid URL format"},
		{[]string{"endpoint", "set", "--url", "https://x.test", "--auth", "digest"}, "Invalid auth type"},
		{[]string{"endpoint", "set", "--url", "https://x.test", "--auth", "bearer"}, "Bearer token required"},
		{[]string{"endpoint", "set", "--url", "https://x.test", "--auth", "basic", "--username", "me"}, "Username and password required"},
	}
	for _, tc := range cases {
		_, stderr, err := runCLI(t, tc.args)
		if err == nil || !strings.Contains(string(stderr), tc.want) {
			t.Fatalf("%v: err=%v stderr=%q", tc.args, err, string(stderr))
		}
		if !strings.Contains(string(stderr), "Invalid settings") {
			t.Fatalf("stderr=%q", string(stderr))
		}
	}

	out := mustRun(t, "endpoint", "set", "--url", "https://x.test/in", "--auth", "bearer", "--token", "secret")
	m := dataMap(t, out)
	if m["url"] != "https://x.test/in" || m["authType"] != "bearer" || m["bearerToken"] != "***" {
		t.Fatalf("unexpected: %v", m)
	}
	if meta := decodeEnvelope(t, out)["meta"].(map[string]any); meta["valid"] != true {
		t.Fatalf("meta=%v", meta)
	}

	// Unset flags keep stored values.
	mustRun(t, "endpoint", "set", "--headers", "X-A: 1")
	m = dataMap(t, mustRun(t, "endpoint", "show", "--reveal"))
	if m["bearerToken"] != "secret" || m["url"] != "https://x.test/in" || m["extraHeaders"] != "X-A: 1" {
		t.Fatalf("unexpected: %v", m)
	}
}

func TestEndpoint_EditTextRoundTrip(t *testing.T) {
	setupCLI(t)
	mustRun(t, "endpoint", "set", "--url", "https://x.test", "--auth", "basic", "--username", "me", "--password", "pw")

	text := string(mustRun(t, "endpoint", "edit-text", "--print"))
	for _, want := range []string{"URL: https://x.test", "Auth Type: basic", "Username: me", "Password: pw"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}

	edited := strings.Replace(text, "Username: me", "Username: you", 1)
	out, stderr, err := runCLIWithStdin(t, []string{"endpoint", "edit-text"}, strings.NewReader(edited))
	if err != nil {
		t.Fatalf("edit-text: %v\nstderr=%s", err, string(stderr))
	}
	if m := dataMap(t, out); m["username"] != "you" || m["password"] != "***" {
		t.Fatalf("unexpected: %v", m)
	}

	_, stderr, err = runCLIWithStdin(t, []string{"endpoint", "edit-text"}, strings.NewReader("URL: \nAuth Type: none\n"))
	if err == nil || !strings.Contains(string(stderr), "URL is required") {
		t.Fatalf("err=%v stderr=%q", err, string(stderr))
	}
	m := dataMap(t, mustRun(t, "endpoint", "show", "--reveal"))
	if m["username"] != "you" {
		t.Fatalf("invalid text must not be saved: %v", m)
	}
}

func TestEndpoint_Headers(t *testing.T) {
	setupCLI(t)

	if xs := dataList(t, mustRun(t, "endpoint", "headers")); len(xs) != 0 {
		t.Fatalf("expected none, got %v", xs)
	}

	mustRun(t, "endpoint", "set", "--url", "https://x.test", "--headers", "X-Source: cli, broken, : nameless, X-Time: 09:00")
	xs := dataList(t, mustRun(t, "endpoint", "headers"))
	if len(xs) != 2 {
		t.Fatalf("headers=%v", xs)
	}
	h := xs[1].(map[string]any)
	if h["name"] != "X-Time" || h["value"] != "09:00" {
		t.Fatalf("header=%v", h)
	}
}

func TestModeAndPaths(t *testing.T) {
	setupCLI(t)

	if m := dataMap(t, mustRun(t, "mode", "show")); m["mode"] != "daily" {
		t.Fatalf("default mode=%v", m["mode"])
	}
	env := decodeEnvelope(t, mustRun(t, "mode", "set", "endpoint"))
	if _, ok := env["_hints"]; !ok {
		t.Fatalf("expected hint when no endpoint is set: %v", env)
	}
	if m := dataMap(t, mustRun(t, "mode", "show")); m["mode"] != "endpoint" {
		t.Fatalf("mode=%v", m["mode"])
	}
	if _, _, err := runCLI(t, []string{"mode", "set", "weekly"}); err == nil {
		t.Fatalf("expected error")
	}

	dir := t.TempDir()
	mustRun(t, "paths", "set", "--standalone", dir)
	m := dataMap(t, mustRun(t, "paths", "show"))
	if m["standalone"] != dir || m["daily"] != "" {
		t.Fatalf("paths=%v", m)
	}
	if _, _, err := runCLI(t, []string{"paths", "set"}); err == nil {
		t.Fatalf("expected error without flags")
	}
}

func TestDraft_ShowAndClear(t *testing.T) {
	setupCLI(t)

	if m := dataMap(t, mustRun(t, "draft", "show")); m["present"] != false {
		t.Fatalf("draft=%v", m)
	}
	mustRun(t, "stash", "save", "**bold** draft")
	mustRun(t, "stash", "apply", "1")

	out := string(mustRun(t, "draft", "show", "--render", "--style", "ascii"))
	if !strings.Contains(out, "bold") || strings.Contains(out, `"data"`) {
		t.Fatalf("rendered:\n%s", out)
	}

	mustRun(t, "draft", "clear")
	if m := dataMap(t, mustRun(t, "draft", "show")); m["present"] != false {
		t.Fatalf("draft=%v", m)
	}
}

func TestEndpoint_SetFoldsMultiLineHeaders(t *testing.T) {
	setupCLI(t)

	mustRun(t, "endpoint", "set", "--url", "https://x.test", "--headers", "X-A: 1\nX-B: 2")
	m := dataMap(t, mustRun(t, "endpoint", "show"))
	if m["extraHeaders"] != "X-A: 1, X-B: 2" {
		t.Fatalf("extraHeaders=%q", m["extraHeaders"])
	}

	text := string(mustRun(t, "endpoint", "edit-text", "--print"))
	if !strings.Contains(text, "Extra Headers: X-A: 1, X-B: 2\n") {
		t.Fatalf("text:\n%s", text)
	}
}
