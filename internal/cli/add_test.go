package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quickcap/internal/sink"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestAdd_DailyAppendsToTodaysNote(t *testing.T) {
	setupCLI(t)
	notes := t.TempDir()
	mustRun(t, "paths", "set", "--daily", notes)

	m := dataMap(t, mustRun(t, "add", "call", "the", "plumber"))
	if m["mode"] != "daily" || m["status"] != "Added" {
		t.Fatalf("unexpected data: %#v", m)
	}
	file := m["file"].(string)
	if filepath.Dir(file) != notes || !strings.HasSuffix(file, time.Now().Format("2006-01-02")+".md") {
		t.Fatalf("file=%s", file)
	}
	if got := readFile(t, file); !strings.Contains(got, "\ncall the plumber\n") {
		t.Fatalf("note:\n%s", got)
	}
}

func TestAdd_ReadsStdin(t *testing.T) {
	setupCLI(t)
	notes := t.TempDir()

	out, stderr, err := runCLIWithStdin(t, []string{"add", "--path", notes, "-"}, strings.NewReader("line one\nline two\n"))
	if err != nil {
		t.Fatalf("add: %v\nstderr=%s", err, string(stderr))
	}
	file := dataMap(t, out)["file"].(string)
	if got := readFile(t, file); !strings.HasSuffix(got, "\nline one\nline two\n") {
		t.Fatalf("note:\n%q", got)
	}

	// --path applies to this call only.
	m := dataMap(t, mustRun(t, "paths", "show"))
	if m["daily"] != "" {
		t.Fatalf("expected stored daily path untouched, got %v", m["daily"])
	}
}

func TestAdd_StandaloneWritesBacklink(t *testing.T) {
	setupCLI(t)
	daily := t.TempDir()
	standalone := t.TempDir()
	mustRun(t, "paths", "set", "--daily", daily, "--standalone", standalone)

	m := dataMap(t, mustRun(t, "add", "--mode", "standalone", "Big idea: rockets!"))
	file := m["file"].(string)
	if filepath.Dir(file) != standalone {
		t.Fatalf("file=%s", file)
	}
	stamp := strings.TrimSuffix(filepath.Base(file), ".md")
	if got := readFile(t, file); got != "# "+stamp+"\nBig idea: rockets!\n" {
		t.Fatalf("note:\n%q", got)
	}

	entries, err := os.ReadDir(daily)
	if err != nil || len(entries) != 1 {
		t.Fatalf("daily dir: %v %v", entries, err)
	}
	link := readFile(t, filepath.Join(daily, entries[0].Name()))
	if !strings.Contains(link, "[["+stamp+"|Big idea r]]") {
		t.Fatalf("backlink missing:\n%s", link)
	}
}

func TestAdd_Errors(t *testing.T) {
	setupCLI(t)

	cases := []struct {
		name string
		args []string
		want string
	}{
		{"no path", []string{"add", "hello"}, "no destination path set"},
		{"no text", []string{"add"}, "missing text"},
		{"blank text", []string{"add", "--path", t.TempDir(), "   "}, "nothing to submit"},
		{"bad mode", []string{"add", "--mode", "weekly", "hello"}, "invalid mode"},
		{"no endpoint", []string{"post", "hello"}, "no endpoint URL set"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, stderr, err := runCLI(t, tc.args)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(string(stderr), tc.want) {
				t.Fatalf("stderr=%q, want %q", string(stderr), tc.want)
			}
		})
	}
}

func TestPost_SendsToEndpoint(t *testing.T) {
	setupCLI(t)

	type received struct {
		auth string
		id   string
		body sink.Payload
	}
	got := make(chan received, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p sink.Payload
		_ = json.NewDecoder(r.Body).Decode(&p)
		got <- received{auth: r.Header.Get("Authorization"), id: r.Header.Get(sink.CaptureIDHeader), body: p}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	mustRun(t, "endpoint", "set", "--url", srv.URL+"/hook", "--auth", "bearer", "--token", "tok")

	m := dataMap(t, mustRun(t, "post", "ship", "it"))
	if m["mode"] != "endpoint" || m["url"] != srv.URL+"/hook" {
		t.Fatalf("unexpected data: %#v", m)
	}
	r := <-got
	if r.auth != "Bearer tok" || r.body.Body != "ship it" || r.id == "" {
		t.Fatalf("unexpected request: %#v", r)
	}
	if _, err := time.Parse(time.RFC3339, r.body.Timestamp); err != nil {
		t.Fatalf("timestamp %q: %v", r.body.Timestamp, err)
	}
}

func TestPost_Non2xxFails(t *testing.T) {
	setupCLI(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	mustRun(t, "endpoint", "set", "--url", srv.URL)
	_, stderr, err := runCLI(t, []string{"post", "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "server returned status 502") {
		t.Fatalf("stderr=%q", string(stderr))
	}
}

func TestAdd_LeavesDraftAlone(t *testing.T) {
	setupCLI(t)
	mustRun(t, "stash", "save", "restore me")
	mustRun(t, "stash", "apply", "1")

	mustRun(t, "add", "--path", t.TempDir(), "something else")

	m := dataMap(t, mustRun(t, "draft", "show"))
	if m["content"] != "restore me" {
		t.Fatalf("draft=%v", m["content"])
	}
}
