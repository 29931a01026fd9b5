package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
)

// setupCLI isolates the config dir (and so the sqlite store) per test.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("QUICKCAP_CONFIG_DIR", dir)
	for _, k := range []string{"QUICKCAP_STORE", "QUICKCAP_DB", "QUICKCAP_FORMAT", "QUICKCAP_LOG_LEVEL", "QUICKCAP_MD_STYLE"} {
		t.Setenv(k, "")
	}
	return dir
}

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	return runCLIWithStdin(t, args, nil)
}

func runCLIWithStdin(t *testing.T, args []string, stdin io.Reader) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) []byte {
	t.Helper()
	out, errOut, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("%v: %v\nstderr=%s", args, err, string(errOut))
	}
	return out
}

func decodeEnvelope(t *testing.T, out []byte) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("decode: %v\nout=%s", err, string(out))
	}
	return env
}

func dataMap(t *testing.T, out []byte) map[string]any {
	t.Helper()
	m, ok := decodeEnvelope(t, out)["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got: %s", string(out))
	}
	return m
}

func dataList(t *testing.T, out []byte) []any {
	t.Helper()
	xs, ok := decodeEnvelope(t, out)["data"].([]any)
	if !ok {
		t.Fatalf("expected data list, got: %s", string(out))
	}
	return xs
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	setupCLI(t)

	_, stderr, err := runCLI(t, []string{"--format", "xml", "mode", "show"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "invalid --format") {
		t.Fatalf("stderr=%q", string(stderr))
	}
}

func TestRoot_YAMLOutput(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "--format", "yaml", "mode", "show")
	if got := string(out); !strings.Contains(got, "data:") || !strings.Contains(got, "mode: daily") {
		t.Fatalf("unexpected yaml:\n%s", got)
	}
}

func TestRoot_EDNOutput(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "--format", "edn", "mode", "show")
	if got := string(out); !strings.Contains(got, ":mode \"daily\"") {
		t.Fatalf("unexpected edn:\n%s", got)
	}
}

func TestRoot_UnknownStoreBackend(t *testing.T) {
	setupCLI(t)

	_, stderr, err := runCLI(t, []string{"--store", "etcd", "mode", "show"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "unknown store backend") {
		t.Fatalf("stderr=%q", string(stderr))
	}
}

func TestConfigPath_UsesConfigDir(t *testing.T) {
	dir := setupCLI(t)

	m := dataMap(t, mustRun(t, "config", "path"))
	if m["dir"] != dir {
		t.Fatalf("dir=%v, want %s", m["dir"], dir)
	}
	if !strings.HasSuffix(m["log"].(string), "quickcap.log") {
		t.Fatalf("log=%v", m["log"])
	}
}

func TestServe_RequiresDir(t *testing.T) {
	setupCLI(t)

	_, stderr, err := runCLI(t, []string{"serve"})
	if err == nil || !strings.Contains(string(stderr), "missing --dir") {
		t.Fatalf("err=%v stderr=%q", err, string(stderr))
	}
}
