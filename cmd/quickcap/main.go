package main

import (
	"os"
	"strings"

	"quickcap/internal/cli"
)

// rewriteStdinCaptureArgs turns `quickcap [flags] -` into `quickcap [flags] add -`, so
// piping into the bare binary captures a thought.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
// parsing. Persistent flags may come first, so the first positional token is located.
func rewriteStdinCaptureArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--store":     true,
		"--db":        true,
		"--format":    true,
		"--log-level": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "-" {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "add")
			out = append(out, argv[i:]...)
			return out
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteStdinCaptureArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
