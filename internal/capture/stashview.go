package capture

import (
	"fmt"
	"strings"

	"quickcap/internal/model"
)

const stashTimeLayout = "2006-01-02 15:04"

// RenderStashList is the read-only text shown in the stash view.
func RenderStashList(xs []model.StashEntry) string {
	if len(xs) == 0 {
		return "No stashes yet.\n"
	}
	var b strings.Builder
	b.WriteString("Stashes (newest first)\n")
	for i, e := range xs {
		when := e.Timestamp
		if t := e.Time(); !t.IsZero() {
			when = t.Local().Format(stashTimeLayout)
		}
		fmt.Fprintf(&b, "\n[%d] %s\n", i+1, when)
		for _, line := range strings.Split(e.Content, "\n") {
			b.WriteString("    ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
