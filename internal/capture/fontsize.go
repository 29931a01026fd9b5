package capture

import "strings"

// FontSizes in ascending order. Stored as "text-<size>".
var FontSizes = []string{"xs", "sm", "base", "lg", "xl", "2xl", "3xl"}

const DefaultFontSize = "base"

// FontSizeIndex returns the position of a stored or bare size, or the default's
// position if unknown.
func FontSizeIndex(v string) int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "text-")
	for i, s := range FontSizes {
		if s == v {
			return i
		}
	}
	return FontSizeIndex(DefaultFontSize)
}

// StepFontSize moves delta steps, stopping at either end.
func StepFontSize(current string, delta int) string {
	return FontSizes[clamp(FontSizeIndex(current)+delta, 0, len(FontSizes)-1)]
}

func fontSizeKey(size string) string { return "text-" + size }
