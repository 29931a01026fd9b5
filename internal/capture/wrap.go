package capture

// WrapKind is a markdown shortcut.
type WrapKind string

const (
	WrapBold   WrapKind = "bold"
	WrapItalic WrapKind = "italic"
	WrapLink   WrapKind = "link"
	WrapTodo   WrapKind = "todo"
)

// Selection is a rune range; Start == End is a cursor.
type Selection struct {
	Start int
	End   int
}

// WrapSelection applies kind to text[start:end] (rune offsets) and returns the new
// text and selection. Out-of-range offsets are clamped.
func WrapSelection(text string, start, end int, kind WrapKind) (string, Selection) {
	rs := []rune(text)
	start = clamp(start, 0, len(rs))
	end = clamp(end, 0, len(rs))
	if end < start {
		start, end = end, start
	}
	before, sel, after := string(rs[:start]), string(rs[start:end]), string(rs[end:])
	n := end - start

	var prefix, suffix string
	var out Selection
	switch kind {
	case WrapBold, WrapItalic:
		prefix = "**"
		if kind == WrapItalic {
			prefix = "*"
		}
		suffix = prefix
		p := len([]rune(prefix))
		out = Selection{Start: start + p, End: end + p}
	case WrapLink:
		prefix, suffix = "[", "]()"
		// Cursor lands between the parentheses.
		c := start + n + 3
		out = Selection{Start: c, End: c}
	case WrapTodo:
		prefix = "- [ ] "
		out = Selection{Start: start + 6, End: start + 6 + n}
	default:
		return text, Selection{Start: start, End: end}
	}
	return before + prefix + sel + suffix + after, out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
