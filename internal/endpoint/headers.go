package endpoint

import "strings"

// Header is one extra request header.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParseExtraHeaders splits "Name: value, Other: value" text into headers. Pairs are
// separated by commas or newlines and split on the first colon; pairs without a
// colon or with an empty name are dropped.
func ParseExtraHeaders(raw string) []Header {
	var out []Header
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' })
	for _, p := range parts {
		name, value, ok := strings.Cut(p, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, Header{Name: name, Value: strings.TrimSpace(value)})
	}
	return out
}

// FoldHeaders puts newline-separated headers on one comma-separated line, the form
// the settings text uses. Saving folded headers keeps Parse(Format(cfg)) == cfg.
func FoldHeaders(raw string) string {
	raw = strings.TrimRight(raw, "\r\n")
	return strings.ReplaceAll(strings.ReplaceAll(raw, "\r\n", ", "), "\n", ", ")
}
