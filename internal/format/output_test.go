package format

import (
	"bytes"
	"testing"
)

type sample struct {
	URL      string   `json:"url"`
	AuthType string   `json:"authType"`
	Count    int      `json:"count"`
	Tags     []string `json:"tags"`
	Missing  *string  `json:"missing"`
}

func TestWrite_Formats(t *testing.T) {
	v := sample{URL: "https://x.test", AuthType: "none", Count: 2, Tags: []string{"a", "b"}}

	tests := []struct {
		format string
		pretty bool
		want   string
	}{
		{"json", false, `{"url":"https://x.test","authType":"none","count":2,"tags":["a","b"],"missing":null}` + "\n"},
		{"edn", false, `{:auth-type "none" :count 2 :missing nil :tags ["a" "b"] :url "https://x.test"}` + "\n"},
		{"edn", true, "{\n  :auth-type \"none\"\n  :count 2\n  :missing nil\n  :tags [\n    \"a\"\n    \"b\"\n  ]\n  :url \"https://x.test\"\n}\n"},
		{"yaml", false, "authType: none\ncount: 2\nmissing: null\ntags:\n  - a\n  - b\nurl: https://x.test\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, v, tt.format, tt.pretty); err != nil {
				t.Fatalf("write: %v", err)
			}
			if buf.String() != tt.want {
				t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "xml", false); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEDNKeyword(t *testing.T) {
	for in, want := range map[string]string{
		"url":          "url",
		"authType":     "auth-type",
		"extra_header": "extra-header",
		"dailyPath":    "daily-path",
	} {
		if got := ednKeyword(in); got != want {
			t.Fatalf("ednKeyword(%q) = %q, want %q", in, got, want)
		}
	}
}
