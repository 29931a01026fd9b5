// Package endpoint renders the endpoint configuration as editable text and parses it
// back.
package endpoint

import (
	"net/url"
	"strings"

	"quickcap/internal/model"
)

const (
	labelURL          = "URL"
	labelAuthType     = "Auth Type"
	labelBearerToken  = "Bearer Token"
	labelUsername     = "Username"
	labelPassword     = "Password"
	labelExtraHeaders = "Extra Headers"
)

// ValidationError carries the user-facing reason a settings text was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(reason string) error { return &ValidationError{Reason: reason} }

type field struct {
	label string
	hint  string
	get   func(*model.EndpointConfig) *string
}

var fields = []field{
	{labelURL, "# Full URL including scheme, e.g. https://example.com/notes", func(c *model.EndpointConfig) *string { return &c.URL }},
	{labelAuthType, "# One of: none, bearer, basic", nil},
	{labelBearerToken, "# Used when Auth Type is bearer", func(c *model.EndpointConfig) *string { return &c.BearerToken }},
	{labelUsername, "# Used when Auth Type is basic", func(c *model.EndpointConfig) *string { return &c.Username }},
	{labelPassword, "# Used when Auth Type is basic", func(c *model.EndpointConfig) *string { return &c.Password }},
	{labelExtraHeaders, "# Comma separated, e.g. X-Api-Key: abc, X-Source: quickcap", func(c *model.EndpointConfig) *string { return &c.ExtraHeaders }},
}

// Format renders every field on its own labelled line followed by a "# ..." hint.
// Multi-line values are folded with FoldHeaders, so headers stored one per line come
// back from Parse comma separated; the parsed header set is unchanged.
func Format(cfg model.EndpointConfig) string {
	var b strings.Builder
	for i, f := range fields {
		var v string
		if f.get == nil {
			v = string(cfg.AuthType)
			if v == "" {
				v = string(model.AuthNone)
			}
		} else {
			v = *f.get(&cfg)
		}
		v = FoldHeaders(v)
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.label)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
		b.WriteString(f.hint)
		b.WriteString("\n")
	}
	return b.String()
}

// Parse reads labelled lines in any order and validates the result. Unknown lines,
// including the hint lines Format writes, are ignored.
func Parse(text string) (model.EndpointConfig, error) {
	cfg := model.DefaultEndpointConfig()
	authType := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(strings.TrimRight(line, "\r"), " \t")
		for _, f := range fields {
			rest, ok := strings.CutPrefix(line, f.label+":")
			if !ok {
				continue
			}
			v := strings.TrimSpace(rest)
			if f.get == nil {
				authType = strings.ToLower(v)
			} else {
				*f.get(&cfg) = v
			}
			break
		}
	}
	if authType != "" {
		cfg.AuthType = model.AuthType(authType)
	}
	if err := Validate(cfg); err != nil {
		return model.EndpointConfig{}, err
	}
	return cfg, nil
}

// Validate applies the settings rules in order and returns the first failure.
func Validate(cfg model.EndpointConfig) error {
	if cfg.URL == "" {
		return invalid("URL is required")
	}
	// The endpoint is posted to over HTTP, so a host is required: file:/// and urn:
	// URLs are absolute but rejected.
	u, err := url.Parse(cfg.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return invalid("Invalid URL format")
	}
	if !cfg.AuthType.Valid() {
		return invalid("Invalid auth type")
	}
	switch cfg.AuthType {
	case model.AuthBearer:
		if cfg.BearerToken == "" {
			return invalid("Bearer token required")
		}
	case model.AuthBasic:
		if cfg.Username == "" || cfg.Password == "" {
			return invalid("Username and password required")
		}
	}
	return nil
}
