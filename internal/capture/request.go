package capture

import (
	"strings"

	"quickcap/internal/model"
	"quickcap/internal/sink"
)

// NewRequest validates a submission and builds the sink request for mode. The
// destination is checked before the content, so an unset path or URL is reported
// even for an empty buffer.
func NewRequest(mode model.Mode, content, dailyPath, standalonePath string, cfg model.EndpointConfig) (sink.Request, error) {
	switch mode {
	case model.ModeEndpoint:
		if cfg.URL == "" {
			return nil, ErrNoEndpoint
		}
		if strings.TrimSpace(content) == "" {
			return nil, ErrEmptyContent
		}
		return endpointRequest(content, cfg), nil

	case model.ModeDaily, model.ModeStandalone:
		path := dailyPath
		if mode == model.ModeStandalone {
			path = standalonePath
		}
		if path == "" {
			return nil, ErrNoPath
		}
		if strings.TrimSpace(content) == "" {
			return nil, ErrEmptyContent
		}
		return &sink.FileRequest{
			Thought:   content,
			Path:      path,
			Mode:      mode,
			DailyPath: dailyPath,
		}, nil

	default:
		return nil, ErrInvalidMode
	}
}

// endpointRequest passes only the credentials the auth type uses.
func endpointRequest(content string, cfg model.EndpointConfig) *sink.EndpointRequest {
	req := &sink.EndpointRequest{
		Content:  content,
		URL:      cfg.URL,
		AuthType: cfg.AuthType,
	}
	switch cfg.AuthType {
	case model.AuthBearer:
		tok := cfg.BearerToken
		req.AuthToken = &tok
	case model.AuthBasic:
		user, pass := cfg.Username, cfg.Password
		req.Username = &user
		req.Password = &pass
	}
	if strings.TrimSpace(cfg.ExtraHeaders) != "" {
		h := cfg.ExtraHeaders
		req.ExtraHeaders = &h
	}
	return req
}
