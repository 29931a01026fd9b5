// Package sink performs the external side effect of a submission: appending markdown to
// local files or posting JSON to an HTTP endpoint.
package sink

import (
	"context"
	"errors"
	"fmt"

	"quickcap/internal/model"
)

// FileRequest asks for a thought to be written under Path. DailyPath is only used in
// standalone mode, for the backlink.
type FileRequest struct {
	Thought   string     `json:"thought"`
	Path      string     `json:"path"`
	Mode      model.Mode `json:"mode"`
	DailyPath string     `json:"dailyPath"`
}

// EndpointRequest asks for content to be posted. Credentials are nil unless the auth
// type uses them.
type EndpointRequest struct {
	Content      string         `json:"content"`
	URL          string         `json:"url"`
	AuthType     model.AuthType `json:"authType"`
	AuthToken    *string        `json:"authToken,omitempty"`
	Username     *string        `json:"username,omitempty"`
	Password     *string        `json:"password,omitempty"`
	ExtraHeaders *string        `json:"extraHeaders,omitempty"`
}

// Request is either *FileRequest or *EndpointRequest.
type Request interface {
	isRequest()
}

func (*FileRequest) isRequest()     {}
func (*EndpointRequest) isRequest() {}

// Sink delivers one request. Errors are opaque to callers.
type Sink interface {
	Deliver(ctx context.Context, req Request) error
}

var ErrUnsupportedRequest = errors.New("unsupported request")

// Router hands file requests to Files and endpoint requests to HTTP.
type Router struct {
	Files *FileSink
	HTTP  *HTTPSink
}

func (r *Router) Deliver(ctx context.Context, req Request) error {
	switch v := req.(type) {
	case *FileRequest:
		if r.Files == nil {
			return fmt.Errorf("%w: no file sink", ErrUnsupportedRequest)
		}
		return r.Files.Save(ctx, *v)
	case *EndpointRequest:
		if r.HTTP == nil {
			return fmt.Errorf("%w: no http sink", ErrUnsupportedRequest)
		}
		return r.HTTP.Post(ctx, *v)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedRequest, req)
	}
}

// Func adapts a function to Sink.
type Func func(ctx context.Context, req Request) error

func (f Func) Deliver(ctx context.Context, req Request) error { return f(ctx, req) }
