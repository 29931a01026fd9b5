package capture

import "quickcap/internal/model"

// Command is one discrete user action.
type Command interface {
	command()
}

type (
	// Edit replaces the buffer with Text.
	Edit struct{ Text string }
	// Submit sends the buffer using the selected mode.
	Submit struct{}
	// PostToEndpoint sends the buffer in endpoint mode whatever mode is selected.
	PostToEndpoint         struct{}
	SaveStash              struct{}
	ApplyStash             struct{ Index int }
	ToggleStashView        struct{}
	ToggleEndpointSettings struct{}
	// ToggleMode flips daily and standalone; endpoint goes back to daily.
	ToggleMode        struct{}
	SetMode           struct{ Mode model.Mode }
	SetDailyPath      struct{ Path string }
	SetStandalonePath struct{ Path string }
	FontSizeUp        struct{}
	FontSizeDown      struct{}
	// Wrap applies a markdown shortcut to the [Start, End) selection.
	Wrap struct {
		Kind       WrapKind
		Start, End int
	}
)

func (Edit) command()                   {}
func (Submit) command()                 {}
func (PostToEndpoint) command()         {}
func (SaveStash) command()              {}
func (ApplyStash) command()             {}
func (ToggleStashView) command()        {}
func (ToggleEndpointSettings) command() {}
func (ToggleMode) command()             {}
func (SetMode) command()                {}
func (SetDailyPath) command()           {}
func (SetStandalonePath) command()      {}
func (FontSizeUp) command()             {}
func (FontSizeDown) command()           {}
func (Wrap) command()                   {}
