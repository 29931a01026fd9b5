package capture

// Status is the transient indicator shown next to the editor.
type Status string

const (
	StatusEdit                    Status = "edit"
	StatusSuccess                 Status = "success"
	StatusError                   Status = "error"
	StatusNoPath                  Status = "no_path"
	StatusNoEndpoint              Status = "no_endpoint"
	StatusStashSaved              Status = "stash_saved"
	StatusStashApplied            Status = "stash_applied"
	StatusSending                 Status = "sending"
	StatusEndpointSettingsSaved   Status = "endpoint_settings_saved"
	StatusEndpointSettingsInvalid Status = "endpoint_settings_invalid"
)

// Tone groups statuses for colouring.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneBad
	ToneInfo
)

var statusInfo = map[Status]struct {
	msg  string
	tone Tone
}{
	StatusEdit:                    {"Edit", ToneNeutral},
	StatusSuccess:                 {"Added", ToneGood},
	StatusError:                   {"Failed", ToneBad},
	StatusNoPath:                  {"No path", ToneBad},
	StatusNoEndpoint:              {"No endpoint", ToneBad},
	StatusStashSaved:              {"Stashed", ToneInfo},
	StatusStashApplied:            {"Applied", ToneInfo},
	StatusSending:                 {"Sending", ToneNeutral},
	StatusEndpointSettingsSaved:   {"Settings saved", ToneGood},
	StatusEndpointSettingsInvalid: {"Invalid settings", ToneBad},
}

func (s Status) Message() string {
	if v, ok := statusInfo[s]; ok {
		return v.msg
	}
	return string(s)
}

func (s Status) Tone() Tone {
	return statusInfo[s].tone
}

// Transient reports whether the status reverts to StatusEdit after a delay.
func (s Status) Transient() bool {
	return s != StatusEdit && s != StatusSending
}
