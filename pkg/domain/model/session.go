package model

// Session is the state produced by the orchestrator. It is a value type; the
// With* functions return an updated copy and never mutate the receiver.
type Session struct {
	Result    *ExtractionResult `json:"result,omitempty"`
	SourceURL string            `json:"source_url"`
	Mode      Mode              `json:"mode"`
}

// NewSession returns an empty session in the default mode
func NewSession() Session {
	return Session{Mode: DefaultMode}
}

// WithMode switches the display mode. Result and SourceURL are kept.
func (s Session) WithMode(m Mode) Session {
	s.Mode = m
	return s
}

// WithSubmitted records the URL of a submitted extraction, whether or not it
// later succeeds
func (s Session) WithSubmitted(url string) Session {
	s.SourceURL = url
	return s
}

// WithResult replaces the last successful extraction result
func (s Session) WithResult(r *ExtractionResult) Session {
	s.Result = r
	return s
}
