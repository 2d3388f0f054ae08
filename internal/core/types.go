package core

// TokenMetrics is the token usage of the current session as reported by the
// transcript reader. ContextLength is the size of the prompt sent with the
// most recent request.
type TokenMetrics struct {
	InputTokens   int `json:"input_tokens"`
	OutputTokens  int `json:"output_tokens"`
	CachedTokens  int `json:"cached_tokens"`
	TotalTokens   int `json:"total_tokens"`
	ContextLength int `json:"context_length"`
}

type ModelInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// StatusData is the status payload the coding agent writes to stdin.
type StatusData struct {
	SessionID      string     `json:"session_id,omitempty"`
	TranscriptPath string     `json:"transcript_path,omitempty"`
	CWD            string     `json:"cwd,omitempty"`
	Model          *ModelInfo `json:"model,omitempty"`
}

// ModelID returns the active model id, or "" when the payload has none.
func (d *StatusData) ModelID() string {
	if d == nil || d.Model == nil {
		return ""
	}
	return d.Model.ID
}

// RenderContext carries everything a widget may read during one refresh.
type RenderContext struct {
	IsPreview    bool
	TokenMetrics *TokenMetrics
	Data         *StatusData
}

// Settings are host-wide render options shared by all widgets.
type Settings struct {
	Colors   bool `json:"colors"`
	MaxWidth int  `json:"max_width"`
}
