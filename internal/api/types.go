// File path: internal/api/types.go
package api

// aiConfidence is the fixed score reported for generated answers; only
// knowledge-base hits carry a real similarity score.
const aiConfidence = 0.85

const (
	sourceAI     = "AI Assistant"
	sourceSystem = "System"
)

type chatRequest struct {
	Message   string `json:"message"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

type chatResponse struct {
	Response   string  `json:"response"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	Role       string  `json:"role"`
}

type createSessionRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title,omitempty"`
}
