package agent

import "time"

// ChatMessage is one entry in a session transcript, either side of the
// conversation. Assistant messages carry the function-call trace and
// derived metadata for the turn that produced them.
type ChatMessage struct {
	ID            string             `json:"id"`
	Role          string             `json:"role"`
	Content       string             `json:"content"`
	Timestamp     time.Time          `json:"timestamp"`
	FunctionCalls []FunctionCallInfo `json:"functionCalls,omitempty"`
	Visualization *Visualization     `json:"dataVisualization,omitempty"`
	Metadata      *MessageMetadata   `json:"metadata,omitempty"`
}

// FunctionCallInfo records one function invocation made during a turn.
type FunctionCallInfo struct {
	Name          string         `json:"name"`
	Arguments     map[string]any `json:"arguments"`
	Result        any            `json:"result,omitempty"`
	Status        string         `json:"status"`
	ExecutionTime int64          `json:"executionTime"`
	Error         string         `json:"error,omitempty"`
}

// Visualization is a rendering hint attached to an assistant message when
// the turn produced data a UI can chart or card.
type Visualization struct {
	Type   string         `json:"type"`
	Data   any            `json:"data"`
	Config map[string]any `json:"config"`
}

// MessageMetadata carries per-turn observability figures.
type MessageMetadata struct {
	TokensUsed          int     `json:"tokensUsed"`
	ResponseTime        int64   `json:"responseTime"`
	Confidence          float64 `json:"confidence"`
	FunctionCallsCount  int     `json:"functionCallsCount"`
	RecommendationLevel string  `json:"recommendationLevel"`
}
