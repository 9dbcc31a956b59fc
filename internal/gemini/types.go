package gemini

import "adpilot/internal/functions"

// Content is one turn in the conversation.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is one piece of a turn: text, a function call the model requested,
// or a function response we feed back.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// FunctionCall is a function invocation requested by the model.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// FunctionResponse carries an executed call's outcome back to the model.
type FunctionResponse struct {
	Name     string          `json:"name"`
	Response ResponsePayload `json:"response"`
}

// ResponsePayload is the body of a function response.
type ResponsePayload struct {
	Result  any    `json:"result,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Tool wraps function declarations in the wire shape the API expects.
type Tool struct {
	FunctionDeclarations []functions.Declaration `json:"functionDeclarations"`
}

// generationConfig carries sampling parameters.
type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents          []Content        `json:"contents"`
	SystemInstruction *Content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
	Tools             []Tool           `json:"tools,omitempty"`
}

// generateResponse is the generateContent response body.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
			Role  string `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Usage summarizes token consumption for one model call.
type Usage struct {
	PromptTokens    int `json:"promptTokens"`
	CandidateTokens int `json:"candidateTokens"`
	TotalTokens     int `json:"totalTokens"`
}

// Response is one parsed model reply.
type Response struct {
	Text          string
	FunctionCalls []FunctionCall
	FinishReason  string
	Usage         Usage
}
