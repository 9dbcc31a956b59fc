package agent

import (
	"context"

	"adpilot/internal/gemini"
)

// mockModel scripts Generate responses per call. Responses are consumed
// in order; errors occupy a slot like any other response.
type mockModel struct {
	responses []mockReply
	calls     []mockCall
}

type mockReply struct {
	resp *gemini.Response
	err  error
}

type mockCall struct {
	contents     []gemini.Content
	systemPrompt string
	tools        []gemini.Tool
}

func (m *mockModel) Generate(_ context.Context, contents []gemini.Content, systemPrompt string, tools []gemini.Tool) (*gemini.Response, error) {
	m.calls = append(m.calls, mockCall{contents: contents, systemPrompt: systemPrompt, tools: tools})
	if len(m.responses) == 0 {
		return &gemini.Response{Text: "ok"}, nil
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	return next.resp, next.err
}

func textReply(text string) mockReply {
	return mockReply{resp: &gemini.Response{Text: text, FinishReason: "STOP"}}
}

func callReply(calls ...gemini.FunctionCall) mockReply {
	return mockReply{resp: &gemini.Response{FunctionCalls: calls}}
}

func errReply(err error) mockReply {
	return mockReply{err: err}
}
