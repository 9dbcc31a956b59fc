package agent

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"adpilot/internal/ads"
	"adpilot/internal/functions"
	"adpilot/internal/gemini"
)

// ModelClient is the slice of the language-model client the orchestrator
// needs. *gemini.Client satisfies it.
type ModelClient interface {
	Generate(ctx context.Context, contents []gemini.Content, systemPrompt string, tools []gemini.Tool) (*gemini.Response, error)
}

// Orchestrator runs the two-pass turn loop: first model pass, parallel
// function dispatch, second model pass for the final text. It holds no
// per-session state; the caller threads the returned Context into the
// next turn.
type Orchestrator struct {
	model    ModelClient
	registry *functions.Registry
	bc       ads.BusinessContext
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewOrchestrator(model ModelClient, registry *functions.Registry, bc ads.BusinessContext, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		model:    model,
		registry: registry,
		bc:       bc,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return "msg_" + uuid.NewString() },
	}
}

// Turn processes one user message and returns the assistant message plus
// the updated conversation context. On error the input context is
// returned unchanged so the failed turn leaves no trace in session state.
func (o *Orchestrator) Turn(ctx context.Context, userMessage string, conv Context) (*ChatMessage, Context, error) {
	start := o.now()

	history := append(append([]gemini.Content(nil), conv.History...),
		gemini.Content{Role: "user", Parts: []gemini.Part{{Text: userMessage}}})
	systemPrompt := BuildSystemPrompt(o.bc, conv)
	tools := []gemini.Tool{{FunctionDeclarations: o.registry.Declarations()}}

	first, err := o.model.Generate(ctx, history, systemPrompt, tools)
	if err != nil {
		return nil, conv, fmt.Errorf("first model pass: %w", err)
	}

	final := first
	var callInfos []FunctionCallInfo

	if len(first.FunctionCalls) > 0 {
		o.logger.Debug("model requested function calls", zap.Int("count", len(first.FunctionCalls)))

		calls := make([]functions.Call, len(first.FunctionCalls))
		for i, fc := range first.FunctionCalls {
			calls[i] = functions.Call{Name: fc.Name, Args: fc.Args}
		}
		results := o.registry.ExecuteBatch(ctx, calls)

		succeeded := 0
		callInfos = make([]FunctionCallInfo, len(results))
		for i, res := range results {
			status := "error"
			if res.Success {
				status = "success"
				succeeded++
			}
			callInfos[i] = FunctionCallInfo{
				Name:          calls[i].Name,
				Arguments:     calls[i].Args,
				Result:        res.Data,
				Status:        status,
				ExecutionTime: res.ExecutionTime,
				Error:         res.Error,
			}
		}

		if succeeded == 0 {
			return nil, conv, fmt.Errorf("all %d function calls failed: %s", len(results), results[0].Error)
		}

		second := history
		for i, fc := range first.FunctionCalls {
			res := results[i]
			call := fc
			second = append(second,
				gemini.Content{Role: "model", Parts: []gemini.Part{{FunctionCall: &call}}},
				gemini.Content{Role: "user", Parts: []gemini.Part{{FunctionResponse: &gemini.FunctionResponse{
					Name: fc.Name,
					Response: gemini.ResponsePayload{
						Result:  res.Data,
						Success: res.Success,
						Error:   res.Error,
					},
				}}}},
			)
		}
		history = second

		final, err = o.model.Generate(ctx, history, systemPrompt, tools)
		if err != nil {
			return nil, conv, fmt.Errorf("second model pass: %w", err)
		}
	}

	elapsed := o.now().Sub(start)
	msg := &ChatMessage{
		ID:            o.newID(),
		Role:          "assistant",
		Content:       final.Text,
		Timestamp:     o.now(),
		FunctionCalls: callInfos,
		Visualization: buildVisualization(callInfos),
		Metadata: &MessageMetadata{
			TokensUsed:          estimateTokens(history, final.Text),
			ResponseTime:        elapsed.Milliseconds(),
			Confidence:          confidence(final),
			FunctionCallsCount:  len(callInfos),
			RecommendationLevel: RecommendationLevel(final.Text),
		},
	}

	updated := conv.Update(userMessage, final.Text, first.FunctionCalls)
	return msg, updated, nil
}

// WelcomeMessage is the canned greeting a fresh session opens with.
func (o *Orchestrator) WelcomeMessage() *ChatMessage {
	return &ChatMessage{
		ID:   o.newID(),
		Role: "assistant",
		Content: fmt.Sprintf("Hello! I'm your Google Ads expert for %s. I can help you optimize your %s campaigns, analyze performance, and scale your fashion e-commerce business.\n\nWhat would you like to know about your campaigns today?",
			o.bc.CompanyName, o.bc.Seasonality),
		Timestamp: o.now(),
		Metadata: &MessageMetadata{
			Confidence:          1.0,
			RecommendationLevel: "low",
		},
	}
}

// FallbackMessage renders a failed turn as an assistant-role apology. The
// conversation context is not touched for such turns.
func (o *Orchestrator) FallbackMessage(err error) *ChatMessage {
	reason := "Unknown error"
	if err != nil {
		reason = err.Error()
	}
	return &ChatMessage{
		ID:        o.newID(),
		Role:      "assistant",
		Content:   fmt.Sprintf("I apologize, but I encountered an error processing your request: %s. Please try again or rephrase your question.", reason),
		Timestamp: o.now(),
		Metadata: &MessageMetadata{
			RecommendationLevel: "low",
		},
	}
}

// RecommendationLevel classifies the urgency of an assistant reply by
// scanning for marker words, strongest match first.
func RecommendationLevel(content string) string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "critical") || strings.Contains(lower, "urgent") || strings.Contains(lower, "immediate"):
		return "critical"
	case strings.Contains(lower, "recommend") || strings.Contains(lower, "should") || strings.Contains(lower, "optimize"):
		return "high"
	case strings.Contains(lower, "consider") || strings.Contains(lower, "might") || strings.Contains(lower, "could"):
		return "medium"
	default:
		return "low"
	}
}

// confidence scores a response on rough quality signals. Specific figures
// and recommendations in the text, and the use of function calls, each
// raise it from the 0.5 base.
func confidence(resp *gemini.Response) float64 {
	text := resp.Text
	lower := strings.ToLower(text)
	score := 0.5
	if strings.Contains(text, "$") || strings.Contains(text, "%") {
		score += 0.2
	}
	if strings.Contains(lower, "recommend") || strings.Contains(lower, "suggest") {
		score += 0.2
	}
	if len(resp.FunctionCalls) > 0 {
		score += 0.3
	}
	return math.Min(score, 1.0)
}

// estimateTokens approximates usage at one token per four characters.
func estimateTokens(contents []gemini.Content, response string) int {
	chars := len(response)
	for _, c := range contents {
		for _, p := range c.Parts {
			chars += len(p.Text)
		}
	}
	return int(math.Ceil(float64(chars) / 4))
}

// buildVisualization picks a rendering hint from the turn's function
// results. Campaign listings win over performance analyses when both ran.
func buildVisualization(results []FunctionCallInfo) *Visualization {
	for _, r := range results {
		if r.Name == "getCampaigns" && r.Result != nil {
			return &Visualization{
				Type: "campaign-cards",
				Data: r.Result,
				Config: map[string]any{
					"title":               "Campaign Performance",
					"showTrends":          true,
					"highlightThresholds": true,
				},
			}
		}
	}
	for _, r := range results {
		if r.Name == "analyzeCampaignPerformance" && r.Result != nil {
			return &Visualization{
				Type: "performance-chart",
				Data: r.Result,
				Config: map[string]any{
					"title":     "Performance Analysis",
					"timeframe": "7 days",
					"chartType": "line",
					"metrics":   []string{"ROAS", "Conversion Rate", "CPA"},
				},
			}
		}
	}
	return nil
}
