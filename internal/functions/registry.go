// Package functions exposes the campaign toolbox to the language model:
// typed declarations, argument validation and dispatch.
package functions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"adpilot/internal/ads"
	"adpilot/internal/analytics"
)

// Call is one function invocation requested by the model.
type Call struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ResultMetadata carries execution details alongside a result.
type ResultMetadata struct {
	FunctionName      string   `json:"functionName"`
	ArgumentsProvided []string `json:"argumentsProvided"`
	DataType          string   `json:"dataType,omitempty"`
	ErrorType         string   `json:"errorType,omitempty"`
}

// Result is the outcome of executing one call. Either Data or Error is set.
type Result struct {
	Success       bool           `json:"success"`
	Data          any            `json:"data,omitempty"`
	Error         string         `json:"error,omitempty"`
	ExecutionTime int64          `json:"executionTime"`
	Metadata      ResultMetadata `json:"metadata"`
}

// Registry dispatches model function calls to the analytics engine and the
// campaign store. The function set is closed; adding a function means adding
// a declaration and a case here.
type Registry struct {
	engine *analytics.Engine
	store  *ads.Store
	logger *zap.Logger
}

// NewRegistry builds a registry over the given store.
func NewRegistry(store *ads.Store, logger *zap.Logger) *Registry {
	return &Registry{
		engine: analytics.NewEngine(store),
		store:  store,
		logger: logger,
	}
}

// Declarations returns the catalogue handed to the model.
func (r *Registry) Declarations() []Declaration {
	return Declarations()
}

// Execute runs one call and always returns a result, never an error: every
// failure, including a handler panic, becomes a failed Result so a bad call
// cannot take down the conversation.
func (r *Registry) Execute(ctx context.Context, call Call) (result Result) {
	start := time.Now()
	meta := ResultMetadata{
		FunctionName:      call.Name,
		ArgumentsProvided: argKeys(call.Args),
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("function handler panicked",
				zap.String("function", call.Name),
				zap.Any("panic", rec))
			meta.ErrorType = "panic"
			result = Result{
				Success:       false,
				Error:         fmt.Sprintf("internal error executing %s", call.Name),
				ExecutionTime: time.Since(start).Milliseconds(),
				Metadata:      meta,
			}
		}
	}()

	r.logger.Debug("executing function call",
		zap.String("function", call.Name),
		zap.Strings("args", meta.ArgumentsProvided))

	data, err := r.dispatch(ctx, call)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		r.logger.Warn("function call failed",
			zap.String("function", call.Name),
			zap.Int64("ms", elapsed),
			zap.Error(err))
		meta.ErrorType = errorType(err)
		return Result{
			Success:       false,
			Error:         err.Error(),
			ExecutionTime: elapsed,
			Metadata:      meta,
		}
	}

	r.logger.Debug("function call succeeded",
		zap.String("function", call.Name),
		zap.Int64("ms", elapsed))
	meta.DataType = fmt.Sprintf("%T", data)
	return Result{
		Success:       true,
		Data:          data,
		ExecutionTime: elapsed,
		Metadata:      meta,
	}
}

// ExecuteBatch runs the calls concurrently. Results come back in input
// order; individual failures are failed results, not errors.
func (r *Registry) ExecuteBatch(ctx context.Context, calls []Call) []Result {
	results := make([]Result, len(calls))
	g, ctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			results[i] = r.Execute(ctx, call)
			return nil
		})
	}
	// Execute never returns an error, so Wait cannot fail.
	_ = g.Wait()
	return results
}

func (r *Registry) dispatch(ctx context.Context, call Call) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch call.Name {
	case "getCampaigns":
		return r.handleGetCampaigns(call.Args)
	case "analyzeCampaignPerformance":
		return r.engine.AnalyzeCampaignPerformance(stringArg(call.Args, "campaignId"))
	case "getOptimizationPlan":
		return r.handleGetOptimizationPlan(call.Args)
	case "proposeBudgetChange":
		return r.handleProposeBudgetChange(call.Args)
	case "executeCampaignAction":
		return r.handleExecuteCampaignAction(call.Args)
	case "getCompetitorInsights":
		return r.engine.GetCompetitorInsights(), nil
	case "generatePerformanceReport":
		return r.handleGeneratePerformanceReport(call.Args)
	case "getCampaignPerformance":
		return r.handleGetCampaignPerformance(call.Args)
	case "executeBudgetChange":
		return r.handleExecuteBudgetChange(call.Args)
	default:
		return nil, fmt.Errorf("Unknown function: %s", call.Name)
	}
}

func (r *Registry) handleGetCampaigns(args map[string]any) (any, error) {
	var filters ads.Filters
	if s := stringArg(args, "status"); s != "" {
		filters.Status = ads.CampaignStatus(s)
	}
	if t := stringArg(args, "type"); t != "" {
		filters.Type = ads.CampaignType(t)
	}
	if v, ok := floatArg(args, "minROAS"); ok {
		filters.MinROAS = &v
	}
	if v, ok := floatArg(args, "maxCPA"); ok {
		filters.MaxCPA = &v
	}

	campaigns := r.engine.GetCampaigns(filters)

	summary := fmt.Sprintf("Retrieved %d campaigns", len(campaigns))
	if !filters.Empty() {
		summary += " with applied filters"
	}
	return map[string]any{
		"campaigns":      campaigns,
		"totalCampaigns": len(campaigns),
		"appliedFilters": filters,
		"summary":        summary,
	}, nil
}

func (r *Registry) handleGetOptimizationPlan(args map[string]any) (any, error) {
	id := stringArg(args, "campaignId")
	if id == "" {
		return nil, errors.New("Campaign ID is required for optimization plan")
	}
	return r.engine.GetOptimizationPlan(id)
}

func (r *Registry) handleProposeBudgetChange(args map[string]any) (any, error) {
	id := stringArg(args, "campaignId")
	newBudget, hasBudget := floatArg(args, "newBudget")
	reason := stringArg(args, "reason")
	if id == "" || !hasBudget || reason == "" {
		return nil, errors.New("Campaign ID, new budget, and reason are required")
	}
	return r.engine.ProposeBudgetChange(id, newBudget, reason)
}

func (r *Registry) handleExecuteCampaignAction(args map[string]any) (any, error) {
	id := stringArg(args, "campaignId")
	action := stringArg(args, "action")
	reason := stringArg(args, "reason")
	if id == "" || action == "" {
		return nil, errors.New("Campaign ID and action are required")
	}

	var status ads.CampaignStatus
	switch action {
	case "enable":
		status = ads.StatusEnabled
	case "pause":
		status = ads.StatusPaused
	case "remove":
		status = ads.StatusRemoved
	default:
		return nil, fmt.Errorf("unsupported action: %s", action)
	}

	err := r.store.SetStatus(id, status)
	success := err == nil
	message := fmt.Sprintf("Successfully %sd campaign %s", action, id)
	if !success {
		message = fmt.Sprintf("Failed to %s campaign %s", action, id)
	}
	return map[string]any{
		"success":    success,
		"campaignId": id,
		"action":     action,
		"reason":     reason,
		"message":    message,
	}, nil
}

func (r *Registry) handleGeneratePerformanceReport(args map[string]any) (any, error) {
	timeframe := stringArg(args, "timeframe")
	if timeframe == "" {
		timeframe = "7d"
	}
	return r.engine.GeneratePerformanceReport(timeframe, stringSliceArg(args, "campaignIds")), nil
}

func (r *Registry) handleGetCampaignPerformance(args map[string]any) (any, error) {
	id := stringArg(args, "campaignId")
	if id == "" {
		return nil, errors.New("Campaign ID is required")
	}
	days := 7
	if v, ok := floatArg(args, "days"); ok && v > 0 {
		days = int(v)
	}

	performance, ok := r.store.PerformanceWindow(id, days)
	if !ok {
		return nil, fmt.Errorf("campaign %q: %w", id, ads.ErrCampaignNotFound)
	}
	return map[string]any{
		"campaignId":  id,
		"days":        days,
		"performance": performance,
		"dataPoints":  len(performance),
		"summary":     fmt.Sprintf("%d days of performance data for campaign %s", len(performance), id),
	}, nil
}

func (r *Registry) handleExecuteBudgetChange(args map[string]any) (any, error) {
	id := stringArg(args, "campaignId")
	newBudget, hasBudget := floatArg(args, "newBudget")
	if id == "" || !hasBudget {
		return nil, errors.New("Campaign ID and new budget are required")
	}

	err := r.store.SetBudget(id, newBudget)
	success := err == nil
	message := fmt.Sprintf("Successfully updated budget for campaign %s to $%g/day", id, newBudget)
	if !success {
		message = fmt.Sprintf("Failed to update budget for campaign %s", id)
	}
	return map[string]any{
		"success":    success,
		"campaignId": id,
		"newBudget":  newBudget,
		"message":    message,
	}, nil
}

// stringArg returns the named argument when it is a non-empty string.
func stringArg(args map[string]any, key string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return ""
}

// floatArg returns the named argument as a float64. JSON numbers decode to
// float64, but handlers also accept the integer forms some SDKs produce.
func floatArg(args map[string]any, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// stringSliceArg returns the named argument as a string slice, accepting the
// []any form JSON decoding produces.
func stringSliceArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func argKeys(args map[string]any) []string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func errorType(err error) string {
	if errors.Is(err, ads.ErrCampaignNotFound) {
		return "not_found"
	}
	return "execution_error"
}
