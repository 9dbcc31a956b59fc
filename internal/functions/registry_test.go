package functions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adpilot/internal/ads"
	"adpilot/internal/analytics"
)

func newTestRegistry() *Registry {
	return NewRegistry(ads.NewSeededStore(), zap.NewNop())
}

func TestDeclarationsCatalogue(t *testing.T) {
	decls := Declarations()
	require.Len(t, decls, 9)

	byName := map[string]Declaration{}
	for _, d := range decls {
		byName[d.Name] = d
	}

	assert.Equal(t, []string{"campaignId"}, byName["getOptimizationPlan"].Parameters.Required)
	assert.Equal(t, []string{"campaignId", "newBudget", "reason"}, byName["proposeBudgetChange"].Parameters.Required)
	assert.Equal(t, []string{"campaignId", "action"}, byName["executeCampaignAction"].Parameters.Required)
	assert.Empty(t, byName["getCampaigns"].Parameters.Required)
	assert.Empty(t, byName["getCompetitorInsights"].Parameters.Properties)

	assert.Equal(t,
		[]string{"ENABLED", "PAUSED", "REMOVED", "ENDED"},
		byName["getCampaigns"].Parameters.Properties["status"].Enum)
	assert.Equal(t, "string", byName["generatePerformanceReport"].Parameters.Properties["campaignIds"].Items.Type)
}

func TestExecuteUnknownFunction(t *testing.T) {
	r := newTestRegistry()

	result := r.Execute(context.Background(), Call{Name: "deleteAccount", Args: map[string]any{}})
	assert.False(t, result.Success)
	assert.Equal(t, "Unknown function: deleteAccount", result.Error)
	assert.Equal(t, "deleteAccount", result.Metadata.FunctionName)
}

func TestExecuteGetCampaigns(t *testing.T) {
	r := newTestRegistry()

	result := r.Execute(context.Background(), Call{Name: "getCampaigns", Args: map[string]any{}})
	require.True(t, result.Success)
	data := result.Data.(map[string]any)
	assert.Equal(t, 5, data["totalCampaigns"])
	assert.Equal(t, "Retrieved 5 campaigns", data["summary"])

	result = r.Execute(context.Background(), Call{
		Name: "getCampaigns",
		Args: map[string]any{"status": "ENABLED", "minROAS": 4.5},
	})
	require.True(t, result.Success)
	data = result.Data.(map[string]any)
	assert.Equal(t, 2, data["totalCampaigns"])
	assert.Equal(t, "Retrieved 2 campaigns with applied filters", data["summary"])
	assert.ElementsMatch(t, []string{"minROAS", "status"}, result.Metadata.ArgumentsProvided)
}

func TestExecuteOptimizationPlan(t *testing.T) {
	r := newTestRegistry()

	result := r.Execute(context.Background(), Call{Name: "getOptimizationPlan", Args: map[string]any{}})
	assert.False(t, result.Success)
	assert.Equal(t, "Campaign ID is required for optimization plan", result.Error)

	result = r.Execute(context.Background(), Call{
		Name: "getOptimizationPlan",
		Args: map[string]any{"campaignId": "camp_999"},
	})
	assert.False(t, result.Success)
	assert.Equal(t, "not_found", result.Metadata.ErrorType)

	result = r.Execute(context.Background(), Call{
		Name: "getOptimizationPlan",
		Args: map[string]any{"campaignId": "camp_002"},
	})
	require.True(t, result.Success)
	plan := result.Data.(analytics.OptimizationPlan)
	assert.Equal(t, "camp_002", plan.CampaignID)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, 225.0, plan.Actions[0].RecommendedValue)
}

func TestExecuteCampaignAction(t *testing.T) {
	r := newTestRegistry()

	result := r.Execute(context.Background(), Call{
		Name: "executeCampaignAction",
		Args: map[string]any{"campaignId": "camp_001", "action": "pause"},
	})
	require.True(t, result.Success)
	data := result.Data.(map[string]any)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "Successfully paused campaign camp_001", data["message"])

	c, ok := r.store.ByID("camp_001")
	require.True(t, ok)
	assert.Equal(t, ads.StatusPaused, c.Status)

	// Missing campaigns report failure in the payload, not as a call error.
	result = r.Execute(context.Background(), Call{
		Name: "executeCampaignAction",
		Args: map[string]any{"campaignId": "camp_999", "action": "enable"},
	})
	require.True(t, result.Success)
	data = result.Data.(map[string]any)
	assert.Equal(t, false, data["success"])
	assert.Equal(t, "Failed to enable campaign camp_999", data["message"])

	result = r.Execute(context.Background(), Call{
		Name: "executeCampaignAction",
		Args: map[string]any{"campaignId": "camp_001", "action": "obliterate"},
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unsupported action")
}

func TestExecuteBudgetChange(t *testing.T) {
	r := newTestRegistry()

	result := r.Execute(context.Background(), Call{
		Name: "executeBudgetChange",
		Args: map[string]any{"campaignId": "camp_002", "newBudget": 225.0},
	})
	require.True(t, result.Success)
	data := result.Data.(map[string]any)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "Successfully updated budget for campaign camp_002 to $225/day", data["message"])

	c, ok := r.store.ByID("camp_002")
	require.True(t, ok)
	assert.Equal(t, 225.0, c.Budget)
}

func TestExecuteGetCampaignPerformance(t *testing.T) {
	r := newTestRegistry()

	result := r.Execute(context.Background(), Call{
		Name: "getCampaignPerformance",
		Args: map[string]any{"campaignId": "camp_001"},
	})
	require.True(t, result.Success)
	data := result.Data.(map[string]any)
	assert.Equal(t, 7, data["days"])
	assert.Equal(t, 7, data["dataPoints"])

	result = r.Execute(context.Background(), Call{
		Name: "getCampaignPerformance",
		Args: map[string]any{"campaignId": "camp_001", "days": 3.0},
	})
	require.True(t, result.Success)
	data = result.Data.(map[string]any)
	assert.Equal(t, 3, data["days"])
	assert.Equal(t, 3, data["dataPoints"])
}

func TestExecuteBatchPreservesOrder(t *testing.T) {
	r := newTestRegistry()

	calls := []Call{
		{Name: "getCompetitorInsights", Args: map[string]any{}},
		{Name: "noSuchFunction", Args: map[string]any{}},
		{Name: "analyzeCampaignPerformance", Args: map[string]any{"campaignId": "camp_001"}},
	}

	results := r.ExecuteBatch(context.Background(), calls)
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.Equal(t, "getCompetitorInsights", results[0].Metadata.FunctionName)
	assert.False(t, results[1].Success)
	assert.Equal(t, "noSuchFunction", results[1].Metadata.FunctionName)
	assert.True(t, results[2].Success)
	assert.Equal(t, "analyzeCampaignPerformance", results[2].Metadata.FunctionName)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		call       Call
		wantValid  bool
		wantErrors []string
	}{
		{
			name:      "valid call",
			call:      Call{Name: "getOptimizationPlan", Args: map[string]any{"campaignId": "camp_001"}},
			wantValid: true,
		},
		{
			name:       "unknown function",
			call:       Call{Name: "mintMoney", Args: map[string]any{}},
			wantErrors: []string{"Unknown function: mintMoney"},
		},
		{
			name:       "missing required",
			call:       Call{Name: "proposeBudgetChange", Args: map[string]any{"campaignId": "camp_001"}},
			wantErrors: []string{"Missing required parameter: newBudget", "Missing required parameter: reason"},
		},
		{
			name:       "wrong number type",
			call:       Call{Name: "executeBudgetChange", Args: map[string]any{"campaignId": "camp_001", "newBudget": "lots"}},
			wantErrors: []string{"Parameter newBudget should be a number, got string"},
		},
		{
			name:       "wrong string type",
			call:       Call{Name: "getCampaigns", Args: map[string]any{"status": 7.0}},
			wantErrors: []string{"Parameter status should be a string, got float64"},
		},
		{
			name:       "wrong array type",
			call:       Call{Name: "generatePerformanceReport", Args: map[string]any{"campaignIds": "camp_001"}},
			wantErrors: []string{"Parameter campaignIds should be an array, got string"},
		},
		{
			name:      "array as decoded json",
			call:      Call{Name: "generatePerformanceReport", Args: map[string]any{"campaignIds": []any{"camp_001"}}},
			wantValid: true,
		},
		{
			name:      "undeclared args pass through",
			call:      Call{Name: "getCampaigns", Args: map[string]any{"surprise": true}},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(tt.call)
			assert.Equal(t, tt.wantValid, v.Valid)
			assert.ElementsMatch(t, tt.wantErrors, v.Errors)
		})
	}
}
