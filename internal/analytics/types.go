// Package analytics derives insights, optimization plans, budget proposals
// and reports from the campaign store. Everything here is pure computation
// over store snapshots.
package analytics

import "adpilot/internal/ads"

// ActionType identifies one kind of optimization lever.
type ActionType string

const (
	ActionBudgetIncrease    ActionType = "BUDGET_INCREASE"
	ActionBudgetDecrease    ActionType = "BUDGET_DECREASE"
	ActionBidAdjustment     ActionType = "BID_ADJUSTMENT"
	ActionKeywordAdd        ActionType = "KEYWORD_ADD"
	ActionKeywordRemove     ActionType = "KEYWORD_REMOVE"
	ActionAdCreativeUpdate  ActionType = "AD_CREATIVE_UPDATE"
	ActionAudienceAdjust    ActionType = "AUDIENCE_ADJUSTMENT"
	ActionCampaignPause     ActionType = "CAMPAIGN_PAUSE"
	ActionCampaignEnable    ActionType = "CAMPAIGN_ENABLE"
	ActionLandingPageUpdate ActionType = "LANDING_PAGE_UPDATE"
)

// OptimizationPriority ranks how urgently a plan should be executed.
type OptimizationPriority string

const (
	OptPriorityCritical OptimizationPriority = "CRITICAL"
	OptPriorityHigh     OptimizationPriority = "HIGH"
	OptPriorityMedium   OptimizationPriority = "MEDIUM"
	OptPriorityLow      OptimizationPriority = "LOW"
)

// ComplexityLevel grades how hard a plan is to implement.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "LOW"
	ComplexityMedium ComplexityLevel = "MEDIUM"
	ComplexityHigh   ComplexityLevel = "HIGH"
)

// Trend classifies the direction of a metric series.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// OptimizationAction is one concrete step in a plan. Current and recommended
// values are either numbers (budgets) or strings (strategy names), matching
// the wire shape the chat UI renders.
type OptimizationAction struct {
	Type             ActionType    `json:"type"`
	Description      string        `json:"description"`
	CurrentValue     any           `json:"currentValue,omitempty"`
	RecommendedValue any           `json:"recommendedValue"`
	Reason           string        `json:"reason"`
	Risk             ads.RiskLevel `json:"risk"`
}

// OptimizationPlan is the full set of recommended actions for one campaign.
type OptimizationPlan struct {
	CampaignID               string               `json:"campaignId"`
	Priority                 OptimizationPriority `json:"priority"`
	Actions                  []OptimizationAction `json:"actions"`
	EstimatedImpact          ads.EstimatedImpact  `json:"estimatedImpact"`
	ImplementationComplexity ComplexityLevel      `json:"implementationComplexity"`
	Timeline                 string               `json:"timeline"`
}

// BudgetProposal is an assessed budget change awaiting user approval.
type BudgetProposal struct {
	CampaignID      string              `json:"campaignId"`
	CurrentBudget   float64             `json:"currentBudget"`
	ProposedBudget  float64             `json:"proposedBudget"`
	Reason          string              `json:"reason"`
	EstimatedImpact ads.EstimatedImpact `json:"estimatedImpact"`
	RiskLevel       ads.RiskLevel       `json:"riskLevel"`
	Timeframe       string              `json:"timeframe"`
}

// CampaignAnalysis is the result of a single-campaign or portfolio analysis.
// Metrics values are numbers except trend and status.
type CampaignAnalysis struct {
	Summary         string                `json:"summary"`
	Metrics         map[string]any        `json:"metrics"`
	Insights        []ads.CampaignInsight `json:"insights"`
	Recommendations []string              `json:"recommendations"`
}

// PerformanceReport aggregates the active subset of the requested campaigns.
type PerformanceReport struct {
	Summary         string                `json:"summary"`
	Campaigns       []ads.Campaign        `json:"campaigns"`
	Insights        []ads.CampaignInsight `json:"insights"`
	Recommendations []string              `json:"recommendations"`
	Metrics         map[string]float64    `json:"metrics"`
}

// CompetitorInsights is the competitive landscape snapshot.
type CompetitorInsights struct {
	Opportunities   []string           `json:"opportunities"`
	Threats         []string           `json:"threats"`
	Recommendations []string           `json:"recommendations"`
	MarketShare     map[string]float64 `json:"marketShare"`
}
