// Package ads holds the campaign domain model and the in-memory store the
// rest of the system reads from. Mutations only simulate write-backs to the
// ads platform; no live API is ever called.
package ads

// CampaignStatus is the serving state of a campaign.
type CampaignStatus string

const (
	StatusEnabled CampaignStatus = "ENABLED"
	StatusPaused  CampaignStatus = "PAUSED"
	StatusRemoved CampaignStatus = "REMOVED"
	StatusEnded   CampaignStatus = "ENDED"
)

// CampaignType is the campaign format.
type CampaignType string

const (
	TypeSearch         CampaignType = "SEARCH"
	TypeDisplay        CampaignType = "DISPLAY"
	TypeShopping       CampaignType = "SHOPPING"
	TypeVideo          CampaignType = "VIDEO"
	TypePerformanceMax CampaignType = "PERFORMANCE_MAX"
	TypeApp            CampaignType = "APP"
	TypeDiscovery      CampaignType = "DISCOVERY"
	TypeLocal          CampaignType = "LOCAL"
)

// InsightType classifies a generated insight.
type InsightType string

const (
	InsightPerformance InsightType = "PERFORMANCE"
	InsightBudget      InsightType = "BUDGET"
	InsightSeasonal    InsightType = "SEASONAL"
	InsightCompetitive InsightType = "COMPETITIVE"
	InsightOpportunity InsightType = "OPPORTUNITY"
	InsightCreative    InsightType = "CREATIVE"
)

// InsightPriority ranks insights for presentation.
type InsightPriority string

const (
	PriorityCritical InsightPriority = "CRITICAL"
	PriorityHigh     InsightPriority = "HIGH"
	PriorityMedium   InsightPriority = "MEDIUM"
	PriorityLow      InsightPriority = "LOW"
)

// UrgencyLevel is the recommended action window for an insight.
type UrgencyLevel string

const (
	UrgencyImmediate   UrgencyLevel = "IMMEDIATE"
	UrgencyThisWeek    UrgencyLevel = "THIS_WEEK"
	UrgencyThisMonth   UrgencyLevel = "THIS_MONTH"
	UrgencyNextQuarter UrgencyLevel = "NEXT_QUARTER"
)

// InsightCategory groups insights by the kind of response they call for.
type InsightCategory string

const (
	CategoryOptimization InsightCategory = "OPTIMIZATION"
	CategoryAlert        InsightCategory = "ALERT"
	CategoryOpportunity  InsightCategory = "OPPORTUNITY"
	CategoryWarning      InsightCategory = "WARNING"
)

// ImpactType names what an estimated impact moves.
type ImpactType string

const (
	ImpactRevenueIncrease    ImpactType = "REVENUE_INCREASE"
	ImpactCostReduction      ImpactType = "COST_REDUCTION"
	ImpactConversionIncrease ImpactType = "CONVERSION_INCREASE"
	ImpactROASImprovement    ImpactType = "ROAS_IMPROVEMENT"
	ImpactTrafficIncrease    ImpactType = "TRAFFIC_INCREASE"
)

// ConfidenceLevel qualifies an impact estimate.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// RiskLevel qualifies a proposed change.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// PerformanceMetric is one day of campaign performance.
type PerformanceMetric struct {
	Date              string  `json:"date"`
	Impressions       int     `json:"impressions"`
	Clicks            int     `json:"clicks"`
	Conversions       int     `json:"conversions"`
	Cost              float64 `json:"cost"`
	Revenue           float64 `json:"revenue"`
	ROAS              float64 `json:"roas"`
	CostPerConversion float64 `json:"costPerConversion"`
	ConversionRate    float64 `json:"conversionRate"`
}

// EstimatedImpact quantifies the expected effect of acting on an insight.
type EstimatedImpact struct {
	Type       ImpactType      `json:"type"`
	Value      float64         `json:"value"`
	Confidence ConfidenceLevel `json:"confidence"`
	Timeframe  string          `json:"timeframe"`
}

// CampaignInsight is a generated recommendation. Insights are derived on
// demand and never persisted.
type CampaignInsight struct {
	Type            InsightType     `json:"type"`
	Priority        InsightPriority `json:"priority"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Recommendation  string          `json:"recommendation"`
	EstimatedImpact EstimatedImpact `json:"estimatedImpact"`
	Urgency         UrgencyLevel    `json:"urgency"`
	Category        InsightCategory `json:"category"`
}

// Campaign is one ads campaign with its rolled-up performance aggregates.
// The stored ratios (conversionRate, costPerConversion, ...) are trusted
// inputs; the core never recomputes them.
type Campaign struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Status            CampaignStatus      `json:"status"`
	Type              CampaignType        `json:"type"`
	Budget            float64             `json:"budget"`
	DailySpend        float64             `json:"dailySpend"`
	Impressions       int                 `json:"impressions"`
	Clicks            int                 `json:"clicks"`
	Conversions       int                 `json:"conversions"`
	ConversionRate    float64             `json:"conversionRate"`
	CostPerConversion float64             `json:"costPerConversion"`
	CostPerClick      float64             `json:"costPerClick"`
	ClickThroughRate  float64             `json:"clickThroughRate"`
	QualityScore      float64             `json:"qualityScore"`
	ROAS              float64             `json:"roas"`
	Revenue           float64             `json:"revenue"`
	CreatedAt         string              `json:"createdAt"`
	UpdatedAt         string              `json:"updatedAt"`
	TargetAudience    []string            `json:"targetAudience,omitempty"`
	Keywords          []string            `json:"keywords,omitempty"`
	Performance7Day   []PerformanceMetric `json:"performance7Day,omitempty"`
	Insights          []CampaignInsight   `json:"insights,omitempty"`
}

// BusinessContext is process-wide advertiser configuration. It is read-only
// for the lifetime of the process.
type BusinessContext struct {
	Industry      string   `json:"industry"`
	CompanyName   string   `json:"companyName"`
	AvgOrderValue float64  `json:"avgOrderValue"`
	TargetROAS    float64  `json:"targetROAS"`
	TargetCPA     float64  `json:"targetCPA"`
	Seasonality   string   `json:"seasonality"`
	Competitors   []string `json:"competitors"`
	UrgentIssues  []string `json:"urgentIssues"`
	BusinessGoals []string `json:"businessGoals"`
}
