package functions

// Declaration describes one callable function the model may invoke. The
// structure marshals directly into the Gemini functionDeclarations wire
// format.
type Declaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Schema is an object-typed JSON schema for function parameters.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes one parameter.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Enum        []string  `json:"enum,omitempty"`
	Items       *Property `json:"items,omitempty"`
}

// Declarations returns the full function catalogue exposed to the model.
func Declarations() []Declaration {
	return []Declaration{
		{
			Name:        "getCampaigns",
			Description: "Retrieve all Google Ads campaigns with performance metrics and insights",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]Property{
					"status": {
						Type:        "string",
						Description: "Filter by campaign status",
						Enum:        []string{"ENABLED", "PAUSED", "REMOVED", "ENDED"},
					},
					"type": {
						Type:        "string",
						Description: "Filter by campaign type",
						Enum:        []string{"SEARCH", "DISPLAY", "SHOPPING", "VIDEO", "PERFORMANCE_MAX", "APP", "DISCOVERY", "LOCAL"},
					},
					"minROAS": {
						Type:        "number",
						Description: "Minimum ROAS threshold for filtering",
					},
					"maxCPA": {
						Type:        "number",
						Description: "Maximum cost per acquisition for filtering",
					},
				},
			},
		},
		{
			Name:        "analyzeCampaignPerformance",
			Description: "Analyze performance metrics for specific campaign or entire portfolio",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]Property{
					"campaignId": {
						Type:        "string",
						Description: "Specific campaign ID to analyze (optional - if not provided, analyzes all campaigns)",
					},
				},
			},
		},
		{
			Name:        "getOptimizationPlan",
			Description: "Generate specific optimization recommendations for a campaign",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]Property{
					"campaignId": {
						Type:        "string",
						Description: "Campaign ID to generate optimization plan for",
					},
				},
				Required: []string{"campaignId"},
			},
		},
		{
			Name:        "proposeBudgetChange",
			Description: "Calculate impact and propose budget changes for campaigns",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]Property{
					"campaignId": {
						Type:        "string",
						Description: "Campaign ID to modify budget for",
					},
					"newBudget": {
						Type:        "number",
						Description: "Proposed new daily budget amount",
					},
					"reason": {
						Type:        "string",
						Description: "Reason for budget change",
					},
				},
				Required: []string{"campaignId", "newBudget", "reason"},
			},
		},
		{
			Name:        "executeCampaignAction",
			Description: "Execute campaign management actions (enable, pause, remove)",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]Property{
					"campaignId": {
						Type:        "string",
						Description: "Campaign ID to perform action on",
					},
					"action": {
						Type:        "string",
						Description: "Action to perform",
						Enum:        []string{"enable", "pause", "remove"},
					},
					"reason": {
						Type:        "string",
						Description: "Reason for the action",
					},
				},
				Required: []string{"campaignId", "action"},
			},
		},
		{
			Name:        "getCompetitorInsights",
			Description: "Analyze competitor landscape and identify opportunities",
			Parameters: &Schema{
				Type:       "object",
				Properties: map[string]Property{},
			},
		},
		{
			Name:        "generatePerformanceReport",
			Description: "Generate comprehensive performance report for specified timeframe",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]Property{
					"timeframe": {
						Type:        "string",
						Description: "Report timeframe",
						Enum:        []string{"7d", "14d", "30d"},
					},
					"campaignIds": {
						Type:        "array",
						Description: "Specific campaign IDs to include (optional)",
						Items: &Property{
							Type:        "string",
							Description: "Campaign ID string",
						},
					},
				},
			},
		},
		{
			Name:        "getCampaignPerformance",
			Description: "Get detailed performance metrics for a specific campaign over time",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]Property{
					"campaignId": {
						Type:        "string",
						Description: "Campaign ID to get performance data for",
					},
					"days": {
						Type:        "number",
						Description: "Number of days of historical data to retrieve (default: 7)",
					},
				},
				Required: []string{"campaignId"},
			},
		},
		{
			Name:        "executeBudgetChange",
			Description: "Execute approved budget changes for campaigns",
			Parameters: &Schema{
				Type: "object",
				Properties: map[string]Property{
					"campaignId": {
						Type:        "string",
						Description: "Campaign ID to update budget for",
					},
					"newBudget": {
						Type:        "number",
						Description: "New daily budget amount",
					},
				},
				Required: []string{"campaignId", "newBudget"},
			},
		},
	}
}
