package ads

// Demo dataset for the StylePlus advertiser account. The numbers are frozen
// so insight thresholds and tests stay meaningful.

// SeedBusinessContext is the demo advertiser configuration.
func SeedBusinessContext() BusinessContext {
	return BusinessContext{
		Industry:      "Fashion E-commerce",
		CompanyName:   "StylePlus",
		AvgOrderValue: 85.50,
		TargetROAS:    4.2,
		TargetCPA:     22.50,
		Seasonality:   "Q4 Holiday Peak",
		Competitors:   []string{"Nike", "Adidas", "Under Armour", "H&M", "Zara"},
		UrgentIssues: []string{
			"Display campaign burning $45/day at high CPA",
			"Performance Max ready to scale (4.66% conv rate)",
			"Missing competitor keyword opportunities",
			"Mobile conversion rate 15% below desktop",
		},
		BusinessGoals: []string{
			"Scale holiday sales by 40%",
			"Improve overall ROAS to 4.5x",
			"Reduce cost per acquisition",
			"Increase mobile conversions",
			"Capture more competitor traffic",
		},
	}
}

// SeedCampaigns returns the five demo campaigns.
func SeedCampaigns() []Campaign {
	return []Campaign{
		{
			ID:                "camp_001",
			Name:              "Brand Awareness - StylePlus Fashion",
			Status:            StatusEnabled,
			Type:              TypeSearch,
			Budget:            75,
			DailySpend:        68.50,
			Impressions:       15420,
			Clicks:            892,
			Conversions:       67,
			ConversionRate:    3.62,
			CostPerConversion: 6.21,
			CostPerClick:      1.85,
			ClickThroughRate:  5.78,
			QualityScore:      8.2,
			ROAS:              4.8,
			Revenue:           5733.50,
			CreatedAt:         "2024-10-15",
			UpdatedAt:         "2024-12-28",
			TargetAudience:    []string{"Fashion enthusiasts", "Young professionals", "Style conscious"},
			Keywords:          []string{"stylish clothing", "fashion trends", "professional wear"},
			Performance7Day: []PerformanceMetric{
				{Date: "2024-12-22", Impressions: 2180, Clicks: 125, Conversions: 9, Cost: 231.25, Revenue: 769.50, ROAS: 3.3, CostPerConversion: 25.69, ConversionRate: 7.2},
				{Date: "2024-12-23", Impressions: 2350, Clicks: 142, Conversions: 11, Cost: 262.70, Revenue: 940.50, ROAS: 3.6, CostPerConversion: 23.88, ConversionRate: 7.7},
				{Date: "2024-12-24", Impressions: 1980, Clicks: 118, Conversions: 8, Cost: 218.30, Revenue: 684.00, ROAS: 3.1, CostPerConversion: 27.29, ConversionRate: 6.8},
				{Date: "2024-12-25", Impressions: 1420, Clicks: 78, Conversions: 5, Cost: 144.30, Revenue: 427.50, ROAS: 3.0, CostPerConversion: 28.86, ConversionRate: 6.4},
				{Date: "2024-12-26", Impressions: 2680, Clicks: 168, Conversions: 14, Cost: 310.80, Revenue: 1197.00, ROAS: 3.9, CostPerConversion: 22.20, ConversionRate: 8.3},
				{Date: "2024-12-27", Impressions: 2590, Clicks: 155, Conversions: 12, Cost: 286.75, Revenue: 1026.00, ROAS: 3.6, CostPerConversion: 23.90, ConversionRate: 7.7},
				{Date: "2024-12-28", Impressions: 2220, Clicks: 134, Conversions: 10, Cost: 247.80, Revenue: 855.00, ROAS: 3.4, CostPerConversion: 24.78, ConversionRate: 7.5},
			},
		},
		{
			ID:                "camp_002",
			Name:              "Performance Max - Holiday Fashion Sale",
			Status:            StatusEnabled,
			Type:              TypePerformanceMax,
			Budget:            150,
			DailySpend:        143.20,
			Impressions:       28640,
			Clicks:            1820,
			Conversions:       198,
			ConversionRate:    4.66,
			CostPerConversion: 6.40,
			CostPerClick:      2.12,
			ClickThroughRate:  6.35,
			QualityScore:      7.8,
			ROAS:              5.2,
			Revenue:           16929.00,
			CreatedAt:         "2024-11-01",
			UpdatedAt:         "2024-12-28",
			TargetAudience:    []string{"Holiday shoppers", "Gift buyers", "Fashion lovers"},
			Keywords:          []string{"holiday fashion", "winter sale", "fashion gifts", "holiday outfits"},
			Performance7Day: []PerformanceMetric{
				{Date: "2024-12-22", Impressions: 4180, Clicks: 265, Conversions: 28, Cost: 561.80, Revenue: 2394.00, ROAS: 4.3, CostPerConversion: 20.06, ConversionRate: 10.6},
				{Date: "2024-12-23", Impressions: 4520, Clicks: 295, Conversions: 32, Cost: 625.40, Revenue: 2736.00, ROAS: 4.4, CostPerConversion: 19.54, ConversionRate: 10.8},
				{Date: "2024-12-24", Impressions: 3890, Clicks: 248, Conversions: 25, Cost: 525.76, Revenue: 2137.50, ROAS: 4.1, CostPerConversion: 21.03, ConversionRate: 10.1},
				{Date: "2024-12-25", Impressions: 2980, Clicks: 185, Conversions: 19, Cost: 392.20, Revenue: 1624.50, ROAS: 4.1, CostPerConversion: 20.64, ConversionRate: 10.3},
				{Date: "2024-12-26", Impressions: 5120, Clicks: 338, Conversions: 38, Cost: 716.56, Revenue: 3249.00, ROAS: 4.5, CostPerConversion: 18.86, ConversionRate: 11.2},
				{Date: "2024-12-27", Impressions: 4860, Clicks: 312, Conversions: 35, Cost: 661.44, Revenue: 2992.50, ROAS: 4.5, CostPerConversion: 18.90, ConversionRate: 11.2},
				{Date: "2024-12-28", Impressions: 4090, Clicks: 268, Conversions: 31, Cost: 568.16, Revenue: 2652.50, ROAS: 4.7, CostPerConversion: 18.33, ConversionRate: 11.6},
			},
		},
		{
			ID:                "camp_003",
			Name:              "Display Retargeting - Cart Abandoners",
			Status:            StatusPaused,
			Type:              TypeDisplay,
			Budget:            45,
			DailySpend:        0,
			Impressions:       12580,
			Clicks:            356,
			Conversions:       24,
			ConversionRate:    2.70,
			CostPerConversion: 18.41,
			CostPerClick:      3.24,
			ClickThroughRate:  2.83,
			QualityScore:      6.4,
			ROAS:              2.1,
			Revenue:           2052.00,
			CreatedAt:         "2024-09-20",
			UpdatedAt:         "2024-12-26",
			TargetAudience:    []string{"Cart abandoners", "Previous visitors", "Product viewers"},
			Performance7Day:   pausedWeek(),
		},
		{
			ID:                "camp_004",
			Name:              "Competitor Targeting - Nike Keywords",
			Status:            StatusEnabled,
			Type:              TypeSearch,
			Budget:            35,
			DailySpend:        31.80,
			Impressions:       8940,
			Clicks:            428,
			Conversions:       18,
			ConversionRate:    4.21,
			CostPerConversion: 7.92,
			CostPerClick:      1.68,
			ClickThroughRate:  4.79,
			QualityScore:      7.1,
			ROAS:              4.1,
			Revenue:           1539.00,
			CreatedAt:         "2024-11-15",
			UpdatedAt:         "2024-12-28",
			TargetAudience:    []string{"Nike customers", "Athletic wear buyers", "Competitor traffic"},
			Keywords:          []string{"nike alternatives", "athletic wear sale", "sports fashion"},
			Performance7Day: []PerformanceMetric{
				{Date: "2024-12-22", Impressions: 1280, Clicks: 62, Conversions: 3, Cost: 104.16, Revenue: 256.50, ROAS: 2.5, CostPerConversion: 34.72, ConversionRate: 4.8},
				{Date: "2024-12-23", Impressions: 1420, Clicks: 69, Conversions: 3, Cost: 115.92, Revenue: 256.50, ROAS: 2.2, CostPerConversion: 38.64, ConversionRate: 4.3},
				{Date: "2024-12-24", Impressions: 1180, Clicks: 54, Conversions: 2, Cost: 90.72, Revenue: 171.00, ROAS: 1.9, CostPerConversion: 45.36, ConversionRate: 3.7},
				{Date: "2024-12-25", Impressions: 890, Clicks: 41, Conversions: 2, Cost: 68.88, Revenue: 171.00, ROAS: 2.5, CostPerConversion: 34.44, ConversionRate: 4.9},
				{Date: "2024-12-26", Impressions: 1520, Clicks: 75, Conversions: 4, Cost: 126.00, Revenue: 342.00, ROAS: 2.7, CostPerConversion: 31.50, ConversionRate: 5.3},
				{Date: "2024-12-27", Impressions: 1380, Clicks: 68, Conversions: 3, Cost: 114.24, Revenue: 256.50, ROAS: 2.2, CostPerConversion: 38.08, ConversionRate: 4.4},
				{Date: "2024-12-28", Impressions: 1270, Clicks: 59, Conversions: 3, Cost: 99.12, Revenue: 256.50, ROAS: 2.6, CostPerConversion: 33.04, ConversionRate: 5.1},
			},
		},
		{
			ID:                "camp_005",
			Name:              "Shopping - Winter Collection",
			Status:            StatusEnabled,
			Type:              TypeShopping,
			Budget:            90,
			DailySpend:        82.40,
			Impressions:       18750,
			Clicks:            1250,
			Conversions:       89,
			ConversionRate:    7.12,
			CostPerConversion: 10.34,
			CostPerClick:      1.45,
			ClickThroughRate:  6.67,
			QualityScore:      7.6,
			ROAS:              3.8,
			Revenue:           7609.50,
			CreatedAt:         "2024-10-01",
			UpdatedAt:         "2024-12-28",
			TargetAudience:    []string{"Winter fashion shoppers", "Cold weather clothing", "Seasonal buyers"},
			Keywords:          []string{"winter coats", "warm clothing", "winter fashion", "cold weather gear"},
			Performance7Day: []PerformanceMetric{
				{Date: "2024-12-22", Impressions: 2680, Clicks: 178, Conversions: 13, Cost: 258.10, Revenue: 1111.50, ROAS: 4.3, CostPerConversion: 19.85, ConversionRate: 7.3},
				{Date: "2024-12-23", Impressions: 2890, Clicks: 195, Conversions: 15, Cost: 282.75, Revenue: 1282.50, ROAS: 4.5, CostPerConversion: 18.85, ConversionRate: 7.7},
				{Date: "2024-12-24", Impressions: 2420, Clicks: 162, Conversions: 11, Cost: 234.90, Revenue: 940.50, ROAS: 4.0, CostPerConversion: 21.35, ConversionRate: 6.8},
				{Date: "2024-12-25", Impressions: 1890, Clicks: 125, Conversions: 8, Cost: 181.25, Revenue: 684.00, ROAS: 3.8, CostPerConversion: 22.66, ConversionRate: 6.4},
				{Date: "2024-12-26", Impressions: 3120, Clicks: 218, Conversions: 17, Cost: 316.10, Revenue: 1453.50, ROAS: 4.6, CostPerConversion: 18.59, ConversionRate: 7.8},
				{Date: "2024-12-27", Impressions: 2980, Clicks: 205, Conversions: 16, Cost: 297.25, Revenue: 1368.00, ROAS: 4.6, CostPerConversion: 18.58, ConversionRate: 7.8},
				{Date: "2024-12-28", Impressions: 2770, Clicks: 187, Conversions: 14, Cost: 271.15, Revenue: 1197.00, ROAS: 4.4, CostPerConversion: 19.37, ConversionRate: 7.5},
			},
		},
	}
}

// pausedWeek is a week of zeroed daily metrics for a non-serving campaign.
func pausedWeek() []PerformanceMetric {
	dates := []string{
		"2024-12-22", "2024-12-23", "2024-12-24", "2024-12-25",
		"2024-12-26", "2024-12-27", "2024-12-28",
	}
	out := make([]PerformanceMetric, len(dates))
	for i, d := range dates {
		out[i] = PerformanceMetric{Date: d}
	}
	return out
}

// SeedInsights returns the portfolio-level insights for the demo account.
func SeedInsights() []CampaignInsight {
	return []CampaignInsight{
		{
			Type:           InsightOpportunity,
			Priority:       PriorityCritical,
			Title:          "Q4 Holiday Revenue Acceleration",
			Description:    "Performance Max campaign shows exceptional performance metrics, ready for immediate scaling during peak holiday shopping period",
			Recommendation: "Increase Performance Max budget from $150 to $225/day to capture remaining holiday traffic. Expected additional revenue: $2,800-3,500",
			EstimatedImpact: EstimatedImpact{
				Type: ImpactRevenueIncrease, Value: 3200, Confidence: ConfidenceHigh, Timeframe: "Next 7 days",
			},
			Urgency:  UrgencyImmediate,
			Category: CategoryOpportunity,
		},
		{
			Type:           InsightCompetitive,
			Priority:       PriorityHigh,
			Title:          "Competitor Keyword Gap",
			Description:    "Missing visibility on high-value competitor keywords during holiday season when competitor traffic is 40% higher",
			Recommendation: "Launch expanded competitor targeting campaigns for Adidas and Under Armour keywords with $25/day budget each",
			EstimatedImpact: EstimatedImpact{
				Type: ImpactTrafficIncrease, Value: 25, Confidence: ConfidenceMedium, Timeframe: "Weekly increase",
			},
			Urgency:  UrgencyThisWeek,
			Category: CategoryOpportunity,
		},
		{
			Type:           InsightBudget,
			Priority:       PriorityMedium,
			Title:          "Budget Reallocation Opportunity",
			Description:    "Paused Display campaign budget ($45/day) can be reallocated to high-performing campaigns for better ROI",
			Recommendation: "Redistribute Display budget: $30 to Performance Max, $15 to Competitor Targeting for optimal holiday performance",
			EstimatedImpact: EstimatedImpact{
				Type: ImpactROASImprovement, Value: 1.2, Confidence: ConfidenceHigh, Timeframe: "Immediate",
			},
			Urgency:  UrgencyThisWeek,
			Category: CategoryOptimization,
		},
		{
			Type:           InsightCreative,
			Priority:       PriorityMedium,
			Title:          "Mobile Conversion Optimization",
			Description:    "Mobile conversion rates 15% below desktop across all campaigns, indicating creative or landing page issues",
			Recommendation: "Implement mobile-optimized landing pages and test mobile-specific ad creatives with stronger calls-to-action",
			EstimatedImpact: EstimatedImpact{
				Type: ImpactConversionIncrease, Value: 18, Confidence: ConfidenceMedium, Timeframe: "2-3 weeks",
			},
			Urgency:  UrgencyThisMonth,
			Category: CategoryOptimization,
		},
		{
			Type:           InsightSeasonal,
			Priority:       PriorityHigh,
			Title:          "Holiday Season Urgency",
			Description:    "Only 4 days remaining in peak holiday shopping period. Current performance trends show opportunity for 40% revenue increase",
			Recommendation: "Execute emergency scaling plan: increase total daily budget from $350 to $475 across top-performing campaigns",
			EstimatedImpact: EstimatedImpact{
				Type: ImpactRevenueIncrease, Value: 4200, Confidence: ConfidenceHigh, Timeframe: "Remaining holiday period",
			},
			Urgency:  UrgencyImmediate,
			Category: CategoryAlert,
		},
	}
}

// NewSeededStore builds a store over the demo dataset.
func NewSeededStore() *Store {
	return NewStore(SeedCampaigns(), SeedBusinessContext(), SeedInsights())
}
