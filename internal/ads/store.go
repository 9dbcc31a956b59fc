package ads

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Filters narrows a campaign listing. Nil numeric bounds and empty enum
// values mean "not provided"; all provided predicates are ANDed.
type Filters struct {
	Status  CampaignStatus `json:"status,omitempty"`
	Type    CampaignType   `json:"type,omitempty"`
	MinROAS *float64       `json:"minROAS,omitempty"`
	MaxCPA  *float64       `json:"maxCPA,omitempty"`
}

// Empty reports whether no predicate was provided.
func (f Filters) Empty() bool {
	return f.Status == "" && f.Type == "" && f.MinROAS == nil && f.MaxCPA == nil
}

// Store owns the canonical in-memory campaign list plus the advertiser's
// business context and portfolio-level insights. Mutations simulate
// write-backs to the ads platform; nothing leaves the process.
type Store struct {
	mu        sync.RWMutex
	campaigns []Campaign

	businessCtx BusinessContext
	insights    []CampaignInsight
}

// NewStore builds a store over the given data. Callers keep no aliases to
// the slices they pass in.
func NewStore(campaigns []Campaign, bc BusinessContext, insights []CampaignInsight) *Store {
	s := &Store{
		campaigns:   make([]Campaign, len(campaigns)),
		businessCtx: bc,
		insights:    make([]CampaignInsight, len(insights)),
	}
	for i, c := range campaigns {
		s.campaigns[i] = c.clone()
	}
	copy(s.insights, insights)
	return s
}

// clone detaches a campaign from the store's backing arrays so callers can
// mutate what they get back without reaching store state.
func (c Campaign) clone() Campaign {
	out := c
	out.TargetAudience = append([]string(nil), c.TargetAudience...)
	out.Keywords = append([]string(nil), c.Keywords...)
	out.Performance7Day = append([]PerformanceMetric(nil), c.Performance7Day...)
	out.Insights = append([]CampaignInsight(nil), c.Insights...)
	return out
}

// BusinessContext returns the advertiser configuration.
func (s *Store) BusinessContext() BusinessContext {
	return s.businessCtx
}

// All returns a copy of every campaign in original order.
func (s *Store) All() []Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Campaign, len(s.campaigns))
	for i, c := range s.campaigns {
		out[i] = c.clone()
	}
	return out
}

// Filter returns the campaigns satisfying every provided predicate,
// preserving original relative order.
func (s *Store) Filter(f Filters) []Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		if f.MinROAS != nil && c.ROAS < *f.MinROAS {
			continue
		}
		if f.MaxCPA != nil && c.CostPerConversion > *f.MaxCPA {
			continue
		}
		out = append(out, c.clone())
	}
	return out
}

// ByID looks up one campaign.
func (s *Store) ByID(id string) (Campaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.campaigns {
		if c.ID == id {
			return c.clone(), true
		}
	}
	return Campaign{}, false
}

// ByStatus returns campaigns in the given serving state.
func (s *Store) ByStatus(status CampaignStatus) []Campaign {
	return s.Filter(Filters{Status: status})
}

// ByType returns campaigns of the given format.
func (s *Store) ByType(t CampaignType) []Campaign {
	return s.Filter(Filters{Type: t})
}

// TopPerforming returns up to n enabled campaigns sorted by ROAS descending.
// The sort is stable so ties keep their original order.
func (s *Store) TopPerforming(n int) []Campaign {
	enabled := s.ByStatus(StatusEnabled)
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].ROAS > enabled[j].ROAS
	})
	if n >= 0 && len(enabled) > n {
		enabled = enabled[:n]
	}
	return enabled
}

// PerformanceWindow returns the trailing days of daily metrics for one
// campaign. The second return is false when the campaign does not exist.
func (s *Store) PerformanceWindow(id string, days int) ([]PerformanceMetric, bool) {
	c, ok := s.ByID(id)
	if !ok {
		return nil, false
	}
	perf := c.Performance7Day
	if days > 0 && len(perf) > days {
		perf = perf[len(perf)-days:]
	}
	out := make([]PerformanceMetric, len(perf))
	copy(out, perf)
	return out, true
}

// PortfolioInsights returns the portfolio-level insights.
func (s *Store) PortfolioInsights() []CampaignInsight {
	out := make([]CampaignInsight, len(s.insights))
	copy(out, s.insights)
	return out
}

// CriticalInsights returns the insights that need attention now: priority
// CRITICAL or urgency IMMEDIATE.
func (s *Store) CriticalInsights() []CampaignInsight {
	var out []CampaignInsight
	for _, in := range s.insights {
		if in.Priority == PriorityCritical || in.Urgency == UrgencyImmediate {
			out = append(out, in)
		}
	}
	return out
}

// TotalDailySpend sums dailySpend across every campaign.
func (s *Store) TotalDailySpend() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, c := range s.campaigns {
		total += c.DailySpend
	}
	return total
}

// TotalRevenue sums revenue across every campaign.
func (s *Store) TotalRevenue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, c := range s.campaigns {
		total += c.Revenue
	}
	return total
}

// OverallROAS is total revenue over approximated monthly spend
// (dailySpend x 30 per campaign). The x30 approximation is intentional and
// matches the reported portfolio numbers elsewhere in the system.
func (s *Store) OverallROAS() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var monthlySpend, revenue float64
	for _, c := range s.campaigns {
		monthlySpend += c.DailySpend * 30
		revenue += c.Revenue
	}
	if monthlySpend == 0 {
		return 0
	}
	return revenue / monthlySpend
}

// SetBudget replaces a campaign's daily budget and stamps updatedAt.
func (s *Store) SetBudget(id string, newBudget float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.campaigns {
		if s.campaigns[i].ID == id {
			s.campaigns[i].Budget = newBudget
			s.campaigns[i].UpdatedAt = today()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCampaignNotFound, id)
}

// SetStatus replaces a campaign's serving state and stamps updatedAt.
// Leaving ENABLED zeroes dailySpend, mirroring what the platform reports
// for non-serving campaigns.
func (s *Store) SetStatus(id string, status CampaignStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.campaigns {
		if s.campaigns[i].ID == id {
			s.campaigns[i].Status = status
			if status != StatusEnabled {
				s.campaigns[i].DailySpend = 0
			}
			s.campaigns[i].UpdatedAt = today()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCampaignNotFound, id)
}

func today() string {
	return time.Now().Format("2006-01-02")
}
