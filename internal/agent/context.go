package agent

import (
	"sort"
	"strings"

	"adpilot/internal/gemini"
)

// Rolling-context capacity limits. History holds user/model pairs so ten
// entries is five full turns.
const (
	historyLimit  = 10
	campaignLimit = 5
	actionLimit   = 10
)

// campaignKeywords is the fixed vocabulary scanned for campaign mentions.
var campaignKeywords = []string{
	"Performance Max", "Brand Awareness", "Display Retargeting",
	"Competitor Targeting", "Shopping", "Holiday Fashion", "Winter Collection",
}

// Preferences captures the user's inferred presentation preferences.
// Fields persist across turns and are only overwritten when a later
// message matches a rule for that field.
type Preferences struct {
	CommunicationStyle          string   `json:"communicationStyle"`
	DataVisualizationPreference string   `json:"dataVisualizationPreference"`
	NotificationLevel           string   `json:"notificationLevel"`
	PreferredMetrics            []string `json:"preferredMetrics"`
}

// DefaultPreferences returns the baseline used for a fresh session.
func DefaultPreferences() Preferences {
	return Preferences{
		CommunicationStyle:          "business-focused",
		DataVisualizationPreference: "mixed",
		NotificationLevel:           "critical-only",
		PreferredMetrics:            []string{"ROAS", "CPA", "Conversion Rate"},
	}
}

// Context is the bounded rolling state carried between turns. It is a
// value type: Update returns a fresh copy and never mutates the receiver,
// so the caller owns threading it from one turn to the next.
type Context struct {
	History            []gemini.Content `json:"conversationHistory"`
	MentionedCampaigns []string         `json:"mentionedCampaigns"`
	Preferences        Preferences      `json:"userPreferences"`
	ActionsTaken       []string         `json:"actionsTaken"`
}

// NewContext returns an empty conversation context with default preferences.
func NewContext() Context {
	return Context{Preferences: DefaultPreferences()}
}

// Update folds a completed turn into the context: the user/assistant text
// pair goes into history, campaign mentions and executed calls are
// merged into their bounded lists, and preference rules are applied to
// the user message.
func (c Context) Update(userMessage, assistantText string, calls []gemini.FunctionCall) Context {
	next := c.clone()

	next.History = append(next.History,
		gemini.Content{Role: "user", Parts: []gemini.Part{{Text: userMessage}}},
		gemini.Content{Role: "model", Parts: []gemini.Part{{Text: assistantText}}},
	)
	next.History = tail(next.History, historyLimit)

	mentions := ExtractCampaignMentions(userMessage + " " + assistantText)
	next.MentionedCampaigns = tail(mergeUnique(next.MentionedCampaigns, mentions), campaignLimit)

	for _, call := range calls {
		next.ActionsTaken = append(next.ActionsTaken, formatAction(call))
	}
	next.ActionsTaken = tail(next.ActionsTaken, actionLimit)

	next.Preferences = InferPreferences(userMessage, next.Preferences)
	return next
}

func (c Context) clone() Context {
	out := c
	out.History = append([]gemini.Content(nil), c.History...)
	out.MentionedCampaigns = append([]string(nil), c.MentionedCampaigns...)
	out.ActionsTaken = append([]string(nil), c.ActionsTaken...)
	out.Preferences.PreferredMetrics = append([]string(nil), c.Preferences.PreferredMetrics...)
	return out
}

// tail keeps at most the last n elements of s.
func tail[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func mergeUnique(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	out := make([]string, 0, len(existing)+len(incoming))
	for _, v := range existing {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, v := range incoming {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// ExtractCampaignMentions returns the campaign keywords present in text,
// matched case-insensitively, in catalogue order.
func ExtractCampaignMentions(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range campaignKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

func formatAction(call gemini.FunctionCall) string {
	keys := make([]string, 0, len(call.Args))
	for k := range call.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return call.Name + "(" + strings.Join(keys, ", ") + ")"
}

// prefRule maps trigger keywords to a value for one preference field.
// Rules for a field are evaluated in order and the first match wins.
type prefRule struct {
	keywords []string
	value    string
}

var (
	styleRules = []prefRule{
		{[]string{"quick", "summary", "brief"}, "concise"},
		{[]string{"detail", "explain", "thorough"}, "detailed"},
		{[]string{"technical", "deep dive"}, "technical"},
	}
	visualizationRules = []prefRule{
		{[]string{"chart", "graph"}, "charts"},
		{[]string{"table", "spreadsheet"}, "tables"},
		{[]string{"card", "summary card"}, "cards"},
	}
	notificationRules = []prefRule{
		{[]string{"urgent", "critical", "immediate"}, "critical-only"},
		{[]string{"all", "everything"}, "all"},
		{[]string{"minimal", "less"}, "minimal"},
	}
)

func matchRule(rules []prefRule, lower string) (string, bool) {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.value, true
			}
		}
	}
	return "", false
}

// InferPreferences applies the keyword rule tables to a user message and
// returns the preferences with any matched fields overwritten. Fields
// with no matching rule keep their previous value.
func InferPreferences(userMessage string, prev Preferences) Preferences {
	lower := strings.ToLower(userMessage)
	out := prev
	if v, ok := matchRule(styleRules, lower); ok {
		out.CommunicationStyle = v
	}
	if v, ok := matchRule(visualizationRules, lower); ok {
		out.DataVisualizationPreference = v
	}
	if v, ok := matchRule(notificationRules, lower); ok {
		out.NotificationLevel = v
	}
	return out
}
