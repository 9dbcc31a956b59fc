package agent

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"adpilot/internal/ads"
	"adpilot/internal/gemini"
)

func TestBuildSystemPromptFreshContext(t *testing.T) {
	prompt := BuildSystemPrompt(ads.SeedBusinessContext(), NewContext())

	assert.True(t, strings.HasPrefix(prompt, "You are an expert Google Ads manager for StylePlus, a Fashion E-commerce business."))
	assert.Contains(t, prompt, "- Target ROAS: 4.2x")
	assert.Contains(t, prompt, "- Average Order Value: $85.50")
	assert.Contains(t, prompt, "- Target CPA: $22.50")
	assert.Contains(t, prompt, "- Previous queries discussed: None")
	assert.Contains(t, prompt, "- Recently mentioned campaigns: None")
	assert.Contains(t, prompt, "- Actions taken this session: None")
	assert.Contains(t, prompt, "Communication: business-focused")
	assert.Contains(t, prompt, "Metrics: ROAS, CPA, Conversion Rate")
	assert.Contains(t, prompt, "AVAILABLE FUNCTIONS & ORCHESTRATION:")
	assert.Contains(t, prompt, "RESPONSE GUIDELINES:")
	assert.Contains(t, prompt, "CRITICAL INSTRUCTIONS:")
	assert.Contains(t, prompt, `Act like "Wolfy Campaign Strategist"`)
}

func TestBuildSystemPromptSerializesContext(t *testing.T) {
	ctx := NewContext()
	ctx = ctx.Update("How is Performance Max trending?", "It holds a 5.2x ROAS.",
		[]gemini.FunctionCall{{Name: "getCampaigns", Args: map[string]any{"status": "ENABLED"}}})

	prompt := BuildSystemPrompt(ads.SeedBusinessContext(), ctx)
	assert.Contains(t, prompt, "User asked about: How is Performance Max trending?")
	assert.Contains(t, prompt, "Recently mentioned campaigns: Performance Max")
	assert.Contains(t, prompt, "Actions taken this session: getCampaigns(status)")
}

func TestBuildSystemPromptTruncatesLongQueries(t *testing.T) {
	long := strings.Repeat("x", 150)
	ctx := NewContext().Update(long, "ok", nil)

	prompt := BuildSystemPrompt(ads.SeedBusinessContext(), ctx)
	assert.Contains(t, prompt, "User asked about: "+strings.Repeat("x", 100))
	assert.NotContains(t, prompt, strings.Repeat("x", 101))
}

func TestTruncatePreservesRuneBoundaries(t *testing.T) {
	// A two-byte rune straddling the cut must fall off whole, never leave
	// a dangling lead byte in the prompt.
	straddling := strings.Repeat("x", 99) + "é" + strings.Repeat("y", 20)
	got := truncate(straddling, 100)
	assert.Equal(t, strings.Repeat("x", 99), got)
	assert.True(t, utf8.ValidString(got))

	multibyte := strings.Repeat("日", 50)
	got = truncate(multibyte, 100)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 100)

	ctx := NewContext().Update(straddling, "ok", nil)
	prompt := BuildSystemPrompt(ads.SeedBusinessContext(), ctx)
	assert.True(t, utf8.ValidString(prompt))

	assert.Equal(t, "short", truncate("short", 100))
}

func TestRecentQueriesOnlyUserTurns(t *testing.T) {
	ctx := NewContext()
	ctx = ctx.Update("first question", "first answer", nil)
	ctx = ctx.Update("second question", "second answer", nil)

	// The 3-entry window over [q1, a1, q2, a2] spans a1 onward, so only
	// the second question survives.
	got := recentQueries(ctx)
	assert.Equal(t, "User asked about: second question", got)
}
