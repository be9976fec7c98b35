package simulator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDraftForNonEmptyPrompt(t *testing.T) {
	draft := BuildDraft("Plan my week")

	require.Len(t, draft.Reasoning, 3)
	assert.Contains(t, draft.Reasoning[0], `"Plan my week"`)

	require.NotEmpty(t, draft.Chunks)
	assert.Equal(t, "Here’s how we can handle “Plan my week” right now:", draft.Chunks[0])

	for _, chunk := range draft.Chunks[1:] {
		assert.True(t, strings.HasPrefix(chunk, " "), "chunk %q should carry a leading space", chunk)
	}

	text := draft.Text()
	assert.True(t, strings.HasSuffix(text, ClosingOffer))
	assert.Contains(t, text, "1. Capture the objective and constraints in a quick summary.")
}

func TestBuildDraftSplitsNumberedStepsIntoSentences(t *testing.T) {
	draft := BuildDraft("Plan my week")

	// acknowledgement + 3 numbered steps (each split after the "N." marker) +
	// closing offer
	require.Len(t, draft.Chunks, 8)
	assert.Equal(t, " 1.", draft.Chunks[1])
	assert.Equal(t, " 2.", draft.Chunks[3])
	assert.Equal(t, " 3.", draft.Chunks[5])
	assert.Equal(t, " "+ClosingOffer, draft.Chunks[7])
}

func TestBuildDraftForEmptyPromptUsesGenericAcknowledgement(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t"} {
		draft := BuildDraft(prompt)
		require.NotEmpty(t, draft.Chunks)
		assert.Equal(t, "Here’s what I can help with right now:", draft.Chunks[0])
		assert.True(t, strings.HasSuffix(draft.Text(), ClosingOffer))
	}
}

func TestBuildDraftTruncatesLongPrompts(t *testing.T) {
	prompt := strings.Repeat("a", 200)
	draft := BuildDraft(prompt)

	shortened := strings.Repeat("a", 177) + "…"
	assert.Contains(t, draft.Reasoning[0], shortened)
	assert.NotContains(t, draft.Reasoning[0], strings.Repeat("a", 178))
	assert.Contains(t, draft.Chunks[0], shortened)
}

func TestBuildDraftKeepsShortPromptsIntact(t *testing.T) {
	prompt := strings.Repeat("b", 180)
	draft := BuildDraft(prompt)

	assert.Contains(t, draft.Reasoning[0], prompt)
	assert.NotContains(t, draft.Reasoning[0], "…")
}

func TestSplitSentences(t *testing.T) {
	assert.Equal(t,
		[]string{"1.", "Capture the objective."},
		splitSentences("1. Capture the objective."))
	assert.Equal(t,
		[]string{"One sentence without terminator"},
		splitSentences("One sentence without terminator"))
	assert.Equal(t,
		[]string{"Really?!", "Yes.", "Good."},
		splitSentences("Really?! Yes. Good."))
	assert.Empty(t, splitSentences(""))
}

func TestScheduleIsStrictlyIncreasing(t *testing.T) {
	// the monotonic schedule only holds because the base delay dominates the
	// jitter window
	require.Greater(t, DefaultBaseDelay, DefaultJitterWindow)

	for run := 0; run < 20; run++ {
		offsets := Schedule(10, DefaultBaseDelay, DefaultJitterWindow)
		require.Len(t, offsets, 10)
		for i := 1; i < len(offsets); i++ {
			assert.Greater(t, offsets[i], offsets[i-1])
		}
	}
}

func TestScheduleBounds(t *testing.T) {
	offsets := Schedule(5, DefaultBaseDelay, DefaultJitterWindow)
	for i, offset := range offsets {
		lower := DefaultBaseDelay * time.Duration(i+1)
		assert.GreaterOrEqual(t, offset, lower)
		assert.Less(t, offset, lower+DefaultJitterWindow)
	}
}

func TestScheduleWithoutJitter(t *testing.T) {
	offsets := Schedule(3, 10*time.Millisecond, 0)
	assert.Equal(t, []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		30 * time.Millisecond,
	}, offsets)
}
