package simulator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

const (
	// maxPromptRunes bounds how much of the prompt is echoed back into the
	// reasoning trace and the acknowledgement line.
	maxPromptRunes = 180

	// ClosingOffer is the fixed last sentence of every simulated reply.
	ClosingOffer = "Let me know if you want me to go deeper on any part or take action on it."
)

var planSteps = []string{
	"1. Capture the objective and constraints in a quick summary.",
	"2. Outline the steps to get to a first useful result.",
	"3. Flag any decisions or validations we should confirm before shipping.",
}

// Draft is the scripted reply to one prompt: a fixed-purpose reasoning trace
// plus the response text pre-split into delivery chunks. Content is
// deterministic given the prompt; only delivery timing is randomized.
type Draft struct {
	Reasoning []string
	Chunks    []string
}

// Text reassembles the full response from the chunks.
func (d Draft) Text() string {
	return strings.TrimSpace(strings.Join(d.Chunks, ""))
}

func BuildDraft(prompt string) Draft {
	normalized := strings.TrimSpace(prompt)
	shortened := truncatePrompt(normalized)

	reasoning := []string{
		`Confirm intent by restating the request: "` + shortened + `"`,
		"Gather the relevant context, resources, and edge cases to cover",
		"Plan the response so it's concise, actionable, and easy to iterate on",
	}

	acknowledgement := "Here’s what I can help with right now:"
	if normalized != "" {
		acknowledgement = "Here’s how we can handle “" + shortened + "” right now:"
	}

	parts := append([]string{acknowledgement}, planSteps...)
	parts = append(parts, ClosingOffer)
	response := strings.Join(parts, "\n\n")

	var segments []string
	for _, paragraph := range strings.Split(response, "\n\n") {
		segments = append(segments, splitSentences(paragraph)...)
	}

	// every chunk after the first carries the separating space so plain
	// concatenation reconstructs natural spacing
	chunks := make([]string, 0, len(segments))
	for idx, segment := range segments {
		if idx == 0 {
			chunks = append(chunks, segment)
		} else {
			chunks = append(chunks, " "+segment)
		}
	}

	return Draft{
		Reasoning: reasoning,
		Chunks:    chunks,
	}
}

func truncatePrompt(s string) string {
	runes := []rune(s)
	if len(runes) <= maxPromptRunes {
		return s
	}
	return string(runes[:maxPromptRunes-3]) + "…"
}

// splitSentences splits a paragraph after sentence-ending punctuation that is
// followed by whitespace, dropping the whitespace itself.
func splitSentences(paragraph string) []string {
	var ret []string
	runes := []rune(paragraph)

	start := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		if isSentenceEnd(r) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			ret = append(ret, string(runes[start:i+1]))
			i++
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			start = i
			continue
		}
		i++
	}

	if start < len(runes) {
		ret = append(ret, string(runes[start:]))
	}

	return ret
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Schedule computes the absolute delivery offset of each chunk:
// baseDelay*(i+1) plus an independent uniform jitter draw from
// [0, jitterWindow). Offsets are strictly increasing as long as baseDelay is
// larger than jitterWindow.
func Schedule(n int, baseDelay time.Duration, jitterWindow time.Duration) []time.Duration {
	ret := make([]time.Duration, n)
	for i := range ret {
		jitter := time.Duration(0)
		if jitterWindow > 0 {
			jitter = time.Duration(rand.Int63n(int64(jitterWindow)))
		}
		ret[i] = baseDelay*time.Duration(i+1) + jitter
	}
	return ret
}
