// Package summary provides article summarizers behind a single interface:
// a deterministic extractive summarizer used by the ingestion pipeline by
// default, plus optional AI backends (OpenAI-compatible, Ollama).
package summary

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	nonWord       = regexp.MustCompile(`[^\w]`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// stopWords are common English function words excluded from frequency
// scoring.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "must": true, "shall": true,
	"can": true, "this": true, "that": true, "these": true, "those": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "me": true, "him": true, "her": true, "us": true, "them": true,
}

// ExtractiveSummarizer selects the highest-scoring sentences of a text and
// re-joins them in original order. It is pure and deterministic.
type ExtractiveSummarizer struct {
	maxSentences int
}

func NewExtractiveSummarizer(maxSentences int) *ExtractiveSummarizer {
	if maxSentences < 1 {
		maxSentences = 2
	}
	return &ExtractiveSummarizer{maxSentences: maxSentences}
}

func (e *ExtractiveSummarizer) Summarize(_ context.Context, text string) (string, error) {
	return Extract(text, e.maxSentences), nil
}

// Extract returns up to maxSentences sentences of text, chosen by average
// word-frequency score, re-ordered by original position and joined with
// ". " plus a trailing period. Texts with at most maxSentences qualifying
// sentences are returned unchanged.
func Extract(text string, maxSentences int) string {
	sentences := splitSentences(text)
	if len(sentences) <= maxSentences {
		return text
	}

	freqs := wordFrequencies(text)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		ranked[i] = scored{index: i, score: sentenceScore(s, freqs)}
	}

	// Stable sort keeps equal-score sentences in original order.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})
	top := ranked[:maxSentences]
	sort.Slice(top, func(a, b int) bool {
		return top[a].index < top[b].index
	})

	picked := make([]string, len(top))
	for i, s := range top {
		picked[i] = sentences[s.index]
	}
	return strings.Join(picked, ". ") + "."
}

// splitSentences breaks text on sentence-ending punctuation and discards
// fragments of 10 characters or fewer.
func splitSentences(text string) []string {
	var out []string
	for _, part := range sentenceSplit.Split(text, -1) {
		s := strings.TrimSpace(part)
		if len(s) > 10 {
			out = append(out, s)
		}
	}
	return out
}

func wordFrequencies(text string) map[string]int {
	freqs := make(map[string]int)
	for _, word := range whitespace.Split(strings.ToLower(text), -1) {
		clean := nonWord.ReplaceAllString(word, "")
		if len(clean) > 3 && !stopWords[clean] {
			freqs[clean]++
		}
	}
	return freqs
}

// sentenceScore averages the frequency weight of a sentence's qualifying
// words; sentences without qualifying words score zero.
func sentenceScore(sentence string, freqs map[string]int) float64 {
	var score float64
	var count int
	for _, word := range whitespace.Split(strings.ToLower(sentence), -1) {
		clean := nonWord.ReplaceAllString(word, "")
		if len(clean) > 3 {
			if f, ok := freqs[clean]; ok {
				score += float64(f)
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return score / float64(count)
}
