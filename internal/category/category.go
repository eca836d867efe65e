// Package category classifies free text into the fixed Category enum using
// provider-supplied taxonomy hints first and keyword matching second.
package category

import (
	"regexp"
	"strings"

	"github.com/apetrovs/newshub/internal/model"
)

// hintSets are substring sets matched against provider taxonomy labels,
// scanned in priority order. First match wins.
var hintSets = []struct {
	category model.Category
	words    []string
}{
	{model.CategoryBusiness, []string{"business", "finance", "economy"}},
	{model.CategoryTechnology, []string{"technology", "tech", "ai"}},
	{model.CategoryPolitics, []string{"politics", "government", "election"}},
	{model.CategorySports, []string{"sports"}},
	{model.CategoryHealth, []string{"health", "medical"}},
	{model.CategoryEntertainment, []string{"entertainment", "celebrity"}},
}

// keywordGroups are tried in the same priority order over the concatenated
// lower-cased title, body and hints when no hint matched.
var keywordGroups = []struct {
	category model.Category
	re       *regexp.Regexp
}{
	{model.CategoryBusiness, regexp.MustCompile(`\b(business|finance|economy|market|stock|investment|bank|corporate|revenue|profit|trade|commerce)\b`)},
	{model.CategoryTechnology, regexp.MustCompile(`\b(technology|tech|software|ai|artificial intelligence|computer|digital|internet|app|startup|innovation)\b`)},
	{model.CategoryPolitics, regexp.MustCompile(`\b(politics|government|election|congress|senate|president|policy|law|legislation|vote|campaign)\b`)},
	{model.CategorySports, regexp.MustCompile(`\b(sports|football|basketball|baseball|soccer|tennis|golf|olympics|athlete|team|game|match)\b`)},
	{model.CategoryHealth, regexp.MustCompile(`\b(health|medical|medicine|doctor|hospital|disease|treatment|vaccine|wellness|fitness)\b`)},
	{model.CategoryEntertainment, regexp.MustCompile(`\b(entertainment|movie|film|music|celebrity|actor|actress|show|television|tv|hollywood)\b`)},
}

// Categorize returns the category for an article. Hints are scanned in input
// order and each hint is tested against the priority-ordered substring sets;
// the first hit is returned immediately. Otherwise the keyword groups are
// tried against the whole text. Falls back to business.
func Categorize(title, body string, hints []string) model.Category {
	for _, hint := range hints {
		h := strings.ToLower(hint)
		for _, set := range hintSets {
			for _, w := range set.words {
				if strings.Contains(h, w) {
					return set.category
				}
			}
		}
	}

	parts := append([]string{title, body}, hints...)
	text := strings.ToLower(strings.Join(parts, " "))

	for _, group := range keywordGroups {
		if group.re.MatchString(text) {
			return group.category
		}
	}

	return model.CategoryBusiness
}
