package moderation

import (
	"regexp"
	"sort"
	"strings"
)

// Flag reasons, in priority order. When text matches several categories the
// first category in this order wins, but matched terms from every category are
// still collected.
const (
	FlagProfanity    = "profanity"
	FlagHateSpeech   = "hate_speech"
	FlagHarassment   = "harassment"
	FlagPersonalInfo = "personal_info_sharing"
)

var reasonPriority = []string{FlagProfanity, FlagHateSpeech, FlagHarassment, FlagPersonalInfo}

// Term binds a keyword to the flag category it triggers.
type Term struct {
	Word     string
	Category string
}

// RuleSet is the injected analyzer configuration: the keyword list plus the
// structural patterns for personal information. Loading it at construction
// keeps the lists testable and localizable without code changes.
type RuleSet struct {
	Terms        []Term
	PhonePattern *regexp.Regexp
	EmailPattern *regexp.Regexp
}

// DefaultRuleSet returns the built-in keyword lists and patterns.
func DefaultRuleSet() RuleSet {
	rs := RuleSet{
		PhonePattern: regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
		EmailPattern: regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	}
	add := func(category string, words ...string) {
		for _, w := range words {
			rs.Terms = append(rs.Terms, Term{Word: w, Category: category})
		}
	}
	add(FlagProfanity, "damn", "hell", "crap", "shit", "fuck", "bitch", "ass", "asshole")
	add(FlagHateSpeech, "hate", "kill yourself", "kys", "die", "suicide", "retard", "stupid", "idiot")
	add(FlagHarassment, "stalker", "creep", "ugly", "fat", "loser", "worthless", "pathetic")
	return rs
}

// Analysis is the verdict for a piece of text.
type Analysis struct {
	ShouldFlag   bool     `json:"shouldFlag"`
	Reason       string   `json:"reason,omitempty"`
	MatchedTerms []string `json:"matchedTerms,omitempty"`
}

// Analyzer flags text by substring containment against a configured rule set.
// It is pure and deterministic; identical input always yields identical output.
type Analyzer struct {
	rules RuleSet
}

// NewAnalyzer creates an analyzer with the given rule set.
func NewAnalyzer(rules RuleSet) *Analyzer {
	return &Analyzer{rules: rules}
}

// Analyze checks text against the keyword lists and personal-info patterns.
// Matching is plain substring containment, not word-boundary matching: a term
// embedded inside a longer innocuous word still matches. That is intentional
// and callers depend on it.
func (a *Analyzer) Analyze(text string) Analysis {
	if strings.TrimSpace(text) == "" {
		return Analysis{}
	}

	lower := strings.ToLower(text)
	matched := map[string][]string{}
	for _, term := range a.rules.Terms {
		if strings.Contains(lower, term.Word) {
			matched[term.Category] = append(matched[term.Category], term.Word)
		}
	}

	if a.rules.PhonePattern != nil && a.rules.PhonePattern.MatchString(text) ||
		a.rules.EmailPattern != nil && a.rules.EmailPattern.MatchString(text) {
		matched[FlagPersonalInfo] = append(matched[FlagPersonalInfo], "personal_info")
	}

	if len(matched) == 0 {
		return Analysis{}
	}

	analysis := Analysis{ShouldFlag: true}
	seen := map[string]bool{}
	for _, category := range reasonPriority {
		terms, ok := matched[category]
		if !ok {
			continue
		}
		if analysis.Reason == "" {
			analysis.Reason = category
		}
		for _, t := range terms {
			if !seen[t] {
				seen[t] = true
				analysis.MatchedTerms = append(analysis.MatchedTerms, t)
			}
		}
	}
	sort.Strings(analysis.MatchedTerms)
	return analysis
}
