package chat

import "strings"

// Rule ties a set of trigger substrings to a canned response. A rule matches
// when any keyword occurs in the normalized utterance.
type Rule struct {
	Name      string   `json:"name"`
	Keywords  []string `json:"keywords"`
	Response  string   `json:"response"`
	ArticleID string   `json:"article_id,omitempty"`
}

// Matches reports whether the already-normalized utterance triggers r.
func (r Rule) Matches(normalized string) bool {
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// Match is the outcome of a selection.
type Match struct {
	Rule      string `json:"rule"`
	Response  string `json:"response"`
	ArticleID string `json:"article_id,omitempty"`
	Fallback  bool   `json:"fallback"`
}

// FallbackRule names the match returned when no rule fires.
const FallbackRule = "fallback"

// Selector evaluates an ordered rule table, first match wins.
type Selector struct {
	rules    []Rule
	fallback string
}

// NewSelector builds a selector. Keywords are lowercased so the table can be
// written in display case.
func NewSelector(rules []Rule, fallback string) *Selector {
	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		r.Keywords = kws
		normalized[i] = r
	}
	return &Selector{rules: normalized, fallback: fallback}
}

// DefaultSelector returns the selector over the built-in rule table.
func DefaultSelector() *Selector {
	return NewSelector(DefaultRules(), DefaultFallback)
}

// Normalize lowercases an utterance for matching.
func Normalize(utterance string) string {
	return strings.ToLower(utterance)
}

// Select picks the response for an utterance.
func (s *Selector) Select(utterance string) Match {
	n := Normalize(utterance)
	for _, r := range s.rules {
		if r.Matches(n) {
			return Match{Rule: r.Name, Response: r.Response, ArticleID: r.ArticleID}
		}
	}
	return Match{Rule: FallbackRule, Response: s.fallback, Fallback: true}
}

// Rules returns a copy of the rule table in evaluation order.
func (s *Selector) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		r.Keywords = append([]string(nil), r.Keywords...)
		out[i] = r
	}
	return out
}
