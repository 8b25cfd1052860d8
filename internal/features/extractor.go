// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

// Package features extracts categorical feature tokens from research
// resources and project profiles.
//
// Each feature belongs to one of six categories:
//
//	dur    duration bucket (dur:s, dur:m, dur:l)
//	fresh  recency bucket (fresh:1y, fresh:3y, fresh:old)
//	pop    popularity bucket (pop:high, pop:mid, pop:low)
//	type   resource type (type:video, type:paper) plus an optional subtype
//	tok    salient title/summary keywords
//	emb    embedding cluster tags supplied by the embedding provider
//
// Extraction is a pure function: the reference time is an explicit
// parameter, and a missing input omits its category rather than
// producing a placeholder bucket.
package features

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Feature categories.
const (
	CategoryDuration   = "dur"
	CategoryFreshness  = "fresh"
	CategoryPopularity = "pop"
	CategoryType       = "type"
	CategoryToken      = "tok"
	CategoryEmbedding  = "emb"
)

// Duration bucket boundaries.
const (
	durationShortMax  = 5 * 60  // seconds
	durationMediumMax = 30 * 60 // seconds
)

// Freshness bucket boundaries in days.
const (
	freshRecentMaxDays = 365
	freshMidMaxDays    = 3 * 365
)

// Popularity bucket boundaries in view counts.
const (
	popHighMin = 1_000_000
	popMidMin  = 10_000
)

// minTokenLength filters out short tokens during keyword extraction.
const minTokenLength = 3

// Feature is one (category, token) pair.
type Feature struct {
	Category string
	Token    string
}

// Input holds the raw attributes of a resource candidate. Optional numeric
// fields use pointers so that absent values omit their category.
type Input struct {
	ItemType        string
	Title           string
	Summary         string
	DurationSeconds *int64
	PublishedAt     *time.Time
	Views           *int64
	ClusterTokens   []string
}

// Options controls keyword and cluster token limits.
type Options struct {
	// KeywordLimit is the maximum number of tok features kept.
	KeywordLimit int

	// ClusterTokenLimit is the maximum number of emb features kept.
	ClusterTokenLimit int
}

// DefaultOptions returns the standard extraction limits.
func DefaultOptions() Options {
	return Options{
		KeywordLimit:      8,
		ClusterTokenLimit: 2,
	}
}

// DurBucket maps a duration in seconds to its bucket token.
// Returns false for non-positive durations.
func DurBucket(seconds int64) (string, bool) {
	if seconds <= 0 {
		return "", false
	}
	switch {
	case seconds <= durationShortMax:
		return "dur:s", true
	case seconds <= durationMediumMax:
		return "dur:m", true
	default:
		return "dur:l", true
	}
}

// FreshBucket maps a publication time to its recency bucket relative to now.
// Returns false when publishedAt is the zero time or in the future by more
// than a day.
func FreshBucket(publishedAt, now time.Time) (string, bool) {
	if publishedAt.IsZero() {
		return "", false
	}
	days := int(now.Sub(publishedAt).Hours() / 24)
	if days < -1 {
		return "", false
	}
	switch {
	case days <= freshRecentMaxDays:
		return "fresh:1y", true
	case days <= freshMidMaxDays:
		return "fresh:3y", true
	default:
		return "fresh:old", true
	}
}

// PopBucket maps a view count to its popularity bucket.
// Returns false for negative counts.
func PopBucket(views int64) (string, bool) {
	if views < 0 {
		return "", false
	}
	switch {
	case views >= popHighMin:
		return "pop:high", true
	case views >= popMidMin:
		return "pop:mid", true
	default:
		return "pop:low", true
	}
}

// subtypeMarkers maps title/summary markers to type subtypes.
var subtypeMarkers = []struct {
	marker  string
	subtype string
}{
	{"tutorial", "tutorial"},
	{"how to", "tutorial"},
	{"lecture", "lecture"},
	{"course", "lecture"},
	{"talk", "talk"},
	{"keynote", "talk"},
}

// TypeTokens returns the type feature tokens for a resource: the base type
// (type:video or type:paper) plus at most one subtype derived from the text.
func TypeTokens(itemType, title, summary string) []string {
	tokens := []string{"type:" + itemType}

	text := strings.ToLower(title + " " + summary)
	for _, m := range subtypeMarkers {
		if strings.Contains(text, m.marker) {
			tokens = append(tokens, "type:"+m.subtype)
			break
		}
	}
	return tokens
}

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

// stopwords excluded from keyword extraction.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"then": {}, "else": {}, "for": {}, "to": {}, "of": {}, "in": {}, "on": {},
	"by": {}, "with": {}, "from": {}, "into": {}, "at": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "being": {}, "as": {}, "it": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "we": {}, "you": {},
	"they": {}, "he": {}, "she": {}, "i": {}, "me": {}, "my": {}, "our": {},
	"your": {}, "their": {}, "them": {}, "about": {}, "over": {}, "under": {},
	"between": {}, "within": {}, "without": {}, "than": {}, "so": {}, "do": {},
	"does": {}, "did": {}, "done": {}, "can": {}, "could": {}, "should": {},
	"would": {}, "may": {}, "might": {}, "will": {}, "just": {}, "not": {},
	"no": {}, "yes": {},
}

// tokenize lowercases text, splits on alphanumeric runs, and drops short
// tokens and stopwords.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}
	raw := wordRe.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) < minTokenLength {
			continue
		}
		if _, stop := stopwords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// Keywords returns the most salient tokens from the text: frequency-ranked
// descending with lexicographic tie-break, truncated to limit. The result is
// deterministic and independent of input word order.
func Keywords(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, t := range tokenize(text) {
		counts[t]++
	}
	if len(counts) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(counts))
	for t := range counts {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})

	if len(tokens) > limit {
		tokens = tokens[:limit]
	}
	return tokens
}

// Extract computes the feature list for a resource candidate.
// now anchors the freshness buckets.
func Extract(in Input, now time.Time, opts Options) []Feature {
	var out []Feature

	if in.DurationSeconds != nil {
		if bucket, ok := DurBucket(*in.DurationSeconds); ok {
			out = append(out, Feature{CategoryDuration, bucket})
		}
	}

	if in.PublishedAt != nil {
		if bucket, ok := FreshBucket(*in.PublishedAt, now); ok {
			out = append(out, Feature{CategoryFreshness, bucket})
		}
	}

	if in.Views != nil {
		if bucket, ok := PopBucket(*in.Views); ok {
			out = append(out, Feature{CategoryPopularity, bucket})
		}
	}

	if in.ItemType != "" {
		for _, tok := range TypeTokens(in.ItemType, in.Title, in.Summary) {
			out = append(out, Feature{CategoryType, tok})
		}
	}

	for _, kw := range Keywords(in.Title+" "+in.Summary, opts.KeywordLimit) {
		out = append(out, Feature{CategoryToken, "tok:" + kw})
	}

	limit := opts.ClusterTokenLimit
	for i, cluster := range in.ClusterTokens {
		if i >= limit {
			break
		}
		out = append(out, Feature{CategoryEmbedding, "emb:" + cluster})
	}

	return out
}

// ExtractProfile computes the base feature set for a project profile from
// its free-text fields and optional cluster tokens.
func ExtractProfile(topic, objective, guidelines string, clusterTokens []string, opts Options) []Feature {
	var out []Feature

	text := strings.TrimSpace(topic + " " + objective + " " + guidelines)
	for _, kw := range Keywords(text, opts.KeywordLimit) {
		out = append(out, Feature{CategoryToken, "tok:" + kw})
	}

	limit := opts.ClusterTokenLimit
	for i, cluster := range clusterTokens {
		if i >= limit {
			break
		}
		out = append(out, Feature{CategoryEmbedding, "emb:" + cluster})
	}

	return out
}
