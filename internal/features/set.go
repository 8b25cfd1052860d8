// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package features

import "strings"

// Set is a set of feature tokens. Tokens carry their category as a prefix
// ("dur:s", "tok:transformers", "emb:c42"), so a flat set can still be split
// by category for weighted comparison.
type Set map[string]struct{}

// NewSet builds a Set from feature pairs.
func NewSet(feats []Feature) Set {
	s := make(Set, len(feats))
	for _, f := range feats {
		s[f.Token] = struct{}{}
	}
	return s
}

// SetFromTokens builds a Set from raw token strings.
func SetFromTokens(tokens []string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts a token.
func (s Set) Add(token string) {
	s[token] = struct{}{}
}

// Has reports membership.
func (s Set) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Union returns a new Set containing tokens from both sets.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Clone returns a copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// ByCategory splits the set into per-category subsets keyed by the token's
// category prefix. Tokens without a prefix fall under the empty category.
func (s Set) ByCategory() map[string]Set {
	out := make(map[string]Set)
	for t := range s {
		cat := ""
		if i := strings.IndexByte(t, ':'); i > 0 {
			cat = t[:i]
		}
		sub, ok := out[cat]
		if !ok {
			sub = make(Set)
			out[cat] = sub
		}
		sub[t] = struct{}{}
	}
	return out
}
