// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package features

import (
	"reflect"
	"testing"
	"time"
)

func int64Ptr(v int64) *int64       { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestDurBucket(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
		ok      bool
	}{
		{0, "", false},
		{-10, "", false},
		{1, "dur:s", true},
		{300, "dur:s", true},
		{301, "dur:m", true},
		{1800, "dur:m", true},
		{1801, "dur:l", true},
		{7200, "dur:l", true},
	}

	for _, tt := range tests {
		got, ok := DurBucket(tt.seconds)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DurBucket(%d) = (%q, %v), want (%q, %v)", tt.seconds, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFreshBucket(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		published time.Time
		want      string
		ok        bool
	}{
		{"zero time", time.Time{}, "", false},
		{"today", now, "fresh:1y", true},
		{"11 months ago", now.AddDate(0, -11, 0), "fresh:1y", true},
		{"exactly 365 days", now.AddDate(0, 0, -365), "fresh:1y", true},
		{"2 years ago", now.AddDate(-2, 0, 0), "fresh:3y", true},
		{"5 years ago", now.AddDate(-5, 0, 0), "fresh:old", true},
		{"far future", now.AddDate(1, 0, 0), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FreshBucket(tt.published, now)
			if got != tt.want || ok != tt.ok {
				t.Errorf("FreshBucket(%v) = (%q, %v), want (%q, %v)", tt.published, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPopBucket(t *testing.T) {
	tests := []struct {
		views int64
		want  string
		ok    bool
	}{
		{-1, "", false},
		{0, "pop:low", true},
		{9_999, "pop:low", true},
		{10_000, "pop:mid", true},
		{999_999, "pop:mid", true},
		{1_000_000, "pop:high", true},
	}

	for _, tt := range tests {
		got, ok := PopBucket(tt.views)
		if got != tt.want || ok != tt.ok {
			t.Errorf("PopBucket(%d) = (%q, %v), want (%q, %v)", tt.views, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTypeTokens(t *testing.T) {
	tests := []struct {
		name    string
		itmType string
		title   string
		want    []string
	}{
		{"plain video", "video", "Deep learning results", []string{"type:video"}},
		{"tutorial video", "video", "PyTorch Tutorial part 3", []string{"type:video", "type:tutorial"}},
		{"lecture video", "video", "MIT lecture on graphs", []string{"type:video", "type:lecture"}},
		{"conference talk", "video", "A talk on distributed systems", []string{"type:video", "type:talk"}},
		{"plain paper", "paper", "Attention is all you need", []string{"type:paper"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TypeTokens(tt.itmType, tt.title, "")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TypeTokens() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordsDeterministic(t *testing.T) {
	text := "graph neural networks for molecular graph representation learning"

	first := Keywords(text, 8)
	second := Keywords(text, 8)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Keywords not deterministic: %v vs %v", first, second)
	}

	// graph appears twice and must rank first
	if len(first) == 0 || first[0] != "graph" {
		t.Errorf("Keywords()[0] = %v, want graph first", first)
	}
}

func TestKeywordsOrderIndependent(t *testing.T) {
	a := Keywords("alpha beta gamma delta", 8)
	b := Keywords("delta gamma beta alpha", 8)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Keywords order dependent: %v vs %v", a, b)
	}
}

func TestKeywordsFiltersStopwordsAndShortTokens(t *testing.T) {
	got := Keywords("the quick AI is on a GPU", 8)
	for _, kw := range got {
		if kw == "the" || kw == "is" || kw == "on" || kw == "ai" {
			t.Errorf("Keywords contains filtered token %q", kw)
		}
	}
	// "quick" survives, "gpu" survives (3 chars)
	want := []string{"gpu", "quick"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords() = %v, want %v", got, want)
	}
}

func TestKeywordsLimit(t *testing.T) {
	text := "one1 two2 three3 four4 five5 six6 seven7 eight8 nine9 ten10"
	got := Keywords(text, 8)
	if len(got) != 8 {
		t.Errorf("Keywords limit = %d entries, want 8", len(got))
	}
}

func TestExtractOmitsMissingCategories(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	in := Input{
		ItemType: "paper",
		Title:    "Sparse attention transformers",
	}
	feats := Extract(in, now, DefaultOptions())

	for _, f := range feats {
		switch f.Category {
		case CategoryDuration, CategoryFreshness, CategoryPopularity, CategoryEmbedding:
			t.Errorf("Extract produced %s feature %q for missing input", f.Category, f.Token)
		}
	}
}

func TestExtractFullVideo(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	published := now.AddDate(0, -6, 0)

	in := Input{
		ItemType:        "video",
		Title:           "Transformer tutorial",
		DurationSeconds: int64Ptr(900),
		PublishedAt:     timePtr(published),
		Views:           int64Ptr(50_000),
		ClusterTokens:   []string{"c12", "c7", "c99"},
	}
	feats := Extract(in, now, DefaultOptions())

	set := NewSet(feats)
	for _, want := range []string{"dur:m", "fresh:1y", "pop:mid", "type:video", "type:tutorial", "tok:transformer", "tok:tutorial", "emb:c12", "emb:c7"} {
		if !set.Has(want) {
			t.Errorf("Extract missing feature %q, got %v", want, feats)
		}
	}

	// Cluster token limit is 2
	if set.Has("emb:c99") {
		t.Errorf("Extract exceeded cluster token limit: %v", feats)
	}
}

func TestExtractIsPure(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	in := Input{
		ItemType:        "video",
		Title:           "Reinforcement learning lecture",
		DurationSeconds: int64Ptr(3600),
	}

	a := Extract(in, now, DefaultOptions())
	b := Extract(in, now, DefaultOptions())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Extract not deterministic: %v vs %v", a, b)
	}
}

func TestExtractProfile(t *testing.T) {
	feats := ExtractProfile("graph neural networks", "survey recent methods", "", []string{"c3"}, DefaultOptions())
	set := NewSet(feats)

	for _, want := range []string{"tok:graph", "tok:neural", "tok:networks", "emb:c3"} {
		if !set.Has(want) {
			t.Errorf("ExtractProfile missing %q, got %v", want, feats)
		}
	}
}

func TestSetByCategory(t *testing.T) {
	s := SetFromTokens([]string{"dur:s", "tok:graph", "tok:neural", "emb:c1"})
	byCat := s.ByCategory()

	if len(byCat["tok"]) != 2 {
		t.Errorf("ByCategory tok size = %d, want 2", len(byCat["tok"]))
	}
	if len(byCat["dur"]) != 1 || len(byCat["emb"]) != 1 {
		t.Errorf("ByCategory split wrong: %v", byCat)
	}
}

func TestSetUnion(t *testing.T) {
	a := SetFromTokens([]string{"tok:a", "tok:b"})
	b := SetFromTokens([]string{"tok:b", "tok:c"})
	u := a.Union(b)

	if len(u) != 3 {
		t.Errorf("Union size = %d, want 3", len(u))
	}
	if len(a) != 2 || len(b) != 2 {
		t.Errorf("Union mutated operands: %v %v", a, b)
	}
}
