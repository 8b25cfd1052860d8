// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package validation

import (
	"strings"
	"testing"
)

type ingestRequest struct {
	ItemType string `validate:"required,oneof=video paper"`
	Title    string `validate:"required,min=1,max=500"`
	URL      string `validate:"omitempty,url"`
}

func TestValidateStructPasses(t *testing.T) {
	req := ingestRequest{
		ItemType: "video",
		Title:    "Graph neural networks explained",
		URL:      "https://example.com/watch?v=1",
	}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct failed: %v", err)
	}
}

func TestValidateStructRequired(t *testing.T) {
	req := ingestRequest{ItemType: "video"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatalf("ValidateStruct should fail on missing Title")
	}
	if !strings.Contains(err.Error(), "Title is required") {
		t.Errorf("error = %q, want Title is required", err.Error())
	}
}

func TestValidateStructOneOf(t *testing.T) {
	req := ingestRequest{ItemType: "podcast", Title: "x"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatalf("ValidateStruct should fail on bad ItemType")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("error = %q, want oneof message", err.Error())
	}
}

func TestToAPIErrorSingleField(t *testing.T) {
	req := ingestRequest{ItemType: "video"}
	apiErr := ValidateStruct(&req).ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "Title" {
		t.Errorf("Details.field = %v, want Title", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	req := ingestRequest{URL: "not a url"}
	apiErr := ValidateStruct(&req).ToAPIError()

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details.fields missing for multi-error case: %v", apiErr.Details)
	}
	if len(fields) < 2 {
		t.Errorf("fields = %d, want >= 2", len(fields))
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Errorf("GetValidator should return the same instance")
	}
}
