// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package validation

import (
	"strings"
	"testing"
)

type categoryPayload struct {
	Category string `json:"category" validate:"required,poi_category"`
}

type selectPayload struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("expected the same validator instance")
	}
}

func TestValidateStruct_POICategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category string
		wantErr  bool
	}{
		{"all", "All", false},
		{"lodging", "lodging", false},
		{"gas station", "gas_station", false},
		{"unknown", "museum", true},
		{"empty", "", true},
		{"label form", "All Types", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&categoryPayload{Category: tt.category})
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct(%q) error = %v, wantErr %v", tt.category, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStruct_UsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&categoryPayload{Category: "museum"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Errors()[0].Field; got != "category" {
		t.Errorf("Field = %q, want category", got)
	}
	if !strings.Contains(err.Error(), "known POI category") {
		t.Errorf("Error() = %q", err.Error())
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_FAILED" {
		t.Errorf("Code = %q, want VALIDATION_FAILED", apiErr.Code)
	}
}

func TestValidateStruct_Index(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(&selectPayload{}); err == nil {
		t.Error("expected missing index to fail")
	}

	neg := -1
	err := ValidateStruct(&selectPayload{Index: &neg})
	if err == nil {
		t.Fatal("expected negative index to fail")
	}
	if !strings.Contains(err.Error(), "greater than or equal to 0") {
		t.Errorf("Error() = %q", err.Error())
	}

	zero := 0
	if err := ValidateStruct(&selectPayload{Index: &zero}); err != nil {
		t.Errorf("expected index 0 to pass, got %v", err)
	}
}
