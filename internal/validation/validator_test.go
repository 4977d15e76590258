// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package validation

import (
	"strings"
	"testing"
)

type queryStruct struct {
	Title string `query:"title" validate:"required,notblank,max=20,title"`
	Count int    `query:"count" validate:"min=0,max=20"`
	IDs   []int  `query:"ids" validate:"max=3,dive,gt=0"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if v1, v2 := GetValidator(), GetValidator(); v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     queryStruct
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"valid", queryStruct{Title: "Avatar", Count: 5, IDs: []int{1, 2}}, "", "", ""},
		{"missing title", queryStruct{}, "title", "required", "title is required"},
		{"blank title", queryStruct{Title: "   "}, "title", "notblank", "title must not be blank"},
		{"control character", queryStruct{Title: "Ava\x00tar"}, "title", "title", "title must not contain control characters"},
		{"long title", queryStruct{Title: strings.Repeat("x", 21)}, "title", "max", "title must be at most 20 characters"},
		{"count too high", queryStruct{Title: "A", Count: 21}, "count", "max", "count must be at most 20"},
		{"negative count", queryStruct{Title: "A", Count: -1}, "count", "min", "count must be at least 0"},
		{"too many ids", queryStruct{Title: "A", IDs: []int{1, 2, 3, 4}}, "ids", "max", "ids must be at most 3 items"},
		{"non-positive id", queryStruct{Title: "A", IDs: []int{0}}, "ids[0]", "gt", "ids[0] must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			fe := err.Errors()[0]
			if fe.Field() != tt.wantField || fe.Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", fe.Field(), fe.Tag(), tt.wantField, tt.wantTag)
			}
			if fe.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", fe.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		apiErr := ValidateStruct(&queryStruct{Title: "A", Count: 99}).ToAPIError()
		if apiErr.Code != CodeValidation {
			t.Errorf("Code = %q", apiErr.Code)
		}
		if apiErr.Details["field"] != "count" {
			t.Errorf("Details = %v", apiErr.Details)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		err := ValidateStruct(&queryStruct{Count: 99})
		apiErr := err.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details = %v, want two fields", apiErr.Details)
		}
		if !strings.Contains(apiErr.Message, "title:") || !strings.Contains(apiErr.Message, "count:") {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if err.Error() == "" {
			t.Error("Error() is empty")
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Code != CodeValidation || apiErr.Message != "Validation failed" {
			t.Errorf("got %+v", apiErr)
		}
	})
}
