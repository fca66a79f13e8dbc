// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readverse/internal/platform/apperr"
	"github.com/taibuivan/readverse/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field rule.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Solo Leveling", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, "title", ae.Details[0].Field)
			assert.Equal(t, "title: This field is required", ae.Message)
		})
	}
}

/*
TestValidator_URL checks absolute http(s) URL detection.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		value   string
		isValid bool
	}{
		{"https://cdn.readverse.app/Content/A/thumbnail", true},
		{"http://localhost:9000/bucket/key", true},
		{"ftp://example.com/file", false},
		{"/relative/path", false},
		{"data:image/png;base64,AAAA", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("thumbnail", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

func TestValidator_URL_CustomSchemes(t *testing.T) {
	v := &validate.Validator{}
	v.URL("poster", "memory://blob/Content/A/poster", "http", "https", "memory")
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.URL("poster", "https://cdn.readverse.app/x", "memory")
	assert.True(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").
		OneOf("status", "Paused", "Ongoing", "Completed").
		RangeFloat("rating", 11, 0, 10).
		NonNegative("noOfViews", -1).
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
}

func TestValidator_Chain_Success(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "Omniscient Reader").
		MinLen("title", "Omniscient Reader", 1).
		MaxLen("title", "Omniscient Reader", 200).
		OneOf("status", "Ongoing", "Ongoing", "Completed").
		Custom("genres", false, "unused").
		Err()

	assert.NoError(t, err)
}
