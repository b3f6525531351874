package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
		errMsg  string
	}{
		{name: "region code", id: "EURO"},
		{name: "metric slug", id: "cumulative-cases"},
		{name: "field name", id: "New_cases"},
		{name: "empty ID", id: "", wantErr: true, errMsg: "id cannot be empty"},
		{name: "ID too long", id: strings.Repeat("a", 65), wantErr: true, errMsg: "id too long (max 64 characters)"},
		{name: "ID with invalid characters", id: "EURO<script>", wantErr: true, errMsg: "id contains invalid characters"},
		{name: "ID with injection attempt", id: "EURO'; --", wantErr: true, errMsg: "id contains invalid characters"},
		{name: "ID with path traversal", id: "../../../etc/passwd", wantErr: true, errMsg: "id contains invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDimension(t *testing.T) {
	assert.NoError(t, ValidateDimension(800, 100, 2000))
	assert.NoError(t, ValidateDimension(100, 100, 2000))
	assert.Error(t, ValidateDimension(99, 100, 2000))
	assert.EqualError(t, ValidateDimension(5000, 100, 2000), "must be between 100 and 2000")
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Europe", SanitizeInput("  <b>Europe</b> "))
	assert.Equal(t, "alert(1)", SanitizeInput("<script>alert(1)</script>"))
}
