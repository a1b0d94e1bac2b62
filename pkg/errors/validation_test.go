package errors

import (
	"testing"
)

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"short hex", "#abc", false},
		{"long hex", "#4f46e5", false},
		{"upper hex", "#4F46E5", false},
		{"keyword", "steelblue", false},

		{"empty", "", true},
		{"no hash", "4f46e5", true},
		{"bad length", "#abcd", true},
		{"quote injection", `red" onload="x`, true},
		{"function", "rgb(1,2,3)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateColor(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateChartID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "chart", false},
		{"uuid style", "c-1b4e28ba-2fa1-11d2-883f-0016d3cca427", false},

		{"empty", "", true},
		{"leading digit", "1chart", true},
		{"space", "my chart", true},
		{"too long", "c" + string(make([]byte, 70)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChartID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChartID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
