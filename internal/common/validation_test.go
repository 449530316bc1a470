package common

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	tests := []struct {
		name        string
		format      string
		formats     []string
		expectError bool
	}{
		{name: "valid json", format: "json", formats: supported},
		{name: "valid text", format: "text", formats: supported},
		{name: "valid markdown", format: "markdown", formats: supported},
		{name: "unsupported xml", format: "xml", formats: supported, expectError: true},
		{name: "case sensitive", format: "JSON", formats: supported, expectError: true},
		{name: "empty format", format: "", formats: supported, expectError: true},
		{name: "no restrictions allows anything", format: "xml", formats: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.formats)

			if tt.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}
