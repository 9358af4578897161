package errors

import (
	"testing"
)

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "original_", false},
		{"custom", "orig-", false},

		{"empty", "", true},
		{"slash", "orig/", true},
		{"backslash", "orig\\", true},
		{"dot", ".", true},
		{"control char", "orig\x01", true},
		{"too long", string(make([]byte, 80)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrefix(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePrefix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAssetPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "assets/icons/sword.png", false},
		{"dotted name", "assets/players/hero.v2.png", false},
		{"backslashes", "assets\\icons\\sword.png", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"drive letter", "C:\\assets\\a.png", true},
		{"traversal", "assets/../../secret.png", true},
		{"null byte", "assets/a\x00.png", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssetPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
