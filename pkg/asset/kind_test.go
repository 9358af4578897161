package asset

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		in     string
		want   Kind
		wantOK bool
	}{
		{"icon", Icon, true},
		{"ICON", Icon, true},
		{"sheet", Sheet, true},
		{"spritesheet", Sheet, true},
		{" image ", Image, true},
		{"tileset", Image, false},
		{"", Image, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseKind(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKindText(t *testing.T) {
	for _, k := range Kinds {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", k, err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if back != k {
			t.Errorf("text round trip: got %v, want %v", back, k)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("banner")); err == nil {
		t.Error("UnmarshalText(banner) error = nil, want error")
	}
}
