package target

import (
	"errors"
	"path/filepath"
	"testing"

	perrors "github.com/matzehuels/pixelup/pkg/errors"
)

func TestParseRegistryList(t *testing.T) {
	reg, err := ParseRegistry([]byte(`{
		"version": 3,
		"assets": [
			{"id": "hero", "path": "assets/players/hero.png", "type": "spritesheet", "tags": ["player"]},
			{"id": "sword", "path": "assets/icons/sword.png", "type": "icon", "tags": ["item", "Player"]}
		]
	}`))
	if err != nil {
		t.Fatalf("ParseRegistry() error: %v", err)
	}
	if len(reg.Assets) != 2 {
		t.Fatalf("len(Assets) = %d, want 2", len(reg.Assets))
	}

	tagged := reg.Tagged("player")
	if len(tagged) != 1 || tagged[0].ID != "hero" {
		t.Errorf("Tagged(player) = %+v, want only hero (tags are case-sensitive)", tagged)
	}
}

func TestParseRegistryMap(t *testing.T) {
	reg, err := ParseRegistry([]byte(`{
		"assets": {
			"slime": {"path": "assets/enemies/slime.png", "type": "spritesheet", "tags": ["enemy"]},
			"bat":   {"path": "assets/enemies/bat.png", "tags": ["enemy"]}
		}
	}`))
	if err != nil {
		t.Fatalf("ParseRegistry() error: %v", err)
	}

	tagged := reg.Tagged("enemy")
	if len(tagged) != 2 {
		t.Fatalf("len(Tagged) = %d, want 2", len(tagged))
	}
	if tagged[0].ID != "bat" || tagged[1].ID != "slime" {
		t.Errorf("order = %s, %s; want bat, slime", tagged[0].ID, tagged[1].ID)
	}
}

func TestParseRegistryEmptyAndInvalid(t *testing.T) {
	reg, err := ParseRegistry([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseRegistry({}) error: %v", err)
	}
	if len(reg.Assets) != 0 {
		t.Errorf("len(Assets) = %d, want 0", len(reg.Assets))
	}

	for _, data := range []string{`not json`, `{"assets": 12}`, `{"assets": [{"tags": "x"}]}`} {
		_, err := ParseRegistry([]byte(data))
		if !perrors.Is(err, perrors.ErrCodeInvalidRegistry) {
			t.Errorf("ParseRegistry(%s) code = %v, want %v", data, perrors.GetCode(err), perrors.ErrCodeInvalidRegistry)
		}
	}
}

func TestLoadRegistryNotFound(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "registry.json"))
	if !errors.Is(err, ErrRegistryNotFound) {
		t.Errorf("LoadRegistry(missing) error = %v, want ErrRegistryNotFound", err)
	}
}
