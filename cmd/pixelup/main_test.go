package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/pixelup/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"registry missing", errors.New(errors.ErrCodeRegistryNotFound, "registry not found: runtime/registry.json"), 2},
		{"wrapped registry missing", fmt.Errorf("run: %w", errors.New(errors.ErrCodeRegistryNotFound, "x")), 2},
		{"invalid flag", errors.New(errors.ErrCodeInvalidInput, "workers must be between 1 and 64 (got 0)"), 1},
		{"plain error", fmt.Errorf("boom"), 1},
		{"interrupted", context.Canceled, 130},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
