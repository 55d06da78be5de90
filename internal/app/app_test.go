package app

import (
	"testing"

	"go.uber.org/fx"
)

func TestGraphsResolve(t *testing.T) {
	tests := []struct {
		name string
		opts fx.Option
	}{
		{"http", HTTP},
		{"worker", Worker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := fx.ValidateApp(tt.opts, fx.NopLogger); err != nil {
				t.Fatal(err)
			}
		})
	}
}
