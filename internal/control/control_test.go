package control

import (
	"errors"
	"strings"
	"testing"

	"keyhook/internal/keys"
	"keyhook/internal/shortcut"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		state keys.State
		want  []string
		avoid []string
	}{
		{
			name:  "plain",
			text:  "ctrl shift e",
			state: keys.Up,
			want:  []string{"Ctrl + Shift + E", "0x045", "state:    Up"},
			avoid: []string{"base key", "matches"},
		},
		{
			name:  "extended",
			text:  "Alt+NumEnd",
			state: keys.Down,
			want:  []string{"Alt + NumEnd", "display:  Alt + NumEnd", "base key: End (0x23)", "Down"},
		},
		{
			name:  "generic",
			text:  "Shift",
			state: keys.Up,
			want:  []string{"matches:  left and right Shift", "modifier: None"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Describe(tt.text, tt.state)
			if err != nil {
				t.Fatalf("Describe() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Describe() missing %q:\n%s", w, got)
				}
			}
			for _, a := range tt.avoid {
				if strings.Contains(got, a) {
					t.Errorf("Describe() unexpectedly contains %q:\n%s", a, got)
				}
			}
		})
	}
}

func TestDescribeInvalid(t *testing.T) {
	if _, err := Describe("Ctrl + Nope", keys.Up); !errors.Is(err, shortcut.ErrInvalid) {
		t.Fatalf("Describe() error = %v, want ErrInvalid", err)
	}
}
