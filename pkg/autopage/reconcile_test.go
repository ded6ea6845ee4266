package autopage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	known := map[string]bool{"firefox": true}
	userOwned := map[string]bool{"my-macros": true}

	tests := []struct {
		name string
		page string
		want Action
	}{
		{"new page", "krita", ActionCreate},
		{"previously generated", "firefox", ActionReplace},
		{"user authored", "my-macros", ActionSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.page, known, userOwned))
		})
	}
}

func TestDecideUserOwnedWinsOverKnown(t *testing.T) {
	// Even if the page somehow shows up in both sets, the user's copy is
	// protected.
	both := map[string]bool{"shared": true}
	assert.Equal(t, ActionSkip, Decide("shared", both, both))
}
