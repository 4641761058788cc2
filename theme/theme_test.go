package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "var(--radius-lg)", cfg.Radius())
	assert.Equal(t, "BlurBottomBackground", cfg.BackgroundComponent())
}

func TestValidateRejectsUnknownValue(t *testing.T) {
	cfg := Default()
	cfg.BorderRadius = "square"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTheme))
	assert.Contains(t, err.Error(), "border_radius")
}

func TestMergeDoesNotMutateReceiver(t *testing.T) {
	base := Default()
	merged := base.Merge(Config{BorderRadius: "pill", Background: "none"})

	assert.Equal(t, "soft", base.BorderRadius)
	assert.Equal(t, "pill", merged.BorderRadius)
	assert.Equal(t, "text-stagger", merged.ButtonVariant)
	assert.Equal(t, "var(--radius-full)", merged.Radius())
	assert.Equal(t, "var(--radius-xl)", merged.CappedRadius())
	assert.Empty(t, merged.BackgroundComponent())
}

func TestUseInvertedText(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.UseInvertedText(false))
	assert.True(t, cfg.UseInvertedText(true))

	mesh := cfg.Merge(Config{CardStyle: "gradient-mesh"})
	assert.True(t, mesh.UseInvertedText(false))
}
