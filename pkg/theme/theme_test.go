package theme

import (
	"image/color"
	"testing"

	"github.com/ankigrid/ankigrid/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(config.Theme{})

	t.Run("github light", func(t *testing.T) {
		palette := resolver.Resolve(ThemeGitHub, false, nil)
		assert.Equal(t, color.RGBA{R: 0x21, G: 0x6E, B: 0x39, A: 0xFF}, palette.Completed)
		assert.Equal(t, color.RGBA{R: 0xC6, G: 0xE6, B: 0xC3, A: 0xFF}, palette.Incomplete)
		assert.Equal(t, color.RGBA{R: 0xEB, G: 0xED, B: 0xF0, A: 0xFF}, palette.NoData)
		assert.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, palette.Background)
	})

	t.Run("github dark", func(t *testing.T) {
		palette := resolver.Resolve(ThemeGitHub, true, nil)
		assert.Equal(t, color.RGBA{R: 0x39, G: 0xD3, B: 0x53, A: 0xFF}, palette.Completed)
		assert.Equal(t, color.RGBA{R: 0x0E, G: 0x44, B: 0x29, A: 0xFF}, palette.Incomplete)
		assert.Equal(t, color.RGBA{R: 0x16, G: 0x1B, B: 0x22, A: 0xFF}, palette.NoData)
		assert.Equal(t, color.RGBA{R: 0x0D, G: 0x11, B: 0x17, A: 0xFF}, palette.Background)
	})

	t.Run("monochrome differs between modes", func(t *testing.T) {
		light := resolver.Resolve(ThemeMonochrome, false, nil)
		dark := resolver.Resolve(ThemeMonochrome, true, nil)
		assert.NotEqual(t, light, dark)
		assert.Equal(t, color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}, dark.Completed)
	})

	t.Run("dynamic falls back to github without host colors", func(t *testing.T) {
		assert.Equal(t, resolver.Resolve(ThemeGitHub, false, nil), resolver.Resolve(ThemeDynamic, false, nil))
		assert.Equal(t, resolver.Resolve(ThemeGitHub, true, nil), resolver.Resolve(ThemeDynamic, true, nil))
	})

	t.Run("unknown selector falls back to dynamic", func(t *testing.T) {
		assert.Equal(t, resolver.Resolve(ThemeDynamic, true, nil), resolver.Resolve("solarized", true, nil))
	})

	t.Run("dynamic uses host colors when configured", func(t *testing.T) {
		configured := NewResolver(config.Theme{
			DynamicLight: config.DynamicColors{
				Completed:  "#112233",
				Incomplete: "#445566",
				NoData:     "#778899",
				Background: "#AABBCC",
			},
		})

		palette := configured.Resolve(ThemeDynamic, false, nil)
		assert.Equal(t, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF}, palette.Completed)
		assert.Equal(t, color.RGBA{R: 0xAA, G: 0xBB, B: 0xCC, A: 0xFF}, palette.Background)

		// Dark mode has no host colors and keeps the github fallback.
		assert.Equal(t, resolver.Resolve(ThemeGitHub, true, nil), configured.Resolve(ThemeDynamic, true, nil))
	})

	t.Run("invalid host colors are ignored entirely", func(t *testing.T) {
		configured := NewResolver(config.Theme{
			DynamicLight: config.DynamicColors{
				Completed:  "not-a-color",
				Incomplete: "#445566",
				NoData:     "#778899",
				Background: "#AABBCC",
			},
		})
		assert.Equal(t, resolver.Resolve(ThemeGitHub, false, nil), configured.Resolve(ThemeDynamic, false, nil))
	})

	t.Run("custom overrides apply on top of dynamic", func(t *testing.T) {
		completed := color.RGBA{R: 0x01, G: 0x02, B: 0x03, A: 0xFF}
		incomplete := color.RGBA{R: 0x04, G: 0x05, B: 0x06, A: 0xFF}

		palette := resolver.Resolve(ThemeCustom, true, &Overrides{
			Completed:  &completed,
			Incomplete: &incomplete,
		})

		assert.Equal(t, completed, palette.Completed)
		assert.Equal(t, incomplete, palette.Incomplete)
		// The incomplete override also colors days without data.
		assert.Equal(t, incomplete, palette.NoData)
		// Untouched fields keep the dynamic palette.
		assert.Equal(t, resolver.Resolve(ThemeDynamic, true, nil).Background, palette.Background)
	})

	t.Run("custom without overrides equals dynamic", func(t *testing.T) {
		assert.Equal(t, resolver.Resolve(ThemeDynamic, false, nil), resolver.Resolve(ThemeCustom, false, nil))
	})
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#39D353")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x39, G: 0xD3, B: 0x53, A: 0xFF}, c)

	_, err = ParseHex("39D353")
	assert.Error(t, err)
	_, err = ParseHex("#GGGGGG")
	assert.Error(t, err)
}
