package theme

import (
	"image/color"

	"github.com/ankigrid/ankigrid/internal/config"
	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
)

const (
	ThemeDynamic    = "dynamic"
	ThemeGitHub     = "github"
	ThemeMonochrome = "monochrome"
	ThemeCustom     = "custom"
)

// Palette is the resolved 4-color set used by the grid renderer. Resolution
// never fails: every selector maps to a concrete palette.
type Palette struct {
	Completed  color.RGBA
	Incomplete color.RGBA
	NoData     color.RGBA
	Background color.RGBA
}

// Overrides are the user-supplied colors of the custom theme. Nil fields keep
// the dynamic theme's defaults.
type Overrides struct {
	Completed  *color.RGBA
	Incomplete *color.RGBA
	Background *color.RGBA
}

// Resolver maps a theme selector to a palette. Dynamic palettes come from the
// host configuration; when absent the dynamic theme falls back to the GitHub
// palette.
type Resolver struct {
	dynamicLight *Palette
	dynamicDark  *Palette
}

func NewResolver(cfg config.Theme) *Resolver {
	return &Resolver{
		dynamicLight: paletteFromConfig(cfg.DynamicLight),
		dynamicDark:  paletteFromConfig(cfg.DynamicDark),
	}
}

// Resolve returns the palette for the given selector and mode. Unknown
// selectors fall back to the dynamic theme.
func (r *Resolver) Resolve(selector string, darkMode bool, overrides *Overrides) Palette {
	switch selector {
	case ThemeGitHub:
		return githubPalette(darkMode)
	case ThemeMonochrome:
		return monochromePalette(darkMode)
	case ThemeCustom:
		return r.customPalette(darkMode, overrides)
	case ThemeDynamic:
		return r.dynamicPalette(darkMode)
	default:
		log.Debugf("Unknown theme %q, falling back to dynamic", selector)
		return r.dynamicPalette(darkMode)
	}
}

func (r *Resolver) dynamicPalette(darkMode bool) Palette {
	if darkMode && r.dynamicDark != nil {
		return *r.dynamicDark
	}
	if !darkMode && r.dynamicLight != nil {
		return *r.dynamicLight
	}
	// No host colors configured for this mode.
	return githubPalette(darkMode)
}

func (r *Resolver) customPalette(darkMode bool, overrides *Overrides) Palette {
	palette := r.dynamicPalette(darkMode)
	if overrides == nil {
		return palette
	}
	if overrides.Completed != nil {
		palette.Completed = *overrides.Completed
	}
	if overrides.Incomplete != nil {
		palette.Incomplete = *overrides.Incomplete
		// The custom theme reuses the incomplete color for days without data.
		palette.NoData = *overrides.Incomplete
	}
	if overrides.Background != nil {
		palette.Background = *overrides.Background
	}
	return palette
}

func githubPalette(darkMode bool) Palette {
	if darkMode {
		return Palette{
			Completed:  mustHex("#39D353"),
			Incomplete: mustHex("#0E4429"),
			NoData:     mustHex("#161B22"),
			Background: mustHex("#0D1117"),
		}
	}
	return Palette{
		Completed:  mustHex("#216E39"),
		Incomplete: mustHex("#C6E6C3"),
		NoData:     mustHex("#EBEDF0"),
		Background: mustHex("#FFFFFF"),
	}
}

func monochromePalette(darkMode bool) Palette {
	if darkMode {
		return Palette{
			Completed:  mustHex("#CCCCCC"),
			Incomplete: mustHex("#555555"),
			NoData:     mustHex("#1F1F1F"),
			Background: mustHex("#0A0A0A"),
		}
	}
	return Palette{
		Completed:  mustHex("#333333"),
		Incomplete: mustHex("#AAAAAA"),
		NoData:     mustHex("#E0E0E0"),
		Background: mustHex("#F5F5F5"),
	}
}

// paletteFromConfig builds a dynamic palette from host configuration. All four
// colors must be present and valid; otherwise the palette is absent and the
// GitHub fallback applies.
func paletteFromConfig(cfg config.DynamicColors) *Palette {
	if cfg.Completed == "" || cfg.Incomplete == "" || cfg.NoData == "" || cfg.Background == "" {
		return nil
	}
	completed, err1 := ParseHex(cfg.Completed)
	incomplete, err2 := ParseHex(cfg.Incomplete)
	noData, err3 := ParseHex(cfg.NoData)
	background, err4 := ParseHex(cfg.Background)
	for _, err := range []error{err1, err2, err3, err4} {
		if err != nil {
			log.Warnf("Ignoring dynamic theme colors: %v", err)
			return nil
		}
	}
	return &Palette{
		Completed:  completed,
		Incomplete: incomplete,
		NoData:     noData,
		Background: background,
	}
}

// ParseHex parses a "#RRGGBB" color string into an opaque RGBA value.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func mustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
