package theme

import (
	"errors"
	"fmt"
)

var ErrInvalidTheme = errors.New("invalid theme option")

// Config is the set of visual style choices shared by every section of a page.
// It is built once at startup and passed by value; nothing mutates it afterwards.
type Config struct {
	ButtonVariant        string `json:"default_button_variant"`
	TextAnimation        string `json:"default_text_animation"`
	BorderRadius         string `json:"border_radius"`
	ContentWidth         string `json:"content_width"`
	Sizing               string `json:"sizing"`
	Background           string `json:"background"`
	CardStyle            string `json:"card_style"`
	PrimaryButtonStyle   string `json:"primary_button_style"`
	SecondaryButtonStyle string `json:"secondary_button_style"`
	HeadingFontWeight    string `json:"heading_font_weight"`
}

var (
	buttonVariants = []string{
		"text-stagger", "shift-hover", "icon-arrow", "hover-magnetic", "hover-bubble",
		"expand-hover", "directional-hover", "elastic-effect", "bounce-effect",
	}
	textAnimations = []string{"entrance-slide", "reveal-blur", "background-highlight"}
	contentWidths  = []string{"small", "mediumSmall", "medium", "mediumLarge"}
	sizings        = []string{
		"medium", "mediumLarge", "large", "mediumSizeLargeTitles", "largeSmallSizeLargeTitles",
	}
	cardStyles = []string{
		"solid", "outline", "gradient-mesh", "gradient-radial", "inset", "glass-elevated",
		"glass-depth", "gradient-bordered", "layered-gradient", "soft-shadow", "subtle-shadow",
	}
	primaryButtonStyles = []string{
		"gradient", "shadow", "flat", "radial-glow", "diagonal-gradient",
		"double-inset", "primary-glow", "inset-glow",
	}
	secondaryButtonStyles = []string{"glass", "solid", "layered", "radial-glow"}
	headingWeights        = []string{"normal", "medium", "semibold", "bold"}
)

var borderRadiusTokens = map[string]string{
	"rounded": "var(--radius)",
	"soft":    "var(--radius-lg)",
	"pill":    "var(--radius-full)",
}

var borderRadiusCappedTokens = map[string]string{
	"rounded": "var(--radius)",
	"soft":    "var(--radius-lg)",
	"pill":    "var(--radius-xl)",
}

var backgroundComponents = map[string]string{
	"none":                  "",
	"circleGradient":        "CircleGradientBackground",
	"aurora":                "AuroraBackground",
	"floatingGradient":      "FloatingGradientBackground",
	"noise":                 "NoiseBackground",
	"noiseDiagonalGradient": "NoiseDiagonalGradientBackground",
	"fluid":                 "FluidBackground",
	"blurBottom":            "BlurBottomBackground",
	"grid":                  "GridBackground",
}

// Default returns the configuration every Bayka page is rendered with.
func Default() Config {
	return Config{
		ButtonVariant:        "text-stagger",
		TextAnimation:        "entrance-slide",
		BorderRadius:         "soft",
		ContentWidth:         "mediumSmall",
		Sizing:               "medium",
		Background:           "blurBottom",
		CardStyle:            "solid",
		PrimaryButtonStyle:   "primary-glow",
		SecondaryButtonStyle: "layered",
		HeadingFontWeight:    "semibold",
	}
}

func (c Config) Validate() error {
	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"button_variant", c.ButtonVariant, buttonVariants},
		{"text_animation", c.TextAnimation, textAnimations},
		{"border_radius", c.BorderRadius, keys(borderRadiusTokens)},
		{"content_width", c.ContentWidth, contentWidths},
		{"sizing", c.Sizing, sizings},
		{"background", c.Background, keys(backgroundComponents)},
		{"card_style", c.CardStyle, cardStyles},
		{"primary_button_style", c.PrimaryButtonStyle, primaryButtonStyles},
		{"secondary_button_style", c.SecondaryButtonStyle, secondaryButtonStyles},
		{"heading_font_weight", c.HeadingFontWeight, headingWeights},
	}

	for _, chk := range checks {
		if !contains(chk.allowed, chk.value) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidTheme, chk.field, chk.value)
		}
	}
	return nil
}

// Merge returns a copy of c with every non-empty field of overrides applied.
func (c Config) Merge(overrides Config) Config {
	merged := c
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&merged.ButtonVariant, overrides.ButtonVariant)
	set(&merged.TextAnimation, overrides.TextAnimation)
	set(&merged.BorderRadius, overrides.BorderRadius)
	set(&merged.ContentWidth, overrides.ContentWidth)
	set(&merged.Sizing, overrides.Sizing)
	set(&merged.Background, overrides.Background)
	set(&merged.CardStyle, overrides.CardStyle)
	set(&merged.PrimaryButtonStyle, overrides.PrimaryButtonStyle)
	set(&merged.SecondaryButtonStyle, overrides.SecondaryButtonStyle)
	set(&merged.HeadingFontWeight, overrides.HeadingFontWeight)
	return merged
}

func (c Config) Radius() string {
	return borderRadiusTokens[c.BorderRadius]
}

func (c Config) CappedRadius() string {
	return borderRadiusCappedTokens[c.BorderRadius]
}

// BackgroundComponent is empty when the page has no background layer.
func (c Config) BackgroundComponent() string {
	return backgroundComponents[c.Background]
}

// UseInvertedText reports whether text sitting on a card must switch to the
// background color.
func (c Config) UseInvertedText(invertedBackground bool) bool {
	if invertedBackground {
		return true
	}
	return c.CardStyle == "gradient-mesh" || c.CardStyle == "layered-gradient"
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
