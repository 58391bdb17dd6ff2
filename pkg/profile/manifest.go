package profile

import (
	"sort"
	"strconv"

	theme "github.com/goliatone/go-theme"
)

// Theme and variant names shipped with the package.
const (
	DefaultTheme   = "release-cycle"
	VariantWeb     = "web"
	VariantPrint   = "print"
	VariantDark    = "dark"
	DefaultVariant = VariantWeb
)

// Layout token names. Sizes are multiples of Scale, which is roughly the pixel
// size of the font.
const (
	TokenScale        = "scale"
	TokenDiagramWidth = "diagram-width"
	TokenLegendWidth  = "legend-width"
	TokenRightMargin  = "right-margin"
	TokenLineHeight   = "line-height"
	TokenFontFamily   = "font-family"
)

// Colour token names. Status colours use the status value as suffix.
const (
	ColorPrefix     = "color."
	ColorBackground = ColorPrefix + "background"
	ColorText       = ColorPrefix + "text"
	ColorGrid       = ColorPrefix + "grid"
	ColorToday      = ColorPrefix + "today"
	ColorBorder     = ColorPrefix + "border"
	ColorFeature    = ColorPrefix + "feature"
	ColorBugfix     = ColorPrefix + "bugfix"
	ColorSecurity   = ColorPrefix + "security"
	ColorEndOfLife  = ColorPrefix + "end-of-life"
)

func baseTokens() map[string]string {
	return map[string]string{
		TokenScale:        "18",
		TokenDiagramWidth: "46",
		TokenLegendWidth:  "7",
		TokenRightMargin:  "0.5",
		TokenLineHeight:   "1.5",
		TokenFontFamily:   "sans-serif",
		ColorBackground:   "#ffffff",
		ColorText:         "#1a1a1a",
		ColorGrid:         "#d0d0d0",
		ColorToday:        "#c40000",
		ColorBorder:       "#000000",
		ColorFeature:      "#6cbf6c",
		ColorBugfix:       "#3f9c3f",
		ColorSecurity:     "#f4d44d",
		ColorEndOfLife:    "#d66666",
	}
}

// DefaultManifest returns the built-in manifest with the web, print and dark
// variants.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens:  baseTokens(),
		Variants: map[string]theme.Variant{
			VariantWeb: {
				Tokens: map[string]string{TokenScale: "18"},
			},
			VariantPrint: {
				Tokens: map[string]string{
					TokenScale:      "12",
					ColorFeature:    "#bbbbbb",
					ColorBugfix:     "#999999",
					ColorSecurity:   "#dddddd",
					ColorEndOfLife:  "#666666",
					ColorToday:      "#000000",
					TokenFontFamily: "serif",
				},
			},
			VariantDark: {
				Tokens: map[string]string{
					ColorBackground: "#1e1e1e",
					ColorText:       "#e6e6e6",
					ColorGrid:       "#4a4a4a",
					ColorBorder:     "#e6e6e6",
					ColorToday:      "#ff6b6b",
				},
			},
		},
	}
}

// WithVariants returns a copy of manifest with extra variants merged in. Token
// maps of existing variants are extended, new variants are added.
func WithVariants(manifest *theme.Manifest, variants map[string]map[string]string) *theme.Manifest {
	if manifest == nil {
		return nil
	}
	out := *manifest
	out.Tokens = copyTokens(manifest.Tokens)
	out.Variants = make(map[string]theme.Variant, len(manifest.Variants)+len(variants))
	for name, variant := range manifest.Variants {
		variant.Tokens = copyTokens(variant.Tokens)
		out.Variants[name] = variant
	}

	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		variant := out.Variants[name]
		if variant.Tokens == nil {
			variant.Tokens = make(map[string]string, len(variants[name]))
		}
		for key, value := range variants[name] {
			variant.Tokens[key] = value
		}
		out.Variants[name] = variant
	}
	return &out
}

func copyTokens(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
