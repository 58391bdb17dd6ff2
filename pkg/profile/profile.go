package profile

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ErrInvalidToken reports a token that cannot be parsed into a profile value.
var ErrInvalidToken = errors.New("profile: invalid token")

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)$`)

// Profile is a resolved set of layout constants and colours.
type Profile struct {
	Theme        string
	Variant      string
	Scale        float64
	DiagramWidth float64
	LegendWidth  float64
	RightMargin  float64
	LineHeight   float64
	FontFamily   string
	Colors       map[string]string
}

// Token is a named colour exposed to templates.
type Token struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Color returns the colour for key, accepting either the full token name or
// the part after "color.".
func (p Profile) Color(key string) string {
	if !strings.HasPrefix(key, ColorPrefix) {
		key = ColorPrefix + key
	}
	return p.Colors[key]
}

// ColorTokens returns the colours sorted by name, with the "color." prefix
// stripped.
func (p Profile) ColorTokens() []Token {
	out := make([]Token, 0, len(p.Colors))
	for _, name := range sortedKeys(p.Colors) {
		out = append(out, Token{Name: strings.TrimPrefix(name, ColorPrefix), Value: p.Colors[name]})
	}
	return out
}

// IsZero reports whether the profile was never resolved.
func (p Profile) IsZero() bool {
	return p.Scale == 0
}

// Default resolves the web variant of the built-in manifest.
func Default() Profile {
	p, err := Resolve(&theme.Selection{Theme: DefaultTheme, Variant: DefaultVariant, Manifest: DefaultManifest()})
	if err != nil {
		panic(err)
	}
	return p
}

// Load selects name/variant through selector and resolves the result.
func Load(selector theme.ThemeSelector, name, variant string) (Profile, error) {
	if selector == nil {
		return Profile{}, errors.New("profile: selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Profile{}, err
	}
	return Resolve(selection)
}

// Resolve merges the selected variant's tokens over the manifest tokens and
// parses them.
func Resolve(selection *theme.Selection) (Profile, error) {
	if selection == nil || selection.Manifest == nil {
		return Profile{}, errors.New("profile: selection has no manifest")
	}

	tokens := copyTokens(selection.Manifest.Tokens)
	if selection.Variant != "" {
		variant, ok := selection.Manifest.Variants[selection.Variant]
		if !ok {
			return Profile{}, fmt.Errorf("%w: %q", ErrUnknownVariant, selection.Variant)
		}
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}

	p := Profile{
		Theme:      selection.Theme,
		Variant:    selection.Variant,
		FontFamily: strings.TrimSpace(tokens[TokenFontFamily]),
		Colors:     make(map[string]string),
	}

	numbers := []struct {
		token string
		dest  *float64
	}{
		{TokenScale, &p.Scale},
		{TokenDiagramWidth, &p.DiagramWidth},
		{TokenLegendWidth, &p.LegendWidth},
		{TokenRightMargin, &p.RightMargin},
		{TokenLineHeight, &p.LineHeight},
	}
	for _, n := range numbers {
		value, err := parseNumber(tokens, n.token)
		if err != nil {
			return Profile{}, err
		}
		*n.dest = value
	}
	if p.Scale <= 0 || p.LineHeight <= 0 {
		return Profile{}, fmt.Errorf("%w: scale and line-height must be positive", ErrInvalidToken)
	}
	if p.DiagramWidth-p.LegendWidth-p.RightMargin <= 0 {
		return Profile{}, fmt.Errorf("%w: diagram-width leaves no room for bars", ErrInvalidToken)
	}
	if p.FontFamily == "" {
		p.FontFamily = "sans-serif"
	}

	for key, value := range tokens {
		if !strings.HasPrefix(key, ColorPrefix) {
			continue
		}
		value = strings.TrimSpace(value)
		if !colorPattern.MatchString(value) {
			return Profile{}, fmt.Errorf("%w: %s=%q is not a colour", ErrInvalidToken, key, value)
		}
		p.Colors[key] = value
	}
	return p, nil
}

// Tokens renders the profile back into a flat token map.
func (p Profile) Tokens() map[string]string {
	out := map[string]string{
		TokenScale:        formatFloat(p.Scale),
		TokenDiagramWidth: formatFloat(p.DiagramWidth),
		TokenLegendWidth:  formatFloat(p.LegendWidth),
		TokenRightMargin:  formatFloat(p.RightMargin),
		TokenLineHeight:   formatFloat(p.LineHeight),
		TokenFontFamily:   p.FontFamily,
	}
	for key, value := range p.Colors {
		out[key] = value
	}
	return out
}

func parseNumber(tokens map[string]string, name string) (float64, error) {
	raw, ok := tokens[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s is missing", ErrInvalidToken, name)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidToken, name, raw)
	}
	return value, nil
}

func sortedKeys[V any](in map[string]V) []string {
	out := make([]string, 0, len(in))
	for key := range in {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
