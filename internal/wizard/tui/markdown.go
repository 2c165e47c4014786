package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/muurk/offsite/internal/config"
	"github.com/muurk/offsite/internal/logging"
)

// MarkdownRenderer renders step guides with glamour. Renderers are built
// per wrap width and reused.
type MarkdownRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
	cache     map[cacheKey]string
}

type cacheKey struct {
	source string
	width  int
}

// NewMarkdownRenderer creates a renderer for one of the config markdown
// styles. Auto resolves to dark or light from the terminal background.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{
		style:     resolveMarkdownStyle(style),
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     make(map[cacheKey]string),
	}
}

func resolveMarkdownStyle(style string) string {
	switch style {
	case config.MarkdownDark:
		return styles.DarkStyle
	case config.MarkdownLight:
		return styles.LightStyle
	case config.MarkdownNoTTY:
		return styles.NoTTYStyle
	}
	if termenv.EnvNoColor() {
		return styles.NoTTYStyle
	}
	if termenv.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}

// Style returns the resolved glamour style name.
func (r *MarkdownRenderer) Style() string {
	return r.style
}

// Render returns source rendered for width columns. On any renderer error
// the source is returned unchanged.
func (r *MarkdownRenderer) Render(source string, width int) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	key := cacheKey{source: source, width: width}
	if out, ok := r.cache[key]; ok {
		return out
	}

	tr, ok := r.renderers[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logging.Warn("Markdown renderer unavailable", zap.String("style", r.style), zap.Error(err))
			return source
		}
		r.renderers[width] = tr
	}

	out, err := tr.Render(source)
	if err != nil {
		logging.Warn("Markdown render failed", zap.Error(err))
		return source
	}
	out = strings.Trim(out, "\n")
	r.cache[key] = out
	return out
}
