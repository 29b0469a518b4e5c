package ui

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// NewsWidget renders configured markdown headlines.
type NewsWidget struct {
	markdown string
	style    string

	// last render, reused while the width is unchanged
	width    int
	rendered string
}

// NewNewsWidget creates the news widget.
func NewNewsWidget(deps Deps) *NewsWidget {
	style := deps.NewsStyle
	if style == "" {
		style = "dark"
	}
	return &NewsWidget{markdown: deps.News, style: style}
}

// Init implements Widget.
func (w *NewsWidget) Init() tea.Cmd { return nil }

// Update implements Widget.
func (w *NewsWidget) Update(tea.Msg) (Widget, tea.Cmd) { return w, nil }

// View implements Widget.
func (w *NewsWidget) View(width, height int) string {
	if strings.TrimSpace(w.markdown) == "" {
		return Styles.Empty.Render("No news configured.")
	}
	if width == w.width && w.rendered != "" {
		return w.rendered
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(w.style),
		glamour.WithWordWrap(max(10, width)),
	)
	if err != nil {
		log.Printf("ui.NewsWidget: %v", err)
		return w.markdown
	}
	out, err := r.Render(w.markdown)
	if err != nil {
		log.Printf("ui.NewsWidget: %v", err)
		return w.markdown
	}
	w.width = width
	w.rendered = strings.Trim(out, "\n")
	return w.rendered
}

// StaticWidget shows a fixed message.
type StaticWidget struct {
	text string
}

// NewStaticWidget creates a widget that only displays text.
func NewStaticWidget(text string) *StaticWidget {
	return &StaticWidget{text: text}
}

// Init implements Widget.
func (w *StaticWidget) Init() tea.Cmd { return nil }

// Update implements Widget.
func (w *StaticWidget) Update(tea.Msg) (Widget, tea.Cmd) { return w, nil }

// View implements Widget.
func (w *StaticWidget) View(width, height int) string {
	return Styles.Empty.Width(max(1, width)).Render(w.text)
}
