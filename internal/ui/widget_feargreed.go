package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"cryptodash/internal/layout"
	"cryptodash/internal/prices"
)

// FearGreedWidget shows the fear and greed index as a gauge.
type FearGreedWidget struct {
	fetchState
	index prices.FearGreed
	load  func(seq int) tea.Cmd
}

// NewFearGreedWidget creates the fear and greed index widget.
func NewFearGreedWidget(deps Deps) *FearGreedWidget {
	w := &FearGreedWidget{}
	if deps.Prices != nil {
		w.load = func(seq int) tea.Cmd {
			return fetchFearGreedCmd(deps.Prices, layout.GreedFearIndex, seq)
		}
	}
	return w
}

func (w *FearGreedWidget) start() tea.Cmd {
	if w.load == nil {
		return nil
	}
	return w.load(w.next())
}

// Init implements Widget.
func (w *FearGreedWidget) Init() tea.Cmd { return w.start() }

// Update implements Widget.
func (w *FearGreedWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		return w, w.start()
	case FearGreedLoadedMsg:
		if w.accept(msg.Seq, msg.Err) && msg.Err == nil {
			w.index = msg.Index
		}
	}
	return w, nil
}

// View implements Widget.
func (w *FearGreedWidget) View(width, height int) string {
	switch {
	case !w.loaded:
		return renderLoading("Loading index...", width)
	case w.err != nil:
		return renderError(w.err, width)
	}
	v := max(0, min(w.index.Value, 100))
	label := fmt.Sprintf("%s  %s",
		Styles.Section.Render(fmt.Sprintf("%d", v)),
		changeStyle(v < 50).Render(w.index.Classification))
	bar := progress.New(
		progress.WithGradient("#FF4136", "#2ECC40"),
		progress.WithWidth(max(4, width)),
		progress.WithoutPercentage(),
	)
	return label + "\n" + bar.ViewAs(float64(v)/100) + "\n" + Styles.Hint.Render("fear · neutral · greed")
}
