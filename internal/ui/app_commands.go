package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cryptodash/internal/prices"
)

// PriceSource is the subset of the price client the widgets use.
type PriceSource interface {
	Assets(ctx context.Context, ids []string) ([]prices.Asset, error)
	Top(ctx context.Context, limit int) ([]prices.Asset, error)
	History(ctx context.Context, id, interval string) ([]prices.Point, error)
	FearGreed(ctx context.Context) (prices.FearGreed, error)
}

// fetchAssetsCmd loads the assets with the given ids.
func fetchAssetsCmd(src PriceSource, widget string, seq int, ids []string) tea.Cmd {
	return func() tea.Msg {
		assets, err := src.Assets(context.Background(), ids)
		return AssetsLoadedMsg{Widget: widget, Seq: seq, Assets: assets, Err: err}
	}
}

// fetchTopCmd loads the top assets by rank.
func fetchTopCmd(src PriceSource, widget string, seq int, limit int) tea.Cmd {
	return func() tea.Msg {
		assets, err := src.Top(context.Background(), limit)
		return AssetsLoadedMsg{Widget: widget, Seq: seq, Assets: assets, Err: err}
	}
}

// fetchHistoryCmd loads the price history of one asset.
func fetchHistoryCmd(src PriceSource, widget string, seq int, id, interval string) tea.Cmd {
	return func() tea.Msg {
		points, err := src.History(context.Background(), id, interval)
		return HistoryLoadedMsg{Widget: widget, Seq: seq, Points: points, Err: err}
	}
}

// fetchFearGreedCmd loads the fear and greed index.
func fetchFearGreedCmd(src PriceSource, widget string, seq int) tea.Cmd {
	return func() tea.Msg {
		index, err := src.FearGreed(context.Background())
		return FearGreedLoadedMsg{Widget: widget, Seq: seq, Index: index, Err: err}
	}
}

// tickCmd schedules the next periodic refresh. A non-positive interval
// disables it.
func tickCmd(every time.Duration) tea.Cmd {
	if every <= 0 {
		return nil
	}
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchState tracks the latest request of a widget so late responses to
// superseded requests can be dropped.
type fetchState struct {
	seq     int
	loading bool
	loaded  bool
	err     error
}

// next starts a new request and returns its sequence number.
func (f *fetchState) next() int {
	f.seq++
	f.loading = true
	return f.seq
}

// accept records the outcome of request seq. Returns false if seq is not the
// latest request.
func (f *fetchState) accept(seq int, err error) bool {
	if seq != f.seq {
		return false
	}
	f.loading = false
	f.loaded = true
	f.err = err
	return true
}

// Loading reports whether a request is in flight.
func (f *fetchState) Loading() bool {
	return f.loading
}
