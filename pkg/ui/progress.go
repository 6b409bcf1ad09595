package ui

import (
	"github.com/charmbracelet/bubbles/progress"
)

// ProgressBar renders a static progress bar for line-by-line output
type ProgressBar struct {
	model progress.Model
}

// NewProgressBar creates a progress bar of the given width
func NewProgressBar(width int) *ProgressBar {
	m := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	return &ProgressBar{model: m}
}

// Render returns the bar filled to current/total
func (p *ProgressBar) Render(current, total int) string {
	if total <= 0 {
		return p.model.ViewAs(0)
	}
	percent := float64(current) / float64(total)
	if percent > 1 {
		percent = 1
	}
	return p.model.ViewAs(percent)
}
