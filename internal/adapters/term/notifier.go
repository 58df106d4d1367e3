// Package term adapts the toast and navigation surfaces to a terminal.
package term

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

// Notifier prints toast-style lines. The mutex keeps output whole when a
// deferred notification fires while a command is still printing.
type Notifier struct {
	mu  sync.Mutex
	out io.Writer

	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{
		out:     out,
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
}

func (n *Notifier) Success(msg string) { n.printLine(n.success.Render("✓"), msg) }
func (n *Notifier) Error(msg string)   { n.printLine(n.failure.Render("✗"), msg) }
func (n *Notifier) Warning(msg string) { n.printLine(n.warning.Render("!"), msg) }

func (n *Notifier) printLine(prefix, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, "%s %s\n", prefix, msg)
}

// Navigator is the terminal stand-in for route changes: it prints where the
// flow would take the user.
type Navigator struct {
	out        io.Writer
	mu         sync.Mutex
	PricingURL string
}

var _ ports.Navigator = (*Navigator)(nil)

func NewNavigator(out io.Writer, pricingURL string) *Navigator {
	return &Navigator{out: out, PricingURL: pricingURL}
}

func (n *Navigator) GoToPricing() {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, "Top up your credits: %s\n", n.PricingURL)
}

func (n *Navigator) GoToResult(id domain.ThumbnailID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, "View it any time: tly show --thumbnail %s\n", id)
}
