package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thumlify/thumlify-cli/internal/application"
	"github.com/thumlify/thumlify-cli/internal/domain"
)

// Balance renders the credit balance view, or a logged-out hint when no
// balance is cached.
func Balance(user *domain.UserIdentity, balance *domain.CreditBalance) string {
	s := newStyles()

	if user == nil {
		return s.empty.Render("Not logged in. Run `tly login` first.")
	}

	lines := []string{
		s.title.Render("Thumlify Credits"),
		s.header.Render(fmt.Sprintf("account: %s <%s>", user.Username, user.Email)),
	}

	if balance == nil {
		lines = append(lines, s.warning.Render("Balance unavailable. Try again in a moment."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines,
		s.section.Render(s.key.Render("credits:     ")+s.credits.Render(fmt.Sprintf("%d", balance.Credits))),
		s.key.Render("total spent: ")+s.value.Render(fmt.Sprintf("%d", balance.TotalSpent)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Detail renders a community listing together with its thumbnail.
func Detail(result application.DetailResult) string {
	s := newStyles()

	lines := []string{
		s.accent.Render(result.Thumbnail.Title),
		s.header.Render(fmt.Sprintf("listing %s · downloads %d · %s", result.Listing.ID, result.Listing.DownloadCount, result.Listing.Status)),
		"",
		s.key.Render("style:   ") + s.value.Render(result.Thumbnail.Style),
		s.key.Render("aspect:  ") + s.value.Render(result.Thumbnail.AspectRatio),
		s.key.Render("colors:  ") + s.value.Render(result.Thumbnail.ColorScheme),
		s.key.Render("image:   ") + s.value.Render(result.Thumbnail.ImageURL),
		"",
		s.key.Render("valuation: ") + s.value.Render(fmt.Sprintf("%.0f", result.Listing.Valuation)),
		s.key.Render("price:     ") + s.credits.Render(fmt.Sprintf("%.0f credits", result.Listing.TotalPrice)),
	}

	if result.Listing.Reasoning != "" {
		lines = append(lines, s.section.Render(s.empty.Render(result.Listing.Reasoning)))
	}

	lines = append(lines, s.section.Render(exportMenu(s)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ThumbnailDetail renders one of the caller's own thumbnails, without any
// marketplace context.
func ThumbnailDetail(t domain.Thumbnail) string {
	s := newStyles()

	lines := []string{
		s.accent.Render(t.Title),
		s.header.Render(fmt.Sprintf("%s · model %s", t.ID, t.Model)),
		"",
		s.key.Render("style:   ") + s.value.Render(t.Style),
		s.key.Render("aspect:  ") + s.value.Render(t.AspectRatio),
		s.key.Render("colors:  ") + s.value.Render(t.ColorScheme),
		s.key.Render("image:   ") + s.value.Render(t.ImageURL),
	}

	if t.PromptUsed != "" {
		lines = append(lines, s.key.Render("prompt:  ")+s.empty.Render(t.PromptUsed))
	}

	lines = append(lines, s.section.Render(exportMenu(s)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Gallery renders the caller's generation history.
func Gallery(thumbnails []domain.Thumbnail) string {
	s := newStyles()

	if len(thumbnails) == 0 {
		return s.empty.Render("No generations yet. Run `tly generate` to create one.")
	}

	lines := []string{
		s.title.Render("My Generations"),
		s.header.Render(fmt.Sprintf("%d thumbnails", len(thumbnails))),
	}

	for _, t := range thumbnails {
		line := s.accent.Render(t.Title) +
			s.header.Render(fmt.Sprintf("  [%s · %s]", t.Style, t.AspectRatio)) +
			" " + s.empty.Render(string(t.ID))
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func exportMenu(s styles) string {
	parts := make([]string, 0, len(domain.ExportFormats()))
	for _, f := range domain.ExportFormats() {
		cost := f.Cost()
		if cost == 0 {
			parts = append(parts, s.free.Render(fmt.Sprintf("%s FREE", f)))
			continue
		}
		parts = append(parts, s.paid.Render(fmt.Sprintf("%s %d", f, cost)))
	}
	return s.key.Render("export: ") + strings.Join(parts, s.header.Render(" | "))
}
