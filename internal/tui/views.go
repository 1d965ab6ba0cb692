package tui

import (
	"fmt"
	"math"
	"strings"

	"pubmed-chat/internal/info"
	"pubmed-chat/internal/session"
)

// renderTranscript lays out the full conversation for the viewport
func (m Model) renderTranscript() string {
	snap := m.ctrl.Snapshot()

	var b strings.Builder
	for _, msg := range snap.Transcript {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMessage(msg session.Message) string {
	var b strings.Builder

	ts := timestampStyle.Render(msg.Timestamp.Format("15:04:05"))
	if msg.Role == session.RoleUser {
		b.WriteString(userRoleStyle.Render("You") + " " + ts + "\n")
		b.WriteString(msg.Content + "\n")
		return b.String()
	}

	b.WriteString(assistantRoleStyle.Render("Assistant") + " " + ts + "\n")

	body := msg.Content
	if msg.Content == session.ErrorFallback {
		body = errorMessageStyle.Render(msg.Content)
	} else if m.renderer != nil {
		if rendered, err := m.renderer.Render(msg.Content); err == nil {
			body = strings.Trim(rendered, "\n")
		}
	}
	b.WriteString(body + "\n")

	if msg.Citations != nil {
		b.WriteString(sourceMetaStyle.Render("Sources:") + "\n")
		for _, c := range msg.Citations {
			match := int(math.Round(c.Relevance * 100))
			badge := matchBadgeStyle.Render(fmt.Sprintf("%d%% match", match))
			b.WriteString("  " + sourceTitleStyle.Render(c.Title) + " " + badge + "\n")
			if c.Journal != "" {
				b.WriteString("  " + sourceMetaStyle.Render(c.Journal) + "\n")
			}
			b.WriteString("  " + sourceMetaStyle.Render(c.URL) + "\n")
		}
	}

	return b.String()
}

// renderMetricsPanel draws the system metrics indicators
func renderMetricsPanel(width int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("System Metrics") + " " + dimStyle.Render("(last 24h)") + "\n")
	for _, metric := range info.Metrics() {
		change := metricDownStyle.Render(metric.Change)
		if strings.HasPrefix(metric.Change, "+") {
			change = metricUpStyle.Render(metric.Change)
		}
		b.WriteString(fmt.Sprintf("%-22s %s %s\n", metric.Label, metricValueStyle.Render(metric.Value), change))
	}
	return panelStyle.Width(maxInt(width-2, 30)).Render(strings.TrimRight(b.String(), "\n"))
}

// renderFeaturesPanel draws the capability cards
func renderFeaturesPanel(width int) string {
	var b strings.Builder
	for i, f := range info.Features() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(panelTitleStyle.Render(f.Title) + " " + metricUpStyle.Render("["+f.Stats+"]") + "\n")
		b.WriteString(dimStyle.Render(f.Description) + "\n")
	}
	return panelStyle.Width(maxInt(width-2, 30)).Render(strings.TrimRight(b.String(), "\n"))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
