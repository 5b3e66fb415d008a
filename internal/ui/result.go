package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/quotedrop/internal/api"
)

type resultRow struct {
	label string
	value string
}

// quoteRows formats a quote for display. Money values use two decimals, the
// percentage six, and the timestamp is shown as the backend sent it.
func quoteRows(q api.Quote) []resultRow {
	return []resultRow{
		{"Symbol", q.Symbol},
		{"Name", q.Name},
		{"Price", fmt.Sprintf("%.2f", q.Price)},
		{"Change", fmt.Sprintf("%.2f", q.Change)},
		{"Change %", fmt.Sprintf("%.6f", q.ChangePercent)},
		{"Day High", fmt.Sprintf("%.2f", q.DayHigh)},
		{"Day Low", fmt.Sprintf("%.2f", q.DayLow)},
		{"Previous Close", fmt.Sprintf("%.2f", q.PreviousClose)},
		{"Timestamp", q.Timestamp.String()},
	}
}

// resultCaption says when the quote arrived and, when its timestamp parses,
// how old the quote already was at that point.
func resultCaption(q api.Quote, received time.Time) string {
	if received.IsZero() {
		return ""
	}
	caption := "received " + received.Format("15:04:05")
	if quoted := q.Timestamp.ParsedTime(); !quoted.IsZero() {
		caption += ", " + humanize.RelTime(quoted, received, "old", "ahead")
	}
	return caption
}

func renderResult(styles Styles, q api.Quote, received time.Time, width int) string {
	rows := quoteRows(q)
	labelWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.label))
	}

	var b strings.Builder
	b.WriteString(styles.SuccessText.Render("Quote"))
	if caption := resultCaption(q, received); caption != "" {
		b.WriteString(styles.FaintText.Render("  " + caption))
	}
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Width(labelWidth + 2).Render(row.label))
		value := styles.Text
		if row.label == "Change" || row.label == "Change %" {
			value = changeStyle(styles, q.Change)
		}
		b.WriteString(value.Render(row.value))
	}

	panel := styles.Panel
	inner := width - panel.GetHorizontalBorderSize()
	if inner > 0 {
		panel = panel.Width(inner)
	}
	return panel.Render(b.String())
}

func changeStyle(styles Styles, change float64) lipgloss.Style {
	switch {
	case change > 0:
		return styles.SuccessText
	case change < 0:
		return styles.DangerText
	default:
		return styles.Text
	}
}
