package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quotedrop/internal/dropzone"
	"github.com/five82/quotedrop/internal/state"
)

// renderMain renders the page: header, drop zone, submit control, status
// line, result and the key hints.
func (m Model) renderMain() string {
	styles := m.theme.Styles()
	snap := m.ctrl.page.Snapshot()

	sections := []string{
		m.renderHeader(styles),
		"",
		m.zone.View(styles.DropZone(), m.contentWidth()),
		"",
		m.renderButton(styles),
	}
	if line := m.renderStatusLine(styles, snap); line != "" {
		sections = append(sections, "", line)
	}
	if snap.Result != nil {
		sections = append(sections, "", renderResult(styles, *snap.Result, snap.LastUpdated, m.contentWidth()))
	}
	sections = append(sections, "", m.renderFooter(styles))
	return strings.Join(sections, "\n")
}

// renderHeader renders the title bar with the connectivity badge.
func (m Model) renderHeader(styles Styles) string {
	snap := m.ctrl.page.Snapshot()
	sep := styles.Header.Render("  ")

	parts := []string{
		styles.Logo.Render("quotedrop"),
		styles.BadgeStyle(snap.Connectivity).Render(badgeText(snap.Connectivity)),
	}
	if msg := strings.TrimSpace(snap.ConnectivityMessage); msg != "" {
		parts = append(parts, styles.Header.Foreground(lipgloss.Color(m.theme.Muted)).
			Render(truncateMiddle(msg, 48)))
	}
	if m.config != nil {
		parts = append(parts, styles.Header.Foreground(lipgloss.Color(m.theme.Faint)).
			Render(truncateMiddle(m.config.BaseURL(), 40)))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(m.contentWidth()).
		Render(strings.Join(parts, sep))
}

func badgeText(c state.Connectivity) string {
	switch c {
	case state.ConnectivityConnected:
		return "● connected"
	case state.ConnectivityError:
		return "● backend unreachable"
	default:
		return "● checking backend..."
	}
}

// renderButton renders the submit control for the current lifecycle.
func (m Model) renderButton(styles Styles) string {
	view := state.SubmitControl(m.ctrl.page.Snapshot().Lifecycle)
	return styles.ButtonStyle(view).Render(view.Label)
}

// renderStatusLine shows the upload error, or what is happening right now.
func (m Model) renderStatusLine(styles Styles, snap state.Snapshot) string {
	switch snap.Lifecycle {
	case state.LifecycleError:
		return styles.DangerText.Render(snap.Error)
	case state.LifecycleUploading:
		if snap.File != nil {
			return styles.WarningText.Render("Uploading " + snap.File.Name + "...")
		}
	case state.LifecycleReady:
		return styles.MutedText.Render("Press enter or click the button to upload")
	}
	return ""
}

func (m Model) renderFooter(styles Styles) string {
	return styles.Footer.Render(m.help.View(helpKeys{page: m.keys, zone: m.zone.Keys()}))
}

// helpKeys adapts the page and zone bindings to bubbles/help.
type helpKeys struct {
	page keyMap
	zone dropzone.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	return []key.Binding{h.zone.Browse, h.page.Submit, h.zone.Escape, h.page.Help, h.page.Quit}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.zone.Browse, h.zone.Cancel, h.zone.Escape},
		{h.page.Submit, h.page.Upload},
		{h.page.CycleTheme, h.page.Help, h.page.Quit},
	}
}

func truncateMiddle(value string, limit int) string {
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	head := (limit - 1) / 2
	tail := limit - 1 - head
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}
