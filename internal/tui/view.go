package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

func (m *model) View() string {
	switch m.stage {
	case stageInput:
		return m.viewInput()
	case stageLoading:
		return m.viewLoading()
	case stageResult:
		return m.viewResult()
	case stageError:
		return m.viewError()
	default:
		return ""
	}
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(lipgloss.Left, renderLogo(), taglineStyle.Render(heroTagline))
}

func (m *model) viewInput() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Book title"))
	b.WriteRune('\n')
	b.WriteString(m.titleInput.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Author"))
	b.WriteRune('\n')
	b.WriteString(m.authorInput.View())
	form := formBoxStyle.Render(b.String())

	parts := []string{m.heroView(), form}
	if m.validationMessage != "" {
		parts = append(parts, errorStyle.Render(m.validationMessage))
	}
	parts = append(parts, renderKeyHints([]keyHint{
		{"tab", "Switch field"},
		{"enter", "Generate deck"},
		{"esc", "Quit"},
	}))
	return joinNonEmpty(parts)
}

func (m *model) viewLoading() string {
	status := fmt.Sprintf("%s Researching %q with Google Search grounding…", m.spinner.View(), trimmedTitle(m.pendingTitle))
	return joinNonEmpty([]string{
		m.heroView(),
		sectionHeaderStyle.Render(status),
		helperStyle.Render("Deep analyses usually take under a minute. Ctrl+C quits."),
	})
}

func (m *model) viewResult() string {
	if m.deck == nil {
		return m.viewInput()
	}
	doc := m.deck.Document()
	header := heroTitleStyle.Render(wordwrap.String(orPlaceholder(doc.Title, "Untitled"), m.layout.slideWidth))
	if doc.Author != "" {
		header += helperStyle.Render("  by " + doc.Author)
	}

	body := slideBoxStyle.Width(m.layout.slideWidth + 6).Render(m.viewport.View())
	if m.alertMessage != "" {
		body = m.alertView()
	}

	parts := []string{header, body, renderPager(m.deck.Index())}
	if status := m.statusLine(); status != "" {
		parts = append(parts, status)
	}
	if job := m.jobStatusLine(); job != "" {
		parts = append(parts, job)
	}
	parts = append(parts, renderKeyHints([]keyHint{
		{"←/→", "Slide"},
		{"1-0", "Jump"},
		{"↑/↓", "Scroll"},
		{"e", "Export PDF"},
		{"r", "New book"},
		{"q", "Quit"},
	}))
	return joinNonEmpty(parts)
}

func (m *model) statusLine() string {
	switch {
	case m.exporting:
		return helperStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.infoMessage))
	case strings.HasPrefix(m.infoMessage, "Saved "):
		return successStyle.Render(m.infoMessage)
	case m.infoMessage != "":
		return helperStyle.Render(m.infoMessage)
	default:
		return ""
	}
}

// jobStatusLine summarises the most recent finished job.
func (m *model) jobStatusLine() string {
	job := m.lastJob
	if job.ID == "" || job.Status == jobStatusRunning {
		return ""
	}
	text := fmt.Sprintf("%s %s in %s", job.Kind, job.Status, job.Duration.Round(10*time.Millisecond))
	return statusBarStyle.Render(text)
}

func (m *model) alertView() string {
	content := strings.Join([]string{
		errorStyle.Bold(true).Render("Export failed"),
		"",
		wordwrap.String(m.alertMessage, m.layout.slideWidth-4),
		"",
		helperStyle.Render("Press Enter or Esc to dismiss."),
	}, "\n")
	return alertBoxStyle.Width(m.layout.slideWidth + 6).Render(content)
}

func (m *model) viewError() string {
	return joinNonEmpty([]string{
		m.heroView(),
		errorStyle.Render(m.errorMessage),
		renderKeyHints([]keyHint{
			{"enter", "Try again"},
			{"esc", "Quit"},
		}),
	})
}
