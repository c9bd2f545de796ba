package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	labelStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	successStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399"))

	heroAccentColor        = lipgloss.Color("#38bdf8")
	heroInkColor           = lipgloss.Color("#0f172a")
	heroTextColor          = lipgloss.Color("#f8fafc")
	heroSecondaryTextColor = lipgloss.Color("#94a3b8")

	heroTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	taglineStyle       = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	formBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#334155")).Padding(1, 2)
	slideBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Foreground(heroTextColor).Padding(1, 3)
	kickerStyle        = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	slideHeadingStyle  = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor)
	slideSubtleStyle   = lipgloss.NewStyle().Foreground(heroSecondaryTextColor)
	quoteStyle         = lipgloss.NewStyle().Italic(true).Foreground(heroTextColor)
	cardTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e2e8f0"))
	cardLabelStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))
	pagerActiveStyle   = lipgloss.NewStyle().Foreground(heroAccentColor)
	pagerInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#334155"))
	statusBarStyle     = lipgloss.NewStyle().Foreground(heroInkColor).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	alertBoxStyle      = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("9")).Padding(1, 3)
	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroInkColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#1d4ed8"))
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
)

var logoGlyphs = map[rune][]string{
	'B': {"██████╗ ", "██╔══██╗", "██████╔╝", "██╔══██╗", "██████╔╝", "╚═════╝ "},
	'O': {" ██████╗ ", "██╔═══██╗", "██║   ██║", "██║   ██║", "╚██████╔╝", " ╚═════╝ "},
	'K': {"██╗  ██╗", "██║ ██╔╝", "█████╔╝ ", "██╔═██╗ ", "██║  ██╗", "╚═╝  ╚═╝"},
	'D': {"██████╗ ", "██╔══██╗", "██║  ██║", "██║  ██║", "██████╔╝", "╚═════╝ "},
	'E': {"███████╗", "██╔════╝", "█████╗  ", "██╔══╝  ", "███████╗", "╚══════╝"},
	'C': {" ██████╗", "██╔════╝", "██║     ", "██║     ", "╚██████╗", " ╚═════╝"},
}

var logoArtLines = spellLogo("BOOKDECK")

func spellLogo(word string) []string {
	const rows = 6
	lines := make([]string, rows)
	for _, r := range word {
		glyph, ok := logoGlyphs[r]
		if !ok {
			continue
		}
		for i := 0; i < rows; i++ {
			lines[i] += glyph[i] + " "
		}
	}
	return lines
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width += 1 // room for the shadow shift
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	// shadow first, offset down and right
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			grid[y][x] = cell{r: r, style: logoFaceStyle}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}

func renderKeyHints(hints []keyHint) string {
	cells := make([]string, 0, len(hints))
	for _, hint := range hints {
		cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(hint.Key), keyDescStyle.Render(" "+hint.Description)))
	}
	return strings.Join(cells, "  ")
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
