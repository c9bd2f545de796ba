// Package tui is the Bubble Tea front end: a title/author form, a loading
// screen, the slide viewer and an error screen.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/bookdeck/internal/infographic"
	"github.com/csheth/bookdeck/internal/llm"
	"github.com/csheth/bookdeck/internal/logger"
	"github.com/csheth/bookdeck/internal/pdfexport"
	"github.com/csheth/bookdeck/internal/slides"
)

// Exporter writes a document's slides to a PDF.
type Exporter interface {
	Export(ctx context.Context, doc *infographic.Document) (pdfexport.Result, error)
}

// Config wires runtime dependencies into the TUI program.
type Config struct {
	Generator llm.Client
	Exporter  Exporter
	Logger    *logger.Logger
	// Title and Author prefill the form.
	Title  string
	Author string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Logger == nil {
		config.Logger = logger.NewNop()
	}

	titleInput := textinput.New()
	titleInput.Placeholder = "e.g. The Left Hand of Darkness"
	titleInput.CharLimit = 160
	titleInput.Width = 56
	titleInput.Prompt = ""
	titleInput.SetValue(config.Title)

	authorInput := textinput.New()
	authorInput.Placeholder = "e.g. Ursula K. Le Guin"
	authorInput.CharLimit = 120
	authorInput.Width = 56
	authorInput.Prompt = ""
	authorInput.SetValue(config.Author)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)

	m := &model{
		config:      config,
		log:         config.Logger.With("component", "tui"),
		stage:       stageInput,
		titleInput:  titleInput,
		authorInput: authorInput,
		spinner:     spin,
		viewport:    vp,
		layout:      newPageLayout(),
		jobs:        newJobBus(config.Logger),
	}
	m.focusField(fieldTitle)
	return m
}

type model struct {
	config Config
	log    *logger.Logger
	stage  stage
	layout pageLayout
	jobs   *jobBus

	titleInput  textinput.Model
	authorInput textinput.Model
	focus       inputField
	spinner     spinner.Model
	viewport    viewport.Model

	deck         *slides.Deck
	pendingTitle string

	validationMessage string
	errorMessage      string
	infoMessage       string
	alertMessage      string
	exporting         bool
	lastJob           jobSnapshot
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.stage == stageLoading || m.exporting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.viewport.Width = m.layout.slideWidth
		m.viewport.Height = m.layout.slideHeight
		m.refreshSlide()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.alertMessage != "" {
			return m.handleAlertKey(msg)
		}
		switch m.stage {
		case stageInput:
			return m.handleInputKey(msg)
		case stageResult:
			return m.handleResultKey(msg)
		case stageError:
			return m.handleErrorKey(msg)
		default:
			// loading: nothing is reachable until the call settles
			return m, nil
		}
	case jobSignalMsg:
		m.lastJob = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.lastJob = msg.Snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case generateResultMsg:
		return m.handleGenerateResult(msg)
	case exportResultMsg:
		return m.handleExportResult(msg)
	}
	return m, nil
}

func (m *model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		m.focusField((m.focus + 1) % 2)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusField((m.focus + 1) % 2)
		return m, nil
	case tea.KeyEnter:
		return m, m.submit()
	}

	var cmd tea.Cmd
	if m.focus == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.authorInput, cmd = m.authorInput.Update(msg)
	}
	if m.validationMessage != "" {
		m.validationMessage = ""
	}
	return m, cmd
}

// submit validates the form and starts generation. Blank fields set the
// validation message and issue no command; the inputs go out as typed.
func (m *model) submit() tea.Cmd {
	if m.stage != stageInput {
		return nil
	}
	title := m.titleInput.Value()
	author := m.authorInput.Value()
	if strings.TrimSpace(title) == "" || strings.TrimSpace(author) == "" {
		m.validationMessage = validationMessage
		return nil
	}
	m.validationMessage = ""
	m.errorMessage = ""
	m.infoMessage = ""
	m.pendingTitle = strings.TrimSpace(title)
	m.stage = stageLoading
	m.titleInput.Blur()
	m.authorInput.Blur()
	m.log.Info("submit", "title", title, "author", author)
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindGenerate, generateJob(m.config.Generator, title, author)))
}

func (m *model) handleGenerateResult(msg generateResultMsg) (tea.Model, tea.Cmd) {
	if m.stage != stageLoading {
		return m, nil
	}
	if msg.err != nil || msg.doc == nil {
		m.stage = stageError
		m.errorMessage = llm.ErrGenerationFailed.Error()
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
		}
		return m, nil
	}
	m.deck = slides.NewDeck(msg.doc)
	m.stage = stageResult
	m.infoMessage = ""
	m.refreshSlide()
	return m, nil
}

func (m *model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "pgup", "shift+tab":
		m.moveSlide(m.deck.Prev)
	case "right", "l", "pgdown", " ", "tab":
		m.moveSlide(m.deck.Next)
	case "home", "g":
		m.moveSlide(func() bool { return m.deck.Go(0) })
	case "end", "G":
		m.moveSlide(func() bool { return m.deck.Go(slides.Count - 1) })
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		target := int(msg.Runes[0] - '1')
		if msg.Runes[0] == '0' {
			target = slides.Count - 1
		}
		m.moveSlide(func() bool { return m.deck.Go(target) })
	case "up", "k":
		m.viewport.LineUp(1)
	case "down", "j":
		m.viewport.LineDown(1)
	case "e":
		return m, m.startExport()
	case "r":
		if m.exporting {
			m.infoMessage = "Wait for the export to finish before starting over."
			return m, nil
		}
		m.reset()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) moveSlide(step func() bool) {
	if m.deck == nil {
		return
	}
	if step() {
		m.refreshSlide()
	}
}

func (m *model) startExport() tea.Cmd {
	if m.exporting || m.deck == nil {
		return nil
	}
	m.exporting = true
	m.infoMessage = "Rendering slides to PDF…"
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindExport, exportJob(m.config.Exporter, m.deck.Document())))
}

func (m *model) handleExportResult(msg exportResultMsg) (tea.Model, tea.Cmd) {
	m.exporting = false
	if msg.err != nil {
		m.log.Error("export failed", "error", msg.err)
		m.infoMessage = ""
		m.alertMessage = fmt.Sprintf("PDF export failed: %v", msg.err)
		return m, nil
	}
	m.infoMessage = fmt.Sprintf("Saved %d pages to %s", msg.result.Pages, msg.result.Path)
	return m, nil
}

func (m *model) handleAlertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.alertMessage = ""
	}
	return m, nil
}

func (m *model) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "t":
		m.retry()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// retry returns to the form keeping both inputs.
func (m *model) retry() {
	m.stage = stageInput
	m.errorMessage = ""
	m.focusField(fieldTitle)
}

// reset returns to an empty form and drops the document.
func (m *model) reset() {
	m.stage = stageInput
	m.deck = nil
	m.pendingTitle = ""
	m.infoMessage = ""
	m.errorMessage = ""
	m.validationMessage = ""
	m.titleInput.SetValue("")
	m.authorInput.SetValue("")
	m.viewport.SetContent("")
	m.focusField(fieldTitle)
}

func (m *model) focusField(field inputField) {
	m.focus = field
	if field == fieldTitle {
		m.titleInput.Focus()
		m.authorInput.Blur()
		return
	}
	m.authorInput.Focus()
	m.titleInput.Blur()
}

func (m *model) refreshSlide() {
	if m.deck == nil {
		return
	}
	m.viewport.SetContent(renderSlideBody(m.deck.Current(), m.layout.slideWidth))
	m.viewport.GotoTop()
}
