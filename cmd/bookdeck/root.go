package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/csheth/bookdeck/internal/config"
	"github.com/csheth/bookdeck/internal/llm"
	"github.com/csheth/bookdeck/internal/logger"
	"github.com/csheth/bookdeck/internal/pdfexport"
	"github.com/csheth/bookdeck/internal/render"
	"github.com/csheth/bookdeck/internal/tui"
)

var (
	flagTitle       string
	flagAuthor      string
	flagModel       string
	flagOutDir      string
	flagConfigPath  string
	flagLogFile     string
	flagNoAltScreen bool

	appConfig config.Config
)

// newGenerator builds the research client. Tests swap it for a fake.
var newGenerator = func(ctx context.Context, cfg config.Config, log *logger.Logger) (llm.Client, error) {
	return llm.New(ctx, llm.Config{APIKey: cfg.APIKey, Model: cfg.Model, Logger: log})
}

var rootCmd = &cobra.Command{
	Use:   "bookdeck",
	Short: "Turn a book into a ten-slide infographic deck",
	Long: `BookDeck researches a book with Gemini and Google Search grounding,
shows the result as ten navigable slides and exports them to a landscape PDF.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigPath, "config", config.DefaultPath(), "path to the TOML config file")
	pf.StringVar(&flagModel, "model", "", "Gemini model to use")
	pf.StringVar(&flagOutDir, "out", "", "directory for exported PDFs")
	pf.StringVar(&flagLogFile, "log-file", "", "write logs to this file")
	pf.StringVar(&flagTitle, "title", "", "book title")
	pf.StringVar(&flagAuthor, "author", "", "book author")
	rootCmd.Flags().BoolVar(&flagNoAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
}

// loadConfig resolves file, environment and flags into appConfig. Flags win.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	appConfig = applyFlags(cmd, cfg)
	return nil
}

func applyFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("model") && flagModel != "" {
		cfg.Model = flagModel
	}
	if flags.Changed("out") && flagOutDir != "" {
		cfg.OutputDir = flagOutDir
	}
	if flags.Changed("log-file") && flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if flags.Changed("no-alt-screen") && flagNoAltScreen {
		cfg.AltScreen = false
	}
	return cfg
}

// app holds the wired runtime shared by the TUI and the export command.
type app struct {
	log       *logger.Logger
	generator llm.Client
	exporter  *pdfexport.Exporter
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	generator, err := newGenerator(ctx, cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	rasterizer, err := render.New(render.DefaultScale)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init renderer: %w", err)
	}
	log.Info("bookdeck starting", "model", cfg.Model, "out", cfg.OutputDir)
	return &app{
		log:       log,
		generator: generator,
		exporter:  &pdfexport.Exporter{Rasterizer: rasterizer, OutputDir: cfg.OutputDir, Logger: log},
	}, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	opts := []tea.ProgramOption{}
	if appConfig.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(tui.New(tui.Config{
		Generator: a.generator,
		Exporter:  a.exporter,
		Logger:    a.log,
		Title:     flagTitle,
		Author:    flagAuthor,
	}), opts...)

	if _, err := program.Run(); err != nil {
		a.log.Error("program error", "error", err)
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
