package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"

	"github.com/fieldsheet/fieldsheet/internal/ai"
	"github.com/fieldsheet/fieldsheet/internal/config"
	"github.com/fieldsheet/fieldsheet/internal/timesheet"
	"github.com/fieldsheet/fieldsheet/internal/timeutil"
	"github.com/fieldsheet/fieldsheet/internal/tui"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	flagDate    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fieldsheet",
	Short: "Field-service timesheet with AI summaries",
	Long: "fieldsheet records per-day job times for a field-service crew, applies the " +
		"lunch and travel deduction rules, and turns the week into reports, CSV exports, " +
		"and AI-written summaries. The sheet lives in memory for the session.",
	RunE: runSession,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open the config file in your editor",
	RunE:  runConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fieldsheet version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("fieldsheet " + version)
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagDate, "date", "", `Date to open, ISO or natural ("yesterday", "last monday")`)
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	if !flagVerbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func newAIProvider(cfg *config.Config, logger *slog.Logger) ai.Provider {
	switch cfg.AI.Provider {
	case "openai":
		return ai.NewOpenAI(cfg.AI.APIKey, cfg.AI.Model, logger)
	default:
		return ai.NewOllama(ai.OllamaConfig{
			Endpoint:   cfg.AI.Endpoint,
			Model:      cfg.AI.Model,
			MaxRetries: 1,
		}, logger)
	}
}

// parseDate accepts an ISO date or natural language relative to now.
func parseDate(s string) (string, error) {
	if s == "" {
		return time.Now().Format(timeutil.DateLayout), nil
	}
	if timeutil.ValidDate(s) {
		return s, nil
	}
	t, err := naturaldate.Parse(s, time.Now(), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return "", fmt.Errorf("cannot parse date %q: %w", s, err)
	}
	return t.Format(timeutil.DateLayout), nil
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	date, err := parseDate(flagDate)
	if err != nil {
		return err
	}

	logger := newLogger()
	store := timesheet.NewStore(cfg.Employee.Name, cfg.Employee.Truck)
	provider := newAIProvider(cfg, logger)

	app := tui.NewApp(store, provider, cfg, date, logger)
	p := tea.NewProgram(app)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data := fmt.Sprintf(`[employee]
name = "%s"
truck = "%s"

[ai]
provider = "%s"
model = "%s"
endpoint = "%s"
api_key = "%s"

[email]
recipient = "%s"

[export]
dir = "%s"
`,
			cfg.Employee.Name,
			cfg.Employee.Truck,
			cfg.AI.Provider,
			cfg.AI.Model,
			cfg.AI.Endpoint,
			cfg.AI.APIKey,
			cfg.Email.Recipient,
			cfg.Export.Dir,
		)
		if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editor, []string{editor, configPath}, &proc)
	if err != nil {
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}
