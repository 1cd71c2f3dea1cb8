package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robby/nhp/internal/auth"
	"github.com/robby/nhp/internal/habits"
	"github.com/robby/nhp/internal/notion"
	"github.com/robby/nhp/internal/tui"
)

var (
	// CLI flags
	typeFlag    string
	configFlag  string
	dryRunFlag  bool
	openFlag    bool
	verboseFlag bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nhp",
		Short: "Add habit record pages to Notion databases",
		Long: `nhp creates habit record pages in Notion habit tracker databases.

Each record is titled with the configured prefix and today's date, carries
a date field, and links the matching analytics page. Weekly records also
carry forward the most recent prior record.

Authentication:
  1. Environment variable: set NOTION_API_KEY
  2. Token file: write the integration secret to ~/.config/nhp/token

The integration must have access to the habit and analytics databases.`,
		RunE: run,
	}

	// Define CLI flags
	rootCmd.Flags().StringVar(&typeFlag, "type", "", "Habit record type to add (e.g. daily, weekly). Omit for an interactive picker.")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "Path to a YAML configuration file.")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Print the request body instead of committing the record.")
	rootCmd.Flags().BoolVar(&openFlag, "open", false, "Open the created page in the browser.")
	rootCmd.Flags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging.")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log, err := newLogger(verboseFlag)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := habits.LoadConfig(configFlag)
	if err != nil {
		return err
	}

	pageType := typeFlag
	if pageType == "" {
		pageType, err = pickType(cfg)
		if err != nil {
			return err
		}
		if pageType == "" {
			// User quit the picker.
			return nil
		}
	}

	token, err := auth.GetToken()
	if err != nil {
		return err
	}
	client := notion.NewClient(token, notion.WithLogger(log))

	ctx := context.Background()
	builder := habits.NewBuilder(client, cfg, log)
	record, err := builder.BuildPage(ctx, pageType)
	if err != nil {
		return err
	}

	if dryRunFlag {
		body, err := record.RequestBody()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	id, err := record.Commit(ctx)
	if err != nil {
		return err
	}
	log.Infow("created habit record", "type", pageType, "id", id)

	fmt.Print(tui.RenderSummary(tui.Summary{
		Title:       record.Name(),
		PageID:      id,
		URL:         record.URL,
		Database:    record.Parent().Title,
		Description: record.Parent().Description,
	}))

	if openFlag && record.URL != "" {
		_ = browser.OpenURL(record.URL)
	}
	return nil
}

// pickType runs the interactive habit-type picker. Returns an empty
// string when the user quits without choosing.
func pickType(cfg habits.Config) (string, error) {
	model, err := tea.NewProgram(tui.NewPickerModel(cfg)).Run()
	if err != nil {
		return "", fmt.Errorf("picker error: %w", err)
	}
	picker, ok := model.(tui.PickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected picker model type %T", model)
	}
	return picker.Choice(), nil
}

// newLogger builds the application logger: a development config on
// --verbose, production otherwise.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stderr"}
		logger, err = z.Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}
