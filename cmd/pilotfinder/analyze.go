package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/pilotfinder/internal/agent"
	"github.com/jonathan/pilotfinder/internal/analysis"
	"github.com/jonathan/pilotfinder/internal/config"
	"github.com/jonathan/pilotfinder/internal/llm"
	"github.com/jonathan/pilotfinder/internal/research"
)

var (
	analyzeName        string
	analyzeDescription string
	analyzeConfig      string
	analyzeVerbose     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a single onboarding analysis from the command line",
	Long:  "Runs the onboarding agent synchronously for one business and prints the narrative and the fields extracted from it. No database is required.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeName, "name", "n", "", "Business name (required)")
	analyzeCmd.Flags().StringVarP(&analyzeDescription, "description", "d", "", "Business description (required)")
	analyzeCmd.Flags().StringVarP(&analyzeConfig, "config", "c", "", "Path to a JSON config file")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Enable verbose logging")
	_ = analyzeCmd.MarkFlagRequired("name")
	_ = analyzeCmd.MarkFlagRequired("description")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(analyzeConfig)
	if err != nil {
		return err
	}
	if analyzeVerbose {
		cfg.Verbose = true
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("gemini_api_key is required (set GEMINI_API_KEY)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AgentTimeout())
	defer cancel()

	client, err := llm.NewClient(ctx, &llm.Config{
		Provider:    llm.ProviderGemini,
		Model:       cfg.Model,
		Temperature: llm.DefaultTemperature,
	}, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	var searcher agent.Searcher
	if cfg.SearchEnabled() {
		s, err := research.NewSearcher(ctx, cfg.SearchAPIKey, cfg.SearchEngineID)
		if err != nil {
			return fmt.Errorf("failed to create searcher: %w", err)
		}
		searcher = s
	} else {
		fmt.Println("Web search not configured; running prompt-only analysis")
	}

	a := agent.New(client, searcher, nil, agent.Options{
		MaxQueries: cfg.MaxResearchQueries,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})

	fmt.Printf("Analyzing %q...\n\n", analyzeName)
	start := time.Now()

	narrative, err := a.Generate(ctx, uuid.Nil, analyzeName, analyzeDescription)
	if err != nil {
		return err
	}

	result := analysis.Parse(narrative)

	fmt.Println("=== Assessment ===")
	fmt.Println(narrative)
	fmt.Println()
	fmt.Println("=== Extracted fields ===")
	fmt.Printf("Market viability: %s\n", result.MarketViability)
	fmt.Printf("Market size:      %s\n", result.MarketSize)
	fmt.Printf("Recommendations:  %s\n", result.Recommendations)
	fmt.Printf("Leads:            %d\n", len(result.Leads))
	fmt.Printf("\nCompleted in %s\n", time.Since(start).Round(time.Second))
	return nil
}
