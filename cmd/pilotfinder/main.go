// Package main provides the entry point for the PilotFinder API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pilotfinder",
	Short: "PilotFinder API server",
	Long:  "PilotFinder helps entrepreneurs find their first pilot customers by running AI-driven market analysis over submitted business ideas.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
