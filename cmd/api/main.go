// Package main is the entry point for the Career Architect API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career-architect",
	Short: "Career Architect API and CLI",
	Long:  "Career Architect collects a three-step career profile, asks Gemini for a structured roadmap and renders it as a dashboard.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
