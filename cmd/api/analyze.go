package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/career-architect/internal/dashboard"
	"alfredoptarigan/career-architect/internal/models"
	"alfredoptarigan/career-architect/internal/repositories"
	"alfredoptarigan/career-architect/internal/wizard"
)

var (
	analyzeProfileFile string
	analyzeRawJSON     bool
	analyzeTimeout     time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a profile file and print the dashboard",
	Long:  "Run a single career analysis for a UserProfile JSON file and print the dashboard, or the raw analysis with --json.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeProfileFile, "file", "f", "", "Path to UserProfile JSON file (required)")
	analyzeCmd.Flags().BoolVar(&analyzeRawJSON, "json", false, "Print the raw analysis JSON instead of the dashboard")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "Give up waiting after this long (0 waits for the model)")
	_ = analyzeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(analyzeCmd)
}

func readProfile(path string) (models.UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := models.NewUserProfile()
	if err := json.Unmarshal(data, &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	switch {
	case !profile.Proficiency.Valid():
		return models.UserProfile{}, fmt.Errorf("invalid proficiency %q", profile.Proficiency)
	case !profile.Timeline.Valid():
		return models.UserProfile{}, fmt.Errorf("invalid timeline %q", profile.Timeline)
	case !profile.LearningStyle.Valid():
		return models.UserProfile{}, fmt.Errorf("invalid learning style %q", profile.LearningStyle)
	}
	return profile, nil
}

// fillWizard replays a profile through the wizard and leaves it on the
// final step.
func fillWizard(profile models.UserProfile) func(w *wizard.Wizard) {
	return func(w *wizard.Wizard) {
		w.SetDegree(profile.Education.Degree)
		w.SetBranch(profile.Education.Branch)
		w.SetYear(profile.Education.Year)
		for _, skill := range profile.Skills {
			w.AddSkill(skill)
		}
		w.SetProficiency(profile.Proficiency)
		for _, role := range profile.TargetRoles {
			w.AddTargetRole(role)
		}
		w.SetAvailability(profile.Availability)
		w.SetTimeline(profile.Timeline)
		w.SetLearningStyle(profile.LearningStyle)
		for w.Step != wizard.LastStep {
			w.Advance()
		}
	}
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	profile, err := readProfile(analyzeProfileFile)
	if err != nil {
		return err
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if analyzeTimeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), analyzeTimeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()

	app, err := newStack(ctx, cfg, log, repositories.NewMemorySessionRepository(), 1)
	if err != nil {
		return err
	}
	defer app.Close()

	session, err := app.sessions.Create(ctx)
	if err != nil {
		return err
	}
	if _, err := app.sessions.EditWizard(ctx, session.ID, fillWizard(profile)); err != nil {
		return err
	}

	_, task, err := app.sessions.Submit(ctx, session.ID)
	if err != nil {
		return err
	}

	result, err := task.Wait(ctx)
	if err != nil {
		log.Debug("analysis failed", zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("analysis timed out after %s", analyzeTimeout)
		}
		return errors.New(models.AnalysisFailedMessage)
	}

	out := cmd.OutOrStdout()
	if analyzeRawJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return dashboard.Render(result).WriteText(out)
}
