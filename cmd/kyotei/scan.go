package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/kyotei-ai/kyotei-cli/internal/cli"
	"github.com/kyotei-ai/kyotei-cli/internal/common"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
	"github.com/kyotei-ai/kyotei-cli/internal/session"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Analyze every race at a venue",
		Long: `Run the analyzer over all 12 races at one venue and print a verdict
summary, so you can see at a glance which races are worth a closer look.

Requests are rate limited to keep the backend's scraper happy.`,
		RunE: runScan,
	}

	// Flags
	cmd.Flags().StringP("venue", "v", "", "venue name (required)")
	cmd.Flags().Duration("interval", 2*time.Second, "minimum time between requests")
	cmd.Flags().Bool("no-cache", false, "skip the local cache, always hit the backend")

	_ = cmd.MarkFlagRequired("venue")

	// Bind to viper
	_ = viper.BindPFlag("scan.interval", cmd.Flags().Lookup("interval"))

	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	venue, _ := cmd.Flags().GetString("venue")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	if !model.ValidVenue(venue) {
		return common.NewUserError(
			fmt.Sprintf("unknown venue %q; valid venues: %s", venue, strings.Join(model.Venues(), ", ")),
			common.ErrInvalidVenue)
	}

	analyzer, cleanup, err := newAnalyzer(noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	orchestrator := session.New(analyzer, nil)
	limiter := rate.NewLimiter(rate.Every(viper.GetDuration("scan.interval")), 1)

	totalRaces := model.MaxRaceNumber - model.MinRaceNumber + 1
	bar := progressbar.NewOptions(totalRaces,
		progressbar.OptionSetDescription(fmt.Sprintf("🚤 %s", venue)),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	states := make([]model.ViewState, 0, totalRaces)
	for race := model.MinRaceNumber; race <= model.MaxRaceNumber; race++ {
		if err := limiter.Wait(cmd.Context()); err != nil {
			return fmt.Errorf("scan interrupted: %w", err)
		}
		states = append(states, orchestrator.RunOnce(cmd.Context(), venue, race))
		_ = bar.Add(1)
	}

	fmt.Println(cli.RenderBox(cli.BoatIcon+" "+venue+" 全レース分析", renderScanSummary(states)))
	return nil
}

func renderScanSummary(states []model.ViewState) string {
	var b strings.Builder
	bettable := 0
	for i, state := range states {
		b.WriteString(summaryLine(model.MinRaceNumber+i, state))
		b.WriteString("\n")
		if state.Kind == model.ViewFullAnalysis {
			bettable++
		}
	}
	b.WriteString(fmt.Sprintf("\n勝負レース: %d / %d", bettable, len(states)))
	return b.String()
}

// summaryLine renders one race's verdict for the scan table.
func summaryLine(race int, state model.ViewState) string {
	switch state.Kind {
	case model.ViewFailed:
		return fmt.Sprintf("%2dR  %s %s", race, cli.ErrorIcon, state.Reason)
	case model.ViewSkipRecommended:
		return fmt.Sprintf("%2dR  %s 見送り (安定度 %.0f%%)", race, cli.SkipIcon, state.Stability)
	case model.ViewDataInsufficient:
		return fmt.Sprintf("%2dR  %s 情報不足 (品質 %.0f%%)", race, cli.WarningIcon, state.QualityScore*100)
	case model.ViewFullAnalysis:
		line := fmt.Sprintf("%2dR  %s 安定度 %.0f%%  期待値 %+.1f%%", race, cli.SuccessIcon, state.Stability, state.ExpectedValue)
		if badge := state.Category; badge != "" {
			line += "  " + badge
		}
		return line
	default:
		return fmt.Sprintf("%2dR  ?", race)
	}
}
