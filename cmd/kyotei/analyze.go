package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kyotei-ai/kyotei-cli/internal/cli"
	"github.com/kyotei-ai/kyotei-cli/internal/common"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
	"github.com/kyotei-ai/kyotei-cli/internal/session"
	"github.com/kyotei-ai/kyotei-cli/internal/tui"
	"github.com/kyotei-ai/kyotei-cli/internal/tui/themes"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a race interactively or from flags",
		Long: `Request an AI analysis for one race.

Without flags an interactive picker opens. With --venue and --race the
analysis starts immediately; add --plain for non-interactive output.`,
		RunE: runAnalyze,
	}

	// Flags
	cmd.Flags().StringP("venue", "v", "", "venue name (e.g. 住之江)")
	cmd.Flags().IntP("race", "r", 0, "race number (1-12)")
	cmd.Flags().Bool("plain", false, "print the result instead of opening the TUI")
	cmd.Flags().Bool("no-cache", false, "skip the local cache, always hit the backend")
	cmd.Flags().String("theme", "default", "TUI theme (default, catppuccin-mocha)")

	// Bind to viper
	_ = viper.BindPFlag("analyze.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	venue, _ := cmd.Flags().GetString("venue")
	race, _ := cmd.Flags().GetInt("race")
	plain, _ := cmd.Flags().GetBool("plain")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	if venue != "" && !model.ValidVenue(venue) {
		return common.NewUserError(
			fmt.Sprintf("unknown venue %q; valid venues: %s", venue, strings.Join(model.Venues(), ", ")),
			common.ErrInvalidVenue)
	}
	if race != 0 && !model.ValidRaceNumber(race) {
		return common.NewUserError(
			fmt.Sprintf("race number must be between %d and %d", model.MinRaceNumber, model.MaxRaceNumber),
			common.ErrInvalidRaceNumber)
	}

	analyzer, cleanup, err := newAnalyzer(noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	if plain {
		if venue == "" || race == 0 {
			return common.NewUserError("--plain requires both --venue and --race", common.ErrMissingConfig)
		}
		state := session.New(analyzer, nil).RunOnce(cmd.Context(), venue, race)
		fmt.Println(cli.RenderViewState(state))
		return nil
	}

	opts := []tui.Option{
		tui.WithAnalyzer(analyzer),
		tui.WithTheme(themes.GetTheme(viper.GetString("analyze.theme"))),
	}
	if venue != "" && race != 0 {
		opts = append(opts, tui.WithRace(venue, race))
	}
	return tui.Run(cmd.Context(), opts...)
}
