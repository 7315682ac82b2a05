package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kyotei-ai/kyotei-cli/internal/cli"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show prediction statistics",
		Long: `Show aggregate prediction statistics.

By default the backend's own counters are shown. The backend only keeps
its most recent predictions in memory, so --local reads the full history
this client has recorded instead.`,
		RunE: runStats,
	}

	cmd.Flags().Bool("local", false, "aggregate the local history instead of asking the backend")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	local, _ := cmd.Flags().GetBool("local")
	if local {
		return runLocalStats(cmd)
	}
	return runBackendStats(cmd)
}

func runBackendStats(cmd *cobra.Command) error {
	stats, err := newClient().Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch backend stats: %w", err)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("予想総数:    %d\n", stats.TotalPredictions))
	b.WriteString(fmt.Sprintf("的中対象:    %d\n", stats.SuccessfulPredictions))
	b.WriteString(fmt.Sprintf("見送り:      %d\n", stats.SkippedRaces))
	if stats.DemoModePredictions > 0 {
		b.WriteString(fmt.Sprintf("デモモード:  %d\n", stats.DemoModePredictions))
	}
	b.WriteString(fmt.Sprintf("平均安定度:  %.1f%%\n", stats.AverageStability))
	b.WriteString(renderCategoryDistribution(stats.CategoryDistribution))

	fmt.Println(cli.RenderBox(cli.ChartIcon+" バックエンド統計", strings.TrimRight(b.String(), "\n")))
	return nil
}

func runLocalStats(cmd *cobra.Command) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to aggregate local history: %w", err)
	}

	if stats.TotalAnalyses == 0 {
		fmt.Println(cli.FormatInfo("まだ分析履歴がありません。'kyotei analyze' から始めてください。"))
		return nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("分析総数:    %d\n", stats.TotalAnalyses))
	b.WriteString(fmt.Sprintf("予想成立:    %d\n", stats.SuccessfulAnalyses))
	b.WriteString(fmt.Sprintf("見送り:      %d\n", stats.SkippedRaces))
	b.WriteString(fmt.Sprintf("情報不足:    %d\n", stats.InsufficientData))
	b.WriteString(fmt.Sprintf("結果登録:    %d\n", stats.RegisteredResults))
	if stats.SuccessfulAnalyses > 0 {
		b.WriteString(fmt.Sprintf("平均安定度:  %.1f%%\n", stats.AverageStability))
	}
	b.WriteString(renderCategoryDistribution(stats.CategoryDistribution))
	if !stats.FirstAnalysis.IsZero() {
		b.WriteString(fmt.Sprintf("期間:        %s 〜 %s\n",
			stats.FirstAnalysis.Format("2006-01-02"), stats.LastAnalysis.Format("2006-01-02")))
	}

	fmt.Println(cli.RenderBox(cli.ChartIcon+" ローカル統計", strings.TrimRight(b.String(), "\n")))
	return nil
}

func renderCategoryDistribution(distribution map[string]int) string {
	if len(distribution) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("カテゴリ内訳:\n")
	// Fixed order so the known categories always read the same way.
	for _, category := range []string{"stable", "mixed", "upset"} {
		if count, ok := distribution[category]; ok {
			b.WriteString(fmt.Sprintf("  %-8s %d\n", category, count))
		}
	}
	for category, count := range distribution {
		switch category {
		case "stable", "mixed", "upset":
		default:
			b.WriteString(fmt.Sprintf("  %-8s %d\n", category, count))
		}
	}
	return b.String()
}
