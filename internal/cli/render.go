package cli

import (
	"fmt"
	"strings"

	"github.com/kyotei-ai/kyotei-cli/internal/classify"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
)

// RenderViewState renders a terminal analysis state as styled plain output.
// Every view kind has exactly one render path.
func RenderViewState(state model.ViewState) string {
	switch state.Kind {
	case model.ViewLoading:
		return InfoStyle.Render("分析中...")
	case model.ViewFailed:
		return renderFailed(state)
	case model.ViewSkipRecommended:
		return renderSkip(state)
	case model.ViewDataInsufficient:
		return renderInsufficient(state)
	case model.ViewFullAnalysis:
		return renderFullAnalysis(state)
	default:
		return ErrorStyle.Render("unknown view state")
	}
}

func renderFailed(state model.ViewState) string {
	content := fmt.Sprintf("%s\n\n%s",
		ErrorStyle.Render(state.Reason),
		SubtleStyle.Render("分析をやり直すには再実行してください"))
	return RenderBox(ErrorIcon+" 分析失敗", content)
}

func renderSkip(state model.ViewState) string {
	var b strings.Builder
	b.WriteString(WarningStyle.Render("このレースは見送りを推奨します"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("安定度:  %.0f%%\n", state.Stability))
	b.WriteString(fmt.Sprintf("期待値:  %+.1f%%\n", state.ExpectedValue))

	if len(state.SkipReasons) > 0 {
		b.WriteString("\n理由:\n")
		for _, reason := range state.SkipReasons {
			b.WriteString("  • " + reason + "\n")
		}
	}

	return RenderBox(SkipIcon+" 見送り推奨", strings.TrimRight(b.String(), "\n"))
}

func renderInsufficient(state model.ViewState) string {
	content := fmt.Sprintf("%s\n\nデータ品質: %.0f%%",
		WarningStyle.Render(state.Message),
		state.QualityScore*100)
	return RenderBox(WarningIcon+" 情報不足", content)
}

func renderFullAnalysis(state model.ViewState) string {
	proj := classify.Project(state)
	badge := classify.BadgeFor(state.Category)

	var b strings.Builder

	header := state.Description
	if badge.Known {
		header = badge.Icon + " " + header
	}
	if header != "" {
		b.WriteString(BoldStyle.Render(header) + "\n")
	}
	b.WriteString(fmt.Sprintf("安定度 %.0f%%  期待値 %+.1f%%\n", state.Stability, state.ExpectedValue))

	if len(proj.HonmeiTop3) > 0 {
		b.WriteString("\n" + SubtitleStyle.UnsetMargins().Render("本命予想") + "\n")
		b.WriteString(renderPredictionLines(proj.HonmeiTop3))
	}
	if len(proj.ChuuaneTop3) > 0 {
		b.WriteString("\n" + SubtitleStyle.UnsetMargins().Render("中穴予想") + "\n")
		b.WriteString(renderPredictionLines(proj.ChuuaneTop3))
	}

	if len(proj.Tickets) > 0 {
		b.WriteString("\n" + SubtitleStyle.UnsetMargins().Render(TicketIcon+" 推奨買い目") + "\n")
		if proj.Strategy != "" {
			b.WriteString(SubtleStyle.Render(proj.Strategy) + "\n")
		}
		for _, ticket := range proj.Tickets {
			line := fmt.Sprintf("  %-4s %-8s %6d円", ticket.Type, ticket.Combination, ticket.Amount)
			if ticket.Odds > 0 {
				line += fmt.Sprintf("  %.1f倍", ticket.Odds)
			}
			if ticket.Purpose != "" {
				line += "  " + SubtleStyle.Render(ticket.Purpose)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString(fmt.Sprintf("  合計投資額: %.0f円\n", proj.TotalInvestment))
	}

	if len(state.DataQuality.Checks) > 0 || state.DataQuality.Score > 0 {
		b.WriteString("\n" + SubtleStyle.Render(fmt.Sprintf("データ品質 %.0f%%", state.DataQuality.Score*100)) + "\n")
	}

	title := fmt.Sprintf("%s %s %dR", BoatIcon, state.Venue, state.RaceNumber)
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

func renderPredictionLines(lines []model.PredictionLine) string {
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(fmt.Sprintf("  %d. %s  信頼度 %.0f%%\n", i+1, FormatBoats(line.Boats), line.Confidence))
	}
	return b.String()
}

// FormatBoats renders a finishing order like "1-2-3".
func FormatBoats(boats []int) string {
	parts := make([]string, len(boats))
	for i, boat := range boats {
		parts[i] = fmt.Sprintf("%d", boat)
	}
	return strings.Join(parts, "-")
}
