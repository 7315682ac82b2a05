package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kyotei-ai/kyotei-cli/internal/classify"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseVenuePick:
		return m.viewVenuePick()
	case phaseRacePick:
		return m.viewRacePick()
	case phaseAnalysis:
		return m.viewAnalysis()
	}
	return ""
}

func (m Model) viewVenuePick() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("🚤 競艇AI予想"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("会場を選択してください"))
	b.WriteString("\n")

	// Venues come in two columns of twelve so all 24 fit on one screen.
	const rows = 12
	var left, right []string
	for i, venue := range m.venues {
		label := fmt.Sprintf(" %-6s ", venue)
		if i == m.venueIndex {
			label = m.theme.Selected.Render(label)
		} else {
			label = m.theme.Normal.Render(label)
		}
		if i < rows {
			left = append(left, label)
		} else {
			right = append(right, label)
		}
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(left, "\n"),
		"   ",
		strings.Join(right, "\n"))
	b.WriteString(columns)
	b.WriteString("\n\n")
	b.WriteString(m.helpLine("↑/↓ 移動", "enter 決定", "q 終了"))
	return m.theme.Box.Render(b.String())
}

func (m Model) viewRacePick() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("🚤 " + m.selectedVenue()))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("レース番号を選択してください"))
	b.WriteString("\n")

	cells := make([]string, 0, model.MaxRaceNumber)
	for race := model.MinRaceNumber; race <= model.MaxRaceNumber; race++ {
		label := fmt.Sprintf(" %2dR ", race)
		if race == m.raceNumber {
			label = m.theme.Selected.Render(label)
		} else {
			label = m.theme.Normal.Render(label)
		}
		cells = append(cells, label)
	}
	b.WriteString(strings.Join(cells[:6], " "))
	b.WriteString("\n")
	b.WriteString(strings.Join(cells[6:], " "))
	b.WriteString("\n\n")
	b.WriteString(m.helpLine("←/→ 選択", "enter 分析開始", "esc 戻る", "q 終了"))
	return m.theme.Box.Render(b.String())
}

func (m Model) viewAnalysis() string {
	var b strings.Builder
	title := fmt.Sprintf("🚤 %s %dR", m.selectedVenue(), m.raceNumber)
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n")

	switch m.state.Kind {
	case model.ViewLoading:
		b.WriteString(m.viewLoading())
	case model.ViewFailed:
		b.WriteString(m.viewFailed())
	case model.ViewSkipRecommended:
		b.WriteString(m.viewSkip())
	case model.ViewDataInsufficient:
		b.WriteString(m.viewInsufficient())
	case model.ViewFullAnalysis:
		b.WriteString(m.viewFullAnalysis())
	}

	b.WriteString("\n\n")
	if m.state.Terminal() {
		b.WriteString(m.helpLine("r 再分析", "esc 戻る", "q 終了"))
	} else {
		b.WriteString(m.helpLine("esc 中断", "q 終了"))
	}
	return m.theme.Box.Render(b.String())
}

func (m Model) viewLoading() string {
	return fmt.Sprintf("%s %s",
		m.spinner.View(),
		m.theme.StatusPending.Render("AIがレースを分析しています..."))
}

func (m Model) viewFailed() string {
	var b strings.Builder
	b.WriteString(m.theme.StatusError.Render("❌ 分析失敗"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Normal.Render(m.state.Reason))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("r で再分析できます"))
	return m.theme.BorderedBox.Render(b.String())
}

func (m Model) viewSkip() string {
	var b strings.Builder
	b.WriteString(m.theme.StatusWarning.Render("⏭️ 見送り推奨"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Normal.Render("このレースは見送りを推奨します"))
	b.WriteString("\n\n")
	b.WriteString(m.statLine("安定度", fmt.Sprintf("%.0f%%", m.state.Stability)))
	b.WriteString("\n")
	b.WriteString(m.statLine("期待値", fmt.Sprintf("%+.1f%%", m.state.ExpectedValue)))
	if len(m.state.SkipReasons) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.theme.Bold.Render("理由"))
		for _, reason := range m.state.SkipReasons {
			b.WriteString("\n" + m.theme.Normal.Render("  • "+reason))
		}
	}
	return m.theme.BorderedBox.Render(b.String())
}

func (m Model) viewInsufficient() string {
	var b strings.Builder
	b.WriteString(m.theme.StatusWarning.Render("⚠️ 情報不足"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Normal.Render(m.state.Message))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("データ品質 %.0f%%", m.state.QualityScore*100)))
	return m.theme.BorderedBox.Render(b.String())
}

func (m Model) viewFullAnalysis() string {
	proj := classify.Project(m.state)
	badge := classify.BadgeFor(m.state.Category)

	var b strings.Builder

	header := m.state.Description
	if badge.Known {
		header = badge.Icon + " " + header
	}
	if header != "" {
		b.WriteString(m.theme.RiskStyle(badge.Risk).Render(header))
		b.WriteString("\n")
	}
	b.WriteString(m.statLine("安定度", fmt.Sprintf("%.0f%%", m.state.Stability)))
	b.WriteString("  ")
	b.WriteString(m.statLine("期待値", fmt.Sprintf("%+.1f%%", m.state.ExpectedValue)))

	if len(proj.HonmeiTop3) > 0 {
		b.WriteString("\n\n" + m.theme.Bold.Render("本命予想"))
		b.WriteString(m.renderPredictionLines(proj.HonmeiTop3))
	}
	if len(proj.ChuuaneTop3) > 0 {
		b.WriteString("\n\n" + m.theme.Bold.Render("中穴予想"))
		b.WriteString(m.renderPredictionLines(proj.ChuuaneTop3))
	}

	if len(proj.Tickets) > 0 {
		b.WriteString("\n\n" + m.theme.Bold.Render("🎫 推奨買い目"))
		if proj.Strategy != "" {
			b.WriteString("\n" + m.theme.Subtitle.Render(proj.Strategy))
		}
		for _, ticket := range proj.Tickets {
			line := fmt.Sprintf("  %-4s %-8s %6d円", ticket.Type, ticket.Combination, ticket.Amount)
			if ticket.Odds > 0 {
				line += fmt.Sprintf("  %.1f倍", ticket.Odds)
			}
			b.WriteString("\n" + m.theme.Normal.Render(line))
		}
		b.WriteString("\n" + m.theme.Bold.Render(fmt.Sprintf("  合計投資額: %.0f円", proj.TotalInvestment)))
	}

	return m.theme.BorderedBox.Render(b.String())
}

func (m Model) renderPredictionLines(lines []model.PredictionLine) string {
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(fmt.Sprintf("\n  %d. %s  信頼度 %.0f%%",
			i+1, formatBoats(line.Boats), line.Confidence))
	}
	return m.theme.Normal.Render(b.String())
}

func (m Model) statLine(label, value string) string {
	return m.theme.Subtitle.UnsetMargins().Render(label+": ") + m.theme.Normal.Render(value)
}

func (m Model) helpLine(entries ...string) string {
	return m.theme.StatusPending.Render(strings.Join(entries, "  •  "))
}

func formatBoats(boats []int) string {
	parts := make([]string, len(boats))
	for i, boat := range boats {
		parts[i] = fmt.Sprintf("%d", boat)
	}
	return strings.Join(parts, "-")
}
