package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/suporteware/chatminer/internal/aggregate"
)

func riskLabel(r aggregate.RiskTier) string {
	switch r {
	case aggregate.RiskHigh:
		return "🔴 High"
	case aggregate.RiskMedium:
		return "🟡 Medium"
	default:
		return "🟢 Low"
	}
}

func effectivenessLabel(rate float64) string {
	switch {
	case rate >= 0.70:
		return "🏆 Highly Effective"
	case rate >= 0.50:
		return "✅ Effective"
	default:
		return "⚠️ Needs Improvement"
	}
}

// RefundAnalysis renders the refund-analysis and retention document.
func RefundAnalysis(rep *aggregate.Report, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Refund Analysis & Customer Retention Knowledge Base\n\n")
	fmt.Fprintf(&sb, "**Generated on:** %s\n\n", now.Format(timeLayout))
	sb.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&sb, "- **Total Refund Requests Analyzed:** %d\n", rep.RefundCases)
	fmt.Fprintf(&sb, "- **Successfully Retained Customers:** %d\n", rep.RefundRetained)
	fmt.Fprintf(&sb, "- **Overall Retention Rate:** %s\n", pct(rep.OverallRetentionRate))
	sb.WriteString("- **Analysis Period:** Based on WhatsApp conversation data\n\n")
	sb.WriteString("---\n\n## 📊 Refund Reasons Analysis\n\n")

	for _, reason := range rep.RefundReasons {
		fmt.Fprintf(&sb, "### %s\n\n", titleCase(reason.Tag))
		fmt.Fprintf(&sb, "**Frequency:** %d cases (%s of all refunds)\n", reason.Total, pct(reason.Share))
		fmt.Fprintf(&sb, "**Retention Rate:** %s (%d/%d)\n", pct(reason.RetentionRate), reason.Retained, reason.Total)
		fmt.Fprintf(&sb, "**Risk Level:** %s\n\n", riskLabel(reason.Risk))

		if len(reason.Complaints) > 0 {
			sb.WriteString("#### Common Customer Complaints:\n")
			for i, complaint := range reason.Complaints {
				fmt.Fprintf(&sb, "%d. \"%s\"\n", i+1, Truncate(complaint, complaintBudget))
			}
		}

		if len(reason.StrategyWins) > 0 {
			sb.WriteString("\n#### ✅ Successful Retention Strategies:\n\n")
			for _, win := range reason.StrategyWins {
				fmt.Fprintf(&sb, "- **%s:** %d successful cases\n", titleCase(win.Tag), win.Count)
			}
		}

		sb.WriteString("\n---\n\n")
	}

	sb.WriteString("## 🎯 Most Effective Retention Strategies\n\n")
	for _, st := range rep.Strategies {
		fmt.Fprintf(&sb, "### %s\n", titleCase(st.Tag))
		fmt.Fprintf(&sb, "**Success Rate:** %s (%d/%d attempts)\n", pct(st.SuccessRate), st.Retained, st.Attempts)
		fmt.Fprintf(&sb, "**Effectiveness:** %s\n\n", effectivenessLabel(st.SuccessRate))
		if st.Example != "" {
			fmt.Fprintf(&sb, "**Example Response:** \"%s\"\n\n", Truncate(st.Example, exampleBudget))
		}
		sb.WriteString("---\n\n")
	}

	sb.WriteString("## 🛤️ Customer Sentiment Journey Analysis\n\n### Typical Sentiment Progression:\n\n")
	for _, tr := range rep.Transitions {
		fmt.Fprintf(&sb, "- **%s:** %d cases, %s retention rate\n", tr.Pattern, tr.Cases, pct(tr.RetentionRate))
	}

	sb.WriteString("\n---\n\n*This analysis is based on real customer conversations and should be updated regularly to reflect current trends.*\n")
	return sb.String()
}
