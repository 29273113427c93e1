// Package report renders the finalized aggregate into its three outputs: the
// knowledge-base markdown document, the refund-analysis markdown document,
// and the machine-readable training-data JSON.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/suporteware/chatminer/internal/aggregate"
	"github.com/suporteware/chatminer/internal/taxonomy"
)

// Character budgets for long text fields. Truncation always appends an
// explicit ellipsis marker.
const (
	problemBudget    = 200
	solutionBudget   = 300
	unresolvedBudget = 150
	complaintBudget  = 150
	exampleBudget    = 200
)

const timeLayout = "2006-01-02 15:04:05"

// Truncate cuts s to at most budget runes, appending "..." when it was cut.
func Truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget]) + "..."
}

// titleCase turns a snake_case tag into a display name, e.g. "access_issues"
// becomes "Access Issues".
func titleCase(tag string) string {
	words := strings.Split(tag, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func anchor(tag string) string {
	return strings.ReplaceAll(tag, "_", "-")
}

func pct(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// KnowledgeBase renders the customer-support knowledge-base document. The
// taxonomy supplies per-category descriptions; categories with no issues are
// omitted entirely.
func KnowledgeBase(rep *aggregate.Report, tax *taxonomy.Taxonomy, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Knowledge Base - Customer Support Issues & Solutions\n\n")
	fmt.Fprintf(&sb, "**Generated on:** %s\n\n", now.Format(timeLayout))
	sb.WriteString("**Purpose:** This document contains common customer issues and their proven solutions extracted from WhatsApp support conversations.\n\n")
	sb.WriteString("---\n\n## Table of Contents\n\n")

	for _, cat := range rep.Categories {
		if cat.Total == 0 {
			continue
		}
		fmt.Fprintf(&sb, "- [%s](#%s)\n", titleCase(cat.Tag), anchor(cat.Tag))
	}
	sb.WriteString("\n---\n\n")

	for _, cat := range rep.Categories {
		if cat.Total == 0 {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", titleCase(cat.Tag))
		if c := tax.CategoryByTag(cat.Tag); c != nil && c.Description != "" {
			fmt.Fprintf(&sb, "**Description:** %s\n\n", c.Description)
		}
		fmt.Fprintf(&sb, "**Total Issues:** %d | **Resolved:** %d | **Success Rate:** %s\n\n",
			cat.Total, cat.Resolved, pct(cat.SuccessRate))

		if len(cat.ResolvedExemplars) > 0 {
			sb.WriteString("### ✅ Resolved Issues & Solutions\n\n")
			for i, issue := range cat.ResolvedExemplars {
				fmt.Fprintf(&sb, "#### Issue #%d\n\n", i+1)
				fmt.Fprintf(&sb, "**Problem:** %s\n\n", Truncate(issue.Text, problemBudget))
				sb.WriteString("**Solutions Applied:**\n\n")
				for j, sol := range issue.Solutions {
					if j >= 3 {
						break
					}
					fmt.Fprintf(&sb, "%d. %s\n\n", j+1, Truncate(sol.Text, solutionBudget))
				}
				sb.WriteString("---\n\n")
			}
		}

		if len(cat.UnresolvedExemplars) > 0 {
			sb.WriteString("### ⚠️ Common Unresolved Issues (Needs Attention)\n\n")
			for i, issue := range cat.UnresolvedExemplars {
				fmt.Fprintf(&sb, "**%d.** %s\n\n", i+1, Truncate(issue.Text, unresolvedBudget))
			}
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString(usageGuidance)
	return sb.String()
}

// usageGuidance is the fixed closing section of the knowledge base.
const usageGuidance = `## 🤖 AI Training Guidelines

### How to Use This Knowledge Base:

1. **Issue Classification:** Use the categories above to classify incoming customer issues
2. **Solution Matching:** Match customer problems with similar resolved issues
3. **Response Templates:** Use the proven solutions as response templates
4. **Escalation Rules:** Unresolved issues may require human intervention

### Response Quality Indicators:
- Customer confirmation ("obrigado", "resolvido", "funcionou")
- No follow-up complaints
- Clear step-by-step instructions
- Relevant links or resources provided

---

*This knowledge base is automatically generated from real customer conversations and should be regularly updated.*
`
