package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/budgetiq/budget-api/models"
)

// insightPriority is the single source of truth for the type→priority
// mapping. Priority is never stored next to an insight independently, so
// the two cannot drift apart.
var insightPriority = map[string]string{
	models.InsightBudgetWarning:   models.PriorityHigh,
	models.InsightWarning:         models.PriorityHigh,
	models.InsightSpendingPattern: models.PriorityMedium,
	models.InsightTrend:           models.PriorityMedium,
}

var priorityRank = map[string]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

func priorityFor(insightType string) string {
	if p, ok := insightPriority[insightType]; ok {
		return p
	}
	return models.PriorityLow
}

func newInsight(id, insightType, title, description string) models.Insight {
	return models.Insight{
		ID:          id,
		Type:        insightType,
		Priority:    priorityFor(insightType),
		Title:       title,
		Description: description,
	}
}

// listCategories joins up to 3 category names with ", " and appends "..."
// when more exist. Downstream display code relies on this exact format.
func listCategories(names []string) string {
	if len(names) <= 3 {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:3], ", ") + "..."
}

// ClassifyInsights turns budget aggregates plus raw transaction stats into a
// priority-ordered insight list (high → medium → low; insertion order within
// a band). The thresholds mirror the dashboard's long-standing behavior and
// are load-bearing: tests downstream assert on titles and formatting.
func ClassifyInsights(summary models.BudgetSummary, stats models.TransactionStats) []models.Insight {
	if len(summary.CategorySpending) == 0 && stats.Count == 0 {
		in := newInsight("no-data", models.InsightNoData, "No Budget Data",
			"Add budgets and record transactions to see insights here")
		in.Action = "Create your first budget"
		return []models.Insight{in}
	}

	var insights []models.Insight

	// Overall budget health.
	util := summary.OverallUtilization
	switch {
	case util > 90:
		in := newInsight("budget-health-danger", models.InsightBudgetWarning, "Budget Alert",
			"You've used over 90% of your total budget")
		in.Value = fmt.Sprintf("%.1f%%", util)
		in.Trend = "up"
		in.Action = "Consider reducing spending or adjusting budgets"
		insights = append(insights, in)
	case util > 75:
		in := newInsight("budget-health-warning", models.InsightSpendingPattern, "Budget Watch",
			"You're approaching your budget limits")
		in.Value = fmt.Sprintf("%.1f%%", util)
		in.Trend = "up"
		in.Action = "Monitor spending closely"
		insights = append(insights, in)
	case util > 0:
		in := newInsight("budget-health-good", models.InsightBudgetHealth, "Budget on Track",
			"Your spending is well within budget limits")
		in.Value = fmt.Sprintf("%.1f%%", util)
		in.Trend = "stable"
		in.Action = "Keep up the good work!"
		insights = append(insights, in)
	default:
		if len(summary.CategorySpending) > 0 {
			in := newInsight("no-spending", models.InsightDataQuality, "No Spending Recorded",
				"Budgets exist but no expenses have been recorded yet")
			insights = append(insights, in)
		}
	}

	var overBudget, nearLimit, underUtilized []string
	for _, cat := range summary.CategorySpending {
		switch {
		case cat.Percentage > 100:
			overBudget = append(overBudget, cat.CategoryName)
		case cat.Percentage > 80:
			nearLimit = append(nearLimit, cat.CategoryName)
		}
		if cat.Percentage > 0 && cat.Percentage < 50 {
			underUtilized = append(underUtilized, cat.CategoryName)
		}
	}

	if len(overBudget) > 0 {
		in := newInsight("over-budget", models.InsightWarning, "Over Budget Categories",
			fmt.Sprintf("%d categories are over budget", len(overBudget)))
		in.Value = listCategories(overBudget)
		in.Trend = "up"
		in.Action = "Review and adjust these category budgets"
		insights = append(insights, in)
	}

	if len(nearLimit) > 0 {
		in := newInsight("near-limit", models.InsightTrend, "Approaching Limits",
			fmt.Sprintf("%d categories are near their budget limits", len(nearLimit)))
		in.Value = listCategories(nearLimit)
		in.Trend = "up"
		in.Action = "Monitor these categories closely"
		insights = append(insights, in)
	}

	if len(underUtilized) > 0 {
		in := newInsight("under-utilized", models.InsightCategoryAlert, "Under-Utilized Budgets",
			fmt.Sprintf("%d categories are using less than 50%% of their budget", len(underUtilized)))
		in.Value = listCategories(underUtilized)
		in.Trend = "down"
		in.Action = "Consider reallocating funds to other categories"
		insights = append(insights, in)
	}

	// Highest spend; ties keep the first occurrence.
	if top := topSpendingCategory(summary.CategorySpending); top != nil && top.Spent.IsPositive() {
		in := newInsight("highest-spending", models.InsightCategoryAlert, "Top Spending Category",
			fmt.Sprintf("%s is your highest expense", top.CategoryName))
		in.Value = "$" + top.Spent.StringFixed(2)
		in.Trend = "up"
		in.Action = "Review if this aligns with your priorities"
		insights = append(insights, in)
	}

	// Lowest non-zero utilization.
	if eff := mostEfficientCategory(summary.CategorySpending); eff != nil {
		in := newInsight("most-efficient", models.InsightEfficiency, "Most Efficient Budget",
			fmt.Sprintf("%s has the lowest budget utilization", eff.CategoryName))
		in.Value = fmt.Sprintf("%.1f%%", eff.Percentage)
		insights = append(insights, in)
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return priorityRank[insights[i].Priority] < priorityRank[insights[j].Priority]
	})

	return insights
}

func topSpendingCategory(cats []models.CategorySpending) *models.CategorySpending {
	var top *models.CategorySpending
	for i := range cats {
		if top == nil || cats[i].Spent.GreaterThan(top.Spent) {
			top = &cats[i]
		}
	}
	return top
}

func mostEfficientCategory(cats []models.CategorySpending) *models.CategorySpending {
	var best *models.CategorySpending
	for i := range cats {
		if cats[i].Percentage <= 0 {
			continue
		}
		if best == nil || cats[i].Percentage < best.Percentage {
			best = &cats[i]
		}
	}
	return best
}
