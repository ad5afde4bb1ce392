package core

// Chart palettes for the category pie. Highlighted categories tint red, the
// rest stay grey; each group cycles its own palette when it runs out.
var (
	greyPalette = []string{"#CCCCCC", "#AAAAAA", "#888888", "#666666", "#555555", "#444444"}
	redPalette  = []string{"#FFCCCC", "#FF9999", "#FF6666", "#FF3333", "#DC143C", "#A01020"}

	highlightedCategories = map[string]bool{
		"Food":     true,
		"Shopping": true,
		"Travel":   true,
		"Bills":    true,
	}
)

// CategoryAmount is one expense bucket of the category breakdown.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// BreakDown reduces a single month's transactions into ordered expense
// buckets per category. Income records are skipped, empty labels merge into
// the DefaultCategory bucket (exact-string match, no case folding), and the
// bucket order is first-encountered input order.
func BreakDown(txs []Transaction) []CategoryAmount {
	sums := make(map[string]int64)
	order := make([]string, 0)

	for _, t := range txs {
		if t.Type != TypeExpense {
			continue
		}
		cat := t.Category
		if cat == "" {
			cat = DefaultCategory
		}
		if _, seen := sums[cat]; !seen {
			order = append(order, cat)
		}
		sums[cat] += t.Amount.Cents
	}

	out := make([]CategoryAmount, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryAmount{Name: cat, Amount: Money{Cents: sums[cat]}})
	}
	return out
}

// AssignColors maps category labels to chart colors. The assignment is a pure
// function of the labels and the highlighted-category membership: each label
// takes the next color from its group's palette in the order given, wrapping
// around when a group has more labels than colors. Identical label sequences
// always color identically.
func AssignColors(labels []string) []string {
	colors := make([]string, len(labels))
	greyIdx, redIdx := 0, 0
	for i, label := range labels {
		if highlightedCategories[label] {
			colors[i] = redPalette[redIdx%len(redPalette)]
			redIdx++
		} else {
			colors[i] = greyPalette[greyIdx%len(greyPalette)]
			greyIdx++
		}
	}
	return colors
}
