package core

// NoTopCategory is the sentinel label reported when a month has no expenses.
const NoTopCategory = "—"

// MonthSummary holds the KPI figures derived from one month's transactions.
type MonthSummary struct {
	Income            Money
	Expense           Money
	Balance           Money
	ActiveDayCount    int
	AvgDailySpend     Money
	TopCategory       string
	TopCategoryAmount Money
}

// Summarize reduces a single month's transactions into the dashboard KPIs in
// one pass. Degenerate input never fails: an empty list yields zero figures
// with ActiveDayCount pinned to 1 so the daily average stays defined, and a
// month without expenses reports the NoTopCategory sentinel.
func Summarize(txs []Transaction) MonthSummary {
	var income, expense int64
	days := make(map[string]struct{}, len(txs))
	catSums := make(map[string]int64)
	catOrder := make([]string, 0)

	for _, t := range txs {
		days[t.Date] = struct{}{}
		if t.Type == TypeIncome {
			income += t.Amount.Cents
			continue
		}
		expense += t.Amount.Cents
		cat := t.Category
		if cat == "" {
			cat = DefaultCategory
		}
		if _, seen := catSums[cat]; !seen {
			catOrder = append(catOrder, cat)
		}
		catSums[cat] += t.Amount.Cents
	}

	dayCount := len(days)
	if dayCount == 0 {
		dayCount = 1
	}

	// Ties keep the category first encountered in input order, so the scan
	// follows catOrder rather than map iteration.
	top := NoTopCategory
	var topAmount int64
	if len(catOrder) > 0 {
		top = catOrder[0]
		topAmount = catSums[top]
		for _, cat := range catOrder[1:] {
			if catSums[cat] > topAmount {
				top = cat
				topAmount = catSums[cat]
			}
		}
	}

	return MonthSummary{
		Income:            Money{Cents: income},
		Expense:           Money{Cents: expense},
		Balance:           Money{Cents: income - expense},
		ActiveDayCount:    dayCount,
		AvgDailySpend:     Money{Cents: divRoundHalfUp(expense, int64(dayCount))},
		TopCategory:       top,
		TopCategoryAmount: Money{Cents: topAmount},
	}
}

// divRoundHalfUp divides non-negative cents with half-up rounding.
func divRoundHalfUp(cents, n int64) int64 {
	if n <= 0 {
		return 0
	}
	return (cents + n/2) / n
}
