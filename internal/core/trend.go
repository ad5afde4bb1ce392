package core

// Trend holds three slot-aligned series over a month window, oldest first.
// All three slices always have the same length as the window.
type Trend struct {
	Labels  []string
	Income  []Money
	Expense []Money
}

// BuildTrend reduces per-month transaction lists into parallel income and
// expense series. byMonth is positionally aligned with window; a nil or short
// slot (a month whose fetch failed) contributes zero totals but keeps its
// place, so the series never lose alignment with the window.
func BuildTrend(window []MonthKey, byMonth [][]Transaction) Trend {
	t := Trend{
		Labels:  make([]string, len(window)),
		Income:  make([]Money, len(window)),
		Expense: make([]Money, len(window)),
	}
	for i, key := range window {
		t.Labels[i] = key.Label()
		if i >= len(byMonth) {
			continue
		}
		var income, expense int64
		for _, tx := range byMonth[i] {
			if tx.Type == TypeIncome {
				income += tx.Amount.Cents
			} else {
				expense += tx.Amount.Cents
			}
		}
		t.Income[i] = Money{Cents: income}
		t.Expense[i] = Money{Cents: expense}
	}
	return t
}
