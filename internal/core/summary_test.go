package core

import (
	"encoding/json"
	"testing"
)

func expense(date, category string, cents int64) Transaction {
	return Transaction{Date: date, Category: category, Type: TypeExpense, Amount: Money{Cents: cents}}
}

func income(date string, cents int64) Transaction {
	return Transaction{Date: date, Category: "Salary", Type: TypeIncome, Amount: Money{Cents: cents}}
}

func TestSummarizeScenario(t *testing.T) {
	txs := []Transaction{
		expense("2024-01-01", "Food", 2000),
		expense("2024-01-01", "Rent", 8000),
		{Date: "2024-01-02", Category: "", Type: TypeIncome, Amount: Money{Cents: 50000}},
	}
	s := Summarize(txs)
	if s.Income.Cents != 50000 {
		t.Fatalf("income: expected 50000, got %d", s.Income.Cents)
	}
	if s.Expense.Cents != 10000 {
		t.Fatalf("expense: expected 10000, got %d", s.Expense.Cents)
	}
	if s.Balance.Cents != 40000 {
		t.Fatalf("balance: expected 40000, got %d", s.Balance.Cents)
	}
	if s.ActiveDayCount != 2 {
		t.Fatalf("activeDayCount: expected 2, got %d", s.ActiveDayCount)
	}
	if s.AvgDailySpend.Cents != 5000 {
		t.Fatalf("avgDailySpend: expected 5000, got %d", s.AvgDailySpend.Cents)
	}
	if s.TopCategory != "Rent" || s.TopCategoryAmount.Cents != 8000 {
		t.Fatalf("topCategory: expected Rent/8000, got %s/%d", s.TopCategory, s.TopCategoryAmount.Cents)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Balance.Cents != 0 {
		t.Fatalf("expected all-zero totals, got %+v", s)
	}
	if s.ActiveDayCount != 1 {
		t.Fatalf("empty input must pin activeDayCount to 1, got %d", s.ActiveDayCount)
	}
	if s.AvgDailySpend.Cents != 0 {
		t.Fatalf("avgDailySpend: expected 0, got %d", s.AvgDailySpend.Cents)
	}
	if s.TopCategory != NoTopCategory || s.TopCategoryAmount.Cents != 0 {
		t.Fatalf("expected sentinel top category, got %s/%d", s.TopCategory, s.TopCategoryAmount.Cents)
	}
}

func TestSummarizeBalanceInvariant(t *testing.T) {
	txs := []Transaction{
		income("2024-03-01", 123456),
		expense("2024-03-02", "Food", 789),
		expense("2024-03-03", "Bills", 100001),
	}
	s := Summarize(txs)
	if s.Balance.Cents != s.Income.Cents-s.Expense.Cents {
		t.Fatalf("balance drift: %d != %d - %d", s.Balance.Cents, s.Income.Cents, s.Expense.Cents)
	}
}

func TestSummarizeTopCategoryTieBreak(t *testing.T) {
	// Equal sums: the category whose first transaction appears earliest wins.
	txs := []Transaction{
		expense("2024-01-01", "Travel", 3000),
		expense("2024-01-02", "Food", 1000),
		expense("2024-01-03", "Food", 2000),
	}
	s := Summarize(txs)
	if s.TopCategory != "Travel" {
		t.Fatalf("tie must keep first-encountered category, got %s", s.TopCategory)
	}
}

func TestSummarizeEmptyCategoryNormalized(t *testing.T) {
	txs := []Transaction{
		expense("2024-01-01", "", 500),
		expense("2024-01-01", "", 700),
	}
	s := Summarize(txs)
	if s.TopCategory != DefaultCategory || s.TopCategoryAmount.Cents != 1200 {
		t.Fatalf("expected Other/1200, got %s/%d", s.TopCategory, s.TopCategoryAmount.Cents)
	}
}

func TestSummarizeMalformedAmountDegradesToZero(t *testing.T) {
	raw := `[
		{"date":"2024-01-01","category":"Food","type":"EXPENSE","amount":"oops"},
		{"date":"2024-01-01","category":"Food","type":"EXPENSE","amount":20}
	]`
	var txs []Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("malformed amount must not drop the record, got %d", len(txs))
	}
	s := Summarize(txs)
	if s.Expense.Cents != 2000 {
		t.Fatalf("expected 2000, got %d", s.Expense.Cents)
	}
	// Both records still count toward the active-day set.
	if s.ActiveDayCount != 1 {
		t.Fatalf("expected 1 active day, got %d", s.ActiveDayCount)
	}
}

func TestSummarizeZeroAmountsKeepFirstCategory(t *testing.T) {
	txs := []Transaction{
		expense("2024-01-01", "Health", 0),
		expense("2024-01-01", "Food", 0),
	}
	s := Summarize(txs)
	if s.TopCategory != "Health" || s.TopCategoryAmount.Cents != 0 {
		t.Fatalf("expected Health/0, got %s/%d", s.TopCategory, s.TopCategoryAmount.Cents)
	}
}
