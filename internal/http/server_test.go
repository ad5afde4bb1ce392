package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pranithapadala/FinWell/internal/core"
	"github.com/pranithapadala/FinWell/internal/goals"
	"github.com/pranithapadala/FinWell/internal/services"
	"github.com/pranithapadala/FinWell/internal/storage"
)

type fakeDashboard struct {
	months map[core.MonthKey][]core.Transaction
	err    error
}

func (f *fakeDashboard) Transactions(ctx context.Context, month core.MonthKey) ([]core.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.months[month], nil
}

func (f *fakeDashboard) Summary(ctx context.Context, month core.MonthKey) (core.MonthSummary, error) {
	txs, err := f.Transactions(ctx, month)
	if err != nil {
		return core.MonthSummary{}, err
	}
	return core.Summarize(txs), nil
}

func (f *fakeDashboard) Breakdown(ctx context.Context, month core.MonthKey) (services.CategoryBreakdown, error) {
	txs, err := f.Transactions(ctx, month)
	if err != nil {
		return services.CategoryBreakdown{}, err
	}
	categories := core.BreakDown(txs)
	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = c.Name
	}
	return services.CategoryBreakdown{Categories: categories, Colors: core.AssignColors(labels)}, nil
}

func (f *fakeDashboard) Trend(ctx context.Context, end core.MonthKey) (core.Trend, error) {
	if f.err != nil {
		return core.Trend{}, f.err
	}
	window := core.Window(end, services.DefaultTrendMonths)
	byMonth := make([][]core.Transaction, len(window))
	for i, m := range window {
		byMonth[i] = f.months[m]
	}
	return core.BuildTrend(window, byMonth), nil
}

type fakeWriter struct {
	created core.Transaction
	deleted []string
	err     error
}

func (f *fakeWriter) Create(ctx context.Context, draft services.TransactionDraft) (core.Transaction, error) {
	if f.err != nil {
		return core.Transaction{}, f.err
	}
	return f.created, nil
}

func (f *fakeWriter) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestServer(t *testing.T, dash *fakeDashboard, writer *fakeWriter) *Server {
	t.Helper()
	if dash == nil {
		dash = &fakeDashboard{months: map[core.MonthKey][]core.Transaction{}}
	}
	if writer == nil {
		writer = &fakeWriter{}
	}
	tracker := goals.NewTracker(context.Background(), nil)
	srv := NewServer(":0", dash, writer, tracker)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func doRequest(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	if rec := doRequest(srv, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("/healthz status = %d", rec.Code)
	}
	if rec := doRequest(srv, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("/readyz status = %d", rec.Code)
	}
}

func TestHandleSummary(t *testing.T) {
	dash := &fakeDashboard{months: map[core.MonthKey][]core.Transaction{
		"2024-03": {
			{Date: "2024-03-01", Category: "Salary", Type: core.TypeIncome, Amount: core.Money{Cents: 300000}},
			{Date: "2024-03-02", Category: "Food", Type: core.TypeExpense, Amount: core.Money{Cents: 5000}},
		},
	}}
	srv := newTestServer(t, dash, nil)

	rec := doRequest(srv, http.MethodGet, "/api/summary?month=2024-03", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Month       string  `json:"month"`
		Income      float64 `json:"income"`
		Expense     float64 `json:"expense"`
		Balance     float64 `json:"balance"`
		TopCategory string  `json:"topCategory"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Month != "2024-03" || resp.Income != 3000 || resp.Expense != 50 || resp.Balance != 2950 {
		t.Fatalf("unexpected summary %+v", resp)
	}
	if resp.TopCategory != "Food" {
		t.Fatalf("topCategory = %q", resp.TopCategory)
	}
}

func TestHandleSummaryBadMonth(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	if rec := doRequest(srv, http.MethodGet, "/api/summary?month=March", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSummarySourceUnavailable(t *testing.T) {
	dash := &fakeDashboard{err: fmt.Errorf("fetch: %w", services.ErrSourceUnavailable)}
	srv := newTestServer(t, dash, nil)

	if rec := doRequest(srv, http.MethodGet, "/api/summary?month=2024-03", ""); rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestHandleBreakdown(t *testing.T) {
	dash := &fakeDashboard{months: map[core.MonthKey][]core.Transaction{
		"2024-03": {
			{Date: "2024-03-02", Category: "Food", Type: core.TypeExpense, Amount: core.Money{Cents: 5000}},
			{Date: "2024-03-03", Category: "Rent", Type: core.TypeExpense, Amount: core.Money{Cents: 90000}},
		},
	}}
	srv := newTestServer(t, dash, nil)

	rec := doRequest(srv, http.MethodGet, "/api/breakdown?month=2024-03", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp breakdownResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %+v", resp)
	}
	if resp.Categories[0].Name != "Food" || resp.Categories[0].Color == "" {
		t.Fatalf("unexpected first bucket %+v", resp.Categories[0])
	}
}

func TestHandleTrend(t *testing.T) {
	dash := &fakeDashboard{months: map[core.MonthKey][]core.Transaction{
		"2024-06": {{Date: "2024-06-10", Category: "Bills", Type: core.TypeExpense, Amount: core.Money{Cents: 7000}}},
	}}
	srv := newTestServer(t, dash, nil)

	rec := doRequest(srv, http.MethodGet, "/api/trend?month=2024-06", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp trendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Labels) != 6 || len(resp.Income) != 6 || len(resp.Expense) != 6 {
		t.Fatalf("expected 6 aligned slots, got %+v", resp)
	}
	if resp.Labels[5] != "Jun 2024" {
		t.Fatalf("labels = %v", resp.Labels)
	}
}

func TestHandleListTransactionsEmptyMonth(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := doRequest(srv, http.MethodGet, "/api/transactions?month=2024-03", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("empty month must serialize as [], got %s", got)
	}
}

func TestHandleCreateTransaction(t *testing.T) {
	writer := &fakeWriter{created: core.Transaction{ID: "tx-1", Date: "2024-03-15", Category: "Food", Type: core.TypeExpense, Amount: core.Money{Cents: 1250}}}
	srv := newTestServer(t, nil, writer)

	rec := doRequest(srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-15","category":"Food","type":"EXPENSE","amount":"12.50"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var tx core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tx.ID != "tx-1" || tx.Amount.Cents != 1250 {
		t.Fatalf("unexpected response %+v", tx)
	}
}

func TestHandleCreateTransactionInvalid(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"bad date", core.ErrInvalidDate},
		{"bad type", core.ErrInvalidType},
		{"bad amount", core.ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, nil, &fakeWriter{err: tc.err})
			rec := doRequest(srv, http.MethodPost, "/api/transactions", `{"date":"x"}`)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", rec.Code)
			}
		})
	}
}

func TestHandleCreateTransactionBadBody(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	if rec := doRequest(srv, http.MethodPost, "/api/transactions", "{not json"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleDeleteTransaction(t *testing.T) {
	writer := &fakeWriter{}
	srv := newTestServer(t, nil, writer)

	rec := doRequest(srv, http.MethodDelete, "/api/transactions/tx-1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(writer.deleted) != 1 || writer.deleted[0] != "tx-1" {
		t.Fatalf("deleted = %v", writer.deleted)
	}
}

func TestHandleDeleteTransactionNotFound(t *testing.T) {
	srv := newTestServer(t, nil, &fakeWriter{err: storage.ErrNotFound})
	if rec := doRequest(srv, http.MethodDelete, "/api/transactions/missing", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGoalLifecycle(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := doRequest(srv, http.MethodPost, "/api/goals", `{"name":"Trip","target":"1000","saved":"250"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created goalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Percent != 25 {
		t.Fatalf("percent = %v, want 25", created.Percent)
	}

	rec = doRequest(srv, http.MethodGet, "/api/goals", "")
	var listed []goalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("list = %+v", listed)
	}

	rec = doRequest(srv, http.MethodPatch, "/api/goals/"+created.ID, `{"saved":"007"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d", rec.Code)
	}
	var updated goalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Saved.Cents != 700 {
		t.Fatalf("saved = %d, want 700", updated.Saved.Cents)
	}

	// A blank edit retains the stored value.
	rec = doRequest(srv, http.MethodPatch, "/api/goals/"+created.ID, `{"saved":""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("blank patch status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Saved.Cents != 700 {
		t.Fatalf("saved = %d after blank edit, want 700", updated.Saved.Cents)
	}

	if rec := doRequest(srv, http.MethodDelete, "/api/goals/"+created.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := doRequest(srv, http.MethodDelete, "/api/goals/"+created.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestCreateGoalInvalid(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	if rec := doRequest(srv, http.MethodPost, "/api/goals", `{"name":"","target":"100"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if rec := doRequest(srv, http.MethodPost, "/api/goals", `{"name":"Trip","target":"-5"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestPatchUnknownGoal(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	if rec := doRequest(srv, http.MethodPatch, "/api/goals/missing", `{"saved":"5"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := doRequest(srv, http.MethodGet, "/api/summary?month=2024-03", "")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing nosniff header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("missing frame options header")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Fatalf("request 61 should be rejected")
	}
	// Other clients are unaffected.
	if !rl.allow("5.6.7.8") {
		t.Fatalf("separate client should be allowed")
	}
}

func TestWriteRateLimit(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	var last *httptest.ResponseRecorder
	for i := 0; i < 61; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(`{"name":"Trip","target":"100"}`))
		req.Header.Set("X-Forwarded-For", "9.9.9.9")
		last = httptest.NewRecorder()
		srv.Handler.ServeHTTP(last, req)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", last.Code)
	}
	if last.Header().Get("Retry-After") != "60" {
		t.Fatalf("missing Retry-After header")
	}
}
