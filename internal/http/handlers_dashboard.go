package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pranithapadala/FinWell/internal/core"
	"github.com/pranithapadala/FinWell/internal/services"
)

type summaryResponse struct {
	Month             core.MonthKey `json:"month"`
	Income            core.Money    `json:"income"`
	Expense           core.Money    `json:"expense"`
	Balance           core.Money    `json:"balance"`
	ActiveDayCount    int           `json:"activeDayCount"`
	AvgDailySpend     core.Money    `json:"avgDailySpend"`
	TopCategory       string        `json:"topCategory"`
	TopCategoryAmount core.Money    `json:"topCategoryAmount"`
}

type breakdownCategory struct {
	Name   string     `json:"name"`
	Amount core.Money `json:"amount"`
	Color  string     `json:"color"`
}

type breakdownResponse struct {
	Month      core.MonthKey       `json:"month"`
	Categories []breakdownCategory `json:"categories"`
}

type trendResponse struct {
	Labels  []string     `json:"labels"`
	Income  []core.Money `json:"income"`
	Expense []core.Money `json:"expense"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	sum, err := s.dashboard.Summary(r.Context(), month)
	if err != nil {
		s.writeDashboardError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Month:             month,
		Income:            sum.Income,
		Expense:           sum.Expense,
		Balance:           sum.Balance,
		ActiveDayCount:    sum.ActiveDayCount,
		AvgDailySpend:     sum.AvgDailySpend,
		TopCategory:       sum.TopCategory,
		TopCategoryAmount: sum.TopCategoryAmount,
	})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	bd, err := s.dashboard.Breakdown(r.Context(), month)
	if err != nil {
		s.writeDashboardError(w, r, err)
		return
	}

	categories := make([]breakdownCategory, len(bd.Categories))
	for i, c := range bd.Categories {
		categories[i] = breakdownCategory{Name: c.Name, Amount: c.Amount, Color: bd.Colors[i]}
	}
	writeJSON(w, http.StatusOK, breakdownResponse{Month: month, Categories: categories})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	end, err := parseMonthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	trend, err := s.dashboard.Trend(r.Context(), end)
	if err != nil {
		s.writeDashboardError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trendResponse{
		Labels:  trend.Labels,
		Income:  trend.Income,
		Expense: trend.Expense,
	})
}

func (s *Server) writeDashboardError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "Dashboard query failed", "url", r.URL.Path, "error", err)
	if errors.Is(err, services.ErrSourceUnavailable) {
		writeError(w, http.StatusBadGateway, "transaction source unavailable")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
