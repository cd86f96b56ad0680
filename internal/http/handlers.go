package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/ledger"
	applog "spendlog/internal/log"
	"spendlog/internal/middleware/trace"
)

type messageRequest struct {
	Text string `json:"text"`
}

type tripleRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type expensesResponse struct {
	Records []core.ExpenseRecord `json:"records"`
	Total   string               `json:"total"`
}

type exportRow struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleMessage interprets a free-form message and records the expense.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	record, err := s.service.Record(r.Context(), req.Text)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to record expense",
			opFields(r, applog.OpRecord).WithError(err).ToSlice()...)
		writeError(w, http.StatusInternalServerError, "failed to record expense")
		return
	}

	fields := opFields(r, applog.OpRecord)
	fields[applog.FieldDate] = record.Date
	fields[applog.FieldAmount] = record.Amount
	slog.InfoContext(r.Context(), "Expense recorded", fields.ToSlice()...)

	writeJSON(w, http.StatusCreated, record)
}

// handleListExpenses returns the records of the requested view plus their
// running total.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	records, view, err := s.queryView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := opFields(r, applog.OpList)
	fields[applog.FieldView] = view
	slog.InfoContext(r.Context(), "Expenses listed", fields.ToSlice()...)

	writeJSON(w, http.StatusOK, expensesResponse{
		Records: records,
		Total:   ledger.Total(records),
	})
}

// handleExport returns the flat ordered triples of the requested view, the
// read contract for external export adapters.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	records, view, err := s.queryView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := opFields(r, applog.OpExport)
	fields[applog.FieldView] = view
	slog.InfoContext(r.Context(), "Expenses exported", fields.ToSlice()...)

	rows := make([]exportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, exportRow{
			Date:        rec.Date,
			Description: rec.Description,
			Amount:      rec.Amount,
		})
	}

	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	s.handleTombstone(w, r, applog.OpDelete, s.service.Delete)
}

func (s *Server) handleRestoreExpense(w http.ResponseWriter, r *http.Request) {
	s.handleTombstone(w, r, applog.OpRestore, s.service.Restore)
}

// handleTombstone handles delete and restore, which share the triple-keyed
// request shape. A miss is a silent no-op, so both always report success.
func (s *Server) handleTombstone(w http.ResponseWriter, r *http.Request, opName string, op func(ctx context.Context, date, description, amount string) error) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req tripleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	// Description may legitimately be empty; it is still part of the
	// identifying triple.
	if req.Date == "" || req.Amount == "" {
		writeError(w, http.StatusBadRequest, "date and amount are required")
		return
	}

	if err := op(r.Context(), req.Date, req.Description, req.Amount); err != nil {
		slog.ErrorContext(r.Context(), "Tombstone operation failed",
			opFields(r, opName).WithError(err).ToSlice()...)
		writeError(w, http.StatusInternalServerError, "operation failed")
		return
	}

	fields := opFields(r, opName)
	fields[applog.FieldDate] = req.Date
	fields[applog.FieldAmount] = req.Amount
	slog.InfoContext(r.Context(), "Tombstone updated", fields.ToSlice()...)

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryView resolves the view query parameter into ledger records.
// Period views default to the current day, week, month or year; explicit
// date, week, month and year parameters override them.
func (s *Server) queryView(r *http.Request) ([]core.ExpenseRecord, string, error) {
	lg := s.service.Ledger()
	ctx := r.Context()
	q := r.URL.Query()
	now := lg.Now()

	view := q.Get("view")
	if view == "" {
		view = "daily"
	}

	var (
		records []core.ExpenseRecord
		err     error
	)
	switch view {
	case "daily":
		day := now
		if v := q.Get("date"); v != "" {
			parsed, perr := core.ParseISODate(v)
			if perr != nil {
				return nil, view, fmt.Errorf("invalid date %q: want YYYY-MM-DD", v)
			}
			day = parsed
		}
		records, err = lg.OnDate(ctx, day)
	case "weekly":
		_, week := now.ISOWeek()
		if v := q.Get("week"); v != "" {
			parsed, perr := strconv.Atoi(v)
			if perr != nil || parsed < 1 || parsed > 53 {
				return nil, view, fmt.Errorf("invalid week %q", v)
			}
			week = parsed
		}
		records, err = lg.InISOWeek(ctx, week)
	case "monthly":
		month := now.Month()
		if v := q.Get("month"); v != "" {
			parsed, perr := strconv.Atoi(v)
			if perr != nil || parsed < 1 || parsed > 12 {
				return nil, view, fmt.Errorf("invalid month %q", v)
			}
			month = time.Month(parsed)
		}
		records, err = lg.InMonth(ctx, month)
	case "yearly":
		year := now.Year()
		if v := q.Get("year"); v != "" {
			parsed, perr := strconv.Atoi(v)
			if perr != nil {
				return nil, view, fmt.Errorf("invalid year %q", v)
			}
			year = parsed
		}
		records, err = lg.InYear(ctx, year)
	case "range":
		from, perr := core.ParseISODate(q.Get("from"))
		if perr != nil {
			return nil, view, fmt.Errorf("invalid from %q: want YYYY-MM-DD", q.Get("from"))
		}
		to, perr := core.ParseISODate(q.Get("to"))
		if perr != nil {
			return nil, view, fmt.Errorf("invalid to %q: want YYYY-MM-DD", q.Get("to"))
		}
		records, err = lg.InRange(ctx, from, to)
	case "all":
		records, err = lg.Active(ctx)
	case "deleted":
		records, err = lg.Trashed(ctx)
	default:
		return nil, view, fmt.Errorf("unknown view %q", view)
	}
	return records, view, err
}

// opFields seeds log fields shared by every handler-level log line.
func opFields(r *http.Request, op string) applog.LogFields {
	fields := applog.NewFields().
		WithComponent(applog.ComponentHTTP).
		WithOperation(op)
	fields[applog.FieldRequestID] = trace.GetRequestID(r.Context())
	return fields
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
