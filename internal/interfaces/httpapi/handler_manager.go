package httpapi

import (
	"fmt"
	"net/http"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/usecase"
)

type runDrawRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type runBetweenRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

// RunDrawJob checks the syndicate's numbers against the draw for the
// Friday on or before the given date (today when absent).
func (h *Handler) RunDrawJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDrawJob")
	defer span.End()

	var req runDrawRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	runDate := h.now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		runDate = parsed
	}

	entry, err := h.managerService.RunDraw(ctx, runDate)
	if err != nil {
		h.logger.ErrorContext(ctx, "run draw job failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toHistoryEntryDTO(entry))
}

// RunBetweenJob evaluates every weekly draw in [from, to].
func (h *Handler) RunBetweenJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBetweenJob")
	defer span.End()

	var req runBetweenRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := parseDate(req.To)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.managerService.RunBetween(ctx, from, to)
	if err != nil {
		h.logger.ErrorContext(ctx, "run between job failed", "from", req.From, "to", req.To, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toHistoryEntryDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
