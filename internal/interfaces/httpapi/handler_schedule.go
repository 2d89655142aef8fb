package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/usecase"
)

type publishScheduleRequest struct {
	Date         string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DelaySeconds int    `json:"delaySeconds" validate:"omitempty,min=0"`
}

// PublishSchedule enqueues a deferred run-draw callback on the job queue.
// The deduplication id is derived from the resolved draw date, so
// re-publishing the same week's run is a no-op on the queue side.
func (h *Handler) PublishSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishSchedule")
	defer span.End()

	if h.publisher == nil {
		writeError(ctx, w, fmt.Errorf("%w: job queue is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req publishScheduleRequest
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

	drawDate := draw.LastFriday(runDate)
	deduplicationID := "run-draw-" + draw.FileLabel(drawDate)
	payload := map[string]string{"date": runDate.Format("2006-01-02")}

	if err := h.publisher.Enqueue(ctx, "/v1/internal/jobs/run-draw", payload,
		time.Duration(req.DelaySeconds)*time.Second, deduplicationID); err != nil {
		h.logger.ErrorContext(ctx, "publish schedule failed", "draw_date", draw.DateLabel(drawDate), "error", err)
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err))
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{
		"drawDate":        draw.DateLabel(drawDate),
		"deduplicationId": deduplicationID,
	})
}
