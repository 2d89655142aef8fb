package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/result"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// JobPublisher schedules deferred manager runs on an external queue.
type JobPublisher interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type Handler struct {
	managerService *usecase.ManagerService
	reportService  *usecase.ReportService
	publisher      JobPublisher
	logger         *slog.Logger
	validator      *validator.Validate
	now            func() time.Time
}

func NewHandler(
	managerService *usecase.ManagerService,
	reportService *usecase.ReportService,
	publisher JobPublisher,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		managerService: managerService,
		reportService:  reportService,
		publisher:      publisher,
		logger:         logger,
		validator:      validator.New(),
		now:            time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", usecase.ErrInvalidInput, raw)
	}
	return date, nil
}

type resultRowDTO struct {
	Name         string `json:"name"`
	Numbers      []int  `json:"numbers"`
	LuckyStars   []int  `json:"luckyStars"`
	BallsMatched int    `json:"ballsMatched"`
	StarsMatched int    `json:"starsMatched"`
	MatchType    string `json:"matchType"`
	Prize        string `json:"prize"`
}

type historyEntryDTO struct {
	Interval string         `json:"interval"`
	PlayDate string         `json:"playDate"`
	Rows     []resultRowDTO `json:"rows"`
}

func toHistoryEntryDTO(entry result.HistoryEntry) historyEntryDTO {
	rows := make([]resultRowDTO, 0, len(entry.Rows))
	for _, row := range entry.Rows {
		rows = append(rows, resultRowDTO{
			Name:         row.Entry.Name,
			Numbers:      row.Entry.Numbers,
			LuckyStars:   row.Entry.LuckyStars,
			BallsMatched: row.Outcome.BallsMatched,
			StarsMatched: row.Outcome.StarsMatched,
			MatchType:    row.Outcome.MatchType,
			Prize:        row.Outcome.Prize.Format(),
		})
	}

	return historyEntryDTO{
		Interval: entry.Interval,
		PlayDate: entry.PlayDate,
		Rows:     rows,
	}
}
