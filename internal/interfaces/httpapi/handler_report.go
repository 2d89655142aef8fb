package httpapi

import (
	"net/http"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/report"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/usecase"
)

type overviewRowDTO struct {
	Interval           string  `json:"interval"`
	PlayDate           string  `json:"playDate"`
	Winnings           float64 `json:"winnings"`
	NumPlayers         int     `json:"numPlayers"`
	WinningPerPerson   float64 `json:"winningPerPerson"`
	WinningDescription string  `json:"winningDescription"`
}

type breakdownRowDTO struct {
	Interval string              `json:"interval"`
	PlayDate string              `json:"playDate"`
	Values   map[string]*float64 `json:"values"`
}

type breakdownDTO struct {
	Players []string          `json:"players"`
	Rows    []breakdownRowDTO `json:"rows"`
}

type summaryRowDTO struct {
	Interval string             `json:"interval"`
	Totals   map[string]float64 `json:"totals"`
}

type cumulativeReportDTO struct {
	Overview  []overviewRowDTO `json:"overview"`
	Breakdown *breakdownDTO    `json:"breakdown,omitempty"`
	Summary   []summaryRowDTO  `json:"summary"`
}

// ProduceReport folds the whole stored history into the cumulative report.
// Serves both the internal cumulate job and the public read endpoint.
func (h *Handler) ProduceReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProduceReport")
	defer span.End()

	rep, err := h.reportService.ProduceCumulativeReport(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "produce cumulative report failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toCumulativeReportDTO(rep))
}

func toCumulativeReportDTO(rep usecase.CumulativeReport) cumulativeReportDTO {
	overview := make([]overviewRowDTO, 0, len(rep.Overview))
	for _, row := range rep.Overview {
		overview = append(overview, overviewRowDTO{
			Interval:           row.Interval,
			PlayDate:           row.PlayDate,
			Winnings:           row.TotalWinnings,
			NumPlayers:         row.NumPlayers,
			WinningPerPerson:   row.WinningPerPerson,
			WinningDescription: row.WinningDescription,
		})
	}

	summary := make([]summaryRowDTO, 0, len(rep.Summary))
	for _, row := range rep.Summary {
		summary = append(summary, summaryRowDTO{Interval: row.Interval, Totals: row.Totals})
	}

	out := cumulativeReportDTO{Overview: overview, Summary: summary}
	if rep.Breakdown != nil {
		out.Breakdown = toBreakdownDTO(rep.Breakdown)
	}
	return out
}

// Absent players serialize as null so "did not play" stays distinct from a
// played draw that won nothing.
func toBreakdownDTO(breakdown *report.Breakdown) *breakdownDTO {
	rows := make([]breakdownRowDTO, 0, len(breakdown.Rows))
	for _, row := range breakdown.Rows {
		values := make(map[string]*float64, len(row.Values))
		for player, value := range row.Values {
			if value.Present {
				amount := value.Amount
				values[player] = &amount
			} else {
				values[player] = nil
			}
		}
		rows = append(rows, breakdownRowDTO{Interval: row.Interval, PlayDate: row.PlayDate, Values: values})
	}

	return &breakdownDTO{Players: breakdown.Players, Rows: rows}
}
