package httpapi

import (
	"fmt"
	"net/http"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/usecase"
)

type selectionEntryDTO struct {
	Name       string `json:"name" validate:"required"`
	Numbers    []int  `json:"numbers" validate:"required"`
	LuckyStars []int  `json:"luckyStars" validate:"required"`
}

type updateSelectionsRequest struct {
	Entries []selectionEntryDTO `json:"entries" validate:"required,min=1,dive"`
}

// UpdateSelections stores the submitted number picks, replacing same-named
// players and leaving everyone else untouched. Responds with the stored
// selection set after the update.
func (h *Handler) UpdateSelections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSelections")
	defer span.End()

	var req updateSelectionsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	entries := make([]selection.Entry, 0, len(req.Entries))
	for _, dto := range req.Entries {
		entries = append(entries, selection.Entry{
			Name:       dto.Name,
			Numbers:    dto.Numbers,
			LuckyStars: dto.LuckyStars,
		})
	}

	stored, err := h.managerService.UpdateSelections(ctx, entries)
	if err != nil {
		h.logger.ErrorContext(ctx, "update selections failed", "entries", len(entries), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]selectionEntryDTO, 0, len(stored))
	for _, entry := range stored {
		out = append(out, selectionEntryDTO{
			Name:       entry.Name,
			Numbers:    entry.Numbers,
			LuckyStars: entry.LuckyStars,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
