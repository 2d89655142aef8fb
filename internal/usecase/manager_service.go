package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/result"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/logging"
)

const defaultFetchWorkers = 4

// ManagerService runs the weekly check: resolve the draw date, pull the
// draw's numbers and prize table, evaluate every syndicate entry, and hand
// the result set to the history store and archive.
type ManagerService struct {
	provider     DrawDataProvider
	selections   selection.Repository
	history      result.HistoryRepository
	archive      ArchiveWriter
	rules        selection.Rules
	logger       *logging.Logger
	fetchWorkers int
	now          func() time.Time
}

func NewManagerService(
	provider DrawDataProvider,
	selections selection.Repository,
	history result.HistoryRepository,
	archive ArchiveWriter,
	rules selection.Rules,
	logger *logging.Logger,
) *ManagerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ManagerService{
		provider:     provider,
		selections:   selections,
		history:      history,
		archive:      archive,
		rules:        rules,
		logger:       logger,
		fetchWorkers: defaultFetchWorkers,
		now:          time.Now,
	}
}

// SetFetchWorkers bounds the draw-data worker pool used by RunBetween.
func (s *ManagerService) SetFetchWorkers(n int) {
	if n > 0 {
		s.fetchWorkers = n
	}
}

// RunDraw evaluates the draw for the Friday on or before runDate and
// persists the per-player results.
func (s *ManagerService) RunDraw(ctx context.Context, runDate time.Time) (result.HistoryEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.RunDraw")
	defer span.End()

	if runDate.IsZero() {
		runDate = s.now()
	}
	drawDate := draw.LastFriday(runDate.UTC())

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return result.HistoryEntry{}, err
	}

	drawResult, prizes, err := s.provider.DrawInformation(ctx, drawDate)
	if err != nil {
		return result.HistoryEntry{}, fmt.Errorf("draw information for %s: %w", draw.DateLabel(drawDate), err)
	}

	entry, err := s.evaluateAndStore(ctx, entries, drawDate, drawResult, prizes)
	if err != nil {
		return result.HistoryEntry{}, err
	}

	s.logger.InfoContext(ctx, "draw evaluated",
		"play_date", entry.PlayDate,
		"players", len(entry.Rows),
		"total_prize", entry.Rows.TotalPrize().Format(),
	)
	return entry, nil
}

// RunBetween evaluates every weekly draw from start to end inclusive. Draw
// data is fetched on a bounded worker pool, but evaluation and persistence
// happen in chronological order so the history store stays append-ordered.
// The first failure aborts the whole run.
func (s *ManagerService) RunBetween(ctx context.Context, start, end time.Time) ([]result.HistoryEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.RunBetween")
	defer span.End()

	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s before start %s", ErrInvalidInput,
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	drawDates := weeklyDrawDates(start, end)
	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}

	type fetched struct {
		drawResult draw.Result
		prizes     draw.PrizeTable
		err        error
	}
	results := make([]fetched, len(drawDates))

	pool, err := ants.NewPool(s.fetchWorkers)
	if err != nil {
		return nil, fmt.Errorf("create fetch pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, drawDate := range drawDates {
		i, drawDate := i, drawDate
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			drawResult, prizes, fetchErr := s.provider.DrawInformation(ctx, drawDate)
			results[i] = fetched{drawResult: drawResult, prizes: prizes, err: fetchErr}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit fetch for %s: %w", draw.DateLabel(drawDate), err)
		}
	}
	workers.Wait()

	history := make([]result.HistoryEntry, 0, len(drawDates))
	for i, drawDate := range drawDates {
		if results[i].err != nil {
			return nil, fmt.Errorf("draw information for %s: %w", draw.DateLabel(drawDate), results[i].err)
		}
		entry, err := s.evaluateAndStore(ctx, entries, drawDate, results[i].drawResult, results[i].prizes)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	s.logger.InfoContext(ctx, "draw range evaluated", "draws", len(history),
		"from", start.Format("2006-01-02"), "to", end.Format("2006-01-02"))
	return history, nil
}

// UpdateSelections validates the incoming number picks and stores them.
// Entries replace same-named players; everyone else keeps their picks. The
// stored set after the update is returned.
func (s *ManagerService) UpdateSelections(ctx context.Context, entries []selection.Entry) ([]selection.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.UpdateSelections")
	defer span.End()

	if err := selection.ValidateEntries(entries, s.rules); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.selections.UpsertEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("upsert selected entries: %w", err)
	}
	stored, err := s.selections.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list selected entries: %w", err)
	}

	s.logger.InfoContext(ctx, "selections updated", "updated", len(entries), "players", len(stored))
	return stored, nil
}

func (s *ManagerService) loadEntries(ctx context.Context) ([]selection.Entry, error) {
	entries, err := s.selections.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list selected entries: %w", err)
	}
	if err := selection.ValidateEntries(entries, s.rules); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return entries, nil
}

func (s *ManagerService) evaluateAndStore(
	ctx context.Context,
	entries []selection.Entry,
	drawDate time.Time,
	drawResult draw.Result,
	prizes draw.PrizeTable,
) (result.HistoryEntry, error) {
	winning, err := drawResult.WinningNumbers()
	if err != nil {
		return result.HistoryEntry{}, fmt.Errorf("winning numbers for %s: %w", draw.DateLabel(drawDate), err)
	}

	rows, err := result.EvaluateDraw(entries, winning, prizes)
	if err != nil {
		return result.HistoryEntry{}, fmt.Errorf("evaluate draw %s: %w", draw.DateLabel(drawDate), err)
	}

	entry := result.HistoryEntry{
		Interval: draw.IntervalLabel(drawDate),
		PlayDate: draw.DateLabel(drawDate),
		Rows:     rows,
	}

	if err := s.history.AppendDraw(ctx, entry, drawResult, prizes); err != nil {
		return result.HistoryEntry{}, fmt.Errorf("append draw %s: %w", entry.PlayDate, err)
	}
	if s.archive != nil {
		if err := s.archive.WriteDrawResult(ctx, entry, drawResult, prizes); err != nil {
			return result.HistoryEntry{}, fmt.Errorf("archive draw %s: %w", entry.PlayDate, err)
		}
	}

	return entry, nil
}

// weeklyDrawDates resolves the Fridays covered by [start, end], one per
// seven-day step from start.
func weeklyDrawDates(start, end time.Time) []time.Time {
	dates := make([]time.Time, 0, int(end.Sub(start).Hours()/(24*7))+1)
	for day := start.UTC(); !day.After(end.UTC()); day = day.AddDate(0, 0, 7) {
		dates = append(dates, draw.LastFriday(day))
	}
	return dates
}
