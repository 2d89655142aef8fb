package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/result"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/logging"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/usecase"
)

const masterFileName = "Master Results.xlsx"

// Writer lays out workbooks the syndicate reads by hand: one workbook per
// draw filed under its interval folder, plus a master cumulative workbook.
type Writer struct {
	dir    string
	logger *logging.Logger
}

func NewWriter(dir string, logger *logging.Logger) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("archive dir cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create archive dir %q", dir)
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Writer{dir: dir, logger: logger}, nil
}

func (w *Writer) WriteDrawResult(ctx context.Context, entry result.HistoryEntry, drawResult draw.Result, prizes draw.PrizeTable) error {
	folder := filepath.Join(w.dir, entry.Interval)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return crerr.Wrapf(err, "create interval folder %q", folder)
	}

	resultRows := [][]any{{"Name", "Numbers", "Lucky Stars", "Balls Matched", "Stars Matched", "Match Type", "Prize"}}
	for _, row := range entry.Rows {
		resultRows = append(resultRows, []any{
			row.Entry.Name,
			joinInts(row.Entry.Numbers),
			joinInts(row.Entry.LuckyStars),
			row.Outcome.BallsMatched,
			row.Outcome.StarsMatched,
			row.Outcome.MatchType,
			row.Outcome.Prize.Format(),
		})
	}

	outcomeRows := make([][]any, 0, len(drawResult.Fields))
	for _, field := range drawResult.Fields {
		outcomeRows = append(outcomeRows, []any{field.Name, field.Value})
	}

	labels := make([]string, 0, len(prizes))
	for label := range prizes {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	prizeRows := [][]any{{"Match Type", "Prize Per UK Winner"}}
	for _, label := range labels {
		prizeRows = append(prizeRows, []any{label, prizes[label].Format()})
	}

	file, err := newWorkbook(map[string][][]any{
		"Result":          resultRows,
		"Draw Outcome":    outcomeRows,
		"Prize Breakdown": prizeRows,
	}, []string{"Result", "Draw Outcome", "Prize Breakdown"})
	if err != nil {
		return err
	}
	defer file.Close()

	path := filepath.Join(folder, draw.FileLabel(drawResult.DrawDate)+".xlsx")
	if err := file.SaveAs(path); err != nil {
		return crerr.Wrapf(err, "save draw workbook %q", path)
	}

	w.logger.InfoContext(ctx, "draw workbook written", "path", path, "rows", len(entry.Rows))
	return nil
}

func (w *Writer) WriteCumulativeReport(ctx context.Context, rep usecase.CumulativeReport) error {
	players := []string{}
	if rep.Breakdown != nil {
		players = rep.Breakdown.Players
	}

	summaryRows := [][]any{appendHeader([]any{"Interval"}, players)}
	for _, row := range rep.Summary {
		line := []any{row.Interval}
		for _, player := range players {
			line = append(line, row.Totals[player])
		}
		summaryRows = append(summaryRows, line)
	}

	breakdownRows := [][]any{appendHeader([]any{"Interval", "Play Date"}, players)}
	if rep.Breakdown != nil {
		for _, row := range rep.Breakdown.Rows {
			line := []any{row.Interval, row.PlayDate}
			for _, player := range players {
				value := row.Values[player]
				if value.Present {
					line = append(line, value.Amount)
				} else {
					line = append(line, "")
				}
			}
			breakdownRows = append(breakdownRows, line)
		}
	}

	overviewRows := [][]any{{"Interval", "Play Date", "Winnings", "Number of Players", "Winning per Person", "Winning Description"}}
	for _, row := range rep.Overview {
		overviewRows = append(overviewRows, []any{
			row.Interval, row.PlayDate, row.TotalWinnings, row.NumPlayers, row.WinningPerPerson, row.WinningDescription,
		})
	}

	file, err := newWorkbook(map[string][][]any{
		"Player Summary":   summaryRows,
		"Player Breakdown": breakdownRows,
		"General Overview": overviewRows,
	}, []string{"Player Summary", "Player Breakdown", "General Overview"})
	if err != nil {
		return err
	}
	defer file.Close()

	path := filepath.Join(w.dir, masterFileName)
	if err := file.SaveAs(path); err != nil {
		return crerr.Wrapf(err, "save cumulative workbook %q", path)
	}

	w.logger.InfoContext(ctx, "cumulative workbook written", "path", path, "draws", len(rep.Overview))
	return nil
}

func newWorkbook(sheets map[string][][]any, order []string) (*excelize.File, error) {
	file := excelize.NewFile()

	style, err := file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, crerr.Wrap(err, "create cell style")
	}

	for _, name := range order {
		if _, err := file.NewSheet(name); err != nil {
			return nil, crerr.Wrapf(err, "create sheet %q", name)
		}
		if err := fillSheet(file, name, sheets[name], style); err != nil {
			return nil, err
		}
	}
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, crerr.Wrap(err, "drop default sheet")
	}

	return file, nil
}

func fillSheet(file *excelize.File, name string, rows [][]any, style int) error {
	widths := map[int]float64{}

	for rowIdx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
		if err != nil {
			return crerr.Wrapf(err, "cell name for sheet %q row %d", name, rowIdx+1)
		}
		if err := file.SetSheetRow(name, cell, &row); err != nil {
			return crerr.Wrapf(err, "write sheet %q row %d", name, rowIdx+1)
		}
		for colIdx, value := range row {
			if width := cellWidth(value); width > widths[colIdx] {
				widths[colIdx] = width
			}
		}
	}

	if len(rows) == 0 {
		return nil
	}

	lastCell, err := excelize.CoordinatesToCellName(len(rows[0]), len(rows))
	if err != nil {
		return crerr.Wrapf(err, "last cell for sheet %q", name)
	}
	if err := file.SetCellStyle(name, "A1", lastCell, style); err != nil {
		return crerr.Wrapf(err, "style sheet %q", name)
	}

	for colIdx, width := range widths {
		col, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			return crerr.Wrapf(err, "column name for sheet %q", name)
		}
		if err := file.SetColWidth(name, col, col, width); err != nil {
			return crerr.Wrapf(err, "set column width on sheet %q", name)
		}
	}

	return nil
}

func cellWidth(value any) float64 {
	text := fmt.Sprintf("%v", value)
	width := float64(len(text)) + 2
	if width < 10 {
		return 10
	}
	return width
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return strings.Join(parts, " ")
}

func appendHeader(prefix []any, players []string) []any {
	out := append([]any{}, prefix...)
	for _, player := range players {
		out = append(out, player)
	}
	return out
}
