package natlottery

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/money"
)

const historyDateLayout = "02-Jan-2006"

// findHistoryDownloadLink pulls the CSV download href out of the
// draw-history page. The site marks it with a stable element id.
func findHistoryDownloadLink(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", crerr.Wrap(err, "parse draw history page")
	}

	href, ok := doc.Find("#download_history_action").Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", crerr.New("draw history page has no download link")
	}
	return strings.TrimSpace(href), nil
}

// parseHistoryCSV decodes the published history dump. Every column is kept
// verbatim in Fields; DrawDate, the balls, the lucky stars and DrawNumber
// are additionally decoded into their typed form.
func parseHistoryCSV(dump []byte) ([]draw.Result, error) {
	reader := csv.NewReader(bytes.NewReader(dump))
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, crerr.Wrap(err, "read csv")
	}
	if len(rows) < 1 {
		return nil, crerr.New("csv dump is empty")
	}

	header := rows[0]
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	history := make([]draw.Result, 0, len(rows)-1)
	for line, row := range rows[1:] {
		record, err := decodeHistoryRow(header, row)
		if err != nil {
			return nil, crerr.Wrapf(err, "csv row %d", line+2)
		}
		history = append(history, record)
	}
	return history, nil
}

func decodeHistoryRow(header, row []string) (draw.Result, error) {
	if len(row) != len(header) {
		return draw.Result{}, crerr.Newf("expected %d columns, got %d", len(header), len(row))
	}

	record := draw.Result{Fields: make([]draw.Field, 0, len(row))}
	for i, raw := range row {
		name := header[i]
		value := strings.TrimSpace(raw)
		record.Fields = append(record.Fields, draw.Field{Name: name, Value: value})

		switch {
		case name == "DrawDate":
			date, err := time.Parse(historyDateLayout, value)
			if err != nil {
				return draw.Result{}, crerr.Wrapf(err, "column %q", name)
			}
			record.DrawDate = date
		case name == "DrawNumber":
			number, err := strconv.Atoi(value)
			if err != nil {
				return draw.Result{}, crerr.Wrapf(err, "column %q", name)
			}
			record.DrawNumber = number
		case strings.HasPrefix(name, "Ball "):
			ball, err := strconv.Atoi(value)
			if err != nil {
				return draw.Result{}, crerr.Wrapf(err, "column %q", name)
			}
			record.Balls = append(record.Balls, ball)
		case strings.HasPrefix(name, "Lucky Star "):
			star, err := strconv.Atoi(value)
			if err != nil {
				return draw.Result{}, crerr.Wrapf(err, "column %q", name)
			}
			record.LuckyStars = append(record.LuckyStars, star)
		}
	}

	if record.DrawDate.IsZero() {
		return draw.Result{}, crerr.New("row has no DrawDate column")
	}
	return record, nil
}

// parsePrizeBreakdown walks the breakdown page's prize tables. Cells are
// tagged with data-th attributes naming their column; a tier is recorded
// once both its match label and prize cell have been seen.
func parsePrizeBreakdown(page []byte) (draw.PrizeTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, crerr.Wrap(err, "parse prize breakdown page")
	}

	table := draw.PrizeTable{}
	var parseErr error

	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		summary, _ := tbl.Attr("summary")
		if !strings.HasPrefix(summary, "Table displaying prize breakdown") {
			return
		}

		var matchType, prize string
		var haveMatch, havePrize bool
		tbl.Find("td").Each(func(_ int, cell *goquery.Selection) {
			switch cell.AttrOr("data-th", "") {
			case "No. of matches":
				matchType = strings.TrimSpace(cell.Text())
				haveMatch = true
			case "Prize per UK winner":
				prize = strings.TrimSpace(cell.Text())
				havePrize = true
			}
			if haveMatch && havePrize {
				amount, err := money.Parse(prize)
				if err != nil && parseErr == nil {
					parseErr = crerr.Wrapf(err, "tier %q", matchType)
				}
				table[matchType] = amount
				haveMatch, havePrize = false, false
			}
		})
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if len(table) == 0 {
		return nil, crerr.New("no prize breakdown table found")
	}
	return table, nil
}
