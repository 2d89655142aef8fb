package natlottery

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/logging"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/resilience"
)

const (
	defaultBaseURL        = "https://www.national-lottery.co.uk"
	drawHistoryPath       = "/results/euromillions/draw-history"
	prizeBreakdownPathFmt = "/results/euromillions/draw-history/prize-breakdown/%d"
	maxResponseBytes      = 8 << 20
)

var errTransient = crerr.New("national lottery transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client scrapes the official draw-history and prize-breakdown pages. It is
// the only piece of the system that touches the lottery site, so it carries
// the timeout, retry and breaker policy for it.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// DrawInformation fetches the historical results dump, picks out the draw
// for drawDate and then scrapes that draw's prize breakdown. Concurrent
// callers share one in-flight history download.
func (c *Client) DrawInformation(ctx context.Context, drawDate time.Time) (draw.Result, draw.PrizeTable, error) {
	history, err := c.fetchHistoryShared(ctx)
	if err != nil {
		return draw.Result{}, nil, err
	}

	record, err := draw.ExtractResult(drawDate, history)
	if err != nil {
		return draw.Result{}, nil, err
	}

	prizes, err := c.FetchPrizeBreakdown(ctx, record.DrawNumber)
	if err != nil {
		return draw.Result{}, nil, err
	}

	return record, prizes, nil
}

func (c *Client) fetchHistoryShared(ctx context.Context) ([]draw.Result, error) {
	value, err, _ := c.flight.Do("natlottery:draw-history", func() (any, error) {
		return c.FetchDrawHistory(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]draw.Result), nil
}

// FetchDrawHistory loads the draw-history page, follows its download link
// and parses the CSV dump into raw draw records, newest first as published.
func (c *Client) FetchDrawHistory(ctx context.Context) ([]draw.Result, error) {
	page, err := c.get(ctx, c.baseURL+drawHistoryPath)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch draw history page")
	}

	csvPath, err := findHistoryDownloadLink(page)
	if err != nil {
		return nil, err
	}
	csvURL := csvPath
	if strings.HasPrefix(csvPath, "/") {
		csvURL = c.baseURL + csvPath
	}

	dump, err := c.get(ctx, csvURL)
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch history csv %q", csvURL)
	}

	history, err := parseHistoryCSV(dump)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse history csv %q", csvURL)
	}

	c.logger.DebugContext(ctx, "draw history fetched", "records", len(history))
	return history, nil
}

// FetchPrizeBreakdown scrapes one draw's prize table.
func (c *Client) FetchPrizeBreakdown(ctx context.Context, drawNumber int) (draw.PrizeTable, error) {
	if drawNumber <= 0 {
		return nil, fmt.Errorf("draw number must be greater than zero")
	}

	page, err := c.get(ctx, c.baseURL+fmt.Sprintf(prizeBreakdownPathFmt, drawNumber))
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch prize breakdown for draw %d", drawNumber)
	}

	table, err := parsePrizeBreakdown(page)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse prize breakdown for draw %d", drawNumber)
	}

	c.logger.DebugContext(ctx, "prize breakdown fetched", "draw_number", drawNumber, "tiers", len(table))
	return table, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "lottery site circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("lottery site is temporarily unavailable: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				c.recordFailure()
				return nil, ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		body, err := c.getOnce(ctx, url)
		if err == nil {
			if c.circuitEnabled {
				c.breaker.RecordSuccess()
			}
			return body, nil
		}

		lastErr = err
		if !stderrors.Is(err, errTransient) {
			c.recordFailure()
			return nil, err
		}
		c.logger.WarnContext(ctx, "lottery site request failed, retrying",
			"url", url, "attempt", attempt+1, "error", err)
	}

	c.recordFailure()
	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "text/html,text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "request failed"), errTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response"), errTransient)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, crerr.Mark(crerr.Newf("status %d from %s", resp.StatusCode, url), errTransient)
	default:
		return nil, crerr.Newf("status %d from %s", resp.StatusCode, url)
	}
}

func (c *Client) recordFailure() {
	if c.circuitEnabled {
		c.breaker.RecordFailure()
	}
}

func backoff(attempt int) time.Duration {
	d := time.Duration(attempt) * 500 * time.Millisecond
	if d > 5*time.Second {
		return 5 * time.Second
	}
	return d
}
