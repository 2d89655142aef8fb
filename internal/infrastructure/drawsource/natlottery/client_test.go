package natlottery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/money"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/logging"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/resilience"
)

const historyPage = `<html><body>
<a id="download_history_action" href="/results/euromillions/draw-history/csv">Download draw history</a>
</body></html>`

const historyCSV = `DrawDate,Ball 1,Ball 2,Ball 3,Ball 4,Ball 5,Lucky Star 1,Lucky Star 2,UK Millionaire Maker,DrawNumber
09-Oct-2020,5,9,20,21,27,2,12,XCPM93611,1362
02-Oct-2020,3,10,29,36,41,4,11,JBQS10935,1360
`

const breakdownPage = `<html><body>
<table summary="Table displaying prize breakdown for EuroMillions">
<tr>
  <td data-th="No. of matches">Match 5 + 2 Stars</td>
  <td data-th="No. of winners">0</td>
  <td data-th="Prize per UK winner">&pound;0.00</td>
</tr>
<tr>
  <td data-th="No. of matches">Match 3 + 2 Stars</td>
  <td data-th="No. of winners">1,018</td>
  <td data-th="Prize per UK winner">&pound;40.10</td>
</tr>
<tr>
  <td data-th="No. of matches">Match 3</td>
  <td data-th="No. of winners">41,326</td>
  <td data-th="Prize per UK winner">&pound;4.80</td>
</tr>
</table>
</body></html>`

func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/results/euromillions/draw-history", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, historyPage)
	})
	mux.HandleFunc("/results/euromillions/draw-history/csv", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, historyCSV)
	})
	mux.HandleFunc("/results/euromillions/draw-history/prize-breakdown/1360", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, breakdownPage)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL: baseURL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
}

func TestClient_DrawInformation(t *testing.T) {
	server := newSiteServer(t)
	client := newTestClient(server.URL)

	result, prizes, err := client.DrawInformation(context.Background(), time.Date(2020, 10, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 1360, result.DrawNumber)
	assert.Equal(t, []int{3, 10, 29, 36, 41}, result.Balls)
	assert.Equal(t, []int{4, 11}, result.LuckyStars)
	assert.Equal(t, time.Date(2020, 10, 2, 0, 0, 0, 0, time.UTC), result.DrawDate)

	require.Len(t, result.Fields, 10)
	assert.Equal(t, draw.Field{Name: "UK Millionaire Maker", Value: "JBQS10935"}, result.Fields[8])

	assert.Equal(t, money.Amount(4010), prizes.Prize("Match 3 + 2 Stars"))
	assert.Equal(t, money.Amount(480), prizes.Prize("Match 3"))
	assert.Equal(t, money.Amount(0), prizes.Prize("Match 5 + 2 Stars"))
	assert.Equal(t, money.Amount(0), prizes.Prize("Match 4"))
}

func TestClient_DrawInformation_DateNotInHistory(t *testing.T) {
	server := newSiteServer(t)
	client := newTestClient(server.URL)

	_, _, err := client.DrawInformation(context.Background(), time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.ErrorIs(t, err, draw.ErrDateNotFound)
}

func TestClient_FetchDrawHistory_MissingDownloadLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body><p>maintenance</p></body></html>")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchDrawHistory(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no download link")
}

func TestClient_FetchPrizeBreakdown_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, breakdownPage)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	prizes, err := client.FetchPrizeBreakdown(context.Background(), 1360)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, money.Amount(4010), prizes.Prize("Match 3 + 2 Stars"))
}

func TestClient_FetchPrizeBreakdown_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	_, err := client.FetchPrizeBreakdown(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_CircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	for i := 0; i < 3; i++ {
		_, err := client.FetchPrizeBreakdown(context.Background(), 1360)
		require.Error(t, err)
	}

	_, err := client.FetchPrizeBreakdown(context.Background(), 1360)
	require.Error(t, err)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.False(t, errors.Is(err, errTransient))
}

func TestParseHistoryCSV_BadRow(t *testing.T) {
	bad := "DrawDate,Ball 1,DrawNumber\n09-Oct-2020,notanumber,1362\n"
	_, err := parseHistoryCSV([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "Ball 1"`)
}
