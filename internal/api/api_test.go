package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type memoryExporter struct{}

func (memoryExporter) Export(_ context.Context, snap *models.BoardSnapshot) (string, error) {
	return "boards/exported.json", nil
}

// brokenTxRepo fails every transactional move
type brokenTxRepo struct {
	*database.Repository
}

func (brokenTxRepo) WithinTx(context.Context, func(database.MoveStore) error) error {
	return errors.New("database is locked: /var/lib/lanes/lanes.db")
}

type testEnv struct {
	t       *testing.T
	srv     *httptest.Server
	repo    *database.Repository
	pub     *recordingPublisher
	metrics *Metrics

	boardID int
	x, y    int
	xs, ys  []int
}

// newTestEnv serves a board with X=[A,B,C] and Y=[D,E]
func newTestEnv(t *testing.T, opts ...app.Option) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	boardID, cols := testutil.CreateTestBoard(t, db, "Board", "X", "Y")
	xs := testutil.CreateTestCards(t, db, cols[0], "A", "B", "C")
	ys := testutil.CreateTestCards(t, db, cols[1], "D", "E")

	return serve(t, repo, &testEnv{boardID: boardID, x: cols[0], y: cols[1], xs: xs, ys: ys}, opts...)
}

func serve(t *testing.T, store database.DataStore, env *testEnv, opts ...app.Option) *testEnv {
	t.Helper()
	metrics := NewMetrics()
	pub := &recordingPublisher{}
	opts = append([]app.Option{
		app.WithEventPublisher(InstrumentPublisher(pub, metrics)),
		app.WithLogger(testutil.DiscardLogger()),
	}, opts...)

	a := app.New(store, opts...)
	server := NewServer(a, config.Default().Server, metrics)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	env.t = t
	env.srv = ts
	env.pub = pub
	env.metrics = metrics
	if repo, ok := store.(*database.Repository); ok {
		env.repo = repo
	}
	return env
}

func (e *testEnv) do(method, path, body string) *http.Response {
	e.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(e.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.srv.Client().Do(req)
	require.NoError(e.t, err)
	e.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) order(columnID int) []int {
	e.t.Helper()
	cards, err := e.repo.ListCardsByColumn(context.Background(), columnID)
	require.NoError(e.t, err)
	return cards.IDs()
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func path(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// ============================================================================
// MOVE ENDPOINT
// ============================================================================

func TestMoveCard_AcrossColumns(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodPut, path("/api/cards/%d/move", env.xs[1]),
		jsonBody(t, map[string]int{"destinationColumnId": env.y, "destinationIndex": 1}))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, []int{env.xs[0], env.xs[2]}, env.order(env.x))
	assert.Equal(t, []int{env.ys[0], env.xs[1], env.ys[1]}, env.order(env.y))

	snap := env.metrics.GetSnapshot()
	assert.EqualValues(t, 1, snap.Moves)
	assert.EqualValues(t, 1, snap.EventsPublished)
}

func TestMoveCard_WithinColumn(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodPut, path("/api/cards/%d/move", env.xs[1]),
		jsonBody(t, map[string]int{"destinationColumnId": env.x, "destinationIndex": 0}))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []int{env.xs[1], env.xs[0], env.xs[2]}, env.order(env.x))
}

func TestMoveCard_IgnoresExtraFields(t *testing.T) {
	env := newTestEnv(t)

	body := fmt.Sprintf(`{"destinationColumnId": %d, "destinationIndex": 0, "sourceColumnId": %d, "title": "ignored"}`, env.y, env.x)
	resp := env.do(http.MethodPut, path("/api/cards/%d/move", env.xs[2]), body)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, []int{env.xs[0], env.xs[1]}, env.order(env.x))
	assert.Equal(t, []int{env.xs[2], env.ys[0], env.ys[1]}, env.order(env.y))

	card, err := env.repo.GetCard(context.Background(), env.xs[2])
	require.NoError(t, err)
	assert.Equal(t, "C", card.Title)
}

func TestMoveCard_Errors(t *testing.T) {
	env := newTestEnv(t)

	other, err := env.repo.CreateBoard(context.Background(), "Other", []string{"Z"})
	require.NoError(t, err)
	otherCols, err := env.repo.ListColumnsByBoard(context.Background(), other.ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown card", path("/api/cards/%d/move", 9999), jsonBody(t, map[string]int{"destinationColumnId": env.x}), http.StatusNotFound},
		{"unknown column", path("/api/cards/%d/move", env.xs[0]), jsonBody(t, map[string]int{"destinationColumnId": 9999}), http.StatusNotFound},
		{"cross board", path("/api/cards/%d/move", env.xs[0]), jsonBody(t, map[string]int{"destinationColumnId": otherCols[0].ID}), http.StatusUnprocessableEntity},
		{"malformed body", path("/api/cards/%d/move", env.xs[0]), `{"destinationColumnId":`, http.StatusBadRequest},
		{"string index", path("/api/cards/%d/move", env.xs[0]), `{"destinationColumnId": 1, "destinationIndex": "top"}`, http.StatusBadRequest},
		{"fractional index", path("/api/cards/%d/move", env.xs[0]), `{"destinationColumnId": 1, "destinationIndex": 1.5}`, http.StatusBadRequest},
		{"missing column", path("/api/cards/%d/move", env.xs[0]), `{"destinationIndex": 0}`, http.StatusNotFound},
		{"zero column", path("/api/cards/%d/move", env.xs[0]), jsonBody(t, map[string]int{"destinationColumnId": 0}), http.StatusNotFound},
		{"only unknown fields", path("/api/cards/%d/move", env.xs[0]), `{"columnId": 1}`, http.StatusNotFound},
		{"zero card id", "/api/cards/0/move", jsonBody(t, map[string]int{"destinationColumnId": env.x}), http.StatusNotFound},
		{"negative card id", "/api/cards/-4/move", jsonBody(t, map[string]int{"destinationColumnId": env.x}), http.StatusNotFound},
		{"non-integer id", "/api/cards/abc/move", jsonBody(t, map[string]int{"destinationColumnId": env.x}), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode[errorResponse](t, resp)
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, resp.Header.Get(RequestIDHeader), body.RequestID)
		})
	}

	// No failed request changed anything
	assert.Equal(t, env.xs, env.order(env.x))
	assert.Equal(t, env.ys, env.order(env.y))
	assert.EqualValues(t, 0, env.metrics.GetSnapshot().Moves)
	assert.Empty(t, env.pub.events)
}

func TestMoveCard_PersistenceFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	_, cols := testutil.CreateTestBoard(t, db, "Board", "X")
	card := testutil.CreateTestCard(t, db, cols[0], "A")
	env := serve(t, brokenTxRepo{repo}, &testEnv{})

	resp := env.do(http.MethodPut, path("/api/cards/%d/move", card),
		jsonBody(t, map[string]int{"destinationColumnId": cols[0], "destinationIndex": 0}))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decode[errorResponse](t, resp)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body.Error)
	assert.NotContains(t, body.Error, "/var/lib", "internal details stay out of responses")
	assert.EqualValues(t, 1, env.metrics.GetSnapshot().MoveFailures)
}

// ============================================================================
// RESOURCE ENDPOINTS
// ============================================================================

func TestBoardLifecycle(t *testing.T) {
	env := serve(t, database.NewRepository(testutil.SetupTestDB(t)), &testEnv{})

	resp := env.do(http.MethodPost, "/api/boards", `{"title": "Roadmap", "columns": ["Todo", "Done"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	board := decode[models.Board](t, resp)

	resp = env.do(http.MethodGet, "/api/boards", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.Board](t, resp), 1)

	resp = env.do(http.MethodGet, path("/api/boards/%d/columns", board.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	columns := decode[[]models.Column](t, resp)
	require.Len(t, columns, 2)

	resp = env.do(http.MethodPost, path("/api/columns/%d/cards", columns[0].ID), `{"title": "First", "description": "hello"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	card := decode[models.Card](t, resp)
	assert.Equal(t, 0, card.Position)

	resp = env.do(http.MethodPatch, path("/api/cards/%d", card.ID), `{"title": "Renamed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", decode[models.Card](t, resp).Description)

	resp = env.do(http.MethodGet, path("/api/boards/%d", board.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[models.BoardSnapshot](t, resp)
	assert.Equal(t, "Roadmap", snap.Board.Title)
	require.Len(t, snap.Columns, 2)
	require.Len(t, snap.Columns[0].Cards, 1)
	assert.Equal(t, "Renamed", snap.Columns[0].Cards[0].Title)

	resp = env.do(http.MethodPatch, path("/api/columns/%d", columns[1].ID), `{"title": "Shipped"}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(http.MethodDelete, path("/api/columns/%d", columns[0].ID), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.do(http.MethodGet, path("/api/cards/%d", card.ID), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "cards go with their column")

	resp = env.do(http.MethodPatch, path("/api/boards/%d", board.ID), `{"title": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(http.MethodDelete, path("/api/boards/%d", board.ID), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.do(http.MethodGet, path("/api/boards/%d", board.ID), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCardEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodGet, path("/api/columns/%d/cards", env.y), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, env.ys, decode[models.Cards](t, resp).IDs())

	resp = env.do(http.MethodPost, path("/api/columns/%d/cards", env.y), `{"title": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(http.MethodDelete, path("/api/cards/%d", env.xs[0]), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, env.xs[1:], env.order(env.x))
}

func TestExportBoard(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		env := newTestEnv(t)
		resp := env.do(http.MethodPost, path("/api/boards/%d/export", env.boardID), "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("enabled", func(t *testing.T) {
		env := newTestEnv(t, app.WithExporter(memoryExporter{}))
		resp := env.do(http.MethodPost, path("/api/boards/%d/export", env.boardID), "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "boards/exported.json", decode[exportResponse](t, resp).Key)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	env.do(http.MethodGet, "/api/cards/9999", "")

	resp = env.do(http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[MetricsSnapshot](t, resp)
	assert.GreaterOrEqual(t, snap.Requests, int64(2))
	assert.GreaterOrEqual(t, snap.ClientErrors, int64(1))
	assert.EqualValues(t, 1, snap.InFlight, "the metrics request itself is in flight")
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "trace-123")
	resp, err := env.srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "trace-123", resp.Header.Get(RequestIDHeader))
}

func TestRecoverPanics(t *testing.T) {
	h := requestID(recoverPanics(testutil.DiscardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.RequestID)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	a := app.New(database.NewRepository(testutil.SetupTestDB(t)), app.WithLogger(testutil.DiscardLogger()))
	cfg := config.Default().Server
	cfg.ShutdownTimeout = time.Second
	server := NewServer(a, cfg, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func jsonBody(t *testing.T, v any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return buf.String()
}
