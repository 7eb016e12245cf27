package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...wayfinder.Option) http.Handler {
	t.Helper()
	return NewHandler(wayfinder.New(opts...))
}

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndModes(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])

	w = do(t, h, "GET", "/modes", "")
	assert.Equal(t, []string{"BFS", "DFS", "Greedy BFS", "A*"}, decode[[]string](t, w))
}

func TestMazeLifecycle(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "POST", "/mazes", `{"name":"lab","width":5,"height":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[MazeResponse](t, w)
	assert.Equal(t, []string{"00000", "00000", "00000", "00000", "00000"}, created.Rows)

	w = do(t, h, "POST", "/mazes", `{"name":"lab","width":5,"height":5}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, "POST", "/mazes/lab/cells", `{"op":"start","x":0,"y":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[CellResponse](t, w).Applied)

	w = do(t, h, "POST", "/mazes/lab/cells", `{"op":"destination","x":4,"y":4}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "POST", "/mazes/lab/cells", `{"op":"wall","x":9,"y":9}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[CellResponse](t, w).Applied, "out of range edits are declined")

	w = do(t, h, "POST", "/mazes/lab/cells", `{"op":"teleport","x":1,"y":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/mazes/lab/solve?mode=A*&persist=true", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[SolveResponse](t, w)
	assert.Equal(t, "A*", res.Mode)
	assert.True(t, res.Found)
	assert.Equal(t, 8, res.Steps)
	assert.Len(t, res.Path, 7)

	w = do(t, h, "GET", "/mazes/lab", "")
	maze := decode[MazeResponse](t, w)
	require.NotNil(t, maze.Start)
	assert.Equal(t, domain.Pt(0, 0), *maze.Start)
	assert.Contains(t, strings.Join(maze.Rows, ""), "3")

	w = do(t, h, "POST", "/mazes/lab/clear?explored=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	maze = decode[MazeResponse](t, w)
	assert.NotContains(t, strings.Join(maze.Rows, ""), "3")
	assert.NotNil(t, maze.Destination)

	w = do(t, h, "POST", "/mazes/lab/clear", "")
	maze = decode[MazeResponse](t, w)
	assert.Nil(t, maze.Start)

	w = do(t, h, "GET", "/mazes", "")
	assert.Equal(t, []string{"lab"}, decode[[]string](t, w))

	w = do(t, h, "DELETE", "/mazes/lab", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/mazes/lab", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutMazeText(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "PUT", "/mazes/gap", "410\n010\n005\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req := httptest.NewRequest("GET", "/mazes/gap", nil)
	req.Header.Set("Accept", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "410\n010\n005\n", rec.Body.String())

	w = do(t, h, "PUT", "/mazes/gap", "41x\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "PUT", "/mazes/gap", "\n\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSolveErrors(t *testing.T) {
	h := newTestHandler(t, wayfinder.WithMaxExplored(2))

	w := do(t, h, "POST", "/mazes/none/solve", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	do(t, h, "PUT", "/mazes/blank", "000\n000\n")
	w = do(t, h, "POST", "/mazes/blank/solve", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, "POST", "/mazes/blank/solve?mode=dijkstra", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/mazes/blank/solve?persist=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	do(t, h, "PUT", "/mazes/long", "4000000005\n")
	w = do(t, h, "POST", "/mazes/long/solve", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "limit")
}

func TestCreateMazeRejectsOversizedGrids(t *testing.T) {
	h := newTestHandler(t, wayfinder.WithMaxCells(1<<20))

	w := do(t, h, "POST", "/mazes", `{"name":"huge","width":4294967296,"height":4294967296}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = do(t, h, "POST", "/mazes", `{"name":"wide","width":1048577,"height":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/mazes", `{"name":"ok","width":64,"height":64}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, "GET", "/mazes/huge", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSolveInlineGrid(t *testing.T) {
	h := newTestHandler(t)

	body, _ := json.Marshal(SolveGridRequest{Grid: "410\n010\n005\n", Mode: "dfs"})
	w := do(t, h, "POST", "/solve", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[SolveResponse](t, w)
	assert.Equal(t, "DFS", res.Mode)
	assert.True(t, res.Found)

	w = do(t, h, "POST", "/solve", `{"grid":"410\n005\n","mode":"4"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "A*", decode[SolveResponse](t, w).Mode)

	w = do(t, h, "POST", "/solve", `{"grid":"4105"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[SolveResponse](t, w).Found)
	assert.Equal(t, []domain.Point{}, decode[SolveResponse](t, w).Path)

	w = do(t, h, "POST", "/solve", `{"grid":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics()
	h := NewHandler(wayfinder.New(wayfinder.WithHooks(metrics.Hooks())), WithMetrics(metrics.Handler()))

	body, _ := json.Marshal(SolveGridRequest{Grid: "45\n", Mode: "A*"})
	require.Equal(t, http.StatusOK, do(t, h, "POST", "/solve", string(body)).Code)

	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `wayfinder_searches_total{found="true",mode="A*"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, "OPTIONS", "/mazes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	svc := wayfinder.New()
	handler := NewHandler(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/mazes/live/events", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.ServeHTTP(wSub, reqSub)
	}()

	time.Sleep(100 * time.Millisecond) // wait for the subscription to register

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("PUT", "/mazes/live", bytes.NewBufferString("45\n")))
	require.Equal(t, http.StatusOK, w.Code)

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, `"type":"maze.updated"`)
	assert.Contains(t, output, `"rows":["45"]`)
}
