package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	drakehttp "github.com/aretw0/drake/pkg/adapters/http"
	"github.com/aretw0/drake/pkg/adapters/memory"
	"github.com/aretw0/drake/pkg/board"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...drakehttp.Option) (*drakehttp.Server, *board.Board) {
	t.Helper()
	b, err := board.LoadFile("../../board/testdata/kanban.yaml")
	require.NoError(t, err)
	d, err := b.New()
	require.NoError(t, err)
	return drakehttp.NewServer(b, d, opts...), b
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeStep(t *testing.T, w *httptest.ResponseRecorder) drakehttp.StepResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp drakehttp.StepResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func types(resp drakehttp.StepResponse) []string {
	out := make([]string, 0, len(resp.Events))
	for _, ev := range resp.Events {
		out = append(out, ev.Type)
	}
	return out
}

// dragSpecToDoing moves "spec" below "review" in the doing column.
func dragSpecToDoing(t *testing.T, h http.Handler) drakehttp.StepResponse {
	t.Helper()
	resp := decodeStep(t, post(t, h, "/pointer", map[string]any{"type": "down", "x": 5, "y": 4}))
	assert.Equal(t, "grabbed", resp.Phase)
	assert.Empty(t, resp.Events)

	resp = decodeStep(t, post(t, h, "/pointer", map[string]any{"type": "move", "x": 30, "y": 10}))
	assert.Equal(t, "dragging", resp.Phase)
	assert.Contains(t, types(resp), "shadow")

	return decodeStep(t, post(t, h, "/pointer", map[string]any{"type": "up", "x": 30, "y": 10}))
}

func TestPointerFlow_PersistsLayout(t *testing.T) {
	store := memory.NewStore()
	s, _ := newServer(t, drakehttp.WithStore(store), drakehttp.WithLocker(memory.NewLocker()))
	h := s.Handler()

	resp := dragSpecToDoing(t, h)
	assert.Equal(t, "idle", resp.Phase)
	assert.Equal(t, []string{"drop", "out", "dragend"}, types(resp))
	assert.Equal(t, "doing", resp.Events[0].Container)
	assert.Equal(t, "todo", resp.Events[0].Source)

	layout, err := store.Load(context.Background(), "kanban")
	require.NoError(t, err)
	doing, ok := layout.Column("doing")
	require.True(t, ok)
	assert.Equal(t, []string{"review", "spec"}, doing.Items)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/board", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var board drakehttp.BoardResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&board))
	assert.Equal(t, "idle", board.Phase)
	todo, _ := board.Layout.Column("todo")
	assert.Equal(t, []string{"tests", "frozen"}, todo.Items)
}

func TestRestore(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), "kanban", &domain.Layout{
		Board:   "kanban",
		Columns: []domain.Column{{ID: "todo", Items: []string{"frozen", "spec"}}},
	}))
	s, b := newServer(t, drakehttp.WithStore(store))
	require.NoError(t, s.Restore(context.Background()))

	todo, _ := b.Snapshot().Column("todo")
	assert.Equal(t, []string{"frozen", "spec", "tests"}, todo.Items)

	empty, _ := newServer(t, drakehttp.WithStore(memory.NewStore()))
	assert.NoError(t, empty.Restore(context.Background()), "nothing stored is not an error")
}

func TestControl(t *testing.T) {
	s, b := newServer(t)
	h := s.Handler()

	resp := decodeStep(t, post(t, h, "/control/start", drakehttp.ControlRequest{Item: "tests"}))
	assert.Equal(t, "dragging", resp.Phase)
	assert.Equal(t, []string{"drag"}, types(resp))

	resp = decodeStep(t, post(t, h, "/control/moveto", drakehttp.ControlRequest{Target: "done"}))
	require.NotNil(t, resp.Accepted)
	assert.False(t, *resp.Accepted, "done only accepts items from doing")

	resp = decodeStep(t, post(t, h, "/control/moveto", drakehttp.ControlRequest{Target: "doing", Sibling: "review"}))
	require.NotNil(t, resp.Accepted)
	assert.True(t, *resp.Accepted)

	resp = decodeStep(t, post(t, h, "/control/end", nil))
	assert.Equal(t, "idle", resp.Phase)
	assert.Equal(t, "drop", resp.Events[0].Type)

	doing, _ := b.Snapshot().Column("doing")
	assert.Equal(t, []string{"tests", "review"}, doing.Items)
}

func TestControl_CancelWithRevert(t *testing.T) {
	s, b := newServer(t)
	h := s.Handler()

	decodeStep(t, post(t, h, "/control/start", drakehttp.ControlRequest{Item: "spec"}))
	decodeStep(t, post(t, h, "/control/moveto", drakehttp.ControlRequest{Target: "doing"}))
	revert := true
	resp := decodeStep(t, post(t, h, "/control/cancel", drakehttp.ControlRequest{Revert: &revert}))
	assert.Equal(t, "cancel", resp.Events[0].Type)

	todo, _ := b.Snapshot().Column("todo")
	assert.Equal(t, []string{"spec", "tests", "frozen"}, todo.Items)
}

func TestControl_Errors(t *testing.T) {
	s, _ := newServer(t)
	h := s.Handler()

	assert.Equal(t, http.StatusNotFound, post(t, h, "/control/start", drakehttp.ControlRequest{Item: "ghost"}).Code)
	assert.Equal(t, http.StatusNotFound, post(t, h, "/control/fly", nil).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, h, "/pointer", map[string]any{"type": "hover"}).Code)

	req := httptest.NewRequest(http.MethodPost, "/pointer", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeStep(t, post(t, h, "/control/end", nil))
	assert.Equal(t, "idle", resp.Phase, "ending without a session is a no-op")
	assert.Empty(t, resp.Events)
}

type failingStore struct {
	*memory.Store
}

func (failingStore) Save(context.Context, string, *domain.Layout) error {
	return errors.New("disk full")
}

func TestPersistFailure(t *testing.T) {
	s, _ := newServer(t, drakehttp.WithStore(failingStore{memory.NewStore()}))
	h := s.Handler()

	post(t, h, "/pointer", map[string]any{"type": "down", "x": 5, "y": 4})
	post(t, h, "/pointer", map[string]any{"type": "move", "x": 30, "y": 10})
	w := post(t, h, "/pointer", map[string]any{"type": "up", "x": 30, "y": 10})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "disk full")
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	b, err := board.LoadFile("../../board/testdata/kanban.yaml")
	require.NoError(t, err)
	d, err := b.New()
	require.NoError(t, err)
	m.Attach(d)
	h := drakehttp.NewServer(b, d, drakehttp.WithGatherer(reg)).Handler()

	dragSpecToDoing(t, h)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"board":"kanban"`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `drake_sessions_total{outcome="dropped"} 1`)
}

func TestSubscribeEvents(t *testing.T) {
	s, _ := newServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?types=drop", nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(res.Body)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	next := func() string {
		select {
		case l := <-lines:
			return l
		case <-ctx.Done():
			t.Fatal("timed out waiting for SSE")
			return ""
		}
	}
	require.Equal(t, "event: ping", next())
	require.Equal(t, "data: connected", next())
	next()

	dragSpecToDoing(t, s.Handler())

	assert.Equal(t, "event: drop", next(), "other event types are filtered out")
	assert.Contains(t, next(), `"item":"spec"`)
}
