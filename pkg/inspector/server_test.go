package inspector

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vroute/pkg/middleware"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/routertest"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *router.Router) {
	t.Helper()
	r := routertest.NewRouter().
		WithRoute("/home").
		WithRoute("/list", "/detail").
		Build(t)
	srv := New(r, opts...)
	t.Cleanup(srv.Close)
	return srv, r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRoutesAndTree(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := get(t, h, "/routes")
	require.Equal(t, http.StatusOK, rec.Code)
	var records map[string]router.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Len(t, records, 3)
	assert.Equal(t, []string{"/list/detail"}, records["/list"].Children)

	rec = get(t, h, "/tree")
	require.Equal(t, http.StatusOK, rec.Code)
	var tree []router.TreeNode
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tree))
	require.Len(t, tree, 2)
	assert.Equal(t, "/list", tree[1].Key)
}

func TestResolve(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := get(t, h, "/resolve?path=/list/detail")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/list/detail", resp.Route.Path)
	assert.Equal(t, router.ComponentChain{"list", "detail"}, resp.Chain)

	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/resolve?path=/nowhere", http.StatusNotFound, "R010"},
		{"/resolve", http.StatusBadRequest, "R020"},
	}
	for _, tt := range tests {
		rec := get(t, h, tt.target)
		assert.Equal(t, tt.status, rec.Code, tt.target)
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.code, body.Error.Code, tt.target)
	}
}

func TestNavigate(t *testing.T) {
	srv, r := newTestServer(t)
	h := srv.Handler()

	rec := post(t, h, "/navigate", `{"path": "/list", "params": {"id": "7"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp NavigateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Committed)
	assert.False(t, resp.Vetoed)
	assert.Equal(t, "/list", resp.Current.Path)
	assert.Equal(t, "7", resp.Current.Params["id"])

	rec = post(t, h, "/navigate", `{"path": "/list/detail", "replace": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	routertest.ExpectHistory(t, r, "/home", "/list/detail")

	r.SetBeforeChange(func(from, to router.Route) bool { return false })
	rec = post(t, h, "/navigate", `{"path": "/home"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Vetoed)
	assert.Equal(t, "/list/detail", resp.Current.Path)

	rec = post(t, h, "/navigate", `{"path": "/nowhere"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(t, h, "/navigate", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCurrentHistoryComponents(t *testing.T) {
	srv, r := newTestServer(t)
	h := srv.Handler()

	routertest.Mount(r, 1)
	require.NoError(t, r.Push("/list/detail"))

	rec := get(t, h, "/current")
	var current router.Route
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	assert.Equal(t, "/list/detail", current.Path)

	rec = get(t, h, "/history")
	var hist []router.Route
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	assert.Len(t, hist, 2)

	rec = get(t, h, "/components")
	var comps ComponentsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comps))
	assert.Len(t, comps.Live, 1)
	assert.Equal(t, router.ComponentChain{"detail"}, comps.Pending)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := routertest.NewRouter().
		WithRoute("/home").
		WithOption(router.WithMiddleware(middleware.Prometheus(middleware.WithRegistry(reg)))).
		Build(t)
	srv := New(r, WithGatherer(reg))
	defer srv.Close()

	rec := get(t, srv.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `vroute_navigations_total{kind="push",outcome="committed"} 1`)
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestEventStream(t *testing.T) {
	srv, r := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	hello := readMessage(t, conn)
	assert.Equal(t, MessageHello, hello.Type)
	assert.NotEmpty(t, hello.ClientID)

	require.Eventually(t, func() bool { return srv.Hub().ClientCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, r.Push("/list/detail"))
	msg := readMessage(t, conn)
	assert.Equal(t, MessageNavigation, msg.Type)
	require.NotNil(t, msg.Event)
	assert.Equal(t, "/home", msg.Event.From)
	assert.Equal(t, "/list/detail", msg.Event.To)
	assert.Equal(t, router.ComponentChain{"list", "detail"}, msg.Event.Chain)

	next := routertest.NewRouter().WithRoute("/home").Build(t)
	srv.SetRouter(next)
	assert.Equal(t, MessageReload, readMessage(t, conn).Type)

	// The old router no longer feeds the stream.
	require.NoError(t, r.Push("/home"))
	require.NoError(t, next.Push("/home"))
	msg = readMessage(t, conn)
	assert.Equal(t, MessageNavigation, msg.Type)
	assert.Equal(t, "/home", msg.Event.From)
	assert.Equal(t, "/home", msg.Event.To)
}

func TestNavigateBodyLimit(t *testing.T) {
	srv, _ := newTestServer(t)
	body := `{"path": "` + strings.Repeat("a", maxBodySize) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/navigate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
