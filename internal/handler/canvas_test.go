package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archcanvas/internal/canvas"
	"archcanvas/internal/loader"
	"archcanvas/internal/render"
	"archcanvas/internal/session"
)

func newTestServer(t *testing.T) (*session.Session, http.Handler) {
	t.Helper()
	sess, err := session.New(loader.Sample(), nil)
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewCanvasHandler(sess, render.DefaultOptions()).Register(mux)
	return sess, mux
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeFrame(t *testing.T, rec *httptest.ResponseRecorder) canvas.Frame {
	t.Helper()
	var frame canvas.Frame
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &frame))
	return frame
}

func TestGetFrame(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/frame", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	frame := decodeFrame(t, rec)
	assert.Len(t, frame.Cards, 5)
	assert.Len(t, frame.Connectors, 4)
	assert.Equal(t, 1.0, frame.Scale)
	assert.Equal(t, canvas.GestureIdle, frame.Gesture.State)
}

func TestPostEventsDrag(t *testing.T) {
	_, h := newTestServer(t)

	body := `[
		{"type":"pointerdown","x":450,"y":250},
		{"type":"pointermove","x":530,"y":330},
		{"type":"pointerup"}
	]`
	rec := do(t, h, http.MethodPost, "/api/events", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	frame := decodeFrame(t, rec)
	assert.Equal(t, 480, frame.Cards[0].X)
	assert.Equal(t, 280, frame.Cards[0].Y)
	assert.Equal(t, canvas.GestureIdle, frame.Gesture.State)
	assert.Equal(t, 0.0, frame.OffsetX)
}

func TestPostEventsSingleObject(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/events", `{"type":"wheel","x":0,"y":0,"delta_y":-100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1.1, decodeFrame(t, rec).Scale, 1e-9)
}

func TestPostEventsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", `[{"type":`},
		{"unknown type", `[{"type":"doubleclick","x":1,"y":1}]`},
		{"card target without card", `[{"type":"pointerdown","target":"card","x":1,"y":1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, h := newTestServer(t)
			rec := do(t, h, http.MethodPost, "/api/events", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, canvas.GestureIdle, sess.Frame().Gesture.State)
		})
	}
}

func TestPostEventsValidatesWholeBatch(t *testing.T) {
	sess, h := newTestServer(t)

	body := `[{"type":"pointerdown","x":450,"y":250},{"type":"bogus"}]`
	rec := do(t, h, http.MethodPost, "/api/events", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, canvas.GestureIdle, sess.Frame().Gesture.State)
}

func TestGetRoute(t *testing.T) {
	sess, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/route?from=0&to=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	want, err := sess.Route(0, 1)
	require.NoError(t, err)
	assert.Equal(t, want, resp.Path)
	assert.True(t, strings.HasPrefix(resp.Path, "M 700,"))

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/route?from=0&to=9", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/route?from=a&to=1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/route?from=0", "").Code)
}

func TestReset(t *testing.T) {
	sess, h := newTestServer(t)

	_, err := sess.Dispatch(
		session.Input{Type: session.InputWheel, DeltaY: -1},
		session.Input{Type: session.InputPointerDown, X: 495, Y: 255},
		session.Input{Type: session.InputPointerMove, X: 600, Y: 400},
	)
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, "/api/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)

	frame := decodeFrame(t, rec)
	assert.Equal(t, 1.0, frame.Scale)
	assert.Equal(t, 400, frame.Cards[0].X)
	assert.Equal(t, 200, frame.Cards[0].Y)
	assert.Equal(t, canvas.GestureIdle, frame.Gesture.State)
}

func TestExportLayout(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/export/yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/x-yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "name: frontend")

	rec = do(t, h, http.MethodGet, "/api/export/json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "layout.json")

	var exported struct {
		Cards []struct {
			Name string `json:"name"`
		} `json:"cards"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exported))
	assert.Len(t, exported.Cards, 5)
}

func TestExportPNG(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/export/png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestPostEventsRejectsOutOfRangeCoordinates(t *testing.T) {
	_, h := newTestServer(t)

	body := `[
		{"type":"pointerdown","target":"background","x":0,"y":0},
		{"type":"pointermove","x":1e308,"y":0},
		{"type":"pointermove","x":-1e308,"y":0},
		{"type":"pointerup"}
	]`
	rec := do(t, h, http.MethodPost, "/api/events", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/frame", "")
	require.Equal(t, http.StatusOK, rec.Code)
	frame := decodeFrame(t, rec)
	assert.Equal(t, 0.0, frame.OffsetX)
	assert.Equal(t, canvas.GestureIdle, frame.Gesture.State)
}

func TestExportPNGTooLarge(t *testing.T) {
	_, h := newTestServer(t)

	body := `[
		{"type":"pointerdown","x":450,"y":250},
		{"type":"pointermove","x":1e7,"y":250},
		{"type":"pointerup"}
	]`
	rec := do(t, h, http.MethodPost, "/api/events", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 9999920, decodeFrame(t, rec).Cards[0].X)

	rec = do(t, h, http.MethodGet, "/api/export/png", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "too large")
}

func TestMethodRouting(t *testing.T) {
	_, h := newTestServer(t)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/api/events", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/api/reset", "").Code)
}
