package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/switchd/internal/logic"
	"github.com/sweeney/switchd/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	tr := status.NewTracker(mock, status.Config{
		PollMs:      1,
		HeartbeatMs: 900000,
		TickBits:    30,
		Backend:     "gpiocdev",
		Broker:      "tcp://192.168.1.200:1883",
		ClientID:    "hall",
		HTTPAddr:    ":80",
	})
	ts := httptest.NewServer(New(":0", tr).Handler())
	t.Cleanup(ts.Close)
	return ts, tr, mock
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr, mock := newTestServer(t)
	tr.Update([]logic.InputState{{Name: "doorbell", Kind: "button", State: true, Counts: logic.Counts{Pressed: 5, Clicked: 4}}})
	tr.SetMQTTConnected(true)
	mock.Add(3 * time.Hour)

	resp, body := get(t, ts.URL+"/index.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var sj status.StatusJSON
	require.NoError(t, json.Unmarshal([]byte(body), &sj))
	require.Len(t, sj.Status.Inputs, 1)
	assert.Equal(t, "doorbell", sj.Status.Inputs[0].Name)
	assert.Equal(t, "ON", sj.Status.Inputs[0].State)
	assert.Equal(t, 4, sj.Status.Inputs[0].Counts.Clicked)
	assert.True(t, sj.Status.MQTT.Connected)
	assert.Equal(t, "tcp://192.168.1.200:1883", sj.Status.MQTT.Broker)
	assert.EqualValues(t, 3*3600, sj.Status.UptimeSeconds)
	assert.Equal(t, "gpiocdev", sj.Status.Config.Backend)
}

func TestIndexHTML(t *testing.T) {
	ts, tr, mock := newTestServer(t)
	tr.Update([]logic.InputState{
		{Name: "doorbell", Kind: "button", State: false, Counts: logic.Counts{RepeatClicked: 7}},
		{Name: "lamp", Kind: "toggle", State: true},
	})
	mock.Add(26*time.Hour + 61*time.Second)

	for _, path := range []string{"/", "/index.html"} {
		resp, body := get(t, ts.URL+path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Contains(t, body, "<td>doorbell</td>")
		assert.Contains(t, body, `<td class="on">ON</td>`)
		assert.Contains(t, body, "<td>7</td>")
		assert.Contains(t, body, "1d 2h 1m 1s")
		assert.Contains(t, body, "disconnected")
		assert.Contains(t, body, "30 bits")
	}
}

func TestIndexNoInputs(t *testing.T) {
	ts, _, _ := newTestServer(t)
	_, body := get(t, ts.URL+"/")
	assert.True(t, strings.Contains(body, "No inputs configured."))
}

func TestUnknownPath(t *testing.T) {
	ts, _, _ := newTestServer(t)
	resp, _ := get(t, ts.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
