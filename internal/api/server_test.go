package api

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alecbossard/PathPlanning/internal/db"
	"github.com/Alecbossard/PathPlanning/internal/pipeline"
)

func newTestServer(t *testing.T, units string) *httptest.Server {
	t.Helper()
	store, err := db.NewDB(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(NewServer(store, pipeline.NewRunner(nil), units).ServeMux())
	t.Cleanup(srv.Close)
	return srv
}

// ringCSV builds a small circular marker set.
func ringCSV(pairs int) string {
	var sb strings.Builder
	for i := 0; i < pairs; i++ {
		a := 2 * math.Pi * float64(i) / float64(pairs)
		fmt.Fprintf(&sb, "blue,%f,%f\n", 28*math.Cos(a), 28*math.Sin(a))
		fmt.Fprintf(&sb, "yellow,%f,%f\n", 33*math.Cos(a), 33*math.Sin(a))
	}
	sb.WriteString("car_start,30.5,0\n")
	return sb.String()
}

func uploadTrack(t *testing.T, srv *httptest.Server, name string) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/tracks?name="+name, "text/csv", strings.NewReader(ringCSV(36)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Track           db.Track `json:"track"`
		MarkerCount     int      `json:"marker_count"`
		CenterlineCount int      `json:"centerline_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 73, body.MarkerCount)
	assert.Equal(t, 36, body.CenterlineCount)
	require.NotEmpty(t, body.Track.ID)
	return body.Track.ID
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestCreateAndFetchTrack(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")

	id := uploadTrack(t, srv, "ring")

	var got db.Track
	resp := getJSON(t, srv.URL+"/api/tracks/"+id, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ring", got.Name)
	assert.Contains(t, got.Source, "car_start")
}

func TestCreateTrack_EmptyBody(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")

	resp, err := http.Post(srv.URL+"/api/tracks", "text/csv", strings.NewReader(""))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetTrack_NotFound(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")

	resp, err := http.Get(srv.URL + "/api/tracks/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListTracks(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")

	var empty []db.Track
	resp := getJSON(t, srv.URL+"/api/tracks", &empty)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, empty)

	uploadTrack(t, srv, "one")
	uploadTrack(t, srv, "two")

	var tracks []db.Track
	getJSON(t, srv.URL+"/api/tracks", &tracks)
	assert.Len(t, tracks, 2)
}

func TestDeleteTrack(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")
	id := uploadTrack(t, srv, "doomed")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/tracks/"+id, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/tracks/" + id)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetTrajectory(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")
	id := uploadTrack(t, srv, "ring")

	var body trajectoryResponse
	resp := getJSON(t, srv.URL+"/api/tracks/"+id+"/trajectory?optimizer=laplacian&seed=7", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, id, body.TrackID)
	assert.Equal(t, "laplacian", body.Optimizer)
	assert.Equal(t, int64(7), body.Seed)
	assert.Equal(t, "mps", body.Units)
	require.NotEmpty(t, body.Points)
	assert.Equal(t, len(body.Points), body.Metadata.SampleCount)
	assert.Greater(t, body.Metadata.AverageSpeed, 0.0)
}

func TestGetTrajectory_DefaultsToCenterline(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")
	id := uploadTrack(t, srv, "ring")

	var body trajectoryResponse
	resp := getJSON(t, srv.URL+"/api/tracks/"+id+"/trajectory", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "centerline", body.Optimizer)
}

func TestGetTrajectory_UnknownOptimizer(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")
	id := uploadTrack(t, srv, "ring")

	resp, err := http.Get(srv.URL + "/api/tracks/" + id + "/trajectory?optimizer=teleport")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetTrajectory_UnitConversion(t *testing.T) {
	t.Parallel()

	mps := newTestServer(t, "mps")
	mph := newTestServer(t, "mph")

	var a, b trajectoryResponse
	getJSON(t, mps.URL+"/api/tracks/"+uploadTrack(t, mps, "r")+"/trajectory?seed=1", &a)
	getJSON(t, mph.URL+"/api/tracks/"+uploadTrack(t, mph, "r")+"/trajectory?seed=1", &b)

	require.NotEmpty(t, a.Points)
	require.NotEmpty(t, b.Points)
	assert.InDelta(t, a.Points[0].Velocity*2.23694, b.Points[0].Velocity, 0.01)
	assert.InDelta(t, a.Metadata.AverageSpeed*2.23694, b.Metadata.AverageSpeed, 0.01)
	// Lap time is a duration, not a speed; it must not be converted.
	assert.InDelta(t, a.Metadata.LapTime, b.Metadata.LapTime, 1e-9)
}

func TestExportTrajectoryCSV(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mph")
	id := uploadTrack(t, srv, "ring")

	resp, err := http.Get(srv.URL + "/api/tracks/" + id + "/trajectory.csv?optimizer=hybrid")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "hybrid")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t, "x,y,z,yaw,velocity,curvature,acceleration,dist", lines[0])
	assert.Equal(t, 36*8+1, len(lines))
}

func TestListTrajectoryHistory(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")
	id := uploadTrack(t, srv, "ring")

	var empty []db.Trajectory
	resp := getJSON(t, srv.URL+"/api/tracks/"+id+"/trajectories", &empty)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, empty)

	// Two computed runs land in the history, newest first and without
	// point payloads.
	getJSON(t, srv.URL+"/api/tracks/"+id+"/trajectory?optimizer=laplacian", nil)
	getJSON(t, srv.URL+"/api/tracks/"+id+"/trajectory?optimizer=hybrid", nil)

	var history []db.Trajectory
	getJSON(t, srv.URL+"/api/tracks/"+id+"/trajectories", &history)
	require.Len(t, history, 2)
	for _, h := range history {
		assert.Empty(t, h.Points)
		assert.Greater(t, h.Metadata.TotalLength, 0.0)
	}

	resp, err := http.Get(srv.URL + "/api/tracks/nope/trajectories")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListOptimizers(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")

	var names []string
	resp := getJSON(t, srv.URL+"/api/optimizers", &names)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{
		"centerline", "laplacian", "shortcut", "biharmonic",
		"hybrid", "search-refine", "horizon",
	}, names)
}

func TestShowConfig(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "kmph")

	var body map[string]any
	resp := getJSON(t, srv.URL+"/api/config", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "kmph", body["units"])
	assert.Contains(t, body, "vehicle")
	assert.Contains(t, body, "centerline")
}

func TestSpeedChart(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "mps")
	id := uploadTrack(t, srv, "ring")

	resp, err := http.Get(srv.URL + "/api/tracks/" + id + "/charts/speed?optimizer=laplacian")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echarts")
}

func TestStatusCodeColor(t *testing.T) {
	t.Parallel()
	assert.Contains(t, statusCodeColor(200), "200")
	assert.Contains(t, statusCodeColor(302), colorYellow)
	assert.Contains(t, statusCodeColor(500), colorBoldRed)
	assert.Equal(t, "100", statusCodeColor(100))
}
