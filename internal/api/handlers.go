package api

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/Alecbossard/PathPlanning/internal/db"
	"github.com/Alecbossard/PathPlanning/internal/httputil"
	"github.com/Alecbossard/PathPlanning/internal/optimize"
	"github.com/Alecbossard/PathPlanning/internal/profile"
	"github.com/Alecbossard/PathPlanning/internal/security"
	"github.com/Alecbossard/PathPlanning/internal/units"
)

// maxUploadBytes bounds marker file uploads.
const maxUploadBytes = 4 << 20 // 4MB

// createTrack stores an uploaded marker CSV. The body is the raw marker
// text; the optional `name` query parameter labels the track.
func (s *Server) createTrack(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		httputil.BadRequest(w, "failed to read request body")
		return
	}
	if len(body) == 0 {
		httputil.BadRequest(w, "empty track upload")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "untitled track"
	}

	t, err := s.db.InsertTrack(name, string(body))
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to store track: %v", err))
		return
	}

	// Report how much of the upload parsed so the client can flag
	// low-quality marker sets immediately.
	markers := s.runner.Run(t.Source, nil)
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"track":            t,
		"marker_count":     len(markers.Markers),
		"centerline_count": len(markers.Centerline),
	})
}

func (s *Server) listTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := s.db.ListTracks()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list tracks: %v", err))
		return
	}
	if tracks == nil {
		tracks = []*db.Track{}
	}
	httputil.WriteJSONOK(w, tracks)
}

func (s *Server) getTrack(w http.ResponseWriter, r *http.Request) {
	t, err := s.db.GetTrack(r.PathValue("id"))
	if errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "track not found")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to fetch track: %v", err))
		return
	}
	httputil.WriteJSONOK(w, t)
}

func (s *Server) deleteTrack(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteTrack(r.PathValue("id")); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to delete track: %v", err))
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"status": "deleted"})
}

// computeTrajectory runs the pipeline for a stored track with the
// optimizer and seed selected by query parameters.
func (s *Server) computeTrajectory(w http.ResponseWriter, r *http.Request) (*db.Trajectory, bool) {
	t, err := s.db.GetTrack(r.PathValue("id"))
	if errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "track not found")
		return nil, false
	}
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to fetch track: %v", err))
		return nil, false
	}

	name := r.URL.Query().Get("optimizer")
	if name == "" {
		name = "centerline"
	}
	rng, seed := seededRand(r.URL.Query().Get("seed"))

	var opt optimize.Optimizer
	if name != "centerline" {
		var ok bool
		opt, ok = optimize.ByName(name, rng)
		if !ok {
			httputil.BadRequest(w, fmt.Sprintf("unknown optimizer %q", name))
			return nil, false
		}
	}

	res := s.runner.Run(t.Source, opt)
	rec := &db.Trajectory{
		TrackID:   t.ID,
		Optimizer: res.Optimizer,
		Seed:      seed,
		Points:    res.Points,
		Metadata:  res.Metadata,
	}
	if err := s.db.InsertTrajectory(rec); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to store trajectory: %v", err))
		return nil, false
	}
	return rec, true
}

// trajectoryResponse is the JSON shape of a computed trajectory, with
// speed fields converted to the server's display units.
type trajectoryResponse struct {
	TrackID   string                `json:"track_id"`
	Optimizer string                `json:"optimizer"`
	Seed      int64                 `json:"seed"`
	Units     string                `json:"units"`
	Metadata  profile.TrackMetadata `json:"metadata"`
	Points    []profile.PathPoint   `json:"points"`
}

func (s *Server) getTrajectory(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.computeTrajectory(w, r)
	if !ok {
		return
	}

	resp := trajectoryResponse{
		TrackID:   rec.TrackID,
		Optimizer: rec.Optimizer,
		Seed:      rec.Seed,
		Units:     s.units,
		Metadata:  rec.Metadata,
		Points:    make([]profile.PathPoint, len(rec.Points)),
	}
	copy(resp.Points, rec.Points)
	for i := range resp.Points {
		resp.Points[i].Velocity = units.ConvertSpeed(resp.Points[i].Velocity, s.units)
		resp.Points[i].MaxSpeed = units.ConvertSpeed(resp.Points[i].MaxSpeed, s.units)
	}
	resp.Metadata.AverageSpeed = units.ConvertSpeed(resp.Metadata.AverageSpeed, s.units)

	httputil.WriteJSONOK(w, resp)
}

// exportTrajectoryCSV streams the fixed-schema trajectory export. Speeds
// stay in m/s: the CSV schema is a wire format for downstream tools, not
// a display surface.
func (s *Server) exportTrajectoryCSV(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.computeTrajectory(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.csv",
			security.SanitizeFilename(rec.TrackID+"-"+rec.Optimizer)))
	if err := profile.WriteCSV(w, rec.Points); err != nil {
		log.Printf("failed to stream trajectory csv: %v", err)
	}
}

// listTrajectoryHistory reports stored trajectory runs for a track, newest
// first, metadata only.
func (s *Server) listTrajectoryHistory(w http.ResponseWriter, r *http.Request) {
	if _, err := s.db.GetTrack(r.PathValue("id")); errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "track not found")
		return
	} else if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to fetch track: %v", err))
		return
	}

	history, err := s.db.ListTrajectories(r.PathValue("id"))
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list trajectories: %v", err))
		return
	}
	if history == nil {
		history = []*db.Trajectory{}
	}
	httputil.WriteJSONOK(w, history)
}

// listOptimizers reports the available optimizer names.
func (s *Server) listOptimizers(w http.ResponseWriter, r *http.Request) {
	names := []string{"centerline"}
	for _, o := range optimize.All(nil) {
		names = append(names, o.Name())
	}
	httputil.WriteJSONOK(w, names)
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]any{
		"units":      s.units,
		"centerline": s.runner.Centerline,
		"vehicle":    s.runner.Vehicle,
	})
}
