// Package api exposes the trajectory pipeline over HTTP. It serves data
// for external renderers; it draws nothing itself.
package api

import (
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/Alecbossard/PathPlanning/internal/db"
	"github.com/Alecbossard/PathPlanning/internal/pipeline"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Server handles the track and trajectory API.
type Server struct {
	db     *db.DB
	runner *pipeline.Runner
	units  string
}

// NewServer builds a Server over the given store and pipeline runner.
// units selects the display unit for speed fields (mps, mph, kmph).
func NewServer(store *db.DB, runner *pipeline.Runner, units string) *Server {
	return &Server{
		db:     store,
		runner: runner,
		units:  units,
	}
}

// ServeMux returns the route table for the API.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/tracks", s.createTrack)
	mux.HandleFunc("GET /api/tracks", s.listTracks)
	mux.HandleFunc("GET /api/tracks/{id}", s.getTrack)
	mux.HandleFunc("DELETE /api/tracks/{id}", s.deleteTrack)
	mux.HandleFunc("GET /api/tracks/{id}/trajectory", s.getTrajectory)
	mux.HandleFunc("GET /api/tracks/{id}/trajectories", s.listTrajectoryHistory)
	mux.HandleFunc("GET /api/tracks/{id}/trajectory.csv", s.exportTrajectoryCSV)
	mux.HandleFunc("GET /api/tracks/{id}/charts/speed", s.speedChart)
	mux.HandleFunc("GET /api/tracks/{id}/charts/map", s.mapChart)
	mux.HandleFunc("GET /api/optimizers", s.listOptimizers)
	mux.HandleFunc("GET /api/config", s.showConfig)
	return mux
}

// seededRand builds the optimizer random source from the request's seed
// parameter, or a time seed when absent.
func seededRand(seedParam string) (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	if seedParam != "" {
		if v, err := strconv.ParseInt(seedParam, 10, 64); err == nil {
			seed = v
		}
	}
	return rand.New(rand.NewSource(seed)), seed
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
