package httputil

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Alecbossard/PathPlanning/internal/testutil"
)

func TestWriteJSONError(t *testing.T) {
	t.Parallel()

	rec := testutil.NewTestRecorder()
	WriteJSONError(rec, http.StatusBadRequest, "test error")

	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %s, want application/json", ct)
	}

	var resp map[string]string
	testutil.AssertNoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	if resp["error"] != "test error" {
		t.Errorf("error = %s, want 'test error'", resp["error"])
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	rec := testutil.NewTestRecorder()
	data := map[string]string{"message": "hello"}
	WriteJSON(rec, http.StatusCreated, data)

	testutil.AssertStatusCode(t, rec.Code, http.StatusCreated)

	var resp map[string]string
	testutil.AssertNoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	if resp["message"] != "hello" {
		t.Errorf("message = %s, want 'hello'", resp["message"])
	}
}

func TestWriteJSONOK(t *testing.T) {
	t.Parallel()

	rec := testutil.NewTestRecorder()
	WriteJSONOK(rec, map[string]int{"count": 42})

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var resp map[string]int
	testutil.AssertNoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	if resp["count"] != 42 {
		t.Errorf("count = %d, want 42", resp["count"])
	}
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad") }, http.StatusBadRequest},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "missing") }, http.StatusNotFound},
		{"internal error", func(w http.ResponseWriter) { InternalServerError(w, "boom") }, http.StatusInternalServerError},
		{"method not allowed", MethodNotAllowed, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := testutil.NewTestRecorder()
			tt.write(rec)
			testutil.AssertStatusCode(t, rec.Code, tt.status)

			var resp map[string]string
			testutil.AssertNoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			if resp["error"] == "" {
				t.Error("expected an error message in the body")
			}
		})
	}
}
