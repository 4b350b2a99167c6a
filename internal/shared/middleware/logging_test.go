package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rr)

	wrapped.WriteHeader(http.StatusNotFound)

	if wrapped.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d", wrapped.Status(), http.StatusNotFound)
	}
}

func TestResponseWriter_WriteHeaderIdempotent(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rr)

	wrapped.WriteHeader(http.StatusNotFound)
	wrapped.WriteHeader(http.StatusOK) // should be ignored

	if wrapped.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d (second WriteHeader should be ignored)", wrapped.Status(), http.StatusNotFound)
	}
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rr)

	if wrapped.Status() != 0 {
		t.Errorf("Status() = %d before any write, want 0", wrapped.Status())
	}
	wrapped.Write([]byte("ok"))
	if wrapped.Status() != http.StatusOK {
		t.Errorf("Status() = %d after Write, want %d", wrapped.Status(), http.StatusOK)
	}
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel logrus.Level
	}{
		{"success", http.StatusCreated, logrus.InfoLevel},
		{"client error", http.StatusNotFound, logrus.WarnLevel},
		{"server error", http.StatusInternalServerError, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			handler := RequestID(Logging(log)(next))
			req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}

			entry := hook.LastEntry()
			if entry == nil {
				t.Fatal("expected a log entry")
			}
			if entry.Level != tt.wantLevel {
				t.Errorf("level = %v, want %v", entry.Level, tt.wantLevel)
			}
			if entry.Data["status"] != tt.status {
				t.Errorf("status field = %v, want %d", entry.Data["status"], tt.status)
			}
			if entry.Data["path"] != "/expenses" {
				t.Errorf("path field = %v", entry.Data["path"])
			}
			if entry.Data["request_id"] != rr.Header().Get(RequestIDHeader) {
				t.Errorf("request_id field = %v, header = %q", entry.Data["request_id"], rr.Header().Get(RequestIDHeader))
			}
		})
	}
}

func TestLogging_DefaultStatus(t *testing.T) {
	log, hook := test.NewNullLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	handler := Logging(log)(next)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %d want %d", rr.Code, http.StatusOK)
	}
	if got := hook.LastEntry().Data["status"]; got != http.StatusOK {
		t.Errorf("status field = %v, want 200", got)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rr.Header().Get(RequestIDHeader) != seen {
		t.Errorf("generated id = %q, header = %q", seen, rr.Header().Get(RequestIDHeader))
	}

	const incoming = "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != incoming {
		t.Errorf("id = %q, want incoming %q", seen, incoming)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "<script>" {
		t.Error("invalid incoming request id was reused")
	}
}
