package feed

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteSSE(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSSEHeaders(rec)
	if err := WriteSSE(rec, StreamEvent{EventID: "7", Event: "match_reported", Data: 1}); err != nil {
		t.Fatalf("WriteSSE() error = %v", err)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "id: 7\nevent: match_reported\ndata: {") || !strings.HasSuffix(body, "}\n\n") {
		t.Fatalf("unexpected frame: %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestWriteSSEWithoutID(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteSSE(rec, StreamEvent{Event: "ping"}); err != nil {
		t.Fatalf("WriteSSE() error = %v", err)
	}
	if strings.Contains(rec.Body.String(), "id:") {
		t.Fatalf("frame without id carries an id line: %q", rec.Body.String())
	}
}
