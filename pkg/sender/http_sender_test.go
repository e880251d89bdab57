package sender

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testBatch() []MatchData {
	return []MatchData{
		{
			Meta: ManifestEntry{
				MatchID:    "11435",
				SourceFile: "match.dvw",
				Hash:       "aabbcc",
				Bytes:      20,
			},
			Payload: []byte(`{"match_id":"11435"}`),
		},
		{
			Meta: ManifestEntry{
				MatchID:    "11436",
				SourceFile: "second.dvw",
				Hash:       "ddeeff",
				Bytes:      20,
			},
			Payload: []byte(`{"match_id":"11436"}`),
		},
	}
}

func TestHTTPSenderSend(t *testing.T) {
	var (
		gotPath     string
		gotAuth     string
		gotHostname string
		gotAgentID  string
		gotManifest manifest
		gotMatches  []json.RawMessage
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotHostname = r.Header.Get("X-Agent-Hostname")
		gotAgentID = r.Header.Get("X-Scoutship-Agent-Id")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := json.Unmarshal([]byte(r.FormValue("manifest")), &gotManifest); err != nil {
			t.Errorf("failed to decode manifest: %v", err)
		}

		file, _, err := r.FormFile("matches")
		if err != nil {
			t.Errorf("missing matches part: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			t.Errorf("failed to read matches part: %v", err)
		}
		if err := json.Unmarshal(data, &gotMatches); err != nil {
			t.Errorf("matches part is not a JSON array: %v", err)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := NewHTTPSender(server.Client())
	err := s.Send(context.Background(), testBatch(), Metadata{
		AgentID:    "courtside-01",
		Hostname:   "scout-laptop",
		OSArch:     "linux/amd64",
		AuthKey:    "secret",
		ServiceURL: server.URL,
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotPath != IngestEndpoint {
		t.Errorf("expected path %s, got %s", IngestEndpoint, gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotHostname != "scout-laptop" {
		t.Errorf("expected hostname header, got %q", gotHostname)
	}
	if gotAgentID != "courtside-01" {
		t.Errorf("expected agent id header, got %q", gotAgentID)
	}

	if gotManifest.MatchCount != 2 {
		t.Errorf("expected match count 2, got %d", gotManifest.MatchCount)
	}
	if gotManifest.TotalBytes != 40 {
		t.Errorf("expected total bytes 40, got %d", gotManifest.TotalBytes)
	}
	if len(gotManifest.Matches) != 2 || gotManifest.Matches[0].MatchID != "11435" {
		t.Errorf("unexpected manifest entries: %+v", gotManifest.Matches)
	}
	if len(gotMatches) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(gotMatches))
	}
	if string(gotMatches[1]) != `{"match_id":"11436"}` {
		t.Errorf("unexpected second payload: %s", gotMatches[1])
	}
}

func TestHTTPSenderRejectedUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown agent", http.StatusForbidden)
	}))
	defer server.Close()

	s := NewHTTPSender(server.Client())
	err := s.Send(context.Background(), testBatch(), Metadata{ServiceURL: server.URL})
	if err == nil {
		t.Fatal("expected error for rejected upload")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("expected status in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown agent") {
		t.Errorf("expected response body in error, got %v", err)
	}
}

func TestHTTPSenderEmptyBatch(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	s := NewHTTPSender(server.Client())
	if err := s.Send(context.Background(), nil, Metadata{ServiceURL: server.URL}); err != nil {
		t.Fatalf("Send of empty batch failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("empty batch must not hit the service, got %d calls", calls)
	}
}

func TestHTTPSenderCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewHTTPSender(server.Client())
	if err := s.Send(ctx, testBatch(), Metadata{ServiceURL: server.URL}); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestSendMetadata(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotInfo agentInfo
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotInfo); err != nil {
			t.Errorf("failed to decode agent info: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := SendMetadata(context.Background(), server.Client(), Metadata{
		AgentID:    "courtside-01",
		Hostname:   "scout-laptop",
		OSArch:     "darwin/arm64",
		Version:    "1.0.0",
		AuthKey:    "secret",
		ServiceURL: server.URL,
	})
	if err != nil {
		t.Fatalf("SendMetadata failed: %v", err)
	}

	if gotPath != RegisterEndpoint {
		t.Errorf("expected path %s, got %s", RegisterEndpoint, gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotInfo.AgentID != "courtside-01" || gotInfo.Version != "1.0.0" {
		t.Errorf("unexpected agent info: %+v", gotInfo)
	}
}

func TestSendMetadataRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	err := SendMetadata(context.Background(), server.Client(), Metadata{ServiceURL: server.URL})
	if err == nil {
		t.Fatal("expected error for rejected registration")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got %v", err)
	}
}
