package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/scene"
)

func newTestServer(t *testing.T, timeout time.Duration) (*httptest.Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	s := NewServer(0, timeout, log.New(&logs, "", 0))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, &logs
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Reading body failed: %v", err)
	}
	return resp, body
}

func TestHandleHealth(t *testing.T) {
	ts, _ := newTestServer(t, 0)
	resp, body := get(t, ts.URL+"/api/health")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var status map[string]string
	if err := json.Unmarshal(body, &status); err != nil || status["status"] != "ok" {
		t.Errorf("Unexpected health body %q", body)
	}
}

func TestHandleScenes(t *testing.T) {
	ts, _ := newTestServer(t, 0)
	resp, body := get(t, ts.URL+"/api/scenes")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var scenes scene.ScenesResponse
	if err := json.Unmarshal(body, &scenes); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	count := 0
	for _, group := range scenes.Groups {
		count += len(group.Scenes)
	}
	if count != len(scene.SceneIDs()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.SceneIDs()), count)
	}
}

func TestHandleRender(t *testing.T) {
	ts, logs := newTestServer(t, 0)
	resp, body := get(t, ts.URL+"/api/render?scene=quads&width=12&spp=1&depth=3")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	if resp.Header.Get("X-Render-Partial") != "false" {
		t.Errorf("Expected complete render, got partial=%q", resp.Header.Get("X-Render-Partial"))
	}
	if resp.Header.Get("X-Render-Samples") != "144" {
		t.Errorf("Expected 144 samples, got %q", resp.Header.Get("X-Render-Samples"))
	}

	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 12 {
		t.Errorf("Expected 12x12 image, got %v", b)
	}

	if !strings.Contains(logs.String(), "[render-") {
		t.Errorf("Expected render progress in the server log, got %q", logs.String())
	}
}

func TestHandleRender_Timeout(t *testing.T) {
	ts, _ := newTestServer(t, time.Nanosecond)
	resp, body := get(t, ts.URL+"/api/render?scene=quads&width=12&spp=1")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Render-Partial") != "true" {
		t.Errorf("Expected partial render, got %q", resp.Header.Get("X-Render-Partial"))
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"Unknown scene", "scene=teapot"},
		{"Width not a number", "width=wide"},
		{"Width too large", "width=5000"},
		{"Zero samples", "spp=0"},
		{"Negative depth", "depth=-1"},
	}

	ts, _ := newTestServer(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/api/render?"+tt.query)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", resp.StatusCode)
			}
			var errBody map[string]string
			if err := json.Unmarshal(body, &errBody); err != nil || errBody["error"] == "" {
				t.Errorf("Expected JSON error body, got %q", body)
			}
		})
	}
}

func TestHandleRender_MethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t, 0)
	resp, err := http.Post(ts.URL+"/api/render", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", resp.StatusCode)
	}
}

func TestHandleInspect(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		status       int
		hit          bool
		materialType string
	}{
		// The quads scene looks straight at a green quad in the middle
		{"Center hits green quad", "scene=quads&width=9&x=4&y=4", http.StatusOK, true, "lambertian"},
		// Corners of the quads view look past every quad
		{"Corner misses", "scene=quads&width=9&x=0&y=0", http.StatusOK, false, ""},
		{"Out of bounds", "scene=quads&width=9&x=9&y=0", http.StatusBadRequest, false, ""},
		{"Missing coordinate", "scene=quads&width=9&x=1", http.StatusBadRequest, false, ""},
	}

	ts, _ := newTestServer(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/api/inspect?"+tt.query)
			if resp.StatusCode != tt.status {
				t.Fatalf("Expected %d, got %d: %s", tt.status, resp.StatusCode, body)
			}
			if tt.status != http.StatusOK {
				return
			}

			var result InspectResponse
			if err := json.Unmarshal(body, &result); err != nil {
				t.Fatalf("Invalid JSON: %v", err)
			}
			if result.Hit != tt.hit {
				t.Errorf("Expected hit=%v, got %v", tt.hit, result.Hit)
			}
			if result.MaterialType != tt.materialType {
				t.Errorf("Expected material %q, got %q", tt.materialType, result.MaterialType)
			}
		})
	}
}

func TestWebLogger(t *testing.T) {
	var out bytes.Buffer
	logger := NewWebLogger("render-1", log.New(&out, "", 0))

	logger.Printf("Rendering %dx%d\n", 4, 2)
	logger.Printf("\n")

	if got := out.String(); got != "[render-1] Rendering 4x2\n" {
		t.Errorf("Unexpected log output %q", got)
	}
}
