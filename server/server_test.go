package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gouranga-GH/yt-to-other-sm/pipeline"
	"github.com/Gouranga-GH/yt-to-other-sm/youtube"
)

type stubExtractor struct {
	video youtube.Video
	err   error
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (youtube.Video, error) {
	return s.video, s.err
}

func testVideo() youtube.Video {
	return youtube.Video{
		ID:          "abc123",
		URL:         "https://www.youtube.com/watch?v=abc123",
		Title:       "Ten Minute Sourdough Guide",
		Description: "Learn sourdough baking basics.",
		Duration:    600,
		Transcript: "Feed your starter until it doubles. Mix flour and water. " +
			"Fold the dough every thirty minutes. Bake in a hot oven until golden.",
		Source: youtube.SourceCaptions,
	}
}

func mockFactory(llm pipeline.LLMClient) LLMFactory {
	return func(string) (pipeline.LLMClient, error) { return llm, nil }
}

func newTestServer(t *testing.T, extractor VideoExtractor, llm pipeline.LLMClient) *httptest.Server {
	t.Helper()
	srv, err := New(extractor, mockFactory(llm), WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postGenerate(t *testing.T, ts *httptest.Server, body map[string]string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/api/generate", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	var decoded map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestGenerate_Success(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{video: testVideo()}, pipeline.MockLLM{})

	resp, body := postGenerate(t, ts, map[string]string{
		"url":          "https://www.youtube.com/watch?v=abc123",
		"platform":     "Instagram",
		"content_type": "Carousel",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var runID, filename string
	require.NoError(t, json.Unmarshal(body["run_id"], &runID))
	require.NoError(t, json.Unmarshal(body["filename"], &filename))
	require.NotEmpty(t, runID)
	require.True(t, strings.HasPrefix(filename, "instagram_carousel_"), "filename = %s", filename)
	require.True(t, strings.HasSuffix(filename, ".md"), "filename = %s", filename)
}

func TestGenerate_Download(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{video: testVideo()}, pipeline.MockLLM{})

	_, body := postGenerate(t, ts, map[string]string{
		"url":          "https://www.youtube.com/watch?v=abc123",
		"platform":     "Medium",
		"content_type": "Article",
	})
	var runID string
	require.NoError(t, json.Unmarshal(body["run_id"], &runID))

	resp, err := http.Get(ts.URL + "/api/runs/" + runID + "/download")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")
	require.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	md, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(md), "# Ten Minute Sourdough Guide")
}

func TestGenerate_InvalidURL(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{video: testVideo()}, pipeline.MockLLM{})

	resp, body := postGenerate(t, ts, map[string]string{
		"url":          "https://example.com/video",
		"platform":     "Instagram",
		"content_type": "Post",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var kind string
	require.NoError(t, json.Unmarshal(body["kind"], &kind))
	require.Equal(t, "bad_request", kind)
}

func TestGenerate_InvalidSelection(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{video: testVideo()}, pipeline.MockLLM{})

	resp, body := postGenerate(t, ts, map[string]string{
		"url":          "https://www.youtube.com/watch?v=abc123",
		"platform":     "Instagram",
		"content_type": "Tutorial",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var kind string
	require.NoError(t, json.Unmarshal(body["kind"], &kind))
	require.Equal(t, "config", kind)
}

func TestGenerate_ExtractionFailure(t *testing.T) {
	extractor := &stubExtractor{err: &youtube.ExtractionError{
		URL: "https://www.youtube.com/watch?v=gone",
		Err: errors.New("watch page returned status 404"),
	}}
	ts := newTestServer(t, extractor, pipeline.MockLLM{})

	resp, body := postGenerate(t, ts, map[string]string{
		"url":          "https://www.youtube.com/watch?v=gone",
		"platform":     "Medium",
		"content_type": "Story",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var kind string
	require.NoError(t, json.Unmarshal(body["kind"], &kind))
	require.Equal(t, "extraction", kind)
}

func TestGenerate_StageFailure(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{video: testVideo()}, pipeline.MockLLM{FailStage: pipeline.StageDraft})

	resp, body := postGenerate(t, ts, map[string]string{
		"url":          "https://www.youtube.com/watch?v=abc123",
		"platform":     "Medium",
		"content_type": "Tutorial",
	})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var kind, msg string
	require.NoError(t, json.Unmarshal(body["kind"], &kind))
	require.NoError(t, json.Unmarshal(body["message"], &msg))
	require.Equal(t, "generation", kind)
	require.Contains(t, msg, pipeline.StageDraft)
}

func TestRun_NotFound(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{video: testVideo()}, pipeline.MockLLM{})

	resp, err := http.Get(ts.URL + "/api/runs/no-such-run")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlatforms(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{video: testVideo()}, pipeline.MockLLM{})

	resp, err := http.Get(ts.URL + "/api/platforms")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	require.ElementsMatch(t, []string{"Post", "Story", "Carousel"}, data["Instagram"])
	require.ElementsMatch(t, []string{"Article", "Story", "Tutorial"}, data["Medium"])
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t, &stubExtractor{video: testVideo()}, pipeline.MockLLM{})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(page), "YouTube to Content Creator")
}
