package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"marketmind/internal/digest"
	"marketmind/internal/model"
)

type fakeDigestStore struct {
	digest *model.DailyDigest
	err    error
}

func (f *fakeDigestStore) Load(ctx context.Context) (*model.DailyDigest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.digest, nil
}

func sampleDigest() *model.DailyDigest {
	return &model.DailyDigest{
		GeneratedAt: time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC),
		Topics: map[string]model.TopicDigest{
			"Crypto": {
				Topic:            "Crypto",
				ExecutiveSummary: "Bitcoin traded sideways.",
				Implications:     []string{"Volumes fell 12%"},
				BeginnerSummary:  "Not much happened.",
				Sources: []model.Article{
					{Title: "BTC steady", URL: "https://example.com/btc", Source: "Example Feed", Text: "body"},
				},
			},
			"Tech": {
				Topic:            "Tech",
				ExecutiveSummary: "New fabs announced.",
				Implications:     []string{"Capex up"},
				BeginnerSummary:  "New chip factories.",
			},
		},
	}
}

func newTestDigestRouter(store DigestReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDigestHandler(store)
	r.GET("/digest", h.GetDigest)
	r.GET("/topics", h.GetTopics)
	r.GET("/topics/:topic", h.GetTopic)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetDigest(t *testing.T) {
	r := newTestDigestRouter(&fakeDigestStore{digest: sampleDigest()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/digest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var doc map[string]json.RawMessage
	err := json.Unmarshal(w.Body.Bytes(), &doc)
	assert.Equal(t, nil, err)

	_, hasMeta := doc["_meta"]
	assert.Equal(t, true, hasMeta)
	_, hasCrypto := doc["Crypto"]
	assert.Equal(t, true, hasCrypto)
	_, hasTech := doc["Tech"]
	assert.Equal(t, true, hasTech)
}

func TestGetDigestMissing(t *testing.T) {
	r := newTestDigestRouter(&fakeDigestStore{err: digest.ErrNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/digest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	assert.Equal(t, "No digest available", body["error"])
}

func TestGetDigestStorageError(t *testing.T) {
	r := newTestDigestRouter(&fakeDigestStore{err: errors.New("disk on fire")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/digest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetTopics(t *testing.T) {
	r := newTestDigestRouter(&fakeDigestStore{digest: sampleDigest()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/topics", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res TopicsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "2026-03-14T06:00:00Z", res.GeneratedAt)
	assert.Equal(t, []string{"Crypto", "Tech"}, res.Topics)
}

func TestGetTopic(t *testing.T) {
	r := newTestDigestRouter(&fakeDigestStore{digest: sampleDigest()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/topics/Crypto", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res TopicResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Crypto", res.Topic)
	assert.Equal(t, "Bitcoin traded sideways.", res.ExecutiveSummary)
	assert.Equal(t, []string{"Volumes fell 12%"}, res.Implications)
	assert.Equal(t, 1, len(res.Sources))
	assert.Equal(t, "https://example.com/btc", res.Sources[0].URL)
}

func TestGetTopicUnknown(t *testing.T) {
	r := newTestDigestRouter(&fakeDigestStore{digest: sampleDigest()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/topics/Sports", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHealth(t *testing.T) {
	r := newTestDigestRouter(&fakeDigestStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
