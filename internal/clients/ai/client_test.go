package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(textURL, voiceURL string, maxRetries int) *Client {
	return NewClient(textURL, "text-key", voiceURL, "voice-key", maxRetries, 2*time.Second, nil)
}

func TestGenerate_Success(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reference":"Psalm 46:10","text":"Be still, and know that I am God.","version":"NIV","meditationGuide":"Sit quietly and repeat the verse."}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", 0)
	resp, err := client.Generate(context.Background(), GenerateRequest{Emotion: "peace", Language: "en"})

	require.NoError(t, err)
	assert.Equal(t, "Psalm 46:10", resp.Reference)
	assert.Equal(t, "NIV", resp.Version)
	assert.Equal(t, "Bearer text-key", gotAuth)
}

func TestGenerate_RetriesTransientFailure(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"reference":"Isaiah 41:10","text":"Fear not, for I am with you.","version":"ESV"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", 2)
	resp, err := client.Generate(context.Background(), GenerateRequest{Emotion: "fear", Language: "en"})

	require.NoError(t, err)
	assert.Equal(t, "Isaiah 41:10", resp.Reference)
	assert.EqualValues(t, 2, atomic.LoadInt32(&attempts))
}

func TestGenerate_DoesNotRetryClientError(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", 3)
	_, err := client.Generate(context.Background(), GenerateRequest{Emotion: "peace", Language: "en"})

	require.Error(t, err)
	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, CategoryAPI, vendorErr.Category)
	assert.Equal(t, http.StatusBadRequest, vendorErr.StatusCode)
	assert.EqualValues(t, 1, atomic.LoadInt32(&attempts))
}

func TestGenerate_GivesUpAfterMaxRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", 1)
	_, err := client.Generate(context.Background(), GenerateRequest{Emotion: "hope", Language: "en"})

	require.Error(t, err)
	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.True(t, vendorErr.Retryable())
	assert.EqualValues(t, 2, atomic.LoadInt32(&attempts)) // initial attempt + 1 retry
}

func TestGenerate_EmptyContentIsGenerationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reference":"","text":""}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", 0)
	_, err := client.Generate(context.Background(), GenerateRequest{Emotion: "joy", Language: "en"})

	require.Error(t, err)
	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, CategoryGeneration, vendorErr.Category)
	assert.False(t, vendorErr.Retryable())
}

func TestGenerate_NotConfigured(t *testing.T) {
	client := newTestClient("", "", 0)
	_, err := client.Generate(context.Background(), GenerateRequest{Emotion: "peace"})

	require.Error(t, err)
	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, CategoryAPI, vendorErr.Category)
}

func TestSynthesize_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"audioUrl":"https://cdn.example.com/audio/abc.mp3","durationSeconds":95}`))
	}))
	defer server.Close()

	client := newTestClient("", server.URL, 0)
	resp, err := client.Synthesize(context.Background(), SynthesizeRequest{Text: "Be still.", VoiceID: "voice-1"})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/audio/abc.mp3", resp.AudioURL)
	assert.Equal(t, 95, resp.DurationSeconds)
}

func TestSynthesize_MissingAudioURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"durationSeconds":10}`))
	}))
	defer server.Close()

	client := newTestClient("", server.URL, 0)
	_, err := client.Synthesize(context.Background(), SynthesizeRequest{Text: "Be still."})

	require.Error(t, err)
	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, CategoryGeneration, vendorErr.Category)
}

func TestVendorError_Retryable(t *testing.T) {
	cases := []struct {
		name string
		err  VendorError
		want bool
	}{
		{"network", VendorError{Category: CategoryNetwork}, true},
		{"timeout", VendorError{Category: CategoryTimeout}, true},
		{"rate limited", VendorError{Category: CategoryAPI, StatusCode: 429}, true},
		{"server error", VendorError{Category: CategoryAPI, StatusCode: 502}, true},
		{"client error", VendorError{Category: CategoryAPI, StatusCode: 400}, false},
		{"generation", VendorError{Category: CategoryGeneration}, false},
		{"unknown", VendorError{Category: CategoryUnknown}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Retryable())
		})
	}
}

func TestLookup_CoversEveryEmotion(t *testing.T) {
	for _, emotion := range []string{"peace", "anxiety", "guilt", "doubt"} {
		fb := Lookup(emotion)
		assert.NotEmpty(t, fb.Reference, "emotion %s", emotion)
		assert.NotEmpty(t, fb.Text, "emotion %s", emotion)
	}

	// An unknown emotion still serves something usable.
	fb := Lookup("unheard-of")
	assert.NotEmpty(t, fb.Text)
}
