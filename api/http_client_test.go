package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_RequestRaw_Success(t *testing.T) {
	mockResponse := map[string]string{"message": "success"}
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-endpoint", r.URL.Path)
		assert.Equal(t, "id,title", r.URL.Query().Get("select"))
		assert.Equal(t, "secret", r.Header.Get("apikey"))

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(mockResponse)
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL, time.Second)

	body, err := client.RequestRaw(context.Background(), http.MethodGet, "/test-endpoint",
		url.Values{"select": {"id,title"}}, map[string]string{"apikey": "secret"}, nil)
	require.NoError(t, err)

	var response map[string]string
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, "success", response["message"])
}

func TestHTTPClient_RequestRaw_Failure(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sent map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		assert.Equal(t, "value", sent["key"])
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad request"}`))
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL, 0)

	_, err := client.RequestRaw(context.Background(), http.MethodPost, "/test-endpoint", nil, nil, map[string]string{"key": "value"})

	require.Error(t, err)
	assert.Equal(t, "unexpected status code: 400 Bad Request", err.Error())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "bad request")
}

func TestHTTPClient_RequestRaw_ContextCanceled(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer mockServer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewHTTPClient(mockServer.URL, time.Second)
	_, err := client.RequestRaw(ctx, http.MethodGet, "/", nil, nil, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}
