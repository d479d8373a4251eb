package bot

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/kickoffbot/internal/config"
)

func TestLazySinkConnectsOnFirstSend(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/bot123:abc/getMe" {
			w.Write([]byte(getMeResponse))
			return
		}
		w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":-100,"type":"channel"}}}`))
	}))
	defer server.Close()

	sink := NewLazySink(config.TelegramBot{Token: "123:abc", ChatID: -100, APIEndpoint: server.URL + "/bot%s/%s"})
	assert.Equal(t, int32(0), calls.Load(), "constructing the sink must not call the API")

	require.NoError(t, sink.SendMessage("one"))
	assert.Equal(t, int32(2), calls.Load())

	require.NoError(t, sink.SendMessage("two"))
	assert.Equal(t, int32(3), calls.Load(), "getMe runs only once")
}

func TestLazySinkConnectError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"ok":false,"error_code":503,"description":"down"}`))
	}))
	defer server.Close()

	sink := NewLazySink(config.TelegramBot{Token: "123:abc", ChatID: -100, APIEndpoint: server.URL + "/bot%s/%s"})
	assert.Error(t, sink.SendMessage("hello"))
}
