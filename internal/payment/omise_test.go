package payment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptLoaderTokenizes(t *testing.T) {
	var username string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/omise.js":
			fmt.Fprint(w, "// checkout script")
		case "/tokens":
			username, _, _ = r.BasicAuth()
			fmt.Fprint(w, `{"id":"tokn_test_123"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	loader := NewScriptLoader(server.URL+"/omise.js", server.URL, server.Client())
	service := NewService(loader, "pkey_test")

	token, err := service.CreatePayment(context.Background(), Config{Amount: 15000, Currency: "jpy"})

	require.NoError(t, err)
	assert.Equal(t, "tokn_test_123", token)
	assert.Equal(t, "pkey_test", username)
}

func TestScriptLoaderUnavailableScript(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	loader := NewScriptLoader(server.URL+"/omise.js", server.URL, server.Client())
	service := NewService(loader, "pkey_test")

	_, err := service.CreatePayment(context.Background(), Config{Amount: 15000, Currency: "jpy"})

	assert.ErrorContains(t, err, "failed to load checkout script")
}

func TestScriptLoaderClosedForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tokens" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"code":"checkout_closed","message":"form closed by user"}`)
			return
		}
		fmt.Fprint(w, "// checkout script")
	}))
	t.Cleanup(server.Close)

	loader := NewScriptLoader(server.URL+"/omise.js", server.URL, server.Client())
	service := NewService(loader, "pkey_test")

	_, err := service.CreatePayment(context.Background(), Config{Amount: 15000, Currency: "jpy"})

	assert.ErrorIs(t, err, ErrCancelled)
}
