package blobstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

func newTestWalrus(t *testing.T, handler http.Handler) (*WalrusClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewWalrusClient(&config.WalrusConfig{
		PublisherURL:  srv.URL,
		AggregatorURL: srv.URL,
		Epochs:        5,
	}, logger.NewNop())
	return client, srv
}

func TestWriteJSONNewlyCreated(t *testing.T) {
	client, _ := newTestWalrus(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/blobs", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("epochs"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var doc map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		assert.Equal(t, "DevCon", doc["title"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"newlyCreated": map[string]interface{}{
				"blobObject": map[string]string{"blobId": "blob-abc"},
			},
		})
	}))

	blobID, err := client.WriteJSON(context.Background(), map[string]string{"title": "DevCon"})
	require.NoError(t, err)
	assert.Equal(t, "blob-abc", blobID)
}

func TestWriteBytesAlreadyCertified(t *testing.T) {
	client, _ := newTestWalrus(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"alreadyCertified": map[string]string{"blobId": "blob-dup"},
		})
	}))

	blobID, err := client.WriteBytes(context.Background(), []byte{0xff, 0xd8}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "blob-dup", blobID)
}

func TestWriteSurfacesPublisherFailure(t *testing.T) {
	client, _ := newTestWalrus(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.WriteBytes(context.Background(), []byte("x"), "")
	assert.True(t, errors.IsCode(err, constants.ErrCodeBlobStore))
}

func TestReadJSONRoundTrip(t *testing.T) {
	client, _ := newTestWalrus(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/blobs/blob-abc", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"title": "DevCon"})
	}))

	var doc map[string]string
	require.NoError(t, client.ReadJSON(context.Background(), "blob-abc", &doc))
	assert.Equal(t, "DevCon", doc["title"])
}

func TestReadMissingBlobIsNotFound(t *testing.T) {
	client, _ := newTestWalrus(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.ReadBytes(context.Background(), "blob-missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestGatewayURL(t *testing.T) {
	client := NewWalrusClient(&config.WalrusConfig{
		PublisherURL:  "http://publisher",
		AggregatorURL: "http://aggregator",
		GatewayURL:    "http://gateway/v1/blob/",
	}, logger.NewNop())
	assert.Equal(t, "http://gateway/v1/blob/blob-abc", client.GatewayURL("blob-abc"))

	noGateway := NewWalrusClient(&config.WalrusConfig{
		AggregatorURL: "http://aggregator",
	}, logger.NewNop())
	assert.Equal(t, "http://aggregator/v1/blobs/blob-abc", noGateway.GatewayURL("blob-abc"))
}
