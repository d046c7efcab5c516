// Package blobstore implements the Walrus blob store client used to pin event
// imagery, metadata documents, and profile payloads.
package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// WalrusClient writes blobs through a publisher endpoint and reads them back
// through an aggregator. Writes request a bounded number of storage epochs.
type WalrusClient struct {
	publisherURL  string
	aggregatorURL string
	gatewayURL    string
	epochs        int
	httpClient    *http.Client
	log           logger.Logger
}

// NewWalrusClient creates a client for the configured endpoints.
func NewWalrusClient(cfg *config.WalrusConfig, log logger.Logger) *WalrusClient {
	epochs := cfg.Epochs
	if epochs <= 0 {
		epochs = constants.DefaultBlobEpochs
	}
	return &WalrusClient{
		publisherURL:  strings.TrimRight(cfg.PublisherURL, "/"),
		aggregatorURL: strings.TrimRight(cfg.AggregatorURL, "/"),
		gatewayURL:    strings.TrimRight(cfg.GatewayURL, "/"),
		epochs:        epochs,
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		log:           log.WithComponent("blobstore"),
	}
}

// storeResponse covers both publisher outcomes: a fresh write and a blob that
// some earlier write already certified.
type storeResponse struct {
	NewlyCreated *struct {
		BlobObject struct {
			BlobID string `json:"blobId"`
		} `json:"blobObject"`
	} `json:"newlyCreated"`
	AlreadyCertified *struct {
		BlobID string `json:"blobId"`
	} `json:"alreadyCertified"`
}

func (r *storeResponse) blobID() string {
	if r.NewlyCreated != nil {
		return r.NewlyCreated.BlobObject.BlobID
	}
	if r.AlreadyCertified != nil {
		return r.AlreadyCertified.BlobID
	}
	return ""
}

// WriteJSON pins a JSON document and returns its blob id.
func (c *WalrusClient) WriteJSON(ctx context.Context, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, constants.ErrCodeInvalidRequest, "document is not JSON-serializable")
	}
	return c.WriteBytes(ctx, data, "application/json")
}

// WriteBytes pins raw content and returns its blob id.
func (c *WalrusClient) WriteBytes(ctx context.Context, data []byte, contentType string) (string, error) {
	url := fmt.Sprintf("%s/v1/blobs?epochs=%d", c.publisherURL, c.epochs)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", errors.BlobStore(err, "write")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.BlobStore(err, "write")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.BlobStore(fmt.Errorf("publisher returned status %d", resp.StatusCode), "write")
	}

	var stored storeResponse
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return "", errors.BlobStore(err, "write")
	}
	blobID := stored.blobID()
	if blobID == "" {
		return "", errors.BlobStore(fmt.Errorf("publisher response carried no blob id"), "write")
	}

	c.log.Debug(ctx, "blob stored", logger.Fields{"blob_id": blobID, "bytes": len(data)})
	return blobID, nil
}

// ReadJSON fetches a blob and unmarshals it into out.
func (c *WalrusClient) ReadJSON(ctx context.Context, blobID string, out interface{}) error {
	data, err := c.ReadBytes(ctx, blobID)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.BlobStore(err, "read")
	}
	return nil
}

// ReadBytes fetches raw blob content from the aggregator.
func (c *WalrusClient) ReadBytes(ctx context.Context, blobID string) ([]byte, error) {
	url := fmt.Sprintf("%s/v1/blobs/%s", c.aggregatorURL, blobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.BlobStore(err, "read")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.BlobStore(err, "read")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.ErrNotFound.WithError(fmt.Errorf("blob %s", blobID))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.BlobStore(fmt.Errorf("aggregator returned status %d", resp.StatusCode), "read")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.BlobStore(err, "read")
	}
	return data, nil
}

// GatewayURL renders the public display URL for a blob id.
func (c *WalrusClient) GatewayURL(blobID string) string {
	base := c.gatewayURL
	if base == "" {
		base = c.aggregatorURL + "/v1/blobs"
	}
	return fmt.Sprintf("%s/%s", base, blobID)
}

var _ service.BlobStore = (*WalrusClient)(nil)
