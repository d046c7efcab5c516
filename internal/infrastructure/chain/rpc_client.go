// Package chain implements the fullnode RPC boundary: transaction submission,
// settlement polling, object reads, and program event queries.
package chain

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
	"github.com/manolaz/mosaic/pkg/logger"
)

// RPCClient talks JSON-RPC 2.0 to a fullnode. Transactions are signed over
// the canonical JSON encoding of the envelope before submission.
type RPCClient struct {
	url          string
	packageID    string
	httpClient   *http.Client
	signer       service.Signer
	log          logger.Logger
	pollInterval time.Duration
	waitTimeout  time.Duration
	requestID    atomic.Int64
}

// NewRPCClient creates a client for the configured fullnode.
func NewRPCClient(cfg *config.ChainConfig, signer service.Signer, log logger.Logger) *RPCClient {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = constants.DefaultTxPollInterval
	}
	waitTimeout := cfg.WaitTimeout
	if waitTimeout <= 0 {
		waitTimeout = constants.DefaultTxWaitTimeout
	}
	return &RPCClient{
		url:          cfg.RPCURL,
		packageID:    cfg.PackageID,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		signer:       signer,
		log:          log.WithComponent("chain"),
		pollInterval: pollInterval,
		waitTimeout:  waitTimeout,
	}
}

// PackageID returns the configured ticketing program id.
func (c *RPCClient) PackageID() string {
	return c.packageID
}

// Target resolves a module::function target against the configured package.
func (c *RPCClient) Target(target string) string {
	return fmt.Sprintf("%s::%s", c.packageID, target)
}

// ================================================================================
// JSON-RPC 2.0 Framing
// ================================================================================

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (c *RPCClient) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.ChainRPC(err, method)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.ChainRPC(err, method)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.ChainRPC(err, method)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.ChainRPC(fmt.Errorf("unexpected status %d", resp.StatusCode), method)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return errors.ChainRPC(err, method)
	}
	if rpcResp.Error != nil {
		return errors.ChainRPC(rpcResp.Error, method)
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return errors.ChainRPC(err, method)
		}
	}
	return nil
}

// ================================================================================
// Transactions
// ================================================================================

type executeResult struct {
	Digest string `json:"digest"`
}

// ExecuteTransaction signs the envelope and submits it, returning the digest.
// The signature covers the canonical JSON encoding of the envelope; struct
// field order makes that encoding deterministic.
func (c *RPCClient) ExecuteTransaction(ctx context.Context, tx *models.Transaction) (string, error) {
	envelope, err := json.Marshal(tx)
	if err != nil {
		return "", errors.ChainRPC(err, "executeTransactionBlock")
	}
	signature, err := c.signer.Sign(envelope)
	if err != nil {
		return "", err
	}

	params := []interface{}{
		base64.StdEncoding.EncodeToString(envelope),
		[]string{base64.StdEncoding.EncodeToString(signature)},
		base64.StdEncoding.EncodeToString(c.signer.PublicKey()),
	}

	var result executeResult
	if err := c.call(ctx, "sui_executeTransactionBlock", params, &result); err != nil {
		return "", err
	}
	if result.Digest == "" {
		return "", errors.ChainRPC(fmt.Errorf("empty digest in response"), "executeTransactionBlock")
	}

	c.log.Info(ctx, "transaction submitted", logger.Fields{
		"digest": result.Digest,
		"sender": tx.Sender,
		"calls":  len(tx.Calls),
	})
	return result.Digest, nil
}

type txBlockResult struct {
	Digest  string `json:"digest"`
	Effects *struct {
		Status struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"status"`
		Created []struct {
			Reference struct {
				ObjectID string `json:"objectId"`
			} `json:"reference"`
			ObjectType string `json:"objectType"`
			Owner      struct {
				AddressOwner string `json:"AddressOwner"`
			} `json:"owner"`
		} `json:"created"`
	} `json:"effects"`
}

// WaitForTransaction polls for effects until the transaction settles or the
// configured deadline passes.
func (c *RPCClient) WaitForTransaction(ctx context.Context, digest string) (*models.TxEffects, error) {
	ctx, cancel := context.WithTimeout(ctx, c.waitTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		effects, settled, err := c.fetchEffects(ctx, digest)
		if err != nil {
			return nil, err
		}
		if settled {
			if effects.Status == "failure" {
				c.log.Warn(ctx, "transaction failed on chain", logger.Fields{"digest": digest})
			}
			return effects, nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.ChainRPC(fmt.Errorf("transaction %s not settled: %w", digest, ctx.Err()), "getTransactionBlock")
		case <-ticker.C:
		}
	}
}

func (c *RPCClient) fetchEffects(ctx context.Context, digest string) (*models.TxEffects, bool, error) {
	params := []interface{}{digest, map[string]bool{"showEffects": true}}

	var result txBlockResult
	err := c.call(ctx, "sui_getTransactionBlock", params, &result)
	if err != nil {
		// A transaction not yet checkpointed surfaces as a JSON-RPC error
		// from the node; keep polling until the deadline decides. Anything
		// else means the node never answered and surfaces immediately.
		var nodeErr *rpcError
		if stderrors.As(err, &nodeErr) && ctx.Err() == nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	if result.Effects == nil || result.Effects.Status.Status == "" {
		return nil, false, nil
	}

	effects := &models.TxEffects{
		Digest: result.Digest,
		Status: result.Effects.Status.Status,
	}
	for _, created := range result.Effects.Created {
		effects.Created = append(effects.Created, models.OwnedRef{
			ObjectID: created.Reference.ObjectID,
			Type:     created.ObjectType,
			Owner:    created.Owner.AddressOwner,
		})
	}
	return effects, true, nil
}

// ================================================================================
// Reads
// ================================================================================

type objectResult struct {
	Data *struct {
		ObjectID string `json:"objectId"`
		Content  *struct {
			Type   string                     `json:"type"`
			Fields map[string]json.RawMessage `json:"fields"`
		} `json:"content"`
	} `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

// GetObject reads an object's typed content.
func (c *RPCClient) GetObject(ctx context.Context, id string) (*models.ObjectData, error) {
	params := []interface{}{id, map[string]bool{"showContent": true}}

	var result objectResult
	if err := c.call(ctx, "sui_getObject", params, &result); err != nil {
		return nil, err
	}
	if result.Error != nil || result.Data == nil || result.Data.Content == nil {
		return nil, errors.ErrNotFound.WithError(fmt.Errorf("object %s", id))
	}
	return &models.ObjectData{
		ID:     result.Data.ObjectID,
		Type:   result.Data.Content.Type,
		Fields: result.Data.Content.Fields,
	}, nil
}

type eventQueryResult struct {
	Data []struct {
		ID struct {
			TxDigest string `json:"txDigest"`
		} `json:"id"`
		Type       string          `json:"type"`
		ParsedJSON json.RawMessage `json:"parsedJson"`
	} `json:"data"`
	NextCursor  json.RawMessage `json:"nextCursor"`
	HasNextPage bool            `json:"hasNextPage"`
}

// QueryEvents pages through emitted program events of the given type.
func (c *RPCClient) QueryEvents(ctx context.Context, eventType, cursor string, limit int) (*models.EventPage, error) {
	var cursorParam interface{}
	if cursor != "" {
		// Cursors are opaque JSON handed back from a previous page.
		cursorParam = json.RawMessage(cursor)
	}
	params := []interface{}{
		map[string]string{"MoveEventType": eventType},
		cursorParam,
		limit,
		false, // ascending order
	}

	var result eventQueryResult
	if err := c.call(ctx, "suix_queryEvents", params, &result); err != nil {
		return nil, err
	}

	page := &models.EventPage{HasNext: result.HasNextPage}
	if len(result.NextCursor) > 0 && string(result.NextCursor) != "null" {
		page.NextCursor = string(result.NextCursor)
	}
	for _, ev := range result.Data {
		page.Events = append(page.Events, models.ChainEvent{
			TxDigest:   ev.ID.TxDigest,
			Type:       ev.Type,
			ParsedJSON: ev.ParsedJSON,
		})
	}
	return page, nil
}

var _ service.ChainClient = (*RPCClient)(nil)
