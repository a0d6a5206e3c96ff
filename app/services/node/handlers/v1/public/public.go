// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ledgerd/node/business/sys/metrics"
	"github.com/ledgerd/node/business/sys/validate"
	"github.com/ledgerd/node/business/web/errs"
	"github.com/ledgerd/node/foundation/blockchain/peer"
	"github.com/ledgerd/node/foundation/blockchain/state"
	"github.com/ledgerd/node/foundation/blockchain/worker"
	"github.com/ledgerd/node/foundation/events"
	"github.com/ledgerd/node/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints for clients.
type Handlers struct {
	Log    *zap.SugaredLogger
	State  *state.State
	Worker *worker.Worker
	WS     websocket.Upgrader
	Evts   *events.Events
}

// Blockchain returns the full chain, the pending pool and the network view
// of this node.
func (h Handlers) Blockchain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cs := h.State.RetrieveChainState()

	peers := h.State.RetrieveKnownPeers()
	nodes := make([]string, len(peers))
	for i, pr := range peers {
		nodes[i] = "http://" + pr.Host
	}

	resp := chainState{
		Chain:          cs.Chain,
		Pending:        cs.Pending,
		CurrentNodeURL: "http://" + h.State.RetrieveHost(),
		NetworkNodes:   nodes,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitTransaction creates a transaction, records it in the pending pool and
// shares it with the network.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(ntx); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	h.Log.Infow("submit tran", "traceid", v.TraceID, "sender", ntx.Sender, "recipient", ntx.Recipient, "amount", *ntx.Amount)

	tx, idx, err := h.State.SubmitTransaction(*ntx.Amount, ntx.Sender, ntx.Recipient)
	if err != nil {
		return fmt.Errorf("submitting transaction: %w", err)
	}

	resp := txSubmitted{
		Note:        fmt.Sprintf("Transaction will be added in block %d.", idx),
		BlockIndex:  idx,
		Transaction: tx,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine solves the proof of work over the pending pool and seals a new block.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, err := h.State.MineNewBlock(ctx)
	if err != nil {
		if errors.Is(err, state.ErrChainChanged) {
			return errs.NewTrusted(err, http.StatusConflict)
		}
		return fmt.Errorf("mining block: %w", err)
	}

	metrics.AddBlocks(ctx)

	resp := blockMined{
		Note:  "New block mined & broadcast successfully",
		Block: block,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Consensus asks every known peer for its chain and adopts the longest
// valid one.
func (h Handlers) Consensus(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced := h.Worker.Consensus(ctx)

	note := "Current chain has not been replaced."
	if replaced {
		note = "This chain has been replaced."
	}

	resp := consensusResult{
		Note:     note,
		Replaced: replaced,
		Chain:    h.State.RetrieveChainState().Chain,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RegisterNode registers a new node and introduces it to the network.
func (h Handlers) RegisterNode(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var rn registerNode
	if err := web.Decode(r, &rn); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(rn); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	pr := peer.New(rn.NewNodeURL)

	var note string
	switch {
	case pr.Match(h.State.RetrieveHost()):
		note = "Node is self, nothing to register."
	case h.State.RegisterAndSharePeer(pr):
		note = "New node registered with network successfully."
	default:
		note = "Node is already registered."
	}

	resp := struct {
		Note string `json:"note"`
	}{
		Note: note,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BlockByHash returns the block with the specified hash.
func (h Handlers) BlockByHash(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	hash := web.Param(r, "hash")

	block, found := h.State.QueryBlockByHash(hash)
	if !found {
		return errs.NewTrusted(fmt.Errorf("block %q not found", hash), http.StatusNotFound)
	}

	resp := blockFound{
		Block: block,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// TransactionByID returns a sealed transaction and the block holding it.
func (h Handlers) TransactionByID(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id := web.Param(r, "id")

	tx, block, found := h.State.QueryTransaction(id)
	if !found {
		return errs.NewTrusted(fmt.Errorf("transaction %q not found", id), http.StatusNotFound)
	}

	resp := txFound{
		Transaction: tx,
		Block:       block,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Address returns the sealed transactions of an address and its balance.
func (h Handlers) Address(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	txs, balance := h.State.QueryAddress(address)

	resp := addressSummary{
		Address:      address,
		Transactions: txs,
		Balance:      balance,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// The upgrade has written the response.
	web.SetStatusCode(ctx, http.StatusSwitchingProtocols)

	// This provides a channel for receiving events from the blockchain.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting to receive events from the blockchain or ticker.
	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
