// Package private maintains the group of handlers for node to node access.
package private

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ledgerd/node/business/sys/validate"
	"github.com/ledgerd/node/business/web/errs"
	"github.com/ledgerd/node/foundation/blockchain/database"
	"github.com/ledgerd/node/foundation/blockchain/peer"
	"github.com/ledgerd/node/foundation/blockchain/state"
	"github.com/ledgerd/node/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node to node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveStatus(), http.StatusOK)
}

// Chain returns the chain and pending pool so a peer can run consensus.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveChainState(), http.StatusOK)
}

// SubmitTransaction records a transaction shared by a peer. The transaction
// keeps the id it was created with and is not shared again.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx database.Tx
	if err := web.Decode(r, &tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if tx.ID == "" {
		return errs.NewTrusted(errors.New("transaction id is required"), http.StatusBadRequest)
	}

	h.Log.Infow("record peer tran", "traceid", v.TraceID, "tx", tx)

	idx, err := h.State.RecordPeerTransaction(tx)
	if err != nil {
		return fmt.Errorf("recording transaction: %w", err)
	}

	resp := struct {
		Note string `json:"note"`
	}{
		Note: fmt.Sprintf("Transaction will be added in block %d.", idx),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// ReceiveBlock takes a block mined by a peer and appends it if it extends
// the local head.
func (h Handlers) ReceiveBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var block database.Block
	if err := web.Decode(r, &block); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := h.State.ProcessPeerBlock(block); err != nil {
		if errors.Is(err, state.ErrBlockRejected) {
			return errs.NewTrusted(err, http.StatusNotAcceptable)
		}
		return fmt.Errorf("processing block: %w", err)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "accepted",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RegisterPeer adds a single peer to the known peers.
func (h Handlers) RegisterPeer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var pr peer.Peer
	if err := web.Decode(r, &pr); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(pr); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	added := h.State.AddKnownPeer(peer.New(pr.Host))

	resp := struct {
		Added bool `json:"added"`
	}{
		Added: added,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RegisterPeers adds every peer in the list to the known peers.
func (h Handlers) RegisterPeers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var peers []peer.Peer
	if err := web.Decode(r, &peers); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.CheckSlice(peers); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	var added int
	for _, pr := range peers {
		if h.State.AddKnownPeer(peer.New(pr.Host)) {
			added++
		}
	}

	resp := struct {
		Added int `json:"added"`
	}{
		Added: added,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
