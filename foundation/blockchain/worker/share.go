package worker

import (
	"github.com/ledgerd/node/foundation/blockchain/database"
	"github.com/ledgerd/node/foundation/blockchain/peer"
)

// shareOperations handles sharing transactions, blocks and peers.
func (w *Worker) shareOperations() {
	w.evHandler("worker: shareOperations: G started")
	defer w.evHandler("worker: shareOperations: G completed")

	for {
		select {
		case req := <-w.sharing:
			if w.isShutdown() {
				continue
			}

			switch {
			case req.tx != nil:
				w.runShareTxOperation(*req.tx)
			case req.block != nil:
				w.runShareBlockOperation(*req.block)
			case req.peer != nil:
				w.runSharePeerOperation(*req.peer)
			}

		case <-w.shut:
			w.evHandler("worker: shareOperations: received shut signal")
			return
		}
	}
}

// runShareTxOperation shares a transaction with the known peers.
func (w *Worker) runShareTxOperation(tx database.Tx) {
	w.evHandler("worker: runShareTxOperation: started: tx[%s]", tx)
	defer w.evHandler("worker: runShareTxOperation: completed")

	w.eachPeer(w.state.RetrieveKnownPeers(), func(pr peer.Peer) {
		if err := w.client.sendTx(w.ctx, pr, tx); err != nil {
			w.evHandler("worker: runShareTxOperation: %s: WARNING: %s", pr, err)
		}
	})
}

// runShareBlockOperation shares a locally mined block with the known peers
// and then submits the mining reward. The reward is shared after the block
// so the peers don't clear it from their pools.
func (w *Worker) runShareBlockOperation(block database.Block) {
	w.evHandler("worker: runShareBlockOperation: started: %s", block)
	defer w.evHandler("worker: runShareBlockOperation: completed")

	w.eachPeer(w.state.RetrieveKnownPeers(), func(pr peer.Peer) {
		if err := w.client.sendBlock(w.ctx, pr, block); err != nil {
			w.evHandler("worker: runShareBlockOperation: %s: WARNING: %s", pr, err)
			return
		}
		w.evHandler("worker: runShareBlockOperation: sent to peer[%s]", pr)
	})

	tx, idx, err := w.state.SubmitRewardTransaction()
	if err != nil {
		w.evHandler("worker: runShareBlockOperation: reward: ERROR: %s", err)
		return
	}
	w.evHandler("worker: runShareBlockOperation: reward tx[%s]: blk[%d]", tx, idx)
}

// runSharePeerOperation introduces a newly registered peer to every known
// peer, then sends the new peer the full set of known peers and this node.
func (w *Worker) runSharePeerOperation(newPeer peer.Peer) {
	w.evHandler("worker: runSharePeerOperation: started: peer[%s]", newPeer)
	defer w.evHandler("worker: runSharePeerOperation: completed")

	known := w.state.RetrieveKnownPeers()

	var others []peer.Peer
	for _, pr := range known {
		if pr != newPeer {
			others = append(others, pr)
		}
	}

	w.eachPeer(others, func(pr peer.Peer) {
		if err := w.client.registerPeer(w.ctx, pr, newPeer); err != nil {
			w.evHandler("worker: runSharePeerOperation: register: %s: WARNING: %s", pr, err)
		}
	})

	all := append(others, peer.New(w.state.RetrieveHost()))
	if err := w.client.registerPeers(w.ctx, newPeer, all); err != nil {
		w.evHandler("worker: runSharePeerOperation: bulk: %s: WARNING: %s", newPeer, err)
	}
}
