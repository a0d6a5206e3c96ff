package worker

import (
	"context"
	"time"

	"github.com/ledgerd/node/foundation/blockchain/database"
	"github.com/ledgerd/node/foundation/blockchain/peer"
)

// consensusOperations runs consensus on every tick of the ticker.
func (w *Worker) consensusOperations() {
	w.evHandler("worker: consensusOperations: G started")
	defer w.evHandler("worker: consensusOperations: G completed")

	// A nil channel blocks forever when periodic consensus is off.
	var tick <-chan time.Time
	if w.ticker != nil {
		tick = w.ticker.C
	}

	for {
		select {
		case <-tick:
			if !w.isShutdown() {
				w.Consensus(w.ctx)
			}
		case <-w.shut:
			w.evHandler("worker: consensusOperations: received shut signal")
			return
		}
	}
}

// Consensus fetches the chain state from every known peer and lets the state
// adopt the longest valid chain. Peers that fail to respond are skipped. It
// reports whether the local chain was replaced.
func (w *Worker) Consensus(ctx context.Context) bool {
	w.evHandler("worker: Consensus: started")
	defer w.evHandler("worker: Consensus: completed")

	peers := w.state.RetrieveKnownPeers()

	// Keep the results in peer order so the outcome doesn't depend on
	// which peer answers first.
	results := make([]*database.ChainState, len(peers))
	index := make(map[peer.Peer]int, len(peers))
	for i, pr := range peers {
		index[pr] = i
	}

	w.eachPeer(peers, func(pr peer.Peer) {
		cs, err := w.client.chainState(ctx, pr)
		if err != nil {
			w.evHandler("worker: Consensus: %s: WARNING: %s", pr, err)
			return
		}
		w.evHandler("worker: Consensus: %s: chain[%d]: pending[%d]", pr, cs.Len(), len(cs.Pending))
		results[index[pr]] = &cs
	})

	remotes := make([]database.ChainState, 0, len(results))
	for _, cs := range results {
		if cs != nil {
			remotes = append(remotes, *cs)
		}
	}

	return w.state.ResolveChains(remotes)
}
