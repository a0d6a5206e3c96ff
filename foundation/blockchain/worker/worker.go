// Package worker implements transaction, block and peer sharing along with
// periodic consensus for the blockchain.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ledgerd/node/foundation/blockchain/database"
	"github.com/ledgerd/node/foundation/blockchain/peer"
	"github.com/ledgerd/node/foundation/blockchain/state"
)

// maxShareRequests represents the max number of pending network share
// requests that can be outstanding before share requests are dropped. To keep
// this simple, a buffered channel of this arbitrary number is being used. If
// the channel does become full, new share requests will not be accepted.
const maxShareRequests = 100

// Config represents the settings for the worker.
type Config struct {
	ConsensusInterval time.Duration
	PeerTimeout       time.Duration
	EvHandler         state.EventHandler
}

// shareRequest is one unit of work for the sharing G. Exactly one of the
// fields is set. Requests are processed in the order they are signaled.
type shareRequest struct {
	tx    *database.Tx
	block *database.Block
	peer  *peer.Peer
}

// =============================================================================

// Worker manages the network workflows for the blockchain.
type Worker struct {
	state     *state.State
	wg        sync.WaitGroup
	ticker    *time.Ticker
	shut      chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	sharing   chan shareRequest
	client    *client
	evHandler state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up all the background processes.
func Run(st *state.State, cfg Config) *Worker {
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := Worker{
		state:     st,
		shut:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
		sharing:   make(chan shareRequest, maxShareRequests),
		client:    newClient(cfg.PeerTimeout),
		evHandler: ev,
	}

	// A zero interval turns periodic consensus off.
	if cfg.ConsensusInterval > 0 {
		w.ticker = time.NewTicker(cfg.ConsensusInterval)
	}

	// Register this worker with the state package.
	st.Worker = &w

	// Load the set of operations we need to run.
	operations := []func(){
		w.shareOperations,
		w.consensusOperations,
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	// Start all the operational G's.
	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	// Wait for the G's to report they are running.
	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return &w
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutines performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	if w.ticker != nil {
		w.evHandler("worker: shutdown: stop ticker")
		w.ticker.Stop()
	}

	w.evHandler("worker: shutdown: cancel network calls")
	w.cancel()

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()
}

// SignalShareTx queues a transaction to be shared with the known peers.
func (w *Worker) SignalShareTx(tx database.Tx) {
	w.signalShare(shareRequest{tx: &tx}, "tx")
}

// SignalShareBlock queues a locally mined block to be shared with the
// known peers.
func (w *Worker) SignalShareBlock(block database.Block) {
	w.signalShare(shareRequest{block: &block}, "block")
}

// SignalSharePeer queues a newly registered peer to be introduced to the
// network.
func (w *Worker) SignalSharePeer(pr peer.Peer) {
	w.signalShare(shareRequest{peer: &pr}, "peer")
}

// =============================================================================

// signalShare queues up a share operation. If maxShareRequests signals
// exist in the channel, the request is dropped.
func (w *Worker) signalShare(req shareRequest, kind string) {
	select {
	case w.sharing <- req:
		w.evHandler("worker: signalShare: share %s signaled", kind)
	default:
		w.evHandler("worker: signalShare: queue full, %s won't be shared", kind)
	}
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}

// eachPeer calls the function for every known peer at the same time and
// waits for all of them to finish. A failing peer does not stop the others.
func (w *Worker) eachPeer(peers []peer.Peer, f func(pr peer.Peer)) {
	var wg sync.WaitGroup
	wg.Add(len(peers))

	for _, pr := range peers {
		go func(pr peer.Peer) {
			defer wg.Done()
			f(pr)
		}(pr)
	}

	wg.Wait()
}
