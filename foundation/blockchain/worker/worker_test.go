package worker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ledgerd/node/foundation/blockchain/database"
	"github.com/ledgerd/node/foundation/blockchain/peer"
	"github.com/ledgerd/node/foundation/blockchain/state"
	"github.com/ledgerd/node/foundation/blockchain/worker"
	"go.uber.org/zap/zaptest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newNode(t *testing.T, host string, peers ...string) (*state.State, *worker.Worker) {
	log := zaptest.NewLogger(t).Sugar()
	ev := func(v string, args ...any) {
		log.Infof(v, args...)
	}

	ps := peer.NewPeerSet()
	for _, host := range peers {
		ps.Add(peer.New(host))
	}

	st, err := state.New(state.Config{
		Host:       host,
		KnownPeers: ps,
		EvHandler:  ev,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}

	w := worker.Run(st, worker.Config{EvHandler: ev, PeerTimeout: 5 * time.Second})
	t.Cleanup(w.Shutdown)

	return st, w
}

// nopWorker lets a node mine without any network sharing.
type nopWorker struct{}

func (nopWorker) Shutdown()                           {}
func (nopWorker) SignalShareTx(tx database.Tx)        {}
func (nopWorker) SignalShareBlock(blk database.Block) {}
func (nopWorker) SignalSharePeer(pr peer.Peer)        {}

// chainServer serves the chain state of the specified node the way the
// private API does.
func chainServer(t *testing.T, st *state.State) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/node/chain", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(st.RetrieveChainState())
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func host(srv *httptest.Server) string {
	return strings.TrimPrefix(srv.URL, "http://")
}

// =============================================================================

func Test_Consensus(t *testing.T) {
	t.Log("Given the need to run consensus against the known peers.")
	{
		remote, err := state.New(state.Config{Host: "localhost:1"})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
		}
		remote.Worker = nopWorker{}

		remote.SubmitTransaction(10, "A", "B")
		if _, err := remote.MineNewBlock(context.Background()); err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}
		if _, err := remote.MineNewBlock(context.Background()); err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}

		srv := chainServer(t, remote)

		down := httptest.NewServer(http.NotFoundHandler())
		down.Close()

		local, w := newNode(t, "localhost:2", host(srv), host(down))

		if !w.Consensus(context.Background()) {
			t.Fatalf("\t%s\tShould replace the local chain.", failed)
		}
		t.Logf("\t%s\tShould replace the local chain.", success)

		if local.RetrieveLatestBlock().Hash != remote.RetrieveLatestBlock().Hash {
			t.Fatalf("\t%s\tShould adopt the remote head.", failed)
		}
		t.Logf("\t%s\tShould adopt the remote head.", success)

		if w.Consensus(context.Background()) {
			t.Fatalf("\t%s\tShould not replace an equal chain.", failed)
		}
		t.Logf("\t%s\tShould not replace an equal chain.", success)
	}
}

func Test_ShareTx(t *testing.T) {
	t.Log("Given the need to share transactions with the known peers.")
	{
		received := make(chan database.Tx, 1)

		mux := http.NewServeMux()
		mux.HandleFunc("/v1/node/tx/submit", func(w http.ResponseWriter, r *http.Request) {
			var tx database.Tx
			if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			received <- tx
			w.WriteHeader(http.StatusOK)
		})

		srv := httptest.NewServer(mux)
		defer srv.Close()

		st, _ := newNode(t, "localhost:3", host(srv))

		tx, _, err := st.SubmitTransaction(20, "A", "B")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to submit a transaction: %v", failed, err)
		}

		select {
		case got := <-received:
			if got != tx {
				t.Logf("\t%s\tgot: %v", failed, got)
				t.Logf("\t%s\texp: %v", failed, tx)
				t.Fatalf("\t%s\tShould share the same transaction.", failed)
			}
			t.Logf("\t%s\tShould share the same transaction.", success)

		case <-time.After(5 * time.Second):
			t.Fatalf("\t%s\tShould share the transaction with the peer.", failed)
		}
	}
}

func Test_ShareBlockThenReward(t *testing.T) {
	t.Log("Given the need to share a mined block and then the reward.")
	{
		order := make(chan string, 2)

		mux := http.NewServeMux()
		mux.HandleFunc("/v1/node/block/receive", func(w http.ResponseWriter, r *http.Request) {
			order <- "block"
			json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
		})
		mux.HandleFunc("/v1/node/tx/submit", func(w http.ResponseWriter, r *http.Request) {
			var tx database.Tx
			json.NewDecoder(r.Body).Decode(&tx)
			if tx.IsReward() {
				order <- "reward"
			}
			w.WriteHeader(http.StatusOK)
		})

		srv := httptest.NewServer(mux)
		defer srv.Close()

		st, _ := newNode(t, "localhost:4", host(srv))

		if _, err := st.MineNewBlock(context.Background()); err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}

		for _, exp := range []string{"block", "reward"} {
			select {
			case got := <-order:
				if got != exp {
					t.Fatalf("\t%s\tShould share the %s next, got %s.", failed, exp, got)
				}
				t.Logf("\t%s\tShould share the %s next.", success, exp)

			case <-time.After(5 * time.Second):
				t.Fatalf("\t%s\tShould share the %s.", failed, exp)
			}
		}

		pending := st.RetrievePending()
		if len(pending) != 1 || !pending[0].IsReward() || pending[0].Recipient != st.RetrieveNodeAddress() {
			t.Fatalf("\t%s\tShould hold the reward in the pool: %v", failed, pending)
		}
		t.Logf("\t%s\tShould hold the reward in the pool.", success)
	}
}
