package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ledgerd/node/foundation/blockchain/database"
	"github.com/ledgerd/node/foundation/blockchain/peer"
)

const baseURL = "http://%s/v1/node"

// defaultPeerTimeout bounds a single call to a peer.
const defaultPeerTimeout = 10 * time.Second

// client performs the node to node calls.
type client struct {
	http *http.Client
}

func newClient(timeout time.Duration) *client {
	if timeout <= 0 {
		timeout = defaultPeerTimeout
	}

	return &client{
		http: &http.Client{Timeout: timeout},
	}
}

// sendTx shares a transaction with the peer.
func (c *client) sendTx(ctx context.Context, pr peer.Peer, tx database.Tx) error {
	url := fmt.Sprintf("%s/tx/submit", fmt.Sprintf(baseURL, pr.Host))
	return c.send(ctx, http.MethodPost, url, tx, nil)
}

// sendBlock proposes a newly mined block to the peer.
func (c *client) sendBlock(ctx context.Context, pr peer.Peer, block database.Block) error {
	url := fmt.Sprintf("%s/block/receive", fmt.Sprintf(baseURL, pr.Host))

	var status struct {
		Status string `json:"status"`
	}

	return c.send(ctx, http.MethodPost, url, block, &status)
}

// registerPeer asks the peer to add the new peer to its known peers.
func (c *client) registerPeer(ctx context.Context, pr peer.Peer, newPeer peer.Peer) error {
	url := fmt.Sprintf("%s/peers/register", fmt.Sprintf(baseURL, pr.Host))
	return c.send(ctx, http.MethodPost, url, newPeer, nil)
}

// registerPeers asks the peer to add every peer in the list.
func (c *client) registerPeers(ctx context.Context, pr peer.Peer, peers []peer.Peer) error {
	url := fmt.Sprintf("%s/peers/bulk", fmt.Sprintf(baseURL, pr.Host))
	return c.send(ctx, http.MethodPost, url, peers, nil)
}

// chainState retrieves the peer's chain and pending pool.
func (c *client) chainState(ctx context.Context, pr peer.Peer) (database.ChainState, error) {
	url := fmt.Sprintf("%s/chain", fmt.Sprintf(baseURL, pr.Host))

	var cs database.ChainState
	if err := c.send(ctx, http.MethodGet, url, nil, &cs); err != nil {
		return database.ChainState{}, err
	}

	return cs, nil
}

// =============================================================================

// send is a helper function to send an HTTP request to a node.
func (c *client) send(ctx context.Context, method string, url string, dataSend any, dataRecv any) error {
	var body io.Reader

	if dataSend != nil {
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}

	if dataSend != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return errors.New(string(msg))
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return err
		}
	}

	return nil
}
