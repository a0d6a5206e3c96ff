// Package peer maintains the peer related information such as the set
// of known peers and their status.
package peer

import (
	"slices"
	"strings"
	"sync"
)

// Peer represents information about a node in the network.
type Peer struct {
	Host string `json:"host" validate:"required"`
}

// New constructs a peer for the specified host. An http or https scheme and
// a trailing slash are dropped so the same node is always identified by the
// same host.
func New(host string) Peer {
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimSuffix(host, "/")

	return Peer{
		Host: host,
	}
}

// Match validates if the specified host matches this node.
func (p Peer) Match(host string) bool {
	return p.Host == New(host).Host
}

// String implements the fmt.Stringer interface for logging.
func (p Peer) String() string {
	return p.Host
}

// =============================================================================

// PeerStatus represents information about the status of any given peer.
type PeerStatus struct {
	LatestBlockHash  string `json:"latest_block_hash"`
	LatestBlockIndex uint64 `json:"latest_block_index"`
	KnownPeers       []Peer `json:"known_peers"`
}

// =============================================================================

// PeerSet represents the data representation to maintain a set of known peers.
type PeerSet struct {
	mu  sync.RWMutex
	set map[Peer]struct{}
}

// NewPeerSet constructs a new info set to manage node peer information.
func NewPeerSet() *PeerSet {
	return &PeerSet{
		set: make(map[Peer]struct{}),
	}
}

// Add adds a new node to the set. It reports false when the peer was
// already known.
func (ps *PeerSet) Add(peer Peer) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	_, exists := ps.set[peer]
	if !exists {
		ps.set[peer] = struct{}{}
		return true
	}

	return false
}

// Remove removes a node from the set.
func (ps *PeerSet) Remove(peer Peer) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	delete(ps.set, peer)
}

// Contains reports if the peer is in the set.
func (ps *PeerSet) Contains(peer Peer) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	_, exists := ps.set[peer]
	return exists
}

// Copy returns a list of the known peers sorted by host, leaving out the
// specified host.
func (ps *PeerSet) Copy(host string) []Peer {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	peers := make([]Peer, 0, len(ps.set))
	for peer := range ps.set {
		if !peer.Match(host) {
			peers = append(peers, peer)
		}
	}

	slices.SortFunc(peers, func(a, b Peer) int {
		return strings.Compare(a.Host, b.Host)
	})

	return peers
}
