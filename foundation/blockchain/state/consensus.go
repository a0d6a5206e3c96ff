package state

import (
	"github.com/ledgerd/node/foundation/blockchain/database"
)

// SelectChain applies the longest chain rule. It returns the last remote
// chain that is strictly longer than every chain before it, starting from
// the local length. Equal length chains never win.
func SelectChain(localLen int, remotes []database.ChainState) (database.ChainState, bool) {
	maxLen := localLen

	var winner database.ChainState
	var found bool

	for _, remote := range remotes {
		if remote.Len() > maxLen {
			maxLen = remote.Len()
			winner = remote
			found = true
		}
	}

	return winner, found
}

// ResolveChains compares the local chain against the chains gathered from
// peers and adopts the longest one if it is valid. The pending pool is
// replaced by the winner's pool. It reports whether the local chain was
// replaced.
func (s *State) ResolveChains(remotes []database.ChainState) bool {
	s.evHandler("state: ResolveChains: started: remotes[%d]", len(remotes))

	s.mu.Lock()
	defer s.mu.Unlock()

	localLen := s.db.Len()

	winner, found := SelectChain(localLen, remotes)
	if !found {
		s.evHandler("state: ResolveChains: completed: no chain longer than local[%d]", localLen)
		return false
	}

	if err := database.Validate(winner.Chain); err != nil {
		s.evHandler("state: ResolveChains: completed: longest chain[%d] is invalid: %s", winner.Len(), err)
		return false
	}

	if err := s.db.ReplaceChain(winner.Chain, winner.Pending); err != nil {
		s.evHandler("state: ResolveChains: completed: unable to store chain[%d]: %s", winner.Len(), err)
		return false
	}

	s.evHandler("state: ResolveChains: completed: replaced local[%d] with chain[%d]", localLen, winner.Len())

	return true
}
