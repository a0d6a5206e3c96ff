package database

import (
	"context"
	"strings"
)

// Difficulty is the prefix every solved block hash must start with. It is
// constant, there is no retargeting.
const Difficulty = "0000"

// progressInterval is how often the search reports it is still running.
const progressInterval = 1_000_000

// =============================================================================

// Solve performs the proof of work search for the specified previous hash and
// payload. The search starts at zero and returns the first nonce whose hash
// is solved. It never fails.
func Solve(prevHash string, payload Payload) uint64 {
	nonce, _ := POW(context.Background(), prevHash, payload, nil)
	return nonce
}

// POW performs the same search as Solve but can be cancelled through the
// context. The search is sequential and CPU bound so callers must not hold
// any ledger lock while it runs.
func POW(ctx context.Context, prevHash string, payload Payload, ev func(v string, args ...any)) (uint64, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("database: POW: MINING: started: prevBlk[%s]: blk[%d]: numTrans[%d]", prevHash, payload.Index, len(payload.Transactions))
	defer ev("database: POW: MINING: completed")

	var nonce uint64
	for {
		if nonce%progressInterval == 0 && nonce > 0 {
			ev("database: POW: MINING: attempts[%d]", nonce)

			if ctx.Err() != nil {
				ev("database: POW: MINING: CANCELLED")
				return 0, ctx.Err()
			}
		}

		hash := Hash(prevHash, nonce, payload)
		if IsHashSolved(hash) {
			ev("database: POW: MINING: SOLVED: nonce[%d]: hash[%s]", nonce, hash)
			return nonce, nil
		}

		nonce++
	}
}

// IsHashSolved checks the hash starts with the difficulty prefix.
func IsHashSolved(hash string) bool {
	return strings.HasPrefix(hash, Difficulty)
}
