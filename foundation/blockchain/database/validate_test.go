package database_test

import (
	"testing"

	"github.com/ledgerd/node/foundation/blockchain/database"
	"go.uber.org/multierr"
)

// validChain returns a mined chain of three blocks.
func validChain(t *testing.T) []database.Block {
	db := newDB(t)

	db.RecordTransaction(newTx(t, 20, "A", "B"))
	mine(t, db)

	db.RecordTransaction(newTx(t, 5, "B", "C"))
	mine(t, db)

	return db.Copy().Chain
}

func Test_Validate(t *testing.T) {
	type table struct {
		name   string
		chain  func(chain []database.Block) []database.Block
		valid  bool
		errors int
	}

	tt := []table{
		{
			name:  "valid",
			chain: func(chain []database.Block) []database.Block { return chain },
			valid: true,
		},
		{
			name:   "empty",
			chain:  func(chain []database.Block) []database.Block { return nil },
			errors: 1,
		},
		{
			name:  "genesis-only",
			chain: func(chain []database.Block) []database.Block { return chain[:1] },
			valid: true,
		},
		{
			name: "genesis-nonce",
			chain: func(chain []database.Block) []database.Block {
				chain[0].Nonce = 101
				return chain
			},
			errors: 1,
		},
		{
			name: "genesis-index",
			chain: func(chain []database.Block) []database.Block {
				chain[0].Index = 0
				return chain
			},
			errors: 1,
		},
		{
			name: "genesis-transactions",
			chain: func(chain []database.Block) []database.Block {
				chain[0].Transactions = []database.Tx{{Amount: 1, Sender: "A", Recipient: "B"}}
				return chain
			},
			errors: 1,
		},
		{
			name: "broken-link",
			chain: func(chain []database.Block) []database.Block {
				chain[2].PrevHash = "0000ffff"
				return chain
			},
			errors: 1,
		},
		{
			name: "tampered-transaction",
			chain: func(chain []database.Block) []database.Block {
				chain[1].Transactions[0].Amount = 2000
				return chain
			},
			errors: 1,
		},
		{
			name: "every-failure-reported",
			chain: func(chain []database.Block) []database.Block {
				chain[0].PrevHash = "1"
				chain[1].Nonce++
				chain[2].PrevHash = "bad"
				return chain
			},
			errors: 3,
		},
		{
			name: "stored-hash-not-compared",
			chain: func(chain []database.Block) []database.Block {
				chain[2].Hash = "0000forged"
				return chain
			},
			valid: true,
		},
	}

	t.Log("Given the need to validate a candidate chain.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling chain %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					chain := tst.chain(validChain(t))

					err := database.Validate(chain)
					if valid := database.IsValid(chain); valid != tst.valid {
						t.Logf("\t%s\tTest %d:\tgot: %v: %v", failed, testID, valid, err)
						t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, tst.valid)
						t.Fatalf("\t%s\tTest %d:\tShould get the right validity.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the right validity.", success, testID)

					if tst.valid {
						return
					}

					if n := len(multierr.Errors(err)); n < tst.errors {
						t.Logf("\t%s\tTest %d:\tgot: %d: %v", failed, testID, n, err)
						t.Logf("\t%s\tTest %d:\texp: at least %d", failed, testID, tst.errors)
						t.Fatalf("\t%s\tTest %d:\tShould report every failed check.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould report every failed check.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
