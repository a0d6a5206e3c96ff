package database_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ledgerd/node/foundation/blockchain/database"
	"github.com/ledgerd/node/foundation/blockchain/storage/memory"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// mine performs the proof of work over the current pool and seals the block
// the way the node does it.
func mine(t *testing.T, db *database.Database) database.Block {
	prevHash, payload, err := db.Snapshot()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to snapshot the ledger: %v", failed, err)
	}

	nonce := database.Solve(prevHash, payload)
	hash := database.Hash(prevHash, nonce, payload)

	block, err := db.SealBlock(nonce, prevHash, hash)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to seal the block: %v", failed, err)
	}

	return block
}

// newDB constructs a ledger over in memory storage.
func newDB(t *testing.T) *database.Database {
	storage, err := memory.New()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the storage: %v", failed, err)
	}

	db, err := database.New(storage)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
	}

	return db
}

func newTx(t *testing.T, amount float64, sender string, recipient string) database.Tx {
	tx, err := database.NewTx(amount, sender, recipient)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
	}

	return tx
}

// =============================================================================

func Test_Genesis(t *testing.T) {
	t.Log("Given the need to start a ledger with the genesis block.")
	{
		db := newDB(t)

		head, err := db.Head()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to get the head block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to get the head block.", success)

		if !head.IsGenesis() {
			t.Logf("\t%s\tgot: %s", failed, head)
			t.Fatalf("\t%s\tShould have the genesis block as head.", failed)
		}
		t.Logf("\t%s\tShould have the genesis block as head.", success)

		if head.Transactions == nil || db.PendingLen() != 0 || db.Len() != 1 {
			t.Fatalf("\t%s\tShould have a single block and an empty pool.", failed)
		}
		t.Logf("\t%s\tShould have a single block and an empty pool.", success)
	}
}

func Test_EmptyChain(t *testing.T) {
	t.Log("Given the need to detect a ledger without a genesis block.")
	{
		var db database.Database

		if _, err := db.Head(); !errors.Is(err, database.ErrEmptyChain) {
			t.Fatalf("\t%s\tShould get ErrEmptyChain from Head: %v", failed, err)
		}
		t.Logf("\t%s\tShould get ErrEmptyChain from Head.", success)

		if _, err := db.RecordTransaction(database.Tx{}); !errors.Is(err, database.ErrEmptyChain) {
			t.Fatalf("\t%s\tShould get ErrEmptyChain from RecordTransaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould get ErrEmptyChain from RecordTransaction.", success)
	}
}

func Test_MineBlock(t *testing.T) {
	t.Log("Given the need to mine a block with a recorded transaction.")
	{
		db := newDB(t)

		tx := newTx(t, 20, "A", "B")
		idx, err := db.RecordTransaction(tx)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to record the transaction: %v", failed, err)
		}
		if idx != 2 {
			t.Fatalf("\t%s\tShould expect the transaction in block 2, got %d.", failed, idx)
		}
		t.Logf("\t%s\tShould expect the transaction in block 2.", success)

		block := mine(t, db)

		if block.Index != 2 {
			t.Fatalf("\t%s\tShould seal block 2, got %d.", failed, block.Index)
		}
		t.Logf("\t%s\tShould seal block 2.", success)

		if block.PrevHash != database.GenesisHash {
			t.Fatalf("\t%s\tShould link to the genesis hash, got %s.", failed, block.PrevHash)
		}
		t.Logf("\t%s\tShould link to the genesis hash.", success)

		if !strings.HasPrefix(block.Hash, "0000") {
			t.Fatalf("\t%s\tShould have a solved hash, got %s.", failed, block.Hash)
		}
		t.Logf("\t%s\tShould have a solved hash.", success)

		if len(block.Transactions) != 1 || block.Transactions[0] != tx {
			t.Fatalf("\t%s\tShould contain the recorded transaction: %v", failed, block.Transactions)
		}
		t.Logf("\t%s\tShould contain the recorded transaction.", success)

		if db.PendingLen() != 0 {
			t.Fatalf("\t%s\tShould have an empty pool after sealing.", failed)
		}
		t.Logf("\t%s\tShould have an empty pool after sealing.", success)

		if !database.IsValid(db.Copy().Chain) {
			t.Fatalf("\t%s\tShould produce a valid chain: %v", failed, database.Validate(db.Copy().Chain))
		}
		t.Logf("\t%s\tShould produce a valid chain.", success)
	}
}

func Test_SealEmptyPool(t *testing.T) {
	t.Log("Given the need to seal a block with no pending transactions.")
	{
		db := newDB(t)

		block, err := db.SealBlock(7, "prev", "hash")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to seal the block: %v", failed, err)
		}

		if block.Index != 2 {
			t.Fatalf("\t%s\tShould advance the index to 2, got %d.", failed, block.Index)
		}
		t.Logf("\t%s\tShould advance the index to 2.", success)

		if block.Transactions == nil || len(block.Transactions) != 0 {
			t.Fatalf("\t%s\tShould seal an empty set of transactions: %v", failed, block.Transactions)
		}
		t.Logf("\t%s\tShould seal an empty set of transactions.", success)

		if block.Nonce != 7 || block.PrevHash != "prev" || block.Hash != "hash" {
			t.Fatalf("\t%s\tShould keep the provided proof of work values: %s", failed, block)
		}
		t.Logf("\t%s\tShould keep the provided proof of work values.", success)
	}
}

func Test_SealLivePool(t *testing.T) {
	t.Log("Given the need to seal the live pool rather than the mined snapshot.")
	{
		db := newDB(t)
		db.RecordTransaction(newTx(t, 1, "A", "B"))

		prevHash, payload, err := db.Snapshot()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to snapshot the ledger: %v", failed, err)
		}

		late := newTx(t, 2, "C", "D")
		db.RecordTransaction(late)

		if len(payload.Transactions) != 1 {
			t.Fatalf("\t%s\tShould not change the snapshot after a new transaction.", failed)
		}
		t.Logf("\t%s\tShould not change the snapshot after a new transaction.", success)

		nonce := database.Solve(prevHash, payload)
		block, err := db.SealBlock(nonce, prevHash, database.Hash(prevHash, nonce, payload))
		if err != nil {
			t.Fatalf("\t%s\tShould be able to seal the block: %v", failed, err)
		}

		if len(block.Transactions) != 2 || block.Transactions[1] != late {
			t.Fatalf("\t%s\tShould seal every transaction in the live pool: %v", failed, block.Transactions)
		}
		t.Logf("\t%s\tShould seal every transaction in the live pool.", success)
	}
}

func Test_ReplaceChain(t *testing.T) {
	t.Log("Given the need to replace a chain wholesale.")
	{
		donor := newDB(t)
		mine(t, donor)
		mine(t, donor)
		donor.RecordTransaction(newTx(t, 5, "X", "Y"))

		db := newDB(t)
		db.RecordTransaction(newTx(t, 1, "A", "B"))

		cs := donor.Copy()
		if err := db.ReplaceChain(cs.Chain, cs.Pending); err != nil {
			t.Fatalf("\t%s\tShould be able to replace the chain: %v", failed, err)
		}

		if db.Len() != 3 {
			t.Fatalf("\t%s\tShould have the donor's chain length, got %d.", failed, db.Len())
		}
		t.Logf("\t%s\tShould have the donor's chain length.", success)

		pending := db.Pending()
		if len(pending) != 1 || pending[0].Sender != "X" {
			t.Fatalf("\t%s\tShould have the donor's pending pool: %v", failed, pending)
		}
		t.Logf("\t%s\tShould have the donor's pending pool.", success)

		cs.Chain[1].Hash = "tampered"
		if _, found := db.FindBlockByHash("tampered"); found {
			t.Fatalf("\t%s\tShould not share memory with the caller.", failed)
		}
		t.Logf("\t%s\tShould not share memory with the caller.", success)
	}
}

func Test_ReplaceChainOutOfOrder(t *testing.T) {
	t.Log("Given the need to refuse a chain whose indexes don't follow each other.")
	{
		donor := newDB(t)
		mine(t, donor)
		mine(t, donor)

		db := newDB(t)
		blk := mine(t, db)
		db.RecordTransaction(newTx(t, 1, "A", "B"))

		cs := donor.Copy()
		cs.Chain[2].Index = 7

		if err := db.ReplaceChain(cs.Chain, cs.Pending); !errors.Is(err, database.ErrBlockOutOfOrder) {
			t.Fatalf("\t%s\tShould get ErrBlockOutOfOrder: %v", failed, err)
		}
		t.Logf("\t%s\tShould get ErrBlockOutOfOrder.", success)

		head, err := db.Head()
		if err != nil || head.Hash != blk.Hash || db.Len() != 2 || db.PendingLen() != 1 {
			t.Fatalf("\t%s\tShould leave the chain and pool untouched: %v %s", failed, err, head)
		}
		t.Logf("\t%s\tShould leave the chain and pool untouched.", success)

		if err := db.ReplaceChain(nil, nil); !errors.Is(err, database.ErrEmptyChain) {
			t.Fatalf("\t%s\tShould get ErrEmptyChain for an empty chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould get ErrEmptyChain for an empty chain.", success)
	}
}

func Test_AppendBlock(t *testing.T) {
	t.Log("Given the need to append a block mined by a peer.")
	{
		db := newDB(t)
		db.RecordTransaction(newTx(t, 1, "A", "B"))

		if err := db.AppendBlock(database.Block{Index: 3, Transactions: []database.Tx{}}); !errors.Is(err, database.ErrBlockOutOfOrder) {
			t.Fatalf("\t%s\tShould refuse a block that skips an index: %v", failed, err)
		}
		if db.PendingLen() != 1 {
			t.Fatalf("\t%s\tShould keep the pool after a refused block.", failed)
		}
		t.Logf("\t%s\tShould refuse a block that skips an index.", success)

		if err := db.AppendBlock(database.Block{Index: 2, Hash: "peer", PrevHash: database.GenesisHash, Transactions: []database.Tx{}}); err != nil {
			t.Fatalf("\t%s\tShould append the next block: %v", failed, err)
		}
		if db.Len() != 2 || db.PendingLen() != 0 {
			t.Fatalf("\t%s\tShould append the block and clear the pool.", failed)
		}
		t.Logf("\t%s\tShould append the block and clear the pool.", success)
	}
}
