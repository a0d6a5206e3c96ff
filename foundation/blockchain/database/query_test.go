package database_test

import (
	"testing"
)

func Test_Query(t *testing.T) {
	t.Log("Given the need to query the sealed chain.")
	{
		db := newDB(t)

		tx1 := newTx(t, 20, "A", "B")
		tx2 := newTx(t, 5, "B", "C")
		self := newTx(t, 7, "B", "B")

		db.RecordTransaction(tx1)
		mine(t, db)

		db.RecordTransaction(tx2)
		db.RecordTransaction(self)
		blk3 := mine(t, db)

		pending := newTx(t, 100, "Z", "B")
		db.RecordTransaction(pending)

		t.Logf("\tTest 0:\tWhen looking up blocks by hash.")
		{
			block, found := db.FindBlockByHash(blk3.Hash)
			if !found || block.Index != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould find block 3 by hash: %v", failed, block)
			}
			t.Logf("\t%s\tTest 0:\tShould find block 3 by hash.", success)

			if _, found := db.FindBlockByHash("missing"); found {
				t.Fatalf("\t%s\tTest 0:\tShould not find an unknown hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not find an unknown hash.", success)
		}

		t.Logf("\tTest 1:\tWhen looking up transactions by id.")
		{
			tx, block, found := db.FindTransaction(tx2.ID)
			if !found || tx != tx2 || block.Hash != blk3.Hash {
				t.Fatalf("\t%s\tTest 1:\tShould find the transaction and its block: %v %v", failed, tx, block)
			}
			t.Logf("\t%s\tTest 1:\tShould find the transaction and its block.", success)

			if _, _, found := db.FindTransaction(pending.ID); found {
				t.Fatalf("\t%s\tTest 1:\tShould not find a pending transaction.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not find a pending transaction.", success)

			if _, _, found := db.FindTransaction(""); found {
				t.Fatalf("\t%s\tTest 1:\tShould not find an empty id.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not find an empty id.", success)
		}

		t.Logf("\tTest 2:\tWhen summarizing addresses.")
		{
			txs, balance := db.AddressSummary("B")
			if len(txs) != 3 || txs[0] != tx1 || txs[1] != tx2 || txs[2] != self {
				t.Fatalf("\t%s\tTest 2:\tShould list each transaction once in chain order: %v", failed, txs)
			}
			t.Logf("\t%s\tTest 2:\tShould list each transaction once in chain order.", success)

			if balance != 15 {
				t.Logf("\t%s\tTest 2:\tgot: %v", failed, balance)
				t.Logf("\t%s\tTest 2:\texp: %v", failed, 15)
				t.Fatalf("\t%s\tTest 2:\tShould compute the balance.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould compute the balance.", success)

			txs, balance = db.AddressSummary("nobody")
			if txs == nil || len(txs) != 0 || balance != 0 {
				t.Fatalf("\t%s\tTest 2:\tShould get an empty list and zero balance: %v %v", failed, txs, balance)
			}
			t.Logf("\t%s\tTest 2:\tShould get an empty list and zero balance.", success)

		}
	}
}
