package database

// FindBlockByHash returns the first block with the specified hash.
func (db *Database) FindBlockByHash(hash string) (Block, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var found Block
	var ok bool

	db.forEach(func(block Block) bool {
		if block.Hash == hash {
			found, ok = block, true
			return false
		}
		return true
	})

	found.Transactions = copyTxs(found.Transactions)
	return found, ok
}

// FindTransaction returns the first transaction with the specified id in
// chain order along with the block that holds it.
func (db *Database) FindTransaction(id string) (Tx, Block, bool) {
	if id == "" {
		return Tx{}, Block{}, false
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	var foundTx Tx
	var foundBlock Block
	var ok bool

	db.forEach(func(block Block) bool {
		for _, tx := range block.Transactions {
			if tx.ID == id {
				foundTx, foundBlock, ok = tx, block, true
				return false
			}
		}
		return true
	})

	foundBlock.Transactions = copyTxs(foundBlock.Transactions)
	return foundTx, foundBlock, ok
}

// AddressSummary returns every sealed transaction the address takes part in
// and the resulting balance. A transaction sent to itself is listed once
// and nets to zero.
func (db *Database) AddressSummary(address string) ([]Tx, float64) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	txs := []Tx{}
	var balance float64

	db.forEach(func(block Block) bool {
		for _, tx := range block.Transactions {
			var involved bool

			if tx.Recipient == address {
				balance += tx.Amount
				involved = true
			}

			if tx.Sender == address {
				balance -= tx.Amount
				involved = true
			}

			if involved {
				txs = append(txs, tx)
			}
		}
		return true
	})

	return txs, balance
}
