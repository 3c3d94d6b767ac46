package model

// Snapshot is an immutable copy of the store's current state, handed to
// the aggregation functions. Engine code never mutates a snapshot;
// mutation happens only through store operations, which produce a fresh
// snapshot on the next read.
type Snapshot struct {
	Transactions []Transaction
	Categories   []Category
	Budgets      []Budget
	Accounts     []Account
}
