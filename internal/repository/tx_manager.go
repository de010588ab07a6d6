package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Inventory() InventoryRepository
	Products() ProductRepository
	Categories() CategoryRepository
	Adjustments() AdjustmentRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがnilを返したらcommit、errorならrollback。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
