package memory

import "context"

// TxManager для хранилища в памяти: атомарность обеспечивают блокировки ресурсов
type TxManager struct{}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
