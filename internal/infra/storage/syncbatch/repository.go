package syncbatch

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BayBookingService/pkg/psqlbuilder"
)

// TxManager транзакции для закрытия тика (batch + счетчики по ресурсам)
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repository журнал тиков синхронизации
type Repository struct {
	db        dbmetrics.DBExecutor
	txManager TxManager
}

func NewRepository(db dbmetrics.DBExecutor, txManager TxManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// Create сохраняет начатый тик
func (r *Repository) Create(ctx context.Context, b *domain.SyncBatch) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sync_batches").
		Columns("id", "trigger", "started_at", "outcome").
		Values(b.ID, b.Trigger, b.StartedAt, string(b.Outcome)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// Complete закрывает тик и сохраняет счетчики по ресурсам одной транзакцией
func (r *Repository) Complete(ctx context.Context, b *domain.SyncBatch) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		query, args, err := psqlbuilder.Update("sync_batches").
			Set("finished_at", b.FinishedAt).
			Set("outcome", string(b.Outcome)).
			Set("error", b.Error).
			Where(squirrel.Eq{"id": b.ID}).
			Where(squirrel.Eq{"finished_at": nil}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(txCtx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return ErrBatchCompleted
		}

		if len(b.Resources) == 0 {
			return nil
		}

		insert := psqlbuilder.Insert("sync_batch_resources").
			Columns("batch_id", "resource_id", "created", "updated", "deleted", "failed", "skipped", "error")
		for _, rs := range b.Resources {
			insert = insert.Values(b.ID, rs.ResourceID, rs.Created, rs.Updated, rs.Deleted, rs.Failed, rs.Skipped, rs.Error)
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: Complete - build insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: Complete - insert resource stats: %v", ErrExecQuery, err)
		}
		return nil
	})
}

// GetByID тик со счетчиками
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.SyncBatch, error) {
	batches, err := r.list(ctx, squirrel.Eq{"id": id}, 1)
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, ErrBatchNotFound
	}
	return batches[0], nil
}

// List последние тики, новые первыми
func (r *Repository) List(ctx context.Context, limit int) ([]*domain.SyncBatch, error) {
	return r.list(ctx, nil, limit)
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer, limit int) ([]*domain.SyncBatch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "trigger", "started_at", "finished_at", "outcome", "error").
		From("sync_batches").
		OrderBy("started_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	batches := make([]*domain.SyncBatch, 0)
	index := make(map[string]*domain.SyncBatch)
	ids := make([]string, 0)
	for rows.Next() {
		var b domain.SyncBatch
		if err := rows.Scan(&b.ID, &b.Trigger, &b.StartedAt, &b.FinishedAt, &b.Outcome, &b.Error); err != nil {
			return nil, fmt.Errorf("%w: list - scan batch: %v", ErrScanRow, err)
		}
		batches = append(batches, &b)
		index[b.ID] = &b
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows iteration: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return batches, nil
	}
	if err := r.loadResources(ctx, executor, ids, index); err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *Repository) loadResources(ctx context.Context, executor dbmetrics.DBExecutor, ids []string, index map[string]*domain.SyncBatch) error {
	query, args, err := psqlbuilder.Select("batch_id", "resource_id", "created", "updated", "deleted", "failed", "skipped", "error").
		From("sync_batch_resources").
		Where(squirrel.Eq{"batch_id": ids}).
		OrderBy("resource_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadResources - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadResources - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			batchID string
			rs      domain.ResourceSyncStats
		)
		if err := rows.Scan(&batchID, &rs.ResourceID, &rs.Created, &rs.Updated, &rs.Deleted, &rs.Failed, &rs.Skipped, &rs.Error); err != nil {
			return fmt.Errorf("%w: loadResources - scan stats: %v", ErrScanRow, err)
		}
		if b, ok := index[batchID]; ok {
			b.Resources = append(b.Resources, rs)
		}
	}
	return rows.Err()
}
