package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BayBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

const table = "reservations"

var columns = []string{
	"id",
	"resource_id",
	"reservation_date",
	"start_minute",
	"duration_minutes",
	"status",
	"customer_name",
	"customer_phone",
	"party_size",
	"notes",
	"created_by",
	"sync_status",
	"external_event_id",
	"external_calendar_id",
	"synced_version",
	"synced_at",
	"last_sync_error",
	"sync_attempts",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий броней в Postgres
type Repository struct {
	db          DBExecutor
	lockTimeout time.Duration
}

// NewRepository lockTimeout ограничивает ожидание блокировки ресурса внутри транзакции
func NewRepository(db DBExecutor, lockTimeout time.Duration) *Repository {
	return &Repository{db: db, lockTimeout: lockTimeout}
}

// Create сохраняет новую бронь. Идентификатор и метки времени задает вызывающий.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"resource_id",
			"reservation_date",
			"start_minute",
			"duration_minutes",
			"status",
			"customer_name",
			"customer_phone",
			"party_size",
			"notes",
			"created_by",
			"sync_status",
			"created_at",
			"updated_at",
		).
		Values(
			res.ID,
			res.ResourceID,
			res.Date.Format(domain.DateFormat),
			res.StartTime.Minutes(),
			res.DurationMinutes,
			res.Status,
			res.CustomerName,
			res.CustomerPhone,
			res.PartySize,
			res.Notes,
			res.CreatedBy,
			res.SyncStatus,
			res.CreatedAt,
			res.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронь по ID. Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}
	return res, nil
}

// LockResource сериализует проверку доступности и запись для одного ресурса.
// Транзакционная advisory-блокировка освобождается при commit/rollback.
func (r *Repository) LockResource(ctx context.Context, resourceID string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	timeout := fmt.Sprintf("%dms", r.lockTimeout.Milliseconds())
	if _, err := executor.ExecContext(ctx, `SELECT set_config('lock_timeout', $1, true)`, timeout); err != nil {
		return fmt.Errorf("%w: LockResource - set lock_timeout: %v", ErrExecQuery, err)
	}

	if _, err := executor.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "reservations:"+resourceID); err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: LockResource - advisory lock: %v", ErrExecQuery, err)
	}
	return nil
}

// ListByResourceAndDate брони ресурса на дату с указанными статусами
func (r *Repository) ListByResourceAndDate(ctx context.Context, resourceID string, date time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)}).
		OrderBy("start_minute")
	if len(statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statusStrings(statuses)})
	}
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResourceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByResourceAndDate", query, args)
}

// List брони по фильтру
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("reservation_date", "start_minute", "id")
	if filter.ResourceID != nil {
		builder = builder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"reservation_date": filter.Date.Format(domain.DateFormat)})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "List", query, args)
}

// Update перезаписывает бизнес-поля, статус и сбрасывает статус синхронизации.
// Поля внешней ссылки не трогает: ими владеет синхронизатор.
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		SetMap(map[string]interface{}{
			"resource_id":      res.ResourceID,
			"reservation_date": res.Date.Format(domain.DateFormat),
			"start_minute":     res.StartTime.Minutes(),
			"duration_minutes": res.DurationMinutes,
			"status":           res.Status,
			"customer_name":    res.CustomerName,
			"customer_phone":   res.CustomerPhone,
			"party_size":       res.PartySize,
			"notes":            res.Notes,
			"sync_status":      res.SyncStatus,
			"cancelled_at":     res.CancelledAt,
			"updated_at":       res.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if rows == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// ListPendingSync брони ресурса, по которым внешний календарь отстает
func (r *Repository) ListPendingSync(ctx context.Context, resourceID string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"status": string(domain.StatusConfirmed)},
				squirrel.Or{
					squirrel.NotEq{"sync_status": string(domain.SyncSynced)},
					squirrel.Expr("synced_version IS DISTINCT FROM updated_at"),
				},
			},
			squirrel.And{
				squirrel.Eq{"status": string(domain.StatusCancelled)},
				squirrel.Or{
					squirrel.NotEq{"external_event_id": nil},
					squirrel.NotEq{"sync_status": string(domain.SyncSynced)},
				},
			},
		}).
		OrderBy("reservation_date", "start_minute", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingSync - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListPendingSync", query, args)
}

// RecordSyncResult записывает результат синхронизации одной брони.
// Внешняя ссылка сохраняется всегда (иначе событие осиротеет), статус - только если
// updated_at не изменился с момента чтения. Возвращает, применился ли статус.
func (r *Repository) RecordSyncResult(ctx context.Context, sr domain.SyncResult) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	unchanged := "CASE WHEN updated_at = ? THEN %s ELSE %s END"
	builder := psqlbuilder.Update(table).
		Set("sync_status", squirrel.Expr(fmt.Sprintf(unchanged, "?", "sync_status"), sr.Version, string(sr.Status)))

	switch sr.Status {
	case domain.SyncSynced:
		builder = builder.
			Set("synced_at", squirrel.Expr(fmt.Sprintf(unchanged, "?::timestamptz", "synced_at"), sr.Version, sr.At)).
			Set("synced_version", squirrel.Expr(fmt.Sprintf(unchanged, "updated_at", "synced_version"), sr.Version)).
			Set("last_sync_error", squirrel.Expr(fmt.Sprintf(unchanged, "NULL", "last_sync_error"), sr.Version))
	case domain.SyncSyncFailed:
		builder = builder.
			Set("last_sync_error", squirrel.Expr(fmt.Sprintf(unchanged, "?", "last_sync_error"), sr.Version, sr.Error)).
			Set("sync_attempts", squirrel.Expr(fmt.Sprintf("sync_attempts + "+unchanged, "1", "0"), sr.Version))
	}

	if sr.SetRef {
		builder = builder.
			Set("external_event_id", sr.ExternalRef).
			Set("external_calendar_id", sr.CalendarID)
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": sr.ReservationID}).
		Suffix("RETURNING updated_at = ?", sr.Version).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: RecordSyncResult - build update query: %v", ErrBuildQuery, err)
	}

	var applied bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&applied)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrReservationNotFound
	}
	if err != nil {
		return false, fmt.Errorf("%w: RecordSyncResult - execute update: %v", ErrExecQuery, err)
	}
	return applied, nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Reservation, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res         domain.Reservation
		startMinute int
	)

	err := row.Scan(
		&res.ID,
		&res.ResourceID,
		&res.Date,
		&startMinute,
		&res.DurationMinutes,
		&res.Status,
		&res.CustomerName,
		&res.CustomerPhone,
		&res.PartySize,
		&res.Notes,
		&res.CreatedBy,
		&res.SyncStatus,
		&res.ExternalEventID,
		&res.ExternalCalendarID,
		&res.SyncedVersion,
		&res.SyncedAt,
		&res.LastSyncError,
		&res.SyncAttempts,
		&res.CancelledAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	start, err := types.FromMinutes(startMinute)
	if err != nil {
		return nil, err
	}
	res.StartTime = start
	res.Date = domain.DateOnly(res.Date)
	return &res, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
