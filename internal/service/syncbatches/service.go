// Package syncbatches чтение журнала тиков синхронизации. Журнал нужен только
// для наблюдения: бизнес-логика его не читает.
package syncbatches

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// Service сервис журнала синхронизации
type Service struct {
	repo   BatchRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo BatchRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID тик с посчитанными изменениями по ресурсам
func (s *Service) GetByID(ctx context.Context, id string) (*domain.SyncBatch, error) {
	batch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSyncBatchNotFound) {
			s.logger.Warn("GetByID: sync batch id=%s not found", id)
			return nil, ErrBatchNotFound
		}
		s.logger.Error("GetByID: failed to get sync batch id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return batch, nil
}

// List последние тики, новые первыми. limit вне 1..MaxLimit заменяется значением по умолчанию.
func (s *Service) List(ctx context.Context, limit int) ([]*domain.SyncBatch, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	list, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d sync batches", len(list))
	return list, nil
}
