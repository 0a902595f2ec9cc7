package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/raamdecor/backoffice/internal/entities"
	"github.com/raamdecor/backoffice/pkg/trm"
	"github.com/raamdecor/backoffice/pkg/utils"
)

type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) (entities.Order, error)
	GetOrderByID(ctx context.Context, id int64) (entities.Order, error)
	GetOrderByBonnummer(ctx context.Context, bonnummer string) (entities.Order, error)
	ListOrders(ctx context.Context, limit, offset uint64) ([]entities.Order, error)
	UpdateOrder(ctx context.Context, id int64, upd entities.OrderUpdate) (entities.Order, error)
	ListNotificationLogs(ctx context.Context, orderID int64) ([]entities.NotificationLogEntry, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, order entities.Order, status entities.Status)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type orderService struct {
	logger     *slog.Logger
	txManager  trm.Manager
	repo       OrderRepo
	dispatcher Dispatcher
	cache      Cache
	policy     entities.TransitionPolicy
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, dispatcher Dispatcher, cache Cache, policy entities.TransitionPolicy) *orderService {
	if policy == nil {
		policy = entities.AllowAllPolicy{}
	}
	return &orderService{
		logger:     logger.With(slog.String("service", "order")),
		txManager:  txManager,
		repo:       repo,
		dispatcher: dispatcher,
		cache:      cache,
		policy:     policy,
	}
}

// CreateOrder assigns a fresh bonnummer and persists the order. Bonnummers
// are random so the unique constraint is only a backstop; on the rare
// collision a new one is generated.
func (s *orderService) CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error) {
	if order.Status == "" {
		order.Status = entities.StatusPending
	}
	if !order.Status.Known() {
		return entities.Order{}, entities.ErrInvalidStatus
	}

	const maxAttempts = 3
	for attempt := 1; ; attempt++ {
		order.Bonnummer = newBonnummer()

		saved, err := s.repo.CreateOrder(ctx, order)
		if errors.Is(err, entities.ErrBonnummerTaken) && attempt < maxAttempts {
			continue
		}
		if err != nil {
			return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
		}

		s.logger.InfoContext(ctx, "order created",
			slog.Int64("order_id", saved.ID), slog.String("bonnummer", saved.Bonnummer))
		return saved, nil
	}
}

func (s *orderService) GetOrderByID(ctx context.Context, id int64) (entities.Order, error) {
	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, id)
		return err
	}
	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  3,
		Multiplier:   2,
	}
	if err := utils.Retry(cfg, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, limit, offset uint64) ([]entities.Order, error) {
	return s.repo.ListOrders(ctx, limit, offset)
}

// UpdateOrder applies a partial update inside a transaction. When the status
// field is present in the update, notifications are dispatched after the
// write commits, even if the value did not change: staff re-submit the same
// status to re-send the customer mail. Dispatch outcome never fails the
// update.
func (s *orderService) UpdateOrder(ctx context.Context, id int64, upd entities.OrderUpdate) (entities.Order, error) {
	if upd.Status != nil && !upd.Status.Known() {
		return entities.Order{}, entities.ErrInvalidStatus
	}

	var updated entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}

		if upd.Status != nil {
			if err := s.policy.Allow(existing.Status, *upd.Status); err != nil {
				return fmt.Errorf("%w: %s", entities.ErrInvalidStatus, err)
			}
		}

		updated, err = s.repo.UpdateOrder(ctx, id, upd)
		return err
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.cache.Delete(statusCacheKey(updated.Bonnummer))

	if upd.Status != nil {
		s.logger.InfoContext(ctx, "order status updated",
			slog.Int64("order_id", updated.ID), slog.String("status", string(updated.Status)))
		s.dispatcher.Dispatch(ctx, updated, *upd.Status)
	}

	return updated, nil
}

// GetStatusByBonnummer serves the public status lookup through the cache.
func (s *orderService) GetStatusByBonnummer(ctx context.Context, bonnummer string) (entities.StatusView, error) {
	key := statusCacheKey(bonnummer)

	if data, ok := s.cache.Get(key); ok {
		var view entities.StatusView
		if err := view.Unmarshal(data); err == nil {
			return view, nil
		}
		s.cache.Delete(key)
	}

	order, err := s.repo.GetOrderByBonnummer(ctx, bonnummer)
	if err != nil {
		return entities.StatusView{}, err
	}

	view := entities.StatusView{
		Bonnummer: order.Bonnummer,
		Status:    order.Status,
		Message:   order.Status.Message(),
	}

	if data, err := view.Marshal(); err == nil {
		s.cache.Set(key, data)
	}
	return view, nil
}

func (s *orderService) ListNotifications(ctx context.Context, orderID int64) ([]entities.NotificationLogEntry, error) {
	if _, err := s.repo.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListNotificationLogs(ctx, orderID)
}

func statusCacheKey(bonnummer string) string {
	return "status:" + bonnummer
}

func newBonnummer() string {
	buf := make([]byte, 3)
	rand.Read(buf)
	return fmt.Sprintf("B%s-%s", time.Now().Format("060102"), strings.ToUpper(hex.EncodeToString(buf)))
}
