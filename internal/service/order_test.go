package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/raamdecor/backoffice/internal/entities"
	"github.com/raamdecor/backoffice/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) CreateOrder(ctx context.Context, o entities.Order) (entities.Order, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, id int64) (entities.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderRepo) GetOrderByBonnummer(ctx context.Context, bonnummer string) (entities.Order, error) {
	args := m.Called(ctx, bonnummer)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderRepo) ListOrders(ctx context.Context, limit, offset uint64) ([]entities.Order, error) {
	args := m.Called(ctx, limit, offset)
	var orders []entities.Order
	if v := args.Get(0); v != nil {
		orders = v.([]entities.Order)
	}
	return orders, args.Error(1)
}

func (m *mockOrderRepo) UpdateOrder(ctx context.Context, id int64, upd entities.OrderUpdate) (entities.Order, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderRepo) ListNotificationLogs(ctx context.Context, orderID int64) ([]entities.NotificationLogEntry, error) {
	args := m.Called(ctx, orderID)
	var entries []entities.NotificationLogEntry
	if v := args.Get(0); v != nil {
		entries = v.([]entities.NotificationLogEntry)
	}
	return entries, args.Error(1)
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) Dispatch(ctx context.Context, order entities.Order, status entities.Status) {
	m.Called(ctx, order, status)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(key string) ([]byte, bool) {
	args := m.Called(key)
	var b []byte
	if v := args.Get(0); v != nil {
		b = v.([]byte)
	}
	return b, args.Bool(1)
}

func (m *mockCache) Set(key string, value []byte) {
	m.Called(key, value)
}

func (m *mockCache) Delete(key string) {
	m.Called(key)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, cb func(ctx context.Context) error) error {
	return cb(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func statusPtr(s entities.Status) *entities.Status { return &s }
func strPtr(s string) *string                      { return &s }

func TestOrderService_UpdateOrder(t *testing.T) {
	dbError := errors.New("db error")

	existing := entities.Order{
		ID:        1,
		Bonnummer: "B260901-AB12CD",
		Status:    entities.StatusPending,
	}

	testCases := []struct {
		name         string
		upd          entities.OrderUpdate
		mockBehavior func(repo *mockOrderRepo, dispatcher *mockDispatcher, cache *mockCache)
		wantErr      error
		wantStatus   entities.Status
	}{
		{
			name: "status update dispatches notification",
			upd:  entities.OrderUpdate{Status: statusPtr(entities.StatusProcessing)},
			mockBehavior: func(repo *mockOrderRepo, dispatcher *mockDispatcher, cache *mockCache) {
				updated := existing
				updated.Status = entities.StatusProcessing
				repo.On("GetOrderByID", mock.Anything, int64(1)).Return(existing, nil).Once()
				repo.On("UpdateOrder", mock.Anything, int64(1), mock.Anything).Return(updated, nil).Once()
				cache.On("Delete", "status:B260901-AB12CD").Once()
				dispatcher.On("Dispatch", mock.Anything, updated, entities.StatusProcessing).Once()
			},
			wantStatus: entities.StatusProcessing,
		},
		{
			// Re-submitting the current status with the field present still
			// re-sends the notification. Staff rely on this to re-send mails.
			name: "same status value still dispatches",
			upd:  entities.OrderUpdate{Status: statusPtr(entities.StatusPending)},
			mockBehavior: func(repo *mockOrderRepo, dispatcher *mockDispatcher, cache *mockCache) {
				repo.On("GetOrderByID", mock.Anything, int64(1)).Return(existing, nil).Once()
				repo.On("UpdateOrder", mock.Anything, int64(1), mock.Anything).Return(existing, nil).Once()
				cache.On("Delete", "status:B260901-AB12CD").Once()
				dispatcher.On("Dispatch", mock.Anything, existing, entities.StatusPending).Once()
			},
			wantStatus: entities.StatusPending,
		},
		{
			name: "note-only update does not dispatch",
			upd:  entities.OrderUpdate{NoteFromEntrepreneur: strPtr("stof besteld")},
			mockBehavior: func(repo *mockOrderRepo, dispatcher *mockDispatcher, cache *mockCache) {
				repo.On("GetOrderByID", mock.Anything, int64(1)).Return(existing, nil).Once()
				repo.On("UpdateOrder", mock.Anything, int64(1), mock.Anything).Return(existing, nil).Once()
				cache.On("Delete", "status:B260901-AB12CD").Once()
			},
			wantStatus: entities.StatusPending,
		},
		{
			name:         "unknown status is rejected before any write",
			upd:          entities.OrderUpdate{Status: statusPtr(entities.Status("verzonnen"))},
			mockBehavior: func(repo *mockOrderRepo, dispatcher *mockDispatcher, cache *mockCache) {},
			wantErr:      entities.ErrInvalidStatus,
		},
		{
			name: "order not found",
			upd:  entities.OrderUpdate{Status: statusPtr(entities.StatusReady)},
			mockBehavior: func(repo *mockOrderRepo, dispatcher *mockDispatcher, cache *mockCache) {
				repo.On("GetOrderByID", mock.Anything, int64(1)).Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name: "write failure surfaces and skips dispatch",
			upd:  entities.OrderUpdate{Status: statusPtr(entities.StatusReady)},
			mockBehavior: func(repo *mockOrderRepo, dispatcher *mockDispatcher, cache *mockCache) {
				repo.On("GetOrderByID", mock.Anything, int64(1)).Return(existing, nil).Once()
				repo.On("UpdateOrder", mock.Anything, int64(1), mock.Anything).Return(entities.Order{}, dbError).Once()
			},
			wantErr: dbError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockOrderRepo{}
			dispatcher := &mockDispatcher{}
			cache := &mockCache{}
			tc.mockBehavior(repo, dispatcher, cache)

			svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, dispatcher, cache, nil)

			got, err := svc.UpdateOrder(context.Background(), 1, tc.upd)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantStatus, got.Status)
			}

			repo.AssertExpectations(t)
			dispatcher.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

type denyPolicy struct{}

func (denyPolicy) Allow(from, to entities.Status) error {
	return errors.New("transition not allowed")
}

func TestOrderService_UpdateOrder_Policy(t *testing.T) {
	repo := &mockOrderRepo{}
	dispatcher := &mockDispatcher{}
	cache := &mockCache{}

	existing := entities.Order{ID: 1, Bonnummer: "B1", Status: entities.StatusPending}
	repo.On("GetOrderByID", mock.Anything, int64(1)).Return(existing, nil).Once()

	svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, dispatcher, cache, denyPolicy{})

	_, err := svc.UpdateOrder(context.Background(), 1, entities.OrderUpdate{Status: statusPtr(entities.StatusReady)})
	assert.ErrorIs(t, err, entities.ErrInvalidStatus)

	repo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestOrderService_CreateOrder(t *testing.T) {
	t.Run("defaults to pending and assigns bonnummer", func(t *testing.T) {
		repo := &mockOrderRepo{}
		repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
			return o.Status == entities.StatusPending && o.Bonnummer != ""
		})).Return(entities.Order{ID: 7, Bonnummer: "B1", Status: entities.StatusPending}, nil).Once()

		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &mockDispatcher{}, &mockCache{}, nil)

		got, err := svc.CreateOrder(context.Background(), entities.Order{CustomerName: "J. de Vries"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("retries with a fresh bonnummer on collision", func(t *testing.T) {
		repo := &mockOrderRepo{}
		repo.On("CreateOrder", mock.Anything, mock.Anything).
			Return(entities.Order{}, entities.ErrBonnummerTaken).Once()
		repo.On("CreateOrder", mock.Anything, mock.Anything).
			Return(entities.Order{ID: 8, Bonnummer: "B2", Status: entities.StatusPending}, nil).Once()

		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &mockDispatcher{}, &mockCache{}, nil)

		got, err := svc.CreateOrder(context.Background(), entities.Order{CustomerName: "J. de Vries"})
		require.NoError(t, err)
		assert.Equal(t, int64(8), got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown initial status", func(t *testing.T) {
		svc := service.NewOrderService(testLogger(), fakeTxManager{}, &mockOrderRepo{}, &mockDispatcher{}, &mockCache{}, nil)

		_, err := svc.CreateOrder(context.Background(), entities.Order{Status: entities.Status("verzonnen")})
		assert.ErrorIs(t, err, entities.ErrInvalidStatus)
	})
}

func TestOrderService_GetStatusByBonnummer(t *testing.T) {
	order := entities.Order{ID: 1, Bonnummer: "B1", Status: entities.StatusReady}
	view := entities.StatusView{Bonnummer: "B1", Status: entities.StatusReady, Message: entities.StatusReady.Message()}
	viewData, err := view.Marshal()
	require.NoError(t, err)

	t.Run("cache hit", func(t *testing.T) {
		repo := &mockOrderRepo{}
		cache := &mockCache{}
		cache.On("Get", "status:B1").Return(viewData, true).Once()

		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &mockDispatcher{}, cache, nil)

		got, err := svc.GetStatusByBonnummer(context.Background(), "B1")
		require.NoError(t, err)
		assert.Equal(t, view, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache miss loads from repo and caches", func(t *testing.T) {
		repo := &mockOrderRepo{}
		cache := &mockCache{}
		cache.On("Get", "status:B1").Return(nil, false).Once()
		repo.On("GetOrderByBonnummer", mock.Anything, "B1").Return(order, nil).Once()
		cache.On("Set", "status:B1", viewData).Once()

		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &mockDispatcher{}, cache, nil)

		got, err := svc.GetStatusByBonnummer(context.Background(), "B1")
		require.NoError(t, err)
		assert.Equal(t, view, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockOrderRepo{}
		cache := &mockCache{}
		cache.On("Get", "status:B9").Return(nil, false).Once()
		repo.On("GetOrderByBonnummer", mock.Anything, "B9").Return(entities.Order{}, entities.ErrOrderNotFound).Once()

		svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &mockDispatcher{}, cache, nil)

		_, err := svc.GetStatusByBonnummer(context.Background(), "B9")
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})
}

func TestOrderService_ListNotifications(t *testing.T) {
	repo := &mockOrderRepo{}
	order := entities.Order{ID: 1}
	entries := []entities.NotificationLogEntry{{OrderID: 1, NotificationType: entities.NotificationEmail}}

	repo.On("GetOrderByID", mock.Anything, int64(1)).Return(order, nil).Once()
	repo.On("ListNotificationLogs", mock.Anything, int64(1)).Return(entries, nil).Once()

	svc := service.NewOrderService(testLogger(), fakeTxManager{}, repo, &mockDispatcher{}, &mockCache{}, nil)

	got, err := svc.ListNotifications(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	repo.AssertExpectations(t)
}
