package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/raamdecor/backoffice/internal/entities"
	"github.com/raamdecor/backoffice/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var orderColumns = []string{
	"id", "bonnummer", "customer_name", "email", "phone", "address", "zip", "city",
	"amount_cents", "status", "product_type", "description", "product_details",
	"client_note", "note_from_entrepreneur",
	"notify_by_email", "notification_email", "notify_by_whatsapp", "notification_phone",
	"created_at", "updated_at",
}

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) (entities.Order, error) {
	query, args := r.qb.Insert("orders").
		Columns(
			"bonnummer", "customer_name", "email", "phone", "address", "zip", "city",
			"amount_cents", "status", "product_type", "description", "product_details",
			"client_note", "note_from_entrepreneur",
			"notify_by_email", "notification_email", "notify_by_whatsapp", "notification_phone",
		).
		Values(
			o.Bonnummer, o.CustomerName, o.Email, nullString(o.Phone), nullString(o.Address),
			nullString(o.ZIP), nullString(o.City),
			o.AmountCents, string(o.Status), nullString(o.ProductType), nullString(o.Description),
			nullString(o.ProductDetails),
			nullString(o.ClientNote), nullString(o.NoteFromEntrepreneur),
			o.NotifyByEmail, nullString(o.NotificationEmail), o.NotifyByWhatsapp, nullString(o.NotificationPhone),
		).
		Suffix("RETURNING " + columnList()).
		MustSql()

	var saved Order
	err := r.getContext(ctx, &saved, query, args...)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return entities.Order{}, entities.ErrBonnummerTaken
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	return OrderToEntity(saved), nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id int64) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return OrderToEntity(order), nil
}

func (r *postgresRepo) GetOrderByBonnummer(ctx context.Context, bonnummer string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"bonnummer": bonnummer}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return OrderToEntity(order), nil
}

func (r *postgresRepo) ListOrders(ctx context.Context, limit, offset uint64) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o))
	}
	return result, nil
}

// UpdateOrder applies the non-nil fields of upd. updated_at always moves so
// a note-only edit is still visible as a change.
func (r *postgresRepo) UpdateOrder(ctx context.Context, id int64, upd entities.OrderUpdate) (entities.Order, error) {
	set := map[string]any{"updated_at": time.Now()}

	setString := func(col string, v *string) {
		if v != nil {
			set[col] = nullString(*v)
		}
	}
	setString("customer_name", upd.CustomerName)
	setString("email", upd.Email)
	setString("phone", upd.Phone)
	setString("address", upd.Address)
	setString("zip", upd.ZIP)
	setString("city", upd.City)
	setString("product_type", upd.ProductType)
	setString("description", upd.Description)
	setString("product_details", upd.ProductDetails)
	setString("client_note", upd.ClientNote)
	setString("note_from_entrepreneur", upd.NoteFromEntrepreneur)
	setString("notification_email", upd.NotificationEmail)
	setString("notification_phone", upd.NotificationPhone)

	if upd.AmountCents != nil {
		set["amount_cents"] = *upd.AmountCents
	}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if upd.NotifyByEmail != nil {
		set["notify_by_email"] = *upd.NotifyByEmail
	}
	if upd.NotifyByWhatsapp != nil {
		set["notify_by_whatsapp"] = *upd.NotifyByWhatsapp
	}

	query, args := r.qb.Update("orders").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList()).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	return OrderToEntity(order), nil
}

func (r *postgresRepo) CreateNotificationLog(ctx context.Context, e entities.NotificationLogEntry) error {
	id := e.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query, args := r.qb.Insert("notification_logs").
		Columns("id", "order_id", "notification_type", "status",
			"recipient_email", "recipient_phone", "error_message").
		Values(id, e.OrderID, string(e.NotificationType), string(e.Status),
			nullString(e.RecipientEmail), nullString(e.RecipientPhone), nullString(e.ErrorMessage)).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create notification log: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListNotificationLogs(ctx context.Context, orderID int64) ([]entities.NotificationLogEntry, error) {
	query, args := r.qb.Select("id", "order_id", "notification_type", "status",
		"recipient_email", "recipient_phone", "error_message", "created_at").
		From("notification_logs").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at DESC").
		MustSql()

	var logs []NotificationLog
	if err := r.selectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select notification logs: %w", err)
	}

	result := make([]entities.NotificationLogEntry, 0, len(logs))
	for _, l := range logs {
		result = append(result, NotificationLogToEntity(l))
	}
	return result, nil
}

func columnList() string {
	list := orderColumns[0]
	for _, c := range orderColumns[1:] {
		list += ", " + c
	}
	return list
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
