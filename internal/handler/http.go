package handler

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/raamdecor/backoffice/internal/config"
	"github.com/raamdecor/backoffice/internal/entities"
	"github.com/raamdecor/backoffice/internal/middleware"
	"github.com/raamdecor/backoffice/pkg/tokenstore"
	"github.com/raamdecor/backoffice/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error)
	GetOrderByID(ctx context.Context, id int64) (entities.Order, error)
	ListOrders(ctx context.Context, limit, offset uint64) ([]entities.Order, error)
	UpdateOrder(ctx context.Context, id int64, upd entities.OrderUpdate) (entities.Order, error)
	GetStatusByBonnummer(ctx context.Context, bonnummer string) (entities.StatusView, error)
	ListNotifications(ctx context.Context, orderID int64) ([]entities.NotificationLogEntry, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService

	sessions *tokenstore.Store
	csrf     *tokenstore.Store
	auth     config.Auth
}

func NewHTTPHandler(logger *slog.Logger, svc OrderService, sessions, csrf *tokenstore.Store, auth config.Auth) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		svc:      svc,
		sessions: sessions,
		csrf:     csrf,
		auth:     auth,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Get("/status/{bonnummer}", h.GetStatus)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(h.sessions))

			r.Post("/logout", h.Logout)
			r.Get("/csrf", h.CSRFToken)

			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{id}", h.GetOrder)
			r.Get("/orders/{id}/notifications", h.ListOrderNotifications)

			r.Group(func(r chi.Router) {
				r.Use(middleware.CSRF(h.csrf))

				r.Post("/orders", h.CreateOrder)
				r.Patch("/orders/{id}", h.UpdateOrder)
			})
		})
	})
}

// Login issues an admin session token.
// @Summary      Admin login
// @Tags         auth
// @Param        request  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  LoginResponse
// @Failure      401  {object}  utils.ErrorResponse
// @Router       /admin/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.auth.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.auth.AdminPassword)) == 1
	if !userOK || !passOK {
		utils.WriteError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.sessions.Issue(req.Username, h.auth.SessionTTL)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to issue session", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.auth.SessionTTL),
	}, http.StatusOK)
}

// Logout revokes the current session token.
// @Summary      Admin logout
// @Tags         auth
// @Success      204
// @Router       /admin/logout [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		h.sessions.Revoke(sess.Token)
	}
	w.WriteHeader(http.StatusNoContent)
}

// CSRFToken issues a single-use token bound to the current session. Mutating
// admin requests must present it in the X-CSRF-Token header.
// @Summary      Issue CSRF token
// @Tags         auth
// @Success      200  {object}  CSRFResponse
// @Router       /admin/csrf [get]
func (h *HTTPHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		utils.WriteErrorCode(w, middleware.CodeAuthRequired, "authentication required", http.StatusUnauthorized)
		return
	}

	token, err := h.csrf.Issue(sess.Token, h.auth.CSRFTTL)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to issue csrf token", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, CSRFResponse{Token: token}, http.StatusOK)
}

// CreateOrder creates an order from an admin form.
// @Summary      Create order
// @Tags         orders
// @Param        request  body  CreateOrderRequest  true  "Order"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Router       /admin/orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.CreateOrder(ctx, CreateRequestToEntity(req))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ordersCreated.WithLabelValues("admin").Inc()
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// UpdateOrder applies a partial update. Including status in the payload
// triggers customer notification, even when the value is unchanged.
// @Summary      Update order
// @Tags         orders
// @Param        id       path  int                 true  "Order id"
// @Param        request  body  UpdateOrderRequest  true  "Fields to update"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /admin/orders/{id} [patch]
func (h *HTTPHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := orderID(r)
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req UpdateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.UpdateOrder(ctx, id, UpdateRequestToEntity(req))

	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, entities.ErrInvalidStatus) {
		utils.WriteError(w, "invalid order status", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update order", slog.Any("error", err), slog.Int64("order_id", id))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.Status != nil {
		statusTransitions.WithLabelValues(*req.Status).Inc()
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// GetOrder returns an order by id.
// @Summary      Get order
// @Tags         orders
// @Param        id  path  int  true  "Order id"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /admin/orders/{id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := orderID(r)
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, err := h.svc.GetOrderByID(ctx, id)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err), slog.Int64("order_id", id))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ListOrders returns orders, newest first.
// @Summary      List orders
// @Tags         orders
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {array}  Order
// @Router       /admin/orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := queryUint(r, "limit", 50)
	if limit > 100 {
		limit = 100
	}
	offset := queryUint(r, "offset", 0)

	orders, err := h.svc.ListOrders(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderEntityToJSON(o))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

// ListOrderNotifications returns the dispatch log for an order.
// @Summary      List order notifications
// @Tags         orders
// @Param        id  path  int  true  "Order id"
// @Success      200  {array}  NotificationLog
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /admin/orders/{id}/notifications [get]
func (h *HTTPHandler) ListOrderNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := orderID(r)
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	entries, err := h.svc.ListNotifications(ctx, id)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list notifications", slog.Any("error", err), slog.Int64("order_id", id))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	result := make([]NotificationLog, 0, len(entries))
	for _, e := range entries {
		result = append(result, NotificationLogEntityToJSON(e))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

// GetStatus is the public customer-facing status lookup by bonnummer.
// @Summary      Get order status
// @Tags         public
// @Param        bonnummer  path  string  true  "Order reference"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /status/{bonnummer} [get]
func (h *HTTPHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bonnummer := chi.URLParam(r, "bonnummer")
	if err := h.validate.Var(bonnummer, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	view, err := h.svc.GetStatusByBonnummer(ctx, bonnummer)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get status", slog.Any("error", err), slog.String("bonnummer", bonnummer))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, StatusResponse{
		Bonnummer: view.Bonnummer,
		Status:    string(view.Status),
		Message:   view.Message,
	}, http.StatusOK)
}

func orderID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryUint(r *http.Request, key string, fallback uint64) uint64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
