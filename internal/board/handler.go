package board

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	store       *OrderStore
	coordinator *Coordinator
	logger      apt.Logger
	config      *apt.Config
	tlm         *telemetry.HTTP
}

func NewHandler(store *OrderStore, coordinator *Coordinator, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		store:       store,
		coordinator: coordinator,
		logger:      logger,
		config:      config,
		tlm:         telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/board", func(r chi.Router) {
		r.Get("/", h.Board)
		r.Get("/summary", h.Summary)
		r.Post("/summary/complete", h.CompleteSummaryItems)
		r.Post("/refresh", h.RefreshBoard)
	})
	r.Route("/orders", func(r chi.Router) {
		r.Get("/{id}", h.OrderDetail)
		r.Post("/{id}/batch", h.ApplyBatch)
		r.Patch("/{id}/start", h.StartOrder)
		r.Patch("/{id}/complete", h.CompleteOrder)
		r.Delete("/{id}/session", h.CancelSession)
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

// Board returns the visible order list under the active filter.
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Board")
	defer finish()

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = FilterAll
	}
	if !ValidFilter(filter) {
		apt.RespondError(w, http.StatusBadRequest, "Invalid filter")
		return
	}

	views := Project(h.store.All(), filter, time.Now())

	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"filter":     filter,
		"orders":     views,
		"fetched_at": h.store.FetchedAt(),
	}, nil)
}

// Summary returns the cross-order outstanding item rollup.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Summary")
	defer finish()

	groups := Summarize(h.store.All(), time.Now())

	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"categories": groups,
		"fetched_at": h.store.FetchedAt(),
	}, nil)
}

type summaryCompleteRequest struct {
	Refs []struct {
		OrderID string `json:"order_id"`
		ItemID  string `json:"item_id"`
	} `json:"refs"`
}

// CompleteSummaryItems forces the selected (order, item) pairs to done,
// one batch call per pair.
func (h *Handler) CompleteSummaryItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CompleteSummaryItems")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req summaryCompleteRequest
	if err := decodeBody(r, &req); err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Refs) == 0 {
		apt.RespondError(w, http.StatusBadRequest, "No refs selected")
		return
	}

	outcomes := make([]BatchOutcome, 0, len(req.Refs))
	for _, ref := range req.Refs {
		orderID, err := uuid.Parse(ref.OrderID)
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid order ID")
			return
		}
		itemID, err := uuid.Parse(ref.ItemID)
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid item ID")
			return
		}

		outcome, err := h.coordinator.MarkItemDone(ctx, orderID, itemID)
		if err != nil {
			log.Errorf("cannot mark item %s done on order %s: %v", itemID, orderID, err)
			h.respondCoordinatorError(w, err)
			return
		}
		outcomes = append(outcomes, *outcome)
	}

	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"outcomes": outcomes,
	}, nil)
}

// RefreshBoard forces a full re-fetch of the working set.
func (h *Handler) RefreshBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RefreshBoard")
	defer finish()
	log := h.log(r)

	if err := h.store.Refresh(r.Context()); err != nil {
		log.Errorf("cannot refresh order store: %v", err)
		apt.RespondError(w, http.StatusBadGateway, "Could not refresh orders")
		return
	}

	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"orders":     h.store.Count(),
		"fetched_at": h.store.FetchedAt(),
	}, nil)
}

// OrderDetail returns one order with effective item statuses and opens a
// fresh edit session for it. Any prior session is discarded so stale
// toggles never leak into a new view.
func (h *Handler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.OrderDetail")
	defer finish()

	orderID, ok := h.orderIDParam(w, r)
	if !ok {
		return
	}

	order := h.store.Get(orderID)
	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	h.coordinator.OpenSession(orderID)

	// The detail view shows every item, done ones included; the completed
	// filter shares that no-hiding behavior.
	now := time.Now()
	view := orderView(order, DeriveOrderStatus(order, now), FilterCompleted, now)
	apt.Respond(w, http.StatusOK, view, nil)
}

type applyBatchRequest struct {
	Edits map[string]string `json:"edits"`
}

// ApplyBatch commits item status edits for one order.
func (h *Handler) ApplyBatch(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ApplyBatch")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	orderID, ok := h.orderIDParam(w, r)
	if !ok {
		return
	}

	var req applyBatchRequest
	if err := decodeBody(r, &req); err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	edits := make(map[ItemID]string, len(req.Edits))
	for idStr, status := range req.Edits {
		itemID, err := uuid.Parse(idStr)
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid item ID")
			return
		}
		edits[itemID] = status
	}

	outcome, err := h.coordinator.ApplyBatch(ctx, orderID, edits)
	if err != nil {
		log.Errorf("cannot apply batch for order %s: %v", orderID, err)
		h.respondCoordinatorError(w, err)
		return
	}

	apt.Respond(w, http.StatusOK, outcome, nil)
}

// StartOrder moves a pending order into preparation.
func (h *Handler) StartOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.StartOrder")
	defer finish()
	log := h.log(r)

	orderID, ok := h.orderIDParam(w, r)
	if !ok {
		return
	}

	if err := h.coordinator.StartOrder(r.Context(), orderID); err != nil {
		log.Errorf("cannot start order %s: %v", orderID, err)
		h.respondCoordinatorError(w, err)
		return
	}

	apt.RespondSuccess(w, map[string]interface{}{
		"order_id": orderID,
		"status":   "preparing",
	})
}

// CompleteOrder marks every item done and completes the order.
func (h *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CompleteOrder")
	defer finish()
	log := h.log(r)

	orderID, ok := h.orderIDParam(w, r)
	if !ok {
		return
	}

	outcome, err := h.coordinator.CompleteOrder(r.Context(), orderID)
	if err != nil {
		log.Errorf("cannot complete order %s: %v", orderID, err)
		h.respondCoordinatorError(w, err)
		return
	}

	apt.Respond(w, http.StatusOK, outcome, nil)
}

// CancelSession discards the edit overlay for an order without committing.
func (h *Handler) CancelSession(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CancelSession")
	defer finish()

	orderID, ok := h.orderIDParam(w, r)
	if !ok {
		return
	}

	h.coordinator.CloseSession(orderID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) orderIDParam(w http.ResponseWriter, r *http.Request) (OrderID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondCoordinatorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownOrder):
		apt.RespondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, ErrUnknownItem):
		apt.RespondError(w, http.StatusUnprocessableEntity, "Edit references unknown item")
	case errors.Is(err, ErrInvalidStatus):
		apt.RespondError(w, http.StatusUnprocessableEntity, "Invalid item status")
	case errors.Is(err, ErrBatchInFlight):
		apt.RespondError(w, http.StatusConflict, "A batch is already in flight for this order")
	case errors.Is(err, ErrOrderNotPending):
		apt.RespondError(w, http.StatusConflict, "Order is not pending")
	case IsTransport(err):
		apt.RespondError(w, http.StatusBadGateway, "Order service unavailable")
	default:
		apt.RespondError(w, http.StatusInternalServerError, "Could not process request")
	}
}

func decodeBody(r *http.Request, dest interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}
