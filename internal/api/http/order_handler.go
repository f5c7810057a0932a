package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rental-pricing-backend/internal/pricing"
	"rental-pricing-backend/internal/service"
)

const maxBodyBytes = 1 << 20

type OrderHandler struct {
	orders    service.RentalOrderService
	documents service.DocumentService
}

func NewOrderHandler(orders service.RentalOrderService, documents service.DocumentService) *OrderHandler {
	return &OrderHandler{orders: orders, documents: documents}
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", service.ErrInvalidEdit, name)
	}
	return int32(id), nil
}

func decodeChanges(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	var changes map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&changes); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON body: %v", service.ErrInvalidEdit, err)
	}
	return changes, nil
}

func parseMode(r *http.Request) (pricing.Mode, error) {
	switch r.URL.Query().Get("mode") {
	case "", "interactive":
		return pricing.ModeInteractive, nil
	case "stored":
		return pricing.ModeStored, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", service.ErrInvalidEdit, r.URL.Query().Get("mode"))
	}
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	changes, err := decodeChanges(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.orders.UpdateOrder(r.Context(), id, changes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrderLine(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	lineID, err := pathID(r, "lineID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	mode, err := parseMode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	changes, err := decodeChanges(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	update, err := h.orders.UpdateLine(r.Context(), orderID, lineID, changes, mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

func (h *OrderHandler) AddOrderLine(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	mode, err := parseMode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	values, err := decodeChanges(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	update, err := h.orders.AddLine(r.Context(), orderID, values, mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, update)
}

func (h *OrderHandler) UpdateRentalPrices(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.orders.UpdateRentalPrices(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdatePrintOptions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	changes, err := decodeChanges(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := h.documents.UpdatePrintOptions(r.Context(), id, changes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (h *OrderHandler) GetOrderDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := h.documents.BuildOrderDocument(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
