package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rental-pricing-backend/internal/security"
	"rental-pricing-backend/internal/service"
)

// Services holds the dependencies of the HTTP API
type Services struct {
	Orders       service.RentalOrderService
	Documents    service.DocumentService
	Images       service.ProductImageService
	Tokens       security.TokenManager
	MaxImageSize int64
}

// NewRouter registers every API route. Routes are named after their entry
// in the endpoint security table.
func NewRouter(s Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware, loggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet).Name("Health")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(s.Tokens))

	orders := NewOrderHandler(s.Orders, s.Documents)
	api.HandleFunc("/orders/{id}", orders.GetOrder).Methods(http.MethodGet).Name("GetOrder")
	api.HandleFunc("/orders/{id}", orders.UpdateOrder).Methods(http.MethodPatch).Name("UpdateOrder")
	api.HandleFunc("/orders/{id}/lines", orders.AddOrderLine).Methods(http.MethodPost).Name("AddOrderLine")
	api.HandleFunc("/orders/{id}/lines/{lineID}", orders.UpdateOrderLine).Methods(http.MethodPatch).Name("UpdateOrderLine")
	api.HandleFunc("/orders/{id}/actions/update-rental-prices", orders.UpdateRentalPrices).Methods(http.MethodPost).Name("UpdateRentalPrices")
	api.HandleFunc("/orders/{id}/print-options", orders.UpdatePrintOptions).Methods(http.MethodPatch).Name("UpdatePrintOptions")
	api.HandleFunc("/orders/{id}/document", orders.GetOrderDocument).Methods(http.MethodGet).Name("GetOrderDocument")

	images := NewImageUploadHandler(s.Images, s.MaxImageSize)
	api.HandleFunc("/products/{id}/image", images.HandleUpload).Methods(http.MethodPut).Name("UploadProductImage")
	api.HandleFunc("/products/{id}/image", images.HandleDownload).Methods(http.MethodGet).Name("GetProductImage")

	return router
}
