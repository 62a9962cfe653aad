package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dnlfranklin/gostore/internal/core/domain"
	"github.com/dnlfranklin/gostore/internal/core/service"
)

type HTTPHandler struct {
	orders    *service.OrderService
	customers *service.CustomerService
	products  *service.ProductService
}

func NewHTTPHandler(orders *service.OrderService, customers *service.CustomerService, products *service.ProductService) *HTTPHandler {
	return &HTTPHandler{
		orders:    orders,
		customers: customers,
		products:  products,
	}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.CreateOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.GetOrder)
	mux.HandleFunc("POST /api/customers", h.CreateCustomer)
	mux.HandleFunc("POST /api/products", h.CreateProduct)
	mux.HandleFunc("GET /health", h.HealthCheck)
}

type OrderItemRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Products   []OrderItemRequest `json:"products"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	Customer  CustomerResponse    `json:"customer"`
	Products  []OrderItemResponse `json:"products"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if req.CustomerID == "" || len(req.Products) == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "missing required fields"})
		return
	}

	items := make([]domain.OrderItemRequest, len(req.Products))
	for i, p := range req.Products {
		if p.ID == "" || p.Quantity <= 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid product entry"})
			return
		}
		items[i] = domain.OrderItemRequest{ProductID: p.ID, Quantity: p.Quantity}
	}

	order, err := h.orders.CreateOrder(r.Context(), req.CustomerID, items)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "order does not exist"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *HTTPHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if req.Name == "" || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "missing required fields"})
		return
	}

	customer, err := h.customers.CreateCustomer(r.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			writeJSON(w, http.StatusConflict, ErrorResponse{Message: "email address already used"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, toCustomerResponse(customer))
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if req.Name == "" || req.Quantity < 0 || req.Price.IsNegative() {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "missing or invalid fields"})
		return
	}

	product, err := h.products.CreateProduct(r.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNameTaken) {
			writeJSON(w, http.StatusConflict, ErrorResponse{Message: "product name already used"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, ProductResponse{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  product.Quantity,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeOrderError(w http.ResponseWriter, err error) {
	var notFound *service.ProductNotFoundError
	var noStock *service.InsufficientStockError

	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "customer does not exist"})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: notFound.Error()})
	case errors.As(err, &noStock):
		writeJSON(w, http.StatusConflict, ErrorResponse{Message: noStock.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
	}
}

func toCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return OrderResponse{
		ID:        o.ID,
		Customer:  toCustomerResponse(&o.Customer),
		Products:  items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
