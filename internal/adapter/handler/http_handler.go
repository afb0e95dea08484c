package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kevscue/storefront/internal/core/domain"
	"github.com/kevscue/storefront/internal/core/service"
	"github.com/kevscue/storefront/internal/port"
)

// HTTPHandler is the storefront JSON surface: product browsing, cart
// mutations and checkout. Authentication is delegated: the caller presents
// the customer ID it was issued in the X-Customer-ID header.
type HTTPHandler struct {
	cart      *service.CartService
	checkout  *service.CheckoutService
	orders    *service.OrderService
	catalog   port.CatalogRepository
	customers port.CustomerRepository
}

func NewHTTPHandler(cart *service.CartService, checkout *service.CheckoutService, orders *service.OrderService, catalog port.CatalogRepository, customers port.CustomerRepository) *HTTPHandler {
	return &HTTPHandler{
		cart:      cart,
		checkout:  checkout,
		orders:    orders,
		catalog:   catalog,
		customers: customers,
	}
}

type cartLineView struct {
	Product   domain.Product `json:"product"`
	Quantity  int            `json:"quantity"`
	LineTotal int64          `json:"line_total"`
}

type cartViewResponse struct {
	Items     []cartLineView `json:"items"`
	Subtotal  int64          `json:"subtotal"`
	ItemCount int            `json:"item_count"`
	Capped    bool           `json:"capped,omitempty"`
	Message   string         `json:"message,omitempty"`
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type checkoutResponse struct {
	OrderID          string `json:"order_id,omitempty"`
	GrandTotal       int64  `json:"grand_total,omitempty"`
	NotificationSent bool   `json:"notification_sent,omitempty"`
	Message          string `json:"message"`
}

func (h *HTTPHandler) Products(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, checkoutResponse{Message: "catalog unavailable"})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *HTTPHandler) Cart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.cartView(false, ""))
	case http.MethodDelete:
		h.cart.Clear(r.Context())
		writeJSON(w, http.StatusOK, h.cartView(false, ""))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *HTTPHandler) CartItems(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, checkoutResponse{Message: "invalid request body"})
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.addItem(w, r, req)
	case http.MethodPut:
		h.setQuantity(w, r, req)
	case http.MethodDelete:
		h.cart.RemoveItem(r.Context(), req.ProductID)
		writeJSON(w, http.StatusOK, h.cartView(false, ""))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *HTTPHandler) addItem(w http.ResponseWriter, r *http.Request, req cartItemRequest) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		writeJSON(w, http.StatusBadRequest, checkoutResponse{Message: "quantity must be positive"})
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, checkoutResponse{Message: "catalog unavailable"})
		return
	}
	if product == nil {
		writeJSON(w, http.StatusNotFound, checkoutResponse{Message: "product not found"})
		return
	}

	_, capped := h.cart.AddItem(r.Context(), *product, req.Quantity)
	message := fmt.Sprintf("%s has been added to your cart.", product.Name)
	if capped {
		message = fmt.Sprintf("Only %d items are available.", product.Stock)
	}
	writeJSON(w, http.StatusOK, h.cartView(capped, message))
}

func (h *HTTPHandler) setQuantity(w http.ResponseWriter, r *http.Request, req cartItemRequest) {
	line, capped := h.cart.SetQuantity(r.Context(), req.ProductID, req.Quantity)
	message := ""
	if capped {
		message = fmt.Sprintf("Only %d items are available.", line.Product.Stock)
	}
	writeJSON(w, http.StatusOK, h.cartView(capped, message))
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, checkoutResponse{Message: "invalid request body"})
		return
	}

	identity, err := h.resolveIdentity(r, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, checkoutResponse{Message: "customer lookup failed"})
		return
	}

	fee := h.checkout.DeliveryFee(r.Context())

	sub, err := h.checkout.Assemble(h.cart, identity, fee)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			writeJSON(w, http.StatusUnauthorized, checkoutResponse{Message: "you need to be logged in to complete your order"})
			return
		}
		if errors.Is(err, service.ErrEmptyCart) {
			writeJSON(w, http.StatusBadRequest, checkoutResponse{Message: "your cart is empty"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, checkoutResponse{Message: "checkout failed"})
		return
	}

	receipt, err := h.orders.Submit(r.Context(), sub)
	if err != nil {
		if errors.Is(err, service.ErrSubmitInProgress) {
			writeJSON(w, http.StatusConflict, checkoutResponse{Message: "checkout already in progress"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, checkoutResponse{Message: "checkout failed"})
		return
	}

	message := "your order has been placed successfully"
	if !receipt.NotificationSent {
		message = "order placed; confirmation message delivery is delayed"
	}
	writeJSON(w, http.StatusOK, checkoutResponse{
		OrderID:          receipt.OrderID,
		GrandTotal:       receipt.GrandTotal,
		NotificationSent: receipt.NotificationSent,
		Message:          message,
	})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveIdentity loads the authenticated customer's profile and overlays the
// checkout form fields. A missing or unknown customer yields an empty
// identity, which Assemble rejects.
func (h *HTTPHandler) resolveIdentity(r *http.Request, req checkoutRequest) (domain.CheckoutIdentity, error) {
	identity := domain.CheckoutIdentity{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		return identity, nil
	}

	customer, err := h.customers.GetCustomer(r.Context(), customerID)
	if err != nil {
		return domain.CheckoutIdentity{}, err
	}
	if customer == nil {
		return identity, nil
	}

	identity.CustomerID = customer.ID
	if identity.Name == "" {
		identity.Name = customer.Name
	}
	if identity.Email == "" {
		identity.Email = customer.Email
	}
	if identity.Phone == "" {
		identity.Phone = customer.Phone
	}
	if identity.Address == "" {
		identity.Address = customer.Address
	}
	return identity, nil
}

func (h *HTTPHandler) cartView(capped bool, message string) cartViewResponse {
	lines := h.cart.Lines()
	view := cartViewResponse{
		Items:   make([]cartLineView, 0, len(lines)),
		Capped:  capped,
		Message: message,
	}
	for _, l := range lines {
		view.Items = append(view.Items, cartLineView{
			Product:   l.Product,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
		})
		view.Subtotal += l.LineTotal()
		view.ItemCount += l.Quantity
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
