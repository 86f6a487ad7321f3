// Package httpx translates HTTP requests into use case calls and faults into
// response statuses. It carries no business rules of its own.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
	"github.com/jcmexdev/storefront/internal/core/ports"
	"github.com/jcmexdev/storefront/internal/core/usecase"
)

// Handler holds the use cases behind the HTTP surface. recommend may be nil
// when no similarity service is configured; the endpoint then answers 503.
type Handler struct {
	signUp    *usecase.SignUp
	signIn    *usecase.SignIn
	checkout  *usecase.Checkout
	orders    *usecase.OrderQueries
	catalog   *usecase.Catalog
	recommend *usecase.Recommend
}

func NewHandler(
	signUp *usecase.SignUp,
	signIn *usecase.SignIn,
	checkout *usecase.Checkout,
	orders *usecase.OrderQueries,
	catalog *usecase.Catalog,
	recommend *usecase.Recommend,
) *Handler {
	return &Handler{
		signUp:    signUp,
		signIn:    signIn,
		checkout:  checkout,
		orders:    orders,
		catalog:   catalog,
		recommend: recommend,
	}
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	user, err := h.signUp.Execute(r.Context(), usecase.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapUserToResponse(user))
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	session, err := h.signIn.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.CustomerID == "" || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "customer_id and items are required")
		return
	}

	details, err := vo.ParsePaymentDetails(vo.PaymentTag(req.Payment.Method), req.Payment.Details)
	if err != nil {
		writeFault(w, err)
		return
	}

	items := make([]usecase.CheckoutItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = usecase.CheckoutItemInput{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	order, err := h.checkout.Execute(r.Context(), usecase.CheckoutInput{
		CustomerID:     req.CustomerID,
		Items:          items,
		PaymentMethod:  vo.PaymentTag(req.Payment.Method),
		PaymentDetails: details,
		Street:         req.Address.Street,
		Number:         req.Address.Number,
		Complement:     req.Address.Complement,
		District:       req.Address.District,
		City:           req.Address.City,
		State:          req.Address.State,
		ZipCode:        req.Address.ZipCode,
	})
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapOrderToResponse(order))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "customer_id query parameter is required")
		return
	}

	page, err := h.orders.ListForCustomer(r.Context(), customerID, pageRequest(r))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapPage(page, mapOrderToResponse))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_product", "price must be a decimal string")
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), usecase.CreateProductInput{
		Name:        req.Name,
		Price:       price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    mapCategoryDTO(req.Category),
	})
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProductToResponse(product))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetShowcaseProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProductToResponse(product))
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.ListProducts(r.Context(), pageRequest(r))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapPage(page, mapProductToResponse))
}

func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if h.recommend == nil {
		writeError(w, http.StatusServiceUnavailable, "recommendations_disabled", "no similarity service configured")
		return
	}

	products, err := h.recommend.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFault(w, err)
		return
	}
	out := make([]ProductResponse, len(products))
	for i, product := range products {
		out[i] = mapProductToResponse(product)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func mapCategoryDTO(dto *CategoryDTO) *entity.Category {
	if dto == nil {
		return nil
	}
	id, err := vo.ParseID(dto.ID)
	if err != nil {
		id = vo.NewID()
	}
	return &entity.Category{
		ID:     id,
		Name:   dto.Name,
		Parent: mapCategoryDTO(dto.Parent),
	}
}

func pageRequest(r *http.Request) ports.PageRequest {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return ports.PageRequest{Page: page, PageSize: pageSize}.Normalize()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: msg})
}

// writeFault maps the fault taxonomy to HTTP statuses. Anything that is not
// a fault is an unexpected failure and answers 500 without leaking internals.
func writeFault(w http.ResponseWriter, err error) {
	var f *fault.Fault
	if !errors.As(err, &f) {
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	status := http.StatusInternalServerError
	switch f.Kind {
	case fault.KindValidation:
		status = http.StatusBadRequest
	case fault.KindNotFound:
		status = http.StatusNotFound
	case fault.KindConflict:
		status = http.StatusConflict
	case fault.KindForbidden:
		status = http.StatusForbidden
	}
	writeJSON(w, status, ErrorResponse{Error: f.Code, Message: f.Message, Detail: f.Detail})
}
