package httpx

import (
	"encoding/json"
	"time"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type CheckoutRequest struct {
	CustomerID string                `json:"customer_id"`
	Items      []CheckoutItemDTO     `json:"items"`
	Payment    PaymentDTO            `json:"payment"`
	Address    AddressDTO            `json:"address"`
}

type CheckoutItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PaymentDTO defers detail decoding until the method tag is known; the vo
// layer picks the union member.
type PaymentDTO struct {
	Method  string          `json:"method"`
	Details json.RawMessage `json:"details"`
}

type AddressDTO struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	Customer  CustomerResponse    `json:"customer"`
	Payment   json.RawMessage     `json:"payment"`
	Address   AddressDTO          `json:"address"`
	Items     []OrderItemResponse `json:"items"`
	Total     string              `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Subtotal    string `json:"subtotal"`
}

type CreateProductRequest struct {
	Name        string       `json:"name"`
	Price       string       `json:"price"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	Category    *CategoryDTO `json:"category,omitempty"`
}

type CategoryDTO struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Parent *CategoryDTO `json:"parent,omitempty"`
}

type ProductResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Price       string       `json:"price"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	Category    *CategoryDTO `json:"category,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func mapOrderToResponse(order *entity.Order) OrderResponse {
	payment, _ := json.Marshal(order.Payment())
	address := order.DeliveryAddress()

	items := order.Items()
	itemsOut := make([]OrderItemResponse, len(items))
	for i, item := range items {
		itemsOut[i] = OrderItemResponse{
			ProductID:   item.Product.ID.String(),
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Price.String(),
			Subtotal:    item.Subtotal().String(),
		}
	}

	return OrderResponse{
		ID: order.ID().String(),
		Customer: CustomerResponse{
			ID:    order.Customer().ID.String(),
			Name:  order.Customer().Name,
			Email: order.Customer().Email.String(),
		},
		Payment: payment,
		Address: AddressDTO{
			Street:     address.Street,
			Number:     address.Number,
			Complement: address.Complement,
			District:   address.District,
			City:       address.City,
			State:      address.State,
			ZipCode:    address.ZipCode,
		},
		Items:     itemsOut,
		Total:     order.Total().String(),
		CreatedAt: order.CreatedAt(),
		UpdatedAt: order.UpdatedAt(),
	}
}

func mapProductToResponse(product *entity.ShowcaseProduct) ProductResponse {
	return ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Price:       product.Price.String(),
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Category:    mapCategory(product.Category),
	}
}

func mapCategory(c *entity.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:     c.ID.String(),
		Name:   c.Name,
		Parent: mapCategory(c.Parent),
	}
}

func mapUserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email.String(),
		CreatedAt: user.CreatedAt,
	}
}

func mapPage[T, U any](page ports.Page[T], mapItem func(T) U) PageResponse[U] {
	items := make([]U, len(page.Items))
	for i, item := range page.Items {
		items[i] = mapItem(item)
	}
	return PageResponse[U]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
