package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Dates travel as "YYYY-MM-DD". Update inputs use pointers so that absent
// fields keep their stored value.

type CreateLeadInput struct {
	Name         string             `json:"name" validate:"required"`
	Email        string             `json:"email" validate:"required,email"`
	Phone        string             `json:"phone"`
	BusinessType string             `json:"business_type"`
	Segment      entity.LeadSegment `json:"segment"`
	Source       entity.LeadSource  `json:"source"`
	Notes        string             `json:"notes"`
}

type UpdateLeadInput struct {
	Name         *string             `json:"name" validate:"omitempty,min=1"`
	Email        *string             `json:"email" validate:"omitempty,email"`
	Phone        *string             `json:"phone"`
	BusinessType *string             `json:"business_type"`
	Segment      *entity.LeadSegment `json:"segment"`
	Source       *entity.LeadSource  `json:"source"`
	Status       *entity.LeadStatus  `json:"status"`
	Notes        *string             `json:"notes"`
}

type LeadFilter struct {
	Search  string `json:"search"`
	Segment string `json:"segment"`
	Status  string `json:"status"`
}

type CreateDealInput struct {
	LeadID      string           `json:"lead_id"`
	LeadName    string           `json:"lead_name"`
	Value       *decimal.Decimal `json:"value" validate:"required"`
	Products    []string         `json:"products"`
	Probability *int             `json:"probability" validate:"omitempty,gte=0,lte=100"`
	CloseDate   string           `json:"close_date"`
	Notes       string           `json:"notes"`
}

type UpdateDealInput struct {
	LeadID      *string           `json:"lead_id"`
	LeadName    *string           `json:"lead_name"`
	Stage       *entity.DealStage `json:"stage"`
	Value       *decimal.Decimal  `json:"value"`
	Products    *[]string         `json:"products"`
	Probability *int              `json:"probability" validate:"omitempty,gte=0,lte=100"`
	CloseDate   *string           `json:"close_date"`
	Notes       *string           `json:"notes"`
}

type MoveStageInput struct {
	Stage entity.DealStage `json:"stage" validate:"required"`
}

type DealFilter struct {
	Stage string `json:"stage"`
}

type CreateProductInput struct {
	Name        string                 `json:"name" validate:"required"`
	Category    entity.ProductCategory `json:"category"`
	Price       decimal.Decimal        `json:"price"`
	Description string                 `json:"description"`
	Features    []string               `json:"features"`
	IsActive    *bool                  `json:"is_active"`
}

type UpdateProductInput struct {
	Name        *string                 `json:"name" validate:"omitempty,min=1"`
	Category    *entity.ProductCategory `json:"category"`
	Price       *decimal.Decimal        `json:"price"`
	Description *string                 `json:"description"`
	Features    *[]string               `json:"features"`
	IsActive    *bool                   `json:"is_active"`
}

type ProductFilter struct {
	Category   string `json:"category"`
	ActiveOnly bool   `json:"active_only"`
}

type InvoiceItemInput struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity" validate:"gte=1"`
	Price       decimal.Decimal `json:"price"`
}

type CreateInvoiceInput struct {
	LeadID  string             `json:"lead_id" validate:"required"`
	DueDate string             `json:"due_date"`
	Items   []InvoiceItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateInvoiceInput struct {
	LeadID  *string               `json:"lead_id" validate:"omitempty,min=1"`
	DueDate *string               `json:"due_date"`
	Status  *entity.InvoiceStatus `json:"status"`
	Items   *[]InvoiceItemInput   `json:"items" validate:"omitempty,min=1,dive"`
}

type InvoiceFilter struct {
	Search string `json:"search"`
	Status string `json:"status"`
}

// ItemChange names the draft line field the user just edited.
type ItemChange string

const (
	ChangeQuantity    ItemChange = "quantity"
	ChangePrice       ItemChange = "price"
	ChangeProductID   ItemChange = "product_id"
	ChangeProductName ItemChange = "product_name"
)

type RecalculateItemInput struct {
	Item   InvoiceItemInput `json:"item"`
	Change ItemChange       `json:"change" validate:"required,oneof=quantity price product_id product_name"`
}
