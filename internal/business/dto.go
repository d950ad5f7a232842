package business

import (
	"time"

	"github.com/google/uuid"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
)

// CreateBusinessRequest is the payload for registering a business.
type CreateBusinessRequest struct {
	Name    string              `json:"name" validate:"required"`
	Type    *enums.BusinessType `json:"type,omitempty"`
	Address string              `json:"address" validate:"required"`
	City    string              `json:"city" validate:"required"`
	State   string              `json:"state" validate:"required"`
	Country string              `json:"country" validate:"required"`
	Phone   *string             `json:"phone,omitempty"`
}

// UpdateBusinessRequest carries the mutable business fields. Nil means
// leave unchanged.
type UpdateBusinessRequest struct {
	Name    *string             `json:"name,omitempty"`
	Type    *enums.BusinessType `json:"type,omitempty"`
	Address *string             `json:"address,omitempty"`
	City    *string             `json:"city,omitempty"`
	State   *string             `json:"state,omitempty"`
	Country *string             `json:"country,omitempty"`
	Phone   *string             `json:"phone,omitempty"`
}

// BusinessDTO is the transport shape for a business.
type BusinessDTO struct {
	ID        uuid.UUID           `json:"id"`
	OwnerID   uuid.UUID           `json:"owner_id"`
	Name      string              `json:"name"`
	Type      *enums.BusinessType `json:"type,omitempty"`
	Address   string              `json:"address"`
	City      string              `json:"city"`
	State     string              `json:"state"`
	Country   string              `json:"country"`
	Phone     *string             `json:"phone,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// WorkerDTO describes a worker linked to a business.
type WorkerDTO struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	AddedAt  time.Time `json:"added_at"`
}

// UPIDetailDTO is the transport shape for the business payment account.
type UPIDetailDTO struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business_id"`
	UPIID      string    `json:"upi_id"`
	PayeeName  string    `json:"payee_name"`
}

// SetUPIDetailRequest creates or replaces the business payment account.
type SetUPIDetailRequest struct {
	UPIID     string `json:"upi_id" validate:"required"`
	PayeeName string `json:"payee_name" validate:"required"`
}

// QRPayloadDTO wraps the deep link handed to QR renderers.
type QRPayloadDTO struct {
	Payload string `json:"payload"`
}

func FromModel(b *models.Business) *BusinessDTO {
	if b == nil {
		return nil
	}
	return &BusinessDTO{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Name:      b.Name,
		Type:      b.Type,
		Address:   b.Address,
		City:      b.City,
		State:     b.State,
		Country:   b.Country,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func upiFromModel(d *models.UPIDetail) *UPIDetailDTO {
	if d == nil {
		return nil
	}
	return &UPIDetailDTO{
		ID:         d.ID,
		BusinessID: d.BusinessID,
		UPIID:      d.UPIID,
		PayeeName:  d.PayeeName,
	}
}
