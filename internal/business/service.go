package business

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/config"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/upi"
)

// Service defines the business-catalog behavior used by controllers and
// the other domain services.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateBusinessRequest) (*BusinessDTO, error)
	Get(ctx context.Context, userID, businessID uuid.UUID) (*BusinessDTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]BusinessDTO, error)
	Update(ctx context.Context, userID, businessID uuid.UUID, req UpdateBusinessRequest) (*BusinessDTO, error)
	Delete(ctx context.Context, userID, businessID uuid.UUID) error

	AddWorker(ctx context.Context, ownerID, businessID uuid.UUID, workerUsername string) (*WorkerDTO, error)
	RemoveWorker(ctx context.Context, ownerID, businessID, workerID uuid.UUID) error
	ListWorkers(ctx context.Context, userID, businessID uuid.UUID) ([]WorkerDTO, error)

	SetUPIDetail(ctx context.Context, ownerID, businessID uuid.UUID, req SetUPIDetailRequest) (*UPIDetailDTO, error)
	GetUPIDetail(ctx context.Context, userID, businessID uuid.UUID) (*UPIDetailDTO, error)
	BuildQRPayload(ctx context.Context, userID, businessID uuid.UUID, amount decimal.Decimal, note, reference string) (*QRPayloadDTO, error)

	// EnsureAccess verifies the user owns the business or works there.
	EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, b *models.Business) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Business, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasAccess(ctx context.Context, businessID, userID uuid.UUID) (bool, error)
	AddWorker(ctx context.Context, businessID, workerID uuid.UUID) error
	RemoveWorker(ctx context.Context, businessID, workerID uuid.UUID) (int64, error)
	ListWorkers(ctx context.Context, businessID uuid.UUID) ([]models.BusinessWorker, error)
	UpsertUPIDetail(ctx context.Context, detail *models.UPIDetail) error
	FindUPIDetail(ctx context.Context, businessID uuid.UUID) (*models.UPIDetail, error)
}

type userLookup interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// ServiceParams bundles the dependencies for the business service.
type ServiceParams struct {
	Repo      repository
	UserRepo  userLookup
	UPIConfig config.UPIConfig
}

type service struct {
	repo   repository
	users  userLookup
	upiCfg config.UPIConfig
}

// NewService constructs a business service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("business repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		repo:   params.Repo,
		users:  params.UserRepo,
		upiCfg: params.UPIConfig,
	}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateBusinessRequest) (*BusinessDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name is required")
	}
	if req.Type != nil && !req.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid business type")
	}

	b := &models.Business{
		OwnerID: ownerID,
		Name:    name,
		Type:    req.Type,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Country: req.Country,
		Phone:   req.Phone,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "business name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create business")
	}
	return FromModel(b), nil
}

func (s *service) Get(ctx context.Context, userID, businessID uuid.UUID) (*BusinessDTO, error) {
	if err := s.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	b, err := s.repo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "business not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load business")
	}
	return FromModel(b), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]BusinessDTO, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list businesses")
	}
	out := make([]BusinessDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, userID, businessID uuid.UUID, req UpdateBusinessRequest) (*BusinessDTO, error) {
	if err := s.ensureOwner(ctx, userID, businessID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid business type")
		}
		updates["type"] = *req.Type
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if err := s.repo.Update(ctx, businessID, updates); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "business name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update business")
	}

	b, err := s.repo.FindByID(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload business")
	}
	return FromModel(b), nil
}

func (s *service) Delete(ctx context.Context, userID, businessID uuid.UUID) error {
	if err := s.ensureOwner(ctx, userID, businessID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, businessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete business")
	}
	return nil
}

func (s *service) AddWorker(ctx context.Context, ownerID, businessID uuid.UUID, workerUsername string) (*WorkerDTO, error) {
	if err := s.ensureOwner(ctx, ownerID, businessID); err != nil {
		return nil, err
	}

	worker, err := s.users.FindByUsername(ctx, strings.TrimSpace(workerUsername))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup worker")
	}
	if worker.ID == ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner is already a member")
	}

	if err := s.repo.AddWorker(ctx, businessID, worker.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "link worker")
	}
	return &WorkerDTO{
		UserID:   worker.ID,
		Username: worker.Username,
		Email:    worker.Email,
	}, nil
}

func (s *service) RemoveWorker(ctx context.Context, ownerID, businessID, workerID uuid.UUID) error {
	if err := s.ensureOwner(ctx, ownerID, businessID); err != nil {
		return err
	}
	removed, err := s.repo.RemoveWorker(ctx, businessID, workerID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unlink worker")
	}
	if removed == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "worker is not linked to this business")
	}
	return nil
}

func (s *service) ListWorkers(ctx context.Context, userID, businessID uuid.UUID) ([]WorkerDTO, error) {
	if err := s.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	links, err := s.repo.ListWorkers(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list workers")
	}
	out := make([]WorkerDTO, 0, len(links))
	for _, link := range links {
		dto := WorkerDTO{UserID: link.WorkerID, AddedAt: link.CreatedAt}
		if link.Worker != nil {
			dto.Username = link.Worker.Username
			dto.Email = link.Worker.Email
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *service) SetUPIDetail(ctx context.Context, ownerID, businessID uuid.UUID, req SetUPIDetailRequest) (*UPIDetailDTO, error) {
	if err := s.ensureOwner(ctx, ownerID, businessID); err != nil {
		return nil, err
	}
	upiID := strings.TrimSpace(req.UPIID)
	if !strings.Contains(upiID, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "upi_id must be a valid VPA")
	}
	payee := strings.TrimSpace(req.PayeeName)
	if payee == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payee_name is required")
	}

	detail := &models.UPIDetail{
		BusinessID: businessID,
		UPIID:      upiID,
		PayeeName:  payee,
	}
	if err := s.repo.UpsertUPIDetail(ctx, detail); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save upi detail")
	}

	saved, err := s.repo.FindUPIDetail(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload upi detail")
	}
	return upiFromModel(saved), nil
}

func (s *service) GetUPIDetail(ctx context.Context, userID, businessID uuid.UUID) (*UPIDetailDTO, error) {
	if err := s.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	detail, err := s.repo.FindUPIDetail(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no payment account configured")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load upi detail")
	}
	return upiFromModel(detail), nil
}

func (s *service) BuildQRPayload(ctx context.Context, userID, businessID uuid.UUID, amount decimal.Decimal, note, reference string) (*QRPayloadDTO, error) {
	detail, err := s.GetUPIDetail(ctx, userID, businessID)
	if err != nil {
		return nil, err
	}

	payload, err := upi.BuildPayload(upi.PaymentRequest{
		PayeeAddress: detail.UPIID,
		PayeeName:    detail.PayeeName,
		Amount:       amount,
		Currency:     s.upiCfg.Currency,
		Note:         note,
		Reference:    reference,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "build upi payload")
	}
	return &QRPayloadDTO{Payload: payload}, nil
}

func (s *service) EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error {
	ok, err := s.repo.HasAccess(ctx, businessID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check business access")
	}
	if !ok {
		// Do not leak existence to outsiders.
		if _, err := s.repo.FindByID(ctx, businessID); errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "business not found")
		}
		return pkgerrors.New(pkgerrors.CodeForbidden, "not a member of this business")
	}
	return nil
}

func (s *service) ensureOwner(ctx context.Context, userID, businessID uuid.UUID) error {
	b, err := s.repo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "business not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load business")
	}
	if b.OwnerID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the owner can do this")
	}
	return nil
}
