package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/payment"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentTypeRepository implements PaymentTypeRepository using GORM
type GormPaymentTypeRepository struct {
	db *gorm.DB
}

// NewGormPaymentTypeRepository creates a new GormPaymentTypeRepository
func NewGormPaymentTypeRepository(db *gorm.DB) *GormPaymentTypeRepository {
	return &GormPaymentTypeRepository{db: db}
}

// FindByCode finds a payment type by its code
func (r *GormPaymentTypeRepository) FindByCode(ctx context.Context, code string) (*payment.PaymentType, error) {
	var model models.PaymentTypeModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOrganization lists the types usable by an organization:
// its own plus the global ones.
func (r *GormPaymentTypeRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID) ([]payment.PaymentType, error) {
	var typeModels []models.PaymentTypeModel
	if err := r.db.WithContext(ctx).
		Where("organization_id IS NULL OR organization_id = ?", organizationID).
		Order("code ASC").
		Find(&typeModels).Error; err != nil {
		return nil, err
	}
	types := make([]payment.PaymentType, len(typeModels))
	for i, model := range typeModels {
		types[i] = *model.ToDomain()
	}
	return types, nil
}

// Save creates or updates a payment type
func (r *GormPaymentTypeRepository) Save(ctx context.Context, paymentType *payment.PaymentType) error {
	model := models.PaymentTypeModelFromDomain(paymentType)
	return r.db.WithContext(ctx).Save(model).Error
}
