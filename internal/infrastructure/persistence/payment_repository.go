package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/payment"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentSortFields contains allowed sort fields for payment records
var PaymentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"paid_at":    true,
	"amount":     true,
	"type_code":  true,
}

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.PaymentRecord, error) {
	var model models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOrganization finds a payment by ID for a specific organization
func (r *GormPaymentRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*payment.PaymentRecord, error) {
	var model models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLease lists a lease's payments ordered by paid_at ascending
func (r *GormPaymentRepository) FindByLease(ctx context.Context, organizationID, leaseID uuid.UUID) ([]payment.PaymentRecord, error) {
	var paymentModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND lease_id = ?", organizationID, leaseID).
		Order("paid_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByLeaseInRange lists a lease's payments with paid_at inside [from, to)
func (r *GormPaymentRepository) FindByLeaseInRange(ctx context.Context, organizationID, leaseID uuid.UUID, from, to time.Time) ([]payment.PaymentRecord, error) {
	var paymentModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND lease_id = ? AND paid_at >= ? AND paid_at < ?",
			organizationID, leaseID, from, to).
		Order("paid_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindAllForOrganization finds all payments for an organization with filtering
func (r *GormPaymentRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter payment.PaymentFilter) ([]payment.PaymentRecord, error) {
	var paymentModels []models.PaymentRecordModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.PaymentRecordModel{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// Save creates or updates a payment record
func (r *GormPaymentRepository) Save(ctx context.Context, record *payment.PaymentRecord) error {
	model := models.PaymentRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// SumByLease returns the total confirmed amount paid against a lease
func (r *GormPaymentRepository) SumByLease(ctx context.Context, organizationID, leaseID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.PaymentRecordModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("organization_id = ? AND lease_id = ?", organizationID, leaseID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// CountForOrganization counts payments for an organization
func (r *GormPaymentRepository) CountForOrganization(ctx context.Context, organizationID uuid.UUID, filter payment.PaymentFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.PaymentRecordModel{}).
			Where("organization_id = ?", organizationID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter payment.PaymentFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PaymentSortFields, "paid_at")
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter payment.PaymentFilter) *gorm.DB {
	if filter.LeaseID != nil {
		query = query.Where("lease_id = ?", *filter.LeaseID)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.TypeCode != nil {
		query = query.Where("type_code = ?", *filter.TypeCode)
	}
	if filter.PaidFrom != nil {
		query = query.Where("paid_at >= ?", *filter.PaidFrom)
	}
	if filter.PaidTo != nil {
		query = query.Where("paid_at < ?", *filter.PaidTo)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	return query
}

func toDomainPayments(paymentModels []models.PaymentRecordModel) []payment.PaymentRecord {
	records := make([]payment.PaymentRecord, len(paymentModels))
	for i, model := range paymentModels {
		records[i] = *model.ToDomain()
	}
	return records
}
