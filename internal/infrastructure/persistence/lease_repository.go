package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/leasing"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// LeaseSortFields contains allowed sort fields for leases
var LeaseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"start_date": true,
	"end_date":   true,
	"amount":     true,
	"status":     true,
}

// GormLeaseRepository implements LeaseRepository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// FindByID finds a lease by its ID
func (r *GormLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.LeaseAgreement, error) {
	var model models.LeaseAgreementModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOrganization finds a lease by ID for a specific organization
func (r *GormLeaseRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*leasing.LeaseAgreement, error) {
	var model models.LeaseAgreementModel
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

// FindAllForOrganization finds all leases for an organization with filtering
func (r *GormLeaseRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter leasing.LeaseFilter) ([]leasing.LeaseAgreement, error) {
	var leaseModels []models.LeaseAgreementModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LeaseAgreementModel{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainLeases(leaseModels), nil
}

// FindByUnit finds leases on a unit
func (r *GormLeaseRepository) FindByUnit(ctx context.Context, organizationID, unitID uuid.UUID) ([]leasing.LeaseAgreement, error) {
	var leaseModels []models.LeaseAgreementModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND unit_id = ?", organizationID, unitID).
		Order("start_date ASC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainLeases(leaseModels), nil
}

// FindByProperty finds leases across a property's units
func (r *GormLeaseRepository) FindByProperty(ctx context.Context, organizationID, propertyID uuid.UUID) ([]leasing.LeaseAgreement, error) {
	var leaseModels []models.LeaseAgreementModel
	if err := r.db.WithContext(ctx).Model(&models.LeaseAgreementModel{}).
		Joins("JOIN units ON units.id = lease_agreements.unit_id").
		Where("lease_agreements.organization_id = ? AND units.property_id = ?", organizationID, propertyID).
		Order("lease_agreements.start_date ASC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainLeases(leaseModels), nil
}

// FindActiveByTenant finds a renter's active leases
func (r *GormLeaseRepository) FindActiveByTenant(ctx context.Context, organizationID, tenantID uuid.UUID) ([]leasing.LeaseAgreement, error) {
	var leaseModels []models.LeaseAgreementModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND tenant_id = ? AND status = ?",
			organizationID, tenantID, leasing.LeaseStatusActive).
		Order("start_date ASC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainLeases(leaseModels), nil
}

// Save creates or updates a lease
func (r *GormLeaseRepository) Save(ctx context.Context, lease *leasing.LeaseAgreement) error {
	model := models.LeaseAgreementModelFromDomain(lease)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormLeaseRepository) SaveWithLock(ctx context.Context, lease *leasing.LeaseAgreement) error {
	model := models.LeaseAgreementModelFromDomain(lease)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", lease.ID, lease.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	return nil
}

// Delete soft deletes a lease
func (r *GormLeaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LeaseAgreementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOrganization counts leases for an organization with optional filters
func (r *GormLeaseRepository) CountForOrganization(ctx context.Context, organizationID uuid.UUID, filter leasing.LeaseFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.LeaseAgreementModel{}).
			Where("organization_id = ?", organizationID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveByUnit counts active leases on a unit
func (r *GormLeaseRepository) CountActiveByUnit(ctx context.Context, organizationID, unitID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LeaseAgreementModel{}).
		Where("organization_id = ? AND unit_id = ? AND status = ?",
			organizationID, unitID, leasing.LeaseStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormLeaseRepository) applyFilter(query *gorm.DB, filter leasing.LeaseFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LeaseSortFields, "start_date")
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormLeaseRepository) applyFilterWithoutPagination(query *gorm.DB, filter leasing.LeaseFilter) *gorm.DB {
	if filter.UnitID != nil {
		query = query.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ChargeType != nil {
		query = query.Where("charge_type = ?", *filter.ChargeType)
	}
	if filter.Frequency != nil {
		query = query.Where("payment_frequency = ?", *filter.Frequency)
	}
	if filter.StartFrom != nil {
		query = query.Where("start_date >= ?", *filter.StartFrom)
	}
	if filter.StartTo != nil {
		query = query.Where("start_date < ?", *filter.StartTo)
	}
	if filter.EndFrom != nil {
		query = query.Where("end_date >= ?", *filter.EndFrom)
	}
	if filter.EndTo != nil {
		query = query.Where("end_date < ?", *filter.EndTo)
	}
	return query
}

func toDomainLeases(leaseModels []models.LeaseAgreementModel) []leasing.LeaseAgreement {
	leases := make([]leasing.LeaseAgreement, len(leaseModels))
	for i, model := range leaseModels {
		leases[i] = *model.ToDomain()
	}
	return leases
}
