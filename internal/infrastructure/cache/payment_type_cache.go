package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/payment"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultPaymentTypeTTL is how long payment type entries stay cached.
// Payment types change rarely, so a generous TTL is acceptable.
const DefaultPaymentTypeTTL = 15 * time.Minute

const paymentTypeKeyPrefix = "payment_type:"

// CachedPaymentTypeRepository decorates a PaymentTypeRepository with a
// Redis read-through cache. Cache failures are logged and treated as
// misses so Redis outages never take the payment path down.
type CachedPaymentTypeRepository struct {
	inner  payment.PaymentTypeRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// CachedPaymentTypeOption is a functional option for the cached repository
type CachedPaymentTypeOption func(*CachedPaymentTypeRepository)

// WithTTL overrides the default cache TTL
func WithTTL(ttl time.Duration) CachedPaymentTypeOption {
	return func(r *CachedPaymentTypeRepository) {
		r.ttl = ttl
	}
}

// WithCacheLogger sets the logger for cache diagnostics
func WithCacheLogger(logger *zap.Logger) CachedPaymentTypeOption {
	return func(r *CachedPaymentTypeRepository) {
		r.logger = logger
	}
}

// NewCachedPaymentTypeRepository creates a caching decorator over the given repository
func NewCachedPaymentTypeRepository(inner payment.PaymentTypeRepository, client *redis.Client, opts ...CachedPaymentTypeOption) *CachedPaymentTypeRepository {
	r := &CachedPaymentTypeRepository{
		inner:  inner,
		client: client,
		ttl:    DefaultPaymentTypeTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindByCode finds a payment type by code, consulting the cache first.
// Not-found results are not cached.
func (r *CachedPaymentTypeRepository) FindByCode(ctx context.Context, code string) (*payment.PaymentType, error) {
	key := paymentTypeKeyPrefix + "code:" + code

	if data, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var cached payment.PaymentType
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		r.logger.Warn("corrupt payment type cache entry, falling through", zap.String("key", key))
	} else if err != redis.Nil {
		r.logger.Warn("payment type cache read failed", zap.String("key", key), zap.Error(err))
	}

	paymentType, err := r.inner.FindByCode(ctx, code)
	if err != nil || paymentType == nil {
		return paymentType, err
	}

	if data, err := json.Marshal(paymentType); err == nil {
		if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("payment type cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return paymentType, nil
}

// FindAllForOrganization lists the types usable by an organization,
// consulting the cache first.
func (r *CachedPaymentTypeRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID) ([]payment.PaymentType, error) {
	key := paymentTypeKeyPrefix + "org:" + organizationID.String()

	if data, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var cached []payment.PaymentType
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		r.logger.Warn("corrupt payment type cache entry, falling through", zap.String("key", key))
	} else if err != redis.Nil {
		r.logger.Warn("payment type cache read failed", zap.String("key", key), zap.Error(err))
	}

	types, err := r.inner.FindAllForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(types); err == nil {
		if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("payment type cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return types, nil
}

// Save persists through to the inner repository and invalidates cached entries
func (r *CachedPaymentTypeRepository) Save(ctx context.Context, paymentType *payment.PaymentType) error {
	if err := r.inner.Save(ctx, paymentType); err != nil {
		return err
	}

	keys := []string{paymentTypeKeyPrefix + "code:" + paymentType.Code}
	if paymentType.OrganizationID != nil {
		keys = append(keys, paymentTypeKeyPrefix+"org:"+paymentType.OrganizationID.String())
	} else {
		// Global types appear in every organization's listing; drop them all.
		if err := r.invalidateListings(ctx); err != nil {
			r.logger.Warn("payment type cache listing invalidation failed", zap.Error(err))
		}
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("payment type cache invalidation failed", zap.Error(err))
	}
	return nil
}

func (r *CachedPaymentTypeRepository) invalidateListings(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, paymentTypeKeyPrefix+"org:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
