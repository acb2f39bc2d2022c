// Package reports holds the derived read-only views: entities needing
// attention (low stock, low rating, unavailable items, pending orders) and
// daily completed-order revenue. Results are cached in redis and invalidated
// by the write paths.
package reports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resto-system/internal/database/models"
)

const (
	LOW_RATING_SUPPLIERS_KEY   = "reports:low-rating-suppliers"
	LOW_STOCK_INGREDIENTS_KEY  = "reports:low-stock-ingredients"
	UNAVAILABLE_MENU_ITEMS_KEY = "reports:unavailable-menu-items"
	PENDING_ORDERS_KEY         = "reports:pending-orders"
	DAILY_SALES_KEY_PREFIX     = "reports:daily-sales:"
	CACHE_TTL_SHORT            = 1 * time.Minute
	CACHE_TTL_MEDIUM           = 5 * time.Minute
)

// lowRatingThreshold marks suppliers worth reviewing.
var lowRatingThreshold = decimal.NewFromFloat(3.0)

type Service struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *Service {
	return &Service{db: db, redis: redisClient, logger: logger}
}

// InvalidateSupplierCaches drops report keys derived from supplier state.
func (s *Service) InvalidateSupplierCaches(ctx context.Context) {
	_ = s.redis.Del(ctx, LOW_RATING_SUPPLIERS_KEY).Err()
}

// InvalidateIngredientCaches drops report keys derived from ingredient stock.
func (s *Service) InvalidateIngredientCaches(ctx context.Context) {
	_ = s.redis.Del(ctx, LOW_STOCK_INGREDIENTS_KEY, UNAVAILABLE_MENU_ITEMS_KEY).Err()
}

// InvalidateMenuCaches drops report keys derived from menu item state.
func (s *Service) InvalidateMenuCaches(ctx context.Context) {
	_ = s.redis.Del(ctx, UNAVAILABLE_MENU_ITEMS_KEY).Err()
}

// InvalidateOrderCaches drops report keys derived from order state, including
// the daily sales figure for the given order date.
func (s *Service) InvalidateOrderCaches(ctx context.Context, orderDate time.Time) {
	_ = s.redis.Del(ctx, PENDING_ORDERS_KEY, dailySalesKey(orderDate)).Err()
}

func dailySalesKey(date time.Time) string {
	return DAILY_SALES_KEY_PREFIX + date.Format("2006-01-02")
}

// cached runs query on a cache miss and stores the JSON-encoded result. Cache
// failures degrade to a direct query; they are logged, never surfaced.
func cached[T any](ctx context.Context, s *Service, key string, ttl time.Duration, query func() (T, error)) (T, error) {
	var result T

	raw, err := s.redis.Get(ctx, key).Result()
	if err == nil {
		if err := json.Unmarshal([]byte(raw), &result); err == nil {
			return result, nil
		}
		s.logger.Warn("dropping undecodable cache entry", zap.String("key", key))
		_ = s.redis.Del(ctx, key).Err()
	} else if err != redis.Nil {
		s.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
	}

	result, err = query()
	if err != nil {
		return result, err
	}

	if encoded, err := json.Marshal(result); err == nil {
		if err := s.redis.Set(ctx, key, encoded, ttl).Err(); err != nil {
			s.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
		}
	}

	return result, nil
}

// LowRatingSuppliers lists suppliers with a rating below 3.0.
func (s *Service) LowRatingSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return cached(ctx, s, LOW_RATING_SUPPLIERS_KEY, CACHE_TTL_MEDIUM, func() ([]models.Supplier, error) {
		var suppliers []models.Supplier
		err := s.db.WithContext(ctx).
			Where("rating < ?", lowRatingThreshold).
			Order("rating asc").
			Find(&suppliers).Error
		return suppliers, err
	})
}

// LowStockIngredients lists ingredients whose stock is at or below their
// minimum stock level.
func (s *Service) LowStockIngredients(ctx context.Context) ([]models.Ingredient, error) {
	return cached(ctx, s, LOW_STOCK_INGREDIENTS_KEY, CACHE_TTL_SHORT, func() ([]models.Ingredient, error) {
		var ingredients []models.Ingredient
		err := s.db.WithContext(ctx).
			Preload("Supplier").
			Where("stock_quantity <= minimum_stock_level").
			Order("stock_quantity asc").
			Find(&ingredients).Error
		return ingredients, err
	})
}

// UnavailableMenuItems lists menu items flagged unavailable.
func (s *Service) UnavailableMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return cached(ctx, s, UNAVAILABLE_MENU_ITEMS_KEY, CACHE_TTL_MEDIUM, func() ([]models.MenuItem, error) {
		var items []models.MenuItem
		err := s.db.WithContext(ctx).
			Preload("RecipeItems.Ingredient").
			Where("is_available = ?", false).
			Order("name asc").
			Find(&items).Error
		return items, err
	})
}

// PendingOrders lists orders still in the pending status.
func (s *Service) PendingOrders(ctx context.Context) ([]models.Order, error) {
	return cached(ctx, s, PENDING_ORDERS_KEY, CACHE_TTL_SHORT, func() ([]models.Order, error) {
		var orders []models.Order
		err := s.db.WithContext(ctx).
			Preload("MenuItem").
			Where("status = ?", models.OrderStatusPending).
			Order("order_date asc").
			Find(&orders).Error
		return orders, err
	})
}

// DailySales sums menu item price times quantity over completed orders whose
// order date falls on the given calendar day. Zero when none exist.
func (s *Service) DailySales(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	key := dailySalesKey(date)
	total, err := cached(ctx, s, key, CACHE_TTL_SHORT, func() (string, error) {
		start, end := DayRange(date)

		var orders []models.Order
		err := s.db.WithContext(ctx).
			Preload("MenuItem").
			Where("status = ?", models.OrderStatusCompleted).
			Where("order_date >= ? AND order_date < ?", start, end).
			Find(&orders).Error
		if err != nil {
			return "", err
		}

		sum := decimal.Zero
		for i := range orders {
			sum = sum.Add(orders[i].TotalPrice())
		}
		return sum.StringFixed(2), nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(total)
}

// DayRange returns the half-open [start, end) interval covering the calendar
// day of t in t's location.
func DayRange(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
