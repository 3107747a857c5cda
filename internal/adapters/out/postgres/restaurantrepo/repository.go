package restaurantrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRestaurantRepository implements RestaurantDirectory and MenuCatalog
// using GORM. Reads run on the main connection; the directory never
// participates in a unit of work.
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GORM restaurant repository.
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// GetRestaurant retrieves a restaurant snapshot by id.
func (r *GormRestaurantRepository) GetRestaurant(ctx context.Context, id kernel.UUID) (ports.RestaurantSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ports.RestaurantSnapshot{}, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RestaurantSnapshot{}, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return ports.RestaurantSnapshot{}, err
	}

	return toSnapshot(dto)
}

// GetMenuItems retrieves the snapshots for the given menu items of one
// restaurant. Items belonging to another restaurant simply don't come back;
// the caller treats a missing id as a validation failure.
func (r *GormRestaurantRepository) GetMenuItems(
	ctx context.Context,
	restaurantID kernel.UUID,
	ids []kernel.UUID,
) ([]ports.MenuItemSnapshot, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "restaurant_id = ? AND id IN ?", restaurantID.Bytes(), rawIDs).Error; err != nil {
		return nil, err
	}

	items := make([]ports.MenuItemSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		item, err := menuItemToSnapshot(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
