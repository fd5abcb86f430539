package repositories

import (
	"PharmaTrack/cache"
	"PharmaTrack/database"
	"PharmaTrack/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	BatchCacheExpiry = 24 * time.Hour
)

// ErrBatchCodeExists is returned when a create names a lot code that is
// already registered.
var ErrBatchCodeExists = errors.New("batch with this code already exists")

type BatchRepository struct {
	cache *cache.Cache
}

func NewBatchRepository(cache *cache.Cache) *BatchRepository {
	return &BatchRepository{cache: cache}
}

func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) error {
	lockKey := fmt.Sprintf("batch_lock:%s", batch.Code)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	// Reject duplicate lot codes before touching the sequence
	var existing models.Batch
	if err := database.DB.Where("code = ?", batch.Code).First(&existing).Error; err == nil {
		return fmt.Errorf("code %s: %w", batch.Code, ErrBatchCodeExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing batch: %w", err)
	}

	// Ids only need uniqueness; a failed insert leaves a gap in the
	// sequence rather than rewinding it, which could re-issue a value a
	// concurrent writer already took.
	var nextID string
	if err := database.DB.Raw("SELECT 'BT-' || LPAD(nextval('batch_id_seq')::TEXT, 6, '0')").Scan(&nextID).Error; err != nil {
		return fmt.Errorf("failed to obtain next sequence value: %w", err)
	}
	batch.ID = nextID

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return fmt.Errorf("failed to create batch: %w", err)
		}

		if err := r.cache.Delete(ctx, r.getBatchCacheKey(batch.ID)); err != nil {
			return fmt.Errorf("failed to delete batch cache: %w", err)
		}
		return r.cache.DeleteAll(ctx, "batches_cache*")
	})
}

func (r *BatchRepository) GetByID(ctx context.Context, id string) (*models.Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getBatchCacheKey(id)
	cachedBatch, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedBatch != "" {
		var batch models.Batch
		if err := json.Unmarshal([]byte(cachedBatch), &batch); err == nil {
			return &batch, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get batch from cache: %v", err)
	}

	var batch models.Batch
	err = database.DB.First(&batch, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}

	batchJSON, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, batchJSON, BatchCacheExpiry); err != nil {
		log.Printf("Failed to set batch in cache: %v", err)
	}

	return &batch, nil
}

// GetActive returns only batches with remaining stock, newest first. Batches
// at zero stay in storage for history lookups but never appear here.
func (r *BatchRepository) GetActive(ctx context.Context) ([]models.Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "batches_cache:active"
	cachedBatches, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedBatches != "" {
		var batches []models.Batch
		if err := json.Unmarshal([]byte(cachedBatches), &batches); err == nil {
			return batches, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get batches from cache: %v", err)
	}

	var batches []models.Batch
	err = database.DB.Where("quantity > 0").
		Order("created_at DESC").
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active batches: %w", err)
	}

	batchesJSON, err := json.Marshal(batches)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batches: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, batchesJSON, BatchCacheExpiry); err != nil {
		log.Printf("Failed to set batches in cache: %v", err)
	}

	return batches, nil
}

func (r *BatchRepository) Update(ctx context.Context, batch *models.Batch) error {
	lockKey := fmt.Sprintf("batch_lock:%s", batch.ID)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	err = database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "medication", "manufacturer", "quantity", "grams", "manufacture_date", "expiration_date", "image_url"}),
	}).Save(batch).Error
	if err != nil {
		return fmt.Errorf("failed to update batch: %w", err)
	}

	if err := r.cache.Delete(ctx, r.getBatchCacheKey(batch.ID)); err != nil {
		return fmt.Errorf("failed to delete batch cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "batches_cache*")
}

func (r *BatchRepository) Delete(ctx context.Context, id string) error {
	lockKey := fmt.Sprintf("batch_lock:%s", id)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	err = database.DB.Delete(&models.Batch{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getBatchCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete batch cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "batches_cache*")
}

func (r *BatchRepository) DeleteCache(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, r.getBatchCacheKey(id))
}

func (r *BatchRepository) DeleteAllCache(ctx context.Context) error {
	return r.cache.DeleteAll(ctx, "batches_cache*")
}

func (r *BatchRepository) getBatchCacheKey(id string) string {
	return fmt.Sprintf("batch_cache:%s", id)
}
