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
)

const (
	DispensingCacheExpiry = 24 * time.Hour
)

// ErrInsufficientStock is returned when a dispense asks for more units than
// the batch currently holds. Nothing is written in that case.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrBatchGone is returned when the batch disappears between the service's
// precondition check and the transaction.
var ErrBatchGone = errors.New("batch not found")

// DispensingRepository persists dispensing events. Dispense must decrement
// the batch stock and append the event as one atomic unit.
type DispensingRepository interface {
	Dispense(ctx context.Context, event *models.DispensingEvent) (remaining int, err error)
	GetByID(ctx context.Context, id string) (*models.DispensingEvent, error)
	GetAll(ctx context.Context) ([]models.DispensingEvent, error)
	GetByPatient(ctx context.Context, patientID string) ([]models.DispensingEvent, error)
}

type dispensingRepository struct {
	cache *cache.Cache
}

func NewDispensingRepository(cache *cache.Cache) DispensingRepository {
	return &dispensingRepository{cache: cache}
}

// Dispense runs the stock decrement and the history insert in a single
// transaction. The decrement is conditional on the current stock, so two
// concurrent dispensings against the same batch can never jointly overdraw
// it, and a failed insert rolls the stock back.
func (r *dispensingRepository) Dispense(ctx context.Context, event *models.DispensingEvent) (int, error) {
	lockKey := fmt.Sprintf("dispense_lock:%s", event.BatchID)
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
		return 0, fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	// A rejected dispense leaves a gap in the sequence; rewinding it could
	// re-issue a value a concurrent writer already took.
	var nextID string
	if err := database.DB.Raw("SELECT 'DS-' || LPAD(nextval('dispensing_id_seq')::TEXT, 6, '0')").Scan(&nextID).Error; err != nil {
		return 0, fmt.Errorf("failed to obtain next sequence value: %w", err)
	}
	event.ID = nextID

	var remaining int
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Batch{}).
			Where("id = ? AND quantity >= ?", event.BatchID, event.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", event.Quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement batch stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Either the batch vanished or the guard rejected the decrement
			var batch models.Batch
			if err := tx.First(&batch, "id = ?", event.BatchID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBatchGone
				}
				return fmt.Errorf("failed to re-check batch: %w", err)
			}
			return ErrInsufficientStock
		}

		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to create dispensing event: %w", err)
		}

		var batch models.Batch
		if err := tx.Select("quantity").First(&batch, "id = ?", event.BatchID).Error; err != nil {
			return fmt.Errorf("failed to read remaining stock: %w", err)
		}
		remaining = batch.Quantity
		return nil
	})
	if txErr != nil {
		return 0, txErr
	}

	// The batch quantity changed, so every batch view is stale
	if err := r.cache.Delete(ctx, fmt.Sprintf("batch_cache:%s", event.BatchID)); err != nil {
		log.Printf("Failed to delete batch cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "batches_cache*"); err != nil {
		log.Printf("Failed to delete batches cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "dispensings_cache*"); err != nil {
		log.Printf("Failed to delete dispensings cache: %v", err)
	}
	return remaining, nil
}

func (r *dispensingRepository) GetByID(ctx context.Context, id string) (*models.DispensingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getDispensingCacheKey(id)
	cachedEvent, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedEvent != "" {
		var event models.DispensingEvent
		if err := json.Unmarshal([]byte(cachedEvent), &event); err == nil {
			return &event, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get dispensing event from cache: %v", err)
	}

	var event models.DispensingEvent
	err = database.DB.First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dispensing event: %w", err)
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dispensing event: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, eventJSON, DispensingCacheExpiry); err != nil {
		log.Printf("Failed to set dispensing event in cache: %v", err)
	}

	return &event, nil
}

func (r *dispensingRepository) GetAll(ctx context.Context) ([]models.DispensingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "dispensings_cache"
	cachedEvents, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedEvents != "" {
		var events []models.DispensingEvent
		if err := json.Unmarshal([]byte(cachedEvents), &events); err == nil {
			return events, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get dispensing events from cache: %v", err)
	}

	var events []models.DispensingEvent
	err = database.DB.Order("created_at DESC").Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all dispensing events: %w", err)
	}

	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dispensing events: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, eventsJSON, DispensingCacheExpiry); err != nil {
		log.Printf("Failed to set dispensing events in cache: %v", err)
	}

	return events, nil
}

func (r *dispensingRepository) GetByPatient(ctx context.Context, patientID string) ([]models.DispensingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var events []models.DispensingEvent
	err := database.DB.Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get dispensing events for patient: %w", err)
	}
	return events, nil
}

func (r *dispensingRepository) getDispensingCacheKey(id string) string {
	return fmt.Sprintf("dispensing_cache:%s", id)
}
