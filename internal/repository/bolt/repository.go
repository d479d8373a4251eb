package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/omarshaarawi/kickoffbot/internal/models"
	bolt "go.etcd.io/bbolt"
)

const bucketHistory = "history"

// Repository stores one history record per date in a bbolt bucket.
type Repository struct {
	db *bolt.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketHistory)); err != nil {
			return fmt.Errorf("creating history bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Load() (models.History, error) {
	history := models.History{}

	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		return b.ForEach(func(k, v []byte) error {
			var record models.HistoryRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("decoding history record %s: %w", k, err)
			}
			history[string(k)] = record
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return history, nil
}

// Save replaces the bucket contents with history in a single transaction.
func (r *Repository) Save(history models.History) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketHistory)); err != nil && err != bolt.ErrBucketNotFound {
			return fmt.Errorf("clearing history bucket: %w", err)
		}
		b, err := tx.CreateBucket([]byte(bucketHistory))
		if err != nil {
			return fmt.Errorf("creating history bucket: %w", err)
		}

		for date, record := range history {
			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("encoding history record %s: %w", date, err)
			}
			if err := b.Put([]byte(date), data); err != nil {
				return fmt.Errorf("storing history record %s: %w", date, err)
			}
		}
		return nil
	})
}
