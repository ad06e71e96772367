package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"iter"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"github.com/librasys/librasys-server/internal/domain"
)

// mediaPrefix keys catalog items. IDs are zero-padded so that Badger's
// lexicographic key order matches numeric ID order.
const mediaPrefix = "media:"

func mediaKey(id int64) []byte {
	return fmt.Appendf(nil, "%s%020d", mediaPrefix, id)
}

// AddMedia inserts a new catalog item, assigning it the next free ID.
// The ID scan and the insert happen in the same transaction so concurrent
// adds cannot race to the same ID.
func (s *Store) AddMedia(ctx context.Context, media *domain.Media) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		maxID, err := maxMediaID(txn)
		if err != nil {
			return err
		}

		media.ID = maxID + 1
		media.InitTimestamps()

		data, err := json.Marshal(media)
		if err != nil {
			return fmt.Errorf("marshal media: %w", err)
		}

		return txn.Set(mediaKey(media.ID), data)
	})
}

// maxMediaID returns the highest assigned media ID, or 0 when the catalog
// is empty.
func maxMediaID(txn *badger.Txn) (int64, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(mediaPrefix)
	opts.PrefetchValues = false
	opts.Reverse = true

	it := txn.NewIterator(opts)
	defer it.Close()

	// With zero-padded keys the highest ID sorts last, so a reverse seek
	// just past the prefix lands on it.
	seek := append([]byte(mediaPrefix), 0xFF)
	it.Seek(seek)
	if !it.ValidForPrefix([]byte(mediaPrefix)) {
		return 0, nil
	}

	key := string(it.Item().Key())
	id, err := strconv.ParseInt(key[len(mediaPrefix):], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse media key %q: %w", key, err)
	}
	return id, nil
}

// GetMedia retrieves a catalog item by ID.
func (s *Store) GetMedia(ctx context.Context, id int64) (*domain.Media, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var media domain.Media
	if err := s.get(mediaKey(id), &media); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("get media: %w", err)
	}

	return &media, nil
}

// UpdateMedia replaces an existing catalog item.
// Returns ErrMediaNotFound if no item with this ID exists.
func (s *Store) UpdateMedia(ctx context.Context, media *domain.Media) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := mediaKey(media.ID)

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrMediaNotFound
			}
			return fmt.Errorf("check media exists: %w", err)
		}

		media.Touch()

		data, err := json.Marshal(media)
		if err != nil {
			return fmt.Errorf("marshal media: %w", err)
		}

		return txn.Set(key, data)
	})
}

// DeleteMedia removes a catalog item.
// This operation is idempotent - deleting a missing item is not an error.
func (s *Store) DeleteMedia(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.delete(mediaKey(id))
}

// ToggleMediaAvailability flips an item between available and borrowed,
// returning the updated item. The read and write share a transaction so
// concurrent toggles serialize cleanly.
func (s *Store) ToggleMediaAvailability(ctx context.Context, id int64) (*domain.Media, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var media domain.Media
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(mediaKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrMediaNotFound
		}
		if err != nil {
			return fmt.Errorf("get media: %w", err)
		}

		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &media)
		})
		if err != nil {
			return fmt.Errorf("unmarshal media: %w", err)
		}

		media.Available = !media.Available
		media.Touch()

		data, err := json.Marshal(&media)
		if err != nil {
			return fmt.Errorf("marshal media: %w", err)
		}

		return txn.Set(mediaKey(id), data)
	})
	if err != nil {
		return nil, err
	}

	return &media, nil
}

// ListMedia returns an iterator over all catalog items in ID order.
func (s *Store) ListMedia(ctx context.Context) iter.Seq2[*domain.Media, error] {
	return func(yield func(*domain.Media, error) bool) {
		s.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(mediaPrefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(mediaPrefix)); it.ValidForPrefix([]byte(mediaPrefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				var media domain.Media
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &media)
				})
				if err != nil {
					yield(nil, err)
					return err
				}

				if !yield(&media, nil) {
					return nil
				}
			}

			return nil
		})
	}
}

// CountMedia returns the number of catalog items.
func (s *Store) CountMedia(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mediaPrefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(mediaPrefix)); it.ValidForPrefix([]byte(mediaPrefix)); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}
