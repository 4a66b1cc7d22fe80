// ABOUTME: Category operations on the badger store.
// ABOUTME: Each category record gets its own key so duplicate names can coexist.

package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
)

// CategoryData represents a category stored in badger.
type CategoryData struct {
	Name string `json:"name"`
}

func categoryKey(id uuid.UUID) []byte {
	return []byte(CategoryPrefix + id.String())
}

func (r *Repo) CreateCategory(ctx context.Context, c *models.Category) error {
	encoded, err := json.Marshal(CategoryData{Name: c.Name})
	if err != nil {
		return fmt.Errorf("marshal category: %w", err)
	}
	return r.update(ctx, func(txn *badger.Txn) error {
		return txn.Set(categoryKey(uuid.New()), encoded)
	})
}

// categoryRecords returns every stored category keyed by its badger key.
func categoryRecords(txn *badger.Txn) (map[string]CategoryData, error) {
	records := make(map[string]CategoryData)
	err := each(txn, []byte(CategoryPrefix), func(key, val []byte) error {
		var cd CategoryData
		if err := json.Unmarshal(val, &cd); err != nil {
			return fmt.Errorf("unmarshal category: %w", err)
		}
		records[string(key)] = cd
		return nil
	})
	return records, err
}

func (r *Repo) DeleteCategory(ctx context.Context, name string) (int, error) {
	removed := 0
	err := r.update(ctx, func(txn *badger.Txn) error {
		records, err := categoryRecords(txn)
		if err != nil {
			return err
		}
		for key, cd := range records {
			if cd.Name != name {
				continue
			}
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

func (r *Repo) RenameCategory(ctx context.Context, oldName, newName string) error {
	return r.update(ctx, func(txn *badger.Txn) error {
		records, err := categoryRecords(txn)
		if err != nil {
			return err
		}
		for key, cd := range records {
			if cd.Name != oldName {
				continue
			}
			encoded, err := json.Marshal(CategoryData{Name: newName})
			if err != nil {
				return fmt.Errorf("marshal category: %w", err)
			}
			if err := txn.Set([]byte(key), encoded); err != nil {
				return err
			}
		}

		notes, err := noteRecords(txn, repository.InCategory(oldName, nil))
		if err != nil {
			return err
		}
		for _, nd := range notes {
			nd.Category = newName
			if err := putNote(txn, nd); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) ListCategories(ctx context.Context, search string) ([]*models.Category, error) {
	var cats []*models.Category
	err := r.view(ctx, func(txn *badger.Txn) error {
		records, err := categoryRecords(txn)
		if err != nil {
			return err
		}
		for _, cd := range records {
			if search != "" && !repository.Contains(cd.Name, search) {
				continue
			}
			cats = append(cats, &models.Category{Name: cd.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	repository.SortCategories(cats)
	return cats, nil
}
