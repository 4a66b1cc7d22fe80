// ABOUTME: Category operations on the note store.
// ABOUTME: Loading, accessors, add, remove (with cascade) and rename.

package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
)

// LoadCategories replaces the category projection with every persisted
// category whose name contains filter, sorted by name, and recounts notes.
// An empty filter loads all categories.
func (s *Store) LoadCategories(ctx context.Context, filter string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	cats, err := s.repo.ListCategories(ctx, filter)
	if err != nil {
		return persistence("load categories", err)
	}
	names := categoryNames(cats)
	counts, err := s.countFor(ctx, names)
	if err != nil {
		return err
	}

	s.categories = names
	s.counts = counts
	s.categoryFilter = filter
	s.log.Debug("loaded categories", "filter", filter, "count", len(names))
	return nil
}

func (s *Store) Category(index int) (string, error) {
	if err := s.rlock(); err != nil {
		return "", err
	}
	defer s.mu.RUnlock()

	if err := s.checkCategory(index); err != nil {
		return "", err
	}
	return s.categories[index], nil
}

func (s *Store) CategoryCount() int {
	if s.rlock() != nil {
		return 0
	}
	defer s.mu.RUnlock()

	return len(s.categories)
}

func (s *Store) NoteCountForCategory(index int) (int, error) {
	if err := s.rlock(); err != nil {
		return 0, err
	}
	defer s.mu.RUnlock()

	if err := s.checkCategory(index); err != nil {
		return 0, err
	}
	return s.counts[index], nil
}

// CategoryIndex returns the position of the first loaded category named name.
func (s *Store) CategoryIndex(name string) (int, error) {
	if err := s.rlock(); err != nil {
		return 0, err
	}
	defer s.mu.RUnlock()

	i := s.indexOf(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, name)
	}
	return i, nil
}

// Categories returns a snapshot of the loaded categories with their counts.
func (s *Store) Categories() []models.Category {
	if s.rlock() != nil {
		return nil
	}
	defer s.mu.RUnlock()

	cats := make([]models.Category, len(s.categories))
	for i, name := range s.categories {
		cats[i] = models.Category{Name: name, NoteCount: s.counts[i]}
	}
	return cats
}

// AddCategory persists a new category and inserts it into the sorted
// projection. Duplicate names are allowed unless WithUniqueCategories is set.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	c := models.NewCategory(name)
	if c.Name == "" {
		return ErrInvalidCategoryName
	}
	if err := s.checkUnique(ctx, c.Name); err != nil {
		return err
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return s.fail(ctx, persistence("add category", err))
	}
	s.categories = append(s.categories, c.Name)
	sort.Strings(s.categories)
	s.log.Debug("added category", "name", c.Name)
	return s.recount(ctx)
}

// RemoveCategory deletes the category at index and every note filed under
// it. Other entries sharing the name go too, since the repository removes
// by name.
func (s *Store) RemoveCategory(ctx context.Context, index int) error {
	return s.RemoveCategories(ctx, []int{index})
}

// RemoveCategories deletes several categories and their notes in one step.
// Indices refer to the projection as it is when the call starts, so their
// order does not matter.
func (s *Store) RemoveCategories(ctx context.Context, indices []int) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	names := make(map[string]bool)
	for _, i := range indices {
		if err := s.checkCategory(i); err != nil {
			return err
		}
		names[s.categories[i]] = true
	}
	if len(names) == 0 {
		return nil
	}

	err := s.atomically(ctx, func(tx repository.Repository) error {
		for name := range names {
			if _, err := tx.DeleteCategory(ctx, name); err != nil {
				return err
			}
			removed, err := tx.DeleteNotesByCategory(ctx, name)
			if err != nil {
				return err
			}
			s.log.Debug("removed category", "name", name, "notes", removed)
		}
		return nil
	})
	if err != nil {
		return s.fail(ctx, persistence("remove categories", err))
	}

	kept := s.categories[:0]
	for _, name := range s.categories {
		if !names[name] {
			kept = append(kept, name)
		}
	}
	s.categories = kept
	if names[s.notesCategory] {
		s.clearNotes()
	}
	return s.recount(ctx)
}

// UpdateCategory renames the category at index. By default the rename is in
// place and notes follow the category. With WithCascadeRename the old
// category and its notes are removed and the new name added empty.
func (s *Store) UpdateCategory(ctx context.Context, index int, newName string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if err := s.checkCategory(index); err != nil {
		return err
	}
	oldName := s.categories[index]
	c := models.NewCategory(newName)
	if c.Name == "" {
		return ErrInvalidCategoryName
	}
	if c.Name == oldName {
		return nil
	}
	if err := s.checkUnique(ctx, c.Name); err != nil {
		return err
	}

	err := s.atomically(ctx, func(tx repository.Repository) error {
		if !s.cascadeRename {
			return tx.RenameCategory(ctx, oldName, c.Name)
		}
		if _, err := tx.DeleteCategory(ctx, oldName); err != nil {
			return err
		}
		if _, err := tx.DeleteNotesByCategory(ctx, oldName); err != nil {
			return err
		}
		return tx.CreateCategory(ctx, c)
	})
	if err != nil {
		return s.fail(ctx, persistence("update category", err))
	}

	if s.cascadeRename {
		kept := s.categories[:0]
		for _, name := range s.categories {
			if name != oldName {
				kept = append(kept, name)
			}
		}
		s.categories = append(kept, c.Name)
		if s.notesCategory == oldName {
			s.clearNotes()
		}
	} else {
		for i, name := range s.categories {
			if name == oldName {
				s.categories[i] = c.Name
			}
		}
		if s.notesCategory == oldName {
			s.notesCategory = c.Name
			for _, n := range s.notes {
				n.CategoryName = c.Name
			}
		}
	}
	sort.Strings(s.categories)
	s.log.Debug("updated category", "from", oldName, "to", c.Name, "cascade", s.cascadeRename)
	return s.recount(ctx)
}

func (s *Store) checkCategory(index int) error {
	if index < 0 || index >= len(s.categories) {
		return invalidIndex("category", index, len(s.categories))
	}
	return nil
}

// checkUnique consults the repository, not the projection, which may be
// filtered.
func (s *Store) checkUnique(ctx context.Context, name string) error {
	if !s.uniqueCategories {
		return nil
	}
	cats, err := s.repo.ListCategories(ctx, "")
	if err != nil {
		return persistence("check category", err)
	}
	for _, c := range cats {
		if c.Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
		}
	}
	return nil
}

func (s *Store) indexOf(name string) int {
	for i, c := range s.categories {
		if c == name {
			return i
		}
	}
	return -1
}

func categoryNames(cats []*models.Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}
