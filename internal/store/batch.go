// ABOUTME: Batch note operations: delete and move many notes at once.
// ABOUTME: Positions are resolved to note IDs up front so removal order cannot shift them.

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
)

// DeleteNotes removes every given note by ID. It fails with ErrNoteNotFound
// only when none of them existed.
func (s *Store) DeleteNotes(ctx context.Context, notes []*models.Note) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(notes))
	for _, n := range notes {
		if n == nil {
			return ErrNoteNotFound
		}
		ids = append(ids, n.ID)
	}
	return s.deleteIDs(ctx, dedupe(ids))
}

// DeleteNotesAt removes the notes at the given projection positions. Every
// index is checked before anything is deleted; order and repeats do not
// matter.
func (s *Store) DeleteNotesAt(ctx context.Context, indices []int) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	ids, err := s.idsAt(indices)
	if err != nil {
		return err
	}
	return s.deleteIDs(ctx, ids)
}

// MoveNotes files every given note under the category at toCategory.
func (s *Store) MoveNotes(ctx context.Context, notes []*models.Note, toCategory int) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	_, err := s.moveNotes(ctx, notes, toCategory)
	return err
}

// moveNotes moves notes under the write lock and returns the target name.
func (s *Store) moveNotes(ctx context.Context, notes []*models.Note, toCategory int) (string, error) {
	if err := s.checkCategory(toCategory); err != nil {
		return "", err
	}
	seen := make(map[uuid.UUID]bool)
	list := make([]*models.Note, 0, len(notes))
	for _, n := range notes {
		if n == nil {
			return "", ErrNoteNotFound
		}
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		current, err := s.lookup(ctx, n.ID)
		if err != nil {
			return "", err
		}
		list = append(list, current)
	}
	target := s.categories[toCategory]
	return target, s.move(ctx, list, target)
}

// MoveNotesAt moves the notes at the given projection positions. Every index
// is checked before anything moves.
func (s *Store) MoveNotesAt(ctx context.Context, indices []int, toCategory int) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if err := s.checkCategory(toCategory); err != nil {
		return err
	}
	ids, err := s.idsAt(indices)
	if err != nil {
		return err
	}
	list := make([]*models.Note, len(ids))
	for i, id := range ids {
		list[i] = s.find(id).Clone()
	}
	return s.move(ctx, list, s.categories[toCategory])
}

func (s *Store) deleteIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	removed := 0
	err := s.atomically(ctx, func(tx repository.Repository) error {
		for _, id := range ids {
			n, err := tx.DeleteNote(ctx, id)
			if err != nil {
				return err
			}
			removed += n
		}
		return nil
	})
	if err != nil {
		return s.fail(ctx, persistence("delete notes", err))
	}

	for _, id := range ids {
		s.remove(id)
	}
	if removed == 0 {
		return ErrNoteNotFound
	}
	s.log.Debug("deleted notes", "count", removed)
	return s.recount(ctx)
}

// move re-files each note as a delete plus an insert under target.
func (s *Store) move(ctx context.Context, list []*models.Note, target string) error {
	moved := make([]*models.Note, len(list))
	for i, n := range list {
		m := n.Clone()
		m.CategoryName = target
		moved[i] = m
	}

	err := s.atomically(ctx, func(tx repository.Repository) error {
		for _, m := range moved {
			if _, err := tx.DeleteNote(ctx, m.ID); err != nil {
				return err
			}
			if err := tx.CreateNote(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.fail(ctx, persistence("move notes", err))
	}

	for _, m := range moved {
		s.remove(m.ID)
		s.insert(m)
	}
	s.log.Debug("moved notes", "count", len(moved), "to", target)
	return s.recount(ctx)
}

// idsAt validates every index, then maps them to note IDs.
func (s *Store) idsAt(indices []int) ([]uuid.UUID, error) {
	for _, i := range indices {
		if err := s.checkNote(i); err != nil {
			return nil, err
		}
	}
	ids := make([]uuid.UUID, len(indices))
	for k, i := range indices {
		ids[k] = s.notes[i].ID
	}
	return dedupe(ids), nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
