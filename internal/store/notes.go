// ABOUTME: Note operations on the note store.
// ABOUTME: Loading, accessors, add, delete, move and update for single notes.

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
)

// LoadNotes replaces the note projection with the notes of the category at
// categoryIndex that match filter, sorted by title. A nil filter loads all.
func (s *Store) LoadNotes(ctx context.Context, categoryIndex int, filter *repository.NoteFilter) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if err := s.checkCategory(categoryIndex); err != nil {
		return err
	}
	name := s.categories[categoryIndex]

	notes, err := s.repo.ListNotes(ctx, repository.InCategory(name, filter))
	if err != nil {
		return persistence("load notes", err)
	}
	for _, n := range notes {
		if !n.HasImage() {
			continue
		}
		if _, format, err := n.Image.Probe(); err != nil {
			s.log.Warn("undecodable image", "note", n.ID, "title", n.Title, "err", err)
		} else {
			s.log.Debug("image attached", "note", n.ID, "format", format)
		}
	}

	s.notes = notes
	s.notesCategory = name
	s.notesLoaded = true
	if filter != nil {
		f := *filter
		s.noteFilter = &f
	} else {
		s.noteFilter = nil
	}
	s.log.Debug("loaded notes", "category", name, "count", len(notes))
	return nil
}

func (s *Store) Note(index int) (*models.Note, error) {
	if err := s.rlock(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	if err := s.checkNote(index); err != nil {
		return nil, err
	}
	return s.notes[index].Clone(), nil
}

func (s *Store) NoteCount() int {
	if s.rlock() != nil {
		return 0
	}
	defer s.mu.RUnlock()

	return len(s.notes)
}

// Notes returns copies of the loaded notes in projection order.
func (s *Store) Notes() []*models.Note {
	if s.rlock() != nil {
		return nil
	}
	defer s.mu.RUnlock()

	notes := make([]*models.Note, len(s.notes))
	for i, n := range s.notes {
		notes[i] = n.Clone()
	}
	return notes
}

// NotesCategory names the category the note projection was loaded from.
func (s *Store) NotesCategory() string {
	if s.rlock() != nil {
		return ""
	}
	defer s.mu.RUnlock()

	return s.notesCategory
}

// FindNote fetches a note by ID from the repository without touching the
// projections.
func (s *Store) FindNote(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	if err := s.rlock(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	return s.lookup(ctx, id)
}

// AddNote persists n. Its category must be among the loaded categories. A
// zero ID or Date is filled in, and written back to n.
func (s *Store) AddNote(ctx context.Context, n *models.Note) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	note := prepare(n, nil)
	if err := s.validate(note); err != nil {
		return err
	}
	if err := s.repo.CreateNote(ctx, note); err != nil {
		return s.fail(ctx, persistence("add note", err))
	}
	n.ID, n.Date = note.ID, note.Date

	s.insert(note)
	s.log.Debug("added note", "id", note.ID, "category", note.CategoryName)
	return s.recount(ctx)
}

// DeleteNote removes the note with n's ID from the repository and the
// projection.
func (s *Store) DeleteNote(ctx context.Context, n *models.Note) error {
	return s.DeleteNotes(ctx, []*models.Note{n})
}

// DeleteNoteAt removes the note at index in the projection.
func (s *Store) DeleteNoteAt(ctx context.Context, index int) error {
	return s.DeleteNotesAt(ctx, []int{index})
}

// MoveNote files n under the category at toCategory, keeping every other
// field. n.CategoryName is updated to match.
func (s *Store) MoveNote(ctx context.Context, n *models.Note, toCategory int) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	target, err := s.moveNotes(ctx, []*models.Note{n}, toCategory)
	if err != nil {
		return err
	}
	n.CategoryName = target
	return nil
}

func (s *Store) MoveNoteAt(ctx context.Context, index, toCategory int) error {
	return s.MoveNotesAt(ctx, []int{index}, toCategory)
}

// UpdateNote replaces old with replacement: the old note is deleted and the
// replacement added. A replacement with zero ID or Date inherits old's.
//
// By default the replacement is validated first and both steps commit
// together. With WithNonAtomicUpdates the old note is deleted before the
// replacement is validated, so an invalid replacement loses the old note.
func (s *Store) UpdateNote(ctx context.Context, old, replacement *models.Note) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if old == nil {
		return ErrNoteNotFound
	}
	current, err := s.lookup(ctx, old.ID)
	if err != nil {
		return err
	}
	return s.update(ctx, current, replacement)
}

func (s *Store) UpdateNoteAt(ctx context.Context, index int, replacement *models.Note) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if err := s.checkNote(index); err != nil {
		return err
	}
	return s.update(ctx, s.notes[index], replacement)
}

func (s *Store) update(ctx context.Context, old, replacement *models.Note) error {
	note := prepare(replacement, old)
	oldID := old.ID

	if s.nonAtomic {
		if _, err := s.repo.DeleteNote(ctx, oldID); err != nil {
			return s.fail(ctx, persistence("update note", err))
		}
		s.remove(oldID)
		if err := s.recount(ctx); err != nil {
			return err
		}
		if err := s.validate(note); err != nil {
			return fmt.Errorf("update note partially failed, %q was removed: %w", old.Title, err)
		}
		if err := s.repo.CreateNote(ctx, note); err != nil {
			return s.fail(ctx, persistence("update note", err))
		}
	} else {
		if err := s.validate(note); err != nil {
			return err
		}
		err := s.repo.WithTx(ctx, func(tx repository.Repository) error {
			if _, err := tx.DeleteNote(ctx, oldID); err != nil {
				return err
			}
			return tx.CreateNote(ctx, note)
		})
		if err != nil {
			return s.fail(ctx, persistence("update note", err))
		}
		s.remove(oldID)
	}

	replacement.ID, replacement.Date = note.ID, note.Date
	s.insert(note)
	s.log.Debug("updated note", "old", oldID, "new", note.ID)
	return s.recount(ctx)
}

// prepare copies n and fills a zero ID or Date from base, or fresh values
// when base is nil. An image without data is dropped.
func prepare(n, base *models.Note) *models.Note {
	note := n.Clone()
	if note.ID == uuid.Nil {
		if base != nil {
			note.ID = base.ID
		} else {
			note.ID = uuid.New()
		}
	}
	if note.Date.IsZero() {
		if base != nil {
			note.Date = base.Date
		} else {
			note.Date = models.Now()
		}
	}
	note.Date = note.Date.UTC().Round(0)
	if note.Image != nil && len(note.Image.Data) == 0 {
		note.Image = nil
	}
	return note
}

func (s *Store) validate(n *models.Note) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if s.indexOf(n.CategoryName) < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, n.CategoryName)
	}
	return nil
}

func (s *Store) checkNote(index int) error {
	if index < 0 || index >= len(s.notes) {
		return invalidIndex("note", index, len(s.notes))
	}
	return nil
}

// lookup prefers the projection and falls back to the repository.
func (s *Store) lookup(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	if n := s.find(id); n != nil {
		return n.Clone(), nil
	}
	notes, err := s.repo.ListNotes(ctx, repository.ByID(id))
	if err != nil {
		return nil, persistence("find note", err)
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return notes[0], nil
}

func (s *Store) find(id uuid.UUID) *models.Note {
	for _, n := range s.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// insert adds n to the projection when it belongs to the loaded category and
// passes the filter the notes were loaded with.
func (s *Store) insert(n *models.Note) {
	if !s.notesLoaded || n.CategoryName != s.notesCategory || !s.noteFilter.Match(n) {
		return
	}
	s.notes = append(s.notes, n.Clone())
	repository.SortNotes(s.notes)
}

func (s *Store) remove(id uuid.UUID) {
	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return
		}
	}
}

func (s *Store) clearNotes() {
	s.notes = nil
	s.notesCategory = ""
	s.notesLoaded = false
	s.noteFilter = nil
}
