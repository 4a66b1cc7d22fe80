// ABOUTME: Note operations on the badger store.
// ABOUTME: Notes are JSON documents under note:<uuid>; filtering happens while iterating.

package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
)

// NoteData represents a note stored in badger.
type NoteData struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Date      time.Time `json:"date"`
	Category  string    `json:"category"`
	Audio     string    `json:"audio,omitempty"`
	Image     []byte    `json:"image,omitempty"`
	Latitude  *float64  `json:"lat,omitempty"`
	Longitude *float64  `json:"long,omitempty"`
}

// ToModel converts NoteData to a models.Note.
func (n *NoteData) ToModel() (*models.Note, error) {
	id, err := uuid.Parse(n.ID)
	if err != nil {
		return nil, fmt.Errorf("parse note ID: %w", err)
	}
	note := &models.Note{
		ID:           id,
		Title:        n.Title,
		Message:      n.Message,
		Date:         n.Date.UTC(),
		CategoryName: n.Category,
		AudioRef:     n.Audio,
	}
	if len(n.Image) > 0 {
		note.Image = models.NewImage(n.Image)
	}
	if n.Latitude != nil && n.Longitude != nil {
		note.Location = &models.Location{Latitude: *n.Latitude, Longitude: *n.Longitude}
	}
	return note, nil
}

// FromModel creates NoteData from a models.Note.
func FromModel(note *models.Note) *NoteData {
	nd := &NoteData{
		ID:       note.ID.String(),
		Title:    note.Title,
		Message:  note.Message,
		Date:     note.Date.UTC(),
		Category: note.CategoryName,
		Audio:    note.AudioRef,
	}
	if note.HasImage() {
		nd.Image = note.Image.Data
	}
	if note.Location != nil {
		lat, long := note.Location.Latitude, note.Location.Longitude
		nd.Latitude = &lat
		nd.Longitude = &long
	}
	return nd
}

func noteKey(id string) []byte {
	return []byte(NotePrefix + id)
}

func putNote(txn *badger.Txn, nd *NoteData) error {
	encoded, err := json.Marshal(nd)
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}
	return txn.Set(noteKey(nd.ID), encoded)
}

// noteRecords returns the stored notes matching q, unsorted.
func noteRecords(txn *badger.Txn, q repository.NoteQuery) ([]*NoteData, error) {
	var matches []*NoteData
	prefix := []byte(NotePrefix)
	if q.ID != nil {
		prefix = noteKey(q.ID.String())
	}
	err := each(txn, prefix, func(key, val []byte) error {
		var nd NoteData
		if err := json.Unmarshal(val, &nd); err != nil {
			return fmt.Errorf("unmarshal note: %w", err)
		}
		if q.Category != nil && nd.Category != *q.Category {
			return nil
		}
		matches = append(matches, &nd)
		return nil
	})
	return matches, err
}

func (r *Repo) CreateNote(ctx context.Context, n *models.Note) error {
	return r.update(ctx, func(txn *badger.Txn) error {
		return putNote(txn, FromModel(n))
	})
}

func (r *Repo) DeleteNote(ctx context.Context, id uuid.UUID) (int, error) {
	removed := 0
	err := r.update(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(noteKey(id.String()))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		removed = 1
		return txn.Delete(noteKey(id.String()))
	})
	return removed, err
}

func (r *Repo) DeleteNotesByCategory(ctx context.Context, name string) (int, error) {
	removed := 0
	err := r.update(ctx, func(txn *badger.Txn) error {
		notes, err := noteRecords(txn, repository.InCategory(name, nil))
		if err != nil {
			return err
		}
		for _, nd := range notes {
			if err := txn.Delete(noteKey(nd.ID)); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

func (r *Repo) ListNotes(ctx context.Context, q repository.NoteQuery) ([]*models.Note, error) {
	var notes []*models.Note
	err := r.view(ctx, func(txn *badger.Txn) error {
		records, err := noteRecords(txn, q)
		if err != nil {
			return err
		}
		for _, nd := range records {
			note, err := nd.ToModel()
			if err != nil {
				return err
			}
			if q.Match(note) {
				notes = append(notes, note)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	repository.SortNotes(notes)
	return notes, nil
}

func (r *Repo) CountNotesByCategory(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	err := r.view(ctx, func(txn *badger.Txn) error {
		notes, err := noteRecords(txn, repository.NoteQuery{})
		if err != nil {
			return err
		}
		for _, nd := range notes {
			counts[nd.Category]++
		}
		return nil
	})
	return counts, err
}
