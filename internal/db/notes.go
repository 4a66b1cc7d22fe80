// ABOUTME: Database operations for notes.
// ABOUTME: Optional fields map to NULL columns; dates are Unix seconds plus a nanosecond column.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
)

const noteColumns = `id, title, message, date, date_nanos, category, audio, image, lat, long`

func (r *Repo) CreateNote(ctx context.Context, n *models.Note) error {
	var image []byte
	if n.HasImage() {
		image = n.Image.Data
	}
	var lat, long sql.NullFloat64
	if n.Location != nil {
		lat = sql.NullFloat64{Float64: n.Location.Latitude, Valid: true}
		long = sql.NullFloat64{Float64: n.Location.Longitude, Valid: true}
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID.String(), n.Title, nullString(n.Message), n.Date.Unix(), n.Date.Nanosecond(), n.CategoryName,
		nullString(n.AudioRef), image, lat, long,
	)
	return err
}

func (r *Repo) DeleteNote(ctx context.Context, id uuid.UUID) (int, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id.String())
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

func (r *Repo) DeleteNotesByCategory(ctx context.Context, name string) (int, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM notes WHERE category = ?`, name)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

func (r *Repo) ListNotes(ctx context.Context, q repository.NoteQuery) ([]*models.Note, error) {
	var where []string
	var args []any
	if q.ID != nil {
		where = append(where, "id = ?")
		args = append(args, q.ID.String())
	}
	if q.Category != nil {
		where = append(where, "category = ?")
		args = append(args, *q.Category)
	}
	if f := q.Filter; f != nil {
		// Whole seconds narrow the scan; Match settles the nanoseconds.
		if !f.Since.IsZero() {
			where = append(where, "date >= ?")
			args = append(args, f.Since.Unix())
		}
		if !f.Until.IsZero() {
			where = append(where, "date <= ?")
			args = append(args, f.Until.Unix())
		}
		if f.HasImage {
			where = append(where, "length(image) > 0")
		}
		if f.HasAudio {
			where = append(where, "audio IS NOT NULL")
		}
		if f.HasLocation {
			where = append(where, "lat IS NOT NULL AND long IS NOT NULL")
		}
	}

	query := `SELECT ` + noteColumns + ` FROM notes`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY title, date, date_nanos, id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		// Text search folds accents, which SQL cannot.
		if q.Filter.Match(note) {
			notes = append(notes, note)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func scanNote(rows *sql.Rows) (*models.Note, error) {
	note := &models.Note{}
	var idStr string
	var message, audio sql.NullString
	var date, nanos int64
	var image []byte
	var lat, long sql.NullFloat64

	if err := rows.Scan(&idStr, &note.Title, &message, &date, &nanos, &note.CategoryName, &audio, &image, &lat, &long); err != nil {
		return nil, err
	}

	var err error
	note.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid note ID in database: %w", err)
	}
	note.Message = message.String
	note.AudioRef = audio.String
	note.Date = time.Unix(date, nanos).UTC()
	if len(image) > 0 {
		note.Image = models.NewImage(image)
	}
	if lat.Valid && long.Valid {
		note.Location = &models.Location{Latitude: lat.Float64, Longitude: long.Float64}
	}
	return note, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
