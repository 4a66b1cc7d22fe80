// ABOUTME: Database operations for categories.
// ABOUTME: Names are not unique at this layer; the store decides the policy.

package db

import (
	"context"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
)

func (r *Repo) CreateCategory(ctx context.Context, c *models.Category) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, c.Name)
	return err
}

func (r *Repo) DeleteCategory(ctx context.Context, name string) (int, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

func (r *Repo) RenameCategory(ctx context.Context, oldName, newName string) error {
	if _, err := r.q.ExecContext(ctx, `UPDATE categories SET name = ? WHERE name = ?`, newName, oldName); err != nil {
		return err
	}
	_, err := r.q.ExecContext(ctx, `UPDATE notes SET category = ? WHERE category = ?`, newName, oldName)
	return err
}

func (r *Repo) ListCategories(ctx context.Context, search string) ([]*models.Category, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cats []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.Name); err != nil {
			return nil, err
		}
		// SQL LIKE cannot fold accents, so search is applied here.
		if search != "" && !repository.Contains(c.Name, search) {
			continue
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *Repo) CountNotesByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT category, COUNT(*) FROM notes GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		counts[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
