// ABOUTME: Exercises the store from many goroutines at once; run with -race.
// ABOUTME: Movers, category writers and readers share one store per backend.

package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository"
)

func TestConcurrentUse(t *testing.T) {
	const (
		movers = 4
		rounds = 25
	)

	eachBackend(t, func(t *testing.T, repo repository.Repository) {
		s := seeded(t, repo, []string{"A", "B"})
		notes := addNotes(t, s, "A", "n0", "n1", "n2", "n3")
		total := len(notes)

		var wg sync.WaitGroup

		for m := 0; m < movers; m++ {
			wg.Add(1)
			go func(n *models.Note) {
				defer wg.Done()
				for r := 0; r < rounds; r++ {
					if err := s.MoveNote(ctx, n, (r+1)%2); err != nil {
						t.Errorf("move %s: %v", n.Title, err)
						return
					}
					stored, err := s.FindNote(ctx, n.ID)
					if err != nil {
						t.Errorf("find %s: %v", n.Title, err)
						return
					}
					if stored.CategoryName != n.CategoryName {
						t.Errorf("%s reports %q but is stored under %q", n.Title, n.CategoryName, stored.CategoryName)
						return
					}
				}
			}(notes[m])
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				if err := s.AddCategory(ctx, fmt.Sprintf("C%02d", r)); err != nil {
					t.Errorf("add category: %v", err)
					return
				}
			}
		}()

		for g := 0; g < 2; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for r := 0; r < rounds; r++ {
					if err := s.LoadNotes(ctx, 0, nil); err != nil {
						t.Errorf("load notes: %v", err)
						return
					}
					if got, listed := s.NoteCount(), len(s.Notes()); got > total || listed > total {
						t.Errorf("projection grew past %d notes: %d, %d", total, got, listed)
						return
					}
					sum := 0
					for _, c := range s.Categories() {
						sum += c.NoteCount
					}
					if sum != total {
						t.Errorf("category counts sum to %d, want %d", sum, total)
						return
					}
				}
			}()
		}

		wg.Wait()

		if got := s.CategoryCount(); got != 2+rounds {
			t.Errorf("expected %d categories, got %d", 2+rounds, got)
		}
		for _, n := range notes[:movers] {
			want := "A"
			if rounds%2 == 1 {
				want = "B"
			}
			if n.CategoryName != want {
				t.Errorf("%s ended in %q, want %q", n.Title, n.CategoryName, want)
			}
		}
	})
}
