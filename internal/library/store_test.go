package library

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Inxkls/xerces/internal/models"
	"github.com/Inxkls/xerces/internal/repositories"
	"github.com/Inxkls/xerces/internal/shared"
	tu "github.com/Inxkls/xerces/internal/testing"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Load", func(t *testing.T) {
		t.Run("Nothing Saved", func(t *testing.T) {
			store := NewStore(&tu.MemoryPersister{})

			albums, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if albums == nil || len(albums) != 0 {
				t.Errorf("expected empty non-nil collection, got %v", albums)
			}
		})

		t.Run("Duplicate Ids Keep First", func(t *testing.T) {
			p := &tu.MemoryPersister{Data: []byte(`[
				{"id":"abc","name":"Discovery","artist":"Daft Punk","image":"first"},
				{"id":"x","name":"Other","artist":"Someone","image":null},
				{"id":"abc","name":"Discovery","artist":"Daft Punk","image":"second"}
			]`)}

			albums, err := NewStore(p).Load(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(albums) != 2 {
				t.Fatalf("expected 2 albums, got %d", len(albums))
			}
			if albums[0].Image != "first" || albums[1].ID != "x" {
				t.Errorf("unexpected albums %+v", albums)
			}
		})

		t.Run("Corrupt Document", func(t *testing.T) {
			p := &tu.MemoryPersister{Data: []byte(`{not json`)}

			albums, err := NewStore(p).Load(ctx)
			if err == nil {
				t.Fatal("expected decode error")
			}
			if len(albums) != 0 {
				t.Errorf("expected empty collection, got %v", albums)
			}
		})

		t.Run("Persister Failure", func(t *testing.T) {
			p := &tu.MemoryPersister{LoadErr: errors.New("disk gone")}

			if _, err := NewStore(p).Load(ctx); err == nil {
				t.Fatal("expected error")
			}
		})
	})

	t.Run("Save", func(t *testing.T) {
		t.Run("Writes JSON Array", func(t *testing.T) {
			p := &tu.MemoryPersister{}
			store := NewStore(p)

			if err := store.Save(ctx, []models.Album{{ID: "a", Name: "N", Artist: "A"}}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			want := `[{"id":"a","name":"N","artist":"A","image":null}]`
			if got := string(p.Snapshot()); got != want {
				t.Errorf("got %s, want %s", got, want)
			}
		})

		t.Run("Nil Collection Writes Empty Array", func(t *testing.T) {
			p := &tu.MemoryPersister{}
			if err := NewStore(p).Save(ctx, nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := string(p.Snapshot()); got != `[]` {
				t.Errorf("expected [], got %s", got)
			}
		})
	})

	t.Run("With SQLite Repository", func(t *testing.T) {
		db, err := shared.NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create test database: %v", err)
		}
		defer db.Close()
		if err := shared.RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		store := NewStore(repositories.NewCollectionRepository(db).For("albums"))
		albums := []models.Album{{ID: "b", Name: "Two", Artist: "B", Image: "img"}, {ID: "a", Name: "One", Artist: "A"}}
		if err := store.Save(ctx, albums); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if !reflect.DeepEqual(loaded, albums) {
			t.Errorf("got %+v, want %+v", loaded, albums)
		}
	})
}

func TestDedupe(t *testing.T) {
	tc := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "empty", in: nil, want: []string{}},
		{name: "no duplicates", in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "adjacent", in: []string{"a", "a", "b"}, want: []string{"a", "b"}},
		{name: "spread", in: []string{"a", "b", "c", "b", "a"}, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			var albums []models.Album
			for _, id := range tt.in {
				albums = append(albums, models.Album{ID: id})
			}

			got := []string{}
			for _, a := range Dedupe(albums) {
				got = append(got, a.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dedupe() = %v, want %v", got, tt.want)
			}
		})
	}
}
