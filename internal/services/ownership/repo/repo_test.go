package repo

import (
	"context"
	"errors"
	"testing"

	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/store"

	"github.com/google/uuid"
)

// oneRow yields ids in order; an empty slice yields no rows
type oneRow struct {
	ids []uuid.UUID
	i   int
}

func (r *oneRow) Next() bool { r.i++; return r.i <= len(r.ids) }
func (r *oneRow) Scan(dest ...any) error {
	*(dest[0].(*uuid.UUID)) = r.ids[r.i-1]
	return nil
}
func (r *oneRow) Err() error        { return nil }
func (r *oneRow) Close()            {}
func (r *oneRow) Columns() []string { return []string{"id"} }

type fakeQ struct {
	ids []uuid.UUID
	err error
}

func (f *fakeQ) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, f.err }
func (f *fakeQ) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &oneRow{ids: f.ids}, nil
}

func TestPG_Lookups(t *testing.T) {
	dept := uuid.New()
	r := NewPG(&fakeQ{ids: []uuid.UUID{dept}})
	ctx := context.Background()

	for name, lookup := range map[string]func(context.Context, uuid.UUID) (uuid.UUID, error){
		"room":     r.RoomDepartment,
		"locker":   r.LockerDepartment,
		"folder":   r.FolderDepartment,
		"document": r.DocumentDepartment,
	} {
		got, err := lookup(ctx, uuid.New())
		if err != nil || got != dept {
			t.Fatalf("%s = %s, %v", name, got, err)
		}
	}
}

func TestPG_MissingRowIsNotFound(t *testing.T) {
	r := NewPG(&fakeQ{})
	_, err := r.FolderDepartment(context.Background(), uuid.New())
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}
}

func TestPG_StaffRoom(t *testing.T) {
	room := uuid.New()
	got, ok, err := NewPG(&fakeQ{ids: []uuid.UUID{room}}).StaffRoom(context.Background(), uuid.New())
	if err != nil || !ok || got != room {
		t.Fatalf("assigned = %s %v %v", got, ok, err)
	}

	_, ok, err = NewPG(&fakeQ{}).StaffRoom(context.Background(), uuid.New())
	if err != nil || ok {
		t.Fatalf("unassigned = %v %v", ok, err)
	}

	_, _, err = NewPG(&fakeQ{err: errors.New("conn reset")}).StaffRoom(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("driver error swallowed")
	}
}
