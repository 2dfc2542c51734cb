package pets

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type fakeSource struct {
	items []Pet
	err   error
	calls int
}

func (f *fakeSource) ListPets(ctx context.Context) ([]Pet, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func seedPets() []Pet {
	return []Pet{
		{ID: "p1", Name: "Milo", Species: "Dog", Owner: &Owner{Name: "Alice"}},
		{ID: "p2", Name: "Kaa", Species: "snake", AdoptionStatus: "adopted", Owner: &Owner{Name: "Bob"}},
		{ID: "p3", Name: "Tom", Species: "Cat", Age: -2},
	}
}

func TestCache_RefreshReplacesWholesale(t *testing.T) {
	src := &fakeSource{items: seedPets()}
	c := NewCache(src, []Pet{{ID: "old"}}, nil)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 pets after refresh, got %d", c.Len())
	}
	if _, ok := c.Get("old"); ok {
		t.Fatalf("old record should be gone after wholesale replace")
	}

	p2, _ := c.Get("p2")
	if p2.AdoptionStatus != StatusAdopted {
		t.Fatalf("expected status normalized to Adopted, got %q", p2.AdoptionStatus)
	}
	p1, _ := c.Get("p1")
	if p1.AdoptionStatus != StatusAvailable {
		t.Fatalf("expected default Available, got %q", p1.AdoptionStatus)
	}
	p3, _ := c.Get("p3")
	if p3.Age != 0 {
		t.Fatalf("expected negative age clamped to 0, got %d", p3.Age)
	}
}

func TestCache_RefreshFailureLeavesCacheUntouched(t *testing.T) {
	src := &fakeSource{err: errors.New("network down")}
	c := NewCache(src, seedPets(), nil)
	before := c.Version()

	err := c.Refresh(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, src.err) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	if c.Len() != 3 || c.Version() != before {
		t.Fatalf("cache must be untouched on failure")
	}
	if src.calls != 1 {
		t.Fatalf("expected a single attempt (no retry), got %d", src.calls)
	}
}

func TestCache_RefreshWithoutSource(t *testing.T) {
	c := NewCache(nil, nil, nil)
	if err := c.Refresh(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestCache_SetAdoptionStatus(t *testing.T) {
	c := NewCache(nil, seedPets(), nil)
	snapshot := c.All()

	if !c.SetAdoptionStatus("p1", StatusAdopted) {
		t.Fatalf("expected status change to commit")
	}
	got, _ := c.Get("p1")
	if got.AdoptionStatus != StatusAdopted {
		t.Fatalf("expected Adopted, got %q", got.AdoptionStatus)
	}
	if got.Name != "Milo" {
		t.Fatalf("other fields must be preserved")
	}

	// snapshot previo no se ve afectado (copy-on-write)
	if snapshot[0].AdoptionStatus != StatusAvailable {
		t.Fatalf("old snapshot was mutated in place")
	}
}

func TestCache_SetAdoptionStatus_UnknownIDIsNoOp(t *testing.T) {
	c := NewCache(nil, seedPets(), nil)
	before := c.Version()

	if c.SetAdoptionStatus("ghost", StatusAdopted) {
		t.Fatalf("expected no-op for unknown id")
	}
	if c.Version() != before {
		t.Fatalf("version must not change on no-op")
	}
}

func TestCache_UpsertRemove(t *testing.T) {
	c := NewCache(nil, seedPets(), nil)

	c.Upsert(Pet{ID: "p4", Name: "Rex", Species: "dog"})
	c.Upsert(Pet{ID: "p1", Name: "Milo II", Species: "dog", Owner: &Owner{Name: "Alice"}})

	if c.Len() != 4 {
		t.Fatalf("expected 4 pets, got %d", c.Len())
	}
	p1, _ := c.Get("p1")
	if p1.Name != "Milo II" {
		t.Fatalf("expected upsert to replace, got %q", p1.Name)
	}

	if !c.Remove("p4") {
		t.Fatalf("expected remove to commit")
	}
	if c.Remove("p4") {
		t.Fatalf("second remove must be a no-op")
	}
}

func TestCache_ListByOwnerAndSpecies(t *testing.T) {
	c := NewCache(nil, seedPets(), nil)

	mine := c.ListByOwner("Alice")
	if len(mine) != 1 || mine[0].ID != "p1" {
		t.Fatalf("unexpected owner listing: %#v", mine)
	}
	if len(c.ListByOwner("")) != 0 {
		t.Fatalf("anonymous user owns nothing")
	}

	species := c.Species()
	want := []string{"cat", "dog", "snake"}
	if len(species) != len(want) {
		t.Fatalf("expected %v, got %v", want, species)
	}
	for i := range want {
		if species[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, species)
		}
	}
}

func TestIsOwner(t *testing.T) {
	p := Pet{ID: "p1", Owner: &Owner{Name: "Alice"}}
	if !IsOwner(p, "Alice") {
		t.Fatalf("Alice owns p1")
	}
	if IsOwner(p, "") || IsOwner(p, "Bob") {
		t.Fatalf("only Alice owns p1")
	}
	if IsOwner(Pet{ID: "x"}, "Alice") {
		t.Fatalf("ownerless pet has no owner")
	}
}

func TestOwner_UnmarshalStringOrObject(t *testing.T) {
	var a, b Pet
	if err := json.Unmarshal([]byte(`{"id":"1","owner":"Alice"}`), &a); err != nil {
		t.Fatalf("string owner: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"id":"2","owner":{"name":"Bob","email":"bob@x.io"}}`), &b); err != nil {
		t.Fatalf("object owner: %v", err)
	}
	if a.OwnerName() != "Alice" || b.OwnerName() != "Bob" || b.Owner.Email != "bob@x.io" {
		t.Fatalf("unexpected owners: %#v %#v", a.Owner, b.Owner)
	}
}
