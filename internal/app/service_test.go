package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/browse"
	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/domain/preferences"
	"pet-adoption-hub/internal/domain/session"
	"pet-adoption-hub/internal/ports/auth"
	"pet-adoption-hub/internal/ports/catalog"
)

type fakeCatalog struct {
	mu      sync.Mutex
	pets    map[string]pets.Pet
	order   []string
	putErr  error
	listErr error
	puts    []string
}

func newFakeCatalog(list ...pets.Pet) *fakeCatalog {
	f := &fakeCatalog{pets: map[string]pets.Pet{}}
	for _, p := range list {
		f.pets[p.ID] = p
		f.order = append(f.order, p.ID)
	}
	return f
}

func (f *fakeCatalog) ListPets(ctx context.Context) ([]pets.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]pets.Pet, 0, len(f.order))
	for _, id := range f.order {
		if p, ok := f.pets[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetPet(ctx context.Context, id string) (pets.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pets[id]
	if !ok {
		return pets.Pet{}, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) CreatePet(ctx context.Context, token string, in catalog.PetInput) (pets.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := pets.Pet{ID: "new-" + in.Name, Name: in.Name, Species: in.Species, Owner: &pets.Owner{Name: ownerOf(token)}}
	f.pets[p.ID] = p
	f.order = append(f.order, p.ID)
	return p, nil
}

func (f *fakeCatalog) UpdatePet(ctx context.Context, token, id string, in catalog.PetInput) (pets.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, id)
	if f.putErr != nil {
		return pets.Pet{}, f.putErr
	}
	p := f.pets[id]
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.AdoptionStatus != "" {
		p.AdoptionStatus = in.AdoptionStatus
	}
	f.pets[id] = p
	return p, nil
}

func (f *fakeCatalog) SetAdoptionStatus(ctx context.Context, token, id string, status pets.AdoptionStatus) (pets.Pet, error) {
	return f.UpdatePet(ctx, token, id, catalog.PetInput{AdoptionStatus: status})
}

func (f *fakeCatalog) DeletePet(ctx context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pets, id)
	return nil
}

func ownerOf(token string) string { return token[len("tok-"):] }

type fakeAuth struct{ err error }

func (a fakeAuth) Login(ctx context.Context, in auth.Credentials) (auth.Profile, error) {
	if a.err != nil {
		return auth.Profile{}, a.err
	}
	name := in.Email[:len(in.Email)-len("@x.io")]
	return auth.Profile{Name: name, Email: in.Email, AccessToken: "tok-" + name}, nil
}

func (a fakeAuth) Register(ctx context.Context, in auth.RegisterInput) (auth.Profile, error) {
	return auth.Profile{Name: in.Name, Email: in.Email}, a.err
}

type harness struct {
	svc     *Service
	catalog *fakeCatalog
	cache   *pets.Cache
	ledger  *adoptions.Ledger
	prefs   *preferences.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fc := newFakeCatalog(
		pets.Pet{ID: "p1", Name: "Milo", Species: "dog", Owner: &pets.Owner{Name: "alice"}},
		pets.Pet{ID: "p2", Name: "Kaa", Species: "snake", Owner: &pets.Owner{Name: "alice"}},
		pets.Pet{ID: "p3", Name: "Tom", Species: "cat", Owner: &pets.Owner{Name: "carol"}},
	)
	cache := pets.NewCache(fc, nil, nil)
	ledger := adoptions.NewLedger(nil, nil)
	prefs := preferences.New(preferences.Default(), nil)

	svc := New(Deps{
		Catalog:      fc,
		Auth:         fakeAuth{},
		Session:      session.New(session.State{}, nil),
		Pets:         cache,
		Ledger:       ledger,
		View:         browse.NewView(cache, browse.DefaultFilterState(), nil),
		Prefs:        prefs,
		LoginLimiter: rate.NewLimiter(rate.Inf, 0),
	})

	_, err := svc.RefreshCatalog(context.Background())
	require.NoError(t, err)

	return &harness{svc: svc, catalog: fc, cache: cache, ledger: ledger, prefs: prefs}
}

func (h *harness) as(t *testing.T, name string) {
	t.Helper()
	_, err := h.svc.Login(context.Background(), name+"@x.io", "password123")
	require.NoError(t, err)
}

func TestService_GuardsRequireLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.RequestAdoption(ctx, "p1", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, h.svc.DecideRequest(ctx, "p1", "bob", adoptions.StatusApproved), ErrUnauthorized)
	_, err = h.svc.AlertCount()
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = h.svc.CreatePet(ctx, catalog.PetInput{Name: "x", Species: "y"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Empty(t, h.catalog.puts, "no remote call before the local auth guard")
}

func TestService_RequestAdoptionGuards(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.as(t, "bob")

	_, err := h.svc.RequestAdoption(ctx, "ghost", "")
	assert.ErrorIs(t, err, ErrPetNotFound)

	r, err := h.svc.RequestAdoption(ctx, "p1", "I have a garden")
	require.NoError(t, err)
	assert.Equal(t, "alice", r.OwnerName)
	assert.Equal(t, adoptions.StatusPending, r.Status)

	_, err = h.svc.RequestAdoption(ctx, "p1", "again")
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	h.as(t, "alice")
	_, err = h.svc.RequestAdoption(ctx, "p1", "")
	assert.ErrorIs(t, err, ErrSelfAdoption)
}

func TestService_ApproveSequencesRemoteCacheLedger(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.as(t, "bob")
	_, err := h.svc.RequestAdoption(ctx, "p1", "")
	require.NoError(t, err)

	h.as(t, "carol")
	assert.ErrorIs(t, h.svc.DecideRequest(ctx, "p1", "bob", adoptions.StatusApproved), ErrForbidden)

	h.as(t, "alice")
	n, err := h.svc.AlertCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, h.svc.DecideRequest(ctx, "p1", "dave", adoptions.StatusApproved), ErrRequestNotFound)
	assert.ErrorIs(t, h.svc.DecideRequest(ctx, "p1", "bob", adoptions.StatusPending), ErrInvalidInput)

	require.NoError(t, h.svc.DecideRequest(ctx, "p1", "bob", adoptions.StatusApproved))

	assert.Equal(t, []string{"p1"}, h.catalog.puts)
	p, _ := h.cache.Get("p1")
	assert.Equal(t, pets.StatusAdopted, p.AdoptionStatus)
	assert.Equal(t, adoptions.StatusApproved, h.ledger.All()[0].Status)

	n, _ = h.svc.AlertCount()
	assert.Equal(t, 0, n)

	h.as(t, "bob")
	n, _ = h.svc.AlertCount()
	assert.Equal(t, 1, n)
	_, err = h.svc.MarkSeen(adoptions.RoleRequester)
	require.NoError(t, err)
	n, _ = h.svc.AlertCount()
	assert.Equal(t, 0, n)

	d, err := h.svc.PetDetail(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "bob", d.AdoptedBy)
	assert.False(t, d.CanAdopt)
}

func TestService_ApproveRemoteFailureLeavesStateUntouched(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.as(t, "bob")
	_, err := h.svc.RequestAdoption(ctx, "p1", "")
	require.NoError(t, err)

	h.as(t, "alice")
	boom := errors.New("catalog down")
	h.catalog.putErr = boom
	cacheVersion := h.cache.Version()
	ledgerVersion := h.ledger.Version()

	err = h.svc.DecideRequest(ctx, "p1", "bob", adoptions.StatusApproved)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, cacheVersion, h.cache.Version())
	assert.Equal(t, ledgerVersion, h.ledger.Version())
	assert.True(t, h.ledger.HasPending("p1", "bob"))
}

func TestService_SecondApprovalRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.as(t, "bob")
	_, err := h.svc.RequestAdoption(ctx, "p1", "")
	require.NoError(t, err)
	h.as(t, "dave")
	_, err = h.svc.RequestAdoption(ctx, "p1", "")
	require.NoError(t, err)

	h.as(t, "alice")
	require.NoError(t, h.svc.DecideRequest(ctx, "p1", "bob", adoptions.StatusApproved))
	assert.ErrorIs(t, h.svc.DecideRequest(ctx, "p1", "dave", adoptions.StatusApproved), ErrAlreadyAdopted)

	// rechazar sigue permitido
	require.NoError(t, h.svc.DecideRequest(ctx, "p1", "dave", adoptions.StatusDeclined))
	assert.Len(t, h.catalog.puts, 1)
}

func TestService_DeclineTouchesLedgerOnly(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.as(t, "bob")
	_, err := h.svc.RequestAdoption(ctx, "p2", "")
	require.NoError(t, err)

	h.as(t, "alice")
	v := h.cache.Version()
	require.NoError(t, h.svc.DecideRequest(ctx, "p2", "bob", adoptions.StatusDeclined))

	assert.Empty(t, h.catalog.puts)
	assert.Equal(t, v, h.cache.Version())

	h.as(t, "bob")
	sent, err := h.svc.SentRequests()
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, adoptions.StatusDeclined, sent[0].Status)
}

func TestService_RefreshOverlaysApprovedRequests(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.as(t, "bob")
	_, err := h.svc.RequestAdoption(ctx, "p3", "")
	require.NoError(t, err)
	h.ledger.UpdateRequestStatus("p3", "bob", adoptions.StatusApproved)

	// el catálogo remoto todavía dice Available
	_, err = h.svc.RefreshCatalog(ctx)
	require.NoError(t, err)

	p, _ := h.cache.Get("p3")
	assert.Equal(t, pets.StatusAdopted, p.AdoptionStatus)
}

func TestService_RefreshFailureKeepsCache(t *testing.T) {
	h := newHarness(t)
	h.catalog.listErr = errors.New("offline")

	_, err := h.svc.RefreshCatalog(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 3, h.cache.Len())
}

func TestService_ReceivedRequestsAndPetRequests(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.as(t, "bob")
	_, _ = h.svc.RequestAdoption(ctx, "p1", "")
	_, _ = h.svc.RequestAdoption(ctx, "p3", "")
	_, err := h.svc.PetRequests("p1")
	assert.ErrorIs(t, err, ErrForbidden)

	h.as(t, "alice")
	got, err := h.svc.ReceivedRequests()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].PetID)

	list, err := h.svc.PetRequests("p1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	flipped, err := h.svc.MarkSeen(adoptions.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)
}

func TestService_PetCRUD(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.as(t, "alice")

	created, err := h.svc.CreatePet(ctx, catalog.PetInput{Name: "Rex", Species: "dog"})
	require.NoError(t, err)
	_, ok := h.cache.Get(created.ID)
	require.True(t, ok)

	mine, err := h.svc.MyPets()
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	updated, err := h.svc.UpdatePet(ctx, created.ID, catalog.PetInput{Name: "Rex II"})
	require.NoError(t, err)
	assert.Equal(t, "Rex II", updated.Name)

	_, err = h.svc.UpdatePet(ctx, "p3", catalog.PetInput{Name: "Nope"})
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, h.svc.DeletePet(ctx, created.ID))
	_, ok = h.cache.Get(created.ID)
	assert.False(t, ok)

	_, err = h.svc.CreatePet(ctx, catalog.PetInput{Name: "NoSpecies"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_PetDetailFallsBackToCatalog(t *testing.T) {
	h := newHarness(t)
	h.catalog.pets["p9"] = pets.Pet{ID: "p9", Name: "Late", Species: "bird"}

	d, err := h.svc.PetDetail(context.Background(), "p9")
	require.NoError(t, err)
	assert.Equal(t, "Late", d.Pet.Name)
	assert.False(t, d.LoggedIn)

	_, ok := h.cache.Get("p9")
	assert.True(t, ok)

	_, err = h.svc.PetDetail(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestService_PetDetailRejectsMismatchedRemoteRecord(t *testing.T) {
	h := newHarness(t)
	h.catalog.pets["ghost"] = pets.Pet{}
	h.catalog.pets["twin"] = pets.Pet{ID: "p7", Name: "Other", Species: "cat"}

	tests := []string{"ghost", "twin"}
	for _, id := range tests {
		t.Run(id, func(t *testing.T) {
			d, err := h.svc.PetDetail(context.Background(), id)
			assert.ErrorIs(t, err, ErrPetNotFound)
			assert.Empty(t, d.Pet.ID)
		})
	}

	_, ok := h.cache.Get("p7")
	assert.False(t, ok)
	assert.Equal(t, 3, h.cache.Len())
}

func TestService_UpdateFiltersPersistsPreferences(t *testing.T) {
	h := newHarness(t)

	excluded := []string{"Snake"}
	page := 1
	res, err := h.svc.UpdateFilters(browse.Patch{Excluded: &excluded, Page: &page})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page.Total)
	assert.Equal(t, []string{"cat", "dog", "snake"}, res.Species)

	prefs := h.svc.Preferences()
	assert.Equal(t, []string{"snake"}, prefs.ExcludedSpecies)

	bad := browse.ViewMode("sideways")
	_, err = h.svc.UpdateFilters(browse.Patch{ViewMode: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_LoginRateLimited(t *testing.T) {
	h := newHarness(t)
	h.svc.loginLimiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	_, err := h.svc.Login(context.Background(), "bob@x.io", "pw")
	require.NoError(t, err)
	_, err = h.svc.Login(context.Background(), "bob@x.io", "pw")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestService_LoginErrorPropagates(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("Invalid email or password")
	h.svc.auth = fakeAuth{err: boom}

	_, err := h.svc.Login(context.Background(), "bob@x.io", "pw")
	assert.ErrorIs(t, err, boom)

	_, err = h.svc.Me()
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_WatchAlerts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.as(t, "alice")

	var counts []int
	stop, err := h.svc.WatchAlerts(func(n int) { counts = append(counts, n) })
	require.NoError(t, err)
	defer stop()

	_, err = h.ledger.SendRequest(adoptions.SendInput{PetID: "p1", RequesterName: "bob", OwnerName: "alice"})
	require.NoError(t, err)
	require.NoError(t, h.svc.DecideRequest(ctx, "p1", "bob", adoptions.StatusDeclined))

	assert.Equal(t, []int{0, 1, 0}, counts)
}
