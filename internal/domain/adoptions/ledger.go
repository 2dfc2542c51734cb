package adoptions

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/state"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	actionSend       state.Action = "ledger/send"
	actionTransition state.Action = "ledger/update_status"
	actionMarkSeen   state.Action = "ledger/mark_seen"
)

// Ledger guarda las solicitudes de adopción: append-only + transiciones de
// status y flags de "visto". Nunca borra.
//
// No conoce la cache de mascotas: el efecto "aprobada => mascota Adopted" lo
// secuencia el coordinador de la app.
type Ledger struct {
	store *state.Store[[]Request]
	log   logger.Logger

	now   func() time.Time
	newID func() string
}

func NewLedger(initial []Request, log logger.Logger, mws ...state.Middleware[[]Request]) *Ledger {
	items := make([]Request, len(initial))
	copy(items, initial)

	return &Ledger{
		store: state.New(items, mws...),
		log:   logger.OrNop(log).With(logger.Fields{"component": "adoption_ledger"}),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// SendRequest agrega una solicitud pending con ambos flags en false.
// No valida self-adoption ni duplicados: eso lo decide quien llama.
func (l *Ledger) SendRequest(in SendInput) (Request, error) {
	petID := strings.TrimSpace(in.PetID)
	requester := strings.TrimSpace(in.RequesterName)
	if petID == "" || requester == "" {
		return Request{}, ErrInvalidInput
	}

	r := Request{
		ID:            l.newID(),
		PetID:         petID,
		RequesterName: requester,
		OwnerName:     strings.TrimSpace(in.OwnerName),
		Message:       strings.TrimSpace(in.Message),
		Status:        StatusPending,
		Date:          l.now().UTC(),
	}

	l.store.Dispatch(actionSend, func(cur []Request) ([]Request, bool) {
		next := make([]Request, len(cur), len(cur)+1)
		copy(next, cur)
		return append(next, r), true
	})

	l.log.Info("adoption request sent", logger.Fields{
		"pet_id":    r.PetID,
		"requester": r.RequesterName,
		"owner":     r.OwnerName,
	})
	return r, nil
}

// UpdateRequestStatus pasa la primera solicitud pending de (petID, requester)
// a approved/declined y la marca vista por el dueño. Sin match pending, o con
// un status que no sea terminal, es un no-op. Devuelve si hubo transición.
func (l *Ledger) UpdateRequestStatus(petID, requesterName string, status Status) bool {
	if !status.IsResolved() {
		return false
	}

	changed := l.store.Dispatch(actionTransition, func(cur []Request) ([]Request, bool) {
		i := l.findPending(cur, petID, requesterName)
		if i < 0 {
			return cur, false
		}
		next := make([]Request, len(cur))
		copy(next, cur)
		next[i].Status = status
		next[i].SeenByOwner = true
		return next, true
	})

	if changed {
		l.log.Info("adoption request resolved", logger.Fields{
			"pet_id":    petID,
			"requester": requesterName,
			"status":    string(status),
		})
	}
	return changed
}

// MarkRequestsAsSeen:
// - owner: pending donde OwnerName == user => SeenByOwner
// - requester: resueltas donde RequesterName == user => SeenByRequester
// Idempotente. Devuelve cuántas solicitudes cambiaron.
func (l *Ledger) MarkRequestsAsSeen(role Role, userName string) int {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return 0
	}

	flipped := 0
	l.store.Dispatch(actionMarkSeen, func(cur []Request) ([]Request, bool) {
		var next []Request
		for i, r := range cur {
			if !needsSeen(r, role, userName) {
				continue
			}
			if next == nil {
				next = make([]Request, len(cur))
				copy(next, cur)
			}
			switch role {
			case RoleOwner:
				next[i].SeenByOwner = true
			case RoleRequester:
				next[i].SeenByRequester = true
			}
			flipped++
		}
		if next == nil {
			return cur, false
		}
		return next, true
	})
	return flipped
}

func needsSeen(r Request, role Role, user string) bool {
	switch role {
	case RoleOwner:
		return r.OwnerName == user && r.Status == StatusPending && !r.SeenByOwner
	case RoleRequester:
		return r.RequesterName == user && r.Status.IsResolved() && !r.SeenByRequester
	default:
		return false
	}
}

// All devuelve el snapshot actual (solo lectura).
func (l *Ledger) All() []Request { return l.store.Get() }

func (l *Ledger) Version() uint64 { return l.store.Version() }

func (l *Ledger) GetRequestsForPet(petID string) []Request {
	out := make([]Request, 0)
	for _, r := range l.store.Get() {
		if r.PetID == petID {
			out = append(out, r)
		}
	}
	return out
}

// GetRequestsForOwner resuelve la pertenencia contra la lista de mascotas
// (OwnerName en la solicitud es solo informativo).
func (l *Ledger) GetRequestsForOwner(ownerName string, list []pets.Pet) []Request {
	owned := make(map[string]struct{})
	for _, p := range list {
		if pets.IsOwner(p, ownerName) {
			owned[p.ID] = struct{}{}
		}
	}

	out := make([]Request, 0)
	if len(owned) == 0 {
		return out
	}
	for _, r := range l.store.Get() {
		if _, ok := owned[r.PetID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// GetRequestsByRequester: las solicitudes que hizo un usuario.
func (l *Ledger) GetRequestsByRequester(requesterName string) []Request {
	out := make([]Request, 0)
	for _, r := range l.store.Get() {
		if r.RequesterName == requesterName {
			out = append(out, r)
		}
	}
	return out
}

// HasPending indica si ya hay una solicitud pending de requester para petID.
func (l *Ledger) HasPending(petID, requesterName string) bool {
	return l.findPending(l.store.Get(), petID, requesterName) >= 0
}

// ApprovedRequester devuelve quién adoptó la mascota: la primera solicitud
// aprobada encontrada es la autoritativa.
func (l *Ledger) ApprovedRequester(petID string) (string, bool) {
	for _, r := range l.store.Get() {
		if r.PetID == petID && r.Status == StatusApproved {
			return r.RequesterName, true
		}
	}
	return "", false
}

// ApprovedPetIDs: ids de mascotas con alguna solicitud aprobada.
func (l *Ledger) ApprovedPetIDs() map[string]struct{} {
	out := make(map[string]struct{})
	for _, r := range l.store.Get() {
		if r.Status == StatusApproved {
			out[r.PetID] = struct{}{}
		}
	}
	return out
}

// GetAlertCountForUser = pending propias no vistas como dueño
// + resueltas hechas por el usuario no vistas como solicitante.
func (l *Ledger) GetAlertCountForUser(userName string) int {
	return alertCount(l.store.Get(), userName)
}

// Subscribe notifica cada commit del ledger.
func (l *Ledger) Subscribe(fn func([]Request)) (unsubscribe func()) {
	return l.store.Subscribe(fn)
}

func (l *Ledger) findPending(items []Request, petID, requesterName string) int {
	for i := range items {
		r := items[i]
		if r.PetID == petID && r.RequesterName == requesterName && r.Status == StatusPending {
			return i
		}
	}
	return -1
}

func alertCount(items []Request, userName string) int {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return 0
	}

	n := 0
	for _, r := range items {
		if r.OwnerName == userName && r.Status == StatusPending && !r.SeenByOwner {
			n++
		}
		if r.RequesterName == userName && r.Status.IsResolved() && !r.SeenByRequester {
			n++
		}
	}
	return n
}
