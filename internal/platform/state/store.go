// Package state provee contenedores de estado observables.
//
// Cada Store guarda un valor inmutable (copy-on-write): las mutaciones pasan por
// Dispatch, que calcula el siguiente valor y lo entrega a la cadena de middleware
// (persistencia, logs) antes de publicarlo a los suscriptores.
package state

import (
	"sync"
)

// Action nombra una mutación, p.ej. "ledger/send".
type Action string

// Commit recibe el valor ya calculado para una acción.
type Commit[T any] func(action Action, next T)

// Middleware envuelve el commit de un store.
type Middleware[T any] func(next Commit[T]) Commit[T]

type Store[T any] struct {
	// dispatchMu serializa las mutaciones completas (cálculo + middleware + publish).
	dispatchMu sync.Mutex

	mu      sync.RWMutex
	value   T
	version uint64
	subs    map[uint64]func(T)
	nextSub uint64

	commit Commit[T]
}

// New crea un store. Los middleware se aplican en orden: el primero es el más externo.
func New[T any](initial T, mws ...Middleware[T]) *Store[T] {
	s := &Store[T]{
		value: initial,
		subs:  make(map[uint64]func(T)),
	}

	var c Commit[T] = s.publish
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		c = mws[i](c)
	}
	s.commit = c
	return s
}

// Get devuelve el snapshot actual. No mutar: se comparte con otros lectores.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Snapshot devuelve valor y versión de forma consistente.
func (s *Store[T]) Snapshot() (T, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.version
}

// Version crece en cada commit; sirve como clave de memoización.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Dispatch calcula el siguiente valor a partir del actual. Si fn devuelve
// changed=false no hay commit (no-op). Devuelve si hubo commit.
//
// Los suscriptores corren dentro de Dispatch: no deben despachar sobre el mismo store.
func (s *Store[T]) Dispatch(action Action, fn func(cur T) (next T, changed bool)) bool {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	next, changed := fn(s.Get())
	if !changed {
		return false
	}
	s.commit(action, next)
	return true
}

// Subscribe registra fn para cada commit. Devuelve la función para desuscribir.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store[T]) publish(_ Action, next T) {
	s.mu.Lock()
	s.value = next
	s.version++
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
