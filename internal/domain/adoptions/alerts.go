package adoptions

import "sync"

// Counter deriva el badge de alertas desde el ledger. No guarda nada propio:
// cada lectura recorre las solicitudes.
type Counter struct {
	ledger *Ledger
}

func NewCounter(l *Ledger) *Counter {
	return &Counter{ledger: l}
}

func (c *Counter) Count(userName string) int {
	return c.ledger.GetAlertCountForUser(userName)
}

// Watch llama a fn con el conteo actual y luego cada vez que un commit del
// ledger lo cambia para userName. Devuelve la función para cortar la suscripción.
func (c *Counter) Watch(userName string, fn func(count int)) (stop func()) {
	var (
		mu    sync.Mutex
		ready bool
		last  int
	)

	// suscribir antes de leer: un commit que cae en el medio ya está en la
	// lectura inicial
	stop = c.ledger.Subscribe(func(items []Request) {
		n := alertCount(items, userName)

		mu.Lock()
		if !ready || n == last {
			mu.Unlock()
			return
		}
		last = n
		mu.Unlock()

		fn(n)
	})

	mu.Lock()
	last = c.Count(userName)
	ready = true
	initial := last
	mu.Unlock()

	fn(initial)
	return stop
}
