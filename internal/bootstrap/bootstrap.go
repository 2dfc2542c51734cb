// Package bootstrap arma un motor completo (una "pestaña"): storage, stores
// hidratados, cliente del catálogo y el coordinador.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"pet-adoption-hub/internal/adapters/catalog/noroff"
	"pet-adoption-hub/internal/adapters/storage/memory"
	"pet-adoption-hub/internal/adapters/storage/postgres"
	"pet-adoption-hub/internal/adapters/storage/sqlite"
	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/config"
	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/browse"
	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/domain/preferences"
	"pet-adoption-hub/internal/domain/session"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/platform/state"
	"pet-adoption-hub/internal/ports/storage"
)

type Options struct {
	Config config.Config
	Log    logger.Logger

	// KV pisa el driver de la config (tests).
	KV storage.KV
	// Transport es opcional (tests).
	Transport http.RoundTripper
}

type Engine struct {
	Service *app.Service
	KV      storage.KV

	Session *session.Session
	Pets    *pets.Cache
	Ledger  *adoptions.Ledger
	View    *browse.View
	Prefs   *preferences.Store

	db *sql.DB
}

func (e *Engine) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}

func New(ctx context.Context, opts Options) (*Engine, error) {
	log := logger.OrNop(opts.Log)
	cfg := opts.Config

	eng := &Engine{KV: opts.KV}
	if eng.KV == nil {
		kv, db, err := OpenKV(ctx, cfg)
		if err != nil {
			return nil, err
		}
		eng.KV, eng.db = kv, db
	}

	ok := false
	defer func() {
		if !ok {
			_ = eng.Close()
		}
	}()

	ns := cfg.StorageNamespace
	var (
		authKey  = storage.Key(ns, storage.StoreAuth)
		petsKey  = storage.Key(ns, storage.StorePets)
		reqKey   = storage.Key(ns, storage.StoreAdoptionRequests)
		prefsKey = storage.Key(ns, storage.StorePreferences)
	)

	var sessState session.State
	if err := hydrate(ctx, eng.KV, authKey, &sessState, log); err != nil {
		return nil, err
	}
	var petList []pets.Pet
	if err := hydrate(ctx, eng.KV, petsKey, &petList, log); err != nil {
		return nil, err
	}
	var requests []adoptions.Request
	if err := hydrate(ctx, eng.KV, reqKey, &requests, log); err != nil {
		return nil, err
	}
	prefs := preferences.Default()
	if err := hydrate(ctx, eng.KV, prefsKey, &prefs, log); err != nil {
		return nil, err
	}

	client, err := noroff.New(noroff.Options{
		BaseURL:   cfg.CatalogBaseURL,
		APIKey:    cfg.CatalogAPIKey,
		Timeout:   cfg.CatalogTimeout,
		RPS:       cfg.CatalogRPS,
		Transport: opts.Transport,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("catalog client: %w", err)
	}

	eng.Session = session.New(sessState, log,
		state.Logging[session.State](log, storage.StoreAuth),
		state.Persist[session.State](eng.KV, authKey, log),
	)
	eng.Pets = pets.NewCache(client, petList, log,
		state.Logging[[]pets.Pet](log, storage.StorePets),
		state.Persist[[]pets.Pet](eng.KV, petsKey, log),
	)
	eng.Ledger = adoptions.NewLedger(requests, log,
		state.Logging[[]adoptions.Request](log, storage.StoreAdoptionRequests),
		state.Persist[[]adoptions.Request](eng.KV, reqKey, log),
	)
	eng.Prefs = preferences.New(prefs, log,
		state.Logging[preferences.Prefs](log, storage.StorePreferences),
		state.Persist[preferences.Prefs](eng.KV, prefsKey, log),
	)

	// la vista no se persiste; arranca con la parte del filtro guardada en prefs
	p := eng.Prefs.Get()
	filters := browse.DefaultFilterState()
	filters.SetExcluded(p.ExcludedSpecies)
	filters.SetShowAdopted(p.ShowAdopted)
	eng.View = browse.NewView(eng.Pets, filters, log, state.Logging[browse.FilterState](log, "browse"))

	eng.Service = app.New(app.Deps{
		Catalog: client,
		Auth:    client,
		Session: eng.Session,
		Pets:    eng.Pets,
		Ledger:  eng.Ledger,
		View:    eng.View,
		Prefs:   eng.Prefs,
		Log:     log,
	})

	log.Info("engine ready", logger.Fields{
		"namespace": ns,
		"pets":      eng.Pets.Len(),
		"requests":  len(eng.Ledger.All()),
		"logged_in": eng.Session.IsLoggedIn(),
	})

	ok = true
	return eng, nil
}

// OpenKV abre el backend según STORAGE_DRIVER. db es nil para memory.
func OpenKV(ctx context.Context, cfg config.Config) (storage.KV, *sql.DB, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return memory.NewKV(), nil, nil

	case config.DriverPostgres:
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres: schema: %w", err)
		}
		return postgres.NewKV(db), db, nil

	case config.DriverSQLite, "":
		path := cfg.SQLitePath
		if path == "" {
			path = "petadopt.db"
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewKV(db), db, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// hydrate tolera un valor corrupto: se loguea y el store arranca vacío.
// Los errores del backend sí cortan el arranque.
func hydrate[T any](ctx context.Context, kv storage.KV, key string, dst *T, log logger.Logger) error {
	var v T
	found, err := state.Hydrate(ctx, kv, key, &v)
	if err != nil {
		if errors.Is(err, state.ErrCorrupt) {
			log.Warn("discarding unreadable stored value", logger.Fields{"key": key, "err": err})
			return nil
		}
		return err
	}
	if found {
		*dst = v
	}
	return nil
}
