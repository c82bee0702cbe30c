package core

import (
	"time"

	"gridscope/internal/api"
	"gridscope/internal/config"
	"gridscope/internal/prefs"
	"gridscope/internal/realtime"
)

// Session bundles the backend handles and the cross-tab state every tab
// reads. It is owned by the model and only mutated inside Update, so no
// locking is needed.
type Session struct {
	API      *api.Client
	Retry    api.Retrier
	Realtime *realtime.Client
	Config   config.Config
	Prefs    *prefs.Store

	Connected      bool
	AnalyzerOnline bool
	DatasetLoaded  bool
	LastUpdate     time.Time
	RetryCount     int
	pendingFetches int
	loaded         map[TabID]bool
	generations    map[TabID]uint64
}

func NewSession(client *api.Client, rt *realtime.Client, cfg config.Config, store *prefs.Store) *Session {
	return &Session{
		API:      client,
		Retry:    api.Retrier{MaxRetries: cfg.Retry.MaxRetries, BaseDelay: cfg.Retry.BaseDelay},
		Realtime: rt,
		Config:   cfg,
		Prefs:    store,
		// The status segment fails open until the socket reports otherwise.
		Connected:   true,
		loaded:      make(map[TabID]bool),
		generations: make(map[TabID]uint64),
	}
}

// Loaded reports whether tab already has data; activation skips the fetch
// when it does.
func (s *Session) Loaded(id TabID) bool { return s.loaded[id] }

func (s *Session) SetLoaded(id TabID) {
	s.loaded[id] = true
	s.LastUpdate = time.Now()
}

// ClearLoaded drops the flag so the next activation refetches.
func (s *Session) ClearLoaded(id TabID) { delete(s.loaded, id) }

// ClearAllLoaded marks every tab stale, used after the backend reloads its
// dataset.
func (s *Session) ClearAllLoaded() { s.loaded = make(map[TabID]bool) }

// NextGen invalidates any in-flight fetch for tab: results carrying an older
// generation are discarded on arrival instead of clobbering newer state.
func (s *Session) NextGen(id TabID) uint64 {
	s.generations[id]++
	return s.generations[id]
}

func (s *Session) CurrentGen(id TabID) uint64 { return s.generations[id] }

// Stale reports whether gen belongs to a superseded fetch for tab.
func (s *Session) Stale(id TabID, gen uint64) bool { return gen != s.generations[id] }

func (s *Session) FetchStarted() { s.pendingFetches++ }
func (s *Session) FetchFinished() {
	if s.pendingFetches > 0 {
		s.pendingFetches--
	}
}

// Fetching reports whether any tab has a request in flight.
func (s *Session) Fetching() bool { return s.pendingFetches > 0 }
