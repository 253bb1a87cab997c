// Package registry implements the process-wide command registry, the LRU
// parse cache, and namespace-default inheritance — the external
// collaborators spec.md §5/§6 describes but leaves out of the analyser's
// core (SPEC_FULL §7 "registry").
package registry

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ArcletProject/Alconna/node"
)

// ErrUnknownCommand is returned when a lookup names a command that was
// never registered.
var ErrUnknownCommand = errors.New("unknown command")

// ErrDuplicateCommand is returned when Register is called twice for the
// same command ID.
var ErrDuplicateCommand = errors.New("command already registered")

// Registry owns the set of live Alconna commands, their per-namespace
// defaults, and the shared LRU parse cache (spec.md §5 "the only shared
// mutable state is the LRU cache and the command registry, both of which
// require internal mutual exclusion").
type Registry struct {
	mu         sync.RWMutex
	commands   map[string]*node.Alconna
	namespaces map[string]*Namespace
	cache      *LRU
	group      singleflight.Group
	Logger     *zap.SugaredLogger
}

// New builds an empty Registry with a default-sized LRU cache.
func New() *Registry {
	return &Registry{
		commands:   map[string]*node.Alconna{},
		namespaces: map[string]*Namespace{"default": {Name: "default"}},
		cache:      NewLRU(DefaultCacheSize),
		Logger:     zap.NewNop().Sugar(),
	}
}

func (r *Registry) log() *zap.SugaredLogger {
	if r.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return r.Logger
}

// Cache exposes the registry's shared LRU parse cache.
func (r *Registry) Cache() *LRU {
	return r.cache
}

// Register adds a new command under its own ID, applying its namespace's
// defaults first (spec.md §6 "namespace").
func (r *Registry) Register(a *node.Alconna) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[a.ID()]; exists {
		return errors.Wrap(ErrDuplicateCommand, a.ID())
	}
	ns, ok := r.namespaces[a.Meta.Namespace]
	if !ok {
		ns = r.namespaces["default"]
	}
	a.Meta = ApplyNamespaceDefaults(a.Meta, ns)
	r.commands[a.ID()] = a
	return nil
}

// Unregister removes a command and invalidates its cache entries.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.commands, id)
	r.cache.InvalidateCommand(id)
}

// Get looks up a registered command by ID.
func (r *Registry) Get(id string) (*node.Alconna, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.commands[id]
	if !ok {
		return nil, errors.Wrap(ErrUnknownCommand, id)
	}
	return a, nil
}

// InvalidateOnMutation drops id's cache entries; call after any change to
// a command's schema (spec.md §4.4 "entries are invalidated when the
// command is mutated").
func (r *Registry) InvalidateOnMutation(id string) {
	r.cache.InvalidateCommand(id)
}

// SetNamespace registers or replaces defaults for a named namespace.
func (r *Registry) SetNamespace(ns *Namespace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[ns.Name] = ns
}

// Namespace returns the named defaults, or the "default" namespace when
// name is empty or unregistered.
func (r *Registry) Namespace(name string) *Namespace {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name != "" {
		if ns, ok := r.namespaces[name]; ok {
			return ns
		}
	}
	return r.namespaces["default"]
}

// ApplyNamespaceDefaults returns a Meta with fields from ns filled in
// wherever meta left them at their zero value, mirroring inheritance
// rules for the command's declared namespace.
func ApplyNamespaceDefaults(meta node.Meta, ns *Namespace) node.Meta {
	if ns == nil {
		return meta
	}
	if meta.Separators == "" {
		meta.Separators = ns.Separators
	}
	if !meta.FuzzyMatch {
		meta.FuzzyMatch = ns.FuzzyMatch
	}
	if !meta.Strict {
		meta.Strict = ns.Strict
	}
	if !meta.FoldCase {
		meta.FoldCase = ns.FoldCase
	}
	if meta.DisableBuiltin == nil {
		meta.DisableBuiltin = map[node.BuiltinKind]bool{}
	}
	for k, v := range ns.DisableBuiltin {
		if v {
			meta.DisableBuiltin[node.BuiltinKind(k)] = true
		}
	}
	return meta
}

// FetchOrCompute returns the cached parse result for (id, raw) if present;
// otherwise it calls compute exactly once even under concurrent callers
// racing on the same key (singleflight), stores the result, and returns
// it — spec.md §4.4 "the analyser consults an LRU cache ... on hit the
// cached Arparma is returned without re-matching".
func (r *Registry) FetchOrCompute(id, raw string, compute func() (any, error)) (any, error, bool) {
	if v, ok := r.cache.Get(id, raw); ok {
		r.log().Debugw("cache hit", "command", id)
		return v, nil, true
	}
	r.log().Debugw("cache miss", "command", id)
	v, err, _ := r.group.Do(id+"\x00"+raw, func() (any, error) {
		if cached, ok := r.cache.Get(id, raw); ok {
			return cached, nil
		}
		result, err := compute()
		if err != nil {
			return nil, err
		}
		r.cache.Put(id, raw, result)
		return result, nil
	})
	return v, err, false
}
