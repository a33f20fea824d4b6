package services

import "sync"

// CatalogGuard serializes access to each project's catalog snapshot.
// Plain solves hold the read lock for their whole duration. Catalog reloads, generating
// solves and other project mutations hold the write lock, so a catalog is never swapped
// mid-solve.
type CatalogGuard struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewCatalogGuard creates an empty guard
func NewCatalogGuard() *CatalogGuard {
	return &CatalogGuard{locks: make(map[string]*sync.RWMutex)}
}

func (g *CatalogGuard) lockFor(projectID string) *sync.RWMutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	l, ok := g.locks[projectID]
	if !ok {
		l = &sync.RWMutex{}
		g.locks[projectID] = l
	}
	return l
}

// RLock takes the read lock of a project and returns its release function
func (g *CatalogGuard) RLock(projectID string) func() {
	l := g.lockFor(projectID)
	l.RLock()
	return l.RUnlock
}

// Lock takes the write lock of a project and returns its release function
func (g *CatalogGuard) Lock(projectID string) func() {
	l := g.lockFor(projectID)
	l.Lock()
	return l.Unlock
}

// Forget drops the lock of a deleted project
func (g *CatalogGuard) Forget(projectID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locks, projectID)
}
