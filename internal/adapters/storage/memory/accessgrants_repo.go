package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"health-records-access/internal/domain/accessgrants"

	"github.com/google/uuid"
)

type grantRepo struct {
	mu    sync.RWMutex
	byID  map[string]accessgrants.AccessGrant
	order []string // orden de inserción
	now   func() time.Time
}

func NewAccessGrantsRepo() accessgrants.Repository {
	return newGrantRepo(time.Now)
}

func newGrantRepo(now func() time.Time) *grantRepo {
	return &grantRepo{
		byID: make(map[string]accessgrants.AccessGrant),
		now:  now,
	}
}

func (r *grantRepo) FindExact(ctx context.Context, patientWallet, providerWallet string, grantAccess accessgrants.Answer) (accessgrants.AccessGrant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.findExactLocked(patientWallet, providerWallet, grantAccess)
	return g, ok, nil
}

// Insert también chequea la tripleta bajo el lock: cierra la carrera entre
// dos RequestGrant concurrentes.
func (r *grantRepo) Insert(ctx context.Context, g accessgrants.AccessGrant) (accessgrants.AccessGrant, error) {
	if strings.TrimSpace(g.PatientWallet) == "" || strings.TrimSpace(g.ProviderWallet) == "" {
		return accessgrants.AccessGrant{}, errors.New("grant wallets required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.findExactLocked(g.PatientWallet, g.ProviderWallet, g.GrantAccess); dup {
		return accessgrants.AccessGrant{}, accessgrants.ErrConflict
	}

	now := r.now()
	g.ID = uuid.NewString()
	g.CreatedAt = now
	g.UpdatedAt = now

	r.byID[g.ID] = g
	r.order = append(r.order, g.ID)
	return g, nil
}

func (r *grantRepo) GetByID(ctx context.Context, id string) (accessgrants.AccessGrant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	return g, ok, nil
}

func (r *grantRepo) FindByPatient(ctx context.Context, patientWallet string) ([]accessgrants.AccessGrant, error) {
	return r.filter(func(g accessgrants.AccessGrant) bool { return g.PatientWallet == patientWallet }), nil
}

func (r *grantRepo) FindByProvider(ctx context.Context, providerWallet string) ([]accessgrants.AccessGrant, error) {
	return r.filter(func(g accessgrants.AccessGrant) bool { return g.ProviderWallet == providerWallet }), nil
}

func (r *grantRepo) UpdateAccepted(ctx context.Context, id string) (accessgrants.AccessGrant, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[id]
	if !ok {
		return accessgrants.AccessGrant{}, false, nil
	}
	g.Accepted = accessgrants.Yes
	g.UpdatedAt = r.now()
	r.byID[id] = g
	return g, true, nil
}

func (r *grantRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *grantRepo) findExactLocked(patientWallet, providerWallet string, grantAccess accessgrants.Answer) (accessgrants.AccessGrant, bool) {
	for _, id := range r.order {
		g := r.byID[id]
		if g.PatientWallet == patientWallet && g.ProviderWallet == providerWallet && g.GrantAccess == grantAccess {
			return g, true
		}
	}
	return accessgrants.AccessGrant{}, false
}

func (r *grantRepo) filter(keep func(accessgrants.AccessGrant) bool) []accessgrants.AccessGrant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]accessgrants.AccessGrant, 0)
	for _, id := range r.order {
		if g := r.byID[id]; keep(g) {
			out = append(out, g)
		}
	}
	return out
}
