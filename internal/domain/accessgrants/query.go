package accessgrants

import (
	"context"
	"fmt"
	"strings"
)

// QueryService es el lado de lectura. No muta nada y no separa pendientes de activos:
// el caller filtra por Accepted si lo necesita.
type QueryService struct {
	repo Repository
}

func NewQueryService(repo Repository) *QueryService {
	return &QueryService{repo: repo}
}

func (q *QueryService) ListForPatient(ctx context.Context, patientWallet string) ([]AccessGrant, error) {
	patientWallet = strings.TrimSpace(patientWallet)
	if patientWallet == "" {
		return nil, fmt.Errorf("%w: patientWallet is required", ErrValidation)
	}
	items, err := q.repo.FindByPatient(ctx, patientWallet)
	if err != nil {
		return nil, fmt.Errorf("find by patient: %w", err)
	}
	if items == nil {
		items = []AccessGrant{}
	}
	return items, nil
}

func (q *QueryService) ListForProvider(ctx context.Context, providerWallet string) ([]AccessGrant, error) {
	providerWallet = strings.TrimSpace(providerWallet)
	if providerWallet == "" {
		return nil, fmt.Errorf("%w: providerWallet is required", ErrValidation)
	}
	items, err := q.repo.FindByProvider(ctx, providerWallet)
	if err != nil {
		return nil, fmt.Errorf("find by provider: %w", err)
	}
	if items == nil {
		items = []AccessGrant{}
	}
	return items, nil
}

// FilterAccepted deja solo los grants con el valor de accepted pedido.
func FilterAccepted(items []AccessGrant, accepted Answer) []AccessGrant {
	out := make([]AccessGrant, 0, len(items))
	for _, g := range items {
		if g.Accepted == accepted {
			out = append(out, g)
		}
	}
	return out
}
