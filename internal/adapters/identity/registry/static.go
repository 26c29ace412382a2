package registry

import (
	"context"
	"strings"
	"sync"

	"health-records-access/internal/ports/identity"
)

// Static es un registro en memoria. Sirve para modo dev y tests.
type Static struct {
	mu        sync.RWMutex
	patients  map[string]identity.PatientInfo
	providers map[string]identity.ProviderInfo
}

var _ identity.Registry = (*Static)(nil)

func NewStatic() *Static {
	return &Static{
		patients:  map[string]identity.PatientInfo{},
		providers: map[string]identity.ProviderInfo{},
	}
}

// RegisterPatient registra (o reemplaza) un paciente. Un wallet tiene un solo rol.
func (s *Static) RegisterPatient(wallet string, info identity.PatientInfo) {
	wallet = strings.TrimSpace(wallet)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.providers, wallet)
	s.patients[wallet] = info
}

func (s *Static) RegisterProvider(wallet string, info identity.ProviderInfo) {
	wallet = strings.TrimSpace(wallet)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.patients, wallet)
	s.providers[wallet] = info
}

func (s *Static) RoleOf(ctx context.Context, wallet string) (identity.Role, error) {
	wallet = strings.TrimSpace(wallet)
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.patients[wallet]; ok {
		return identity.RolePatient, nil
	}
	if _, ok := s.providers[wallet]; ok {
		return identity.RoleProvider, nil
	}
	return identity.RoleNone, nil
}

func (s *Static) PatientInfo(ctx context.Context, wallet string) (identity.PatientInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.patients[strings.TrimSpace(wallet)]
	if !ok {
		return identity.PatientInfo{}, identity.ErrNotRegistered
	}
	return info, nil
}

func (s *Static) ProviderInfo(ctx context.Context, wallet string) (identity.ProviderInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.providers[strings.TrimSpace(wallet)]
	if !ok {
		return identity.ProviderInfo{}, identity.ErrNotRegistered
	}
	return info, nil
}
