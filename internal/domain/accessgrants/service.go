package accessgrants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"health-records-access/internal/platform/logger"
	"health-records-access/internal/ports/identity"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrDuplicateGrant = errors.New("grant access already exists for this patient and provider")
	ErrNotFound       = errors.New("record not found")
	ErrForbidden      = errors.New("forbidden")
	ErrUnauthorized   = errors.New("caller identity required")

	// ErrConflict lo devuelven los stores cuando su constraint de unicidad salta.
	ErrConflict = errors.New("store: unique constraint violated")
)

// RevokePolicy decide quién puede revocar (borrar) un grant.
type RevokePolicy string

const (
	// RevokeAny: borrado incondicional, sin mirar quién llama.
	RevokeAny RevokePolicy = "any"
	// RevokeParties: el caller tiene que ser el paciente o el provider del grant.
	RevokeParties RevokePolicy = "parties"
	// RevokePatient: solo el paciente.
	RevokePatient RevokePolicy = "patient"
)

func ParseRevokePolicy(s string) (RevokePolicy, error) {
	switch p := RevokePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return RevokeAny, nil
	case RevokeAny, RevokeParties, RevokePatient:
		return p, nil
	default:
		return "", fmt.Errorf("unknown revoke policy %q", s)
	}
}

// RoleLookup es la parte del registry de identidad que usa el lifecycle.
type RoleLookup interface {
	RoleOf(ctx context.Context, wallet string) (identity.Role, error)
}

// Caller es la identidad explícita de quien invoca. Zero value = anónimo.
type Caller struct {
	Wallet string
}

func (c Caller) known() bool { return strings.TrimSpace(c.Wallet) != "" }

type Service struct {
	repo          Repository
	roles         RoleLookup
	policy        RevokePolicy
	requireCaller bool
	log           logger.Logger
}

type Option func(*Service)

// WithRoleLookup activa el chequeo de roles en RequestGrant.
func WithRoleLookup(r RoleLookup) Option {
	return func(s *Service) { s.roles = r }
}

func WithRevokePolicy(p RevokePolicy) Option {
	return func(s *Service) {
		if p != "" {
			s.policy = p
		}
	}
}

// WithCallerRequired hace que toda mutación exija un caller identificado
// (ErrUnauthorized si no). Se activa cuando hay verificador de tokens.
func WithCallerRequired() Option {
	return func(s *Service) { s.requireCaller = true }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		policy: RevokeAny,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) RevokePolicy() RevokePolicy { return s.policy }

type RequestInput struct {
	PatientWallet  string
	ProviderWallet string
	GrantAccess    Answer
}

// RequestGrant crea un grant nuevo (accepted=No). Si ya existe la tripleta exacta
// devuelve ErrDuplicateGrant sin tocar nada.
func (s *Service) RequestGrant(ctx context.Context, by Caller, in RequestInput) (AccessGrant, error) {
	patient := strings.TrimSpace(in.PatientWallet)
	provider := strings.TrimSpace(in.ProviderWallet)

	if patient == "" {
		return AccessGrant{}, fmt.Errorf("%w: patientWallet is required", ErrValidation)
	}
	if provider == "" {
		return AccessGrant{}, fmt.Errorf("%w: providerWallet is required", ErrValidation)
	}
	if in.GrantAccess != Yes && in.GrantAccess != No {
		return AccessGrant{}, fmt.Errorf("%w: grantAccess must be Yes or No", ErrValidation)
	}

	if s.requireCaller && !by.known() {
		return AccessGrant{}, ErrUnauthorized
	}
	// Con identidad conocida, solo el paciente puede pedir el grant sobre sus registros.
	if by.known() && strings.TrimSpace(by.Wallet) != patient {
		return AccessGrant{}, ErrForbidden
	}

	if s.roles != nil {
		if err := s.checkRole(ctx, patient, identity.RolePatient, "patientWallet"); err != nil {
			return AccessGrant{}, err
		}
		if err := s.checkRole(ctx, provider, identity.RoleProvider, "providerWallet"); err != nil {
			return AccessGrant{}, err
		}
	}

	_, exists, err := s.repo.FindExact(ctx, patient, provider, in.GrantAccess)
	if err != nil {
		return AccessGrant{}, fmt.Errorf("find exact grant: %w", err)
	}
	if exists {
		return AccessGrant{}, ErrDuplicateGrant
	}

	g, err := s.repo.Insert(ctx, AccessGrant{
		PatientWallet:  patient,
		ProviderWallet: provider,
		GrantAccess:    in.GrantAccess,
		Accepted:       No,
	})
	if err != nil {
		// Dos requests concurrentes pueden pasar el FindExact; el store cierra la carrera.
		if errors.Is(err, ErrConflict) {
			return AccessGrant{}, ErrDuplicateGrant
		}
		return AccessGrant{}, fmt.Errorf("insert grant: %w", err)
	}

	s.log.Info("grant requested", map[string]any{
		"grant_id":     g.ID,
		"patient":      g.PatientWallet,
		"provider":     g.ProviderWallet,
		"grant_access": g.GrantAccess.String(),
	})
	return g, nil
}

// AcceptGrant pone accepted=Yes. Re-aceptar es idempotente (sigue Yes, refresca UpdatedAt).
// Si el caller es conocido tiene que ser el provider del grant.
func (s *Service) AcceptGrant(ctx context.Context, by Caller, id string) (AccessGrant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return AccessGrant{}, fmt.Errorf("%w: id is required", ErrValidation)
	}
	if s.requireCaller && !by.known() {
		return AccessGrant{}, ErrUnauthorized
	}

	if by.known() {
		current, found, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return AccessGrant{}, fmt.Errorf("get grant: %w", err)
		}
		if !found {
			return AccessGrant{}, ErrNotFound
		}
		if current.ProviderWallet != strings.TrimSpace(by.Wallet) {
			return AccessGrant{}, ErrForbidden
		}
	}

	g, found, err := s.repo.UpdateAccepted(ctx, id)
	if err != nil {
		return AccessGrant{}, fmt.Errorf("update accepted: %w", err)
	}
	if !found {
		return AccessGrant{}, ErrNotFound
	}

	s.log.Info("grant accepted", map[string]any{
		"grant_id": g.ID,
		"provider": g.ProviderWallet,
	})
	return g, nil
}

// RevokeGrant borra el grant. Quién puede hacerlo depende de la RevokePolicy.
func (s *Service) RevokeGrant(ctx context.Context, by Caller, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}

	if s.requireCaller && !by.known() {
		return ErrUnauthorized
	}
	if s.policy != RevokeAny {
		if !by.known() {
			return ErrUnauthorized
		}
		current, found, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get grant: %w", err)
		}
		if !found {
			return ErrNotFound
		}
		if !s.mayRevoke(current, strings.TrimSpace(by.Wallet)) {
			return ErrForbidden
		}
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.log.Info("grant revoked", map[string]any{
		"grant_id": id,
		"by":       by.Wallet,
	})
	return nil
}

func (s *Service) mayRevoke(g AccessGrant, wallet string) bool {
	switch s.policy {
	case RevokePatient:
		return g.PatientWallet == wallet
	case RevokeParties:
		return g.PatientWallet == wallet || g.ProviderWallet == wallet
	default:
		return true
	}
}

func (s *Service) checkRole(ctx context.Context, wallet string, want identity.Role, field string) error {
	got, err := s.roles.RoleOf(ctx, wallet)
	if err != nil {
		if errors.Is(err, identity.ErrNotRegistered) {
			return fmt.Errorf("%w: %s is not registered", ErrValidation, field)
		}
		return fmt.Errorf("resolve role: %w", err)
	}
	if got != want {
		return fmt.Errorf("%w: %s must belong to a %s, got %s", ErrValidation, field, want, got)
	}
	return nil
}
