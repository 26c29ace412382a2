package accessgrants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"health-records-access/internal/middleware"
	"health-records-access/internal/platform/logger"
	"health-records-access/internal/ports/identity"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	msgStored    = "Grant access stored"
	msgDuplicate = "Grant access already exists for this patient and provider"
	msgNotFound  = "Record not found"
	msgDeleted   = "Record deleted successfully"
	msgAccepted  = "Accepted updated to Yes"
)

// PatientDirectory es lo que necesita la vista enriquecida del provider.
type PatientDirectory interface {
	PatientInfo(ctx context.Context, wallet string) (identity.PatientInfo, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Reportar errores con el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type Handler struct {
	svc      *Service
	query    *QueryService
	patients PatientDirectory // puede ser nil
	log      logger.Logger
}

func NewHandler(svc *Service, query *QueryService, patients PatientDirectory, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, query: query, patients: patients, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/grant-access", func(gr chi.Router) {
		gr.Post("/", h.createGrant)
		gr.Get("/provider/{providerWallet}", h.listByProvider)
		gr.Get("/provider/{providerWallet}/requests", h.listProviderRequests)
		gr.Get("/patient/{patientWallet}", h.listByPatient)
		gr.Put("/accept/{id}", h.acceptGrant)
		gr.Delete("/{id}", h.deleteGrant)
	})
}

type createGrantRequest struct {
	PatientWallet  string `json:"patientWallet" validate:"required"`
	ProviderWallet string `json:"providerWallet" validate:"required"`
	GrantAccess    string `json:"grantAccess" validate:"required,oneof=Yes No"`
}

// grantResponse mantiene el shape JSON histórico (_id, camelCase).
type grantResponse struct {
	ID             string    `json:"_id"`
	PatientWallet  string    `json:"patientWallet"`
	ProviderWallet string    `json:"providerWallet"`
	GrantAccess    Answer    `json:"grantAccess" swaggertype:"string" enums:"Yes,No"`
	Accepted       Answer    `json:"accepted" swaggertype:"string" enums:"Yes,No"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type messageResponse struct {
	Message string         `json:"message"`
	Data    *grantResponse `json:"data,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type providerRequestResponse struct {
	grantResponse
	Patient *identity.PatientInfo `json:"patient,omitempty"`
}

// createGrant godoc
// @Summary Crear grant de acceso
// @Description El paciente declara la intención de dar acceso a un provider. La tripleta (patientWallet, providerWallet, grantAccess) es única.
// @Tags grant-access
// @Accept json
// @Produce json
// @Param body body createGrantRequest true "Grant"
// @Success 201 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 409 {object} messageResponse
// @Failure 413 {object} errorResponse
// @Router /api/grant-access [post]
func (h *Handler) createGrant(w http.ResponseWriter, r *http.Request) {
	var req createGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json: " + err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: describeValidation(err)})
		return
	}

	grantAccess, err := ParseAnswer(req.GrantAccess)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	g, err := h.svc.RequestGrant(r.Context(), callerFrom(r), RequestInput{
		PatientWallet:  req.PatientWallet,
		ProviderWallet: req.ProviderWallet,
		GrantAccess:    grantAccess,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := toGrantResponse(g)
	writeJSON(w, http.StatusCreated, messageResponse{Message: msgStored, Data: &resp})
}

// listByProvider godoc
// @Summary Grants de un provider
// @Description Todos los grants donde el provider es el destinatario, pendientes o aceptados. Filtro opcional accepted=Yes|No.
// @Tags grant-access
// @Produce json
// @Param providerWallet path string true "Wallet del provider"
// @Param accepted query string false "Yes o No"
// @Success 200 {array} grantResponse
// @Failure 400 {object} errorResponse
// @Router /api/grant-access/provider/{providerWallet} [get]
func (h *Handler) listByProvider(w http.ResponseWriter, r *http.Request) {
	items, ok := h.list(w, r, h.query.ListForProvider, chi.URLParam(r, "providerWallet"))
	if !ok {
		return
	}
	out := make([]grantResponse, 0, len(items))
	for _, g := range items {
		out = append(out, toGrantResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

// listByPatient godoc
// @Summary Grants de un paciente
// @Tags grant-access
// @Produce json
// @Param patientWallet path string true "Wallet del paciente"
// @Param accepted query string false "Yes o No"
// @Success 200 {array} grantResponse
// @Failure 400 {object} errorResponse
// @Router /api/grant-access/patient/{patientWallet} [get]
func (h *Handler) listByPatient(w http.ResponseWriter, r *http.Request) {
	items, ok := h.list(w, r, h.query.ListForPatient, chi.URLParam(r, "patientWallet"))
	if !ok {
		return
	}
	out := make([]grantResponse, 0, len(items))
	for _, g := range items {
		out = append(out, toGrantResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

// listProviderRequests godoc
// @Summary Solicitudes del provider con perfil del paciente
// @Description Igual que el listado por provider, pero cada grant trae el perfil del paciente si el registro de identidad lo conoce.
// @Tags grant-access
// @Produce json
// @Param providerWallet path string true "Wallet del provider"
// @Param accepted query string false "Yes o No"
// @Success 200 {array} providerRequestResponse
// @Router /api/grant-access/provider/{providerWallet}/requests [get]
func (h *Handler) listProviderRequests(w http.ResponseWriter, r *http.Request) {
	items, ok := h.list(w, r, h.query.ListForProvider, chi.URLParam(r, "providerWallet"))
	if !ok {
		return
	}

	// un lookup por paciente, aunque tenga varios grants
	profiles := map[string]*identity.PatientInfo{}
	out := make([]providerRequestResponse, 0, len(items))
	for _, g := range items {
		p, seen := profiles[g.PatientWallet]
		if !seen && h.patients != nil {
			info, err := h.patients.PatientInfo(r.Context(), g.PatientWallet)
			if err == nil {
				p = &info
			} else if !errors.Is(err, identity.ErrNotRegistered) {
				h.log.Warn("patient profile lookup failed", map[string]any{
					"patient": g.PatientWallet,
					"err":     err.Error(),
				})
			}
			profiles[g.PatientWallet] = p
		}
		out = append(out, providerRequestResponse{grantResponse: toGrantResponse(g), Patient: p})
	}
	writeJSON(w, http.StatusOK, out)
}

// acceptGrant godoc
// @Summary Aceptar grant
// @Description El provider acepta el grant (accepted pasa a Yes). Re-aceptar es idempotente.
// @Description Con verificador de tokens configurado el caller es obligatorio (401 sin token válido).
// @Tags grant-access
// @Produce json
// @Param id path string true "Grant ID"
// @Success 200 {object} messageResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} messageResponse
// @Router /api/grant-access/accept/{id} [put]
func (h *Handler) acceptGrant(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.AcceptGrant(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := toGrantResponse(g)
	writeJSON(w, http.StatusOK, messageResponse{Message: msgAccepted, Data: &resp})
}

// deleteGrant godoc
// @Summary Revocar grant
// @Description Borra el grant. Quién puede hacerlo depende de REVOKE_POLICY (any, parties, patient).
// @Tags grant-access
// @Produce json
// @Param id path string true "Grant ID"
// @Success 200 {object} messageResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} messageResponse
// @Router /api/grant-access/{id} [delete]
func (h *Handler) deleteGrant(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RevokeGrant(r.Context(), callerFrom(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgDeleted})
}

type listFunc func(ctx context.Context, wallet string) ([]AccessGrant, error)

func (h *Handler) list(w http.ResponseWriter, r *http.Request, fn listFunc, wallet string) ([]AccessGrant, bool) {
	// accepted=Yes|No (opcional)
	var filter *Answer
	if raw := strings.TrimSpace(r.URL.Query().Get("accepted")); raw != "" {
		a, err := ParseAnswer(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return nil, false
		}
		filter = &a
	}

	items, err := fn(r.Context(), wallet)
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	if filter != nil {
		items = FilterAccepted(items, *filter)
	}
	return items, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrDuplicateGrant):
		writeJSON(w, http.StatusConflict, messageResponse{Message: msgDuplicate})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: msgNotFound})
	case errors.Is(err, ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	default:
		// Fallas del store: 5xx, no se mezclan con errores del caller.
		h.log.Error("grant store failure", map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
			"err":    err.Error(),
		})
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func callerFrom(r *http.Request) Caller {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return Caller{}
	}
	return Caller{Wallet: strings.TrimSpace(claims.Wallet)}
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func toGrantResponse(g AccessGrant) grantResponse {
	return grantResponse{
		ID:             g.ID,
		PatientWallet:  g.PatientWallet,
		ProviderWallet: g.ProviderWallet,
		GrantAccess:    g.GrantAccess,
		Accepted:       g.Accepted,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
