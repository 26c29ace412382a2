package profiles

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"health-records-access/internal/platform/logger"
	"health-records-access/internal/ports/identity"

	"github.com/go-chi/chi/v5"
)

// profileResponse junta rol + perfil, lo que el frontend guardaba en sesión al hacer login.
type profileResponse struct {
	WalletAddress string                 `json:"walletAddress"`
	Role          identity.Role          `json:"role" swaggertype:"string" enums:"patient,provider"`
	Patient       *identity.PatientInfo  `json:"patient,omitempty"`
	Provider      *identity.ProviderInfo `json:"provider,omitempty"`
}

func RegisterRoutes(r chi.Router, registry identity.Registry, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Get("/api/identity/{wallet}", getProfileHandler(registry, log))
}

// getProfileHandler godoc
// @Summary Rol y perfil de un wallet
// @Description Resuelve el wallet contra el registro de identidad (patient/provider) y devuelve su perfil.
// @Tags identity
// @Produce json
// @Param wallet path string true "Wallet"
// @Success 200 {object} profileResponse
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/identity/{wallet} [get]
func getProfileHandler(registry identity.Registry, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if registry == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "identity registry not configured"})
			return
		}

		wallet := strings.TrimSpace(chi.URLParam(r, "wallet"))
		if wallet == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "wallet required"})
			return
		}

		role, err := registry.RoleOf(r.Context(), wallet)
		if err != nil && !errors.Is(err, identity.ErrNotRegistered) {
			log.Error("role lookup failed", map[string]any{"wallet": wallet, "err": err.Error()})
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "identity registry unavailable"})
			return
		}

		resp := profileResponse{WalletAddress: wallet, Role: role}
		switch role {
		case identity.RolePatient:
			info, err := registry.PatientInfo(r.Context(), wallet)
			if err != nil {
				writeLookupError(w, log, wallet, err)
				return
			}
			resp.Patient = &info
		case identity.RoleProvider:
			info, err := registry.ProviderInfo(r.Context(), wallet)
			if err != nil {
				writeLookupError(w, log, wallet, err)
				return
			}
			resp.Provider = &info
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Please register first"})
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func writeLookupError(w http.ResponseWriter, log logger.Logger, wallet string, err error) {
	if errors.Is(err, identity.ErrNotRegistered) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Please register first"})
		return
	}
	log.Error("profile lookup failed", map[string]any{"wallet": wallet, "err": err.Error()})
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": "identity registry unavailable"})
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
