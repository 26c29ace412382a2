package identity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrNotRegistered = errors.New("wallet not registered")
)

// Role replica el mapping userRoles del registro: 0=None, 1=Patient, 2=Provider.
type Role uint8

const (
	RoleNone Role = iota
	RolePatient
	RoleProvider
)

func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patient", "1":
		return RolePatient
	case "provider", "2":
		return RoleProvider
	default:
		return RoleNone
	}
}

func (r Role) String() string {
	switch r {
	case RolePatient:
		return "patient"
	case RoleProvider:
		return "provider"
	default:
		return "none"
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	// acepta "patient" o el id numérico del contrato
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int
		if err2 := json.Unmarshal(b, &n); err2 != nil {
			return err
		}
		if n < 0 || n > int(RoleProvider) {
			*r = RoleNone
			return nil
		}
		*r = Role(n)
		return nil
	}
	*r = ParseRole(s)
	return nil
}

type PatientInfo struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	BloodGroup    string `json:"bloodGroup"`
	ContactNumber string `json:"contactNumber"`
}

type ProviderInfo struct {
	Name           string `json:"name"`
	Hospital       string `json:"hospital"`
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"licenseNumber"`
	ContactNumber  string `json:"contactNumber"`
}

// Registry resuelve un wallet a rol y perfil. La implementación puede ser
// on-chain, cacheada o un mock; el core de grants solo depende de esta interfaz.
type Registry interface {
	RoleOf(ctx context.Context, wallet string) (Role, error)
	PatientInfo(ctx context.Context, wallet string) (PatientInfo, error)
	ProviderInfo(ctx context.Context, wallet string) (ProviderInfo, error)
}
