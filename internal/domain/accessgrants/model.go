package accessgrants

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Answer es el enum de dos valores usado por grantAccess y accepted.
// En el wire se serializa como "Yes" / "No".
type Answer uint8

const (
	No Answer = iota
	Yes
)

func ParseAnswer(s string) (Answer, error) {
	switch strings.TrimSpace(s) {
	case "Yes":
		return Yes, nil
	case "No":
		return No, nil
	default:
		return No, fmt.Errorf("%w: %q is not Yes or No", ErrValidation, s)
	}
}

func (a Answer) String() string {
	if a == Yes {
		return "Yes"
	}
	return "No"
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseAnswer(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// AccessGrant es la declaración de un paciente de dar acceso a un provider,
// más el acknowledgment del provider (Accepted).
type AccessGrant struct {
	ID string

	PatientWallet  string // dueño de los registros
	ProviderWallet string // quien pide acceso

	GrantAccess Answer
	Accepted    Answer

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active: acceso activo es derivado, no se guarda.
func (g AccessGrant) Active() bool {
	return g.Accepted == Yes
}
