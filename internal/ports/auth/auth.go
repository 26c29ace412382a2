package auth

import "context"

// Claims es la identidad del caller extraída del token (o del header dev).
// Wallet es opaco: nunca se valida formato más allá de no estar vacío.
type Claims struct {
	Wallet string
	Role   string
}

// AuthVerifier valida un bearer token y devuelve quién es el caller.
// Un error significa token inválido; el middleware lo trata como anónimo.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
