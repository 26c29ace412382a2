package accessgrants

import "context"

// Repository es el grant record store. Es el único dueño de los AccessGrant:
// lo que devuelve son copias.
//
// Los lookups que no encuentran nada devuelven found=false sin error.
// Insert asigna ID, CreatedAt y UpdatedAt; si el store detecta la tripleta
// (patient, provider, grantAccess) repetida devuelve ErrConflict.
type Repository interface {
	FindExact(ctx context.Context, patientWallet, providerWallet string, grantAccess Answer) (AccessGrant, bool, error)
	Insert(ctx context.Context, g AccessGrant) (AccessGrant, error)
	GetByID(ctx context.Context, id string) (AccessGrant, bool, error)
	FindByPatient(ctx context.Context, patientWallet string) ([]AccessGrant, error)
	FindByProvider(ctx context.Context, providerWallet string) ([]AccessGrant, error)
	UpdateAccepted(ctx context.Context, id string) (AccessGrant, bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
