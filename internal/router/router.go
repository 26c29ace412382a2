package router

import (
	"database/sql"
	"net/http"

	_ "health-records-access/docs"
	mem "health-records-access/internal/adapters/storage/memory"
	pg "health-records-access/internal/adapters/storage/postgres"
	"health-records-access/internal/domain/accessgrants"
	"health-records-access/internal/domain/profiles"
	"health-records-access/internal/middleware"
	"health-records-access/internal/platform/logger"
	"health-records-access/internal/ports/auth"
	"health-records-access/internal/ports/identity"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const maxRequestBody = 1 << 20

type RateLimit struct {
	RPS   float64 // <= 0 desactiva
	Burst int
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Registry de identidad. Opcional: sin él no hay /api/identity ni perfiles en /requests.
	Registry identity.Registry
	// EnforceRoles exige patient/provider registrados al crear grants (requiere Registry).
	EnforceRoles bool

	// Storage: Grants (p.ej. el store mongo ya indexado), o DB (Postgres). Si no, in-memory.
	Grants accessgrants.Repository
	DB     *sql.DB

	Logger       logger.Logger
	RevokePolicy accessgrants.RevokePolicy
	RateLimit    RateLimit

	// CORSOrigins vacío o con "*" = cualquier origen.
	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	metrics := middleware.NewMetrics()
	limiter := middleware.NewRateLimiter(opts.RateLimit.RPS, opts.RateLimit.Burst)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.Instrument)
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(limiter.Middleware)
	r.Use(middleware.MaxBodyBytes(maxRequestBody))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	grantsRepo := selectGrantsRepo(opts)

	svcOpts := []accessgrants.Option{
		accessgrants.WithLogger(log.With(map[string]any{"module": "accessgrants"})),
		accessgrants.WithRevokePolicy(opts.RevokePolicy),
	}
	if opts.AuthVerifier != nil {
		// Con tokens, un caller sin token válido no puede mutar grants.
		svcOpts = append(svcOpts, accessgrants.WithCallerRequired())
	}
	if opts.EnforceRoles && opts.Registry != nil {
		svcOpts = append(svcOpts, accessgrants.WithRoleLookup(opts.Registry))
	}

	grantsSvc := accessgrants.NewService(grantsRepo, svcOpts...)
	grantsQuery := accessgrants.NewQueryService(grantsRepo)

	var patients accessgrants.PatientDirectory
	if opts.Registry != nil {
		patients = opts.Registry
	}

	accessgrants.NewHandler(grantsSvc, grantsQuery, patients, log).RegisterRoutes(r)
	profiles.RegisterRoutes(r, opts.Registry, log)

	return r
}

func selectGrantsRepo(opts Options) accessgrants.Repository {
	switch {
	case opts.Grants != nil:
		return opts.Grants
	case opts.DB != nil:
		return pg.NewAccessGrantsRepo(opts.DB)
	default:
		return mem.NewAccessGrantsRepo()
	}
}
