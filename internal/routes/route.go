package routes

import (
	"net/http"

	"election-bknd/internal/auth"
	"election-bknd/internal/cache"
	"election-bknd/internal/config"
	"election-bknd/internal/handlers"
	"election-bknd/internal/logger"
	mdlwr "election-bknd/internal/middleware"
	"election-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/uptrace/bun"
)

// NewRouter wires the HTTP surface. Reads are public, every mutation goes
// through JWT auth; the per-scope authorization decision itself lives in the
// services, not here.
func NewRouter(db *bun.DB, cfg *config.Config, logr *logger.Logger, jwtMgr *auth.JWTManager, inv *cache.Invalidator) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// CORS middleware with config
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authSvc := services.NewAuthService(db, jwtMgr, cfg, logr)
	userSvc := services.NewUserService(db, logr)
	candidateSvc := services.NewCandidateService(db, inv, logr)
	armyCampSvc := services.NewArmyCampService(db, inv, logr)
	updateSvc := services.NewUpdateService(db, inv, logr)
	pollingSvc := services.NewPollingService(db, inv, logr)
	mapSvc := services.NewMapService(db, inv, logr)

	authMW := mdlwr.NewAuthMiddleware(jwtMgr, authSvc, logr.Logger)

	authHandler := handlers.NewAuthHandler(authSvc, logr)
	userHandler := handlers.NewUserHandler(userSvc, logr.Logger)
	districtHandler := handlers.NewDistrictHandler()
	candidateHandler := handlers.NewCandidateHandler(candidateSvc, logr.Logger)
	armyCampHandler := handlers.NewArmyCampHandler(armyCampSvc, logr.Logger)
	updateHandler := handlers.NewUpdateHandler(updateSvc, logr.Logger)
	pollingHandler := handlers.NewPollingHandler(pollingSvc, logr.Logger)
	mapHandler := handlers.NewMapHandler(mapSvc, logr.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ok"))
		if err != nil {
			return
		}
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Superadmin user management. The superadmin check is in the service.
		r.Route("/admin/users", func(r chi.Router) {
			r.Use(authMW.JWTAuth)
			r.Get("/", userHandler.ListUsers)
			r.Put("/{id}/role", userHandler.SetRole)
			r.Delete("/{id}", userHandler.DeleteUser)
		})

		// Division-wide landing map.
		r.Route("/map", func(r chi.Router) {
			r.Get("/", mapHandler.GetMainMap)
			r.Group(func(r chi.Router) {
				r.Use(authMW.JWTAuth)
				r.Put("/", mapHandler.UpsertMainMap)
				r.Delete("/", mapHandler.DeleteMainMap)
			})
		})

		r.Route("/districts", func(r chi.Router) {
			r.Get("/", districtHandler.List)

			r.Route("/{districtId}", func(r chi.Router) {
				r.Get("/", districtHandler.Get)

				r.Route("/map", func(r chi.Router) {
					r.Get("/", mapHandler.GetDistrictMap)
					r.Group(func(r chi.Router) {
						r.Use(authMW.JWTAuth)
						r.Put("/", mapHandler.UpsertDistrictMap)
						r.Delete("/", mapHandler.DeleteDistrictMap)
					})
				})

				r.Route("/candidates", func(r chi.Router) {
					r.Get("/", candidateHandler.List)
					r.With(authMW.JWTAuth).Post("/", candidateHandler.Create)
				})

				r.Route("/army-camps", func(r chi.Router) {
					r.Get("/", armyCampHandler.List)
					r.With(authMW.JWTAuth).Post("/", armyCampHandler.Create)
				})

				r.Route("/updates", func(r chi.Router) {
					r.Get("/", updateHandler.List)
					r.Get("/critical-count", updateHandler.CriticalCount)
					r.With(authMW.JWTAuth).Post("/", updateHandler.Create)
				})

				r.Route("/upazilas/{upazilaId}", func(r chi.Router) {
					r.Route("/map", func(r chi.Router) {
						r.Get("/", mapHandler.GetUpazilaMap)
						r.Group(func(r chi.Router) {
							r.Use(authMW.JWTAuth)
							r.Put("/", mapHandler.UpsertUpazilaMap)
							r.Delete("/", mapHandler.DeleteUpazilaMap)
						})
					})

					r.Route("/polling", func(r chi.Router) {
						r.Get("/", pollingHandler.List)
						r.With(authMW.JWTAuth).Post("/", pollingHandler.Create)
					})
				})
			})
		})

		// Mutations addressed by record id. The owning scope rides along as a
		// query param on deletes; updates re-derive it from the stored row.
		r.Group(func(r chi.Router) {
			r.Use(authMW.JWTAuth)

			r.Put("/candidates/{id}", candidateHandler.Update)
			r.Delete("/candidates/{id}", candidateHandler.Delete)

			r.Put("/army-camps/{id}", armyCampHandler.Update)
			r.Delete("/army-camps/{id}", armyCampHandler.Delete)

			r.Put("/updates/{id}", updateHandler.Update)
			r.Delete("/updates/{id}", updateHandler.Delete)

			r.Put("/polling/{id}", pollingHandler.Update)
			r.Delete("/polling/{id}", pollingHandler.Delete)
		})
	})

	return r
}
