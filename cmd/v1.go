package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/p-sree-sai-pavan/CFSpeed/middleware"
)

func NewV1Router(jwtSecret []byte) *chi.Mux {
	v1 := chi.NewRouter()

	v1.Get("/healthz", apiConfig.HandlerReadiness)
	v1.Get("/stages", apiConfig.HandlerGetStages)

	// extension layer, authenticated by its own token
	v1.Post("/extension/sync", apiConfig.HandlerExtensionSync)

	// catalog layer, anonymous callers get an empty solved set
	v1.Group(func(r chi.Router) {
		r.Use(middleware.OptionalJWTMiddleware(jwtSecret))
		r.Get("/problems", apiConfig.HandlerListProblems)
		r.Get("/problems/next", apiConfig.HandlerNextProblem)
	})

	// user layer
	v1.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware(jwtSecret))
		r.Get("/me", apiConfig.HandlerGetMe)
		r.Post("/cf/link", apiConfig.HandlerLinkHandle)
		r.Post("/cf/sync", apiConfig.HandlerSyncSolved)
		r.Post("/extension/token", apiConfig.HandlerIssueExtensionToken)
	})

	return v1
}
