package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mvisser/banknote/internal/http/batch"
	"github.com/mvisser/banknote/internal/http/exception"
	"github.com/mvisser/banknote/internal/http/importcsv"
	"github.com/mvisser/banknote/internal/http/report"
	"github.com/mvisser/banknote/internal/http/rules"
)

func New(
	importV1 *importcsv.Handler,
	batchesV1 *batch.Handler,
	reportsV1 *report.Handler,
	rulesV1 *rules.Handler,
	exceptionsV1 *exception.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/import", importV1.Routes)
		r.Route("/batches", batchesV1.Routes)
		r.Route("/reports", reportsV1.Routes)

		r.Route("/rules", rulesV1.Routes)

		r.Route("/exceptions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			exceptionsV1.Routes(r)
		})
	})

	return router
}
