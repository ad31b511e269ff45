package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	electionHandler *ElectionHandler,
	ballotHandler *BallotHandler,
	resultsHandler *ResultsHandler,
	adminHandler *AdminHandler,
	adminPIN string,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/election", electionHandler.GetElection)
		r.Get("/device", ballotHandler.GetDevice)
		r.Get("/results", resultsHandler.GetResults)

		r.Post("/ballots", ballotHandler.SubmitBallot)

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdminPIN(adminPIN))
			r.Get("/export", adminHandler.Export)
			r.Post("/import", adminHandler.Import)
			r.Post("/clear", adminHandler.ClearAll)
			r.Post("/reset-voted", adminHandler.ResetVoted)
			r.Post("/samples", adminHandler.SeedSamples)
		})
	})

	return r
}
