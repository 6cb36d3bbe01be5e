package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (c controller) Mux() http.Handler {
	r := chi.NewRouter()

	r.Use(c.requestIDMw)
	r.Use(c.requestLoggingMw)

	r.Route("/api", func(r chi.Router) {
		r.Post("/rooms", c.createRoom)
		r.Get("/rooms/{roomID}", c.getRoom)
		r.Post("/submissions", c.submit)

		r.Route("/host", func(r chi.Router) {
			r.Post("/load", c.load)
			r.Post("/pause", c.pause)
			r.Post("/stop", c.stop)
			r.Get("/queue", c.listQueue)
			r.Post("/submissions/{submissionID}/approve", c.approve)
			r.Post("/submissions/{submissionID}/reject", c.reject)
		})
	})

	return r
}
