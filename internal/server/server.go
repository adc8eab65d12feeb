// Package server Engagement
//
// The Engagement service provides posts with live engagement counters and
// registers likes on posts.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	mm "github.com/debook/engagement/internal/middleware"
	"github.com/debook/engagement/internal/service"
)

var log = logrus.WithField("package", "server")

type server struct {
	s service.Service
}

// SetupRouter setups handlers to chi router. It owns the whole wiring order:
// chi requires all middlewares to be defined before any route.
func SetupRouter(s service.Service, r chi.Router, timeout time.Duration, health http.HandlerFunc) {
	r.Use(
		mm.Logger,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(timeout),
	)

	srv := server{
		s: s,
	}

	r.Get("/health", health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/posts/{id}", srv.getPost)
		r.Post("/posts/{id}/like", srv.createLike)
	})
}

func writeOK(w http.ResponseWriter, status int, v interface{}) {
	body, _ := json.Marshal(v)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body) // nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeOK(w, status, Error{Error: message})
}

func writeInternalError(w http.ResponseWriter, message string) {
	log.Error(message)
	writeError(w, http.StatusInternalServerError, "internal error")
}
