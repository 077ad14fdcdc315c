// Package server assembles the slrgen HTTP API into a runnable server.
package server

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dekarrin/slrgen/internal/store"
	"github.com/dekarrin/slrgen/internal/store/inmem"
	"github.com/dekarrin/slrgen/internal/store/sqlite"
	"github.com/dekarrin/slrgen/server/api"
	"github.com/dekarrin/slrgen/server/middle"
	"github.com/go-chi/chi/v5"
)

// UnauthDelay is how long an unauthorized or failed request is held before its
// response is written, to deprioritize bad actors relative to normal traffic.
const UnauthDelay = 1 * time.Second

// Server is a fully configured slrgen HTTP server, ready to accept
// connections via ServeForever.
type Server struct {
	router http.Handler
	db     store.Store
}

// New creates a new Server. secret is the static bearer-token signing secret;
// it must be non-empty. dbPath selects the persistence backend: an empty
// string uses an in-memory store, while a non-empty string opens (creating if
// needed) a sqlite database in that directory.
func New(secret []byte, dbPath string) (*Server, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token secret must not be empty")
	}

	var db store.Store
	if dbPath == "" {
		db = inmem.NewDatastore()
	} else {
		var err error
		db, err = sqlite.NewDatastore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite store: %w", err)
		}
	}

	a := api.API{
		DB:          db,
		UnauthDelay: UnauthDelay,
	}

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.Get("/info", a.HTTPGetInfo())

		r.Group(func(r chi.Router) {
			r.Use(middle.RequireBearer(secret, UnauthDelay))

			r.Route("/grammars", func(r chi.Router) {
				r.Post("/", a.HTTPPostGrammar())
				r.Get("/", a.HTTPGetGrammars())

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", a.HTTPGetGrammar())
					r.Delete("/", a.HTTPDeleteGrammar())
					r.Get("/table", a.HTTPGetGrammarTable())
				})
			})
		})
	})

	return &Server{router: r, db: db}, nil
}

// Close releases the resources held by the server's persistence layer.
func (s *Server) Close() error {
	return s.db.Close()
}

// ServeForever begins listening for and serving HTTP requests on addr:port.
// It blocks until the server stops listening, returning the error that
// caused it to stop.
func (s *Server) ServeForever(addr string, port int) error {
	listenOn := net.JoinHostPort(addr, strconv.Itoa(port))
	log.Printf("INFO  Listening on %s", listenOn)
	return http.ListenAndServe(listenOn, s.router)
}
