// Package api provides HTTP API endpoints for the slrgen server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/slrgen/internal/store"
	"github.com/dekarrin/slrgen/server/result"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	// PathPrefix is the prefix of all paths in the API. Routers should mount
	// a sub-router that routes all requests to the API at this path.
	PathPrefix = "/api/v1"
)

// API holds the persistence layer the endpoints call into and the settings
// that apply across all of them. Create one and assign its HTTP* methods as
// handlers on a chi router.
type API struct {
	// DB is the store the endpoints read and write saved grammars through.
	DB store.Store

	// UnauthDelay is how long a request pauses before responding with an
	// HTTP-401 or HTTP-500, to deprioritize processing and I/O for such
	// requests.
	UnauthDelay time.Duration
}

func requireIDParam(r *http.Request) uuid.UUID {
	id, err := getURLParam(r, "id", uuid.Parse)
	if err != nil {
		panic(err.Error())
	}
	return id
}

func getURLParam[E any](r *http.Request, key string, parse func(string) (E, error)) (val E, err error) {
	valStr := chi.URLParam(r, key)
	if valStr == "" {
		return val, fmt.Errorf("parameter does not exist")
	}
	val, err = parse(valStr)
	if err != nil {
		return val, fmt.Errorf("parameter %q is invalid: %w", key, err)
	}
	return val, nil
}

// parseJSON decodes req's JSON body into v, which must be a pointer. The
// body is restored afterward so later middleware can still read it.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return fmt.Errorf("malformed JSON in request: %w", err)
	}
	return nil
}

// EndpointFunc is a single API operation, decoupled from how its result gets
// written to the wire.
type EndpointFunc func(req *http.Request) result.Result

// Endpoint adapts an EndpointFunc into an http.HandlerFunc: it calls ep,
// logs the result, optionally applies the API's UnauthDelay, and writes the
// response.
func (api API) Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r := ep(req)

		if r.Status == 0 {
			panic("endpoint result was never populated")
		}

		if err := r.PrepareMarshaledResponse(); err != nil {
			newResp := result.InternalServerError("could not marshal JSON response: %s", err.Error())
			newResp.WriteResponse(w)
			newResp.Log(req)
			return
		}

		r.Log(req)

		if r.Status == http.StatusUnauthorized || r.Status == http.StatusInternalServerError {
			time.Sleep(api.UnauthDelay)
		}

		r.WriteResponse(w)
	}
}
