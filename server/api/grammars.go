package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dekarrin/slrgen/internal/grammar"
	"github.com/dekarrin/slrgen/internal/slrbuild"
	"github.com/dekarrin/slrgen/internal/store"
	"github.com/dekarrin/slrgen/server/result"
	"github.com/google/uuid"
)

// GrammarSubmission is the request body of POST /api/v1/grammars.
type GrammarSubmission struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// GrammarModel is the response body describing a saved grammar, with its
// table rendered as text when the build succeeded.
type GrammarModel struct {
	ID      uuid.UUID           `json:"id"`
	Name    string              `json:"name"`
	Source  string              `json:"source"`
	Summary *store.BuildSummary `json:"summary,omitempty"`
	Table   string              `json:"table,omitempty"`
	Created time.Time           `json:"created"`
}

func toGrammarModel(rec store.GrammarRecord) GrammarModel {
	return GrammarModel{
		ID:      rec.ID,
		Name:    rec.Name,
		Source:  rec.Source,
		Summary: rec.Summary,
		Created: rec.Created,
	}
}

// HTTPPostGrammar returns the handler for POST /api/v1/grammars: submit
// grammar source, build its SLR table, and save both.
func (api API) HTTPPostGrammar() http.HandlerFunc {
	return api.Endpoint(api.epPostGrammar)
}

func (api API) epPostGrammar(req *http.Request) result.Result {
	var body GrammarSubmission
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest("Request body is malformed", err.Error())
	}
	if body.Name == "" {
		return result.BadRequest("name is required")
	}

	table, buildErr := slrbuild.Build(body.Source)

	rec := store.GrammarRecord{Name: body.Name, Source: body.Source}
	if buildErr == nil {
		rec.Summary = slrbuild.Summarize(table)
	}

	created, err := api.DB.Grammars().Create(req.Context(), rec)
	if err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			return result.Conflict("A grammar with that name already exists", err.Error())
		}
		return result.InternalServerError("create grammar: %s", err.Error())
	}

	model := toGrammarModel(created)
	if buildErr != nil {
		model.Table = "(build failed: " + buildErr.Error() + ")"
		return result.Created(model, "created grammar %q with a failed build", created.Name)
	}

	model.Table = grammar.DisplayTable(table)
	return result.Created(model, "created and built grammar %q", created.Name)
}

// HTTPGetGrammars returns the handler for GET /api/v1/grammars.
func (api API) HTTPGetGrammars() http.HandlerFunc {
	return api.Endpoint(api.epGetGrammars)
}

func (api API) epGetGrammars(req *http.Request) result.Result {
	all, err := api.DB.Grammars().GetAll(req.Context())
	if err != nil {
		return result.InternalServerError("list grammars: %s", err.Error())
	}

	models := make([]GrammarModel, len(all))
	for i, rec := range all {
		models[i] = toGrammarModel(rec)
	}
	return result.OK(models, "listed %d grammars", len(models))
}

// HTTPGetGrammar returns the handler for GET /api/v1/grammars/{id}.
func (api API) HTTPGetGrammar() http.HandlerFunc {
	return api.Endpoint(api.epGetGrammar)
}

func (api API) epGetGrammar(req *http.Request) result.Result {
	id := requireIDParam(req)

	rec, err := api.DB.Grammars().GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return result.NotFound(err.Error())
		}
		return result.InternalServerError("get grammar: %s", err.Error())
	}

	return result.OK(toGrammarModel(rec), "fetched grammar %q", rec.Name)
}

// HTTPGetGrammarTable returns the handler for GET /api/v1/grammars/{id}/table:
// re-runs the build against the stored source and returns the rendered
// ACTION/GOTO table.
func (api API) HTTPGetGrammarTable() http.HandlerFunc {
	return api.Endpoint(api.epGetGrammarTable)
}

func (api API) epGetGrammarTable(req *http.Request) result.Result {
	id := requireIDParam(req)

	rec, err := api.DB.Grammars().GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return result.NotFound(err.Error())
		}
		return result.InternalServerError("get grammar: %s", err.Error())
	}

	table, err := slrbuild.Build(rec.Source)
	if err != nil {
		return result.BadRequest("Grammar does not build: "+err.Error(), "rebuild grammar %q: %s", rec.Name, err.Error())
	}

	return result.Response(http.StatusOK, struct {
		Table string `json:"table"`
	}{Table: grammar.DisplayTable(table)}, "rebuilt table for grammar %q", rec.Name)
}

// HTTPDeleteGrammar returns the handler for DELETE /api/v1/grammars/{id}.
func (api API) HTTPDeleteGrammar() http.HandlerFunc {
	return api.Endpoint(api.epDeleteGrammar)
}

func (api API) epDeleteGrammar(req *http.Request) result.Result {
	id := requireIDParam(req)

	_, err := api.DB.Grammars().Delete(req.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return result.NotFound(err.Error())
		}
		return result.InternalServerError("delete grammar: %s", err.Error())
	}

	return result.NoContent("deleted grammar %s", id)
}
