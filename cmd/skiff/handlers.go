package main

import (
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/skiff/app"
	"github.com/dmitrymomot/skiff/core/handler"
	"github.com/dmitrymomot/skiff/core/request"
	"github.com/dmitrymomot/skiff/core/response"
	"github.com/dmitrymomot/skiff/integration/database/pg"
)

const counterKey = "counter"

const createNotesTable = `CREATE TABLE IF NOT EXISTS notes (
	id BIGSERIAL PRIMARY KEY,
	body TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func isHealthCheck(req *request.Request) bool {
	return req.Path == "/live" || req.Path == "/ready"
}

func indexHandler(a *app.App) handler.HandlerFunc {
	return func(req *request.Request, _ handler.Params) (any, error) {
		return a.RenderTemplate("index.html", map[string]any{
			"counter": counterValue(sessionValue(req, counterKey)),
			"notes":   a.DB() != nil,
		})
	}
}

func helloHandler(_ *request.Request, p handler.Params) (any, error) {
	return "Hello, " + p.Get("name"), nil
}

// echoHandler returns the submitted form on POST and the query otherwise.
func echoHandler(req *request.Request, _ handler.Params) (any, error) {
	values := req.Query
	if req.Method == http.MethodPost {
		values = req.Form
	}

	var b strings.Builder
	for _, key := range slices.Sorted(maps.Keys(values)) {
		for _, v := range values[key] {
			b.WriteString(key + "=" + v + "\n")
		}
	}
	return b.String(), nil
}

func counterHandler(req *request.Request, _ handler.Params) (any, error) {
	return req.Session.Update(counterKey, func(old any, _ bool) any {
		return counterValue(old) + 1
	}), nil
}

func resetCounterHandler(req *request.Request, _ handler.Params) (any, error) {
	req.Session.Delete(counterKey)
	return response.Redirect("/", http.StatusSeeOther), nil
}

func sessionValue(req *request.Request, key string) any {
	if req.Session == nil {
		return nil
	}
	v, _ := req.Session.Get(key)
	return v
}

// counterValue reads the counter regardless of how the session store
// decoded it.
func counterValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func listNotesHandler(db *pg.DB) handler.HandlerFunc {
	return func(req *request.Request, _ handler.Params) (any, error) {
		rows, err := db.FetchAll(req.Context(), "SELECT id, body FROM notes ORDER BY id")
		if err != nil {
			return nil, err
		}
		var b strings.Builder
		for _, row := range rows {
			b.WriteString(toString(row["body"]) + "\n")
		}
		return b.String(), nil
	}
}

func createNoteHandler(db *pg.DB) handler.HandlerFunc {
	return func(req *request.Request, _ handler.Params) (any, error) {
		body := strings.TrimSpace(req.Form.Get("body"))
		if body == "" {
			return response.TextWithStatus("body is required", http.StatusBadRequest), nil
		}
		if err := db.Execute(req.Context(), "INSERT INTO notes (body) VALUES ($1)", []any{body}, true); err != nil {
			return nil, err
		}
		return response.Redirect("/notes", http.StatusSeeOther), nil
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
