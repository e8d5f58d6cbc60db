package app

import (
	"github.com/dmitrymomot/skiff/core/dispatcher"
	"github.com/dmitrymomot/skiff/core/logger"
	"github.com/dmitrymomot/skiff/core/server"
	"github.com/dmitrymomot/skiff/core/session"
	"github.com/dmitrymomot/skiff/core/static"
	"github.com/dmitrymomot/skiff/core/template"
)

// Config aggregates the configuration of every component the App wires.
// The database is not part of it; pass an opened pg.DB with WithDB.
type Config struct {
	Log      logger.Config
	Server   server.Config
	Session  session.Config
	Dispatch dispatcher.Config
	Static   static.Config
	Template template.Config
}
