package main

import (
	"net/http"
	"path/filepath"

	"github.com/julienschmidt/httprouter"
)

// routes returns the router with every API endpoint and the static front
// end wired up, wrapped in the standard middleware chain.
func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/api/health", app.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/api/games", app.listGamesHandler)
	router.HandlerFunc(http.MethodPost, "/api/games", app.createGameHandler)
	router.HandlerFunc(http.MethodGet, "/api/games/:id", app.showGameHandler)
	router.HandlerFunc(http.MethodPut, "/api/games/:id", app.updateGameHandler)
	router.HandlerFunc(http.MethodDelete, "/api/games/:id", app.deleteGameHandler)

	router.HandlerFunc(http.MethodGet, "/api/stats", app.statsHandler)
	router.HandlerFunc(http.MethodGet, "/api/genres", app.genresHandler)

	router.HandlerFunc(http.MethodGet, "/api/export/csv", app.exportCSVHandler)
	router.HandlerFunc(http.MethodPost, "/api/import/csv", app.importCSVHandler)

	// Browser front end.
	router.HandlerFunc(http.MethodGet, "/", app.indexHandler)
	router.ServeFiles("/static/*filepath", http.Dir(app.config.static))

	return app.recoverPanic(app.enableCORS(app.rateLimit(router)))
}

// indexHandler serves the front-end entry point.
func (app *application) indexHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(app.config.static, "index.html"))
}
