package main

import "net/http"

// excludedGenres lists genres hidden from the genre dropdown. Empty for
// now; exclusion is matched case-insensitively in the model.
var excludedGenres = []string{}

// statsHandler for the "GET /api/stats" endpoint.
func (app *application) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.models.Stats.Overview(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": stats}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// genresHandler for the "GET /api/genres" endpoint. Returns every
// distinct genre, sorted, with stored casing preserved.
func (app *application) genresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := app.models.Games.Genres(r.Context(), excludedGenres)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": genres}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
