package main

import (
	"errors"
	"net/http"

	"github.com/hafizmfadli/go-gamestore/internal/data"
	"github.com/hafizmfadli/go-gamestore/internal/validator"
)

// listGamesHandler for the "GET /api/games" endpoint. Supports free-text
// search, genre/price/date/score filters, sorting and pagination.
func (app *application) listGamesHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filters := data.Filters{
		Search:   app.readString(qs, "search", ""),
		Genre:    app.readString(qs, "genre", ""),
		Sort:     app.readString(qs, "sort", "title"),
		Order:    app.readString(qs, "order", "asc"),
		Page:     app.readInt(qs, "page", 1),
		PageSize: app.readInt(qs, "limit", 20),
		PriceMin: app.readFloat(qs, "priceMin"),
		PriceMax: app.readFloat(qs, "priceMax"),
		DateMin:  app.readString(qs, "dateMin", ""),
		DateMax:  app.readString(qs, "dateMax", ""),
		ScoreMin: app.readFloat(qs, "scoreMin"),
		ScoreMax: app.readFloat(qs, "scoreMax"),
	}
	filters.Normalize()

	games, metadata, err := app.models.Games.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"success":    true,
		"data":       games,
		"pagination": metadata,
		"filters":    filters,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showGameHandler for the "GET /api/games/:id" endpoint.
func (app *application) showGameHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.gameNotFoundResponse(w, r)
		return
	}

	game, err := app.models.Games.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.gameNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": game}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createGameHandler for the "POST /api/games" endpoint. The admin form
// submits list fields as comma-separated strings and numbers as strings,
// so the input struct leans on the loose decoding types.
func (app *application) createGameHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID              string          `json:"id"`
		Title           string          `json:"title"`
		PositiveVotes   data.Count      `json:"positiveVotes"`
		NegativeVotes   data.Count      `json:"negativeVotes"`
		Price           data.Price      `json:"price"`
		ReleaseDate     string          `json:"releaseDate"`
		Tags            data.StringList `json:"tags"`
		Genres          data.StringList `json:"genres"`
		Categories      data.StringList `json:"categories"`
		Developers      data.StringList `json:"developers"`
		Publishers      data.StringList `json:"publishers"`
		Languages       data.StringList `json:"languages"`
		Description     string          `json:"description"`
		HeaderImage     string          `json:"headerImage"`
		MetacriticScore *float64        `json:"metacriticScore"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	game := &data.Game{
		ID:              input.ID,
		Title:           input.Title,
		PositiveVotes:   int(input.PositiveVotes),
		NegativeVotes:   int(input.NegativeVotes),
		Price:           input.Price.Ptr(),
		ReleaseDate:     input.ReleaseDate,
		Tags:            input.Tags,
		Genres:          input.Genres,
		Categories:      input.Categories,
		Developers:      input.Developers,
		Publishers:      input.Publishers,
		Languages:       input.Languages,
		Description:     input.Description,
		HeaderImage:     input.HeaderImage,
		MetacriticScore: input.MetacriticScore,
	}
	game.Normalize()

	v := validator.New()
	if data.ValidateGame(v, game); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Games.Insert(r.Context(), game)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateID):
			app.errorResponse(w, r, http.StatusBadRequest, "a game with this id already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	env := envelope{
		"success": true,
		"message": "game added successfully",
		"data":    game,
	}

	err = app.writeJSON(w, http.StatusCreated, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateGameHandler for the "PUT /api/games/:id" endpoint. This is a
// partial update: only supplied fields change, and the vote pair is
// re-derived together whenever either count is touched.
func (app *application) updateGameHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.gameNotFoundResponse(w, r)
		return
	}

	var update data.GameUpdate

	err = app.readJSON(w, r, &update)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if update.Validate(v); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	existing, err := app.models.Games.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.gameNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.models.Games.Update(r.Context(), id, update.SetFields(existing))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.gameNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	game, err := app.models.Games.Get(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"success": true,
		"message": "game updated successfully",
		"data":    game,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteGameHandler for the "DELETE /api/games/:id" endpoint.
func (app *application) deleteGameHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.gameNotFoundResponse(w, r)
		return
	}

	err = app.models.Games.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.gameNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	env := envelope{
		"success": true,
		"message": "game deleted successfully",
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
