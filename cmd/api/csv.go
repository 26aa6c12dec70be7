package main

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/hafizmfadli/go-gamestore/internal/csv"
	"github.com/hafizmfadli/go-gamestore/internal/data"
	"github.com/hafizmfadli/go-gamestore/internal/validator"
)

// exportCSVHandler for the "GET /api/export/csv" endpoint. Streams up to
// ?limit= games (default 1000) as an attachment.
func (app *application) exportCSVHandler(w http.ResponseWriter, r *http.Request) {
	filters := data.Filters{
		Sort:     "title",
		Order:    "asc",
		Page:     1,
		PageSize: app.readInt(r.URL.Query(), "limit", 1000),
	}
	if filters.PageSize < 1 {
		filters.PageSize = 1000
	}

	games, _, err := app.models.Games.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	filename := fmt.Sprintf("games_export_%d.csv", time.Now().Unix())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(csv.Encode(games))
}

// importCSVHandler for the "POST /api/import/csv" endpoint. Each parsed
// row goes through the same normalize/validate/insert path as the admin
// form; bad rows are counted and sampled, never fatal to the batch.
func (app *application) importCSVHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CSVData string `json:"csvData"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if input.CSVData == "" {
		app.errorResponse(w, r, http.StatusBadRequest, "no CSV data provided")
		return
	}

	var storageErr error

	result := csv.Decode(input.CSVData, func(game *data.Game) error {
		game.Normalize()

		v := validator.New()
		if data.ValidateGame(v, game); !v.Valid() {
			return errors.New(validationMessage(v.Errors))
		}

		err := app.models.Games.Insert(r.Context(), game)
		if errors.Is(err, data.ErrDuplicateID) {
			return err
		}
		if err != nil {
			// A storage failure isn't a row problem; remember it so the
			// whole request can fail with a 500 below.
			storageErr = err
			return err
		}

		return nil
	})

	if storageErr != nil {
		app.serverErrorResponse(w, r, storageErr)
		return
	}

	env := envelope{
		"success": true,
		"message": fmt.Sprintf("import finished: %d games added", result.Imported),
		"data":    result,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// validationMessage flattens a validator errors map into one stable,
// human-readable string.
func validationMessage(errs map[string]string) string {
	parts := make([]string, 0, len(errs))
	for key, message := range errs {
		parts = append(parts, key+" "+message)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
