// Package csv implements the catalog's CSV interchange format: a fixed
// 12-column schema with semicolon-joined list fields and RFC-4180 style
// quoting. Parsing is deliberately hand-rolled so malformed rows can be
// skipped one at a time instead of aborting the batch.
package csv

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/hafizmfadli/go-gamestore/internal/data"
)

// Header is the fixed column schema. The totalVotes column is written on
// export but ignored on import and recomputed from the vote counts.
const Header = "id,title,positiveVotes,negativeVotes,totalVotes,price,releaseDate,genres,tags,developers,publishers,description"

const maxErrorSamples = 10

// Result accumulates the outcome of an import: how many rows were
// stored, how many failed, how many were seen, and up to ten samples
// describing the failures.
type Result struct {
	Imported int        `json:"imported"`
	Errors   int        `json:"errors"`
	Total    int        `json:"total"`
	Samples  []RowError `json:"errorDetails"`
}

// RowError is one retained import failure: an excerpt of the offending
// row plus the reason it was rejected.
type RowError struct {
	Row    string `json:"row"`
	Reason string `json:"reason"`
}

// Encode renders the games as a CSV document, header row first. List
// fields are joined with semicolons, null numerics render empty, and any
// newlines inside the description are collapsed to spaces.
func Encode(games []data.Game) []byte {
	var buf bytes.Buffer

	buf.WriteString(Header)
	buf.WriteByte('\n')

	for i, g := range games {
		if i > 0 {
			buf.WriteByte('\n')
		}

		price := ""
		if g.Price != nil {
			price = strconv.FormatFloat(*g.Price, 'f', -1, 64)
		}

		description := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(g.Description)

		fields := []string{
			g.ID,
			g.Title,
			strconv.Itoa(g.PositiveVotes),
			strconv.Itoa(g.NegativeVotes),
			strconv.Itoa(g.TotalVotes),
			price,
			g.ReleaseDate,
			strings.Join(g.Genres, ";"),
			strings.Join(g.Tags, ";"),
			strings.Join(g.Developers, ";"),
			strings.Join(g.Publishers, ";"),
			description,
		}

		for j, field := range fields {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quote(field))
		}
	}

	buf.WriteByte('\n')
	return buf.Bytes()
}

// quote wraps a field in double quotes when it contains a separator,
// a quote or a line break, doubling any embedded quotes.
func quote(field string) string {
	if !strings.ContainsAny(field, `,"`+"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// Decode parses CSV text and feeds each decoded row through add, which
// is the same path interactive creation uses, so title validation and
// default filling apply uniformly. One bad row never aborts the batch:
// failures are counted and sampled into the result instead.
func Decode(text string, add func(*data.Game) error) Result {
	var result Result
	result.Samples = []RowError{}

	lines := strings.Split(text, "\n")

	header := true
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header {
			header = false
			continue
		}

		result.Total++

		fields := ParseLine(line)
		if len(fields) < 2 {
			continue
		}

		game := rowToGame(fields)

		if err := add(game); err != nil {
			result.Errors++
			if len(result.Samples) < maxErrorSamples {
				result.Samples = append(result.Samples, RowError{
					Row:    excerpt(line, 50),
					Reason: err.Error(),
				})
			}
			continue
		}

		result.Imported++
	}

	return result
}

// rowToGame maps positional fields onto a game. Missing trailing columns
// and malformed numerics fall back to the declared defaults; the
// totalVotes column is ignored and recomputed on create.
func rowToGame(fields []string) *data.Game {
	at := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	game := &data.Game{
		ID:            at(0),
		Title:         at(1),
		PositiveVotes: atoiOrZero(at(2)),
		NegativeVotes: atoiOrZero(at(3)),
		ReleaseDate:   at(6),
		Genres:        data.SplitList(at(7), ";"),
		Tags:          data.SplitList(at(8), ";"),
		Developers:    data.SplitList(at(9), ";"),
		Publishers:    data.SplitList(at(10), ";"),
		Description:   at(11),
	}

	if price, err := strconv.ParseFloat(at(5), 64); err == nil && price >= 0 {
		game.Price = &price
	}

	return game
}

// ParseLine splits one CSV row into fields, honoring double-quoted
// segments: a comma inside quotes is not a separator and a doubled quote
// inside quotes is a literal quote. Fields are trimmed of surrounding
// whitespace.
func ParseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func excerpt(line string, max int) string {
	if len(line) <= max {
		return line
	}
	return line[:max]
}
