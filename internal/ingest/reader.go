package ingest

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// StreamGames iterates the top-level object of the raw dataset, invoking
// fn once per entry with the app id key and the decoded value. The input
// is consumed as a stream, so the dataset never has to fit in memory.
//
// A null value is passed through as a nil RawGame so the caller can skip
// it; fn returning an error stops the stream.
func StreamGames(r io.Reader, fn func(appID string, raw *RawGame) error) error {
	iter := jsoniter.Parse(jsoniter.ConfigCompatibleWithStandardLibrary, r, 256*1024)

	for key := iter.ReadObject(); key != ""; key = iter.ReadObject() {
		var raw *RawGame
		iter.ReadVal(&raw)

		if iter.Error != nil && iter.Error != io.EOF {
			return fmt.Errorf("decoding record %q: %w", key, iter.Error)
		}

		if err := fn(key, raw); err != nil {
			return err
		}
	}

	if iter.Error != nil && iter.Error != io.EOF {
		return fmt.Errorf("decoding dataset: %w", iter.Error)
	}

	return nil
}
