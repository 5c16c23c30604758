// Package csvtoanki converts a column-partitioned CSV vocabulary file into
// Anki flashcards through the AnkiConnect local HTTP API.
//
// The input is a flat CSV whose header repeats one topic per fixed-width
// column group, with rows following the pattern word, translation, kanji:
//
//	Verbs,,,Adjectives,,
//	おどろく,to be surprised,驚く,はやい,fast,早い
//	みえる,able to see,見える,おそい,slow,遅い
//
// # Basic Usage
//
// Parsing a spreadsheet into topics:
//
//	topics, err := csvtoanki.ParseTopics("vocabulary.csv")
//
// Importing it into a deck (Anki must be running with AnkiConnect):
//
//	summary, err := csvtoanki.Import(ctx, "vocabulary.csv", "Japanese")
//	fmt.Println(summary) // e.g. "42 added, 3 duplicates, 0 errors"
//
// # Package Structure
//
// This package provides convenient top-level wrappers for the common path.
// For fine-grained control use the subpackages directly: slicecsv (the
// reusable column-slice partitioner), vocab (the spreadsheet's record types
// and topic parsing), anki (the AnkiConnect client), and importer (deck
// setup and partial-success import).
package csvtoanki

import (
	"context"

	"github.com/Lindamust/csv-to-anki/importer"
	"github.com/Lindamust/csv-to-anki/slicecsv"
	"github.com/Lindamust/csv-to-anki/vocab"
)

// ParseTopics loads a vocabulary CSV (plain, .gz, or .zst) and decodes every
// named topic eagerly with default settings.
func ParseTopics(path string, opts ...slicecsv.Option) ([]vocab.Topic, error) {
	return vocab.ParseTopicsFile(path, opts...)
}

// Import parses the vocabulary file and imports every topic into the named
// deck on the default AnkiConnect endpoint. It returns the partial-success
// tally; per-note rejections are tallied, not fatal.
func Import(ctx context.Context, path, deck string, opts ...importer.Option) (importer.Summary, error) {
	topics, err := ParseTopics(path)
	if err != nil {
		return importer.Summary{}, err
	}

	imp, err := importer.New(deck, opts...)
	if err != nil {
		return importer.Summary{}, err
	}
	if err := imp.InitTopics(ctx, topics); err != nil {
		return importer.Summary{}, err
	}

	return imp.ImportTopics(ctx, topics)
}
