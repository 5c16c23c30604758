// Package vocab models the vocabulary spreadsheet this module was written
// for: a CSV whose header holds one topic name per three columns, with rows
// following the pattern word, translation, kanji across every topic group.
package vocab

import (
	"errors"

	"github.com/Lindamust/csv-to-anki/slicecsv"
)

// WordColumns is the number of columns one Word occupies in the spreadsheet.
const WordColumns = 3

// Word is a single vocabulary entry: the word in kana, its English
// translation, and the kanji writing (often empty for kana-only words).
type Word struct {
	Japanese string
	English  string
	Kanji    string
}

var (
	errMissingJapanese = errors.New("missing japanese field")
	errMissingEnglish  = errors.New("missing english field")
	errMissingKanji    = errors.New("missing kanji field")
)

// WordDecoder decodes one Word from a width-3 column slice. Absent cells
// fail; present-but-empty cells decode to the empty string. Spreadsheets
// routinely leave translation or kanji cells blank, so emptiness is the
// decoder's problem only when the cell does not exist at all.
func WordDecoder() slicecsv.Decoder[Word] {
	return slicecsv.NewDecoder(WordColumns, decodeWord)
}

func decodeWord(row slicecsv.Row, start int) (Word, error) {
	japanese, ok := row.Get(start)
	if !ok {
		return Word{}, errMissingJapanese
	}

	english, ok := row.Get(start + 1)
	if !ok {
		return Word{}, errMissingEnglish
	}

	kanji, ok := row.Get(start + 2)
	if !ok {
		return Word{}, errMissingKanji
	}

	return Word{Japanese: japanese, English: english, Kanji: kanji}, nil
}
