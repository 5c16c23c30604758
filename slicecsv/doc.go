// Package slicecsv partitions a CSV table into fixed-width column slices and
// decodes each slice's rows into typed records.
//
// The input is a flat CSV whose header repeats a fixed-width group of columns
// once per semantic group. With a slice width of 3:
//
//	Verbs,,,Adjectives,,
//	word1,trans1,kanji1,word2,trans2,kanji2
//
// slice 0 covers columns [0,3) and slice 1 covers columns [3,6).
//
// # Basic Usage
//
//	table, err := slicecsv.LoadFile("vocabulary.csv")
//	if err != nil {
//	    return err
//	}
//
//	dec := slicecsv.NewDecoder(3, func(row slicecsv.Row, start int) (Entry, error) {
//	    word, ok := row.Get(start)
//	    if !ok {
//	        return Entry{}, errors.New("missing word")
//	    }
//	    return Entry{Word: word, Translation: row.Field(start + 1)}, nil
//	})
//
//	entries, err := slicecsv.ParseSlice(table, dec, 0)
//
// Decoding is available in three modes: eager (ParseSlice), lazy
// (ParseSliceIter, producing records one pull at a time), and bulk
// (ParseAllSlices, one eager parse per slice index). All three share the same
// bounds validation and empty-row filtering.
//
// A Table is immutable after construction, so slices may be decoded
// concurrently without synchronization.
package slicecsv
