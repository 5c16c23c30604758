package vocab

import (
	"iter"
	"strings"

	"github.com/Lindamust/csv-to-anki/slicecsv"
)

// Topic is one column slice of the spreadsheet: the topic name from the
// slice's first header cell plus every decoded word beneath it.
type Topic struct {
	Name  string
	Words []Word
}

// topicName returns the trimmed name of the slice at index, which is the
// first header cell of the slice's column range.
func topicName(t *slicecsv.Table, index int) string {
	names, ok := t.SliceHeaders(index, WordColumns)
	if !ok || len(names) == 0 {
		return ""
	}

	return strings.TrimSpace(names[0])
}

// ParseTopics eagerly decodes every topic in the table. Slices whose topic
// name is empty are dropped before any row is looked at; row filtering
// applies only to the slices that survive the name check.
func ParseTopics(t *slicecsv.Table) ([]Topic, error) {
	dec := WordDecoder()
	count := t.SliceCount(WordColumns)
	topics := make([]Topic, 0, count)
	for i := 0; i < count; i++ {
		name := topicName(t, i)
		if name == "" {
			continue
		}

		words, err := slicecsv.ParseSlice(t, dec, i)
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Words: words})
	}

	return topics, nil
}

// ParseTopicsFile loads path and delegates to ParseTopics.
func ParseTopicsFile(path string, opts ...slicecsv.Option) ([]Topic, error) {
	table, err := slicecsv.LoadFile(path, opts...)
	if err != nil {
		return nil, err
	}

	return ParseTopics(table)
}

// TopicSlice is the lazy counterpart of Topic: it knows its name and slice
// index but decodes words only when Words is consumed.
type TopicSlice struct {
	name  string
	table *slicecsv.Table
	index int
}

// Name returns the topic's name.
func (ts TopicSlice) Name() string {
	return ts.name
}

// Words returns a lazy sequence of the topic's words, decoded per pull.
// A decode failure surfaces at its row's position; consuming the sequence
// partially never decodes the remaining rows.
func (ts TopicSlice) Words() iter.Seq2[Word, error] {
	seq, err := slicecsv.ParseSliceIter(ts.table, WordDecoder(), ts.index)
	if err != nil {
		// TopicSlices only hands out in-range indices, so this is
		// unreachable unless the caller forged a TopicSlice.
		return func(yield func(Word, error) bool) {
			yield(Word{}, err)
		}
	}

	return seq
}

// TopicSlices returns one TopicSlice per named topic, applying the same
// drop-empty-names policy as ParseTopics without decoding any rows.
func TopicSlices(t *slicecsv.Table) []TopicSlice {
	count := t.SliceCount(WordColumns)
	slices := make([]TopicSlice, 0, count)
	for i := 0; i < count; i++ {
		name := topicName(t, i)
		if name == "" {
			continue
		}
		slices = append(slices, TopicSlice{name: name, table: t, index: i})
	}

	return slices
}
