package importer

import "fmt"

// Summary is the partial-success tally of one import run: how many notes
// Anki accepted, how many it refused as duplicates, and how many failed for
// any other reason.
type Summary struct {
	Added      int
	Duplicates int
	Failed     int
}

// Total returns the number of notes the run attempted.
func (s Summary) Total() int {
	return s.Added + s.Duplicates + s.Failed
}

// merge folds another tally into this one.
func (s *Summary) merge(other Summary) {
	s.Added += other.Added
	s.Duplicates += other.Duplicates
	s.Failed += other.Failed
}

func (s Summary) String() string {
	return fmt.Sprintf("%d added, %d duplicates, %d errors", s.Added, s.Duplicates, s.Failed)
}
