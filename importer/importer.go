// Package importer turns parsed vocabulary topics into Anki notes and pushes
// them through an AnkiConnect client. It owns everything the parsing core
// deliberately does not: connectivity checks, deck creation, per-note
// partial-success accounting, and duplicate suppression.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lindamust/csv-to-anki/anki"
	"github.com/Lindamust/csv-to-anki/internal/options"
	"github.com/Lindamust/csv-to-anki/vocab"
	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
)

// DefaultModel is the note type used unless WithModel overrides it. The
// "Basic" model ships with every Anki install.
const DefaultModel = "Basic"

// Importer imports vocabulary topics into one Anki deck.
type Importer struct {
	client        *anki.Client
	deck          string
	model         string
	tags          []string
	allowDup      bool
	perTopicDecks bool
	logger        *log.Logger

	// seen holds hashes of notes already sent this run, so a word repeated
	// across topics (or a re-read slice) is not posted twice.
	seen map[uint64]struct{}
}

// Option configures an Importer.
type Option = options.Option[*Importer]

// WithClient substitutes a pre-built AnkiConnect client.
func WithClient(c *anki.Client) Option {
	return options.Setter(func(i *Importer) {
		i.client = c
	})
}

// WithURL points the importer at a non-default AnkiConnect endpoint.
func WithURL(url string) Option {
	return options.New(func(i *Importer) error {
		c, err := anki.NewClient(anki.WithURL(url))
		if err != nil {
			return err
		}
		i.client = c

		return nil
	})
}

// WithModel selects the note type to create notes with.
func WithModel(model string) Option {
	return options.New(func(i *Importer) error {
		if model == "" {
			return fmt.Errorf("importer: model name must not be empty")
		}
		i.model = model

		return nil
	})
}

// WithTags attaches tags to every created note.
func WithTags(tags ...string) Option {
	return options.Setter(func(i *Importer) {
		i.tags = append(i.tags, tags...)
	})
}

// WithAllowDuplicates disables both Anki's duplicate rejection and the
// importer's local suppression.
func WithAllowDuplicates(allow bool) Option {
	return options.Setter(func(i *Importer) {
		i.allowDup = allow
	})
}

// WithPerTopicDecks files each topic's notes into a "deck::topic" subdeck
// instead of the flat target deck.
func WithPerTopicDecks(enabled bool) Option {
	return options.Setter(func(i *Importer) {
		i.perTopicDecks = enabled
	})
}

// WithLogger substitutes the importer's logger.
func WithLogger(logger *log.Logger) Option {
	return options.Setter(func(i *Importer) {
		i.logger = logger
	})
}

// New creates an importer targeting the named deck.
func New(deck string, opts ...Option) (*Importer, error) {
	if deck == "" {
		return nil, fmt.Errorf("importer: deck name must not be empty")
	}

	i := &Importer{
		deck:   deck,
		model:  DefaultModel,
		logger: log.Default(),
		seen:   make(map[uint64]struct{}),
	}
	if err := options.Apply(i, opts...); err != nil {
		return nil, err
	}

	if i.client == nil {
		c, err := anki.NewClient()
		if err != nil {
			return nil, err
		}
		i.client = c
	}

	return i, nil
}

// Init verifies the AnkiConnect endpoint is reachable and willing, then
// creates the target deck. Creating an existing deck is a no-op on Anki's
// side.
func (i *Importer) Init(ctx context.Context) error {
	perm, err := i.client.RequestPermission(ctx)
	if err != nil {
		return fmt.Errorf("cannot reach Anki; is it running with the AnkiConnect add-on? %w", err)
	}
	if perm != "granted" {
		return fmt.Errorf("anki permission %q: enable this origin in the AnkiConnect config", perm)
	}

	if _, err := i.client.CreateDeck(ctx, i.deck); err != nil {
		return fmt.Errorf("create deck %q: %w", i.deck, err)
	}
	i.logger.Info("deck ready", "deck", i.deck)

	return nil
}

// InitTopics runs Init and additionally creates one subdeck per topic when
// per-topic decks are enabled.
func (i *Importer) InitTopics(ctx context.Context, topics []vocab.Topic) error {
	if err := i.Init(ctx); err != nil {
		return err
	}
	if !i.perTopicDecks {
		return nil
	}

	for _, topic := range topics {
		name := i.topicDeck(topic.Name)
		if _, err := i.client.CreateDeck(ctx, name); err != nil {
			return fmt.Errorf("create deck %q: %w", name, err)
		}
		i.logger.Debug("subdeck ready", "deck", name)
	}

	return nil
}

func (i *Importer) topicDeck(topic string) string {
	if i.perTopicDecks {
		return i.deck + "::" + topic
	}

	return i.deck
}

// note builds the flashcard for one word. The kanji writing leads the card
// when present: Front is the kanji and Back keeps the kana reading alongside
// the translation, so no part of the word is lost on a two-field model.
// Kana-only words fall back to plain front/back.
func (i *Importer) note(deck string, w vocab.Word) anki.Note {
	front := w.Japanese
	back := w.English
	if strings.TrimSpace(w.Kanji) != "" {
		front = w.Kanji
		back = w.Japanese + " | " + w.English
	}

	return anki.Note{
		DeckName:  deck,
		ModelName: i.model,
		Fields:    map[string]string{"Front": front, "Back": back},
		Tags:      i.tags,
		Options: &anki.NoteOptions{
			AllowDuplicate: i.allowDup,
			DuplicateScope: "deck",
		},
	}
}

// alreadySent records the note's identity hash and reports whether it was
// present before. Disabled when duplicates are explicitly allowed.
func (i *Importer) alreadySent(deck, word string) bool {
	if i.allowDup {
		return false
	}

	h := xxhash.New()
	_, _ = h.WriteString(deck)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(word)
	key := h.Sum64()

	if _, ok := i.seen[key]; ok {
		return true
	}
	i.seen[key] = struct{}{}

	return false
}

// ImportTopic adds one note per word, one request at a time. Per-note
// failures are tallied, not fatal: a duplicate increments Duplicates, any
// other API failure increments Failed and is logged. Only transport-level
// errors (endpoint gone, context canceled) abort the topic.
func (i *Importer) ImportTopic(ctx context.Context, topic vocab.Topic) (Summary, error) {
	deck := i.topicDeck(topic.Name)

	var sum Summary
	for _, w := range topic.Words {
		if i.alreadySent(deck, w.Japanese) {
			sum.Duplicates++
			continue
		}

		id, err := i.client.AddNote(ctx, i.note(deck, w))
		switch {
		case err == nil:
			sum.Added++
			i.logger.Debug("note added", "deck", deck, "word", w.Japanese, "id", id)
		case errors.Is(err, anki.ErrDuplicate):
			sum.Duplicates++
			i.logger.Debug("duplicate skipped", "deck", deck, "word", w.Japanese)
		default:
			var apiErr *anki.APIError
			if !errors.As(err, &apiErr) {
				return sum, fmt.Errorf("import topic %q: %w", topic.Name, err)
			}
			sum.Failed++
			i.logger.Warn("note rejected", "deck", deck, "word", w.Japanese, "err", apiErr.Message)
		}
	}

	i.logger.Info("topic imported", "topic", topic.Name, "summary", sum.String())

	return sum, nil
}

// ImportTopics imports every topic through the bulk addNotes action, one
// request per topic. Notes Anki refuses come back as zero ids and are tallied
// as duplicates, matching AnkiConnect's bulk semantics which do not
// distinguish refusal reasons.
func (i *Importer) ImportTopics(ctx context.Context, topics []vocab.Topic) (Summary, error) {
	var total Summary
	for _, topic := range topics {
		deck := i.topicDeck(topic.Name)

		notes := make([]anki.Note, 0, len(topic.Words))
		var localDups int
		for _, w := range topic.Words {
			if i.alreadySent(deck, w.Japanese) {
				localDups++
				continue
			}
			notes = append(notes, i.note(deck, w))
		}

		sum := Summary{Duplicates: localDups}
		if len(notes) > 0 {
			ids, err := i.client.AddNotes(ctx, notes)
			if err != nil {
				return total, fmt.Errorf("import topic %q: %w", topic.Name, err)
			}
			for _, id := range ids {
				if id == 0 {
					sum.Duplicates++
				} else {
					sum.Added++
				}
			}
		}

		i.logger.Info("topic imported", "topic", topic.Name, "summary", sum.String())
		total.merge(sum)
	}

	return total, nil
}
