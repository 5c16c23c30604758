// Command csv-to-anki converts a column-partitioned vocabulary CSV into Anki
// flashcards via the AnkiConnect add-on.
//
// The expected CSV shape is one topic per three header columns, each row
// following the pattern word, translation, kanji across every topic group:
//
//	Verbs,,,Adjectives,,
//	おどろく,to be surprised,驚く,はやい,fast,早い
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Lindamust/csv-to-anki/anki"
	"github.com/Lindamust/csv-to-anki/importer"
	"github.com/Lindamust/csv-to-anki/slicecsv"
	"github.com/Lindamust/csv-to-anki/vocab"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "csv-to-anki",
		Short:         "Import a topic-partitioned vocabulary CSV into Anki",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newPreviewCmd(), newImportCmd())

	return root
}

func loadTopics(path string, keepEmptyRows bool) ([]vocab.Topic, error) {
	var opts []slicecsv.Option
	if keepEmptyRows {
		opts = append(opts, slicecsv.WithSkipEmptyRows(false))
	}

	return vocab.ParseTopicsFile(path, opts...)
}

func newPreviewCmd() *cobra.Command {
	var keepEmptyRows bool

	cmd := &cobra.Command{
		Use:   "preview <file.csv>",
		Short: "Parse the CSV and print its topics and words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, err := loadTopics(args[0], keepEmptyRows)
			if err != nil {
				return err
			}

			for _, topic := range topics {
				fmt.Printf("%s:\n", topic.Name)
				for _, w := range topic.Words {
					fmt.Printf("  %s, %s, %s\n", w.Japanese, w.English, w.Kanji)
				}
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&keepEmptyRows, "keep-empty-rows", false, "do not skip rows whose slice cells are all blank")

	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		deck            string
		model           string
		url             string
		tags            []string
		perTopicDecks   bool
		allowDuplicates bool
		keepEmptyRows   bool
		bulk            bool
		dryRun          bool
		verbose         bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Create one flashcard per word in the target deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.Default()
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}

			topics, err := loadTopics(args[0], keepEmptyRows)
			if err != nil {
				return err
			}
			if len(topics) == 0 {
				logger.Warn("no topics found", "file", args[0])
				return nil
			}

			if dryRun {
				for _, topic := range topics {
					logger.Info("would import", "topic", topic.Name, "words", len(topic.Words))
				}

				return nil
			}

			imp, err := importer.New(deck,
				importer.WithURL(url),
				importer.WithModel(model),
				importer.WithTags(tags...),
				importer.WithPerTopicDecks(perTopicDecks),
				importer.WithAllowDuplicates(allowDuplicates),
				importer.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := imp.InitTopics(ctx, topics); err != nil {
				return err
			}

			var sum importer.Summary
			if bulk {
				sum, err = imp.ImportTopics(ctx, topics)
			} else {
				sum, err = importTopicByTopic(ctx, imp, topics)
			}
			if err != nil {
				return err
			}

			logger.Info("import finished", "summary", sum.String())

			return nil
		},
	}

	cmd.Flags().StringVarP(&deck, "deck", "d", "", "target deck name (required)")
	cmd.Flags().StringVarP(&model, "model", "m", importer.DefaultModel, "note type to create notes with")
	cmd.Flags().StringVar(&url, "url", anki.DefaultURL, "AnkiConnect endpoint")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "tag to attach to every note (repeatable)")
	cmd.Flags().BoolVar(&perTopicDecks, "per-topic-decks", false, "file each topic into a deck::topic subdeck")
	cmd.Flags().BoolVar(&allowDuplicates, "allow-duplicates", false, "let Anki accept duplicate notes")
	cmd.Flags().BoolVar(&keepEmptyRows, "keep-empty-rows", false, "do not skip rows whose slice cells are all blank")
	cmd.Flags().BoolVar(&bulk, "bulk", false, "use one bulk addNotes request per topic")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse only, do not touch Anki")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-note outcomes")
	_ = cmd.MarkFlagRequired("deck")

	return cmd
}

func importTopicByTopic(ctx context.Context, imp *importer.Importer, topics []vocab.Topic) (importer.Summary, error) {
	var total importer.Summary
	for _, topic := range topics {
		sum, err := imp.ImportTopic(ctx, topic)
		total = importer.Summary{
			Added:      total.Added + sum.Added,
			Duplicates: total.Duplicates + sum.Duplicates,
			Failed:     total.Failed + sum.Failed,
		}
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
