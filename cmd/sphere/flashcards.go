package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"studysphere/internal/bootstrap"
	flashcardsdto "studysphere/internal/modules/flashcards/dto"
)

func newDeckCmd(dataDir *string) *cobra.Command {
	deck := &cobra.Command{Use: "deck", Short: "Flashcard decks"}

	deck.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List decks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				decks := app.FlashcardsCLI.ListDecks()
				if len(decks) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no decks")
					return nil
				}
				selected := app.FlashcardsCLI.SelectedDeck()
				for _, d := range decks {
					mark := " "
					if d.ID == selected {
						mark = "*"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%d cards\n", mark, d.ID, d.Name, d.CardCount)
				}
				return nil
			})
		},
	})

	deck.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a deck",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.FlashcardsCLI.CreateDeck(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deck created: %s (%s)\n", out.Name, out.ID)
				return nil
			})
		},
	})

	deck.AddCommand(&cobra.Command{
		Use:   "rename <deck> <name>",
		Short: "Rename a deck",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.FlashcardsCLI.RenameDeck(ctx, args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deck renamed: %s (%s)\n", out.Name, out.ID)
				return nil
			})
		},
	})

	deck.AddCommand(&cobra.Command{
		Use:   "delete <deck>",
		Short: "Delete a deck and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.FlashcardsCLI.DeleteDeck(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deck deleted: %s\n", args[0])
				return nil
			})
		},
	})

	deck.AddCommand(&cobra.Command{
		Use:   "show <deck>",
		Short: "Show a deck and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				d, err := app.FlashcardsCLI.Deck(args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s), %d cards\n", d.Name, d.ID, len(d.Cards))
				for _, c := range d.Cards {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.ID, c.Front, c.Back)
				}
				return nil
			})
		},
	})

	var exportDir string
	exportCmd := &cobra.Command{
		Use:   "export <deck> [--dir <dir>]",
		Short: "Write a deck as a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				dir := exportDir
				if dir == "" {
					dir = app.Config.DataDir
				}
				out, err := app.FlashcardsCLI.ExportDeck(ctx, args[0], dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deck exported: %s\n", out.Path)
				return nil
			})
		},
	}
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (default: data dir)")
	deck.AddCommand(exportCmd)

	deck.AddCommand(&cobra.Command{
		Use:   "import <path>",
		Short: "Create a deck from a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.FlashcardsCLI.ImportDeck(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deck imported: %s (%s) cards=%d\n", out.Deck.Name, out.Deck.ID, out.Cards)
				return nil
			})
		},
	})
	return deck
}

func newCardCmd(dataDir *string) *cobra.Command {
	card := &cobra.Command{Use: "card", Short: "Flashcards inside a deck"}

	var front, back string
	add := &cobra.Command{
		Use:   "add <deck> --front <text> --back <text>",
		Short: "Add a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.FlashcardsCLI.AddCard(ctx, args[0], front, back)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "card added: %s\n", out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&front, "front", "", "question side")
	add.Flags().StringVar(&back, "back", "", "answer side")
	card.AddCommand(add)

	var editFront, editBack string
	edit := &cobra.Command{
		Use:   "edit <deck> <card-id> --front <text> --back <text>",
		Short: "Edit a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.FlashcardsCLI.EditCard(ctx, args[0], args[1], editFront, editBack)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "card updated: %s\n", out.ID)
				return nil
			})
		},
	}
	edit.Flags().StringVar(&editFront, "front", "", "question side")
	edit.Flags().StringVar(&editBack, "back", "", "answer side")
	card.AddCommand(edit)

	card.AddCommand(&cobra.Command{
		Use:   "delete <deck> <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.FlashcardsCLI.DeleteCard(ctx, args[0], args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "card deleted: %s\n", args[1])
				return nil
			})
		},
	})
	return card
}

func newQuizCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz [deck]",
		Short: "Review a deck interactively (default: the selected deck)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				quiz, err := app.FlashcardsCLI.StartQuiz(ref)
				if err != nil {
					return err
				}
				return runQuiz(ctx, app, quiz, bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
			})
		},
	}
}

// runQuiz drives the quiz from line input: enter reveals the answer, then
// y or n grades it. q leaves the quiz.
func runQuiz(ctx context.Context, app *bootstrap.App, quiz flashcardsdto.QuizOutput, in *bufio.Reader, out io.Writer) error {
	_, _ = fmt.Fprintf(out, "%s: %d cards. enter reveals, y/n grades, q quits\n", quiz.DeckName, quiz.Total)
	for quiz.Phase == "active" && quiz.Card != nil {
		_, _ = fmt.Fprintf(out, "\n[%d/%d] %s\n", quiz.Index+1, quiz.Total, quiz.Card.Front)
		line, err := readLine(in)
		if err != nil || line == "q" {
			app.FlashcardsCLI.Exit()
			_, _ = fmt.Fprintln(out, "quiz abandoned")
			return nil
		}
		_, _ = fmt.Fprintf(out, "  %s\n  got it? [y/n] ", quiz.Card.Back)
		var gotIt bool
		for {
			line, err = readLine(in)
			if err != nil || line == "q" {
				app.FlashcardsCLI.Exit()
				_, _ = fmt.Fprintln(out, "quiz abandoned")
				return nil
			}
			if line == "y" || line == "n" {
				gotIt = line == "y"
				break
			}
			_, _ = fmt.Fprint(out, "  answer y or n: ")
		}
		if quiz, err = app.FlashcardsCLI.Answer(ctx, gotIt); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(out, "\nscore: %d%% (%d/%d)\n", quiz.Score, quiz.Correct, quiz.Total)
	app.FlashcardsCLI.Exit()
	return nil
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
