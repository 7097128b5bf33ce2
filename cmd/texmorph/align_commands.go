package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/texmorph"
	"github.com/phanxgames/texmorph/internal/tablestore"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var tagsFlag string
	var saveName string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "align <before> <after>",
		Short: "Align two expressions and print the transition table",
		Long: "Align two whitespace-separated expressions. Without --tags the table is the\n" +
			"greedy length match; with --tags the given table is resized to fit.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var table texmorph.AlignmentTable
			if strings.TrimSpace(tagsFlag) != "" {
				parsed, err := texmorph.ParseSourceText(tagsFlag)
				if err != nil {
					return err
				}
				table = parsed
			}
			editor, err := texmorph.NewEditor(table, parseGroups(args[0]), parseGroups(args[1]))
			if err != nil {
				return err
			}
			doc := editor.Document()

			out := cmd.OutOrStdout()
			if !quiet {
				fmt.Fprintln(out, renderSlots(doc))
			}
			fmt.Fprintln(out, doc.Tags.SourceText())

			if saveName == "" {
				return nil
			}
			return ctx.withStore(func(store *tablestore.Store) error {
				entry, err := store.Save(context.Background(), saveName, doc)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %s (%s)\n", entry.Name, entry.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tagsFlag, "tags", "t", "", "Starting table as source text")
	cmd.Flags().StringVarP(&saveName, "save", "s", "", "Store the result in the library under this name")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the source text")
	return cmd
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var name string
	var before, after string

	cmd := &cobra.Command{
		Use:   "validate [source-text]",
		Short: "Validate a transition table",
		Long: "Validate a table given as source text, optionally against expressions\n" +
			"given with --before and --after, or a stored table given with --name.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if name != "" {
				return ctx.withStore(func(store *tablestore.Store) error {
					entry, err := store.Get(context.Background(), name)
					if err != nil {
						return err
					}
					nb, na := entry.Document.Tags.Counts()
					fmt.Fprintf(out, "%s: valid, %d slots over %d before and %d after groups\n",
						entry.Name, len(entry.Document.Tags), nb, na)
					return nil
				})
			}
			if len(args) == 0 {
				return fmt.Errorf("provide source text or --name")
			}

			table, err := texmorph.ParseSourceText(args[0])
			if err != nil {
				return err
			}
			if err := table.Validate(); err != nil {
				return err
			}
			nb, na := table.Counts()
			if cmd.Flags().Changed("before") || cmd.Flags().Changed("after") {
				doc := texmorph.Document{
					Tags:         table,
					BeforeGroups: parseGroups(before),
					AfterGroups:  parseGroups(after),
				}
				if err := doc.Validate(); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "valid: %d slots over %d before and %d after groups\n", len(table), nb, na)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Validate a stored table")
	cmd.Flags().StringVar(&before, "before", "", "Before expression to check group counts against")
	cmd.Flags().StringVar(&after, "after", "", "After expression to check group counts against")
	return cmd
}
