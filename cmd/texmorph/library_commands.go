package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/texmorph"
	"github.com/phanxgames/texmorph/internal/tablestore"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var before, after, tags string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Store an alignment in the table library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var table texmorph.AlignmentTable
			if strings.TrimSpace(tags) != "" {
				parsed, err := texmorph.ParseSourceText(tags)
				if err != nil {
					return err
				}
				table = parsed
			}
			editor, err := texmorph.NewEditor(table, parseGroups(before), parseGroups(after))
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *tablestore.Store) error {
				entry, err := store.Save(context.Background(), args[0], editor.Document())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s), %d slots\n", entry.Name, entry.ID, len(entry.Document.Tags))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Before expression, groups separated by whitespace")
	cmd.Flags().StringVar(&after, "after", "", "After expression, groups separated by whitespace")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "Table as source text (default: auto-align)")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *tablestore.Store) error {
				items, err := store.List(context.Background())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "No stored tables")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						item.Name,
						strconv.Itoa(item.Slots),
						item.UpdatedAt.Local().Format("2006-01-02 15:04"),
						item.ID,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]column{col("Name"), numCol("Slots"), col("Updated"), col("ID")},
					rows,
				))
				return nil
			})
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored table slot by slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *tablestore.Store) error {
				entry, err := store.Get(context.Background(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asTOML {
					data, err := texmorph.MarshalDocument(entry.Document)
					if err != nil {
						return err
					}
					_, err = out.Write(data)
					return err
				}

				doc := entry.Document
				fmt.Fprintf(out, "%s (%s)\n", entry.Name, entry.ID)
				fmt.Fprintf(out, "Before: %s\n", strings.Join(doc.BeforeGroups, " "))
				fmt.Fprintf(out, "After:  %s\n", strings.Join(doc.AfterGroups, " "))
				fmt.Fprintln(out, renderSlots(doc))
				if len(doc.BeforeOverrides) > 0 || len(doc.AfterOverrides) > 0 {
					fmt.Fprintf(out, "Overrides: before=%v after=%v\n", doc.BeforeOverrides, doc.AfterOverrides)
				}
				fmt.Fprintln(out, doc.Tags.SourceText())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asTOML, "toml", false, "Print the stored document as TOML")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *tablestore.Store) error {
				err := store.Delete(context.Background(), args[0])
				if errors.Is(err, tablestore.ErrNotFound) {
					return fmt.Errorf("no stored table named %q", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}
