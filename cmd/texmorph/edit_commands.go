package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/texmorph"
	"github.com/phanxgames/texmorph/internal/tablestore"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a stored table",
	}

	editCmd.AddCommand(newEditSetTagCommand(ctx))
	editCmd.AddCommand(newEditSplitCommand(ctx))
	editCmd.AddCommand(newEditRemoveSlotCommand(ctx))
	return editCmd
}

// editStored loads name, applies fn to an editor over it and stores the
// result. A rejected edit leaves the stored table untouched.
func editStored(ctx *commandContext, cmd *cobra.Command, name string, fn func(*texmorph.Editor) error) error {
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}
	return ctx.withStore(func(store *tablestore.Store) error {
		bg := context.Background()
		entry, err := store.Get(bg, name)
		if err != nil {
			return err
		}
		doc := entry.Document
		if len(doc.BeforeOverrides) > 0 || len(doc.AfterOverrides) > 0 {
			logger.Warn("edit discards index overrides", "table", name)
		}
		editor, err := doc.Editor()
		if err != nil {
			return err
		}
		if err := fn(editor); err != nil {
			return err
		}
		saved, err := store.Save(bg, name, editor.Document())
		if err != nil {
			return err
		}
		logger.Debug("table edited", "table", name, "slots", len(saved.Document.Tags))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderSlots(saved.Document))
		fmt.Fprintln(out, saved.Document.Tags.SourceText())
		return nil
	})
}

func newEditSetTagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-tag <name> <slot> <tag>",
		Short: "Change the tag of one slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseIndex("slot", args[1])
			if err != nil {
				return err
			}
			tag, err := texmorph.ParseTag(args[2])
			if err != nil {
				return err
			}
			return editStored(ctx, cmd, args[0], func(e *texmorph.Editor) error {
				return e.SetTag(slot, tag)
			})
		},
	}
}

func newEditSplitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "split <name> <slot> <before|after> <index>",
		Short: "Split a group in two at a character index",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseIndex("slot", args[1])
			if err != nil {
				return err
			}
			side, err := parseSide(args[2])
			if err != nil {
				return err
			}
			index, err := parseIndex("index", args[3])
			if err != nil {
				return err
			}
			return editStored(ctx, cmd, args[0], func(e *texmorph.Editor) error {
				return e.InsertGroupBoundary(slot, side, index)
			})
		},
	}
}

func newEditRemoveSlotCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-slot <name> <slot>",
		Short: "Delete one slot and re-fit the table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseIndex("slot", args[1])
			if err != nil {
				return err
			}
			return editStored(ctx, cmd, args[0], func(e *texmorph.Editor) error {
				return e.RemoveSlot(slot)
			})
		},
	}
}
