package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phanxgames/texmorph"
	"github.com/phanxgames/texmorph/internal/tablestore"
)

// stage holds both expressions of a stored document and the scratch
// container a morph between them animates in.
type stage struct {
	root  *texmorph.Node
	morph *texmorph.Morph
}

func buildStage(doc texmorph.Document, easing texmorph.Easing, logger *slog.Logger) (*stage, error) {
	style := texmorph.DefaultLayoutStyle()
	before, beforeRoot := texmorph.BuildExpression("before", doc.BeforeGroups, style)
	after, afterRoot := texmorph.BuildExpression("after", doc.AfterGroups, style)
	scratch := texmorph.NewContainer("scratch")

	root := texmorph.NewContainer("stage")
	root.AddChild(beforeRoot)
	root.AddChild(afterRoot)
	root.AddChild(scratch)

	m, err := texmorph.NewMorph(texmorph.MorphConfig{
		Before:          before,
		After:           after,
		Table:           doc.Tags,
		Easing:          easing,
		Scratch:         scratch,
		BeforeOverrides: doc.BeforeOverrides,
		AfterOverrides:  doc.AfterOverrides,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}
	return &stage{root: root, morph: m}, nil
}

func newSimulateCommand(ctx *commandContext) *cobra.Command {
	var steps int
	var easingName string

	cmd := &cobra.Command{
		Use:   "simulate <name>",
		Short: "Step a morph of a stored table without opening a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			easing := cfg.Easing()
			if easingName != "" {
				if easing, err = texmorph.EasingByName(easingName); err != nil {
					return err
				}
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *tablestore.Store) error {
				entry, err := store.Get(context.Background(), args[0])
				if err != nil {
					return err
				}
				st, err := buildStage(entry.Document, easing, logger)
				if err != nil {
					return err
				}
				defer st.morph.Dispose()

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s: %d persisting, %d leaving, %d entering\n", entry.Name,
					len(st.morph.Tracks(texmorph.TrackPersisting)),
					len(st.morph.Tracks(texmorph.TrackLeaving)),
					len(st.morph.Tracks(texmorph.TrackEntering)))

				rows := make([][]string, 0, steps+1)
				for i := 0; i <= steps; i++ {
					t := float32(i) / float32(steps)
					if err := st.morph.Apply(t); err != nil {
						return fmt.Errorf("apply t=%.3f: %w", t, err)
					}
					rows = append(rows, []string{
						fmt.Sprintf("%d", i),
						fmt.Sprintf("%.3f", t),
						st.morph.State().String(),
						fmt.Sprintf("%.3f", easing(t)),
						fmt.Sprintf("%.3f", texmorph.EaseOutFactor(float64(t))),
						fmt.Sprintf("%.3f", texmorph.EaseInFactor(float64(t))),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]column{numCol("Step"), numCol("t"), col("State"), numCol("Eased"), numCol("Leaving"), numCol("Entering")},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 10, "Number of intervals between t=0 and t=1")
	cmd.Flags().StringVar(&easingName, "easing", "", "Override the configured easing")
	return cmd
}
