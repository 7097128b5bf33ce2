package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/texmorph"
	"github.com/phanxgames/texmorph/internal/tablestore"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var showFPS bool
	var duration float64
	var captureAt []float32
	var captureDir string

	cmd := &cobra.Command{
		Use:   "preview <name>",
		Short: "Play the morph of a stored table in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			seconds := cfg.Morph.DurationSeconds
			if cmd.Flags().Changed("duration") {
				if duration <= 0 {
					return fmt.Errorf("--duration must be positive")
				}
				seconds = duration
			}

			var doc texmorph.Document
			err = ctx.withStore(func(store *tablestore.Store) error {
				entry, err := store.Get(context.Background(), args[0])
				if err != nil {
					return err
				}
				doc = entry.Document
				return nil
			})
			if err != nil {
				return err
			}

			st, err := buildStage(doc, cfg.Easing(), logger)
			if err != nil {
				return err
			}

			scene := texmorph.NewScene()
			scene.SetLogger(logger)
			st.root.SetPosition(float64(cfg.Preview.Width)/2, float64(cfg.Preview.Height)/2)
			scene.Root().AddChild(st.root)
			scene.AddMorph(args[0], texmorph.NewMorphTween(st.morph, float32(seconds)))
			scene.CaptureDir = captureDir
			for _, at := range captureAt {
				scene.CaptureAt(args[0], at)
			}

			logger.Info("preview started", "table", args[0], "duration", seconds, "easing", cfg.Morph.Easing)
			defer scene.DisposeMorphs()
			return texmorph.Run(scene, texmorph.RunConfig{
				Title:   cfg.Preview.Title,
				Width:   cfg.Preview.Width,
				Height:  cfg.Preview.Height,
				ShowFPS: showFPS,
			})
		},
	}

	cmd.Flags().BoolVar(&showFPS, "fps", false, "Overlay frame and tick rates")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Override the configured duration in seconds")
	cmd.Flags().Float32SliceVar(&captureAt, "capture", nil, "Save a PNG when the morph reaches each t, e.g. 0.25,0.5,1")
	cmd.Flags().StringVar(&captureDir, "capture-dir", "captures", "Directory for --capture PNGs")
	return cmd
}
