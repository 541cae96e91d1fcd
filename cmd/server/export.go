package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"archcanvas/internal/canvas"
	"archcanvas/internal/codec"
	"archcanvas/internal/config"
	"archcanvas/internal/render"
)

func newExportCommand(flags *globalFlags) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the diagram layout as YAML, JSON or a PNG snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return runExport(cfg, format, cmd.OutOrStdout())
			}
			if err := exportFile(cfg, format, output); err != nil {
				return err
			}
			log.Printf("Exported %s to %s", format, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml, json or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func runExport(cfg *config.Config, format string, w io.Writer) error {
	diagram, err := loadDiagram(cfg)
	if err != nil {
		return err
	}

	if format == "png" {
		engine, err := canvas.NewEngine(diagram, canvas.WithPivotPolicy(cfg.PivotPolicy()))
		if err != nil {
			return err
		}
		return render.PNG(w, engine.Frame(), render.Options{
			Padding:  cfg.Snapshot.Padding,
			FontSize: cfg.Snapshot.FontSize,
		})
	}

	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}
	return c.Export(diagram, w)
}

// exportFile writes the export to path. A failed close is reported, since
// it can be the first sign of a short write.
func exportFile(cfg *config.Config, format, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	return runExport(cfg, format, f)
}
