package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"archcanvas/internal/config"
	"archcanvas/internal/domain"
	"archcanvas/internal/loader"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// globalFlags override values from the config file
type globalFlags struct {
	configPath string
	diagram    string
	zoomPivot  string
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var flags globalFlags
	rootCmd := &cobra.Command{
		Use:   "archcanvas",
		Short: "Interactive architecture canvas host",
		Long: `archcanvas serves a pannable, zoomable canvas of service cards joined by
routed connectors. Renderers forward pointer events over HTTP or a websocket
and draw the frames the host sends back.`,
		Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default: search path)")
	rootCmd.PersistentFlags().StringVarP(&flags.diagram, "diagram", "d", "", "Diagram file (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().StringVar(&flags.zoomPivot, "zoom-pivot", "", "Zoom pivot policy: origin or pointer")

	rootCmd.AddCommand(newServeCommand(&flags))
	rootCmd.AddCommand(newExportCommand(&flags))
	rootCmd.AddCommand(newRouteCommand(&flags))
	rootCmd.AddCommand(newVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "archcanvas %s (commit: %s)\n", version, commit)
		},
	}
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if flags.configPath != "" {
		cfg, path, err = config.LoadFromPath(flags.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Printf("Config loaded: %s", path)
	}

	if flags.diagram != "" {
		cfg.Diagram.Path = flags.diagram
	}
	if flags.zoomPivot != "" {
		cfg.Canvas.ZoomPivot = flags.zoomPivot
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadDiagram(cfg *config.Config) (*domain.Diagram, error) {
	d, err := loader.Load(cfg.Diagram.Path)
	if err != nil {
		return nil, fmt.Errorf("load diagram: %w", err)
	}
	return d, nil
}
