package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/modeler"

	"github.com/spf13/cobra"
)

func init() {
	// GLFW and the WebGPU surface must stay on the main thread.
	runtime.LockOSThread()
}

var (
	configPath string
	debug      bool
	watch      bool
)

var rootCmd = &cobra.Command{
	Use:   "modeler [model.gltf]",
	Short: "Edit vertices and triangles of a glTF model",
	Long: `modeler opens a window with an orbit camera over the model and a
gizmo for moving, rotating and scaling vertices. Files are read and written
as glTF (.gltf or .glb). A missing file is created on the first save.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "debug logging and frame statistics")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the model when it changes on disk")
}

func loadConfig() (modeler.Config, error) {
	if configPath == "" {
		return modeler.DefaultConfig(), nil
	}
	return modeler.LoadConfig(configPath)
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := cfg.Logger("modeler")

	host := modeler.NewHost(cfg, log)
	host.SetDebug(debug)
	if watch {
		if err := host.EnableWatch(); err != nil {
			return err
		}
	}
	if len(args) == 1 {
		host.Open(args[0])
	}
	return host.Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
