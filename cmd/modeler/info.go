package main

import (
	"fmt"

	"github.com/gekko3d/modeler/rt/model"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Print mesh, vertex and triangle counts of a model file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	m, err := model.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "File: %s\n", args[0])
	if m.EditorAuthored() {
		fmt.Fprintf(out, "Document: %s\n", m.DocumentID())
	} else {
		fmt.Fprintln(out, "Document: imported")
	}
	fmt.Fprintf(out, "Meshes: %d\n", m.MeshCount())
	for i := 0; i < m.MeshCount(); i++ {
		mesh, _ := m.Mesh(i)
		fmt.Fprintf(out, "  %d %-16s %6d vertices %6d triangles\n", i, mesh.Name, len(mesh.Positions), mesh.TriangleCount())
	}
	fmt.Fprintf(out, "Custom vertices: %d\n", len(m.CustomVertices()))
	fmt.Fprintf(out, "Custom triangles: %d\n", len(m.CustomTriangles()))
	return nil
}
