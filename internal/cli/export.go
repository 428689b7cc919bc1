package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"vibecode_spa/internal/bootstrap"
)

func newExportCommand(rt *runtime) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Prerender every literal route into a static directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New(bootstrap.MountPoint(rt.cfg.MountID), bootstrap.DefaultRoutes(), rt.options()...)
			if err != nil {
				return fmt.Errorf("mount application: %w", err)
			}

			written, err := app.Export(cmd.Context(), outDir)
			if err != nil {
				return err
			}
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
	return cmd
}
