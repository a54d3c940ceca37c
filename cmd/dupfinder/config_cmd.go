package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soyunomas/dupfinder/internal/config"
)

func newConfigCmd() *cobra.Command {
	var (
		path  string
		write bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Muestra (o guarda) la configuración efectiva",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if write {
				if err := cfg.Save(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "📄 Configuración guardada en %s\n", path)
				return nil
			}
			_, err = cfg.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&path, "config", config.DefaultPath(), "archivo de configuración INI")
	cmd.Flags().BoolVar(&write, "write", false, "guarda la configuración en el archivo")
	return cmd
}
