package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kyotei-ai/kyotei-cli/internal/cli"
)

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check backend connectivity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := newClient().Ping(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend unreachable: %w", err)
			}

			line := fmt.Sprintf("%s %s", info.Service, info.Version)
			if !info.ModelsLoaded {
				fmt.Println(cli.FormatWarning(line + " (models not loaded)"))
				return nil
			}
			if len(info.Features) > 0 {
				line += "  [" + strings.Join(info.Features, ", ") + "]"
			}
			fmt.Println(cli.FormatSuccess(line))
			return nil
		},
	}
}
