package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dao-xyz/bufcodec/region"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <file> <size>",
		Short: "Create a zero-filled region file",
		Long: `The create command writes a new file of the given size filled with zeros,
replacing any existing file.

Example:
  bufctl create data.bin 64`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args)
		},
	}
}

func runCreate(args []string) error {
	size, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", args[1], err)
	}
	if err := region.Create(args[0], size); err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]interface{}{"file": args[0], "size": size})
	}
	printInfo("Created %s (%d bytes)\n", args[0], size)
	return nil
}
