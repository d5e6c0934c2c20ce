package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dao-xyz/bufcodec/internal/buf"
)

// dumpOptions holds the dump flags.
type dumpOptions struct {
	offset int
	length int
}

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	opts := &dumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Hex dump a byte range",
		Long: `The dump command prints a hex dump of the file, or of --length bytes
starting at --offset.

Example:
  bufctl dump data.bin
  bufctl dump data.bin --offset 8 --length 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args, opts)
		},
	}
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "Start offset")
	cmd.Flags().IntVar(&opts.length, "length", -1, "Number of bytes (default: rest of file)")
	return cmd
}

func runDump(args []string, opts *dumpOptions) (err error) {
	path := args[0]
	r, err := openRegion(path, false)
	if err != nil {
		return err
	}
	defer closeRegion(r, &err)

	n := opts.length
	if n < 0 {
		n = r.Len() - opts.offset
	}
	b, ok := buf.Slice(r.Bytes(), opts.offset, n)
	if !ok {
		return fmt.Errorf("dump: range %d+%d outside file of %d bytes", opts.offset, n, r.Len())
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":   path,
			"offset": opts.offset,
			"length": n,
			"hex":    hex.EncodeToString(b),
		})
	}
	fmt.Fprint(os.Stdout, hex.Dump(b))
	return nil
}
