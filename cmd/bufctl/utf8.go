package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dao-xyz/bufcodec/codec"
	"github.com/dao-xyz/bufcodec/internal/logger"
	"github.com/dao-xyz/bufcodec/internal/textenc"
)

// encodeOptions holds the encode-utf8 flags.
type encodeOptions struct {
	offset   int
	dataLen  int
	fromFile string
	charset  string
}

// decodeOptions holds the decode-utf8 flags.
type decodeOptions struct {
	offset int
	length int
	strict bool
}

func init() {
	rootCmd.AddCommand(newEncodeUTF8Cmd(), newDecodeUTF8Cmd())
}

func newEncodeUTF8Cmd() *cobra.Command {
	opts := &encodeOptions{}
	cmd := &cobra.Command{
		Use:   "encode-utf8 <file> [text]",
		Short: "Write UTF-8 text at an offset",
		Long: `The encode-utf8 command writes the UTF-8 bytes of the text into the file
at --offset. No length prefix is written. The text comes from the argument or
from --from-file, which is transcoded from --charset first.

Example:
  bufctl encode-utf8 data.bin "héllo" --offset 16
  bufctl encode-utf8 data.bin --from-file name.txt --charset windows-1252`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncodeUTF8(args, opts)
		},
	}
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "Byte offset of the text")
	cmd.Flags().IntVar(&opts.dataLen, "data-len", -1, "Declared region length (default: file size)")
	cmd.Flags().StringVar(&opts.fromFile, "from-file", "", "Read the text from a file")
	cmd.Flags().StringVar(&opts.charset, "charset", "", "Charset of --from-file (default from config)")
	return cmd
}

func newDecodeUTF8Cmd() *cobra.Command {
	opts := &decodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode-utf8 <file>",
		Short: "Read UTF-8 text at an offset",
		Long: `The decode-utf8 command decodes --data-len bytes starting at --offset as
UTF-8. Unlike the integer commands, --data-len is the length of the text, not
of the region; it defaults to the rest of the file.

Invalid UTF-8 prints a description of the problem in place of the text.
With --strict it is reported as an error instead.

Example:
  bufctl decode-utf8 data.bin --offset 16 --data-len 6
  bufctl decode-utf8 data.bin --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecodeUTF8(args, opts)
		},
	}
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "Byte offset of the text")
	cmd.Flags().IntVar(&opts.length, "data-len", -1, "Number of bytes to decode (default: rest of file)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on invalid UTF-8")
	return cmd
}

// inputText resolves the text to encode from the argument or --from-file.
func inputText(args []string, opts *encodeOptions) (string, error) {
	switch {
	case len(args) == 2 && opts.fromFile != "":
		return "", fmt.Errorf("give either text or --from-file, not both")
	case len(args) == 2:
		return args[1], nil
	case opts.fromFile == "":
		return "", fmt.Errorf("missing text: give it as an argument or with --from-file")
	}

	raw, err := os.ReadFile(opts.fromFile)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	charset := opts.charset
	if charset == "" {
		charset = cfg.Text.Charset
	}
	printVerbose("Transcoding %s from %s\n", opts.fromFile, charset)
	return textenc.ToUTF8(raw, charset)
}

func runEncodeUTF8(args []string, opts *encodeOptions) (err error) {
	path := args[0]
	text, err := inputText(args, opts)
	if err != nil {
		return err
	}

	r, err := openRegion(path, true)
	if err != nil {
		return err
	}
	defer closeRegion(r, &err)

	dataLen := declaredLen(r, opts.dataLen)
	if err := codec.CheckRange(r.Len(), dataLen, opts.offset, len(text)); err != nil {
		return fmt.Errorf("encode-utf8: %w", err)
	}
	codec.EncodeUTF8(text, r.Bytes(), dataLen, opts.offset)
	if err := r.Sync(); err != nil {
		return fmt.Errorf("failed to sync region: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":   path,
			"offset": opts.offset,
			"length": len(text),
		})
	}
	printInfo("Wrote %d bytes at offset %d\n", len(text), opts.offset)
	return nil
}

func runDecodeUTF8(args []string, opts *decodeOptions) (err error) {
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
	if err := codec.CheckRange(r.Len(), r.Len(), opts.offset, n); err != nil {
		return fmt.Errorf("decode-utf8: %w", err)
	}

	text, derr := codec.DecodeUTF8Strict(r.Bytes(), n, opts.offset)
	if derr != nil {
		if opts.strict {
			return fmt.Errorf("decode-utf8: %w", derr)
		}
		var uerr *codec.UTF8Error
		if errors.As(derr, &uerr) {
			logger.Warn("region holds invalid utf-8, printing the error description",
				"file", path, "offset", opts.offset, "valid_up_to", uerr.ValidUpTo)
		}
		text = codec.DecodeUTF8(r.Bytes(), n, opts.offset)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":   path,
			"offset": opts.offset,
			"length": n,
			"text":   text,
		})
	}
	fmt.Println(text)
	return nil
}
