// Command qrencode is a thin CLI wrapper around package qrcodegen: it turns
// a text payload or a file's bytes into a QR code symbol and renders it as
// SVG, PNG, or a terminal block drawing. All encoding logic lives in
// qrcodegen; this command only parses flags, calls the library, and hands
// the result to package render.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	qrcodegen "github.com/brennofsouza/qrencode"
	"github.com/brennofsouza/qrencode/render"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

type flags struct {
	ecc        string
	minVersion int
	maxVersion int
	mask       int
	boostECC   bool
	out        string
	scale      int
	border     int
	output     string
	open       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "qrencode",
		Short: "Encode text or files into QR code symbols",
	}

	addCommonFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&f.ecc, "ecc", "medium", "error correction level: low, medium, quartile, high")
		cmd.Flags().IntVar(&f.minVersion, "min-version", 1, "smallest version the encoder may choose")
		cmd.Flags().IntVar(&f.maxVersion, "max-version", 40, "largest version the encoder may choose")
		cmd.Flags().IntVar(&f.mask, "mask", -1, "fixed mask index [0,7], or -1 for automatic selection")
		cmd.Flags().BoolVar(&f.boostECC, "boost-ecc", true, "promote the ECC level when the chosen version has spare capacity")
		cmd.Flags().StringVar(&f.out, "out", "svg", "output format: svg, png, term")
		cmd.Flags().IntVar(&f.scale, "scale", 8, "pixels per module (png only)")
		cmd.Flags().IntVar(&f.border, "border", 4, "quiet zone width, in modules")
		cmd.Flags().StringVar(&f.output, "output", "", "output file path (default: stdout)")
		cmd.Flags().BoolVar(&f.open, "open", false, "open the rendered output in the system's default viewer once written")
	}

	textCmd := &cobra.Command{
		Use:   "text <payload>",
		Short: "Encode a text payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return encodeAndRender(f, func(ecl qrcodegen.ECL, opts []qrcodegen.EncodeOption) (*qrcodegen.QRCode, error) {
				return qrcodegen.EncodeText(args[0], ecl, opts...)
			})
		},
	}

	fileCmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Encode a file's bytes as a Byte-mode segment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			return encodeAndRender(f, func(ecl qrcodegen.ECL, opts []qrcodegen.EncodeOption) (*qrcodegen.QRCode, error) {
				return qrcodegen.EncodeBinary(data, ecl, opts...)
			})
		},
	}

	addCommonFlags(textCmd)
	addCommonFlags(fileCmd)
	root.AddCommand(textCmd, fileCmd)

	return root
}

func parseECL(name string) (qrcodegen.ECL, error) {
	switch name {
	case "low":
		return qrcodegen.Low, nil
	case "medium":
		return qrcodegen.Medium, nil
	case "quartile":
		return qrcodegen.Quartile, nil
	case "high":
		return qrcodegen.High, nil
	default:
		return 0, fmt.Errorf("unknown ecc level %q (want low, medium, quartile, or high)", name)
	}
}

func encodeAndRender(f *flags, encode func(qrcodegen.ECL, []qrcodegen.EncodeOption) (*qrcodegen.QRCode, error)) error {
	ecl, err := parseECL(f.ecc)
	if err != nil {
		return err
	}

	opts := []qrcodegen.EncodeOption{
		qrcodegen.WithMinVersion(qrcodegen.Version(f.minVersion)),
		qrcodegen.WithMaxVersion(qrcodegen.Version(f.maxVersion)),
		qrcodegen.WithBoostECL(f.boostECC),
	}
	if f.mask >= 0 {
		opts = append(opts, qrcodegen.WithMask(qrcodegen.Mask(f.mask)))
	}

	q, err := encode(ecl, opts)
	if err != nil {
		return err
	}

	log.Info().
		Int("version", int(q.Version())).
		Str("ecc", q.ErrorCorrectionLevel().String()).
		Int("mask", int(q.Mask())).
		Int("size", q.Size()).
		Msg("encoded QR code")

	return writeOutput(f, q)
}

func writeOutput(f *flags, q *qrcodegen.QRCode) error {
	outputPath := f.output
	if f.open && outputPath == "" {
		// browser.OpenFile needs a real path on disk; stdout has none, so
		// --open without --output writes to a throwaway temp file instead.
		tmp, err := os.CreateTemp("", "qrencode-*."+outputExtension(f.out))
		if err != nil {
			return fmt.Errorf("creating temp file for --open: %w", err)
		}
		tmp.Close()
		outputPath = tmp.Name()
	}

	dest := os.Stdout
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outputPath, err)
		}
		defer file.Close()
		dest = file
	}

	var err error
	switch f.out {
	case "svg":
		var svg string
		svg, err = render.SVG(q, f.border)
		if err == nil {
			_, err = fmt.Fprint(dest, svg)
		}
	case "png":
		err = render.PNG(dest, q, f.border, f.scale)
	case "term":
		_, err = fmt.Fprint(dest, render.Terminal(q, f.border))
	default:
		return fmt.Errorf("unknown output format %q (want svg, png, or term)", f.out)
	}
	if err != nil {
		return err
	}

	if f.open {
		// outputPath is never empty here: the temp-file branch above fires
		// whenever --open is set without --output.
		if err := dest.Sync(); err != nil {
			return fmt.Errorf("flushing %s before opening it: %w", outputPath, err)
		}
		return browser.OpenFile(outputPath)
	}
	return nil
}

func outputExtension(format string) string {
	switch format {
	case "png":
		return "png"
	case "term":
		return "txt"
	default:
		return "svg"
	}
}
