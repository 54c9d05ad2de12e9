package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/omr"
	"github.com/tsawler/omr/imaging"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Report which decoders and backends are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			avail := omr.Probe(cfg.Preprocess.Backend)

			if wantJSON(cmd.OutOrStdout(), asJSON) {
				if err := writeJSON(cmd, avail); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderAvailability(avail))
			}

			if !avail.Ready() {
				return &unavailableError{reason: avail.Reason()}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON even on a terminal")
	return cmd
}

func renderAvailability(a omr.Availability) string {
	ocr := yesNo(a.OCR)
	if a.OCR {
		ocr += " (tesseract " + a.OCRVersion + ")"
	}
	rows := [][]string{
		{"Codecs", strings.Join(a.Codecs, ", ")},
		{"QR", yesNo(a.QR)},
		{"OCR", ocr},
		{"OpenCV", yesNo(a.OpenCV)},
		{"Binarizer", fmt.Sprintf("%s (%s)", a.Backend, yesNo(a.BackendReady))},
		{"Compiled backends", strings.Join(imaging.Backends(), ", ")},
	}
	for _, p := range a.Problems {
		rows = append(rows, []string{"Problem", p})
	}
	return renderTable([]string{"Check", "Result"}, rows, nil)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
