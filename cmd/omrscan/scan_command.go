package main

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tsawler/omr"
)

type scanFlags struct {
	questions int
	options   int
	workers   int
	json      bool
}

// sheetOutput is one scanned sheet in JSON output.
type sheetOutput struct {
	ScanID string `json:"scan_id"`
	Path   string `json:"path"`
	omr.Result
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "scan <image>...",
		Short: "Scan answer sheet images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			scanner, logger, err := ctx.scanner(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			req := cfg.Request()
			if cmd.Flags().Changed("questions") {
				req.Questions = flags.questions
			}
			if cmd.Flags().Changed("options") {
				req.Options = flags.options
			}
			if req.Questions < 0 || req.Options < 0 {
				return fmt.Errorf("question and option counts must not be negative")
			}

			jobs := make([]omr.Job, len(args))
			for i, path := range args {
				jobs[i] = omr.Job{ID: uuid.NewString(), Path: path, Request: req}
				logger.Debug("sheet queued", "scan_id", jobs[i].ID, "path", path)
			}

			results, err := omr.ScanBatch(cmd.Context(), scanner, jobs, flags.workers)

			if wantJSON(cmd.OutOrStdout(), flags.json) {
				out := make([]sheetOutput, len(results))
				for i, r := range results {
					out[i] = sheetOutput{ScanID: r.Job.ID, Path: r.Job.Path, Result: r.Result}
				}
				if werr := writeJSON(cmd, out); werr != nil {
					return werr
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderResults(results))
			}

			if err != nil {
				return err
			}
			if failed := countFailed(results); failed > 0 {
				return fmt.Errorf("%d of %d sheets failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.questions, "questions", "q", 0, "Expected number of questions (overrides the profile)")
	cmd.Flags().IntVarP(&flags.options, "options", "o", 0, "Options per question (overrides the profile)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", runtime.NumCPU(), "Sheets scanned in parallel")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print JSON even on a terminal")
	return cmd
}

func renderResults(results []omr.BatchResult) string {
	headers := []string{"Sheet", "Identifier", "Status", "Answers", "Notes"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		id := "-"
		if r.Result.Identifier != nil {
			id = r.Result.Identifier.String()
		}
		status := "ok"
		answers := formatAnswers(r.Result)
		if !r.Result.Success {
			status = "failed"
			answers = r.Result.Diagnostic
		}
		rows = append(rows, []string{
			r.Job.Path,
			id,
			status,
			answers,
			strconv.Itoa(len(r.Result.Notes)),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight})
}

func formatAnswers(r omr.Result) string {
	questions := r.Questions()
	if len(questions) == 0 {
		return "(none)"
	}
	parts := make([]string, len(questions))
	for i, q := range questions {
		parts[i] = fmt.Sprintf("%d:%s", q, r.Answers[q])
	}
	return strings.Join(parts, " ")
}

func countFailed(results []omr.BatchResult) int {
	n := 0
	for _, r := range results {
		if !r.Result.Success {
			n++
		}
	}
	return n
}
