package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and maintain the question banks",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show question counts per subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		svc, err := e.services(cmd.Context())
		if err != nil {
			return err
		}
		printBankTable(cmd.OutOrStdout(), svc.bank.Subjects(), svc.coordinator)
		return nil
	},
}

var bankResetCmd = &cobra.Command{
	Use:   "reset [subject...]",
	Short: "Restore builtin questions for the named subjects, or all",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		svc, err := e.services(cmd.Context())
		if err != nil {
			return err
		}
		svc.bank.ResetToDefault(cmd.Context(), args...)

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "All subjects reset to builtin questions.")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Reset: %s\n", strings.Join(args, ", "))
		}
		return nil
	},
}

var bankCollectCmd = &cobra.Command{
	Use:   "collect [subject...]",
	Short: "Fetch new questions now",
	Long: "Without arguments every subject below the threshold is collected " +
		"concurrently. Named subjects are collected one after another regardless of their count.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		svc, err := e.services(ctx)
		if err != nil {
			return err
		}

		var results []replenish.Result
		if len(args) == 0 {
			results = svc.coordinator.BulkReplenish(ctx)
		} else {
			for _, subject := range args {
				results = append(results, svc.coordinator.RequestReplenishment(ctx, subject))
			}
		}
		printResults(cmd.OutOrStdout(), results)
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankResetCmd)
	bankCmd.AddCommand(bankCollectCmd)
}

func printBankTable(out io.Writer, subjects []string, coord *replenish.Coordinator) {
	fmt.Fprintf(out, "%-36s  %6s  %s\n", "Subject", "Count", "Status")
	fmt.Fprintln(out, strings.Repeat("─", 72))

	total := 0
	for _, subject := range subjects {
		st := coord.SubjectStats(subject)
		total += st.Count

		status := "ok"
		if st.NeedsMore {
			status = fmt.Sprintf("below %d", coord.Threshold())
		}
		if !st.LastFailure.IsZero() {
			status += ", last fetch failed " + st.LastFailure.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "%-36s  %6d  %s\n", truncate(subject, 36), st.Count, status)
	}

	fmt.Fprintln(out, strings.Repeat("─", 72))
	fmt.Fprintf(out, "%-36s  %6d\n", "TOTAL", total)
}

func printResults(out io.Writer, results []replenish.Result) {
	if len(results) == 0 {
		fmt.Fprintln(out, "Nothing to collect.")
		return
	}
	fmt.Fprintf(out, "%-36s  %7s  %8s  %8s  %s\n", "Subject", "Fetched", "Accepted", "Inserted", "Notes")
	fmt.Fprintln(out, strings.Repeat("─", 80))
	for _, r := range results {
		var notes []string
		if r.Skipped {
			notes = append(notes, "skipped (already collecting)")
		}
		if r.UsedFallback {
			notes = append(notes, "fallback")
		}
		if r.Err != nil {
			notes = append(notes, strings.ReplaceAll(r.Err.Error(), "\n", "; "))
		}
		fmt.Fprintf(out, "%-36s  %7d  %8d  %8d  %s\n",
			truncate(r.Subject, 36), r.Fetched, r.Accepted, r.Inserted, strings.Join(notes, ", "))
	}
}
