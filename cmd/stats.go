package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ashmilgit15/nursing-mcq-website/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		p := progress.New(ctx, e.kv, e.logger)

		if reset, _ := cmd.Flags().GetBool("reset"); reset {
			p.Reset(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Progress and bookmarks cleared.")
			return nil
		}
		printStats(cmd.OutOrStdout(), p.Snapshot())
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("reset", false, "Clear all progress and bookmarks")
}

func printStats(out io.Writer, rec progress.Record) {
	fmt.Fprintf(out, "Answered:  %d\n", rec.TotalQuestions)
	fmt.Fprintf(out, "Correct:   %d\n", rec.CorrectAnswers)
	fmt.Fprintf(out, "Accuracy:  %d%%\n", rec.Accuracy())
	fmt.Fprintf(out, "Bookmarks: %d\n", len(rec.Bookmarked))

	if len(rec.SubjectStats) == 0 {
		return
	}

	subjects := make([]string, 0, len(rec.SubjectStats))
	for s := range rec.SubjectStats {
		subjects = append(subjects, s)
	}
	slices.Sort(subjects)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-36s  %6s  %7s  %8s\n", "Subject", "Total", "Correct", "Accuracy")
	fmt.Fprintln(out, strings.Repeat("─", 64))
	for _, s := range subjects {
		st := rec.SubjectStats[s]
		fmt.Fprintf(out, "%-36s  %6d  %7d  %7d%%\n", truncate(s, 36), st.Total, st.Correct, st.Accuracy())
	}
}
