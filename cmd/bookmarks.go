package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"github.com/ashmilgit15/nursing-mcq-website/internal/progress"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List bookmarked questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		p := progress.New(ctx, e.kv, e.logger)
		b := bank.New(ctx, e.kv, e.logger)

		if ref, _ := cmd.Flags().GetString("remove"); ref != "" {
			r, err := progress.ParseRef(ref)
			if err != nil {
				return err
			}
			p.RemoveBookmark(ctx, r)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", r)
			return nil
		}

		printBookmarks(cmd.OutOrStdout(), p.Bookmarks(), b)
		return nil
	},
}

func init() {
	bookmarksCmd.Flags().String("remove", "", `Remove a bookmark by ref ("Subject-Index")`)
}

func printBookmarks(out io.Writer, refs []progress.QuestionRef, b *bank.Store) {
	if len(refs) == 0 {
		fmt.Fprintln(out, "No bookmarks.")
		return
	}
	for _, ref := range refs {
		q, ok := b.At(ref.Subject, ref.Index)
		if !ok {
			fmt.Fprintf(out, "%s\n  (no longer in bank)\n\n", ref)
			continue
		}
		fmt.Fprintf(out, "%s\n  %s\n  Answer: %s\n", ref, q.Text, q.CorrectOption())
		if q.Explanation != "" {
			fmt.Fprintf(out, "  %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}
}
