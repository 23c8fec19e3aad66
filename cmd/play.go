package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"github.com/ashmilgit15/nursing-mcq-website/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Practice one round in plain text (no TUI)",
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

		in := bufio.NewScanner(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		subject, _ := cmd.Flags().GetString("subject")
		if subject == "" {
			if subject, err = pickSubject(in, out, svc.bank.Subjects()); err != nil {
				return err
			}
		}

		opts := []session.Option{
			session.WithReplenisher(svc.coordinator),
			session.WithRecorder(svc.progress),
			session.WithLogger(e.logger),
			session.WithTimeLimit(0),
		}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint32("seed")
			opts = append(opts, session.WithSeed(seed))
		}
		engine := session.New(subject, svc.bank, opts...)
		svc.coordinator.Questions(ctx, subject)

		sum := playRound(ctx, in, out, engine)
		fmt.Fprintf(out, "\n%s: %d/%d correct (%.0f%%), seed %d\n",
			sum.Subject, sum.Correct, sum.Answered, sum.Accuracy*100, engine.Seed())

		svc.coordinator.Wait()
		return nil
	},
}

func init() {
	playCmd.Flags().StringP("subject", "s", "", "Subject to practice (prompted when empty)")
	playCmd.Flags().Uint32("seed", 0, "Shuffle seed, to replay a round order")
}

func pickSubject(in *bufio.Scanner, out io.Writer, subjects []string) (string, error) {
	for i, s := range subjects {
		fmt.Fprintf(out, "%2d) %s\n", i+1, s)
	}
	for {
		fmt.Fprint(out, "Subject number: ")
		if !in.Scan() {
			return "", io.ErrUnexpectedEOF
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && n >= 1 && n <= len(subjects) {
			return subjects[n-1], nil
		}
		fmt.Fprintln(out, "Enter a number from the list.")
	}
}

// playRound runs the engine until the round finishes, input ends or the
// user types q. Blank input skips a question.
func playRound(ctx context.Context, in *bufio.Scanner, out io.Writer, e *session.Engine) session.Summary {
	for e.Phase() == session.PhaseActive {
		v, ok := e.Current()
		if !ok {
			fmt.Fprintf(out, "No questions for %s yet.\n", e.Subject())
			break
		}
		printQuestion(out, v)

		fmt.Fprintf(out, "Answer [1-%d, enter to skip, q to quit]: ", len(v.Question.Options))
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "q" {
			break
		}
		if line != "" {
			n, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintln(out, "Not a number.")
				continue
			}
			a, err := e.Submit(ctx, n-1)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			printVerdict(out, v.Question, a)
		}
		e.Advance()
	}
	return session.BuildSummary(e)
}

func printQuestion(out io.Writer, v session.View) {
	fmt.Fprintf(out, "\n[%d/%d] %s\n", v.Position+1, session.RoundSize, v.Question.Text)
	for i, opt := range v.Question.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
}

func printVerdict(out io.Writer, q bank.Question, a session.Answer) {
	if a.Correct {
		fmt.Fprintln(out, "Correct!")
	} else {
		fmt.Fprintf(out, "Incorrect. Answer: %s\n", q.CorrectOption())
	}
	if q.Explanation != "" {
		fmt.Fprintf(out, "  %s\n", q.Explanation)
	}
}
