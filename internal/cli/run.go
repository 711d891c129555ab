package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/routegate/internal/artifact"
	"github.com/ppiankov/routegate/internal/model"
)

var (
	runID    string
	runFile  string
	runQuiet bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runID, "run-id", "", "Run identifier (derived from the input when omitted)")
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "Read input from file instead of arguments ('-' for stdin)")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Suppress the artifact; print only the decision line")
}

var runCmd = &cobra.Command{
	Use:   "run [input...]",
	Short: "Gate one input through the full pipeline",
	Long: "Acquires proposals for the input, validates them against the closed\n" +
		"schema, decides, and persists the run directory. A REJECT decision is a\n" +
		"successful run and exits 0; only orchestration failures exit nonzero.",
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	input, err := readRunInput(args)
	if err != nil {
		return err
	}

	pipeline, closer, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closer()

	outcome, err := pipeline.Run(cmd.Context(), rootRunsDir, runID, input)
	if err != nil {
		return err
	}

	rec := outcome.Record
	if !runQuiet {
		data, err := artifact.ToJSON(rec)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	}

	switch rec.Decision {
	case model.Accept:
		fmt.Fprintf(os.Stderr, "%s ACCEPT (run %s)\n", rec.AcceptPayload.Kind, outcome.RunID)
		if outcome.Result.Executed {
			fmt.Fprintf(os.Stderr, "runtime exit status %d\n", outcome.Result.ExitStatus)
			os.Stdout.Write(outcome.Result.Stdout)
		}
	default:
		fmt.Fprintf(os.Stderr, "REJECT %s (run %s)\n", rec.RejectPayload.ReasonCode, outcome.RunID)
	}

	return nil
}

func readRunInput(args []string) ([]byte, error) {
	switch {
	case runFile == "-":
		return io.ReadAll(os.Stdin)
	case runFile != "":
		return os.ReadFile(runFile)
	case len(args) > 0:
		return []byte(strings.Join(args, " ")), nil
	default:
		return nil, fmt.Errorf("no input: pass text arguments or --file")
	}
}
