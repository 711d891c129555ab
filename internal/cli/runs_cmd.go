package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/routegate/internal/runs"
)

var runsLatest bool

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().BoolVar(&runsLatest, "latest", false, "Print the latest decided run's artifact")
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: "Lists run directories under the runs directory, newest first. A run\n" +
		"counts as executed only if the runtime's stdout file is present.",
	RunE: runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	if runsLatest {
		latest, err := runs.Latest(rootRunsDir)
		if err != nil {
			return err
		}
		if latest == nil {
			return fmt.Errorf("no decided runs under %s", rootRunsDir)
		}
		data, err := os.ReadFile(filepath.Join(latest.Dir, runs.ArtifactFile))
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		return nil
	}

	infos, err := runs.List(rootRunsDir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Printf("no runs under %s\n", rootRunsDir)
		return nil
	}

	for _, info := range infos {
		status := "partial"
		switch {
		case info.Executed:
			status = "executed"
		case info.HasArtifact:
			status = "decided"
		}
		fmt.Printf("%-40s %-9s %s\n", info.ID, status, info.Modified.Format("2006-01-02 15:04:05"))
	}
	return nil
}
