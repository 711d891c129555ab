package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/routegate/internal/certify"
	"github.com/ppiankov/routegate/internal/infer"
	"github.com/ppiankov/routegate/internal/scenario"
)

var (
	certifySuite  string
	certifyFormat string
)

func init() {
	rootCmd.AddCommand(certifyCmd)
	certifyCmd.Flags().StringVar(&certifySuite, "suite", "core", "Certification suite (core|extended)")
	certifyCmd.Flags().StringVarP(&certifyFormat, "format", "f", "text", "Output format (text|json)")
}

var certifyCmd = &cobra.Command{
	Use:   "certify [scenario.yaml...]",
	Short: "Run a gating certification suite",
	Long: "Runs a curated set of gating cases through the full pipeline and\n" +
		"reports pass/fail per category. With file arguments, runs those scenario\n" +
		"files instead of a built-in suite. Exit code 0 if all cases pass, 1 if\n" +
		"any fail.\n\n" +
		"Available suites: " + fmt.Sprintf("%v", certify.ListSuites()),
	RunE: runCertify,
}

func runCertify(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return runScenarioFiles(args)
	}

	suite, err := certify.LoadSuite(certifySuite)
	if err != nil {
		return err
	}

	result := certify.Run(suite, infer.Engine)

	switch certifyFormat {
	case "json":
		out, err := certify.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		fmt.Print(certify.FormatText(result))
	}

	if result.Failed > 0 {
		os.Exit(1)
	}

	return nil
}

func runScenarioFiles(paths []string) error {
	var results []*scenario.RunResult
	failed := false
	for _, path := range paths {
		result, err := scenario.LoadAndRun(path, infer.Engine)
		if err != nil {
			return err
		}
		if result.Failed > 0 {
			failed = true
		}
		results = append(results, result)
	}

	switch certifyFormat {
	case "json":
		out, err := scenario.FormatJSON(results)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		fmt.Print(scenario.FormatText(results))
	}

	if failed {
		os.Exit(1)
	}
	return nil
}
