package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/routegate/internal/proposal"
	"github.com/ppiankov/routegate/internal/seam"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate proposal-set JSON against the closed schema",
	Long: "Checks a serialized proposal set against schema m1.0: closed objects,\n" +
		"bounded sizes, known kinds. Prints the validator error codes and exits 1\n" +
		"when the set is invalid. Reads stdin when no file is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	ps, verr := proposal.Validate(seam.Wrap(data))
	if verr != nil {
		for _, code := range verr.Codes {
			fmt.Println(code)
		}
		os.Exit(1)
	}

	fmt.Printf("valid: %d proposal(s), schema %s\n", len(ps.Proposals), ps.SchemaVersion)
	return nil
}
