package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/routegate/internal/lifecycle"
)

var (
	transitionsFrom   string
	transitionsFormat string
)

func init() {
	rootCmd.AddCommand(transitionsCmd)
	transitionsCmd.Flags().StringVar(&transitionsFrom, "from", "", "Show only events legal from this state")
	transitionsCmd.Flags().StringVarP(&transitionsFormat, "format", "f", "text", "Output format (text|json)")
}

var transitionsCmd = &cobra.Command{
	Use:   "transitions",
	Short: "Show the order lifecycle transition table",
	RunE:  runTransitions,
}

type transitionRow struct {
	From     string `json:"from"`
	Event    string `json:"event"`
	To       string `json:"to"`
	Terminal bool   `json:"terminal"`
}

func runTransitions(cmd *cobra.Command, args []string) error {
	states := lifecycle.AllStates
	if transitionsFrom != "" {
		s := lifecycle.OrderState(transitionsFrom)
		if !lifecycle.IsValidState(s) {
			return fmt.Errorf("unknown state %q", transitionsFrom)
		}
		states = []lifecycle.OrderState{s}
	}

	var rows []transitionRow
	for _, from := range states {
		for _, event := range lifecycle.AllowedEventsFrom(from) {
			to, err := lifecycle.Transition(from, event)
			if err != nil {
				continue
			}
			rows = append(rows, transitionRow{
				From:     string(from),
				Event:    string(event),
				To:       string(to),
				Terminal: lifecycle.IsTerminal(to),
			})
		}
	}

	if transitionsFormat == "json" {
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	for _, r := range rows {
		marker := ""
		if r.Terminal {
			marker = " (terminal)"
		}
		fmt.Printf("%-20s --%s--> %s%s\n", r.From, r.Event, r.To, marker)
	}
	fmt.Printf("\n%d edges across %d states\n", len(rows), len(lifecycle.AllStates))
	return nil
}
