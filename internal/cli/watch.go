package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/routegate/internal/daemon"
)

var (
	watchInbox        string
	watchOutbox       string
	watchState        string
	watchPoll         bool
	watchPollInterval time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchInbox, "inbox", "inbox", "Directory to watch for input files")
	watchCmd.Flags().StringVar(&watchOutbox, "outbox", "outbox", "Directory for result summaries")
	watchCmd.Flags().StringVar(&watchState, "state", "state", "Directory for processing state and the PID lock")
	watchCmd.Flags().BoolVar(&watchPoll, "poll", false, "Use polling instead of fsnotify (for NFS)")
	watchCmd.Flags().DurationVar(&watchPollInterval, "poll-interval", 5*time.Second, "Polling interval when --poll is set")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch an inbox directory and gate each dropped input",
	Long: "Runs the gating daemon: every .txt file dropped into the inbox becomes\n" +
		"its own run, the run directory lands under the runs directory, and a\n" +
		"result summary is written to the outbox.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	pipeline, closer, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closer()

	d, err := daemon.New(daemon.Config{
		Dirs: daemon.DirConfig{
			Inbox:  watchInbox,
			Outbox: watchOutbox,
			Runs:   rootRunsDir,
			State:  watchState,
		},
		Pipeline:     pipeline,
		PollMode:     watchPoll,
		PollInterval: watchPollInterval,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down watcher...")
		cancel()
	}()

	fmt.Fprintf(os.Stderr, "routegate watching %s\n", watchInbox)
	return d.Run(ctx)
}
