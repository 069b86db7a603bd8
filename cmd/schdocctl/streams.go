package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/schdockit/pkg/schdoc"
)

func init() {
	rootCmd.AddCommand(newStreamsCmd())
}

func newStreamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streams <file>",
		Short: "List the storages and streams of the container",
		Long: `The streams command lists every storage and stream of the compound file
with its size, start sector, whether it lives in the mini stream and its
modified time when one is recorded.

Example:
  schdocctl streams board.SchDoc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreams(args)
		},
	}
	return cmd
}

func runStreams(args []string) error {
	streams, err := schdoc.ListStreams(args[0])
	if err != nil {
		return fmt.Errorf("failed to list streams: %w", err)
	}
	if jsonOut {
		return printJSON(streams)
	}
	printInfo("%s\n", streamTable(streams))
	return nil
}

func streamTable(streams []schdoc.StreamInfo) string {
	rows := make([][]string, 0, len(streams))
	for _, s := range streams {
		typ, mini := "stream", ""
		if s.Storage {
			typ = "storage"
		}
		if s.Mini {
			mini = "yes"
		}
		modified := ""
		if !s.Modified.IsZero() {
			modified = s.Modified.Format(time.DateTime)
		}
		rows = append(rows, []string{
			s.Path,
			typ,
			strconv.FormatUint(s.Size, 10),
			strconv.FormatUint(uint64(s.StartSector), 10),
			mini,
			modified,
		})
	}
	return renderTable([]string{"Path", "Type", "Size", "Start", "Mini", "Modified"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft})
}
