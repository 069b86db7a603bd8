package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/schdockit/pkg/schdoc"
)

var (
	recordsKind  int
	recordsLimit int
)

func init() {
	cmd := newRecordsCmd()
	cmd.Flags().IntVar(&recordsKind, "kind", -1, "Only show records with this RECORD value")
	cmd.Flags().IntVar(&recordsLimit, "limit", 0, "Show at most this many records (0 for all)")
	rootCmd.AddCommand(cmd)
}

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records <file>",
		Short: "Dump the records of a document",
		Long: `The records command prints every decoded record with its index, kind,
owner and raw properties.

Example:
  schdocctl records board.SchDoc
  schdocctl records board.SchDoc --kind 1
  schdocctl records board.SchDoc --json --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(args)
		},
	}
	return cmd
}

type recordOut struct {
	Index      int               `json:"index"`
	Record     int               `json:"record"`
	Kind       string            `json:"kind"`
	Owner      int               `json:"owner"`
	Stream     string            `json:"stream"`
	Properties map[string]string `json:"properties,omitempty"`
	Bytes      int               `json:"bytes,omitempty"`
}

func runRecords(args []string) error {
	doc, err := schdoc.Open(args[0], &schdoc.OpenOptions{Logger: logger()})
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	var out []recordOut
	var rows [][]string
	for _, o := range doc.Objects() {
		if recordsKind >= 0 && int(o.Kind()) != recordsKind {
			continue
		}
		if recordsLimit > 0 && len(out) >= recordsLimit {
			break
		}
		b := o.Common()
		r := recordOut{
			Index:  b.Index,
			Record: int(o.Kind()),
			Kind:   o.Kind().String(),
			Owner:  b.OwnerIndex,
			Stream: b.Stream.String(),
		}
		props := b.Props()
		if props.Len() > 0 {
			r.Properties = props.Map()
		} else {
			r.Bytes = len(b.Raw())
		}
		out = append(out, r)
		rows = append(rows, []string{
			strconv.Itoa(r.Index),
			r.Kind,
			strconv.Itoa(r.Owner),
			props.String(),
		})
	}

	if jsonOut {
		return printJSON(out)
	}
	printInfo("%s\n", renderTable([]string{"Index", "Kind", "Owner", "Properties"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft}))
	printVerbose("%d records\n", len(out))
	return nil
}
