package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/schdockit/pkg/schdoc"
	"github.com/joshuapare/schdockit/schdoc/verify"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Check container and document structure",
		Long: `The verify command checks the compound file (sector chains, FAT
markers, overlapping allocations) and the decoded document (header and sheet
placement, owner references, vertex counts, font references, damaged record
framing). It exits non-zero when anything is found.

Example:
  schdocctl verify board.SchDoc
  schdocctl verify board.SchDoc --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

type verifyResult struct {
	File      string           `json:"file"`
	Container string           `json:"container_error,omitempty"`
	Objects   int              `json:"objects"`
	Anomalies []verify.Anomaly `json:"anomalies"`
	Valid     bool             `json:"valid"`
}

func runVerify(args []string) error {
	path := args[0]
	printVerbose("Verifying document: %s\n", path)

	doc, err := schdoc.Open(path, &schdoc.OpenOptions{Logger: logger()})
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	res := verifyResult{File: path, Objects: doc.Len()}
	if cerr := verify.Container(doc.Template()); cerr != nil {
		res.Container = cerr.Error()
	}
	res.Anomalies = doc.Verify().Anomalies
	res.Valid = res.Container == "" && len(res.Anomalies) == 0

	if jsonOut {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		printInfo("\nVerifying %s...\n\n", path)
		if res.Container != "" {
			printInfo("Container: ✗ %s\n", res.Container)
		} else {
			printInfo("Container: ✓ valid\n")
		}
		if len(res.Anomalies) > 0 {
			rows := make([][]string, 0, len(res.Anomalies))
			for _, a := range res.Anomalies {
				idx := "-"
				if a.Index >= 0 {
					idx = strconv.Itoa(a.Index)
				}
				rows = append(rows, []string{a.Severity.String(), string(a.Code), idx, a.Message})
			}
			printInfo("\n%s\n", renderTable([]string{"Severity", "Check", "Object", "Message"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
		}
		if res.Valid {
			printInfo("\nResult: ✓ VALID (%d objects)\n", res.Objects)
		} else {
			printInfo("\nResult: ✗ %d anomalies\n", len(res.Anomalies))
		}
	}

	if !res.Valid {
		return errors.New("verification failed")
	}
	return nil
}
