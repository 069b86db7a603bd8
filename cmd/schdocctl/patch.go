package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/schdockit/pkg/schdoc"
)

var (
	patchOutput   string
	patchStrategy string
	patchBackup   bool
)

func init() {
	cmd := newPatchCmd()
	cmd.Flags().StringVarP(&patchOutput, "output", "o", "", "Write to this file instead of replacing the input")
	cmd.Flags().StringVar(&patchStrategy, "strategy", "auto", "Update strategy (auto, in-place, rebuild)")
	cmd.Flags().BoolVar(&patchBackup, "backup", false, "Keep the replaced file as <file>.bak")
	rootCmd.AddCommand(cmd)
}

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <file> <stream> <data-file>",
		Short: "Replace a container stream with the contents of a file",
		Long: `The patch command replaces one stream of the compound file. A stream that
still fits its sectors is overwritten in place; a stream that grows or moves
between mini and regular storage makes the container be rebuilt, with every
other stream copied unchanged.

Strategies:
  auto     - patch in place when possible, rebuild otherwise
  in-place - fail instead of rebuilding
  rebuild  - always rebuild the container

Example:
  schdocctl patch board.SchDoc FileHeader fileheader.bin
  schdocctl patch board.SchDoc Storage storage.bin -o patched.SchDoc --strategy rebuild`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(args)
		},
	}
	return cmd
}

func parseStrategy(s string) (schdoc.Strategy, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return schdoc.StrategyAuto, nil
	case "in-place", "inplace":
		return schdoc.StrategyInPlaceOnly, nil
	case "rebuild":
		return schdoc.StrategyRebuild, nil
	}
	return 0, fmt.Errorf("unknown strategy: %s (must be auto, in-place, or rebuild)", s)
}

func runPatch(args []string) error {
	src, stream, dataPath := args[0], args[1], args[2]
	strategy, err := parseStrategy(patchStrategy)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dataPath, err)
	}
	dst := src
	if patchOutput != "" {
		dst = patchOutput
	}

	res, err := schdoc.PatchStream(src, stream, data, dst, &schdoc.SaveOptions{
		Strategy:     strategy,
		CreateBackup: patchBackup,
		Logger:       logger(),
	})
	if err != nil {
		return fmt.Errorf("failed to patch %s: %w", stream, err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":     dst,
			"stream":   stream,
			"plan":     res.Plans[stream].String(),
			"rebuilt":  res.Rebuilt,
			"old_size": res.OldSize,
			"new_size": res.NewSize,
		})
	}
	printInfo("Patched %s in %s (%s", stream, dst, res.Plans[stream])
	if res.Rebuilt {
		printInfo(", rebuilt in %d iterations", res.Iterations)
	}
	printInfo(")\n")
	printVerbose("  container: %d -> %d bytes\n", res.OldSize, res.NewSize)
	return nil
}
