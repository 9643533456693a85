package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"stitch/internal/merge"
	"stitch/internal/traceio"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge a sample capture and a marker capture into one profile",
	Args:  cobra.NoArgs,
	RunE:  runMerge,
}

func init() {
	mergeCmd.Flags().String("samples-file", "", "sample capture (simpleperf via samply import), .json or .json.gz")
	mergeCmd.Flags().String("markers-file", "", "marker capture (Gecko profiler), .json or .json.gz")
	mergeCmd.Flags().String("output-file", "", "destination for the merged profile (.json.gz)")
	mergeCmd.Flags().String("filter-by-process-prefix", "", "retain only sample processes whose name starts with this prefix")
	for _, name := range []string{"samples-file", "markers-file", "output-file"} {
		if err := mergeCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

func runMerge(cmd *cobra.Command, _ []string) error {
	samplesPath, err := cmd.Flags().GetString("samples-file")
	if err != nil {
		return err
	}
	markersPath, err := cmd.Flags().GetString("markers-file")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return err
	}
	prefix := cfg.ProcessPrefix
	if cmd.Flags().Changed("filter-by-process-prefix") {
		prefix, err = cmd.Flags().GetString("filter-by-process-prefix")
		if err != nil {
			return err
		}
	}

	start := time.Now()
	sampleDoc, err := traceio.Read(samplesPath)
	if err != nil {
		return fmt.Errorf("loading sample capture: %w", err)
	}
	markerDoc, err := traceio.Read(markersPath)
	if err != nil {
		return fmt.Errorf("loading marker capture: %w", err)
	}
	log.Debug().
		Int("sample_processes", len(sampleDoc.Processes)).
		Int("marker_processes", len(markerDoc.Processes)).
		Dur("elapsed", time.Since(start)).
		Msg("loaded captures")

	merged, err := merge.Documents(sampleDoc, markerDoc, merge.Options{ProcessPrefix: prefix})
	if err != nil {
		return err
	}
	if err := traceio.Write(outputPath, merged); err != nil {
		return err
	}
	log.Info().
		Str("output", outputPath).
		Int("processes", len(merged.Processes)).
		Dur("elapsed", time.Since(start)).
		Msg("merged profile written")
	return nil
}
