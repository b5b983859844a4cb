// Copyright 2025 The WordTrie Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command dictgen converts "word frequency" text lists into the binary
// chunk format read by wordtrie, and prints summaries of existing files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "dictgen",
		Short:         "Build and inspect wordtrie dictionary files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetDebug(debug)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Toggle debug logging")

	rootCmd.AddCommand(createBuildCmd())
	rootCmd.AddCommand(createInfoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createBuildCmd() *cobra.Command {
	var output string
	var merge bool

	cmd := &cobra.Command{
		Use:   "build [input]",
		Short: "Convert a text dictionary to a .bin chunk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			entries, err := dictionary.LoadFile(input)
			if err != nil {
				return err
			}
			if merge {
				entries = mergeEntries(entries)
			}

			if output == "" {
				output = "dict_0001.bin"
			}
			if err := utils.EnsureDir(filepath.Dir(output)); err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := dictionary.WriteBinary(f, entries); err != nil {
				f.Close()
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			log.Infof("Wrote %s entries to %s", utils.FormatWithCommas(len(entries)), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default dict_0001.bin)")
	cmd.Flags().BoolVar(&merge, "merge", true, "Normalize words and sum duplicate frequencies")
	return cmd
}

func createInfoCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Summarize a dictionary file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := dictionary.DetectFileFormat(path)
			if err != nil {
				return err
			}
			entries, err := dictionary.LoadFile(path)
			if err != nil {
				return err
			}

			d := dictionary.New()
			d.Seed(entries)
			stats := d.Stats()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "format:    %s\n", format)
			fmt.Fprintf(out, "entries:   %s\n", utils.FormatWithCommas(len(entries)))
			fmt.Fprintf(out, "words:     %s\n", utils.FormatWithCommas(stats.TotalWords))
			fmt.Fprintf(out, "nodes:     %s\n", utils.FormatWithCommas(stats.TotalNodes))
			fmt.Fprintf(out, "max depth: %d\n", stats.MaxDepth)

			merged := mergeEntries(entries)
			if top > len(merged) {
				top = len(merged)
			}
			for i, e := range merged[:top] {
				fmt.Fprintf(out, "%3d. %-24s %s\n", i+1, e.Word, utils.FormatWithCommas(e.Frequency))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", 10, "Number of top words to list")
	return cmd
}

// mergeEntries folds duplicates through a Dictionary and orders by frequency.
func mergeEntries(entries []dictionary.Entry) []dictionary.Entry {
	d := dictionary.New()
	d.Seed(entries)
	merged := d.Entries()
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Frequency > merged[j].Frequency
	})
	return merged
}
