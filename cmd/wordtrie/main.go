// Copyright 2025 The WordTrie Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main is the wordtrie binary: a prefix dictionary with frequency
ranked completions, served over MessagePack IPC, HTTP, or an interactive
prompt.

# Usage

Serve MessagePack requests on stdin/stdout:

	wordtrie serve

Serve the JSON API:

	wordtrie http --port 8080

Try things by hand:

	wordtrie cli --limit 10

Show or reset the config file:

	wordtrie config --reset

Print dictionary stats after seeding:

	wordtrie stats --dict words.txt

# Seeding

Every command starts from the built-in seed list unless
[dict] skip_builtin_seed is set. Extra words come from --dict or
[dict] seed_path; text files hold "word frequency" lines and .bin files
use the chunk format written by dictgen.

# Configuration

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[dict]
	default_limit = 5
	rank_by = "frequency"
	hot_cache_size = 256
	activity_size = 50

	[http]
	host = "127.0.0.1"
	port = 8080

The file lives under the user config dir and is created with defaults on first run.

# IPC Protocol

	{"id": "1", "p": "app", "l": 3}
	{"id": "1", "s": [{"w": "app", "r": 1, "f": 5}], "c": 1, "t": 12}

	{"id": "2", "action": "accept", "w": "apple"}
	{"id": "2", "status": "ok", "w": "apple", "f": 4}
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
)

// global flags
var (
	configPath string
	dictPath   string
	debugMode  bool
)

// sigHandler exits on interrupt for commands without their own shutdown path.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Prefix dictionary with ranked word completions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&dictPath, "dict", "", "Extra dictionary file (.txt, .dict or .bin)")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Toggle debug logging")

	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createHTTPCmd())
	rootCmd.AddCommand(createCLICmd())
	rootCmd.AddCommand(createStatsCmd())
	rootCmd.AddCommand(createConfigCmd())
	rootCmd.AddCommand(createVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
