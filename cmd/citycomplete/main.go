// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the city autocomplete IPC server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

citycomplete drives the "from" and "to" city fields of a delivery calculator.
Typed text is debounced, looked up in a remote Data Source (when enabled) with a
cached copy of its dataset, and falls back to a built-in list of cities whenever
the remote side is slow, down or returns garbage.

# Usage

Start the IPC server with default settings:

	citycomplete

Query a running mock Data Source and enable debug mode:

	citycomplete -remote -endpoint http://localhost:8080/api/cities -d

Run in CLI mode for interactive testing:

	citycomplete -c

# Configuration

Runtime configuration is read from a TOML file created with defaults on first run:

	[suggest]
	min_search_length = 2
	max_results = 10
	debounce_delay_ms = 300
	request_timeout_ms = 5000
	cache_ttl_ms = 3600000
	use_remote_source = false
	remote_endpoint = "http://localhost:8080/api/cities"
	search_param = "query"
	wrap_navigation = false
	fallback_file = ""

	[calculator]
	submit_url = "http://localhost:8080/api/calculator/submit"

# IPC Protocol

The server speaks MessagePack over stdin/stdout, see package server for the
message shapes. Logs always go to stderr.

# Command Line Flags

	-config string
	    Path to a config file
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-remote
	    Query the remote Data Source (overrides use_remote_source)
	-endpoint string
	    Remote Data Source URL (overrides remote_endpoint)
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/citycomplete/internal/cli"
	"github.com/bastiangx/citycomplete/internal/utils"
	"github.com/bastiangx/citycomplete/pkg/calculator"
	"github.com/bastiangx/citycomplete/pkg/config"
	"github.com/bastiangx/citycomplete/pkg/dictionary"
	"github.com/bastiangx/citycomplete/pkg/server"
	"github.com/bastiangx/citycomplete/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "citycomplete"
	gh      = "https://github.com/bastiangx/citycomplete"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, the fetch pipeline and either the IPC server or the CLI.
func main() {
	sigHandler()

	configPath := flag.String("config", "", "Path to a custom config.toml")
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	remote := flag.Bool("remote", false, "Query the remote Data Source (overrides config)")
	endpoint := flag.String("endpoint", "", "Remote Data Source URL (overrides config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	if *remote {
		appConfig.Suggest.UseRemoteSource = true
	}
	if *endpoint != "" {
		appConfig.Suggest.RemoteEndpoint = *endpoint
	}
	opts := appConfig.Suggest.Options()

	fallbackPath := appConfig.Suggest.FallbackFile
	if resolver, err := utils.NewPathResolver(AppName); err == nil {
		fallbackPath = resolver.ResolveRelativePath(fallbackPath)
	}
	fallback := dictionary.Fallback(fallbackPath)

	var source suggest.Source
	if opts.UseRemoteSource {
		source = suggest.NewHTTPSource(opts.RemoteEndpoint, opts.SearchParam)
		log.Debugf("Remote Data Source: %s", opts.RemoteEndpoint)
	}
	fetcher := suggest.NewFetcher(opts, source, nil, fallback)

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"field", appConfig.CLI.Field,
			"minSearchLength", opts.MinSearchLength,
			"maxResults", opts.MaxResults,
			"remote", opts.UseRemoteSource)

		inputHandler := cli.NewInputHandler(fetcher, opts, appConfig.CLI.Field, appConfig.CLI.ShowRegion, os.Stdout)
		if err := inputHandler.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	var submitter server.Submitter
	if appConfig.Calculator.SubmitURL != "" {
		submitter = calculator.NewClient(appConfig.Calculator.SubmitURL)
	}
	srv := server.NewServer(fetcher, opts, submitter, os.Stdin, os.Stdout)

	showStartupInfo(opts, len(fallback))

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Debug("Input closed", "cache", fetcher.Cache().Stats())
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ citycomplete ] Debounced city suggestions with a local fallback")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(opts suggest.Options, fallbackSize int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==============")
	println(" citycomplete ")
	println("==============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("fallback cities: %d", fallbackSize)
	if opts.UseRemoteSource {
		log.Infof("remote: ( %s )", opts.RemoteEndpoint)
	} else {
		log.Info("remote: off")
	}
	log.Info("status: ready")
	println("==============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
