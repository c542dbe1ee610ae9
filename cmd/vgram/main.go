// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command vgram drives the V-gram indexing core from the command line:
// extracting V-grams from a string or pattern, collecting frequent
// grams and MCELEM statistics over a corpus directory, estimating LIKE
// pattern selectivity, and building/watching an on-disk FGT.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/opentracing/opentracing-go"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uber/jaeger-client-go/config"
	jaegerprom "github.com/uber/jaeger-lib/metrics/prometheus"
	_ "go.uber.org/automaxprocs"

	"github.com/vgram-index/vgram/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	rootFS := flag.NewFlagSet("vgram", flag.ExitOnError)
	logFormat := rootFS.String("log-format", "console", "log output format: console or json")
	logLevel := rootFS.String("log-level", "info", "minimum log level")
	logFile := rootFS.String("log-file", "", "additionally write rotated JSON logs to this file")
	jaegerAddr := rootFS.String("jaeger", "", "if set, send traces to this Jaeger agent address")

	root := &ffcli.Command{
		Name:       "vgram",
		ShortUsage: "vgram <subcommand> [flags] [args...]",
		FlagSet:    rootFS,
		Subcommands: []*ffcli.Command{
			extractCommand(),
			collectFrequentCommand(),
			analyzeCommand(),
			queryCommand(),
			buildFGTCommand(),
			watchCommand(),
		},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}

	if err := root.Parse(args); err != nil {
		return err
	}

	format := logging.FormatConsole
	if *logFormat == "json" {
		format = logging.FormatJSON
	}
	logging.Init(logging.Options{Format: format, Level: *logLevel, LogFile: *logFile})

	if *jaegerAddr != "" {
		closer, err := initTracing(*jaegerAddr)
		if err != nil {
			return err
		}
		defer closer.Close()
	}

	return root.Run(context.Background())
}

func initTracing(agentAddr string) (interface{ Close() error }, error) {
	cfg := config.Configuration{
		ServiceName: "vgram",
		Sampler: &config.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &config.ReporterConfig{
			LocalAgentHostPort: agentAddr,
		},
	}
	// Report the Jaeger client's own internal counters (spans started,
	// dropped for a full reporter queue, etc.) on the same Prometheus
	// registry the subcommands' own metrics use.
	metricsFactory := jaegerprom.New(jaegerprom.WithRegisterer(prometheus.DefaultRegisterer))
	tracer, closer, err := cfg.NewTracer(config.Metrics(metricsFactory))
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}
