// Copyright 2026 肖其顿 (XIAO QI DUN)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command advisor2html decodes an Advisor help file and writes one HTML page
// per topic plus a summary report into an output directory.
//
// Usage:
//
//	advisor2html <hlpfile> <outputdir> [--charset IBM850] [--preview] [--archive]
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/xiaoqidun/advisor"
	"github.com/xiaoqidun/advisor/internal/export"
	"github.com/xiaoqidun/advisor/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for advisor2html.
var CLI struct {
	Source string `arg:"" name:"hlpfile" help:"Advisor help file to decode" type:"existingfile"`
	Output string `arg:"" name:"outputdir" help:"Directory to write the summary and topic pages into" type:"path"`

	Charset   string `help:"IANA name of the text encoding used by the help file" default:"IBM850" env:"ADVISOR_CHARSET"`
	LogLevel  string `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"ADVISOR_LOG_LEVEL"`
	LogFormat string `help:"Log format" enum:"text,json" default:"text" env:"ADVISOR_LOG_FORMAT"`
	Preview   bool   `help:"Also write a PNG preview of every topic" env:"ADVISOR_PREVIEW"`
	Archive   bool   `help:"Also bundle the output directory into <outputdir>.tar.xz" env:"ADVISOR_ARCHIVE"`
	Workers   int    `help:"Number of topics rendered in parallel" default:"4" env:"ADVISOR_WORKERS"`

	Version kong.VersionFlag `help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("advisor2html"),
		kong.Description("Convert an Advisor help file into HTML topic pages"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	ctx.FatalIfErrorf(run(context.Background()))
}

func run(ctx context.Context) error {
	level, err := logging.ParseLevel(CLI.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(CLI.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	logger := logging.GetLogger()

	codec, err := advisor.CodecByName(CLI.Charset)
	if err != nil {
		return err
	}

	doc, err := advisor.Load(CLI.Source, &advisor.Options{Codec: codec, Logger: logger})
	if err != nil {
		return fmt.Errorf("load %s: %w", CLI.Source, err)
	}
	logger.Info("loaded document",
		"original_name", doc.OriginalName(),
		"topics", len(doc.Topics()),
		"global_contexts", doc.NumGlobalContexts(),
		"charset", codec.Name())

	res, err := export.Export(ctx, doc, CLI.Output, export.Options{
		Preview:  CLI.Preview,
		Workers:  CLI.Workers,
		Logger:   logger,
		Progress: os.Stdout,
	})
	if err != nil {
		return err
	}
	logger.Info("wrote output", "dir", CLI.Output, "files", len(res.Files), "diagnostics", res.Diagnostics)

	if CLI.Archive {
		archivePath := filepath.Clean(CLI.Output) + ".tar.xz"
		if err := export.Bundle(CLI.Output, archivePath); err != nil {
			return err
		}
		logger.Info("wrote archive", "path", archivePath)
	}
	return nil
}
