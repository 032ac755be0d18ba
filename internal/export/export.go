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

// Package export writes a decoded Advisor document to an output directory:
// a summary report, one HTML page per topic, optional PNG previews and an
// optional tar.xz bundle of everything written.
package export

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ulikunitz/xz"
	"golang.org/x/sync/errgroup"

	"github.com/xiaoqidun/advisor"
)

// SummaryFileName is the name of the summary report inside the output directory.
const SummaryFileName = "_SUMMARY.TXT"

// Options controls what Export writes.
type Options struct {
	Preview  bool         // also write TOPIC_<id>.PNG
	Workers  int          // parallel topic writers, <= 0 means 1
	Logger   *slog.Logger // diagnostics sink, nil means slog.Default()
	Progress io.Writer    // "Writing topic <id>" lines, nil disables
}

// Result summarises an export run.
type Result struct {
	Files       []string
	Diagnostics int
}

// Export writes doc into dir, creating dir if needed.
func Export(ctx context.Context, doc *advisor.Document, dir string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &advisor.IOError{Operation: "create output directory", Path: dir, Err: err}
	}

	for _, diag := range doc.Diagnostics() {
		logDiagnostic(logger, "load diagnostic", diag)
	}

	summaryPath := filepath.Join(dir, SummaryFileName)
	if err := writeFile(summaryPath, doc.WriteSummary); err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		result = &Result{Files: []string{summaryPath}}
	)
	record := func(path string, diags []error) {
		mu.Lock()
		defer mu.Unlock()
		if path != "" {
			result.Files = append(result.Files, path)
		}
		result.Diagnostics += len(diags)
		for _, diag := range diags {
			logDiagnostic(logger, "render diagnostic", diag)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, topic := range doc.Topics() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if opts.Progress != nil {
				mu.Lock()
				fmt.Fprintf(opts.Progress, "Writing topic %d\n", topic.ID())
				mu.Unlock()
			}
			htmlPath := filepath.Join(dir, topic.FileName())
			var diags []error
			err := writeFile(htmlPath, func(w io.Writer) error {
				var werr error
				diags, werr = doc.WriteTopicHTML(w, topic)
				return werr
			})
			if err != nil {
				return err
			}
			record(htmlPath, diags)
			if !opts.Preview {
				return nil
			}
			img, pdiags := doc.RenderPreview(topic)
			if img == nil {
				record("", pdiags)
				return nil
			}
			pngPath := filepath.Join(dir, PreviewFileName(topic))
			if err := writeFile(pngPath, func(w io.Writer) error {
				return png.Encode(w, img.ToGoImage())
			}); err != nil {
				return err
			}
			record(pngPath, pdiags)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// PreviewFileName names the PNG preview of a topic.
func PreviewFileName(t *advisor.Topic) string {
	return strings.TrimSuffix(t.FileName(), ".HTML") + ".PNG"
}

// Bundle packs every regular file under dir into a tar.xz archive at archivePath.
func Bundle(dir, archivePath string) error {
	f, err := os.Create(archivePath)
	if err != nil {
		return &advisor.IOError{Operation: "create archive", Path: archivePath, Err: err}
	}
	defer f.Close()

	xw, err := xz.NewWriter(f)
	if err != nil {
		return fmt.Errorf("xz writer: %w", err)
	}
	tw := tar.NewWriter(xw)

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
	if walkErr != nil {
		return &advisor.IOError{Operation: "bundle", Path: dir, Err: walkErr}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("close xz: %w", err)
	}
	return f.Close()
}

// logDiagnostic logs a non-fatal error, lifting topic and line into attributes.
func logDiagnostic(logger *slog.Logger, msg string, diag error) {
	var ld *advisor.LineDiagnostic
	if errors.As(diag, &ld) {
		logger.Warn(msg, "topic", ld.Topic, "line", ld.Line, "error", ld.Err)
		return
	}
	logger.Warn(msg, "error", diag)
}

// writeFile creates path and hands it to write, closing it on every path.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &advisor.IOError{Operation: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &advisor.IOError{Operation: "close", Path: path, Err: cerr}
		}
	}()
	return write(f)
}
