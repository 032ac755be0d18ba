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

package export

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ulikunitz/xz"

	"github.com/xiaoqidun/advisor"
)

// buildHelpFile lays out a two-topic help file with one global context.
// The second topic links to a context that does not exist.
func buildHelpFile() []byte {
	line := func(text string, attrs ...byte) []byte {
		out := []byte{byte(len(text) + 1)}
		out = append(out, text...)
		out = append(out, byte(len(attrs)+1))
		return append(out, attrs...)
	}
	topic := func(raw []byte) []byte {
		return append([]byte{byte(len(raw)), byte(len(raw) >> 8)}, raw...)
	}
	topics := [][]byte{
		topic(line("Welcome", 0, 1, 7)),
		topic(line("See Gone", 0, 0xFF, 5, 8, 'G', 'o', 'n', 'e', 0)),
	}

	le := binary.LittleEndian
	buf := make([]byte, advisor.AdvisorHeaderSize)
	le.PutUint16(buf[0:], advisor.AdvisorMagic)
	le.PutUint16(buf[2:], advisor.AdvisorVersion)
	buf[6] = '@'
	le.PutUint16(buf[8:], uint16(len(topics)))
	le.PutUint16(buf[10:], 1)
	le.PutUint16(buf[12:], 40)
	copy(buf[16:28], "EXPORT.HLP  ")

	topicMap := uint32(len(buf))
	buf = append(buf, make([]byte, 4*len(topics))...)
	for i, t := range topics {
		le.PutUint32(buf[int(topicMap)+4*i:], uint32(len(buf)))
		buf = append(buf, t...)
	}
	docEnd := uint32(len(buf))
	contextMap := uint32(len(buf))
	buf = le.AppendUint16(buf, 0)
	contextStrings := uint32(len(buf))
	buf = append(buf, "Welcome\x00"...)

	le.PutUint32(buf[34:], topicMap)
	le.PutUint32(buf[38:], contextStrings)
	le.PutUint32(buf[42:], contextMap)
	le.PutUint32(buf[54:], topicMap)
	le.PutUint32(buf[66:], docEnd)
	return buf
}

func loadDocument(t *testing.T) *advisor.Document {
	t.Helper()
	doc, err := advisor.DecodeBytes(buildHelpFile(), nil)
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	return doc
}

// TestExport verifies the summary, topic pages and previews are written.
func TestExport(t *testing.T) {
	doc := loadDocument(t)
	dir := filepath.Join(t.TempDir(), "out")
	var progress, logs bytes.Buffer

	result, err := Export(context.Background(), doc, dir, Options{
		Preview:  true,
		Workers:  2,
		Logger:   slog.New(slog.NewTextHandler(&logs, nil)),
		Progress: &progress,
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var names []string
	for _, f := range result.Files {
		names = append(names, filepath.Base(f))
	}
	sort.Strings(names)
	want := []string{"TOPIC_0.HTML", "TOPIC_0.PNG", "TOPIC_1.HTML", "TOPIC_1.PNG", SummaryFileName}
	sort.Strings(want)
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	if result.Diagnostics != 1 {
		t.Errorf("Diagnostics = %d, want 1", result.Diagnostics)
	}
	if !strings.Contains(logs.String(), "topic=1") {
		t.Errorf("diagnostic log lacks topic attribute:\n%s", logs.String())
	}

	lines := strings.Split(strings.TrimSpace(progress.String()), "\n")
	sort.Strings(lines)
	if diff := cmp.Diff([]string{"Writing topic 0", "Writing topic 1"}, lines); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}

	page, err := os.ReadFile(filepath.Join(dir, "TOPIC_1.HTML"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "See <a class='missing' href='#Gone'>Gone</a>") {
		t.Errorf("topic page missing dead link:\n%s", page)
	}
	page, err = os.ReadFile(filepath.Join(dir, "TOPIC_0.HTML"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "<b><i><u>Welcome</u></i></b>") {
		t.Errorf("topic page missing styles:\n%s", page)
	}

	summary, err := os.ReadFile(filepath.Join(dir, SummaryFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(summary), "       0 Welcome") {
		t.Errorf("summary missing context row:\n%s", summary)
	}

	f, err := os.Open(filepath.Join(dir, "TOPIC_0.PNG"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if got := img.Bounds().Dx(); got != 40*advisor.PreviewCellWidth+1 {
		t.Errorf("preview width = %d", got)
	}
}

// TestExportCancelled verifies a cancelled context stops topic writers.
func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Export(ctx, loadDocument(t), t.TempDir(), Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// TestBundle verifies the tar.xz archive holds every exported file.
func TestBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if _, err := Export(context.Background(), loadDocument(t), dir, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	archive := dir + ".tar.xz"
	if err := Bundle(dir, archive); err != nil {
		t.Fatalf("Bundle failed: %v", err)
	}

	f, err := os.Open(archive)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	xr, err := xz.NewReader(f)
	if err != nil {
		t.Fatalf("xz.NewReader failed: %v", err)
	}
	tr := tar.NewReader(xr)
	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar.Next failed: %v", err)
		}
		names = append(names, hdr.Name)
	}
	sort.Strings(names)
	want := []string{"TOPIC_0.HTML", "TOPIC_1.HTML", SummaryFileName}
	sort.Strings(want)
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("archive mismatch (-want +got):\n%s", diff)
	}
}

// TestPreviewFileName verifies preview names follow topic page names.
func TestPreviewFileName(t *testing.T) {
	doc := loadDocument(t)
	topic, ok := doc.Topic(1)
	if !ok {
		t.Fatal("topic 1 missing")
	}
	if got := PreviewFileName(topic); got != "TOPIC_1.PNG" {
		t.Errorf("PreviewFileName = %q", got)
	}
}
