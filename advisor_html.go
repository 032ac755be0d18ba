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

package advisor

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"
)

var (
	styleOpen = []struct {
		flag Style
		tag  string
	}{{StyleBold, "<b>"}, {StyleItalic, "<i>"}, {StyleUnderline, "<u>"}}
	styleClose = []struct {
		flag Style
		tag  string
	}{{StyleUnderline, "</u>"}, {StyleItalic, "</i>"}, {StyleBold, "</b>"}}
)

// LineHTML 渲染单行: 先插入样式标记, 再按文件顺序插入链接标记
// 入参: line 行对象
// 返回: string HTML 片段, []error 非致命错误
func (d *Document) LineHTML(line *Line) (string, []error) {
	var diags []error
	elements, err := line.Elements()
	if err != nil {
		diags = append(diags, err)
	}
	runes := []rune(line.Text())
	tbl := newShiftTable(len(runes))
	out := make([]byte, 0, len(line.Text())*2)
	for _, e := range elements {
		run, ok := e.(TextRun)
		if !ok {
			continue
		}
		for _, s := range styleOpen {
			if run.Style.Has(s.flag) {
				out = append(out, s.tag...)
			}
		}
		for i := run.Start; i < run.End; i++ {
			escaped := html.EscapeString(string(runes[i]))
			tbl.shift[i] = len(out) - i
			tbl.width[i] = len(escaped)
			out = append(out, escaped...)
		}
		for _, s := range styleClose {
			if run.Style.Has(s.flag) {
				out = append(out, s.tag...)
			}
		}
	}
	for _, e := range elements {
		x, ok := e.(CrossReference)
		if !ok {
			continue
		}
		href, _, rerr := d.ResolveReference(x)
		if rerr != nil {
			diags = append(diags, rerr)
		}
		open, closing := linkMarkup(href, rerr != nil)
		out = insertLink(out, tbl, x, open, closing)
	}
	return string(out), diags
}

// TopicHTML 渲染完整主题页面
// 入参: t 主题
// 返回: string HTML 文档, []error 非致命错误
func (d *Document) TopicHTML(t *Topic) (string, []error) {
	var sb strings.Builder
	diags, _ := d.WriteTopicHTML(&sb, t)
	return sb.String(), diags
}

// WriteTopicHTML 将主题页面写入输出
// 入参: w 输出, t 主题
// 返回: []error 非致命错误, error 写入错误
func (d *Document) WriteTopicHTML(w io.Writer, t *Topic) ([]error, error) {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "<!doctype html>")
	fmt.Fprintln(bw, "<html>")
	fmt.Fprintln(bw, "<head>")
	fmt.Fprintln(bw, "<meta charset='utf8'>")
	fmt.Fprintf(bw, "<title>Topic %d - %s</title>\n", t.ID(), html.EscapeString(d.OriginalName()))
	fmt.Fprintln(bw, "</head>")
	fmt.Fprintln(bw, "<body><pre>")
	var diags []error
	for i, line := range t.lines {
		text, errs := d.LineHTML(line)
		for _, err := range errs {
			diags = append(diags, &LineDiagnostic{Topic: t.ID(), Line: i, Err: err})
		}
		fmt.Fprintln(bw, text)
	}
	fmt.Fprintln(bw, "</pre></body>")
	fmt.Fprintln(bw, "</html>")
	if err := bw.Flush(); err != nil {
		return diags, &IOError{Operation: "write topic", Path: t.FileName(), Err: err}
	}
	return diags, nil
}

// WriteSummary 写入文档摘要报告
// 入参: w 输出
// 返回: error 写入错误
func (d *Document) WriteSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Original name        : %s\n", d.OriginalName())
	fmt.Fprintf(bw, "Max display width    : %d characters\n", d.MaxDisplayWidth())
	fmt.Fprintf(bw, "Application prefix   : '%c' (%d)\n", d.ApplicationPrefix(), d.header.ApplicationPrefix)
	fmt.Fprintf(bw, "Topic count          : %d\n\n", len(d.topics))
	fmt.Fprintf(bw, "Global context count : %d\n", d.NumGlobalContexts())
	fmt.Fprintf(bw, "Source digest        : blake3:%s\n\n", d.Digest())
	fmt.Fprintf(bw, "Global context references:\n\n")
	fmt.Fprintf(bw, "localId  globalContextId\n")
	for _, gc := range d.GlobalContexts() {
		fmt.Fprintf(bw, "%8d %s\n", gc.Topic.ID(), gc.ID)
	}
	if err := bw.Flush(); err != nil {
		return &IOError{Operation: "write summary", Err: err}
	}
	return nil
}
