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

// Package advisor 解码 DOS 时代 Advisor 帮助文件, 生成带样式与交叉引用的主题文本并渲染为 HTML
package advisor

import (
	"encoding/hex"
	"io"
	"log/slog"
	"os"

	"github.com/zeebo/blake3"
)

// Options 解码选项
type Options struct {
	// Codec 文本字符集, 为 nil 时使用 IBM850
	Codec *Codec
	// Logger 调试日志, 为 nil 时丢弃
	Logger *slog.Logger
}

// DefaultOptions 默认解码选项
// 返回: Options 选项
func DefaultOptions() Options {
	return Options{Codec: DefaultCodec()}
}

// Load 打开并解码帮助文件
// 入参: path 文件路径, opts 选项 (可为 nil)
// 返回: *Document 文档, error 错误信息
func Load(path string, opts *Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Operation: "open", Path: path, Err: err}
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &IOError{Operation: "read", Path: path, Err: err}
	}
	return DecodeBytes(data, opts)
}

// Decode 从读取器解码帮助文件
// 入参: r 读取器, opts 选项 (可为 nil)
// 返回: *Document 文档, error 错误信息
func Decode(r io.Reader, opts *Options) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Operation: "read", Err: err}
	}
	return DecodeBytes(data, opts)
}

// DecodeBytes 从内存数据解码帮助文件; 出错时不返回部分结果
// 入参: data 文件数据, opts 选项 (可为 nil)
// 返回: *Document 文档, error 错误信息
func DecodeBytes(data []byte, opts *Options) (*Document, error) {
	codec := DefaultCodec()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts != nil {
		if opts.Codec != nil {
			codec = opts.Codec
		}
		if opts.Logger != nil {
			logger = opts.Logger
		}
	}
	doc, err := assembleDocument(data, codec, logger)
	if err != nil {
		return nil, err
	}
	sum := blake3.Sum256(data)
	doc.digest = hex.EncodeToString(sum[:])
	return doc, nil
}
