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
	"errors"
	"fmt"
)

var (
	// ErrFormat 魔数或版本不匹配
	ErrFormat = errors.New("advisor: bad format")
	// ErrUnsupported 未支持的特性
	ErrUnsupported = errors.New("advisor: unsupported feature")
	// ErrCorrupt 数据损坏
	ErrCorrupt = errors.New("advisor: corrupt data")
	// ErrMissingReference 缺失的全局上下文引用
	ErrMissingReference = errors.New("advisor: missing reference")
	// ErrCodec 文本解码失败
	ErrCodec = errors.New("advisor: codec decode failed")
	// ErrIO 资源访问失败
	ErrIO = errors.New("advisor: i/o failure")
)

// FormatError 魔数或版本错误
type FormatError struct {
	Field    string
	Expected uint32
	Actual   uint32
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("advisor: incorrect %s: 0x%04x, expected 0x%04x", e.Field, e.Actual, e.Expected)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// UnsupportedFeatureError 保留字段非零或未知压缩命令
type UnsupportedFeatureError struct {
	Feature string
	Offset  uint32
	Value   uint32
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("advisor: unsupported %s at offset %d: value 0x%x", e.Feature, e.Offset, e.Value)
}

func (e *UnsupportedFeatureError) Unwrap() error {
	return ErrUnsupported
}

// CorruptDataError 长度不符或越界读取
type CorruptDataError struct {
	Context  string
	Offset   int
	Expected int
	Actual   int
}

func (e *CorruptDataError) Error() string {
	if e.Expected != 0 || e.Actual != 0 {
		return fmt.Sprintf("advisor: corrupt %s at offset %d: expected %d, got %d", e.Context, e.Offset, e.Expected, e.Actual)
	}
	return fmt.Sprintf("advisor: corrupt %s at offset %d", e.Context, e.Offset)
}

func (e *CorruptDataError) Unwrap() error {
	return ErrCorrupt
}

// MissingReferenceError 全局上下文标识不存在, 非致命
type MissingReferenceError struct {
	ID    string
	Local int
}

func (e *MissingReferenceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("advisor: link references missing global context id %q", e.ID)
	}
	return fmt.Sprintf("advisor: link references missing local context id %d", e.Local)
}

func (e *MissingReferenceError) Unwrap() error {
	return ErrMissingReference
}

// CodecDecodeError 字节无法按字符集解码, 非致命
type CodecDecodeError struct {
	Codec    string
	Replaced int
	Err      error
}

func (e *CodecDecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("advisor: %s decode: %v", e.Codec, e.Err)
	}
	return fmt.Sprintf("advisor: %s decode replaced %d undecodable byte(s)", e.Codec, e.Replaced)
}

func (e *CodecDecodeError) Unwrap() error {
	return ErrCodec
}

// IOError 资源访问错误
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("advisor: failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("advisor: failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// LineDiagnostic 定位到主题行的非致命错误
type LineDiagnostic struct {
	Topic int
	Line  int
	Err   error
}

func (e *LineDiagnostic) Error() string {
	return fmt.Sprintf("topic %d line %d: %v", e.Topic, e.Line, e.Err)
}

func (e *LineDiagnostic) Unwrap() error {
	return e.Err
}

// IsFatal 判断错误是否中止加载
// 入参: err 错误
// 返回: bool 是否致命
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMissingReference) || errors.Is(err, ErrCodec) {
		return false
	}
	return true
}

// corruptf 构造数据损坏错误
// 入参: context 上下文, offset 偏移量, expected 期望值, actual 实际值
// 返回: error 错误
func corruptf(context string, offset, expected, actual int) error {
	return &CorruptDataError{Context: context, Offset: offset, Expected: expected, Actual: actual}
}
