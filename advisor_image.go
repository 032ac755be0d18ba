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
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ComposeOp 组合操作类型
type ComposeOp int

const (
	// ComposeOr 或操作
	ComposeOr ComposeOp = 0
	// ComposeReplace 替换操作
	ComposeReplace ComposeOp = 1
)

const (
	// PreviewCellWidth 预览字符单元宽度
	PreviewCellWidth = 7
	// PreviewCellHeight 预览字符单元高度
	PreviewCellHeight = 13
	// previewAscent 基线距单元顶部距离
	previewAscent = 11
)

// Image 1位墨迹位图, 置位表示墨迹
type Image struct {
	width  int32
	height int32
	stride int32
	data   []byte
}

// NewImage 创建新图像
// 入参: width 宽度, height 高度
// 返回: *Image 图像对象
func NewImage(width, height int32) *Image {
	if width <= 0 || height <= 0 {
		return nil
	}
	stride := (width + 7) / 8
	if stride <= 0 || height > 2147483647/stride {
		return nil
	}
	return &Image{
		width:  width,
		height: height,
		stride: stride,
		data:   make([]byte, stride*height),
	}
}

// Width 获取宽度
// 返回: int32 宽度
func (i *Image) Width() int32 {
	return i.width
}

// Height 获取高度
// 返回: int32 高度
func (i *Image) Height() int32 {
	return i.height
}

// GetPixel 获取像素值
// 入参: x 轴坐标, y 轴坐标
// 返回: int 像素值
func (i *Image) GetPixel(x, y int32) int {
	if x < 0 || x >= i.width || y < 0 || y >= i.height {
		return 0
	}
	byteIdx := y*i.stride + (x >> 3)
	bitIdx := 7 - (x & 7)
	return int((i.data[byteIdx] >> bitIdx) & 1)
}

// SetPixel 设置像素值
// 入参: x 轴坐标, y 轴坐标, v 像素值
func (i *Image) SetPixel(x, y int32, v int) {
	if x < 0 || x >= i.width || y < 0 || y >= i.height {
		return
	}
	byteIdx := y*i.stride + (x >> 3)
	mask := byte(1 << (7 - (x & 7)))
	if v != 0 {
		i.data[byteIdx] |= mask
	} else {
		i.data[byteIdx] &^= mask
	}
}

// ComposeTo 将当前图像组合到目标图像
// 入参: dst 目标图像, x 轴坐标, y 轴坐标, op 组合操作
func (i *Image) ComposeTo(dst *Image, x, y int32, op ComposeOp) {
	if i == nil || dst == nil {
		return
	}
	for h := int32(0); h < i.height; h++ {
		for w := int32(0); w < i.width; w++ {
			src := i.GetPixel(w, h)
			if op == ComposeOr {
				src |= dst.GetPixel(x+w, y+h)
			}
			dst.SetPixel(x+w, y+h, src)
		}
	}
}

// ColorModel 实现 image.Image
func (i *Image) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds 实现 image.Image
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(i.width), int(i.height))
}

// At 实现 image.Image, 墨迹为黑色
func (i *Image) At(x, y int) color.Color {
	if i.GetPixel(int32(x), int32(y)) != 0 {
		return color.Gray{Y: 0}
	}
	return color.Gray{Y: 0xFF}
}

// Set 实现 draw.Image, 暗色视为墨迹
func (i *Image) Set(x, y int, c color.Color) {
	g := color.GrayModel.Convert(c).(color.Gray)
	if g.Y < 0x80 {
		i.SetPixel(int32(x), int32(y), 1)
	}
}

// ToGoImage 转换为灰度图像
// 返回: *image.Gray 图像
func (i *Image) ToGoImage() *image.Gray {
	img := image.NewGray(i.Bounds())
	for y := int32(0); y < i.height; y++ {
		for x := int32(0); x < i.width; x++ {
			if i.GetPixel(x, y) == 0 {
				img.Pix[int(y)*img.Stride+int(x)] = 0xFF
			}
		}
	}
	return img
}

// RenderPreview 以固定字符单元绘制主题, 宽度取最大显示宽度与最长行中的较大者
// 入参: t 主题
// 返回: *Image 位图, []error 非致命错误
func (d *Document) RenderPreview(t *Topic) (*Image, []error) {
	cols := d.MaxDisplayWidth()
	for _, line := range t.lines {
		if n := len([]rune(line.Text())); n > cols {
			cols = n
		}
	}
	rows := len(t.lines)
	if cols == 0 {
		cols = 1
	}
	if rows == 0 {
		rows = 1
	}
	img := NewImage(int32(cols*PreviewCellWidth+1), int32(rows*PreviewCellHeight))
	if img == nil {
		return nil, []error{corruptf("preview size", 0, cols, rows)}
	}
	var diags []error
	for row, line := range t.lines {
		runs, err := line.Runs()
		if err != nil {
			diags = append(diags, &LineDiagnostic{Topic: t.ID(), Line: row, Err: err})
		}
		runes := []rune(line.Text())
		for _, run := range runs {
			drawRun(img, string(runes[run.Start:run.End]), run.Start, row, run.Style)
		}
	}
	return img, diags
}

// drawRun 绘制一个样式游程
// 入参: dst 目标位图, text 文本, col 起始列, row 行号, style 样式
func drawRun(dst *Image, text string, col, row int, style Style) {
	n := len([]rune(text))
	cell := NewImage(int32(n*PreviewCellWidth+1), PreviewCellHeight)
	if cell == nil {
		return
	}
	strikes := 1
	if style.Has(StyleBold) {
		strikes = 2
	}
	for s := 0; s < strikes; s++ {
		drawer := &font.Drawer{
			Dst:  cell,
			Src:  image.Black,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(s, previewAscent),
		}
		drawer.DrawString(text)
	}
	if style.Has(StyleUnderline) {
		for x := int32(0); x < int32(n*PreviewCellWidth); x++ {
			cell.SetPixel(x, previewAscent+1, 1)
		}
	}
	x0 := int32(col * PreviewCellWidth)
	y0 := int32(row * PreviewCellHeight)
	if !style.Has(StyleItalic) {
		cell.ComposeTo(dst, x0, y0, ComposeOr)
		return
	}
	// 斜体: 单元上半部分右移1像素
	for y := int32(0); y < cell.height; y++ {
		shift := int32(0)
		if y < previewAscent/2 {
			shift = 1
		}
		for x := int32(0); x < cell.width; x++ {
			if cell.GetPixel(x, y) != 0 {
				dst.SetPixel(x0+x+shift, y0+y, 1)
			}
		}
	}
}
