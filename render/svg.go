package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Color is an SVG paint value such as "red", "rgb(255,16,12)" or
// "rgba(255,16,12,0.5)".
type Color string

// NoneColor disables filling or stroking a shape.
const NoneColor Color = "none"

// RGB returns the opaque color with the given red, green and blue channels.
func RGB(r, g, b uint8) Color {
	return Color(fmt.Sprintf("rgb(%d,%d,%d)", r, g, b))
}

// RGBA returns the color with the given channels and opacity in [0, 1].
func RGBA(r, g, b uint8, opacity float64) Color {
	return Color(fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, formatNumber(opacity)))
}

// Point is a position on the canvas.
type Point struct {
	X float64
	Y float64
}

// paint holds the presentation attributes shared by all shapes. Empty values
// are not rendered.
type paint struct {
	Fill           Color
	Stroke         Color
	StrokeWidth    float64
	StrokeLineCap  string
	StrokeLineJoin string
}

func (p paint) writeAttrs(sb *strings.Builder) {
	if p.Fill != "" {
		fmt.Fprintf(sb, ` fill="%s"`, p.Fill)
	}
	if p.Stroke != "" {
		fmt.Fprintf(sb, ` stroke="%s"`, p.Stroke)
	}
	if p.StrokeWidth != 0 {
		fmt.Fprintf(sb, ` stroke-width="%s"`, formatNumber(p.StrokeWidth))
	}
	if p.StrokeLineCap != "" {
		fmt.Fprintf(sb, ` stroke-linecap="%s"`, p.StrokeLineCap)
	}
	if p.StrokeLineJoin != "" {
		fmt.Fprintf(sb, ` stroke-linejoin="%s"`, p.StrokeLineJoin)
	}
}

type element interface {
	markup() string
}

type circle struct {
	paint
	Center Point
	Radius float64
}

func (c circle) markup() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="%s"`,
		formatNumber(c.Center.X), formatNumber(c.Center.Y), formatNumber(c.Radius))
	c.writeAttrs(&sb)
	sb.WriteString(" />")
	return sb.String()
}

type polyline struct {
	paint
	Points []Point
}

func (pl polyline) markup() string {
	sb := strings.Builder{}
	sb.WriteString(`<polyline points="`)
	for i, p := range pl.Points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatNumber(p.X))
		sb.WriteByte(',')
		sb.WriteString(formatNumber(p.Y))
	}
	sb.WriteByte('"')
	pl.writeAttrs(&sb)
	sb.WriteString("/>")
	return sb.String()
}

type text struct {
	paint
	Position   Point
	Offset     Point
	FontSize   int
	FontFamily string
	FontWeight string
	Data       string
}

var textEscaper = strings.NewReplacer(
	`"`, "&quot;",
	`'`, "&apos;",
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
)

func (t text) markup() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, `<text x="%s" y="%s" dx="%s" dy="%s" font-size="%d"`,
		formatNumber(t.Position.X), formatNumber(t.Position.Y),
		formatNumber(t.Offset.X), formatNumber(t.Offset.Y), t.FontSize)
	if t.FontFamily != "" {
		fmt.Fprintf(&sb, ` font-family="%s"`, t.FontFamily)
	}
	if t.FontWeight != "" {
		fmt.Fprintf(&sb, ` font-weight="%s"`, t.FontWeight)
	}
	t.writeAttrs(&sb)
	sb.WriteByte('>')
	sb.WriteString(textEscaper.Replace(t.Data))
	sb.WriteString("</text>")
	return sb.String()
}

// Document is an SVG image made of shapes drawn in insertion order.
type Document struct {
	elements []element
}

func (d *Document) add(e element) {
	d.elements = append(d.elements, e)
}

// Len returns the number of shapes in the document.
func (d *Document) Len() int {
	return len(d.elements)
}

// WriteTo writes the document as a standalone SVG file.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	n := 0
	write := func(s string) {
		m, _ := bw.WriteString(s)
		n += m
	}

	write("<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n")
	write("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\">\n")
	for _, e := range d.elements {
		write(e.markup())
		write("\n")
	}
	write("</svg>")

	return int64(n), bw.Flush()
}

// String returns the document as a standalone SVG file.
func (d *Document) String() string {
	sb := strings.Builder{}
	d.WriteTo(&sb)
	return sb.String()
}

// formatNumber prints v with at most 6 significant digits.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
