// Package vectordrawable converts SVG documents into Android vector drawable
// XML, the markup format consumed by the mobile rendering target. The
// conversion is a pure transformation: SVG text in, drawable text out.
package vectordrawable

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// svg is the subset of the SVG document model needed for conversion.
type svg struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	grouped
}

// grouped holds the drawable children common to <svg> and <g>.
type grouped struct {
	Paths     []svgPath    `xml:"path"`
	Rects     []svgRect    `xml:"rect"`
	Circles   []svgCircle  `xml:"circle"`
	Ellipses  []svgEllipse `xml:"ellipse"`
	Lines     []svgLine    `xml:"line"`
	Polygons  []svgPoly    `xml:"polygon"`
	Polylines []svgPoly    `xml:"polyline"`
	Groups    []svgGroup   `xml:"g"`
}

type svgGroup struct {
	Transform string `xml:"transform,attr"`
	paint
	grouped
}

type paint struct {
	Fill        string `xml:"fill,attr"`
	FillOpacity string `xml:"fill-opacity,attr"`
	FillRule    string `xml:"fill-rule,attr"`
	Stroke      string `xml:"stroke,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
	StrokeCap   string `xml:"stroke-linecap,attr"`
	StrokeJoin  string `xml:"stroke-linejoin,attr"`
	Opacity     string `xml:"opacity,attr"`
}

type svgPath struct {
	D string `xml:"d,attr"`
	paint
}

type svgRect struct {
	X  string `xml:"x,attr"`
	Y  string `xml:"y,attr"`
	W  string `xml:"width,attr"`
	H  string `xml:"height,attr"`
	Rx string `xml:"rx,attr"`
	Ry string `xml:"ry,attr"`
	paint
}

type svgCircle struct {
	Cx string `xml:"cx,attr"`
	Cy string `xml:"cy,attr"`
	R  string `xml:"r,attr"`
	paint
}

type svgEllipse struct {
	Cx string `xml:"cx,attr"`
	Cy string `xml:"cy,attr"`
	Rx string `xml:"rx,attr"`
	Ry string `xml:"ry,attr"`
	paint
}

type svgLine struct {
	X1 string `xml:"x1,attr"`
	Y1 string `xml:"y1,attr"`
	X2 string `xml:"x2,attr"`
	Y2 string `xml:"y2,attr"`
	paint
}

type svgPoly struct {
	Points string `xml:"points,attr"`
	paint
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ErrConversion is returned for any SVG that cannot be read or parsed. The
// message is shown to the operator as-is.
var ErrConversion = errors.New("변환 중 오류 발생")

// cssColors covers the named colors that appear in practice in guide SVGs.
var cssColors = map[string]string{
	"black":       "#000000",
	"white":       "#FFFFFF",
	"red":         "#FF0000",
	"green":       "#008000",
	"blue":        "#0000FF",
	"gray":        "#808080",
	"grey":        "#808080",
	"yellow":      "#FFFF00",
	"transparent": "#00000000",
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Convert transforms SVG text into an Android vector drawable document. Any
// read or parse failure is reported as ErrConversion; the two cases are not
// distinguished for the caller.
func Convert(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrConversion, err)
	}
	return ConvertBytes(data)
}

// ConvertBytes is Convert for in-memory SVG content.
func ConvertBytes(data []byte) (string, error) {
	var doc svg
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("%w: %s", ErrConversion, err)
	}
	if doc.XMLName.Local != "svg" {
		return "", fmt.Errorf("%w: not an svg document", ErrConversion)
	}

	width, height, vw, vh, err := doc.dimensions()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrConversion, err)
	}

	var sb strings.Builder
	sb.WriteString(`<vector xmlns:android="http://schemas.android.com/apk/res/android"` + "\n")
	fmt.Fprintf(&sb, "    android:width=\"%sdp\"\n", fmtNum(width))
	fmt.Fprintf(&sb, "    android:height=\"%sdp\"\n", fmtNum(height))
	fmt.Fprintf(&sb, "    android:viewportWidth=\"%s\"\n", fmtNum(vw))
	fmt.Fprintf(&sb, "    android:viewportHeight=\"%s\">\n", fmtNum(vh))
	if err := writeChildren(&sb, doc.grouped, paint{}, 1); err != nil {
		return "", fmt.Errorf("%w: %s", ErrConversion, err)
	}
	sb.WriteString("</vector>\n")
	return sb.String(), nil
}

// DrawableName returns the derived markup file name for an SVG file name:
// the base name with the ".xml" extension ("cat.svg" becomes "cat.xml").
func DrawableName(svgName string) string {
	base := svgName
	if ext := filepath.Ext(svgName); strings.EqualFold(ext, ".svg") {
		base = svgName[:len(svgName)-len(ext)]
	}
	return base + ".xml"
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// dimensions resolves the drawable canvas: intrinsic dp size from width/height
// and the viewport from the viewBox, each falling back to the other, with a
// final default of 24.
func (s *svg) dimensions() (width, height, vw, vh float64, err error) {
	width = parseLength(s.Width)
	height = parseLength(s.Height)
	if s.ViewBox != "" {
		fields := strings.FieldsFunc(strings.TrimSpace(s.ViewBox), func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t' || r == '\n'
		})
		if len(fields) != 4 {
			return 0, 0, 0, 0, fmt.Errorf("invalid viewBox %q", s.ViewBox)
		}
		if vw, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return 0, 0, 0, 0, fmt.Errorf("invalid viewBox %q", s.ViewBox)
		}
		if vh, err = strconv.ParseFloat(fields[3], 64); err != nil {
			return 0, 0, 0, 0, fmt.Errorf("invalid viewBox %q", s.ViewBox)
		}
	}
	if vw == 0 {
		vw = width
	}
	if vh == 0 {
		vh = height
	}
	if width == 0 {
		width = vw
	}
	if height == 0 {
		height = vh
	}
	if width == 0 || height == 0 {
		width, height, vw, vh = 24, 24, 24, 24
	}
	return width, height, vw, vh, nil
}

func writeChildren(sb *strings.Builder, g grouped, inherited paint, depth int) error {
	for _, p := range g.Paths {
		if p.D == "" {
			continue
		}
		if err := writePath(sb, p.D, p.paint.merge(inherited), depth); err != nil {
			return err
		}
	}
	for _, r := range g.Rects {
		d, err := rectPath(r)
		if err != nil {
			return err
		}
		if err := writePath(sb, d, r.paint.merge(inherited), depth); err != nil {
			return err
		}
	}
	for _, c := range g.Circles {
		d, err := ellipsePath(c.Cx, c.Cy, c.R, c.R)
		if err != nil {
			return err
		}
		if err := writePath(sb, d, c.paint.merge(inherited), depth); err != nil {
			return err
		}
	}
	for _, e := range g.Ellipses {
		d, err := ellipsePath(e.Cx, e.Cy, e.Rx, e.Ry)
		if err != nil {
			return err
		}
		if err := writePath(sb, d, e.paint.merge(inherited), depth); err != nil {
			return err
		}
	}
	for _, l := range g.Lines {
		d := fmt.Sprintf("M%s,%s L%s,%s", num(l.X1), num(l.Y1), num(l.X2), num(l.Y2))
		if err := writePath(sb, d, l.paint.merge(inherited), depth); err != nil {
			return err
		}
	}
	for _, p := range g.Polygons {
		d, err := polyPath(p.Points, true)
		if err != nil {
			return err
		}
		if err := writePath(sb, d, p.paint.merge(inherited), depth); err != nil {
			return err
		}
	}
	for _, p := range g.Polylines {
		d, err := polyPath(p.Points, false)
		if err != nil {
			return err
		}
		if err := writePath(sb, d, p.paint.merge(inherited), depth); err != nil {
			return err
		}
	}
	for _, child := range g.Groups {
		if err := writeGroup(sb, child, inherited, depth); err != nil {
			return err
		}
	}
	return nil
}

func writeGroup(sb *strings.Builder, g svgGroup, inherited paint, depth int) error {
	indent := strings.Repeat("    ", depth)
	attrs, err := transformAttrs(g.Transform)
	if err != nil {
		return err
	}
	if len(attrs) > 0 {
		sb.WriteString(indent + "<group")
		for _, a := range attrs {
			sb.WriteString("\n" + indent + "    " + a)
		}
		sb.WriteString(">\n")
		if err := writeChildren(sb, g.grouped, g.paint.merge(inherited), depth+1); err != nil {
			return err
		}
		sb.WriteString(indent + "</group>\n")
		return nil
	}
	// Groups without a supported transform contribute only inherited paint.
	return writeChildren(sb, g.grouped, g.paint.merge(inherited), depth)
}

func writePath(sb *strings.Builder, d string, p paint, depth int) error {
	indent := strings.Repeat("    ", depth)
	sb.WriteString(indent + "<path\n")
	fmt.Fprintf(sb, "%s    android:pathData=\"%s\"", indent, escapeAttr(d))

	fill := p.Fill
	if fill == "" {
		fill = "black" // SVG paints black when no fill is given
	}
	if fill != "none" {
		color, err := androidColor(fill)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "\n%s    android:fillColor=\"%s\"", indent, color)
		if alpha := combineOpacity(p.FillOpacity, p.Opacity); alpha != "" {
			fmt.Fprintf(sb, "\n%s    android:fillAlpha=\"%s\"", indent, alpha)
		}
	}
	if p.FillRule == "evenodd" {
		fmt.Fprintf(sb, "\n%s    android:fillType=\"evenOdd\"", indent)
	}
	if p.Stroke != "" && p.Stroke != "none" {
		color, err := androidColor(p.Stroke)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "\n%s    android:strokeColor=\"%s\"", indent, color)
		width := p.StrokeWidth
		if width == "" {
			width = "1"
		}
		fmt.Fprintf(sb, "\n%s    android:strokeWidth=\"%s\"", indent, width)
		if p.StrokeCap != "" {
			fmt.Fprintf(sb, "\n%s    android:strokeLineCap=\"%s\"", indent, p.StrokeCap)
		}
		if p.StrokeJoin != "" {
			fmt.Fprintf(sb, "\n%s    android:strokeLineJoin=\"%s\"", indent, p.StrokeJoin)
		}
	}
	sb.WriteString(" />\n")
	return nil
}

// merge fills unset paint attributes from the enclosing group.
func (p paint) merge(parent paint) paint {
	if p.Fill == "" {
		p.Fill = parent.Fill
	}
	if p.FillOpacity == "" {
		p.FillOpacity = parent.FillOpacity
	}
	if p.FillRule == "" {
		p.FillRule = parent.FillRule
	}
	if p.Stroke == "" {
		p.Stroke = parent.Stroke
	}
	if p.StrokeWidth == "" {
		p.StrokeWidth = parent.StrokeWidth
	}
	if p.StrokeCap == "" {
		p.StrokeCap = parent.StrokeCap
	}
	if p.StrokeJoin == "" {
		p.StrokeJoin = parent.StrokeJoin
	}
	if p.Opacity == "" {
		p.Opacity = parent.Opacity
	}
	return p
}

func rectPath(r svgRect) (string, error) {
	x, y := num(r.X), num(r.Y)
	w, err := strconv.ParseFloat(num(r.W), 64)
	if err != nil {
		return "", fmt.Errorf("invalid rect width %q", r.W)
	}
	h, err := strconv.ParseFloat(num(r.H), 64)
	if err != nil {
		return "", fmt.Errorf("invalid rect height %q", r.H)
	}
	rx, ry := r.Rx, r.Ry
	if rx == "" {
		rx = ry
	}
	if ry == "" {
		ry = rx
	}
	if rx == "" || rx == "0" {
		return fmt.Sprintf("M%s,%s h%s v%s h-%s z", x, y, fmtNum(w), fmtNum(h), fmtNum(w)), nil
	}
	rxf, err := strconv.ParseFloat(rx, 64)
	if err != nil {
		return "", fmt.Errorf("invalid rect rx %q", rx)
	}
	ryf, err := strconv.ParseFloat(ry, 64)
	if err != nil {
		return "", fmt.Errorf("invalid rect ry %q", ry)
	}
	xf, _ := strconv.ParseFloat(x, 64)
	yf, _ := strconv.ParseFloat(y, 64)
	return fmt.Sprintf("M%s,%s h%s a%s,%s 0 0 1 %s,%s v%s a%s,%s 0 0 1 -%s,%s h-%s a%s,%s 0 0 1 -%s,-%s v-%s a%s,%s 0 0 1 %s,-%s z",
		fmtNum(xf+rxf), fmtNum(yf),
		fmtNum(w-2*rxf),
		fmtNum(rxf), fmtNum(ryf), fmtNum(rxf), fmtNum(ryf),
		fmtNum(h-2*ryf),
		fmtNum(rxf), fmtNum(ryf), fmtNum(rxf), fmtNum(ryf),
		fmtNum(w-2*rxf),
		fmtNum(rxf), fmtNum(ryf), fmtNum(rxf), fmtNum(ryf),
		fmtNum(h-2*ryf),
		fmtNum(rxf), fmtNum(ryf), fmtNum(rxf), fmtNum(ryf)), nil
}

func ellipsePath(cx, cy, rx, ry string) (string, error) {
	cxf, err := strconv.ParseFloat(num(cx), 64)
	if err != nil {
		return "", fmt.Errorf("invalid center %q", cx)
	}
	cyf, err := strconv.ParseFloat(num(cy), 64)
	if err != nil {
		return "", fmt.Errorf("invalid center %q", cy)
	}
	rxf, err := strconv.ParseFloat(num(rx), 64)
	if err != nil {
		return "", fmt.Errorf("invalid radius %q", rx)
	}
	ryf, err := strconv.ParseFloat(num(ry), 64)
	if err != nil {
		return "", fmt.Errorf("invalid radius %q", ry)
	}
	return fmt.Sprintf("M%s,%s a%s,%s 0 1 0 %s,0 a%s,%s 0 1 0 -%s,0 z",
		fmtNum(cxf-rxf), fmtNum(cyf),
		fmtNum(rxf), fmtNum(ryf), fmtNum(2*rxf),
		fmtNum(rxf), fmtNum(ryf), fmtNum(2*rxf)), nil
}

func polyPath(points string, closed bool) (string, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(points), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) < 4 || len(fields)%2 != 0 {
		return "", fmt.Errorf("invalid points %q", points)
	}
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return "", fmt.Errorf("invalid points %q", points)
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "M%s,%s", fields[0], fields[1])
	for i := 2; i < len(fields); i += 2 {
		fmt.Fprintf(&sb, " L%s,%s", fields[i], fields[i+1])
	}
	if closed {
		sb.WriteString(" z")
	}
	return sb.String(), nil
}

// transformAttrs maps translate/scale/rotate transforms onto group attributes.
// Unsupported transforms (matrix, skew) are rejected rather than silently
// mis-rendered.
func transformAttrs(transform string) ([]string, error) {
	transform = strings.TrimSpace(transform)
	if transform == "" {
		return nil, nil
	}
	var attrs []string
	for _, part := range strings.Split(transform, ")") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, args, ok := strings.Cut(part, "(")
		if !ok {
			return nil, fmt.Errorf("invalid transform %q", transform)
		}
		fields := strings.FieldsFunc(args, func(r rune) bool {
			return r == ' ' || r == ','
		})
		switch strings.TrimSpace(name) {
		case "translate":
			if len(fields) < 1 || len(fields) > 2 {
				return nil, fmt.Errorf("invalid translate %q", part)
			}
			attrs = append(attrs, fmt.Sprintf("android:translateX=%q", fields[0]))
			if len(fields) == 2 {
				attrs = append(attrs, fmt.Sprintf("android:translateY=%q", fields[1]))
			}
		case "scale":
			if len(fields) < 1 || len(fields) > 2 {
				return nil, fmt.Errorf("invalid scale %q", part)
			}
			attrs = append(attrs, fmt.Sprintf("android:scaleX=%q", fields[0]))
			sy := fields[0]
			if len(fields) == 2 {
				sy = fields[1]
			}
			attrs = append(attrs, fmt.Sprintf("android:scaleY=%q", sy))
		case "rotate":
			if len(fields) < 1 || len(fields) > 3 {
				return nil, fmt.Errorf("invalid rotate %q", part)
			}
			attrs = append(attrs, fmt.Sprintf("android:rotation=%q", fields[0]))
			if len(fields) == 3 {
				attrs = append(attrs, fmt.Sprintf("android:pivotX=%q", fields[1]))
				attrs = append(attrs, fmt.Sprintf("android:pivotY=%q", fields[2]))
			}
		default:
			return nil, fmt.Errorf("unsupported transform %q", strings.TrimSpace(name))
		}
	}
	return attrs, nil
}

// androidColor normalises a CSS color to Android #AARRGGBB / #RRGGBB form.
func androidColor(c string) (string, error) {
	c = strings.TrimSpace(strings.ToLower(c))
	if mapped, ok := cssColors[c]; ok {
		return mapped, nil
	}
	if strings.HasPrefix(c, "#") {
		hex := c[1:]
		switch len(hex) {
		case 3: // #rgb -> #rrggbb
			return strings.ToUpper(fmt.Sprintf("#%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2])), nil
		case 6, 8:
			if _, err := strconv.ParseUint(hex, 16, 64); err != nil {
				return "", fmt.Errorf("invalid color %q", c)
			}
			return "#" + strings.ToUpper(hex), nil
		}
		return "", fmt.Errorf("invalid color %q", c)
	}
	if strings.HasPrefix(c, "rgb(") && strings.HasSuffix(c, ")") {
		fields := strings.Split(c[4:len(c)-1], ",")
		if len(fields) != 3 {
			return "", fmt.Errorf("invalid color %q", c)
		}
		var rgb [3]uint64
		for i, f := range fields {
			v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
			if err != nil {
				return "", fmt.Errorf("invalid color %q", c)
			}
			rgb[i] = v
		}
		return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2]), nil
	}
	return "", fmt.Errorf("unsupported color %q", c)
}

// combineOpacity multiplies fill-opacity by group opacity, returning empty
// string when the result is fully opaque.
func combineOpacity(fillOpacity, opacity string) string {
	result := 1.0
	for _, s := range []string{fillOpacity, opacity} {
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v > 1 {
			continue
		}
		result *= v
	}
	if result >= 1.0 {
		return ""
	}
	return fmtNum(result)
}

func num(s string) string {
	if s == "" {
		return "0"
	}
	return strings.TrimSpace(s)
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	for _, unit := range []string{"px", "pt", "dp", "mm", "cm", "in", "%"} {
		s = strings.TrimSuffix(s, unit)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func escapeAttr(s string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		return s
	}
	return sb.String()
}
