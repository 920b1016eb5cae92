// Package stats ranks sorted names, aggregates them per year and renders the results.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/sortednames/internal/model"
)

// ChartOptions controls RenderChart output. Zero values pick defaults.
type ChartOptions struct {
	Title  string
	YLabel string
	XLabel string
	Width  int
	Height int
	Color  bool
}

type ansiColor struct {
	name string
	code string
}

type chartCell struct {
	r      rune
	color  string
	marker bool
	text   bool
}

const (
	defaultPlotHeight   = 12
	minPlotWidth        = 10
	axisLabelWidth      = 6
	axisSeparator       = " │ "
	axisCorner          = " └"
	axisLine            = "─"
	flatRangePad        = 0.005
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var colorPalette = []ansiColor{
	{name: "cyan", code: "\x1b[36m"},
	{name: "magenta", code: "\x1b[35m"},
	{name: "yellow", code: "\x1b[33m"},
	{name: "green", code: "\x1b[32m"},
	{name: "blue", code: "\x1b[34m"},
}

var (
	lineColor  = colorPalette[0].code
	labelColor = colorPalette[2].code
)

// RenderChart draws the percent of sorted names per year as a braille line plot
// with point markers and name annotations for labeled years.
func RenderChart(w io.Writer, series model.Series, opts ChartOptions) error {
	if len(series.Points) == 0 {
		_, err := fmt.Fprintln(w, "No years to plot.")
		return err
	}

	height := opts.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	width := opts.Width
	if width <= 0 {
		width = autoPlotWidth()
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	minVal, maxVal := percentRange(series.Percents())
	minYear := series.Points[0].Year
	maxYear := series.Points[len(series.Points)-1].Year

	cells := makeCells(height, width)
	dotsX, dotsY := width*2, height*4
	type dot struct{ x, y int }
	dots := make([]dot, len(series.Points))
	for i, p := range series.Points {
		dots[i] = dot{
			x: yearToColumn(p.Year, minYear, maxYear, dotsX),
			y: valueToRow(p.Percent, minVal, maxVal, dotsY),
		}
	}
	for i := 1; i < len(dots); i++ {
		drawLine(dots[i-1].x, dots[i-1].y, dots[i].x, dots[i].y, func(x, y int) {
			setBrailleDot(cells, x, y)
		})
	}
	for _, d := range dots {
		setMarker(cells, d.x, d.y)
	}

	grid := makeGrid(cells)
	for _, d := range dots {
		grid[d.y/4][d.x/2].marker = true
	}
	placed := map[int]bool{}
	for i, p := range series.Points {
		if p.Label == nil {
			continue
		}
		placed[p.Year] = placeAnnotation(grid, annotationText(*p.Label), dots[i].x/2, dots[i].y/4)
	}

	useColor := shouldUseColor(w, opts.Color)
	if opts.Title != "" {
		if _, err := fmt.Fprintln(w, opts.Title); err != nil {
			return err
		}
	}
	if opts.YLabel != "" {
		if _, err := fmt.Fprintln(w, opts.YLabel); err != nil {
			return err
		}
	}
	axisLabels := makeAxisLabels(height, minVal, maxVal)
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", axisLabelWidth, axisLabels[y], axisSeparator))
		for x := 0; x < width; x++ {
			c := grid[y][x]
			if useColor && c.color != "" {
				row.WriteString(c.color)
				row.WriteRune(c.r)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(c.r)
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(row.String(), " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%*s%s%s\n", axisLabelWidth, "", axisCorner, strings.Repeat(axisLine, width+1)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%*s%s\n", axisLabelWidth+utf8.RuneCountInString(axisSeparator), "", yearAxis(minYear, maxYear, width)); err != nil {
		return err
	}
	if opts.XLabel != "" {
		pad := axisLabelWidth + utf8.RuneCountInString(axisSeparator) + (width-utf8.RuneCountInString(opts.XLabel))/2
		if pad < 0 {
			pad = 0
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), opts.XLabel); err != nil {
			return err
		}
	}
	if err := renderLabelList(w, series, placed); err != nil {
		return err
	}
	if len(series.Skipped) > 0 {
		years := make([]string, len(series.Skipped))
		for i, y := range series.Skipped {
			years[i] = strconv.Itoa(y)
		}
		if _, err := fmt.Fprintf(w, "Skipped (zero population): %s\n", strings.Join(years, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// FormatPercent formats a ratio in [0,1] as a percentage.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func annotationText(label model.Label) string {
	return label.Name + " " + FormatPercent(label.OwnShare)
}

func renderLabelList(w io.Writer, series model.Series, placed map[int]bool) error {
	labeled := series.Labels()
	if len(labeled) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Labels:"); err != nil {
		return err
	}
	headers := []string{"Year", "Name", "Own share", "Overall", ""}
	rows := make([][]string, 0, len(labeled))
	for _, p := range labeled {
		note := ""
		if !placed[p.Year] {
			note = "(not drawn)"
		}
		rows = append(rows, []string{
			strconv.Itoa(p.Year),
			p.Label.Name,
			FormatPercent(p.Label.OwnShare),
			FormatPercent(p.Label.OverallPercent),
			note,
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, "  "+strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// placeAnnotation writes text into the grid above (or below) the point cell.
// It refuses to overlap markers or earlier annotations.
func placeAnnotation(grid [][]chartCell, text string, cellX, cellY int) bool {
	if len(grid) == 0 {
		return false
	}
	width := len(grid[0])
	textWidth := utf8.RuneCountInString(text)
	if textWidth == 0 || textWidth > width || runewidth.StringWidth(text) != textWidth {
		return false
	}
	start := cellX - textWidth/2
	if start < 0 {
		start = 0
	}
	if start+textWidth > width {
		start = width - textWidth
	}
	for _, row := range []int{cellY - 1, cellY + 1} {
		if row < 0 || row >= len(grid) {
			continue
		}
		if !rowFree(grid[row], start, textWidth) {
			continue
		}
		x := start
		for _, r := range text {
			grid[row][x] = chartCell{r: r, color: labelColor, text: true}
			x++
		}
		return true
	}
	return false
}

func rowFree(row []chartCell, start, n int) bool {
	for x := start; x < start+n; x++ {
		if row[x].marker || row[x].text {
			return false
		}
	}
	return true
}

func makeGrid(cells [][]uint8) [][]chartCell {
	grid := make([][]chartCell, len(cells))
	for y, line := range cells {
		grid[y] = make([]chartCell, len(line))
		for x, mask := range line {
			if mask == 0 {
				grid[y][x] = chartCell{r: ' '}
				continue
			}
			grid[y][x] = chartCell{r: brailleFromMask(mask), color: lineColor}
		}
	}
	return grid
}

func yearAxis(minYear, maxYear, width int) string {
	line := []rune(strings.Repeat(" ", width))
	first := []rune(strconv.Itoa(minYear))
	copy(line, first)
	if maxYear != minYear {
		last := []rune(strconv.Itoa(maxYear))
		if len(first)+1+len(last) <= width {
			copy(line[width-len(last):], last)
		}
	}
	return strings.TrimRight(string(line), " ")
}

func percentRange(values []float64) (float64, float64) {
	minVal, maxVal := seriesMinMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		minVal -= flatRangePad
		maxVal += flatRangePad
		if minVal < 0 {
			minVal = 0
		}
	}
	return minVal, maxVal
}

func yearToColumn(year, minYear, maxYear, dots int) int {
	if dots <= 1 {
		return 0
	}
	if maxYear == minYear {
		return dots / 2
	}
	pos := float64(year-minYear) / float64(maxYear-minYear)
	col := int(math.Round(pos * float64(dots-1)))
	if col < 0 {
		col = 0
	}
	if col >= dots {
		col = dots - 1
	}
	return col
}

func autoPlotWidth() int {
	return PlotWidthFor(terminalWidth())
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := axisLabelWidth + utf8.RuneCountInString(axisSeparator)
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeAxisLabels(height int, minVal, maxVal float64) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = FormatPercent(maxVal)
	if height > 2 {
		labels[height/2] = FormatPercent((minVal + maxVal) / 2)
	}
	if height > 1 {
		labels[height-1] = FormatPercent(minVal)
	}
	return labels
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func seriesMinMax(values []float64) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == math.Inf(1) {
		minVal = 0
	}
	if maxVal == math.Inf(-1) {
		maxVal = 0
	}
	return minVal, maxVal
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

// setMarker fills the 2x2 dot block of the cell half containing (x, y).
func setMarker(cells [][]uint8, x, y int) {
	x0 := x - x%2
	y0 := y - y%2
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			setBrailleDot(cells, x0+dx, y0+dy)
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) {
		return
	}
	if cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
