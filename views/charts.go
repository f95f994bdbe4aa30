package views

import (
	"varanno/api/models/dtos"

	. "github.com/ahmetb/go-linq"
)

// svg geometry, in px
const (
	labelWidth = 130
	plotWidth  = 360
	rowHeight  = 22
	barHeight  = 16
	padding    = 10
)

type (
	Bar struct {
		Label  string
		Count  int
		X      int
		Y      int
		Width  int
		Height int
		TextY  int
		CountX int
	}

	BarChart struct {
		Title  string
		Width  int
		Height int
		Bars   []Bar
	}

	Dot struct {
		X     int
		Y     int
		Title string
	}

	StripRow struct {
		Label string
		Y     int
		TextY int
	}

	StripChart struct {
		Title  string
		Width  int
		Height int
		Rows   []StripRow
		Dots   []Dot
	}

	Charts struct {
		Chromosomes   BarChart
		Sources       BarChart
		Significances BarChart
		Positions     StripChart
	}
)

// BuildCharts lays out the overview as svg-ready geometry.
func BuildCharts(overview dtos.OverviewDTO) Charts {
	return Charts{
		Chromosomes:   buildBarChart("Variants per chromosome", overview.Chromosomes),
		Sources:       buildBarChart("Annotation source", overview.Sources),
		Significances: buildBarChart("Clinical significance", overview.Significances),
		Positions:     buildStripChart("Variant positions", overview.Positions),
	}
}

func buildBarChart(title string, buckets []dtos.CountBucket) BarChart {
	chart := BarChart{
		Title:  title,
		Width:  labelWidth + plotWidth + 6*padding,
		Height: 2*padding + len(buckets)*rowHeight,
		Bars:   []Bar{},
	}
	if len(buckets) == 0 {
		return chart
	}

	max := From(buckets).SelectT(func(b dtos.CountBucket) int { return b.Count }).Max().(int)
	if max < 1 {
		max = 1
	}

	for i, b := range buckets {
		width := b.Count * plotWidth / max
		if b.Count > 0 && width < 1 {
			width = 1
		}
		y := padding + i*rowHeight
		label := b.Label
		if label == "" {
			label = b.Key
		}

		chart.Bars = append(chart.Bars, Bar{
			Label:  label,
			Count:  b.Count,
			X:      labelWidth,
			Y:      y,
			Width:  width,
			Height: barHeight,
			TextY:  y + barHeight - 3,
			CountX: labelWidth + width + 4,
		})
	}
	return chart
}

func buildStripChart(title string, points []dtos.PositionPoint) StripChart {
	chart := StripChart{
		Title: title,
		Width: labelWidth + plotWidth + 2*padding,
		Rows:  []StripRow{},
		Dots:  []Dot{},
	}

	// one row per chromosome, in the order points arrive
	rowOf := map[string]int{}
	maxOf := map[string]int{}
	for _, p := range points {
		if _, seen := rowOf[p.Chromosome]; !seen {
			rowOf[p.Chromosome] = len(chart.Rows)
			y := padding + len(chart.Rows)*rowHeight
			chart.Rows = append(chart.Rows, StripRow{Label: p.Chromosome, Y: y + rowHeight/2, TextY: y + barHeight - 3})
		}
		if p.Position > maxOf[p.Chromosome] {
			maxOf[p.Chromosome] = p.Position
		}
	}
	chart.Height = 2*padding + len(chart.Rows)*rowHeight

	for _, p := range points {
		x := labelWidth
		if max := maxOf[p.Chromosome]; max > 0 {
			// int64 keeps chromosome-scale positions from overflowing on 32-bit
			x += int(int64(p.Position) * plotWidth / int64(max))
		}
		title := p.Rsid
		if title == "" {
			title = p.Chromosome
		}
		if p.Gene != "" {
			title += " (" + p.Gene + ")"
		}
		chart.Dots = append(chart.Dots, Dot{
			X:     x,
			Y:     chart.Rows[rowOf[p.Chromosome]].Y,
			Title: title,
		})
	}
	return chart
}
