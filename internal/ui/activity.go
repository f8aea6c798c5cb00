package ui

import (
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kuteview/internal/livelog"
	"github.com/five82/kuteview/internal/state"
	"github.com/five82/kuteview/internal/wire"
)

// activityHeight is the number of rows the chart strip takes, border included.
const activityHeight = 7

// activitySeries spreads buckets over the n seconds ending at end, oldest
// first. Seconds without a bucket are zero.
func activitySeries(buckets []state.Bucket, end time.Time, n int) []livelog.Counts {
	if n <= 0 {
		return nil
	}
	series := make([]livelog.Counts, n)
	last := end.Truncate(time.Second)
	for _, b := range buckets {
		age := int(last.Sub(b.Start.Truncate(time.Second)) / time.Second)
		if age < 0 || age >= n {
			continue
		}
		series[n-1-age] = b.Counts
	}
	return series
}

func hasActivity(series []livelog.Counts) bool {
	for _, c := range series {
		if c.Total() > 0 {
			return true
		}
	}
	return false
}

// renderActivity draws entries per second as stacked bars, one colour per level.
func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	width := max(m.width-2, 10)
	chartHeight := activityHeight - 2

	end := m.lastTick
	if end.IsZero() && len(m.snapshot.Activity) > 0 {
		end = m.snapshot.Activity[len(m.snapshot.Activity)-1].Start
	}
	series := activitySeries(m.snapshot.Activity, end, width/2)
	if !hasActivity(series) {
		body := styles.MutedText.Render("No entries in the last " + (time.Duration(len(series)) * time.Second).String())
		return m.renderBox("Activity (entries/s)", body, m.width, activityHeight)
	}

	bc := barchart.New(width, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)

	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
	for _, counts := range series {
		var values []barchart.BarValue
		for _, c := range wire.Categories {
			if n := counts.Get(c); n > 0 {
				color := styles.LevelStyle(c).GetForeground()
				values = append(values, barchart.BarValue{
					Name:  string(c),
					Value: float64(n),
					Style: lipgloss.NewStyle().Foreground(color).Background(color),
				})
			}
		}
		if len(values) == 0 {
			values = append(values, barchart.BarValue{Name: "none", Value: 0, Style: empty})
		}
		bc.Push(barchart.BarData{Values: values})
	}
	bc.Draw()

	return m.renderBox("Activity (entries/s)", bc.View(), m.width, activityHeight)
}
