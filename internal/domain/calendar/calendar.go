// Package calendar builds the month grid shown as an inline keyboard and
// encodes the actions its buttons carry. It has no dependency on the chat
// transport: the telegram layer turns a Grid into buttons.
package calendar

import (
	"fmt"
	"time"
)

var weekdayNames = [...]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

const (
	blankLabel = " "
	prevLabel  = "◀️"
	todayLabel = "Сегодня"
	nextLabel  = "▶️"
)

// Cell is one button of the grid.
type Cell struct {
	Label  string
	Action Action
}

// Grid is a rendered month: a title row, the weekday header, one row per
// week starting on Monday, and the navigation row.
type Grid struct {
	Year  int
	Month time.Month
	Rows  [][]Cell
}

// Current renders the month containing now.
func Current(now time.Time) Grid {
	return Render(now.Year(), now.Month())
}

// Render builds the grid for the given month.
func Render(year int, month time.Month) Grid {
	g := Grid{Year: year, Month: month}

	g.Rows = append(g.Rows, []Cell{{
		Label:  fmt.Sprintf("%d/%d", int(month), year),
		Action: Ignore(),
	}})

	header := make([]Cell, 0, len(weekdayNames))
	for _, name := range weekdayNames {
		header = append(header, Cell{Label: name, Action: Ignore()})
	}
	g.Rows = append(g.Rows, header)

	week := make([]Cell, 0, 7)
	for i := 0; i < mondayOffset(year, month); i++ {
		week = append(week, blank())
	}
	for day := 1; day <= DaysIn(year, month); day++ {
		week = append(week, Cell{
			Label:  fmt.Sprint(day),
			Action: SelectDay(year, month, day),
		})
		if len(week) == 7 {
			g.Rows = append(g.Rows, week)
			week = make([]Cell, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, blank())
		}
		g.Rows = append(g.Rows, week)
	}

	py, pm := Prev(year, month)
	ny, nm := Next(year, month)
	g.Rows = append(g.Rows, []Cell{
		{Label: prevLabel, Action: Action{Kind: ActionPrev, Year: py, Month: pm}},
		{Label: todayLabel, Action: Action{Kind: ActionToday}},
		{Label: nextLabel, Action: Action{Kind: ActionNext, Year: ny, Month: nm}},
	})
	return g
}

// DayCells returns the selectable day cells of the grid in order.
func (g Grid) DayCells() []Cell {
	var cells []Cell
	for _, row := range g.Rows {
		for _, c := range row {
			if c.Action.Kind == ActionSelectDay {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// DaysIn returns the number of days in the month, leap years included.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Prev returns the month before the given one, rolling over the year.
func Prev(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// Next returns the month after the given one, rolling over the year.
func Next(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// mondayOffset is the number of filler cells before day 1 in a Monday-first week.
func mondayOffset(year int, month time.Month) int {
	wd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}

func blank() Cell {
	return Cell{Label: blankLabel, Action: Ignore()}
}
