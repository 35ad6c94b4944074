// Package view computes date-partitioned presentation models from a flat
// task list. Everything here is a pure function of its inputs; the render
// sink decides how a model ends up on screen.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/duyki2208/todo-list/internal/task"
)

// Name identifies one of the date-derived task views.
type Name string

const (
	MyDay     Name = "myDay"
	ThisWeek  Name = "thisWeek"
	ThisMonth Name = "thisMonth"
	// All shows every task unfiltered. The wire name is "other" for
	// compatibility with the page's section ids.
	All Name = "other"
)

// Valid reports whether n is one of the four known views.
func Valid(n Name) bool {
	switch n {
	case MyDay, ThisWeek, ThisMonth, All:
		return true
	}
	return false
}

// Group is an ordered run of tasks sharing a calendar date.
type Group struct {
	Date  string
	Tasks []task.Task
}

// Model is the derived presentation structure: date groups in ascending
// date order. Rebuilt on every render, never mutated incrementally.
type Model struct {
	Groups []Group
}

// Empty reports whether the model contains no tasks.
func (m Model) Empty() bool { return len(m.Groups) == 0 }

// Len returns the total number of tasks across all groups.
func (m Model) Len() int {
	n := 0
	for _, g := range m.Groups {
		n += len(g.Tasks)
	}
	return n
}

// Compute derives the model for the named view at the reference instant.
// Filtering is calendar-day granular. An unrecognized view name yields an
// empty model rather than an error.
func Compute(tasks []task.Task, name Name, now time.Time) Model {
	start, end, ok := window(name, now)
	if !ok {
		return Model{}
	}

	var filtered []task.Task
	for _, t := range tasks {
		// All is unfiltered: no window, no date parsing.
		if name == All {
			filtered = append(filtered, t)
			continue
		}
		day, err := time.ParseInLocation(task.DateLayout, t.Date, now.Location())
		if err != nil {
			// Unparseable date: the record can't belong to any window.
			continue
		}
		if !day.Before(start) && !day.After(end) {
			filtered = append(filtered, t)
		}
	}
	return group(filtered)
}

// Search derives the model for a search term: case-insensitive substring
// match on the task text over the whole collection, grouped by date with
// the same rule every view uses.
func Search(tasks []task.Task, term string) Model {
	term = strings.ToLower(strings.TrimSpace(term))

	var matched []task.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Text), term) {
			matched = append(matched, t)
		}
	}
	return group(matched)
}

// window returns the inclusive [start, end] day range for a view.
// For All the range is ignored by the caller; ok is false only for
// unknown names.
func window(name Name, now time.Time) (start, end time.Time, ok bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch name {
	case MyDay:
		return today, today, true
	case ThisWeek:
		// Week runs Monday through Sunday. A Sunday reference belongs
		// to the week that started six days earlier.
		offset := int(today.Weekday()) - int(time.Monday)
		if today.Weekday() == time.Sunday {
			offset = 6
		}
		monday := today.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 6), true
	case ThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, -1), true
	case All:
		return today, today, true
	}
	return time.Time{}, time.Time{}, false
}

// group sorts tasks ascending by date (stable, so ties keep list order)
// and partitions them into per-date groups emitted in ascending key
// order. ISO dates make lexicographic and chronological order coincide.
func group(tasks []task.Task) Model {
	sorted := make([]task.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	var m Model
	for _, t := range sorted {
		n := len(m.Groups)
		if n == 0 || m.Groups[n-1].Date != t.Date {
			m.Groups = append(m.Groups, Group{Date: t.Date})
			n++
		}
		m.Groups[n-1].Tasks = append(m.Groups[n-1].Tasks, t)
	}
	return m
}

// Label maps a group date to its human-readable header: "Today",
// "Tomorrow", or a full weekday+month+day label. Dates that fail to parse
// are returned verbatim.
func Label(date string, now time.Time) string {
	day, err := time.ParseInLocation(task.DateLayout, date, now.Location())
	if err != nil {
		return date
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	}
	return day.Format("Monday, January 2")
}
