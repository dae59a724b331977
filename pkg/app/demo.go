package app

import "tableflip.dev/weekplan/pkg/task"

// DemoWeek returns a sample week starting at weekStart. Wednesday holds a
// cluster of three overlapping blocks and Friday a staggered pair.
func DemoWeek(weekStart task.Date) []task.Draft {
	day := weekStart.AddDays
	return []task.Draft{
		{Name: "Standup", Date: day(0), Start: "09:00", End: "09:30", Recurring: true, Color: "#5f87af"},
		{Name: "Gym", Date: day(0), Start: "07:00", End: "08:00", Recurring: true, Color: "#87af5f"},
		{Name: "Deep work", Date: day(1), Start: "10:00", End: "12:30"},
		{Name: "Design review", Date: day(2), Start: "13:00", End: "14:30", HighPriority: true},
		{Name: "Lunch with Sam", Date: day(2), Start: "13:30", End: "14:15", Color: "#d7875f"},
		{Name: "Interview", Date: day(2), Start: "14:00", End: "15:00"},
		{Name: "Planning", Date: day(4), Start: "15:00", End: "17:00"},
		{Name: "Retro", Date: day(4), Start: "15:00", End: "16:00"},
		{Name: "Long run", Date: day(5), Start: "08:00", End: "10:00"},
	}
}
