package model

import "math"

type TaskKey string

const (
	TaskEventDetails      TaskKey = "eventDetails"
	TaskMenuSelection     TaskKey = "menuSelection"
	TaskServicesSelection TaskKey = "servicesSelection"
	TaskTableArrangement  TaskKey = "tableArrangement"
	TaskBarSelection      TaskKey = "barSelection"
)

// TaskKeys is the fixed set of planning steps tracked per booking, in display order.
var TaskKeys = []TaskKey{
	TaskEventDetails,
	TaskMenuSelection,
	TaskServicesSelection,
	TaskTableArrangement,
	TaskBarSelection,
}

var taskTitles = map[TaskKey]string{
	TaskEventDetails:      "Event Details",
	TaskMenuSelection:     "Menu Selection",
	TaskServicesSelection: "Services Selection",
	TaskTableArrangement:  "Table Arrangement",
	TaskBarSelection:      "Bar Selection",
}

func (k TaskKey) Title() string {
	if title, ok := taskTitles[k]; ok {
		return title
	}
	return string(k)
}

type TaskStatus string

const (
	TaskComplete   TaskStatus = "Complete"
	TaskIncomplete TaskStatus = "Incomplete"
)

type Task struct {
	Title  string     `json:"title"`
	Status TaskStatus `json:"status"`
}

// ProgressWarning names a task whose state could not be determined. The task
// is reported as Incomplete.
type ProgressWarning struct {
	Task    TaskKey `json:"task"`
	Message string  `json:"message"`
}

type Progress struct {
	OverallProgress int               `json:"overallProgress"`
	CompletedCount  int               `json:"completedCount"`
	TotalTasks      int               `json:"totalTasks"`
	Tasks           map[TaskKey]Task  `json:"tasks"`
	Warnings        []ProgressWarning `json:"warnings,omitempty"`
}

// NewProgress derives the summary from per-task completion. Keys in TaskKeys
// missing from complete count as Incomplete.
func NewProgress(complete map[TaskKey]bool, warnings []ProgressWarning) Progress {
	p := Progress{
		TotalTasks: len(TaskKeys),
		Tasks:      make(map[TaskKey]Task, len(TaskKeys)),
		Warnings:   warnings,
	}

	for _, key := range TaskKeys {
		status := TaskIncomplete
		if complete[key] {
			status = TaskComplete
			p.CompletedCount++
		}
		p.Tasks[key] = Task{Title: key.Title(), Status: status}
	}

	p.OverallProgress = Percent(p.CompletedCount, p.TotalTasks)
	return p
}

// Percent returns round(100*completed/total) clamped to [0, 100].
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(completed) / float64(total)))
	return max(0, min(100, pct))
}
