// Package output provides formatters for bot replies.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskbot/internal/service"
)

const (
	// ListHeader opens the task list message.
	ListHeader = "📋 Your tasks:"

	// SubtasksHeader introduces the subtasks of a task.
	SubtasksHeader = "🔹 Subtasks:"

	// NoSubtasks is printed for a task without subtasks.
	NoSubtasks = "No subtasks."
)

// FormatTaskList writes every task in list order as one message body.
// There is no size cap; splitting for delivery is the transport's job.
func FormatTaskList(w io.Writer, tasks []service.Task) {
	fmt.Fprintln(w, ListHeader)
	for _, task := range tasks {
		FormatTask(w, task)
	}
}

// FormatTask writes a task block.
// Format: blank line, "📝 Task ID: {ID} - {NAME}", then subtasks or NoSubtasks.
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "\n📝 Task ID: %d - %s\n", task.ID, normalizeTitle(task.Name))
	if len(task.Subtasks) == 0 {
		fmt.Fprintln(w, NoSubtasks)
		return
	}
	fmt.Fprintln(w, SubtasksHeader)
	for i, subtask := range task.Subtasks {
		FormatSubtask(w, i+1, subtask)
	}
}

// FormatSubtask writes a subtask line.
// Format: "{POS}. {TEXT}\n" with a 1-based position.
func FormatSubtask(w io.Writer, pos int, text string) {
	fmt.Fprintf(w, "%d. %s\n", pos, normalizeTitle(text))
}

// normalizeTitle replaces newlines with spaces so one entry stays on one line.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r\n", " ")
	title = strings.ReplaceAll(title, "\r", " ")
	return strings.ReplaceAll(title, "\n", " ")
}
