package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"taskbot/internal/commands"
	"taskbot/internal/conversation"
	"taskbot/internal/service"
)

const chatID int64 = 42

// runCommand is a helper to start a command against a store.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service) (string, commands.Transition) {
	t.Helper()

	var out bytes.Buffer
	req := commands.Request{ChatID: chatID, Text: "/" + cmd.Name()}
	tr := cmd.Run(context.Background(), svc, req, &out)
	return out.String(), tr
}

// resumeCommand is a helper to feed one reply to a pending flow.
func resumeCommand(t *testing.T, cmd commands.Command, svc service.Service, state conversation.State, taskID int, text string) (string, commands.Transition) {
	t.Helper()

	var out bytes.Buffer
	req := commands.Request{
		ChatID: chatID,
		Text:   text,
		Session: conversation.Session{
			ChatID:  chatID,
			Command: cmd.Name(),
			State:   state,
			TaskID:  taskID,
		},
	}
	tr := cmd.Resume(context.Background(), svc, req, &out)
	return out.String(), tr
}

// seed creates tasks with optional subtasks in chatID.
func seed(t *testing.T, svc *service.Memory, name string, subtasks ...string) service.Task {
	t.Helper()
	ctx := context.Background()
	task, err := svc.CreateTask(ctx, chatID, name)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	for _, s := range subtasks {
		if task, err = svc.AddSubtask(ctx, chatID, task.ID, s); err != nil {
			t.Fatalf("AddSubtask: %v", err)
		}
	}
	return task
}

func listTasks(t *testing.T, svc *service.Memory) []service.Task {
	t.Helper()
	tasks, err := svc.ListTasks(context.Background(), chatID)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	return tasks
}

func expectIdle(t *testing.T, tr commands.Transition) {
	t.Helper()
	if tr.State != conversation.Idle {
		t.Errorf("expected flow to end, got state %s", tr.State)
	}
	if tr.Err != nil {
		t.Errorf("unexpected error: %v", tr.Err)
	}
}

// Tests for /start
func TestStartCommand(t *testing.T) {
	out, tr := runCommand(t, &commands.StartCmd{}, service.NewMemory())

	expectIdle(t, tr)
	for _, want := range []string{"/create_task", "/create_subtask", "/show_tasks", "/remove_task", "/remove_subtask"} {
		if !strings.Contains(out, want) {
			t.Errorf("welcome should mention %s, got %q", want, out)
		}
	}
}

// Tests for /create_task
func TestCreateTask_Prompt(t *testing.T) {
	out, tr := runCommand(t, &commands.CreateTaskCmd{}, service.NewMemory())

	if tr.State != conversation.AwaitingDescription {
		t.Errorf("expected AwaitingDescription, got %s", tr.State)
	}
	if !strings.Contains(out, "Enter the task description") {
		t.Errorf("unexpected prompt %q", out)
	}
}

func TestCreateTask_Success(t *testing.T) {
	svc := service.NewMemory()

	out, tr := resumeCommand(t, &commands.CreateTaskCmd{}, svc, conversation.AwaitingDescription, 0, "Buy milk")

	expectIdle(t, tr)
	want := "✅ Task added!\n\nTask: Buy milk\nTask ID: 1\n\nYou can now add subtasks or view all tasks. To see all tasks, use /show_tasks.\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	tasks := listTasks(t, svc)
	if len(tasks) != 1 || tasks[0].Name != "Buy milk" || len(tasks[0].Subtasks) != 0 {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestCreateTask_CommandRejected(t *testing.T) {
	svc := service.NewMemory()

	out, tr := resumeCommand(t, &commands.CreateTaskCmd{}, svc, conversation.AwaitingDescription, 0, "/show_tasks")

	expectIdle(t, tr)
	want := "❌ That is a command. Please enter a task description, not a command.\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	if n := len(listTasks(t, svc)); n != 0 {
		t.Errorf("expected no tasks, got %d", n)
	}
}

func TestCreateTask_EmptyRejected(t *testing.T) {
	svc := service.NewMemory()

	for _, text := range []string{"", "   ", "\n\t"} {
		out, tr := resumeCommand(t, &commands.CreateTaskCmd{}, svc, conversation.AwaitingDescription, 0, text)

		expectIdle(t, tr)
		want := "❌ The task description cannot be empty. Please enter a description.\n"
		if out != want {
			t.Errorf("text %q: expected %q, got %q", text, want, out)
		}
	}
	if n := len(listTasks(t, svc)); n != 0 {
		t.Errorf("expected no tasks, got %d", n)
	}
}

// Tests for /create_subtask
func TestCreateSubtask_AsksForDescription(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Groceries")

	out, tr := resumeCommand(t, &commands.CreateSubtaskCmd{}, svc, conversation.AwaitingTaskID, 0, "1")

	if tr.State != conversation.AwaitingSubtaskText || tr.TaskID != 1 {
		t.Errorf("unexpected transition: %+v", tr)
	}
	if !strings.Contains(out, "enter the subtask description") {
		t.Errorf("unexpected prompt %q", out)
	}
}

func TestCreateSubtask_NotANumber(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Groceries")

	out, tr := resumeCommand(t, &commands.CreateSubtaskCmd{}, svc, conversation.AwaitingTaskID, 0, "first")

	expectIdle(t, tr)
	if out != "❌ The task ID must be a number. Please enter a numeric ID.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

// Leading-integer parsing would accept "1abc" as 1; parsing is strict.
func TestCreateSubtask_TrailingGarbageRejected(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Groceries")

	out, tr := resumeCommand(t, &commands.CreateSubtaskCmd{}, svc, conversation.AwaitingTaskID, 0, "1abc")

	expectIdle(t, tr)
	if !strings.Contains(out, "must be a number") {
		t.Errorf("expected not-a-number reply, got %q", out)
	}
}

func TestCreateSubtask_TaskNotFound(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Groceries")

	out, tr := resumeCommand(t, &commands.CreateSubtaskCmd{}, svc, conversation.AwaitingTaskID, 0, "7")

	expectIdle(t, tr)
	if out != "❌ Task with ID 7 not found. Please enter a valid ID.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCreateSubtask_CommandInsteadOfID(t *testing.T) {
	out, tr := resumeCommand(t, &commands.CreateSubtaskCmd{}, service.NewMemory(), conversation.AwaitingTaskID, 0, "/start")

	expectIdle(t, tr)
	if out != "❌ That is a command. Please enter a numeric task ID, not a command.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCreateSubtask_AppendsInOrder(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Groceries", "milk")

	out, tr := resumeCommand(t, &commands.CreateSubtaskCmd{}, svc, conversation.AwaitingSubtaskText, 1, "bread")

	expectIdle(t, tr)
	want := "✅ Subtask added to task with ID 1!\n\nSubtask: bread\nYou can add more subtasks or view all tasks with /show_tasks.\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	tasks := listTasks(t, svc)
	if got := tasks[0].Subtasks; len(got) != 2 || got[0] != "milk" || got[1] != "bread" {
		t.Errorf("unexpected subtasks: %v", got)
	}
}

func TestCreateSubtask_EmptyDescription(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Groceries")

	out, tr := resumeCommand(t, &commands.CreateSubtaskCmd{}, svc, conversation.AwaitingSubtaskText, 1, "  ")

	expectIdle(t, tr)
	if out != "❌ The subtask description cannot be empty. Please enter a description.\n" {
		t.Errorf("unexpected output %q", out)
	}
	if n := len(listTasks(t, svc)[0].Subtasks); n != 0 {
		t.Errorf("expected no subtasks, got %d", n)
	}
}

func TestCreateSubtask_TaskRemovedBetweenSteps(t *testing.T) {
	svc := service.NewMemory()

	out, tr := resumeCommand(t, &commands.CreateSubtaskCmd{}, svc, conversation.AwaitingSubtaskText, 3, "bread")

	expectIdle(t, tr)
	if out != "❌ Task with ID 3 not found. Please enter a valid ID.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

// Tests for /show_tasks
func TestShowTasks_Empty(t *testing.T) {
	svc := service.NewMemory()

	out, tr := runCommand(t, &commands.ShowTasksCmd{}, svc)

	expectIdle(t, tr)
	if out != "😕 You have no tasks. To add a task, use /create_task.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestShowTasks_Idempotent(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Buy milk")
	seed(t, svc, "Groceries", "bread", "eggs")

	first, _ := runCommand(t, &commands.ShowTasksCmd{}, svc)
	second, _ := runCommand(t, &commands.ShowTasksCmd{}, svc)

	if first != second {
		t.Errorf("expected identical output\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	want := "📋 Your tasks:\n\n📝 Task ID: 1 - Buy milk\nNo subtasks.\n\n📝 Task ID: 2 - Groceries\n🔹 Subtasks:\n1. bread\n2. eggs\n"
	if first != want {
		t.Errorf("expected %q, got %q", want, first)
	}
}

// Tests for /remove_task
func TestRemoveTask_Success(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "one")
	seed(t, svc, "two")
	seed(t, svc, "three")

	out, tr := resumeCommand(t, &commands.RemoveTaskCmd{}, svc, conversation.AwaitingTaskID, 0, "2")

	expectIdle(t, tr)
	if out != "✅ Task with ID 2 removed: two\n" {
		t.Errorf("unexpected output %q", out)
	}
	tasks := listTasks(t, svc)
	if len(tasks) != 2 || tasks[0].Name != "one" || tasks[1].Name != "three" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestRemoveTask_NotFound(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "one")

	out, tr := resumeCommand(t, &commands.RemoveTaskCmd{}, svc, conversation.AwaitingTaskID, 0, "5")

	expectIdle(t, tr)
	if out != "❌ Task with ID 5 not found. Please enter a valid ID.\n" {
		t.Errorf("unexpected output %q", out)
	}
	if n := len(listTasks(t, svc)); n != 1 {
		t.Errorf("expected list unchanged, got %d tasks", n)
	}
}

func TestRemoveTask_NonNumericIsNotFound(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "one")

	out, tr := resumeCommand(t, &commands.RemoveTaskCmd{}, svc, conversation.AwaitingTaskID, 0, "abc")

	expectIdle(t, tr)
	if out != "❌ Task with ID abc not found. Please enter a valid ID.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRemoveTask_CommandRejected(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "one")

	out, tr := resumeCommand(t, &commands.RemoveTaskCmd{}, svc, conversation.AwaitingTaskID, 0, "/remove_task")

	expectIdle(t, tr)
	if !strings.HasPrefix(out, "❌ That is a command.") {
		t.Errorf("unexpected output %q", out)
	}
	if n := len(listTasks(t, svc)); n != 1 {
		t.Errorf("expected list unchanged, got %d tasks", n)
	}
}

// Tests for /remove_subtask
func TestRemoveSubtask_AsksForPosition(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Groceries", "milk")

	out, tr := resumeCommand(t, &commands.RemoveSubtaskCmd{}, svc, conversation.AwaitingTaskID, 0, "1")

	if tr.State != conversation.AwaitingSubtaskPosition || tr.TaskID != 1 {
		t.Errorf("unexpected transition: %+v", tr)
	}
	if out != "Enter the number of the subtask to remove:\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRemoveSubtask_TaskNotFound(t *testing.T) {
	out, tr := resumeCommand(t, &commands.RemoveSubtaskCmd{}, service.NewMemory(), conversation.AwaitingTaskID, 0, "9")

	expectIdle(t, tr)
	if out != "❌ Task with ID 9 not found. Please enter a valid ID.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRemoveSubtask_Success(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Groceries", "milk", "bread", "eggs")

	out, tr := resumeCommand(t, &commands.RemoveSubtaskCmd{}, svc, conversation.AwaitingSubtaskPosition, 1, "2")

	expectIdle(t, tr)
	if out != "✅ Subtask \"bread\" removed from task with ID 1.\n" {
		t.Errorf("unexpected output %q", out)
	}
	got := listTasks(t, svc)[0].Subtasks
	if len(got) != 2 || got[0] != "milk" || got[1] != "eggs" {
		t.Errorf("unexpected subtasks: %v", got)
	}
}

func TestRemoveSubtask_InvalidPosition(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Groceries", "milk", "bread")

	for _, text := range []string{"0", "3", "-1", "two"} {
		out, tr := resumeCommand(t, &commands.RemoveSubtaskCmd{}, svc, conversation.AwaitingSubtaskPosition, 1, text)

		expectIdle(t, tr)
		if out != "❌ Invalid subtask number.\n" {
			t.Errorf("text %q: unexpected output %q", text, out)
		}
	}
	if n := len(listTasks(t, svc)[0].Subtasks); n != 2 {
		t.Errorf("expected subtasks unchanged, got %d", n)
	}
}

func TestRemoveSubtask_CommandInsteadOfPosition(t *testing.T) {
	svc := service.NewMemory()
	seed(t, svc, "Groceries", "milk")

	out, tr := resumeCommand(t, &commands.RemoveSubtaskCmd{}, svc, conversation.AwaitingSubtaskPosition, 1, "/cancel")

	expectIdle(t, tr)
	if out != "❌ That is a command. Please enter the number of the subtask to remove, not a command.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

// Tests for /cancel
func TestCancelCommand_NothingPending(t *testing.T) {
	out, tr := runCommand(t, &commands.CancelCmd{}, service.NewMemory())

	expectIdle(t, tr)
	if out != "Nothing to cancel.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestVersionString(t *testing.T) {
	if got := commands.VersionString(); got != "taskbot "+commands.Version {
		t.Errorf("unexpected version %q", got)
	}
}
