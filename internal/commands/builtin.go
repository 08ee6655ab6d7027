package commands

// Registration order is the order of the chat command menu.
func init() {
	Register(&StartCmd{})
	Register(&CreateTaskCmd{})
	Register(&CreateSubtaskCmd{})
	Register(&ShowTasksCmd{})
	Register(&RemoveTaskCmd{})
	Register(&RemoveSubtaskCmd{})
	Register(&CancelCmd{})
}
