package cli

import (
	"context"
	stderrors "errors"
	"io"
	"strconv"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/services"
	"task-manager/internal/validation"
)

// Menu options
const (
	optionAdd = iota + 1
	optionRemove
	optionComplete
	optionView
	optionExit
)

const returnKey = "r"

// Console prompts and messages
const (
	msgChoose         = "Choose an option."
	msgNotANumber     = "Invalid input. Please enter a number."
	msgChoiceRange    = "Choice out of range. Please try again."
	msgNoTasks        = "No tasks were found. Please create a task."
	msgEnterName      = "Enter a name/description for the task."
	msgEmptyName      = "Task name cannot be empty!"
	msgDuplicateName  = "A task with that name already exists!"
	msgEnterDueDate   = "Enter a due date in MM-DD-YYYY for the task."
	msgBadDueDate     = "Invalid date format. Please try again."
	msgBadSelection   = "Invalid input. Please try again."
	msgSelectionRange = "Number out of range. Please try again."
	msgAdded          = "Task successfully added!"
	msgNotAdded       = "Task could not be added."
	msgRemoved        = "Task removed successfully"
	msgNotRemoved     = "Task could not be removed."
	msgCompleted      = "Task completed successfully"
	msgNotCompleted   = "Task could not be completed."
	msgGoodbye        = "Goodbye!"
)

// ConsoleCommand runs the interactive menu loop
type ConsoleCommand struct {
	app       *App
	validator *validation.TaskValidator
}

// NewConsoleCommand creates a new console command handler
func NewConsoleCommand(app *App) *ConsoleCommand {
	return &ConsoleCommand{app: app, validator: validation.NewTaskValidator()}
}

// Execute runs the menu until Exit is chosen or input ends. Failed actions are
// reported and the menu is shown again.
func (c *ConsoleCommand) Execute(ctx context.Context, args []string) error {
	loadCtx, cancel := context.WithTimeout(ctx, c.app.appTimeout())
	tasks, err := c.app.taskService(loadCtx)
	cancel()
	if err != nil {
		return err
	}

	err = c.loop(ctx, tasks)
	if stderrors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *ConsoleCommand) loop(ctx context.Context, tasks services.TaskService) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu()
		choice, err := c.readChoice()
		if err != nil {
			return err
		}

		if choice == optionExit {
			c.app.println(msgGoodbye)
			return nil
		}

		actionCtx, cancel := context.WithTimeout(ctx, c.app.appTimeout())
		err = c.dispatch(actionCtx, tasks, choice)
		cancel()
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return err
			}
			c.logFailure(choice, err)
			c.app.println(err)
		}
	}
}

// logFailure keeps user mistakes at debug level and storage failures at error level
func (c *ConsoleCommand) logFailure(choice int, err error) {
	if errors.ShouldLogError(err) {
		c.app.logger.Error("console action failed", "choice", choice, "code", errors.GetErrorCode(err), "error", err)
		return
	}
	c.app.logger.Debug("console action failed", "choice", choice, "code", errors.GetErrorCode(err), "error", err)
}

func (c *ConsoleCommand) dispatch(ctx context.Context, tasks services.TaskService, choice int) error {
	switch choice {
	case optionAdd:
		return c.addTask(ctx, tasks)
	case optionRemove:
		return c.removeTask(ctx, tasks)
	case optionComplete:
		return c.completeTask(ctx, tasks)
	case optionView:
		c.viewTasks(tasks.Tasks())
	}
	return nil
}

func (c *ConsoleCommand) printMenu() {
	c.app.println()
	c.app.println("Task Manager Menu:")
	c.app.println("1. Add Task")
	c.app.println("2. Remove Task")
	c.app.println("3. Complete Task")
	c.app.println("4. View Tasks")
	c.app.println("5. Exit")
}

// readChoice re-prompts until a menu number is entered
func (c *ConsoleCommand) readChoice() (int, error) {
	c.app.println(msgChoose)
	for {
		line, err := c.app.readLine()
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			c.app.println(msgNotANumber)
			continue
		}
		if choice < optionAdd || choice > optionExit {
			c.app.println(msgChoiceRange)
			continue
		}
		return choice, nil
	}
}

func (c *ConsoleCommand) viewTasks(tasks []domain.Task) {
	if len(tasks) == 0 {
		c.app.println(msgNoTasks)
		return
	}
	for i := range tasks {
		c.app.printf("%d) %s\n", i+1, tasks[i].Summary(c.app.style))
	}
}

func (c *ConsoleCommand) readName(tasks services.TaskService) (string, error) {
	c.app.println(msgEnterName)
	for {
		line, err := c.app.readLine()
		if err != nil {
			return "", err
		}
		name, err := c.validator.GetValidTaskName(line)
		switch {
		case err != nil && strings.TrimSpace(line) == "":
			c.app.println(msgEmptyName)
		case err != nil:
			c.app.println(c.app.errs.HandleSimple(err))
		case tasks.CheckName(name):
			c.app.println(msgDuplicateName)
		default:
			return name, nil
		}
	}
}

func (c *ConsoleCommand) addTask(ctx context.Context, tasks services.TaskService) error {
	name, err := c.readName(tasks)
	if err != nil {
		return err
	}

	var task *domain.Task
	for task == nil {
		c.app.println(msgEnterDueDate)
		line, err := c.app.readLine()
		if err != nil {
			return err
		}
		task, err = domain.NewTask(name, strings.TrimSpace(line))
		if err != nil {
			c.app.println(msgBadDueDate)
		}
	}

	added, err := tasks.AddTask(ctx, task)
	if err != nil {
		return c.app.errs.Handle("add task", err)
	}
	if added {
		c.app.println(msgAdded)
	} else {
		c.app.println(msgNotAdded)
	}
	return nil
}

// selectTask lists tasks with 1-based numbers and reads a selection. It
// returns nil when the user enters the return key.
func (c *ConsoleCommand) selectTask(tasks []domain.Task, action string) (*domain.Task, error) {
	for {
		c.app.printf("Enter the number of the task to %s (or %s to return).\n", action, returnKey)
		c.viewTasks(tasks)

		line, err := c.app.readLine()
		if err != nil {
			return nil, err
		}
		input := strings.TrimSpace(line)
		if strings.EqualFold(input, returnKey) {
			return nil, nil
		}

		selection, err := strconv.Atoi(input)
		if err != nil {
			c.app.println(msgBadSelection)
			continue
		}
		if selection < 1 || selection > len(tasks) {
			c.app.println(msgSelectionRange)
			continue
		}
		return &tasks[selection-1], nil
	}
}

func (c *ConsoleCommand) removeTask(ctx context.Context, tasks services.TaskService) error {
	if tasks.Len() == 0 {
		c.app.println(msgNoTasks)
		return nil
	}

	task, err := c.selectTask(tasks.Tasks(), "remove")
	if err != nil || task == nil {
		return err
	}

	removed, err := tasks.RemoveTask(ctx, task)
	if err != nil {
		return c.app.errs.Handle("remove task", err)
	}
	if removed {
		c.app.println(msgRemoved)
	} else {
		c.app.println(msgNotRemoved)
	}
	return nil
}

func (c *ConsoleCommand) completeTask(ctx context.Context, tasks services.TaskService) error {
	if tasks.Len() == 0 {
		c.app.println(msgNoTasks)
		return nil
	}

	task, err := c.selectTask(tasks.Tasks(), "complete")
	if err != nil || task == nil {
		return err
	}

	completed, err := tasks.CompleteTask(ctx, task)
	if err != nil {
		return c.app.errs.Handle("complete task", err)
	}
	if completed {
		c.app.println(msgCompleted)
	} else {
		c.app.println(msgNotCompleted)
	}
	return nil
}
