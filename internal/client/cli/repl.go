package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. *App satisfies it;
// tests provide a recording stub.
type execIface interface {
	loggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error

	Projects(ctx context.Context) error
	Project(ctx context.Context, id string) error
	AddProject(ctx context.Context) error
	EditProject(ctx context.Context, id string) error
	RemoveProject(ctx context.Context, id string) error

	Tasks(ctx context.Context, args []string) error
	Summary(ctx context.Context) error
	Board(ctx context.Context, projectID string) error
	Task(ctx context.Context, id string) error
	AddTask(ctx context.Context, projectID string) error
	EditTask(ctx context.Context, id string) error
	MoveTask(ctx context.Context, id, status string) error
	RemoveTask(ctx context.Context, id string) error
}

const (
	loginHelp = "Available commands: register, login, exit"
	mainHelp  = "Available commands: summary, projects, project <id>, addproject, editproject <id>, rmproject <id>, " +
		"tasks [-p project] [-s status] [-page n] [-limit n] [search], board <projectId>, task <id>, " +
		"addtask <projectId>, edittask <id>, move <id> [status], rmtask <id>, profile, editprofile, logout, exit"
)

// runREPL reads commands line by line from in and dispatches them to a.
// The login view accepts only register and login; everything else needs a
// signed-in user. The loop ends on EOF, "exit" or "quit".
//
// Handler errors are not printed here: handlers and the notifier report
// their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "taskboard %s> ", statusFn())
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		case "help":
			if a.loggedIn() {
				fmt.Fprintln(out, mainHelp)
			} else {
				fmt.Fprintln(out, loginHelp)
			}
			continue
		}

		if !a.loggedIn() {
			switch cmd {
			case "register":
				_ = a.Register(ctx)
			case "login":
				_ = a.Login(ctx)
			default:
				fmt.Fprintln(out, "Unknown command:", cmd, "(log in first)")
			}
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "editprofile":
			_ = a.EditProfile(ctx)

		case "summary":
			_ = a.Summary(ctx)
		case "projects":
			_ = a.Projects(ctx)
		case "addproject":
			_ = a.AddProject(ctx)
		case "project", "editproject", "rmproject",
			"board", "task", "addtask", "edittask", "rmtask":
			if len(args) == 0 {
				fmt.Fprintf(out, "Usage: %s <id>\n", cmd)
				continue
			}
			dispatchByID(ctx, a, cmd, args[0])
		case "move":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: move <id> [status]")
				continue
			}
			status := ""
			if len(args) > 1 {
				status = args[1]
			}
			_ = a.MoveTask(ctx, args[0], status)
		case "tasks":
			_ = a.Tasks(ctx, args)

		case "register", "login":
			fmt.Fprintln(out, "Already logged in, log out first")
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}

func dispatchByID(ctx context.Context, a execIface, cmd, id string) {
	switch cmd {
	case "project":
		_ = a.Project(ctx, id)
	case "editproject":
		_ = a.EditProject(ctx, id)
	case "rmproject":
		_ = a.RemoveProject(ctx, id)
	case "board":
		_ = a.Board(ctx, id)
	case "task":
		_ = a.Task(ctx, id)
	case "addtask":
		_ = a.AddTask(ctx, id)
	case "edittask":
		_ = a.EditTask(ctx, id)
	case "rmtask":
		_ = a.RemoveTask(ctx, id)
	}
}
