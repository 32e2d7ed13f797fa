package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

// parseTaskQuery reads "tasks" arguments:
//
//	-p projectId  -s status  -page n  -limit n  [search words...]
//
// Words left after the flags form the title search.
func parseTaskQuery(args []string) (models.TaskQuery, error) {
	var (
		q      models.TaskQuery
		status string
	)

	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&q.ProjectID, "p", "", "project id")
	fs.StringVar(&status, "s", "", "status")
	fs.IntVar(&q.Page, "page", 0, "page number")
	fs.IntVar(&q.Limit, "limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return q, err
	}

	if status != "" {
		st, err := models.ParseStage(strings.ToUpper(status))
		if err != nil {
			return q, err
		}
		q.Status = st
	}
	if q.Page < 0 || q.Limit < 0 {
		return q, fmt.Errorf("page and limit must be positive")
	}
	q.Search = strings.Join(fs.Args(), " ")
	return q, nil
}

func (a *App) Tasks(ctx context.Context, args []string) error {
	q, err := parseTaskQuery(args)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid arguments: %v\n", err)
		return err
	}

	list, err := a.tasks.List(ctx, q)
	if err != nil {
		return err
	}
	if len(list.Tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks found")
	} else {
		printTasks(a.out, list.Tasks)
	}
	if p := list.Pagination; p != nil {
		fmt.Fprintf(a.out, "Page %d of %d (%d tasks)\n", p.Page, p.TotalPages, p.Total)
	}
	return nil
}

// Board prints the tasks of a project grouped by stage in workflow order.
func (a *App) Board(ctx context.Context, projectID string) error {
	list, err := a.tasks.List(ctx, models.TaskQuery{ProjectID: projectID})
	if err != nil {
		return err
	}
	printBoard(a.out, list.Tasks)
	return nil
}

// Summary prints the dashboard: project and task totals, tasks per stage and
// the completion rate.
func (a *App) Summary(ctx context.Context) error {
	projects, err := a.projects.List(ctx)
	if err != nil {
		return err
	}
	list, err := a.tasks.List(ctx, models.TaskQuery{})
	if err != nil {
		return err
	}
	printSummary(a.out, summarize(projects, list.Tasks))
	return nil
}

func (a *App) Task(ctx context.Context, id string) error {
	t, err := a.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	printTask(a.out, t)
	return nil
}

func (a *App) AddTask(ctx context.Context, projectID string) error {
	title, err := GetSimpleText(a.reader, "Enter task title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(a.out, "Task title is required")
		return nil
	}
	desc, err := GetMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}
	raw, err := GetSimpleText(a.reader, "Enter status (TODO, IN_PROGRESS, REVIEW, DONE; Enter for TODO)", a.out)
	if err != nil {
		return err
	}

	in := models.TaskCreate{Title: title, Description: desc, ProjectID: projectID}
	if raw != "" {
		st, err := models.ParseStage(strings.ToUpper(raw))
		if err != nil {
			fmt.Fprintln(a.out, err)
			return err
		}
		in.Status = st
	}

	t, err := a.tasks.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "ID: %s\n", t.ID)
	return nil
}

func (a *App) EditTask(ctx context.Context, id string) error {
	t, err := a.tasks.Get(ctx, id)
	if err != nil {
		return err
	}

	var upd models.TaskUpdate
	if upd.Title, err = GetOptionalText(a.reader, "Title", t.Title, a.out); err != nil {
		return err
	}
	if upd.Description, err = GetOptionalText(a.reader, "Description", t.Description, a.out); err != nil {
		return err
	}
	raw, err := GetOptionalText(a.reader, "Status", string(t.Status), a.out)
	if err != nil {
		return err
	}
	if raw != nil {
		st, err := models.ParseStage(strings.ToUpper(*raw))
		if err != nil {
			fmt.Fprintln(a.out, err)
			return err
		}
		upd.Status = &st
	}
	if upd.Title == nil && upd.Description == nil && upd.Status == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	_, err = a.tasks.Update(ctx, id, upd)
	return err
}

// MoveTask sets the status of a task, or advances it one stage when status
// is empty.
func (a *App) MoveTask(ctx context.Context, id, status string) error {
	var target models.Stage
	if status != "" {
		st, err := models.ParseStage(strings.ToUpper(status))
		if err != nil {
			fmt.Fprintln(a.out, err)
			return err
		}
		target = st
	} else {
		t, err := a.tasks.Get(ctx, id)
		if err != nil {
			return err
		}
		next, ok := t.Status.Next()
		if !ok {
			fmt.Fprintf(a.out, "Task is already %s\n", t.Status)
			return nil
		}
		target = next
	}

	_, err := a.tasks.Update(ctx, id, models.TaskUpdate{Status: &target})
	return err
}

func (a *App) RemoveTask(ctx context.Context, id string) error {
	if !a.confirm("Delete the task?") {
		return nil
	}
	return a.tasks.Delete(ctx, id)
}
