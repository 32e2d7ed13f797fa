package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

// confirm asks a yes/no question; anything but y/yes is no.
func (a *App) confirm(prompt string) bool {
	answer, err := GetSimpleText(a.reader, prompt+" (y/N)", a.out)
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (a *App) Projects(ctx context.Context) error {
	list, err := a.projects.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No projects yet. Create one with 'addproject'.")
		return nil
	}
	printProjects(a.out, list)
	return nil
}

// Project prints a project followed by its task board.
func (a *App) Project(ctx context.Context, id string) error {
	p, err := a.projects.Get(ctx, id)
	if err != nil {
		return err
	}
	printProject(a.out, p)
	return a.Board(ctx, id)
}

func (a *App) AddProject(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter project name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "Project name is required")
		return nil
	}
	desc, err := GetSimpleText(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}

	p, err := a.projects.Create(ctx, models.ProjectCreate{Name: name, Description: desc})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "ID: %s\n", p.ID)
	return nil
}

func (a *App) EditProject(ctx context.Context, id string) error {
	p, err := a.projects.Get(ctx, id)
	if err != nil {
		return err
	}

	var upd models.ProjectUpdate
	if upd.Name, err = GetOptionalText(a.reader, "Name", p.Name, a.out); err != nil {
		return err
	}
	if upd.Description, err = GetOptionalText(a.reader, "Description", p.Description, a.out); err != nil {
		return err
	}
	if upd.Name == nil && upd.Description == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	_, err = a.projects.Update(ctx, id, upd)
	return err
}

func (a *App) RemoveProject(ctx context.Context, id string) error {
	if !a.confirm("Delete the project and all its tasks?") {
		return nil
	}
	return a.projects.Delete(ctx, id)
}
