package cli

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

const timeLayout = "2006-01-02 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "Name:    %s\n", u.Name)
	fmt.Fprintf(w, "Email:   %s\n", u.Email)
	fmt.Fprintf(w, "Country: %s\n", u.Country)
}

func printProjects(w io.Writer, list []models.Project) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTASKS\tCREATED")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.ID, p.Name, p.TaskCount, formatTime(p.CreatedAt))
	}
	_ = tw.Flush()
}

func printProject(w io.Writer, p *models.Project) {
	fmt.Fprintf(w, "%s (%d tasks)\n", p.Name, p.TaskCount)
	if p.Description != "" {
		fmt.Fprintln(w, p.Description)
	}
}

func printTasks(w io.Writer, list []models.Task) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPROJECT")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.ProjectID)
	}
	_ = tw.Flush()
}

func printBoard(w io.Writer, list []models.Task) {
	byStage := make(map[models.Stage][]models.Task)
	for _, t := range list {
		byStage[t.Status] = append(byStage[t.Status], t)
	}
	for _, st := range models.Stages() {
		tasks := byStage[st]
		fmt.Fprintf(w, "%s (%d)\n", st, len(tasks))
		for _, t := range tasks {
			fmt.Fprintf(w, "  %s  %s\n", t.ID, t.Title)
		}
	}
}

func printTask(w io.Writer, t *models.Task) {
	fmt.Fprintf(w, "Title:       %s\n", t.Title)
	fmt.Fprintf(w, "Status:      %s\n", t.Status)
	fmt.Fprintf(w, "Project:     %s\n", t.ProjectID)
	if t.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", t.Description)
	}
	fmt.Fprintf(w, "Created:     %s\n", formatTime(t.CreatedAt))
	if t.CompletedAt != nil {
		fmt.Fprintf(w, "Completed:   %s\n", formatTime(*t.CompletedAt))
	}
}

// taskSummary counts tasks per stage; byStage has an entry for every stage.
type taskSummary struct {
	projects int
	total    int
	byStage  map[models.Stage]int
}

func summarize(projects []models.Project, tasks []models.Task) taskSummary {
	s := taskSummary{projects: len(projects), total: len(tasks), byStage: make(map[models.Stage]int)}
	for _, st := range models.Stages() {
		s.byStage[st] = 0
	}
	for _, t := range tasks {
		s.byStage[t.Status]++
	}
	return s
}

// completionRate is the share of DONE tasks as a whole percentage, 0 with no tasks.
func (s taskSummary) completionRate() int {
	if s.total == 0 {
		return 0
	}
	return int(math.Round(float64(s.byStage[models.StageDone]) * 100 / float64(s.total)))
}

func printSummary(w io.Writer, s taskSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Projects:\t%d\n", s.projects)
	fmt.Fprintf(tw, "Tasks:\t%d\n", s.total)
	for _, st := range models.Stages() {
		fmt.Fprintf(tw, "  %s:\t%d\n", st, s.byStage[st])
	}
	fmt.Fprintf(tw, "Completion:\t%d%%\n", s.completionRate())
	_ = tw.Flush()
}
