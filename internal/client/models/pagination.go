package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Pagination describes one page of a listing. Page is 1-based.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// TaskPage is the pagination envelope wrapping a task list.
type TaskPage struct {
	Items []Task `json:"items"`
	Pagination
}

// TaskList is the result of a task query. The server answers with a
// TaskPage when pagination was requested and with a bare array otherwise;
// TaskList accepts both. Pagination is nil for the bare form.
type TaskList struct {
	Tasks      []Task
	Pagination *Pagination
}

func (l *TaskList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = TaskList{}
		return nil
	}

	switch data[0] {
	case '[':
		var tasks []Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return err
		}
		*l = TaskList{Tasks: tasks}
		return nil
	case '{':
		var page TaskPage
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		p := page.Pagination
		*l = TaskList{Tasks: page.Items, Pagination: &p}
		return nil
	default:
		return errors.New("task list: expected array or pagination envelope")
	}
}

// MarshalJSON writes the envelope form when pagination is known.
func (l TaskList) MarshalJSON() ([]byte, error) {
	tasks := l.Tasks
	if tasks == nil {
		tasks = []Task{}
	}
	if l.Pagination == nil {
		return json.Marshal(tasks)
	}
	return json.Marshal(TaskPage{Items: tasks, Pagination: *l.Pagination})
}

// TotalPages computes the page count for total items split into pages of
// limit. A non-positive limit yields a single page.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		if total == 0 {
			return 0
		}
		return 1
	}
	return (total + limit - 1) / limit
}
