package models

import (
	"database/sql"
	"time"
)

// User is the stored shape. PasswordHash never leaves the process; the
// serialized form is always UserView.
type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type UserView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

type Task struct {
	ID          int
	OwnerID     int
	Title       string
	Description sql.NullString
	Status      string
	DueDate     sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskView embeds the resolved tags so a single response carries the full
// task, the way the frontend consumes it.
type TaskView struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []TagView  `json:"tags"`
}

func (t Task) View(tags []Tag) TaskView {
	view := TaskView{
		ID:     t.ID,
		Title:  t.Title,
		Status: t.Status,
		Tags:   make([]TagView, 0, len(tags)),
	}
	if t.Description.Valid {
		view.Description = &t.Description.String
	}
	if t.DueDate.Valid {
		view.DueDate = &t.DueDate.Time
	}
	for _, tag := range tags {
		view.Tags = append(view.Tags, tag.View())
	}
	return view
}

// TaskPatch is a partial update: nil means "leave unchanged". TagIDs nil
// means keep the current tag set; non-nil replaces it wholesale.
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	TagIDs      *[]int     `json:"tag_ids"`
}

// Apply overwrites only the fields present in the patch.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = sql.NullString{String: *p.Description, Valid: true}
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = sql.NullTime{Time: *p.DueDate, Valid: true}
	}
}

type Tag struct {
	ID    int
	Name  string
	Color string
}

type TagView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (t Tag) View() TagView {
	return TagView{ID: t.ID, Name: t.Name, Color: t.Color}
}
