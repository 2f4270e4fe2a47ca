package repository

import (
	"database/sql"

	"github.com/lib/pq"

	"taskboard/internal/models"
)

func UserByEmail(db *sql.DB, email string) (models.User, error) {
	var user models.User
	err := db.QueryRow(
		"SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	return user, err
}

func TaskByID(db *sql.DB, taskID int) (models.Task, error) {
	var task models.Task
	err := db.QueryRow(
		"SELECT id, owner_id, title, description, status, due_date, created_at, updated_at FROM tasks WHERE id = $1",
		taskID,
	).Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description,
		&task.Status, &task.DueDate, &task.CreatedAt, &task.UpdatedAt)
	return task, err
}

// TaskTags returns the tags currently linked to a task, ordered by id so
// responses are stable.
func TaskTags(db *sql.DB, taskID int) ([]models.Tag, error) {
	rows, err := db.Query(`
		SELECT t.id, t.name, t.color FROM tags t
		JOIN task_tags tt ON tt.tag_id = t.id
		WHERE tt.task_id = $1
		ORDER BY t.id`,
		taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTags(rows)
}

// ReplaceTaskTags swaps the task's whole tag set. Ids with no matching tag
// row are dropped, not errored: the INSERT selects only existing tags.
func ReplaceTaskTags(db *sql.DB, taskID int, tagIDs []int) error {
	if _, err := db.Exec("DELETE FROM task_tags WHERE task_id = $1", taskID); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	_, err := db.Exec(`
		INSERT INTO task_tags (task_id, tag_id)
		SELECT $1, id FROM tags WHERE id = ANY($2)
		ON CONFLICT DO NOTHING`,
		taskID, pq.Array(tagIDs))
	return err
}

func AllTags(db *sql.DB) ([]models.Tag, error) {
	rows, err := db.Query("SELECT id, name, color FROM tags ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTags(rows)
}

func scanTags(rows *sql.Rows) ([]models.Tag, error) {
	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
