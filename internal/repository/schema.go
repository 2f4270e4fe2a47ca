package repository

import "database/sql"

// EnsureSchema creates all tables at startup. There is no migration
// mechanism; the schema only ever grows via new IF NOT EXISTS statements.
func EnsureSchema(db *sql.DB) error {
	query := `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    owner_id INT NOT NULL REFERENCES users (id),
    title VARCHAR(255) NOT NULL,
    description TEXT,
    status VARCHAR(255) NOT NULL DEFAULT 'todo',
    due_date TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tags (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE,
    color VARCHAR(32) NOT NULL DEFAULT '#cccccc'
);

CREATE TABLE IF NOT EXISTS task_tags (
    task_id INT NOT NULL REFERENCES tasks (id) ON DELETE CASCADE,
    tag_id INT NOT NULL REFERENCES tags (id) ON DELETE CASCADE,
    PRIMARY KEY (task_id, tag_id)
);
`
	_, err := db.Exec(query)
	return err
}

// DropTables removes everything, in FK order. Used by the test harness.
func DropTables(db *sql.DB) error {
	_, err := db.Exec(`
    DROP TABLE IF EXISTS task_tags;
    DROP TABLE IF EXISTS tasks;
    DROP TABLE IF EXISTS tags;
    DROP TABLE IF EXISTS users;
    `)
	return err
}
