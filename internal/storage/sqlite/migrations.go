package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: users and messes must be created before the tables that
// reference them via foreign keys.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS messes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    currency TEXT NOT NULL,
    include_breakfast INTEGER NOT NULL DEFAULT 1,
    breakfast_weight REAL NOT NULL DEFAULT 0.5,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS memberships (
    mess_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    role TEXT NOT NULL,
    PRIMARY KEY (mess_id, user_id),
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    user_id TEXT,
    name TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    active INTEGER NOT NULL DEFAULT 1,
    default_pattern TEXT NOT NULL DEFAULT 'NONE',
    created_at INTEGER NOT NULL,
    UNIQUE (mess_id, name),
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS meals (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    date TEXT NOT NULL,
    breakfast INTEGER NOT NULL DEFAULT 0,
    lunch INTEGER NOT NULL DEFAULT 0,
    dinner INTEGER NOT NULL DEFAULT 0,
    extra REAL NOT NULL DEFAULT 0,
    UNIQUE (mess_id, member_id, date),
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE,
    FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    date TEXT NOT NULL,
    amount REAL NOT NULL,
    category TEXT NOT NULL DEFAULT 'other',
    paid_by_member_id TEXT,
    note TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE,
    FOREIGN KEY (paid_by_member_id) REFERENCES members(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS deposits (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    date TEXT NOT NULL,
    amount REAL NOT NULL,
    method TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE,
    FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS manager_assignments (
    id TEXT PRIMARY KEY,
    mess_id TEXT NOT NULL,
    manager_user_id TEXT NOT NULL,
    manager_member_id TEXT,
    type TEXT NOT NULL,
    period_label TEXT NOT NULL DEFAULT '',
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    created_by_user_id TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (mess_id) REFERENCES messes(id) ON DELETE CASCADE,
    FOREIGN KEY (manager_user_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY (manager_member_id) REFERENCES members(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_memberships_user_id ON memberships(user_id);
CREATE INDEX IF NOT EXISTS idx_members_mess_id ON members(mess_id);
CREATE INDEX IF NOT EXISTS idx_meals_mess_date ON meals(mess_id, date);
CREATE INDEX IF NOT EXISTS idx_meals_member_id ON meals(member_id);
CREATE INDEX IF NOT EXISTS idx_expenses_mess_date ON expenses(mess_id, date);
CREATE INDEX IF NOT EXISTS idx_deposits_mess_date ON deposits(mess_id, date);
CREATE INDEX IF NOT EXISTS idx_deposits_member_id ON deposits(member_id);
CREATE INDEX IF NOT EXISTS idx_assignments_mess_id ON manager_assignments(mess_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
