package sqlite

// schema creates the tables for local mode and seeds the discipline
// registry. IDs are fixed so repeated opens stay idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS disciplines (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS study_records (
    id TEXT PRIMARY KEY,
    discipline_id TEXT NOT NULL,
    topic TEXT NOT NULL,
    time_spent TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL, -- YYYY-MM-DD
    notes TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL,
    revisions TEXT NOT NULL DEFAULT '[]',

    FOREIGN KEY(discipline_id) REFERENCES disciplines(id)
);

CREATE TABLE IF NOT EXISTS reviews (
    id TEXT PRIMARY KEY,
    study_record_id TEXT NOT NULL,
    discipline_id TEXT NOT NULL,
    topic TEXT NOT NULL,
    due_date TEXT NOT NULL, -- YYYY-MM-DD
    completed INTEGER NOT NULL DEFAULT 0,
    completed_at DATETIME,

    FOREIGN KEY(study_record_id) REFERENCES study_records(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_reviews_study_record_id ON reviews(study_record_id);
CREATE INDEX IF NOT EXISTS idx_reviews_due_date ON reviews(due_date);

CREATE TABLE IF NOT EXISTS schedule_settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    first_interval INTEGER NOT NULL,
    second_interval INTEGER NOT NULL,
    third_interval INTEGER NOT NULL,
    updated_at DATETIME NOT NULL
);

INSERT OR IGNORE INTO disciplines (id, name, color) VALUES
    ('7b0ce4f1-5d44-4a70-9f2a-17a4a9b0b001', 'Software Engineering', 'purple'),
    ('7b0ce4f1-5d44-4a70-9f2a-17a4a9b0b002', 'Databases', 'blue'),
    ('7b0ce4f1-5d44-4a70-9f2a-17a4a9b0b003', 'Artificial Intelligence', 'navy'),
    ('7b0ce4f1-5d44-4a70-9f2a-17a4a9b0b004', 'Computer Networks', 'green'),
    ('7b0ce4f1-5d44-4a70-9f2a-17a4a9b0b005', 'Data Structures', 'red'),
    ('7b0ce4f1-5d44-4a70-9f2a-17a4a9b0b006', 'OOP / Java', 'orange');
`
