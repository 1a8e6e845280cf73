package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA temp_store = MEMORY;

-- Settings: flat key/value options, values JSON-encoded
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Saved summaries: user archive, newest = highest seq
CREATE TABLE IF NOT EXISTS saved_summaries (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    summary TEXT NOT NULL,
    book_title TEXT NOT NULL DEFAULT '',
    chapter_title TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',     -- JSON array
    url TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL          -- unix milliseconds
);

CREATE INDEX IF NOT EXISTS idx_saved_summaries_created ON saved_summaries(created_at DESC);

-- Last summary: single slot mirror of the coordinator cache
CREATE TABLE IF NOT EXISTS last_summary (
    slot INTEGER PRIMARY KEY CHECK (slot = 1),
    source_url TEXT NOT NULL,
    text TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
`
