package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	policy TEXT NOT NULL,
	months INTEGER NOT NULL,
	final_balance TEXT NOT NULL,
	final_funds TEXT NOT NULL,
	total_paid TEXT NOT NULL,
	missed INTEGER NOT NULL,
	foreclosed BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS months (
	run_id TEXT NOT NULL,
	month INTEGER NOT NULL,
	date DATETIME NOT NULL,
	payment TEXT NOT NULL,
	balance TEXT NOT NULL,
	funds TEXT NOT NULL,
	missed INTEGER NOT NULL,
	foreclosed BOOLEAN NOT NULL,
	PRIMARY KEY (run_id, month)
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`
