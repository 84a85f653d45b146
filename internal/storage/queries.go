package storage

const (
	createWordlistTable = `CREATE TABLE IF NOT EXISTS wordlist_entries (
        id SERIAL PRIMARY KEY,
        language TEXT NOT NULL,
        rank INT NOT NULL,
        word TEXT NOT NULL,
        count BIGINT NOT NULL DEFAULT 0,
        UNIQUE (language, rank),
        UNIQUE (language, word)
    )`

	createEvalRunsTable = `CREATE TABLE IF NOT EXISTS eval_runs (
        id SERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        gold_path TEXT NOT NULL,
        pred_path TEXT NOT NULL,
        accuracy DOUBLE PRECISION NOT NULL,
        hits INT NOT NULL,
        misses INT NOT NULL,
        oov_rate DOUBLE PRECISION NOT NULL,
        oov_accuracy DOUBLE PRECISION NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`

	deleteWordlist = `DELETE FROM wordlist_entries WHERE language = $1`

	insertWordlistEntry = `INSERT INTO wordlist_entries (language, rank, word, count)
        VALUES ($1, $2, $3, $4)`

	selectWordlist = `SELECT word, count FROM wordlist_entries
        WHERE language = $1 ORDER BY rank`

	selectWordlistLimit = `SELECT word, count FROM wordlist_entries
        WHERE language = $1 ORDER BY rank LIMIT $2`

	countWordlist = `SELECT COUNT(*) FROM wordlist_entries WHERE language = $1`

	insertEvalRun = `INSERT INTO eval_runs
        (name, gold_path, pred_path, accuracy, hits, misses, oov_rate, oov_accuracy)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`

	selectEvalRuns = `SELECT id, name, gold_path, pred_path, accuracy, hits, misses,
        oov_rate, oov_accuracy, created_at
        FROM eval_runs ORDER BY id DESC LIMIT $1`
)
