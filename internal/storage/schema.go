// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Fully normalized: composite records are header + child rows, never blobs.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		muscle TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		session_date DATE NOT NULL,
		name TEXT,
		notes TEXT,
		duration_seconds INTEGER,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS session_sets (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		exercise_id TEXT,
		exercise_name TEXT NOT NULL,
		muscle TEXT NOT NULL,
		set_number INTEGER NOT NULL,
		reps INTEGER,
		weight REAL,
		unit TEXT,
		seq INTEGER NOT NULL,
		FOREIGN KEY (session_id) REFERENCES workout_sessions(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS workout_plans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plan_exercises (
		plan_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		target_sets INTEGER,
		order_index INTEGER NOT NULL,
		PRIMARY KEY (plan_id, order_index),
		FOREIGN KEY (plan_id) REFERENCES workout_plans(id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS counter_logs (
		user_id TEXT NOT NULL,
		log_date DATE NOT NULL,
		counter_type TEXT NOT NULL,
		amount INTEGER NOT NULL DEFAULT 0 CHECK (amount >= 0),
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, log_date, counter_type)
	);

	CREATE TABLE IF NOT EXISTS weight_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		log_date DATE NOT NULL,
		weight REAL NOT NULL,
		unit TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meal_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		log_date DATE NOT NULL,
		name TEXT NOT NULL,
		calories REAL NOT NULL DEFAULT 0,
		protein REAL NOT NULL DEFAULT 0,
		carbs REAL NOT NULL DEFAULT 0,
		fat REAL NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_goals (
		user_id TEXT PRIMARY KEY,
		calorie_goal REAL NOT NULL,
		protein_goal REAL NOT NULL,
		carb_goal REAL NOT NULL,
		fat_goal REAL NOT NULL,
		step_goal INTEGER NOT NULL,
		water_goal INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_user ON exercises(user_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_user_date ON workout_sessions(user_id, session_date DESC, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_session_sets_session ON session_sets(session_id, seq);
	CREATE INDEX IF NOT EXISTS idx_plans_user ON workout_plans(user_id);
	CREATE INDEX IF NOT EXISTS idx_weight_logs_user_date ON weight_logs(user_id, log_date);
	CREATE INDEX IF NOT EXISTS idx_meal_logs_user_date ON meal_logs(user_id, log_date);
	`

	_, err := d.db.Exec(schema)
	return err
}
