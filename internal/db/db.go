package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tcstacks/minixword/internal/models"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Database bundles the puzzle archive (postgres) and the wordlist/puzzle
// cache (redis) a running crossgen server needs. Narrowed from the
// teacher's multiplayer schema (users, rooms, players, grid states, chat)
// to a generation-history archive, since this repo has no interactive
// solving surface.
type Database struct {
	DB    *sql.DB
	Redis *redis.Client
}

func New(postgresURL, redisURL string) (*Database, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Database{DB: db, Redis: rdb}, nil
}

func (d *Database) Close() error {
	if err := d.DB.Close(); err != nil {
		return err
	}
	return d.Redis.Close()
}

// InitSchema creates the puzzle archive and generation-run tables.
func (d *Database) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id VARCHAR(36) PRIMARY KEY,
		date DATE UNIQUE,
		title VARCHAR(255) NOT NULL,
		author VARCHAR(100) NOT NULL,
		difficulty VARCHAR(20) NOT NULL,
		grid_width INTEGER NOT NULL,
		grid_height INTEGER NOT NULL,
		grid JSONB NOT NULL,
		clues_across JSONB NOT NULL,
		clues_down JSONB NOT NULL,
		theme VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		published_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_puzzles_date ON puzzles(date);
	CREATE INDEX IF NOT EXISTS idx_puzzles_difficulty ON puzzles(difficulty);

	CREATE TABLE IF NOT EXISTS generation_runs (
		id VARCHAR(36) PRIMARY KEY,
		puzzle_id VARCHAR(36) REFERENCES puzzles(id) ON DELETE SET NULL,
		template_id VARCHAR(20) NOT NULL,
		seed BIGINT NOT NULL,
		tier INTEGER NOT NULL,
		attempts INTEGER NOT NULL,
		backtracks INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		succeeded BOOLEAN NOT NULL,
		failure_reason TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_generation_runs_template_id ON generation_runs(template_id);
	CREATE INDEX IF NOT EXISTS idx_generation_runs_created_at ON generation_runs(created_at);
	`

	_, err := d.DB.Exec(schema)
	return err
}

// Puzzle operations

func (d *Database) CreatePuzzle(puzzle *models.Puzzle) error {
	gridJSON, _ := json.Marshal(puzzle.Grid)
	cluesAcrossJSON, _ := json.Marshal(puzzle.CluesAcross)
	cluesDownJSON, _ := json.Marshal(puzzle.CluesDown)

	_, err := d.DB.Exec(`
		INSERT INTO puzzles (id, date, title, author, difficulty, grid_width, grid_height,
							 grid, clues_across, clues_down, theme, created_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, puzzle.ID, puzzle.Date, puzzle.Title, puzzle.Author, puzzle.Difficulty, puzzle.GridWidth, puzzle.GridHeight,
		gridJSON, cluesAcrossJSON, cluesDownJSON, puzzle.Theme, puzzle.CreatedAt, puzzle.PublishedAt)
	return err
}

func scanPuzzle(row interface {
	Scan(dest ...interface{}) error
}) (*models.Puzzle, error) {
	puzzle := &models.Puzzle{}
	var gridJSON, cluesAcrossJSON, cluesDownJSON []byte

	err := row.Scan(&puzzle.ID, &puzzle.Date, &puzzle.Title, &puzzle.Author, &puzzle.Difficulty,
		&puzzle.GridWidth, &puzzle.GridHeight, &gridJSON, &cluesAcrossJSON, &cluesDownJSON,
		&puzzle.Theme, &puzzle.CreatedAt, &puzzle.PublishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(gridJSON, &puzzle.Grid)
	json.Unmarshal(cluesAcrossJSON, &puzzle.CluesAcross)
	json.Unmarshal(cluesDownJSON, &puzzle.CluesDown)

	return puzzle, nil
}

const puzzleColumns = `id, date, title, author, difficulty, grid_width, grid_height,
	grid, clues_across, clues_down, theme, created_at, published_at`

func (d *Database) GetPuzzleByID(id string) (*models.Puzzle, error) {
	row := d.DB.QueryRow(`SELECT `+puzzleColumns+` FROM puzzles WHERE id = $1`, id)
	return scanPuzzle(row)
}

func (d *Database) GetPuzzleByDate(date string) (*models.Puzzle, error) {
	if cached, err := d.getCachedPuzzleByDate(context.Background(), date); err == nil && cached != nil {
		return cached, nil
	}

	row := d.DB.QueryRow(`SELECT `+puzzleColumns+` FROM puzzles WHERE date = $1`, date)
	puzzle, err := scanPuzzle(row)
	if err == nil && puzzle != nil {
		d.cachePuzzleByDate(context.Background(), date, puzzle)
	}
	return puzzle, err
}

func (d *Database) GetTodayPuzzle() (*models.Puzzle, error) {
	today := time.Now().Format("2006-01-02")
	return d.GetPuzzleByDate(today)
}

// GetPuzzleArchive returns puzzles ordered newest-first, optionally
// filtered by difficulty.
func (d *Database) GetPuzzleArchive(difficulty string, limit, offset int) ([]*models.Puzzle, error) {
	query := `SELECT ` + puzzleColumns + ` FROM puzzles WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if difficulty != "" {
		query += fmt.Sprintf(" AND difficulty = $%d", argNum)
		args = append(args, difficulty)
		argNum++
	}

	query += " ORDER BY COALESCE(published_at, created_at) DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := d.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var puzzles []*models.Puzzle
	for rows.Next() {
		puzzle, err := scanPuzzle(rows)
		if err != nil {
			return nil, err
		}
		puzzles = append(puzzles, puzzle)
	}

	return puzzles, nil
}

func (d *Database) GetPuzzleArchiveCount(difficulty string) (int, error) {
	query := `SELECT COUNT(*) FROM puzzles WHERE 1=1`
	args := []interface{}{}

	if difficulty != "" {
		query += " AND difficulty = $1"
		args = append(args, difficulty)
	}

	var count int
	err := d.DB.QueryRow(query, args...).Scan(&count)
	return count, err
}

func (d *Database) DeletePuzzle(id string) error {
	_, err := d.DB.Exec(`DELETE FROM puzzles WHERE id = $1`, id)
	return err
}

// Generation run operations

func (d *Database) CreateGenerationRun(run *models.GenerationRun) error {
	_, err := d.DB.Exec(`
		INSERT INTO generation_runs (id, puzzle_id, template_id, seed, tier, attempts, backtracks,
									 duration_ms, succeeded, failure_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, run.ID, run.PuzzleID, run.TemplateID, run.Seed, run.Tier, run.Attempts, run.Backtracks,
		run.DurationMS, run.Succeeded, run.FailureReason, run.CreatedAt)
	return err
}

// GetRecentGenerationRuns returns the most recent runs for a template, or
// across all templates when templateID is empty.
func (d *Database) GetRecentGenerationRuns(templateID string, limit int) ([]models.GenerationRun, error) {
	query := `
		SELECT id, puzzle_id, template_id, seed, tier, attempts, backtracks,
			   duration_ms, succeeded, failure_reason, created_at
		FROM generation_runs WHERE 1=1
	`
	args := []interface{}{}
	argNum := 1

	if templateID != "" {
		query += fmt.Sprintf(" AND template_id = $%d", argNum)
		args = append(args, templateID)
		argNum++
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d", argNum)
	args = append(args, limit)

	rows, err := d.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.GenerationRun
	for rows.Next() {
		var run models.GenerationRun
		var failureReason sql.NullString
		var puzzleID sql.NullString
		if err := rows.Scan(&run.ID, &puzzleID, &run.TemplateID, &run.Seed, &run.Tier, &run.Attempts,
			&run.Backtracks, &run.DurationMS, &run.Succeeded, &failureReason, &run.CreatedAt); err != nil {
			return nil, err
		}
		if puzzleID.Valid {
			run.PuzzleID = &puzzleID.String
		}
		run.FailureReason = failureReason.String
		runs = append(runs, run)
	}

	return runs, nil
}

// Redis cache operations. The cache has room for two things: the
// tier-sliced wordlists (CacheWordTier/GetCachedWordTier, which nothing
// in the generation pipeline calls) and the resolved puzzle for each
// recent date (so repeat reads of "today's puzzle" skip postgres).

const wordTierTTL = 24 * time.Hour
const puzzleCacheTTL = time.Hour

func wordTierKey(templateLength, tier int) string {
	return fmt.Sprintf("wordtier:%d:%d", templateLength, tier)
}

func (d *Database) CacheWordTier(ctx context.Context, length, tier int, words []string) error {
	data, err := json.Marshal(words)
	if err != nil {
		return err
	}
	return d.Redis.Set(ctx, wordTierKey(length, tier), data, wordTierTTL).Err()
}

func (d *Database) GetCachedWordTier(ctx context.Context, length, tier int) ([]string, error) {
	data, err := d.Redis.Get(ctx, wordTierKey(length, tier)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, err
	}
	return words, nil
}

func (d *Database) cachePuzzleByDate(ctx context.Context, date string, puzzle *models.Puzzle) error {
	data, err := json.Marshal(puzzle)
	if err != nil {
		return err
	}
	return d.Redis.Set(ctx, "puzzle:date:"+date, data, puzzleCacheTTL).Err()
}

func (d *Database) getCachedPuzzleByDate(ctx context.Context, date string) (*models.Puzzle, error) {
	data, err := d.Redis.Get(ctx, "puzzle:date:"+date).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var puzzle models.Puzzle
	if err := json.Unmarshal(data, &puzzle); err != nil {
		return nil, err
	}
	return &puzzle, nil
}
