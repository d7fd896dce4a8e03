// Package profilestore is a keyed store for learner profiles and saved
// training plans. It lives outside the scoring core: the scorers never touch
// it, and it never influences a score.
package profilestore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/talentforge/talentforge/internal/taxonomy"
	"github.com/talentforge/talentforge/internal/training"
)

// ErrNotFound is returned when a profile or plan does not exist.
var ErrNotFound = errors.New("not found")

// Store manages learner state in SQLite.
type Store struct {
	DBPath string
	db     *sql.DB
}

// Profile is a stored learner record.
type Profile struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Skills    []taxonomy.Skill `json:"skills"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SavedPlan is a training plan persisted for a profile.
type SavedPlan struct {
	ID        string         `json:"id"`
	ProfileID string         `json:"profile_id"`
	Plan      *training.Plan `json:"plan"`
	CreatedAt time.Time      `json:"created_at"`
}

// Open opens or creates the store database.
func Open(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure store dir: %w", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	store := &Store{DBPath: absPath, db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ensureSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	skills_json TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS plans (
	id TEXT PRIMARY KEY,
	profile_id TEXT NOT NULL,
	plan_json TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plans_profile ON plans(profile_id, created_at);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create store schema: %w", err)
	}
	return nil
}

// PutProfile creates or replaces a profile and stamps it with the current
// time.
func (s *Store) PutProfile(id, name string, skills []taxonomy.Skill) error {
	if id == "" {
		return fmt.Errorf("profile id is required")
	}

	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	_, err = s.db.Exec(`
INSERT INTO profiles (id, name, skills_json, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, skills_json = excluded.skills_json, updated_at = excluded.updated_at
`, id, name, string(skillsJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put profile %s: %w", id, err)
	}

	return nil
}

// GetProfile returns the stored profile or ErrNotFound.
func (s *Store) GetProfile(id string) (*Profile, error) {
	row := s.db.QueryRow(`SELECT id, name, skills_json, updated_at FROM profiles WHERE id = ?`, id)

	var profile Profile
	var skillsJSON, updatedAt string
	if err := row.Scan(&profile.ID, &profile.Name, &skillsJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(skillsJSON), &profile.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills for %s: %w", id, err)
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		profile.UpdatedAt = ts
	}

	return &profile, nil
}

// ListProfiles returns all profiles ordered by id.
func (s *Store) ListProfiles() ([]Profile, error) {
	rows, err := s.db.Query(`SELECT id, name, skills_json, updated_at FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var profile Profile
		var skillsJSON, updatedAt string
		if err := rows.Scan(&profile.ID, &profile.Name, &skillsJSON, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		if err := json.Unmarshal([]byte(skillsJSON), &profile.Skills); err != nil {
			return nil, fmt.Errorf("unmarshal skills for %s: %w", profile.ID, err)
		}
		if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			profile.UpdatedAt = ts
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// EvictProfile removes a profile and every plan saved for it. Evicting an
// unknown profile returns ErrNotFound.
func (s *Store) EvictProfile(id string) error {
	result, err := s.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("evict profile %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("evict profile %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}

	if _, err := s.db.Exec(`DELETE FROM plans WHERE profile_id = ?`, id); err != nil {
		return fmt.Errorf("evict plans for %s: %w", id, err)
	}

	return nil
}

// SavePlan persists a training plan for a profile and returns the plan id.
func (s *Store) SavePlan(profileID string, plan *training.Plan) (string, error) {
	if profileID == "" {
		return "", fmt.Errorf("profile id is required")
	}
	if plan == nil {
		return "", fmt.Errorf("plan is required")
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("marshal plan: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(`INSERT INTO plans (id, profile_id, plan_json, created_at) VALUES (?, ?, ?, ?)`,
		id, profileID, string(planJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("save plan for %s: %w", profileID, err)
	}

	return id, nil
}

// ListPlans returns the plans saved for a profile, oldest first.
func (s *Store) ListPlans(profileID string) ([]SavedPlan, error) {
	rows, err := s.db.Query(`SELECT id, profile_id, plan_json, created_at FROM plans WHERE profile_id = ? ORDER BY created_at`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list plans for %s: %w", profileID, err)
	}
	defer rows.Close()

	var plans []SavedPlan
	for rows.Next() {
		var saved SavedPlan
		var planJSON, createdAt string
		if err := rows.Scan(&saved.ID, &saved.ProfileID, &planJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		if err := json.Unmarshal([]byte(planJSON), &saved.Plan); err != nil {
			return nil, fmt.Errorf("unmarshal plan %s: %w", saved.ID, err)
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			saved.CreatedAt = ts
		}
		plans = append(plans, saved)
	}

	return plans, rows.Err()
}
