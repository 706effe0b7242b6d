package agent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MikVR7/Homie-sub000/internal/config"
	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/utils"
	"github.com/MikVR7/Homie-sub000/models"
)

const (
	createStateSchema = `
		CREATE TABLE IF NOT EXISTS agent_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS reported_drives (
			unique_identifier TEXT PRIMARY KEY,
			mount_point       TEXT NOT NULL,
			is_available      INTEGER NOT NULL
		);`

	getStateValue = `SELECT value FROM agent_state WHERE key = $1;`
	setStateValue = `INSERT INTO agent_state (key, value) VALUES ($1, $2);`

	getReportedIdentifiers = `SELECT unique_identifier FROM reported_drives;`
	clearReportedDrives    = `DELETE FROM reported_drives;`
	insertReportedDrive    = `
		INSERT INTO reported_drives (unique_identifier, mount_point, is_available)
		VALUES ($1, $2, $3);`
)

const clientIDKey = "client_id"

type sqliteState struct {
	db *sql.DB

	uuidGenerator *utils.UUIDGenerator
	logger        *logger.Logger
}

// NewSQLiteState opens (or creates) the agent's local state database and
// ensures its schema exists.
func NewSQLiteState(ctx context.Context, cfg config.AgentStorage, log *logger.Logger) (StateStore, error) {
	if err := createLocalDBFileIfNotExists(cfg.StateDBPath); err != nil {
		log.Err(err).Str("func", "NewSQLiteState").Msg("error creating state database file")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", cfg.StateDBPath)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteState").Msg("error opening state database")
		return nil, fmt.Errorf("open state database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteState").Msg("error connecting state database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, createStateSchema); err != nil {
		return nil, fmt.Errorf("create state schema: %w", err)
	}

	return &sqliteState{
		db:            conn,
		uuidGenerator: utils.NewUUIDGenerator(),
		logger:        log,
	}, nil
}

func (s *sqliteState) ClientID(ctx context.Context) (string, error) {
	var clientID string
	err := s.db.QueryRowContext(ctx, getStateValue, clientIDKey).Scan(&clientID)
	if err == nil {
		return clientID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("read client id: %w", err)
	}

	clientID = s.uuidGenerator.Generate()
	if _, err = s.db.ExecContext(ctx, setStateValue, clientIDKey, clientID); err != nil {
		return "", fmt.Errorf("persist client id: %w", err)
	}
	s.logger.Info().Str("client_id", clientID).Msg("generated new client id")

	return clientID, nil
}

func (s *sqliteState) LastReported(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, getReportedIdentifiers)
	if err != nil {
		return nil, fmt.Errorf("read reported drives: %w", err)
	}
	defer rows.Close()

	var identifiers []string
	for rows.Next() {
		var identifier string
		if err = rows.Scan(&identifier); err != nil {
			return nil, fmt.Errorf("scan reported drive: %w", err)
		}
		identifiers = append(identifiers, identifier)
	}

	return identifiers, rows.Err()
}

func (s *sqliteState) SaveReported(ctx context.Context, drives []models.DriveInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin state transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err = tx.ExecContext(ctx, clearReportedDrives); err != nil {
		return fmt.Errorf("clear reported drives: %w", err)
	}

	for _, drive := range drives {
		_, err = tx.ExecContext(ctx, insertReportedDrive,
			drive.UniqueIdentifier, string(drive.MountPoint), drive.IsAvailable)
		if err != nil {
			return fmt.Errorf("insert reported drive: %w", err)
		}
	}

	return tx.Commit()
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dir := filepath.Dir(dbFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating state directory: %w", err)
		}
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
