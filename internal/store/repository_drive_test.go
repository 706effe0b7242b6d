package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxArgConverter mimics the pgx stdlib driver, which accepts int64 slices
// for ANY($1) parameters. sqlmock's default converter rejects them, so
// slices are rendered as PostgreSQL array literals for argument matching.
type pgxArgConverter struct{}

func (pgxArgConverter) ConvertValue(v any) (driver.Value, error) {
	if ids, ok := v.([]int64); ok {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.FormatInt(id, 10)
		}
		return "{" + strings.Join(parts, ",") + "}", nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newTestDriveRepo(t *testing.T) (*driveRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(pgxArgConverter{}))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &driveRepository{
		DB: &DB{
			DB:                 db,
			logger:             l,
			errorClassificator: NewPostgresErrorClassifier(),
		},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var driveColumns = []string{
	"drive_id", "user_id", "unique_identifier", "drive_type", "volume_label",
	"cloud_provider", "total_space", "available_space", "last_seen_at",
}

var mountColumns = []string{"drive_id", "client_id", "mount_point", "is_available", "last_seen_at"}

func usbDriveInfo() models.DriveInfo {
	return models.DriveInfo{
		UniqueIdentifier: "usb-serial-123",
		DriveType:        models.DriveTypeUSB,
		VolumeLabel:      "BACKUP",
		TotalSpace:       64_000_000_000,
		AvailableSpace:   10_000_000_000,
		MountPoint:       "/media/user/backup",
		IsAvailable:      true,
	}
}

func TestRegisterDrive_NewDrive(t *testing.T) {
	repo, mock, db := newTestDriveRepo(t)
	defer db.Close()

	info := usbDriveInfo()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT drive_id").
		WithArgs(int64(42), info.UniqueIdentifier).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO drives").
		WithArgs(int64(42), info.UniqueIdentifier, "usb", info.VolumeLabel, nil,
			info.TotalSpace, info.AvailableSpace).
		WillReturnRows(sqlmock.NewRows(driveColumns).
			AddRow(7, 42, info.UniqueIdentifier, "usb", info.VolumeLabel, nil,
				info.TotalSpace, info.AvailableSpace, now))
	mock.ExpectExec("INSERT INTO client_mounts").
		WithArgs(int64(7), "laptop-a", "/media/user/backup", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT drive_id, client_id").
		WithArgs("{7}").
		WillReturnRows(sqlmock.NewRows(mountColumns).
			AddRow(7, "laptop-a", "/media/user/backup", true, now))

	drive, err := repo.Register(context.Background(), 42, "laptop-a", info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if drive.ID != 7 {
		t.Errorf("expected drive ID 7, got %d", drive.ID)
	}
	if len(drive.Mounts) != 1 || drive.Mounts[0].ClientID != "laptop-a" {
		t.Errorf("expected one mount for laptop-a, got %+v", drive.Mounts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRegisterDrive_ExistingDriveKeepsID(t *testing.T) {
	repo, mock, db := newTestDriveRepo(t)
	defer db.Close()

	info := usbDriveInfo()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT drive_id").
		WithArgs(int64(42), info.UniqueIdentifier).
		WillReturnRows(sqlmock.NewRows(driveColumns).
			AddRow(7, 42, info.UniqueIdentifier, "usb", "OLD-LABEL", nil, 1, 1, now))
	mock.ExpectQuery("UPDATE drives").
		WithArgs(int64(7), "usb", info.VolumeLabel, nil, info.TotalSpace, info.AvailableSpace).
		WillReturnRows(sqlmock.NewRows(driveColumns).
			AddRow(7, 42, info.UniqueIdentifier, "usb", info.VolumeLabel, nil,
				info.TotalSpace, info.AvailableSpace, now))
	mock.ExpectExec("INSERT INTO client_mounts").
		WithArgs(int64(7), "laptop-b", "/media/user/backup", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT drive_id, client_id").
		WithArgs("{7}").
		WillReturnRows(sqlmock.NewRows(mountColumns).
			AddRow(7, "laptop-a", "/mnt/backup", false, now).
			AddRow(7, "laptop-b", "/media/user/backup", true, now))

	drive, err := repo.Register(context.Background(), 42, "laptop-b", info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if drive.ID != 7 {
		t.Errorf("expected the existing drive ID 7, got %d", drive.ID)
	}
	if drive.VolumeLabel != info.VolumeLabel {
		t.Errorf("expected refreshed label %q, got %q", info.VolumeLabel, drive.VolumeLabel)
	}
	if len(drive.Mounts) != 2 {
		t.Errorf("expected both client mounts, got %+v", drive.Mounts)
	}
}

func TestRegisterDrive_RetriesOnUniqueViolation(t *testing.T) {
	repo, mock, db := newTestDriveRepo(t)
	defer db.Close()

	info := usbDriveInfo()
	now := time.Now()

	// First attempt loses the insert race.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT drive_id").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO drives").
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	// Retry sees the winner's row and takes the refresh path.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT drive_id").
		WillReturnRows(sqlmock.NewRows(driveColumns).
			AddRow(7, 42, info.UniqueIdentifier, "usb", info.VolumeLabel, nil, 1, 1, now))
	mock.ExpectQuery("UPDATE drives").
		WillReturnRows(sqlmock.NewRows(driveColumns).
			AddRow(7, 42, info.UniqueIdentifier, "usb", info.VolumeLabel, nil,
				info.TotalSpace, info.AvailableSpace, now))
	mock.ExpectExec("INSERT INTO client_mounts").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT drive_id, client_id").
		WillReturnRows(sqlmock.NewRows(mountColumns).
			AddRow(7, "laptop-a", "/media/user/backup", true, now))

	drive, err := repo.Register(context.Background(), 42, "laptop-a", info)
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if drive.ID != 7 {
		t.Errorf("expected drive ID 7, got %d", drive.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRegisterDrive_NonRetryableError(t *testing.T) {
	repo, mock, db := newTestDriveRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT drive_id").
		WillReturnError(errors.New("db network error"))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 42, "laptop-a", usbDriveInfo())
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected exactly one attempt, got: %v", err)
	}
}

func TestSetAvailability(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "known mount updated", affected: 1, want: true},
		{name: "stale report ignored", affected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestDriveRepo(t)
			defer db.Close()

			mock.ExpectExec("UPDATE client_mounts").
				WithArgs(int64(42), "usb-serial-123", "laptop-a", false).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := repo.SetAvailability(context.Background(), 42, "laptop-a", "usb-serial-123", false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected updated=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestResolve_UnknownIdentifierIsNil(t *testing.T) {
	repo, mock, db := newTestDriveRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT drive_id").
		WithArgs(int64(42), "ghost").
		WillReturnError(sql.ErrNoRows)

	drive, err := repo.Resolve(context.Background(), 42, "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if drive != nil {
		t.Errorf("expected nil drive, got %+v", drive)
	}
}

func TestResolve_Success(t *testing.T) {
	repo, mock, db := newTestDriveRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT drive_id").
		WithArgs(int64(42), "usb-serial-123").
		WillReturnRows(sqlmock.NewRows(driveColumns).
			AddRow(7, 42, "usb-serial-123", "usb", "BACKUP", nil, 1, 1, now))
	mock.ExpectQuery("SELECT drive_id, client_id").
		WithArgs("{7}").
		WillReturnRows(sqlmock.NewRows(mountColumns).
			AddRow(7, "laptop-a", "/media/user/backup", true, now))

	drive, err := repo.Resolve(context.Background(), 42, "usb-serial-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if drive == nil || drive.ID != 7 {
		t.Fatalf("expected drive 7, got %+v", drive)
	}
	if len(drive.Mounts) != 1 {
		t.Errorf("expected one mount, got %+v", drive.Mounts)
	}
}

func TestListForUser_GroupsMountsByDrive(t *testing.T) {
	repo, mock, db := newTestDriveRepo(t)
	defer db.Close()

	now := time.Now()
	provider := "onedrive"

	mock.ExpectQuery("SELECT drive_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(driveColumns).
			AddRow(1, 42, "internal-uuid", "fixed", "root", nil, 1, 1, now).
			AddRow(2, 42, "acct:me@example.com", "cloud", "OneDrive", provider, 1, 1, now))
	mock.ExpectQuery("SELECT drive_id, client_id").
		WithArgs("{1,2}").
		WillReturnRows(sqlmock.NewRows(mountColumns).
			AddRow(1, "laptop-a", "/", true, now).
			AddRow(2, "laptop-a", "/home/me/OneDrive", true, now).
			AddRow(2, "laptop-b", "/Users/me/OneDrive", true, now))

	drives, err := repo.ListForUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drives) != 2 {
		t.Fatalf("expected 2 drives, got %d", len(drives))
	}
	if len(drives[0].Mounts) != 1 {
		t.Errorf("expected 1 mount on drive 1, got %d", len(drives[0].Mounts))
	}
	if len(drives[1].Mounts) != 2 {
		t.Errorf("expected 2 mounts on drive 2, got %d", len(drives[1].Mounts))
	}
	if drives[1].CloudProvider == nil || *drives[1].CloudProvider != provider {
		t.Errorf("expected cloud provider %q, got %v", provider, drives[1].CloudProvider)
	}
}

func TestListForUser_NoDrivesSkipsMountQuery(t *testing.T) {
	repo, mock, db := newTestDriveRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT drive_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(driveColumns))

	drives, err := repo.ListForUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drives) != 0 {
		t.Errorf("expected no drives, got %+v", drives)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
