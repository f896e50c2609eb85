package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"focusband/companion/internal/model"
)

// DeviceRepository is the registry of paired sender devices.
type DeviceRepository struct {
	db *sql.DB
}

func NewDeviceRepository(db *sql.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) Create(ctx context.Context, device *model.Device) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO devices (id, name, secret_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		device.ID,
		device.Name,
		device.SecretHash,
		device.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, id string) (*model.Device, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, name, secret_hash, created_at
		 FROM devices
		 WHERE id = ?`,
		id,
	)

	var device model.Device
	var createdAt string
	if err := row.Scan(&device.ID, &device.Name, &device.SecretHash, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get device by id: %w", err)
	}

	parsed, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse device created_at: %w", err)
	}
	device.CreatedAt = parsed
	return &device, nil
}
