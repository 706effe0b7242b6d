// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package models

import "time"

// DriveType classifies a storage volume by how it is attached.
type DriveType string

const (
	// DriveTypeFixed is an internal, permanently attached disk.
	DriveTypeFixed DriveType = "fixed"

	// DriveTypeUSB is a removable volume that may appear on different
	// clients over time.
	DriveTypeUSB DriveType = "usb"

	// DriveTypeCloud is a cloud-synced volume (OneDrive, Dropbox, ...).
	// Cloud drives are treated as reachable from every client once
	// configured, regardless of per-client mount availability.
	DriveTypeCloud DriveType = "cloud"
)

// Valid reports whether t is one of the known drive types.
func (t DriveType) Valid() bool {
	switch t {
	case DriveTypeFixed, DriveTypeUSB, DriveTypeCloud:
		return true
	}
	return false
}

// Drive is the canonical server-side record of one physical or cloud
// storage volume.
//
// The only cross-client identity key is UniqueIdentifier (hardware serial,
// partition UUID, or cloud account key). The same volume reported by several
// clients under different local mount paths must always resolve to a single
// Drive row; per-client locations live in the owned ClientMount set.
type Drive struct {
	// ID is the server-assigned, stable identifier.
	ID int64 `json:"id"`

	// UserID scopes the drive to its owner. Drives are never shared
	// between users.
	UserID int64 `json:"user_id"`

	// UniqueIdentifier is the hardware serial / partition UUID / cloud
	// account key. It is the only value that may be compared across
	// clients.
	UniqueIdentifier string `json:"unique_identifier"`

	// DriveType classifies the volume (fixed, usb, cloud).
	DriveType DriveType `json:"drive_type"`

	// VolumeLabel is the human-readable label reported by the client.
	VolumeLabel string `json:"volume_label"`

	// CloudProvider names the hosting service for cloud drives
	// (e.g. "onedrive"). Nil for physical volumes.
	CloudProvider *string `json:"cloud_provider,omitempty"`

	// TotalSpace and AvailableSpace are byte counts from the most recent
	// client report.
	TotalSpace     int64 `json:"total_space"`
	AvailableSpace int64 `json:"available_space"`

	// LastSeenAt is updated on every client report about this drive.
	LastSeenAt time.Time `json:"last_seen_at"`

	// Mounts is the set of per-client mount records owned by this drive.
	// Mounts cannot outlive their drive.
	Mounts []ClientMount `json:"mounts,omitempty"`
}

// ClientMount records where and whether a Drive is currently reachable on
// one specific client device.
//
// MountPoint is meaningful only within its client's namespace. Comparing
// mount points (or any path) across clients is always a bug; only the
// drive's UniqueIdentifier carries cross-client meaning.
type ClientMount struct {
	DriveID  int64  `json:"drive_id"`
	ClientID string `json:"client_id"`

	// MountPoint is the local absolute path where the drive is mounted
	// on this client.
	MountPoint ClientPath `json:"mount_point"`

	// IsAvailable is the client's last reported reachability state.
	IsAvailable bool `json:"is_available"`

	LastSeenAt time.Time `json:"last_seen_at"`
}

// DriveInfo is the client-reported description of a locally detected
// volume, used when registering or refreshing a drive.
type DriveInfo struct {
	UniqueIdentifier string     `json:"unique_identifier"`
	DriveType        DriveType  `json:"drive_type"`
	VolumeLabel      string     `json:"volume_label"`
	CloudProvider    *string    `json:"cloud_provider,omitempty"`
	TotalSpace       int64      `json:"total_space"`
	AvailableSpace   int64      `json:"available_space"`
	MountPoint       ClientPath `json:"mount_point"`
	IsAvailable      bool       `json:"is_available"`
}
