package store

const (
	findDriveForUpdate = `SELECT drive_id, user_id, unique_identifier, drive_type, volume_label, cloud_provider,
		total_space, available_space, last_seen_at
	FROM drives
	WHERE user_id = $1 AND unique_identifier = $2
	FOR UPDATE;`

	insertDrive = `INSERT INTO drives (user_id, unique_identifier, drive_type, volume_label, cloud_provider,
		total_space, available_space, last_seen_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	RETURNING drive_id, user_id, unique_identifier, drive_type, volume_label, cloud_provider,
		total_space, available_space, last_seen_at;`

	refreshDrive = `UPDATE drives
	SET drive_type = $2, volume_label = $3, cloud_provider = $4,
		total_space = $5, available_space = $6, last_seen_at = NOW()
	WHERE drive_id = $1
	RETURNING drive_id, user_id, unique_identifier, drive_type, volume_label, cloud_provider,
		total_space, available_space, last_seen_at;`

	upsertClientMount = `INSERT INTO client_mounts (drive_id, client_id, mount_point, is_available, last_seen_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (drive_id, client_id) DO UPDATE
	SET mount_point = EXCLUDED.mount_point,
		is_available = EXCLUDED.is_available,
		last_seen_at = NOW();`

	setMountAvailability = `UPDATE client_mounts cm
	SET is_available = $4, last_seen_at = NOW()
	FROM drives d
	WHERE cm.drive_id = d.drive_id
		AND d.user_id = $1
		AND d.unique_identifier = $2
		AND cm.client_id = $3;`

	findDriveByIdentifier = `SELECT drive_id, user_id, unique_identifier, drive_type, volume_label, cloud_provider,
		total_space, available_space, last_seen_at
	FROM drives
	WHERE user_id = $1 AND unique_identifier = $2;`

	listDrivesForUser = `SELECT drive_id, user_id, unique_identifier, drive_type, volume_label, cloud_provider,
		total_space, available_space, last_seen_at
	FROM drives
	WHERE user_id = $1
	ORDER BY drive_id;`

	listMountsForDrives = `SELECT drive_id, client_id, mount_point, is_available, last_seen_at
	FROM client_mounts
	WHERE drive_id = ANY($1)
	ORDER BY drive_id, client_id;`

	listAvailableMountsForClient = `SELECT cm.drive_id, cm.client_id, cm.mount_point, cm.is_available, cm.last_seen_at
	FROM client_mounts cm
	JOIN drives d ON d.drive_id = cm.drive_id
	WHERE d.user_id = $1 AND cm.client_id = $2 AND cm.is_available;`

	findDestinationForUpdate = `SELECT destination_id, user_id, path, category, color, drive_id,
		usage_count, last_used_at, created_at, is_active
	FROM destinations
	WHERE user_id = $1 AND path = $2
	ORDER BY is_active DESC, destination_id DESC
	LIMIT 1
	FOR UPDATE;`

	listActiveColors = `SELECT color
	FROM destinations
	WHERE user_id = $1 AND is_active AND color <> ''
	ORDER BY created_at, destination_id;`

	insertDestination = `INSERT INTO destinations (user_id, path, category, color, drive_id, usage_count, last_used_at, created_at, is_active)
	VALUES ($1, $2, $3, $4, $5, 1, NOW(), NOW(), TRUE)
	RETURNING destination_id, user_id, path, category, color, drive_id,
		usage_count, last_used_at, created_at, is_active;`

	reactivateDestination = `UPDATE destinations
	SET is_active = TRUE, category = $2, usage_count = usage_count + 1, last_used_at = NOW()
	WHERE destination_id = $1
	RETURNING destination_id, user_id, path, category, color, drive_id,
		usage_count, last_used_at, created_at, is_active;`

	bumpDestinationUsage = `UPDATE destinations
	SET usage_count = usage_count + 1, last_used_at = NOW()
	WHERE destination_id = $1
	RETURNING destination_id, user_id, path, category, color, drive_id,
		usage_count, last_used_at, created_at, is_active;`

	deactivateDestination = `UPDATE destinations
	SET is_active = FALSE
	WHERE destination_id = $1 AND user_id = $2 AND is_active
	RETURNING path;`

	deactivateDescendants = `UPDATE destinations
	SET is_active = FALSE
	WHERE user_id = $1 AND is_active AND starts_with(path, $2 || '/');`
)
