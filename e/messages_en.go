package e

// This defines reusable error messages

const (
	MsgUnknownInternalServerError = "Unknown Internal Server Error"

	// migrations
	MsgMigrationEmptyUp           = "Migration has no up SQL"
	MsgMigrationAlreadyApplied    = "Migration version has already been applied"
	MsgMigrationNoDown            = "Migration has no down SQL"
	MsgMigrationVersionNotFound   = "Migration version has not been applied"
	MsgMigrationSourceFileMissing = "Migration file for applied version does not exist"
	MsgMigrationLockUnavailable   = "Migration lock is held by another session"
	MsgMigrationNameInvalid       = "Invalid migration name"
	MsgMigrationDirInvalid        = "Invalid migrations directory"
)
