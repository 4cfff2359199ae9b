package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrInvalidItem is reported for a story without a usable ID. Batch
	// operations skip such items instead of failing.
	ErrInvalidItem = errors.New("invalid story: empty id")

	// ErrStore wraps any persistence failure of the local replica.
	ErrStore = errors.New("local store failure")

	// ErrStoryNotFound is returned when a story lookup matches no row.
	ErrStoryNotFound = errors.New("story was not found")

	// ErrEmailAlreadyExists is returned when registering an email that is
	// already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a user lookup matches no row.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNotStoryOwner is returned when deleting a story of another user.
	ErrNotStoryOwner = errors.New("story belongs to another user")

	// ErrMediaNotFound is returned when a requested photo does not exist.
	ErrMediaNotFound = errors.New("media was not found")

	// ErrInvalidMediaName is returned for media names that are not a plain
	// file name.
	ErrInvalidMediaName = errors.New("invalid media name")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan story row")
)
