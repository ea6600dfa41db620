package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"server-match/internal/interfaces"
	"server-match/internal/schemas"
)

const memberProjectionQuery = `SELECT u.user_id, u.username, u.known_as, u.city, u.country, u.introduction, u.looking_for, u.interests, u.created_at, u.last_active, COALESCE(p.url, '') ` +
	`FROM match_schema.users u LEFT JOIN match_schema.photos p ON p.user_id = u.user_id AND p.is_main = TRUE`

const userColumns = `user_id, username, known_as, password_hash, password_salt, city, country, introduction, looking_for, interests, created_at, last_active`

// UserRepository is the persistence gateway for the user aggregate: users,
// their photos and their likes. Lookups return either the full identity
// record (for the account flow) or a credential-free member projection.
//
// A UserRepository is a per-request unit of work. Mutations stage in memory;
// SaveChanges commits everything staged in one transaction and reports
// whether any row was affected.
type UserRepository struct {
	pool    interfaces.PgxPoolIface
	changes changeSet
}

var _ Repository[schemas.User, schemas.MemberProjection] = (*UserRepository)(nil)

// NewUserRepository creates a unit-of-work repository on top of the pool.
func NewUserRepository(pool interfaces.PgxPoolIface) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetAll returns every user as a member projection, joined with the main
// photo. The optional sort key orders by creation or last activity;
// otherwise the ordering is whatever the store returns.
func (r *UserRepository) GetAll(ctx context.Context, sort string) ([]schemas.MemberProjection, error) {
	query := memberProjectionQuery
	switch sort {
	case "created":
		query += " ORDER BY u.created_at DESC"
	case "lastActive":
		query += " ORDER BY u.last_active DESC"
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]schemas.MemberProjection, 0)
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

// GetByID returns the full identity record or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*schemas.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM match_schema.users WHERE user_id = $1`, id)
	return scanUser(row)
}

// GetByUsername returns the full identity record matched case-insensitively,
// or ErrNotFound.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*schemas.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM match_schema.users WHERE LOWER(username) = LOWER($1)`, username)
	return scanUser(row)
}

// GetMemberByUsername returns the projection for one user, or ErrNotFound.
func (r *UserRepository) GetMemberByUsername(ctx context.Context, username string) (*schemas.MemberProjection, error) {
	row := r.pool.QueryRow(ctx, memberProjectionQuery+` WHERE LOWER(u.username) = LOWER($1)`, username)
	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetMainPhotoURL returns the user's main photo URL, or "" when none exists.
func (r *UserRepository) GetMainPhotoURL(ctx context.Context, userID int64) (string, error) {
	var url string
	err := r.pool.QueryRow(ctx, `SELECT url FROM match_schema.photos WHERE user_id = $1 AND is_main = TRUE`, userID).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return url, nil
}

// GetPhoto returns one photo record or ErrNotFound.
func (r *UserRepository) GetPhoto(ctx context.Context, photoID int64) (*schemas.Photo, error) {
	photo := &schemas.Photo{}
	err := r.pool.QueryRow(ctx, `SELECT photo_id, user_id, url, public_id, is_main FROM match_schema.photos WHERE photo_id = $1`, photoID).
		Scan(&photo.ID, &photo.UserID, &photo.URL, &photo.PublicID, &photo.IsMain)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return photo, nil
}

// CountPhotos returns how many photos the user owns.
func (r *UserRepository) CountPhotos(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM match_schema.photos WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// GetLikedIDs returns the ids of every user the given user has liked.
func (r *UserRepository) GetLikedIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT target_user_id FROM match_schema.likes WHERE source_user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create stages the insert of a new user. The generated id is written back
// into u.ID when SaveChanges commits.
func (r *UserRepository) Create(u *schemas.User) {
	r.changes.stageReturning(
		`INSERT INTO match_schema.users (username, known_as, password_hash, password_salt, city, country, introduction, looking_for, interests, created_at, last_active) `+
			`VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING user_id`,
		[]interface{}{&u.ID},
		u.Username, u.KnownAs, u.PasswordHash, u.PasswordSalt, u.City, u.Country,
		u.Introduction, u.LookingFor, u.Interests, u.CreatedAt, u.LastActive,
	)
}

// StageProfileUpdate stages the mutable profile fields of one user.
func (r *UserRepository) StageProfileUpdate(userID int64, req *schemas.MemberUpdateRequest) {
	r.changes.stage(
		`UPDATE match_schema.users SET introduction = $1, looking_for = $2, interests = $3, city = $4, country = $5 WHERE user_id = $6`,
		req.Introduction, req.LookingFor, req.Interests, req.City, req.Country, userID,
	)
}

// StageLastActive stages the last-active touch performed on login.
func (r *UserRepository) StageLastActive(userID int64, t time.Time) {
	r.changes.stage(`UPDATE match_schema.users SET last_active = $1 WHERE user_id = $2`, t, userID)
}

// StagePhoto stages the insert of a photo. The generated id is written back
// into photo.ID when SaveChanges commits.
func (r *UserRepository) StagePhoto(photo *schemas.Photo) {
	r.changes.stageReturning(
		`INSERT INTO match_schema.photos (user_id, url, public_id, is_main) VALUES ($1, $2, $3, $4) RETURNING photo_id`,
		[]interface{}{&photo.ID},
		photo.UserID, photo.URL, photo.PublicID, photo.IsMain,
	)
}

// StageSetMainPhoto stages the flip-to-main discipline for one owner:
// unset every main flag, then set exactly one. Both statements live in the
// same change set so a single commit covers them.
func (r *UserRepository) StageSetMainPhoto(userID, photoID int64) {
	r.changes.stage(`UPDATE match_schema.photos SET is_main = FALSE WHERE user_id = $1 AND is_main = TRUE`, userID)
	r.changes.stage(`UPDATE match_schema.photos SET is_main = TRUE WHERE photo_id = $1 AND user_id = $2`, photoID, userID)
}

// StageDeletePhoto stages the removal of one photo row.
func (r *UserRepository) StageDeletePhoto(photoID int64) {
	r.changes.stage(`DELETE FROM match_schema.photos WHERE photo_id = $1`, photoID)
}

// StageLike stages a like edge. The insert is idempotent; SaveChanges
// reports false when the like already existed.
func (r *UserRepository) StageLike(sourceID, targetID int64) {
	r.changes.stage(
		`INSERT INTO match_schema.likes (source_user_id, target_user_id, created_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		sourceID, targetID, time.Now(),
	)
}

// SaveChanges commits every staged mutation in one transaction and reports
// whether at least one row was affected. The change set is cleared on
// success and kept on failure so the caller may retry.
func (r *UserRepository) SaveChanges(ctx context.Context) (bool, error) {
	if r.changes.empty() {
		return false, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}

	affected, err := r.changes.flush(ctx, tx)
	if err != nil {
		_ = tx.Rollback(ctx)
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	r.changes.clear()
	return affected > 0, nil
}

func scanUser(row pgx.Row) (*schemas.User, error) {
	u := &schemas.User{}
	err := row.Scan(&u.ID, &u.Username, &u.KnownAs, &u.PasswordHash, &u.PasswordSalt,
		&u.City, &u.Country, &u.Introduction, &u.LookingFor, &u.Interests, &u.CreatedAt, &u.LastActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanMember(row pgx.Row) (schemas.MemberProjection, error) {
	var m schemas.MemberProjection
	err := row.Scan(&m.ID, &m.Username, &m.KnownAs, &m.City, &m.Country,
		&m.Introduction, &m.LookingFor, &m.Interests, &m.CreatedAt, &m.LastActive, &m.PhotoURL)
	return m, err
}
