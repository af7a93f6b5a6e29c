package repository

import (
	"database/sql"
	"predictions-api/model"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByEmail(email string) (*model.User, error)
	ExistsByEmail(email string) (bool, error)
	SetAccountVerified(userID int64) error
	UpdatePassword(userID int64, passwordHash string) error
}

// UserRepository implements IUserRepository over Postgres.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (user_id, first_name, last_name, username, email, password, favourite_team)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, account_verified, total_points, created_at, updated_at`
	return r.DB.QueryRow(query,
		user.UserID, user.FirstName, user.LastName, user.Username, user.Email, user.Password, user.FavouriteTeam,
	).Scan(&user.ID, &user.AccountVerified, &user.TotalPoints, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, user_id, first_name, last_name, username, email, password, account_verified,
	                 total_points, favourite_team, created_at, updated_at
	          FROM users WHERE email = $1`
	err := r.DB.QueryRow(query, email).Scan(
		&user.ID, &user.UserID, &user.FirstName, &user.LastName, &user.Username, &user.Email,
		&user.Password, &user.AccountVerified, &user.TotalPoints, &user.FavouriteTeam,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	if err := r.DB.QueryRow(query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) SetAccountVerified(userID int64) error {
	query := `UPDATE users SET account_verified = TRUE, updated_at = now() WHERE id = $1`
	_, err := r.DB.Exec(query, userID)
	return err
}

func (r *UserRepository) UpdatePassword(userID int64, passwordHash string) error {
	query := `UPDATE users SET password = $1, updated_at = now() WHERE id = $2`
	_, err := r.DB.Exec(query, passwordHash, userID)
	return err
}
