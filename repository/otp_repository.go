package repository

import (
	"database/sql"
	"predictions-api/logger"
	"predictions-api/model"
)

// IOtpRepository defines the contract for one-time-code database operations.
// Each user holds at most one active code; issuing a new one replaces it.
type IOtpRepository interface {
	Upsert(otp *model.Otp) error
	GetByUserID(userID int64) (*model.Otp, error)
	DeleteByUserID(userID int64) error
}

// OtpRepository implements IOtpRepository.
type OtpRepository struct {
	DB *sql.DB
}

func NewOtpRepository(db *sql.DB) *OtpRepository {
	return &OtpRepository{DB: db}
}

func (r *OtpRepository) Upsert(otp *model.Otp) error {
	log := logger.Log.WithField("user_id", otp.UserID)

	query := `INSERT INTO otps (user_id, value, expires_at) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	          RETURNING id`
	err := r.DB.QueryRow(query, otp.UserID, otp.Value, otp.ExpiresAt).Scan(&otp.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute upsert otp query")
		return err
	}
	return nil
}

func (r *OtpRepository) GetByUserID(userID int64) (*model.Otp, error) {
	otp := &model.Otp{}
	query := `SELECT id, user_id, value, expires_at FROM otps WHERE user_id = $1`
	err := r.DB.QueryRow(query, userID).Scan(&otp.ID, &otp.UserID, &otp.Value, &otp.ExpiresAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithField("user_id", userID).WithError(err).Error("Failed to execute get otp query")
		}
		return nil, err // Return sql.ErrNoRows if not found
	}
	return otp, nil
}

func (r *OtpRepository) DeleteByUserID(userID int64) error {
	query := `DELETE FROM otps WHERE user_id = $1`
	_, err := r.DB.Exec(query, userID)
	if err != nil {
		logger.Log.WithField("user_id", userID).WithError(err).Error("Failed to execute delete otp query")
		return err
	}
	return nil
}
