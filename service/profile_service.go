package service

import (
	"database/sql"
	"errors"
	"predictions-api/repository"
)

// ProfileService handles password management for authenticated users.
type ProfileService struct {
	userRepo repository.IUserRepository
	email    IEmailSender
}

func NewProfileService(userRepo repository.IUserRepository, email IEmailSender) *ProfileService {
	return &ProfileService{userRepo: userRepo, email: email}
}

// ResetPassword sends the reset-password email to the account owner.
func (s *ProfileService) ResetPassword(email string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	s.email.SendResetPasswordEmail(email, user.FirstName)
	return nil
}

// ChangePassword verifies the old password before storing a new hash.
func (s *ProfileService) ChangePassword(email, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	if !CheckPasswordHash(oldPassword, user.Password) {
		return ErrPasswordMismatch
	}

	newHash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, newHash); err != nil {
		return err
	}

	s.email.SendChangedPasswordEmail(email, user.FirstName)
	return nil
}
