package service

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"predictions-api/logger"
	"predictions-api/model"
	"predictions-api/repository"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const otpTTL = 15 * time.Minute

// AuthService handles registration, login, account verification and
// refresh-token exchange.
type AuthService struct {
	userRepo repository.IUserRepository
	otpRepo  repository.IOtpRepository
	tokens   *TokenService
	email    IEmailSender
}

func NewAuthService(userRepo repository.IUserRepository, otpRepo repository.IOtpRepository, tokens *TokenService, email IEmailSender) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		tokens:   tokens,
		email:    email,
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a new unverified account and sends the welcome email.
func (s *AuthService) Register(req *model.RegistrationRequest) (*model.RegistrationResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:        uuid.New().String(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Username:      req.Username,
		Email:         req.Email,
		Password:      hashedPassword,
		FavouriteTeam: req.FavouriteTeam,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	s.email.SendWelcomeEmail(user.Email, user.FirstName)

	return &model.RegistrationResponse{Name: user.FirstName, Email: user.Email}, nil
}

// Login checks the password against the stored hash and requires a verified
// account. A missing account and a wrong password are indistinguishable.
func (s *AuthService) Login(email, password string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBadCredentials
		}
		return err
	}

	if !CheckPasswordHash(password, user.Password) {
		return ErrBadCredentials
	}
	if !user.AccountVerified {
		return ErrAccountNotVerified
	}
	return nil
}

// SendVerifyOtp issues a fresh 6-digit code, replacing any previous one.
func (s *AuthService) SendVerifyOtp(email string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	otpValue, err := generateOtp()
	if err != nil {
		return err
	}

	otp := &model.Otp{
		UserID:    user.ID,
		Value:     otpValue,
		ExpiresAt: time.Now().Add(otpTTL).UnixMilli(),
	}
	if err := s.otpRepo.Upsert(otp); err != nil {
		return err
	}

	s.email.SendVerifyOtpEmail(email, user.FirstName, otpValue)
	return nil
}

// VerifyOtp marks the account verified when the submitted code matches and
// has not expired. The code is consumed on success.
func (s *AuthService) VerifyOtp(email, otpValue string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	otp, err := s.otpRepo.GetByUserID(user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOtpNotFound
		}
		return err
	}

	if time.Now().UnixMilli() > otp.ExpiresAt {
		return ErrOtpExpired
	}
	if otpValue != otp.Value {
		return ErrOtpIncorrect
	}

	if err := s.userRepo.SetAccountVerified(user.ID); err != nil {
		return err
	}
	// The account is verified at this point and the code is spent either way,
	// so a failed cleanup is logged rather than surfaced.
	if err := s.otpRepo.DeleteByUserID(user.ID); err != nil {
		logger.Log.WithField("user_id", user.ID).WithError(err).Warn("Failed to delete consumed OTP")
	}

	s.email.SendAccountVerifiedEmail(email, user.FirstName)
	return nil
}

// Refresh validates a refresh token and returns its subject. Account status
// is not re-checked here; a refreshed session lasts until the refresh token
// expires regardless of later account changes.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.Parse(refreshToken)
	if err != nil {
		return "", ErrTokenInvalid
	}
	if claims.Class != model.TokenClassRefresh {
		return "", ErrTokenInvalid
	}
	if s.tokens.IsExpired(claims) {
		return "", ErrTokenExpired
	}
	return claims.Subject, nil
}

func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
