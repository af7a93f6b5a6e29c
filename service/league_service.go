package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"predictions-api/model"
	"predictions-api/repository"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	leagueCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	leagueCodeLength   = 6
	maxCodeAttempts    = 100

	standingsCacheTTL = 10 * time.Minute
)

// LeagueService handles league creation, joining and standings queries.
// The redis client is optional; nil disables the standings cache.
type LeagueService struct {
	leagueRepo  repository.ILeagueRepository
	userRepo    repository.IUserRepository
	redisClient *redis.Client
}

func NewLeagueService(leagueRepo repository.ILeagueRepository, userRepo repository.IUserRepository, redisClient *redis.Client) *LeagueService {
	return &LeagueService{
		leagueRepo:  leagueRepo,
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

// CreateLeague creates a league with the owner as its first member. Private
// leagues get a join code that is unique among existing codes at allocation.
func (s *LeagueService) CreateLeague(email, name string, publicity model.Publicity) (*model.LeagueSummary, error) {
	owner, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	leagueCode := ""
	if publicity == model.PublicityPrivate {
		leagueCode, err = s.allocateLeagueCode()
		if err != nil {
			return nil, err
		}
	}

	league := &model.League{
		UUID:       uuid.New().String(),
		Name:       name,
		LeagueCode: leagueCode,
		Publicity:  publicity,
	}
	if err := s.leagueRepo.CreateLeague(league, owner.ID); err != nil {
		return nil, err
	}

	return &model.LeagueSummary{
		UUID:            league.UUID,
		Name:            league.Name,
		Publicity:       league.Publicity,
		NumberOfMembers: 1,
	}, nil
}

// GetLeagueStandings returns member first names mapped to point totals,
// cache-aside through redis.
func (s *LeagueService) GetLeagueStandings(leagueUUID string) (*model.LeagueStanding, error) {
	ctx := context.Background()
	cacheKey := standingsCacheKey(leagueUUID)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var standing model.LeagueStanding
			if err := json.Unmarshal([]byte(cached), &standing); err == nil {
				return &standing, nil
			}
		}
	}

	league, err := s.leagueRepo.GetByUUID(leagueUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}

	members, err := s.leagueRepo.GetMembersWithPoints(league.ID)
	if err != nil {
		return nil, err
	}

	usersAndPoints := make(map[string]int, len(members))
	for _, member := range members {
		usersAndPoints[member.FirstName] = member.TotalPoints
	}

	standing := &model.LeagueStanding{
		LeagueName:     league.Name,
		UsersAndPoints: usersAndPoints,
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(standing); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, standingsCacheTTL)
		}
	}

	return standing, nil
}

// GetLeaguesForUser projects every league the user belongs to.
func (s *LeagueService) GetLeaguesForUser(email string) ([]model.LeagueSummary, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.leagueRepo.GetLeaguesForUser(user.ID)
}

// JoinPublicLeague adds the user to a public league found by UUID.
func (s *LeagueService) JoinPublicLeague(email, leagueUUID string) (string, error) {
	league, err := s.leagueRepo.GetByUUID(leagueUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrLeagueNotFound
		}
		return "", err
	}
	if league.Publicity != model.PublicityPublic {
		return "", ErrPublicityMismatch
	}
	return s.join(email, league)
}

// JoinPrivateLeague adds the user to a private league found by join code.
// A missing league is reported as an incorrect code.
func (s *LeagueService) JoinPrivateLeague(email, code string) (string, error) {
	league, err := s.leagueRepo.GetByCode(code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrIncorrectLeagueCode
		}
		return "", err
	}
	if league.Publicity != model.PublicityPrivate {
		return "", ErrPublicityMismatch
	}
	return s.join(email, league)
}

func (s *LeagueService) join(email string, league *model.League) (string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	isMember, err := s.leagueRepo.IsMember(league.ID, user.ID)
	if err != nil {
		return "", err
	}
	if isMember {
		return "", ErrLeagueAlreadyJoined
	}

	if err := s.leagueRepo.AddMember(league.ID, user.ID); err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			return "", ErrLeagueAlreadyJoined
		}
		return "", err
	}

	s.invalidateStandings(league.UUID)
	return league.Name, nil
}

// allocateLeagueCode draws random codes until one is free of the existing
// set, capped at maxCodeAttempts. The 62^6 keyspace makes more than a
// handful of collisions effectively impossible.
func (s *LeagueService) allocateLeagueCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateLeagueCode()
		if err != nil {
			return "", err
		}
		exists, err := s.leagueRepo.ExistsByCode(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrLeagueCodeExhausted
}

func generateLeagueCode() (string, error) {
	code := make([]byte, leagueCodeLength)
	alphabetLen := big.NewInt(int64(len(leagueCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		code[i] = leagueCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

func (s *LeagueService) invalidateStandings(leagueUUID string) {
	if s.redisClient != nil {
		s.redisClient.Del(context.Background(), standingsCacheKey(leagueUUID))
	}
}

func standingsCacheKey(leagueUUID string) string {
	return fmt.Sprintf("standings:%s", leagueUUID)
}
