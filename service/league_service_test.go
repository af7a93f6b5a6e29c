package service

import (
	"database/sql"
	"predictions-api/model"
	"predictions-api/repository"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLeagueRepo struct{ mock.Mock }

func (m *mockLeagueRepo) CreateLeague(league *model.League, ownerID int64) error {
	args := m.Called(league, ownerID)
	return args.Error(0)
}

func (m *mockLeagueRepo) GetByUUID(uuid string) (*model.League, error) {
	args := m.Called(uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.League), args.Error(1)
}

func (m *mockLeagueRepo) GetByCode(code string) (*model.League, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.League), args.Error(1)
}

func (m *mockLeagueRepo) ExistsByCode(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *mockLeagueRepo) IsMember(leagueID, userID int64) (bool, error) {
	args := m.Called(leagueID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLeagueRepo) AddMember(leagueID, userID int64) error {
	args := m.Called(leagueID, userID)
	return args.Error(0)
}

func (m *mockLeagueRepo) GetMembersWithPoints(leagueID int64) ([]model.MemberPoints, error) {
	args := m.Called(leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MemberPoints), args.Error(1)
}

func (m *mockLeagueRepo) GetLeaguesForUser(userID int64) ([]model.LeagueSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeagueSummary), args.Error(1)
}

var leagueCodePattern = regexp.MustCompile(`^[0-9a-zA-Z]{6}$`)

func TestLeagueService_CreateLeague(t *testing.T) {
	owner := &model.User{ID: 1, Email: "alice@example.com", FirstName: "Alice"}

	t.Run("private league gets a fresh six character code", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		leagueRepo := new(mockLeagueRepo)
		userRepo.On("GetUserByEmail", "alice@example.com").Return(owner, nil).Once()
		leagueRepo.On("ExistsByCode", mock.AnythingOfType("string")).Return(false, nil)
		leagueRepo.On("CreateLeague", mock.MatchedBy(func(l *model.League) bool {
			return leagueCodePattern.MatchString(l.LeagueCode) && l.UUID != "" && l.Publicity == model.PublicityPrivate
		}), int64(1)).Return(nil).Once()

		leagueService := NewLeagueService(leagueRepo, userRepo, nil)
		summary, err := leagueService.CreateLeague("alice@example.com", "Office League", model.PublicityPrivate)

		assert.NoError(t, err)
		assert.Equal(t, "Office League", summary.Name)
		assert.Equal(t, model.PublicityPrivate, summary.Publicity)
		assert.Equal(t, 1, summary.NumberOfMembers)
		leagueRepo.AssertExpectations(t)
	})

	t.Run("taken code is redrawn", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		leagueRepo := new(mockLeagueRepo)
		userRepo.On("GetUserByEmail", "alice@example.com").Return(owner, nil).Once()
		leagueRepo.On("ExistsByCode", mock.AnythingOfType("string")).Return(true, nil).Once()
		leagueRepo.On("ExistsByCode", mock.AnythingOfType("string")).Return(false, nil).Once()
		leagueRepo.On("CreateLeague", mock.Anything, int64(1)).Return(nil).Once()

		leagueService := NewLeagueService(leagueRepo, userRepo, nil)
		_, err := leagueService.CreateLeague("alice@example.com", "Office League", model.PublicityPrivate)

		assert.NoError(t, err)
		leagueRepo.AssertNumberOfCalls(t, "ExistsByCode", 2)
	})

	t.Run("code allocation gives up after the retry cap", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		leagueRepo := new(mockLeagueRepo)
		userRepo.On("GetUserByEmail", "alice@example.com").Return(owner, nil).Once()
		leagueRepo.On("ExistsByCode", mock.AnythingOfType("string")).Return(true, nil)

		leagueService := NewLeagueService(leagueRepo, userRepo, nil)
		_, err := leagueService.CreateLeague("alice@example.com", "Office League", model.PublicityPrivate)

		assert.ErrorIs(t, err, ErrLeagueCodeExhausted)
		leagueRepo.AssertNumberOfCalls(t, "ExistsByCode", 100)
		leagueRepo.AssertNotCalled(t, "CreateLeague")
	})

	t.Run("successive private leagues get distinct codes", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		leagueRepo := new(mockLeagueRepo)
		userRepo.On("GetUserByEmail", "alice@example.com").Return(owner, nil)
		leagueRepo.On("ExistsByCode", mock.AnythingOfType("string")).Return(false, nil)

		seen := make(map[string]bool)
		leagueRepo.On("CreateLeague", mock.Anything, int64(1)).Run(func(args mock.Arguments) {
			code := args.Get(0).(*model.League).LeagueCode
			assert.False(t, seen[code], "league code %q allocated twice", code)
			seen[code] = true
		}).Return(nil)

		leagueService := NewLeagueService(leagueRepo, userRepo, nil)
		for i := 0; i < 10; i++ {
			_, err := leagueService.CreateLeague("alice@example.com", "League", model.PublicityPrivate)
			assert.NoError(t, err)
		}
		assert.Len(t, seen, 10)
	})

	t.Run("public league has no code", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		leagueRepo := new(mockLeagueRepo)
		userRepo.On("GetUserByEmail", "alice@example.com").Return(owner, nil).Once()
		leagueRepo.On("CreateLeague", mock.MatchedBy(func(l *model.League) bool {
			return l.LeagueCode == "" && l.Publicity == model.PublicityPublic
		}), int64(1)).Return(nil).Once()

		leagueService := NewLeagueService(leagueRepo, userRepo, nil)
		_, err := leagueService.CreateLeague("alice@example.com", "Open League", model.PublicityPublic)

		assert.NoError(t, err)
		leagueRepo.AssertNotCalled(t, "ExistsByCode")
	})

	t.Run("unknown owner", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		userRepo.On("GetUserByEmail", "nobody@example.com").Return(nil, sql.ErrNoRows).Once()

		leagueService := NewLeagueService(new(mockLeagueRepo), userRepo, nil)
		_, err := leagueService.CreateLeague("nobody@example.com", "League", model.PublicityPublic)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestLeagueService_JoinPublicLeague(t *testing.T) {
	member := &model.User{ID: 2, Email: "bob@example.com"}
	publicLeague := &model.League{ID: 10, UUID: "league-uuid", Name: "Open League", Publicity: model.PublicityPublic}

	t.Run("success", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		leagueRepo := new(mockLeagueRepo)
		leagueRepo.On("GetByUUID", "league-uuid").Return(publicLeague, nil).Once()
		userRepo.On("GetUserByEmail", "bob@example.com").Return(member, nil).Once()
		leagueRepo.On("IsMember", int64(10), int64(2)).Return(false, nil).Once()
		leagueRepo.On("AddMember", int64(10), int64(2)).Return(nil).Once()

		leagueService := NewLeagueService(leagueRepo, userRepo, nil)
		name, err := leagueService.JoinPublicLeague("bob@example.com", "league-uuid")

		assert.NoError(t, err)
		assert.Equal(t, "Open League", name)
		leagueRepo.AssertExpectations(t)
	})

	t.Run("already a member", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		leagueRepo := new(mockLeagueRepo)
		leagueRepo.On("GetByUUID", "league-uuid").Return(publicLeague, nil).Once()
		userRepo.On("GetUserByEmail", "bob@example.com").Return(member, nil).Once()
		leagueRepo.On("IsMember", int64(10), int64(2)).Return(true, nil).Once()

		leagueService := NewLeagueService(leagueRepo, userRepo, nil)
		_, err := leagueService.JoinPublicLeague("bob@example.com", "league-uuid")

		assert.ErrorIs(t, err, ErrLeagueAlreadyJoined)
		leagueRepo.AssertNotCalled(t, "AddMember")
	})

	t.Run("racing duplicate insert maps to already joined", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		leagueRepo := new(mockLeagueRepo)
		leagueRepo.On("GetByUUID", "league-uuid").Return(publicLeague, nil).Once()
		userRepo.On("GetUserByEmail", "bob@example.com").Return(member, nil).Once()
		leagueRepo.On("IsMember", int64(10), int64(2)).Return(false, nil).Once()
		leagueRepo.On("AddMember", int64(10), int64(2)).Return(repository.ErrDuplicateMember).Once()

		leagueService := NewLeagueService(leagueRepo, userRepo, nil)
		_, err := leagueService.JoinPublicLeague("bob@example.com", "league-uuid")

		assert.ErrorIs(t, err, ErrLeagueAlreadyJoined)
	})

	t.Run("private league cannot be joined by uuid", func(t *testing.T) {
		privateLeague := &model.League{ID: 11, UUID: "private-uuid", Publicity: model.PublicityPrivate}
		leagueRepo := new(mockLeagueRepo)
		leagueRepo.On("GetByUUID", "private-uuid").Return(privateLeague, nil).Once()

		leagueService := NewLeagueService(leagueRepo, new(mockUserRepo), nil)
		_, err := leagueService.JoinPublicLeague("bob@example.com", "private-uuid")

		assert.ErrorIs(t, err, ErrPublicityMismatch)
	})

	t.Run("not found", func(t *testing.T) {
		leagueRepo := new(mockLeagueRepo)
		leagueRepo.On("GetByUUID", "missing").Return(nil, sql.ErrNoRows).Once()

		leagueService := NewLeagueService(leagueRepo, new(mockUserRepo), nil)
		_, err := leagueService.JoinPublicLeague("bob@example.com", "missing")

		assert.ErrorIs(t, err, ErrLeagueNotFound)
	})
}

func TestLeagueService_JoinPrivateLeague(t *testing.T) {
	member := &model.User{ID: 2, Email: "bob@example.com"}
	privateLeague := &model.League{ID: 11, UUID: "private-uuid", Name: "Office League", LeagueCode: "aB3xY9", Publicity: model.PublicityPrivate}

	t.Run("success", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		leagueRepo := new(mockLeagueRepo)
		leagueRepo.On("GetByCode", "aB3xY9").Return(privateLeague, nil).Once()
		userRepo.On("GetUserByEmail", "bob@example.com").Return(member, nil).Once()
		leagueRepo.On("IsMember", int64(11), int64(2)).Return(false, nil).Once()
		leagueRepo.On("AddMember", int64(11), int64(2)).Return(nil).Once()

		leagueService := NewLeagueService(leagueRepo, userRepo, nil)
		name, err := leagueService.JoinPrivateLeague("bob@example.com", "aB3xY9")

		assert.NoError(t, err)
		assert.Equal(t, "Office League", name)
	})

	t.Run("unknown code", func(t *testing.T) {
		leagueRepo := new(mockLeagueRepo)
		leagueRepo.On("GetByCode", "zzzzzz").Return(nil, sql.ErrNoRows).Once()

		leagueService := NewLeagueService(leagueRepo, new(mockUserRepo), nil)
		_, err := leagueService.JoinPrivateLeague("bob@example.com", "zzzzzz")

		assert.ErrorIs(t, err, ErrIncorrectLeagueCode)
	})

	t.Run("public league found by code is a mismatch", func(t *testing.T) {
		stale := &model.League{ID: 12, LeagueCode: "aB3xY9", Publicity: model.PublicityPublic}
		leagueRepo := new(mockLeagueRepo)
		leagueRepo.On("GetByCode", "aB3xY9").Return(stale, nil).Once()

		leagueService := NewLeagueService(leagueRepo, new(mockUserRepo), nil)
		_, err := leagueService.JoinPrivateLeague("bob@example.com", "aB3xY9")

		assert.ErrorIs(t, err, ErrPublicityMismatch)
	})
}

func TestLeagueService_GetLeagueStandings(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		league := &model.League{ID: 10, UUID: "league-uuid", Name: "Open League", Publicity: model.PublicityPublic}
		leagueRepo := new(mockLeagueRepo)
		leagueRepo.On("GetByUUID", "league-uuid").Return(league, nil).Once()
		leagueRepo.On("GetMembersWithPoints", int64(10)).Return([]model.MemberPoints{
			{FirstName: "Alice", TotalPoints: 12},
			{FirstName: "Bob", TotalPoints: 0},
		}, nil).Once()

		leagueService := NewLeagueService(leagueRepo, new(mockUserRepo), nil)
		standing, err := leagueService.GetLeagueStandings("league-uuid")

		assert.NoError(t, err)
		assert.Equal(t, "Open League", standing.LeagueName)
		assert.Equal(t, map[string]int{"Alice": 12, "Bob": 0}, standing.UsersAndPoints)
	})

	t.Run("not found", func(t *testing.T) {
		leagueRepo := new(mockLeagueRepo)
		leagueRepo.On("GetByUUID", "missing").Return(nil, sql.ErrNoRows).Once()

		leagueService := NewLeagueService(leagueRepo, new(mockUserRepo), nil)
		_, err := leagueService.GetLeagueStandings("missing")

		assert.ErrorIs(t, err, ErrLeagueNotFound)
	})
}

func TestLeagueService_GetLeaguesForUser(t *testing.T) {
	user := &model.User{ID: 2, Email: "bob@example.com"}
	summaries := []model.LeagueSummary{
		{UUID: "u1", Name: "Open League", Publicity: model.PublicityPublic, NumberOfMembers: 3},
		{UUID: "u2", Name: "Office League", Publicity: model.PublicityPrivate, NumberOfMembers: 2},
	}

	userRepo := new(mockUserRepo)
	leagueRepo := new(mockLeagueRepo)
	userRepo.On("GetUserByEmail", "bob@example.com").Return(user, nil).Once()
	leagueRepo.On("GetLeaguesForUser", int64(2)).Return(summaries, nil).Once()

	leagueService := NewLeagueService(leagueRepo, userRepo, nil)
	leagues, err := leagueService.GetLeaguesForUser("bob@example.com")

	assert.NoError(t, err)
	assert.Equal(t, summaries, leagues)
}
