package repository

import (
	"database/sql"
	"errors"
	"predictions-api/logger"
	"predictions-api/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ErrDuplicateMember is returned when a membership insert hits the
// (league_id, user_id) primary key.
var ErrDuplicateMember = errors.New("user is already a member of the league")

// ILeagueRepository defines the contract for league database operations.
type ILeagueRepository interface {
	CreateLeague(league *model.League, ownerID int64) error
	GetByUUID(uuid string) (*model.League, error)
	GetByCode(code string) (*model.League, error)
	ExistsByCode(code string) (bool, error)
	IsMember(leagueID, userID int64) (bool, error)
	AddMember(leagueID, userID int64) error
	GetMembersWithPoints(leagueID int64) ([]model.MemberPoints, error)
	GetLeaguesForUser(userID int64) ([]model.LeagueSummary, error)
}

// LeagueRepository implements ILeagueRepository.
type LeagueRepository struct {
	DB *sql.DB
}

func NewLeagueRepository(db *sql.DB) *LeagueRepository {
	return &LeagueRepository{DB: db}
}

// CreateLeague inserts the league and its owner's membership in one transaction,
// so a league never exists without its first member.
func (r *LeagueRepository) CreateLeague(league *model.League, ownerID int64) error {
	log := logger.Log.WithFields(logrus.Fields{
		"league_uuid": league.UUID,
		"owner_id":    ownerID,
	})

	tx, err := r.DB.Begin()
	if err != nil {
		log.WithError(err).Error("Failed to begin create league transaction")
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO leagues (uuid, name, league_code, publicity) VALUES ($1, $2, NULLIF($3, ''), $4)
	          RETURNING id, created_at`
	err = tx.QueryRow(query, league.UUID, league.Name, league.LeagueCode, league.Publicity).
		Scan(&league.ID, &league.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to insert league")
		return err
	}

	if _, err = tx.Exec(`INSERT INTO league_members (league_id, user_id) VALUES ($1, $2)`, league.ID, ownerID); err != nil {
		log.WithError(err).Error("Failed to insert owner membership")
		return err
	}

	return tx.Commit()
}

func (r *LeagueRepository) GetByUUID(uuid string) (*model.League, error) {
	query := `SELECT id, uuid, name, COALESCE(league_code, ''), publicity, created_at FROM leagues WHERE uuid = $1`
	return r.scanLeague(r.DB.QueryRow(query, uuid))
}

func (r *LeagueRepository) GetByCode(code string) (*model.League, error) {
	query := `SELECT id, uuid, name, COALESCE(league_code, ''), publicity, created_at FROM leagues WHERE league_code = $1`
	return r.scanLeague(r.DB.QueryRow(query, code))
}

func (r *LeagueRepository) scanLeague(row *sql.Row) (*model.League, error) {
	league := &model.League{}
	err := row.Scan(&league.ID, &league.UUID, &league.Name, &league.LeagueCode, &league.Publicity, &league.CreatedAt)
	if err != nil {
		return nil, err
	}
	return league, nil
}

func (r *LeagueRepository) ExistsByCode(code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM leagues WHERE league_code = $1)`
	if err := r.DB.QueryRow(query, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *LeagueRepository) IsMember(leagueID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM league_members WHERE league_id = $1 AND user_id = $2)`
	if err := r.DB.QueryRow(query, leagueID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// AddMember inserts a membership row. The primary key turns a racing duplicate
// join into ErrDuplicateMember instead of a silent second membership.
func (r *LeagueRepository) AddMember(leagueID, userID int64) error {
	query := `INSERT INTO league_members (league_id, user_id) VALUES ($1, $2)`
	_, err := r.DB.Exec(query, leagueID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateMember
		}
		logger.Log.WithFields(logrus.Fields{
			"league_id": leagueID,
			"user_id":   userID,
		}).WithError(err).Error("Failed to execute add member query")
		return err
	}
	return nil
}

func (r *LeagueRepository) GetMembersWithPoints(leagueID int64) ([]model.MemberPoints, error) {
	query := `SELECT u.first_name, u.total_points
	          FROM users u
	          JOIN league_members m ON m.user_id = u.id
	          WHERE m.league_id = $1`
	rows, err := r.DB.Query(query, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.MemberPoints
	for rows.Next() {
		var mp model.MemberPoints
		if err := rows.Scan(&mp.FirstName, &mp.TotalPoints); err != nil {
			return nil, err
		}
		members = append(members, mp)
	}
	return members, rows.Err()
}

func (r *LeagueRepository) GetLeaguesForUser(userID int64) ([]model.LeagueSummary, error) {
	query := `SELECT l.uuid, l.name, l.publicity,
	                 (SELECT COUNT(*) FROM league_members c WHERE c.league_id = l.id)
	          FROM leagues l
	          JOIN league_members m ON m.league_id = l.id
	          WHERE m.user_id = $1`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leagues []model.LeagueSummary
	for rows.Next() {
		var summary model.LeagueSummary
		if err := rows.Scan(&summary.UUID, &summary.Name, &summary.Publicity, &summary.NumberOfMembers); err != nil {
			return nil, err
		}
		leagues = append(leagues, summary)
	}
	return leagues, rows.Err()
}
