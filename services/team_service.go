package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/arenahub/team-registry/models"
	"github.com/arenahub/team-registry/repositories"
	"golang.org/x/sync/errgroup"
)

// rosterSize is the exact number of players a team registers with.
const rosterSize = 4

type RegisterPlayerInput struct {
	InGameName string `json:"in_game_name"`
	BGMIID     string `json:"bgmi_id"`
}

type RegisterTeamInput struct {
	TeamName         string                `json:"team_name"`
	TeamLogoURL      *string               `json:"team_logo_url"`
	LeaderInGameName *string               `json:"leader_in_game_name"`
	LeaderRealName   *string               `json:"leader_real_name"`
	ContactNumber    *string               `json:"contact_number"`
	Email            *string               `json:"email"`
	Players          []RegisterPlayerInput `json:"players"`
}

type TeamService interface {
	RegisterTeam(ctx context.Context, input RegisterTeamInput) (int, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
}

type teamService struct {
	tx      repositories.Transactor
	teams   repositories.TeamRepository
	players repositories.PlayerRepository
}

func NewTeamService(
	tx repositories.Transactor,
	teams repositories.TeamRepository,
	players repositories.PlayerRepository,
) TeamService {
	return &teamService{
		tx:      tx,
		teams:   teams,
		players: players,
	}
}

// RegisterTeam creates the team row and its four player rows in one
// transaction. Slot numbers follow the 1-based order of the input roster.
// Validation happens before any store access, so an invalid request leaves
// no trace in the store.
func (s *teamService) RegisterTeam(ctx context.Context, input RegisterTeamInput) (int, error) {
	if input.TeamName == "" {
		return 0, ErrTeamNameRequired
	}
	if len(input.Players) != rosterSize {
		return 0, ErrRosterSizeInvalid
	}

	team := &models.Team{
		Name:             input.TeamName,
		LogoURL:          input.TeamLogoURL,
		LeaderInGameName: input.LeaderInGameName,
		LeaderRealName:   input.LeaderRealName,
		ContactNumber:    input.ContactNumber,
		Email:            input.Email,
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.teams.Create(ctx, exec, team); err != nil {
			return err
		}

		roster := make([]*models.Player, 0, rosterSize)
		for i, p := range input.Players {
			roster = append(roster, &models.Player{
				TeamID:     team.ID,
				Slot:       i + 1,
				InGameName: p.InGameName,
				BGMIID:     p.BGMIID,
			})
		}

		if err := s.players.CreateBatch(ctx, exec, roster); err != nil {
			return fmt.Errorf("failed to insert roster for team %d: %w", team.ID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return team.ID, nil
}

// ListTeams reads all teams and all players and joins them in memory by
// team id. A team without players keeps an empty roster. Either both reads
// succeed or the operation fails as a whole.
func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	var (
		teams   []models.Team
		players []models.Player
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		teams, err = s.teams.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to fetch teams: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		players, err = s.players.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to fetch players: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	indexByTeam := make(map[int]int, len(teams))
	for i := range teams {
		teams[i].Players = make([]models.Player, 0, rosterSize)
		indexByTeam[teams[i].ID] = i
	}
	for _, player := range players {
		if i, ok := indexByTeam[player.TeamID]; ok {
			teams[i].Players = append(teams[i].Players, player)
		}
	}

	return teams, nil
}

// GetTeamByID returns one team with its roster ordered by slot ascending.
func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	roster, err := s.players.ListByTeamID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster for team %d: %w", id, err)
	}
	team.Players = roster

	return team, nil
}
