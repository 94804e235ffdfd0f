package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arenahub/team-registry/models"
	"github.com/lib/pq"
)

var ErrPlayerTeamInvalid = errors.New("player team conflict or invalid")

type PlayerRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, players []*models.Player) error
	ListAll(ctx context.Context) ([]models.Player, error)
	ListByTeamID(ctx context.Context, teamID int) ([]models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateBatch inserts the players strictly in slice order on the caller's
// executor. Inside a transaction a failed insert leaves the transaction
// aborted, so the caller decides between rollback and commit.
func (r *postgresPlayerRepository) CreateBatch(ctx context.Context, exec SQLExecutor, players []*models.Player) error {
	if len(players) == 0 {
		return nil
	}

	executor := r.getExecutor(exec)
	query := `
		INSERT INTO players (team_id, player_slot, in_game_name, bgmi_id)
		VALUES ($1, $2, $3, $4)
		RETURNING player_id`

	for _, player := range players {
		err := executor.QueryRowContext(ctx, query,
			player.TeamID,
			player.Slot,
			player.InGameName,
			player.BGMIID,
		).Scan(&player.ID)

		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
				// foreign_key_violation: команда не существует
				return ErrPlayerTeamInvalid
			}
			return fmt.Errorf("failed to insert player for slot %d: %w", player.Slot, err)
		}
	}

	return nil
}

func (r *postgresPlayerRepository) ListAll(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT player_id, team_id, player_slot, in_game_name, bgmi_id
		FROM players`

	return r.scanPlayers(ctx, query)
}

// ListByTeamID возвращает состав команды, отсортированный по слоту.
func (r *postgresPlayerRepository) ListByTeamID(ctx context.Context, teamID int) ([]models.Player, error) {
	query := `
		SELECT player_id, team_id, player_slot, in_game_name, bgmi_id
		FROM players
		WHERE team_id = $1
		ORDER BY player_slot ASC`

	return r.scanPlayers(ctx, query, teamID)
}

func (r *postgresPlayerRepository) scanPlayers(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		scanErr := rows.Scan(
			&player.ID,
			&player.TeamID,
			&player.Slot,
			&player.InGameName,
			&player.BGMIID,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return players, nil
}
