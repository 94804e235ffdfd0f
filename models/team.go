package models

import "time"

type Team struct {
	ID               int       `json:"team_id" db:"team_id"`
	Name             string    `json:"team_name" db:"team_name"`
	LogoURL          *string   `json:"team_logo_url" db:"team_logo_url"`
	LeaderInGameName *string   `json:"leader_in_game_name" db:"leader_in_game_name"`
	LeaderRealName   *string   `json:"leader_real_name" db:"leader_real_name"`
	ContactNumber    *string   `json:"contact_number" db:"contact_number"`
	Email            *string   `json:"email" db:"email"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`

	Players []Player `json:"players" db:"-"`
}
