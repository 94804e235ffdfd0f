package models

// Player is one roster entry of a team. Slot is the 1-based position the
// player occupied in the registration request.
type Player struct {
	ID         int    `json:"player_id" db:"player_id"`
	TeamID     int    `json:"team_id" db:"team_id"`
	Slot       int    `json:"player_slot" db:"player_slot"`
	InGameName string `json:"in_game_name" db:"in_game_name"`
	BGMIID     string `json:"bgmi_id" db:"bgmi_id"`
}
