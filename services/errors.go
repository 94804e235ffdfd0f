package services

import "errors"

// Общие ошибки сервисного слоя, используемые в маппинге HTTP.
var (
	// Ошибки валидации: проверяются до любого обращения к хранилищу.
	ErrTeamNameRequired  = errors.New("team name is required")
	ErrRosterSizeInvalid = errors.New("team roster must contain exactly 4 players")

	// Ресурс не найден
	ErrTeamNotFound = errors.New("team not found")
)
