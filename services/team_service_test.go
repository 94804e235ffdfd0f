package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arenahub/team-registry/models"
	"github.com/arenahub/team-registry/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransactor struct {
	beginErr   error
	calls      int
	rolledBack bool
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.calls++
	if f.beginErr != nil {
		return f.beginErr
	}
	if err := fn(nil); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
}

type fakeTeamRepo struct {
	nextID    int
	created   []*models.Team
	createErr error

	teams   []models.Team
	listErr error

	byID map[int]models.Team
}

func (f *fakeTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	team.ID = f.nextID
	team.CreatedAt = time.Now()
	f.created = append(f.created, team)
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &team, nil
}

func (f *fakeTeamRepo) List(ctx context.Context) ([]models.Team, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.teams, nil
}

type fakePlayerRepo struct {
	batches  [][]*models.Player
	batchErr error

	all     []models.Player
	listErr error

	byTeam map[int][]models.Player
}

func (f *fakePlayerRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, players []*models.Player) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.batches = append(f.batches, players)
	return nil
}

func (f *fakePlayerRepo) ListAll(ctx context.Context) ([]models.Player, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.all, nil
}

func (f *fakePlayerRepo) ListByTeamID(ctx context.Context, teamID int) ([]models.Player, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byTeam[teamID], nil
}

func validInput() RegisterTeamInput {
	return RegisterTeamInput{
		TeamName: "Soul Reapers",
		Players: []RegisterPlayerInput{
			{InGameName: "Viper", BGMIID: "5111111111"},
			{InGameName: "Ghost", BGMIID: "5222222222"},
			{InGameName: "Mamba", BGMIID: "5333333333"},
			{InGameName: "Owais", BGMIID: "5444444444"},
		},
	}
}

func TestRegisterTeamAssignsSlotsInInputOrder(t *testing.T) {
	tx := &fakeTransactor{}
	teams := &fakeTeamRepo{}
	players := &fakePlayerRepo{}
	svc := NewTeamService(tx, teams, players)

	input := validInput()
	teamID, err := svc.RegisterTeam(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, teamID)

	require.Len(t, teams.created, 1)
	assert.Equal(t, "Soul Reapers", teams.created[0].Name)

	require.Len(t, players.batches, 1)
	roster := players.batches[0]
	require.Len(t, roster, 4)
	for i, player := range roster {
		assert.Equal(t, i+1, player.Slot)
		assert.Equal(t, teamID, player.TeamID)
		assert.Equal(t, input.Players[i].InGameName, player.InGameName)
		assert.Equal(t, input.Players[i].BGMIID, player.BGMIID)
	}
}

func TestRegisterTeamValidation(t *testing.T) {
	makePlayers := func(n int) []RegisterPlayerInput {
		ps := make([]RegisterPlayerInput, n)
		for i := range ps {
			ps[i] = RegisterPlayerInput{InGameName: "p", BGMIID: "1"}
		}
		return ps
	}

	tests := []struct {
		name    string
		input   RegisterTeamInput
		wantErr error
	}{
		{"empty team name", RegisterTeamInput{Players: makePlayers(4)}, ErrTeamNameRequired},
		{"no players", RegisterTeamInput{TeamName: "T"}, ErrRosterSizeInvalid},
		{"one player", RegisterTeamInput{TeamName: "T", Players: makePlayers(1)}, ErrRosterSizeInvalid},
		{"three players", RegisterTeamInput{TeamName: "T", Players: makePlayers(3)}, ErrRosterSizeInvalid},
		{"five players", RegisterTeamInput{TeamName: "T", Players: makePlayers(5)}, ErrRosterSizeInvalid},
		{"empty name wins over bad roster", RegisterTeamInput{Players: makePlayers(2)}, ErrTeamNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeTransactor{}
			teams := &fakeTeamRepo{}
			players := &fakePlayerRepo{}
			svc := NewTeamService(tx, teams, players)

			_, err := svc.RegisterTeam(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.wantErr)

			// Валидация не должна трогать хранилище.
			assert.Zero(t, tx.calls)
			assert.Empty(t, teams.created)
			assert.Empty(t, players.batches)
		})
	}
}

func TestRegisterTeamRollsBackWhenRosterInsertFails(t *testing.T) {
	tx := &fakeTransactor{}
	teams := &fakeTeamRepo{}
	players := &fakePlayerRepo{batchErr: errors.New("insert failed")}
	svc := NewTeamService(tx, teams, players)

	_, err := svc.RegisterTeam(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, tx.rolledBack)
}

func TestRegisterTeamRollsBackWhenTeamInsertFails(t *testing.T) {
	tx := &fakeTransactor{}
	teams := &fakeTeamRepo{createErr: errors.New("insert failed")}
	players := &fakePlayerRepo{}
	svc := NewTeamService(tx, teams, players)

	_, err := svc.RegisterTeam(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, players.batches)
}

func TestRegisterTeamPropagatesBeginError(t *testing.T) {
	tx := &fakeTransactor{beginErr: errors.New("pool exhausted")}
	svc := NewTeamService(tx, &fakeTeamRepo{}, &fakePlayerRepo{})

	_, err := svc.RegisterTeam(context.Background(), validInput())
	require.Error(t, err)
}

func TestListTeamsJoinsRostersByTeamID(t *testing.T) {
	teams := &fakeTeamRepo{
		teams: []models.Team{
			{ID: 1, Name: "Alpha"},
			{ID: 2, Name: "Bravo"},
			{ID: 3, Name: "Empty"},
		},
	}
	players := &fakePlayerRepo{
		all: []models.Player{
			{ID: 10, TeamID: 1, Slot: 1},
			{ID: 11, TeamID: 2, Slot: 1},
			{ID: 12, TeamID: 1, Slot: 2},
			{ID: 13, TeamID: 2, Slot: 2},
		},
	}
	svc := NewTeamService(&fakeTransactor{}, teams, players)

	got, err := svc.ListTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Len(t, got[0].Players, 2)
	assert.Len(t, got[1].Players, 2)

	// Команда без игроков получает пустой, но не nil, состав.
	require.NotNil(t, got[2].Players)
	assert.Empty(t, got[2].Players)

	seen := make(map[int]bool)
	for _, team := range got {
		for _, player := range team.Players {
			assert.Equal(t, team.ID, player.TeamID)
			assert.False(t, seen[player.ID], "player %d attached twice", player.ID)
			seen[player.ID] = true
		}
	}
}

func TestListTeamsFailsAsAWhole(t *testing.T) {
	t.Run("teams read fails", func(t *testing.T) {
		teams := &fakeTeamRepo{listErr: errors.New("boom")}
		svc := NewTeamService(&fakeTransactor{}, teams, &fakePlayerRepo{})

		got, err := svc.ListTeams(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("players read fails", func(t *testing.T) {
		players := &fakePlayerRepo{listErr: errors.New("boom")}
		svc := NewTeamService(&fakeTransactor{}, &fakeTeamRepo{}, players)

		got, err := svc.ListTeams(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestGetTeamByID(t *testing.T) {
	teams := &fakeTeamRepo{
		byID: map[int]models.Team{
			7: {ID: 7, Name: "Alpha"},
		},
	}
	players := &fakePlayerRepo{
		byTeam: map[int][]models.Player{
			7: {
				{ID: 1, TeamID: 7, Slot: 1},
				{ID: 2, TeamID: 7, Slot: 2},
				{ID: 3, TeamID: 7, Slot: 3},
				{ID: 4, TeamID: 7, Slot: 4},
			},
		},
	}
	svc := NewTeamService(&fakeTransactor{}, teams, players)

	t.Run("found with ordered roster", func(t *testing.T) {
		team, err := svc.GetTeamByID(context.Background(), 7)
		require.NoError(t, err)
		require.Len(t, team.Players, 4)
		for i, player := range team.Players {
			assert.Equal(t, i+1, player.Slot)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetTeamByID(context.Background(), 404)
		require.ErrorIs(t, err, ErrTeamNotFound)
	})
}
