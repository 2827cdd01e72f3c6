package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramchaik/gojo/internal/domain/entity"
)

func newBoardFixture(t *testing.T) (*BoardService, *UserService) {
	t.Helper()
	users := newFakeUserRepo()
	boards := newFakeBoardRepo(users)
	return NewBoardService(boards, users, nil, nil), NewUserService(users, nil, nil, "", nil, "")
}

func TestCreateBoardGrantsOwnership(t *testing.T) {
	boards, users := newBoardFixture(t)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "Owner", "password-1")
	require.NoError(t, err)

	b, err := boards.CreateBoard(ctx, owner.ID, "Roadmap")
	require.NoError(t, err)
	require.NotEmpty(t, b.ID)
	assert.Equal(t, "Roadmap", b.Name)
	assert.NotEmpty(t, b.SecretID)

	isOwner, err := boards.IsOwner(ctx, b.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, isOwner)

	list, err := boards.ListBoardsForUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestCreateBoardDefaultsName(t *testing.T) {
	boards, users := newBoardFixture(t)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "Owner", "password-1")
	require.NoError(t, err)

	b, err := boards.CreateBoard(ctx, owner.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultBoardName, b.Name)
}

func TestUpsertEditorRoleNeverDowngradesOwner(t *testing.T) {
	boards, users := newBoardFixture(t)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "Owner", "password-1")
	require.NoError(t, err)
	b, err := boards.CreateBoard(ctx, owner.ID, "Board")
	require.NoError(t, err)

	// Owner follows their own share link: the upsert must leave the Owner
	// role untouched.
	require.NoError(t, boards.UpsertEditorRole(ctx, b.ID, owner.ID))
	br, err := boards.GetRole(ctx, b.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, br.Role)
}

func TestUpsertEditorRoleIsIdempotent(t *testing.T) {
	boards, users := newBoardFixture(t)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "Owner", "password-1")
	require.NoError(t, err)
	guest, err := users.Register(ctx, "guest@example.com", "Guest", "password-2")
	require.NoError(t, err)
	b, err := boards.CreateBoard(ctx, owner.ID, "Board")
	require.NoError(t, err)

	require.NoError(t, boards.UpsertEditorRole(ctx, b.ID, guest.ID))
	require.NoError(t, boards.UpsertEditorRole(ctx, b.ID, guest.ID))

	members, err := boards.ListMembers(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	br, err := boards.GetRole(ctx, b.ID, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEditor, br.Role)
}

func TestCanEdit(t *testing.T) {
	boards, users := newBoardFixture(t)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "Owner", "password-1")
	require.NoError(t, err)
	editor, err := users.Register(ctx, "editor@example.com", "Editor", "password-2")
	require.NoError(t, err)
	stranger, err := users.Register(ctx, "stranger@example.com", "Stranger", "password-3")
	require.NoError(t, err)

	b, err := boards.CreateBoard(ctx, owner.ID, "Board")
	require.NoError(t, err)
	require.NoError(t, boards.UpsertEditorRole(ctx, b.ID, editor.ID))

	for _, tt := range []struct {
		name   string
		userID string
		want   bool
	}{
		{"owner", owner.ID, true},
		{"editor", editor.ID, true},
		{"stranger", stranger.ID, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := boards.CanEdit(ctx, b.ID, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckSecret(t *testing.T) {
	boards, users := newBoardFixture(t)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "Owner", "password-1")
	require.NoError(t, err)
	b, err := boards.CreateBoard(ctx, owner.ID, "Board")
	require.NoError(t, err)

	ok, err := boards.CheckSecret(ctx, b.ID, b.SecretID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = boards.CheckSecret(ctx, b.ID, "wrong-secret")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = boards.CheckSecret(ctx, "missing-board", b.SecretID)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestAddMemberByEmail(t *testing.T) {
	boards, users := newBoardFixture(t)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "Owner", "password-1")
	require.NoError(t, err)
	friend, err := users.Register(ctx, "friend@example.com", "Friend", "password-2")
	require.NoError(t, err)
	b, err := boards.CreateBoard(ctx, owner.ID, "Board")
	require.NoError(t, err)

	require.NoError(t, boards.AddMemberByEmail(ctx, b.ID, "friend@example.com"))
	br, err := boards.GetRole(ctx, b.ID, friend.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEditor, br.Role)

	err = boards.AddMemberByEmail(ctx, b.ID, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteBoardReturnsDeletedRow(t *testing.T) {
	boards, users := newBoardFixture(t)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "Owner", "password-1")
	require.NoError(t, err)
	b, err := boards.CreateBoard(ctx, owner.ID, "Doomed")
	require.NoError(t, err)

	deleted, err := boards.DeleteBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, deleted.ID)
	assert.Equal(t, "Doomed", deleted.Name)

	_, err = boards.GetBoard(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBoardNotFound)

	// Role rows go with the board.
	_, err = boards.GetRole(ctx, b.ID, owner.ID)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestTouchLastOpened(t *testing.T) {
	boards, users := newBoardFixture(t)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "Owner", "password-1")
	require.NoError(t, err)
	b, err := boards.CreateBoard(ctx, owner.ID, "Board")
	require.NoError(t, err)
	assert.Nil(t, b.LastOpenedAt)

	require.NoError(t, boards.TouchLastOpened(ctx, b.ID))
	got, err := boards.GetBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastOpenedAt)

	assert.ErrorIs(t, boards.TouchLastOpened(ctx, "missing"), ErrBoardNotFound)
}

func TestRenameBoard(t *testing.T) {
	boards, users := newBoardFixture(t)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "Owner", "password-1")
	require.NoError(t, err)
	b, err := boards.CreateBoard(ctx, owner.ID, "Old name")
	require.NoError(t, err)

	require.NoError(t, boards.RenameBoard(ctx, b.ID, "New name"))
	got, err := boards.GetBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "New name", got.Name)

	assert.ErrorIs(t, boards.RenameBoard(ctx, "missing", "x"), ErrBoardNotFound)
}
