package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ramchaik/gojo/internal/domain/entity"
	repo "github.com/ramchaik/gojo/internal/domain/repository"
)

// In-memory repository fakes mirroring the postgres semantics: ErrNotFound
// for missing rows, ErrEmailTaken on duplicate email, upsert that never
// replaces an existing role row.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if ex.Email == u.Email {
			return repo.ErrEmailTaken
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) UpdateAvatarURL(_ context.Context, id, avatarURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

type fakeBoardRepo struct {
	mu     sync.Mutex
	seq    int
	boards map[string]*entity.Board
	roles  []*entity.BoardRole
	users  *fakeUserRepo // for ListMembers join
}

func newFakeBoardRepo(users *fakeUserRepo) *fakeBoardRepo {
	return &fakeBoardRepo{boards: map[string]*entity.Board{}, users: users}
}

func (f *fakeBoardRepo) CreateWithOwner(_ context.Context, b *entity.Board, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	b.ID = fmt.Sprintf("board-%d", f.seq)
	b.SecretID = fmt.Sprintf("secret-%d", f.seq)
	b.CreatedAt = time.Now()
	cp := *b
	f.boards[b.ID] = &cp
	f.roles = append(f.roles, &entity.BoardRole{
		ID:      fmt.Sprintf("role-%d", len(f.roles)+1),
		BoardID: b.ID,
		UserID:  ownerID,
		Role:    entity.RoleOwner,
		AddedAt: time.Now(),
	})
	return nil
}

func (f *fakeBoardRepo) GetByID(_ context.Context, id string) (*entity.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boards[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBoardRepo) ListForUser(_ context.Context, userID string) ([]*entity.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Board
	for _, r := range f.roles {
		if r.UserID != userID {
			continue
		}
		if b, ok := f.boards[r.BoardID]; ok {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBoardRepo) TouchLastOpened(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boards[id]
	if !ok {
		return repo.ErrNotFound
	}
	now := time.Now()
	b.LastOpenedAt = &now
	return nil
}

func (f *fakeBoardRepo) Rename(_ context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boards[id]
	if !ok {
		return repo.ErrNotFound
	}
	b.Name = name
	return nil
}

func (f *fakeBoardRepo) Delete(_ context.Context, id string) (*entity.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boards[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	delete(f.boards, id)
	kept := f.roles[:0]
	for _, r := range f.roles {
		if r.BoardID != id {
			kept = append(kept, r)
		}
	}
	f.roles = kept
	return b, nil
}

func (f *fakeBoardRepo) GetRole(_ context.Context, boardID, userID string) (*entity.BoardRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.BoardID == boardID && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeBoardRepo) UpsertEditorRole(_ context.Context, boardID, userID string) error {
	return f.AddRole(context.Background(), boardID, userID, entity.RoleEditor)
}

func (f *fakeBoardRepo) AddRole(_ context.Context, boardID, userID string, role entity.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.BoardID == boardID && r.UserID == userID {
			return nil
		}
	}
	f.roles = append(f.roles, &entity.BoardRole{
		ID:      fmt.Sprintf("role-%d", len(f.roles)+1),
		BoardID: boardID,
		UserID:  userID,
		Role:    role,
		AddedAt: time.Now(),
	})
	return nil
}

func (f *fakeBoardRepo) ListMembers(_ context.Context, boardID string) ([]*entity.BoardMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.BoardMember
	for _, r := range f.roles {
		if r.BoardID != boardID {
			continue
		}
		m := &entity.BoardMember{Role: r.Role, BoardRoleID: r.ID, AddedAt: r.AddedAt}
		if f.users != nil {
			if u, ok := f.users.users[r.UserID]; ok {
				m.Email = u.Email
				m.Name = u.Name
			}
		}
		out = append(out, m)
	}
	return out, nil
}

var (
	_ repo.UserRepository  = (*fakeUserRepo)(nil)
	_ repo.BoardRepository = (*fakeBoardRepo)(nil)
)
