package service

import (
	"context"
	"sort"
	"strings"

	"notetaking-be/internal/entity"
	"notetaking-be/internal/repository/contract"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// The fakes below back the service tests with an in-memory store. They
// interpret the same specifications the GORM repositories translate to SQL,
// so a service exercised here issues exactly the queries it would in
// production.

type fakeStore struct {
	users    map[uuid.UUID]*entity.User
	notes    map[uuid.UUID]*entity.Note
	tags     map[uuid.UUID]*entity.Tag
	noteTags map[uuid.UUID][]uuid.UUID // noteId -> tagIds
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*entity.User),
		notes:    make(map[uuid.UUID]*entity.Note),
		tags:     make(map[uuid.UUID]*entity.Tag),
		noteTags: make(map[uuid.UUID][]uuid.UUID),
	}
}

type fakeUnitOfWork struct {
	store *fakeStore

	beginCount    int
	commitCount   int
	rollbackCount int
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { u.beginCount++; return nil }
func (u *fakeUnitOfWork) Commit() error                   { u.commitCount++; return nil }
func (u *fakeUnitOfWork) Rollback() error                 { u.rollbackCount++; return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepository{store: u.store}
}

func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository {
	return &fakeNoteRepository{store: u.store}
}

func (u *fakeUnitOfWork) TagRepository() contract.TagRepository {
	return &fakeTagRepository{store: u.store}
}

type fakeRepositoryFactory struct {
	store   *fakeStore
	lastUow *fakeUnitOfWork
}

func newFakeRepositoryFactory() *fakeRepositoryFactory {
	return &fakeRepositoryFactory{store: newFakeStore()}
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	uow := &fakeUnitOfWork{store: f.store}
	f.lastUow = uow
	return uow
}

type fakeUserRepository struct {
	store *fakeStore
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	copied := *user
	r.store.users[user.Id] = &copied
	return nil
}

func (r *fakeUserRepository) Update(ctx context.Context, user *entity.User) error {
	copied := *user
	r.store.users[user.Id] = &copied
	return nil
}

func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, user := range r.store.users {
		if userMatches(user, specs) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, user := range r.store.users {
		if userMatches(user, specs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepository) UpdateTokens(ctx context.Context, userId uuid.UUID, accessToken, refreshToken string) error {
	user, ok := r.store.users[userId]
	if !ok {
		return nil
	}
	user.StoredAccessToken = &accessToken
	user.StoredRefreshToken = &refreshToken
	return nil
}

func userMatches(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByEmail:
			if user.Email != s.Email {
				return false
			}
		case specification.ByID:
			if user.Id != s.ID {
				return false
			}
		}
	}
	return true
}

type fakeNoteRepository struct {
	store *fakeStore
}

func (r *fakeNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	copied := *note
	r.store.notes[note.Id] = &copied
	return nil
}

func (r *fakeNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	copied := *note
	r.store.notes[note.Id] = &copied
	return nil
}

func (r *fakeNoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	for _, note := range r.store.notes {
		if r.noteMatches(note, specs) {
			copied := *note
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var matched []*entity.Note
	for _, note := range r.store.notes {
		if r.noteMatches(note, specs) {
			copied := *note
			matched = append(matched, &copied)
		}
	}

	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && strings.Contains(order.Field, "created_at") {
			sort.Slice(matched, func(i, j int) bool {
				if order.Desc {
					return matched[i].CreatedAt.After(matched[j].CreatedAt)
				}
				return matched[i].CreatedAt.Before(matched[j].CreatedAt)
			})
		}
	}

	for _, spec := range specs {
		if page, ok := spec.(specification.Pagination); ok {
			if page.Offset >= len(matched) {
				return nil, nil
			}
			matched = matched[page.Offset:]
			if page.Limit < len(matched) {
				matched = matched[:page.Limit]
			}
		}
	}
	return matched, nil
}

func (r *fakeNoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, note := range r.store.notes {
		if r.noteMatches(note, specs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeNoteRepository) AttachTags(ctx context.Context, noteId uuid.UUID, tagIds []uuid.UUID) error {
	r.store.noteTags[noteId] = append(r.store.noteTags[noteId], tagIds...)
	return nil
}

func (r *fakeNoteRepository) noteMatches(note *entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if note.Id != s.ID {
				return false
			}
		case specification.NoteOwnedByUser:
			if note.UserId != s.UserID {
				return false
			}
		case specification.NotDeleted:
			if note.IsDeleted {
				return false
			}
		case specification.NoteSearchQuery:
			q := strings.ToLower(s.Query)
			if !strings.Contains(strings.ToLower(note.Title), q) &&
				!strings.Contains(strings.ToLower(note.Content), q) {
				return false
			}
		case specification.HasTag:
			if !r.noteHasTag(note.Id, s.Name) {
				return false
			}
		}
	}
	return true
}

func (r *fakeNoteRepository) noteHasTag(noteId uuid.UUID, name string) bool {
	for _, tagId := range r.store.noteTags[noteId] {
		if tag, ok := r.store.tags[tagId]; ok && tag.Name == name {
			return true
		}
	}
	return false
}

type fakeTagRepository struct {
	store *fakeStore
}

func (r *fakeTagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	copied := *tag
	r.store.tags[tag.Id] = &copied
	return nil
}

func (r *fakeTagRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error) {
	for _, tag := range r.store.tags {
		if tagMatches(tag, specs) {
			copied := *tag
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTagRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error) {
	var matched []*entity.Tag
	for _, tag := range r.store.tags {
		if tagMatches(tag, specs) {
			copied := *tag
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

func (r *fakeTagRepository) FindNamesByNoteId(ctx context.Context, noteId uuid.UUID) ([]string, error) {
	names := []string{}
	for _, tagId := range r.store.noteTags[noteId] {
		if tag, ok := r.store.tags[tagId]; ok {
			names = append(names, tag.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func tagMatches(tag *entity.Tag, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.TagNameEquals:
			if !strings.EqualFold(tag.Name, s.Name) {
				return false
			}
		case specification.TagNameContains:
			if !strings.Contains(strings.ToLower(tag.Name), strings.ToLower(s.Search)) {
				return false
			}
		}
	}
	return true
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
