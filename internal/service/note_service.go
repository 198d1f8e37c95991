package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"notetaking-be/internal/dto"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/pkg/apperror"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/unitofwork"
	"notetaking-be/pkg/events"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListNotesRequest) (*dto.ListNotesResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	log              logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		log:              log,
	}
}

// normalizeTagNames trims, lowercases and dedupes tag names, dropping
// empties. Order of first occurrence is preserved.
func normalizeTagNames(tags []string) []string {
	seen := make(map[string]bool)
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		name := strings.ToLower(strings.TrimSpace(tag))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		normalized = append(normalized, name)
	}
	return normalized
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Note row, tag rows and links land together or not at all.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	names := normalizeTagNames(req.Tags)
	tagIds := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		tag, err := uow.TagRepository().FindOne(ctx, specification.TagNameEquals{Name: name})
		if err != nil {
			return nil, err
		}
		if tag == nil {
			tag = &entity.Tag{Id: uuid.New(), Name: name}
			if err := uow.TagRepository().Create(ctx, tag); err != nil {
				return nil, err
			}
			s.log.Info("note", "created new tag", map[string]interface{}{
				"tag": name,
			})
		}
		tagIds = append(tagIds, tag.Id)
	}

	if err := uow.NoteRepository().AttachTags(ctx, note.Id, tagIds); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NoteCreated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
		"title":   note.Title,
		"tags":    names,
	})

	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}, nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	tags, err := uow.TagRepository().FindNamesByNoteId(ctx, note.Id)
	if err != nil {
		return nil, err
	}

	return &dto.ShowNoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}, nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, req *dto.ListNotesRequest) (*dto.ListNotesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filters := []specification.Specification{
		specification.NoteOwnedByUser{UserID: userId},
		specification.NotDeleted{},
	}
	if strings.TrimSpace(req.Search) != "" {
		filters = append(filters, specification.NoteSearchQuery{Query: req.Search})
	}
	if strings.TrimSpace(req.Tag) != "" {
		filters = append(filters, specification.HasTag{Name: req.Tag})
	}

	// TotalCount uses the same filters but no pagination, so it is independent
	// of the page requested.
	total, err := uow.NoteRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	pageSpecs := append(filters,
		specification.OrderBy{Field: "notes.created_at", Desc: true},
		specification.Pagination{Limit: req.PageSize, Offset: (req.Page - 1) * req.PageSize},
	)
	notes, err := uow.NoteRepository().FindAll(ctx, pageSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NoteResponse, len(notes))
	for i, note := range notes {
		items[i] = dto.NoteResponse{
			Id:        note.Id,
			Title:     note.Title,
			Content:   note.Content,
			CreatedAt: note.CreatedAt,
			UpdatedAt: note.UpdatedAt,
		}
	}

	return &dto.ListNotesResponse{
		Notes:      items,
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Save writes every column, so the ownership check and the write must sit
	// in one transaction or a concurrent delete gets overwritten.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	note, err := s.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note.Title = req.Title
	note.Content = req.Content
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NoteUpdated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}, nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Read-check-write in one transaction so two concurrent deletes cannot
	// both observe the live row.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	note, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	now := time.Now()
	note.IsDeleted = true
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishEvent(ctx, events.NoteDeleted, map[string]interface{}{
		"note_id": id,
		"user_id": userId,
	})

	return nil
}

// findOwned resolves a live note for this user. Soft-deleted and
// foreign-owned notes are indistinguishable from missing ones.
func (s *noteService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.NoteOwnedByUser{UserID: userId},
		specification.NotDeleted{},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note not found")
	}
	return note, nil
}

// publishEvent emits a lifecycle event for the audit consumer. Eventing is
// auxiliary; failures are logged, never surfaced to the request.
func (s *noteService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("note", "failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
