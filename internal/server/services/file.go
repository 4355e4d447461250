package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/content"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/pagination"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/files"
	"github.com/dmitrijs2005/filekeeper/internal/server/thumbnails"
)

// ThumbnailQueue accepts images for background resizing.
type ThumbnailQueue interface {
	Enqueue(job thumbnails.Job) error
}

// CreateFileInput is the raw creation request. Type is validated here, not
// by the transport.
type CreateFileInput struct {
	Name     string
	Type     string
	Data     string
	ParentID string
	IsPublic bool
}

// FileService owns every policy on file records: creation rules, ownership
// scoping and visibility of content.
type FileService struct {
	files  files.Repository
	engine content.Engine
	pager  *pagination.Paginator
	thumbs ThumbnailQueue
	logger logging.Logger
}

// NewFileService wires the service. thumbs may be nil, in which case no
// variants are generated for images.
func NewFileService(repo files.Repository, engine content.Engine, pager *pagination.Paginator, thumbs ThumbnailQueue, logger logging.Logger) *FileService {
	return &FileService{
		files:  repo,
		engine: engine,
		pager:  pager,
		thumbs: thumbs,
		logger: logger.With("module", "files"),
	}
}

// CreateFile validates in, stores the content of non-folder records and
// persists the record. The first failing check decides the error message.
func (s *FileService) CreateFile(ctx context.Context, user *models.User, in CreateFileInput) (*models.FileRecord, error) {
	if in.Name == "" {
		return nil, common.NewValidationError("Missing name")
	}
	kind, ok := models.ParseKind(in.Type)
	if !ok {
		return nil, common.NewValidationError("Missing type")
	}
	if kind.HasContent() && in.Data == "" {
		return nil, common.NewValidationError("Missing data")
	}

	parentID := in.ParentID
	if parentID == "" {
		parentID = models.RootID
	}
	if parentID != models.RootID {
		parent, err := s.files.FindByIDAndOwner(ctx, parentID, user.ID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.NewValidationError("Parent not found")
			}
			return nil, fmt.Errorf("error loading parent: %w", err)
		}
		if parent.Type != models.KindFolder {
			return nil, common.NewValidationError("Parent is not a folder")
		}
	}

	record := &models.FileRecord{
		UserID:   user.ID,
		Name:     in.Name,
		Type:     kind,
		IsPublic: in.IsPublic,
		ParentID: parentID,
	}

	if kind.HasContent() {
		ref, err := s.engine.Store(ctx, in.Data)
		if err != nil {
			if errors.Is(err, content.ErrInvalidData) {
				return nil, common.NewValidationError("Invalid data")
			}
			return nil, err
		}
		record.ContentRef = ref
	}

	created, err := s.files.Insert(ctx, record)
	if err != nil {
		if record.ContentRef != "" {
			if delErr := s.engine.Delete(ctx, record.ContentRef); delErr != nil {
				s.logger.Error(ctx, "orphaned content left behind", "content_ref", record.ContentRef, "error", delErr)
			}
		}
		return nil, fmt.Errorf("error creating file: %w", err)
	}

	if kind == models.KindImage && s.thumbs != nil {
		job := thumbnails.Job{FileID: created.ID, ContentRef: created.ContentRef, Name: created.Name}
		if err := s.thumbs.Enqueue(job); err != nil {
			s.logger.Warn(ctx, "thumbnail job not queued", "file_id", created.ID, "error", err)
		}
	}

	return created, nil
}

// GetFile returns the record only when user owns it. A foreign record is
// reported exactly like a missing one.
func (s *FileService) GetFile(ctx context.Context, user *models.User, id string) (*models.FileRecord, error) {
	f, err := s.files.FindByIDAndOwner(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading file: %w", err)
	}
	return f, nil
}

// ListFiles returns one page of the user's records under parentID. An empty
// parentID means root. Unknown parents and pages past the end yield an empty
// slice.
func (s *FileService) ListFiles(ctx context.Context, user *models.User, parentID string, page int) ([]*models.FileRecord, error) {
	if parentID == "" {
		parentID = models.RootID
	}
	w := s.pager.Window(page)

	list, err := s.files.ListByOwner(ctx, user.ID, parentID, w.Limit, w.Offset)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	if list == nil {
		list = []*models.FileRecord{}
	}
	return list, nil
}

// SetPublish toggles visibility of a record user owns.
func (s *FileService) SetPublish(ctx context.Context, user *models.User, id string, isPublic bool) (*models.FileRecord, error) {
	if _, err := s.GetFile(ctx, user, id); err != nil {
		return nil, err
	}

	f, err := s.files.SetPublished(ctx, id, isPublic)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating file: %w", err)
	}
	return f, nil
}

// GetData returns the bytes of a record and their content type. requester is
// nil for anonymous callers. Private records of other users, missing records
// and missing blobs are all reported as common.ErrorNotFound. A non-zero size
// selects a generated thumbnail width.
func (s *FileService) GetData(ctx context.Context, requester *models.User, id string, size int) ([]byte, string, error) {
	f, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", fmt.Errorf("error loading file: %w", err)
	}

	if !f.Type.HasContent() {
		return nil, "", common.NewValidationError("A folder doesn't have content")
	}

	if !f.IsPublic && (requester == nil || requester.ID != f.UserID) {
		return nil, "", common.ErrorNotFound
	}

	ref := f.ContentRef
	if size != 0 {
		if !thumbnails.IsWidth(size) {
			return nil, "", common.ErrorNotFound
		}
		ref = content.VariantRef(ref, size)
	}

	data, err := s.engine.Read(ctx, ref)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", fmt.Errorf("error reading content: %w", err)
	}

	return data, ContentType(f.Name), nil
}
