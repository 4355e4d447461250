package files

import (
	"context"

	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

// Repository is the persistence facade for file records. It applies no
// policy; ownership and visibility rules live in the file service.
type Repository interface {
	Insert(ctx context.Context, f *models.FileRecord) (*models.FileRecord, error)
	FindByID(ctx context.Context, id string) (*models.FileRecord, error)
	FindByIDAndOwner(ctx context.Context, id, userID string) (*models.FileRecord, error)
	// ListByOwner returns the page window [offset, offset+limit) of the
	// owner's records under parentID, in insertion order.
	ListByOwner(ctx context.Context, userID, parentID string, limit, offset int) ([]*models.FileRecord, error)
	SetPublished(ctx context.Context, id string, isPublic bool) (*models.FileRecord, error)
	Count(ctx context.Context) (int64, error)
}
