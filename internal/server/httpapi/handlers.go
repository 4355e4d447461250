package httpapi

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/pagination"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filekeeper/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
)

// UserAPI is the account and session surface used by the handlers.
type UserAPI interface {
	TokenResolver
	RegisterUser(ctx context.Context, email, password string) (*models.User, error)
	AuthenticateBasic(ctx context.Context, email, password string) (*models.User, error)
	IssueToken(ctx context.Context, user *models.User) (string, error)
	RevokeToken(ctx context.Context, token string) error
}

// FileAPI is the file surface used by the handlers.
type FileAPI interface {
	CreateFile(ctx context.Context, user *models.User, in services.CreateFileInput) (*models.FileRecord, error)
	GetFile(ctx context.Context, user *models.User, id string) (*models.FileRecord, error)
	ListFiles(ctx context.Context, user *models.User, parentID string, page int) ([]*models.FileRecord, error)
	SetPublish(ctx context.Context, user *models.User, id string, isPublic bool) (*models.FileRecord, error)
	GetData(ctx context.Context, requester *models.User, id string, size int) ([]byte, string, error)
}

// StatusAPI reports backend liveness and record counts.
type StatusAPI interface {
	Status(ctx context.Context) services.Status
	Stats(ctx context.Context) (repomanager.Counts, error)
}

type Handlers struct {
	users  UserAPI
	files  FileAPI
	status StatusAPI
	logger logging.Logger
}

func NewHandlers(users UserAPI, files FileAPI, status StatusAPI, logger logging.Logger) *Handlers {
	return &Handlers{
		users:  users,
		files:  files,
		status: status,
		logger: logger.With("module", "handlers"),
	}
}

// decodeBody unmarshals a JSON body into dst. An empty body leaves dst at its
// zero value so that field-level validation decides the message.
func decodeBody(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, dst); err != nil {
		return common.NewValidationError("Invalid JSON")
	}
	return nil
}

func (h *Handlers) PostUser(c *fiber.Ctx) error {
	var req userRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.RegisterUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse{ID: user.ID, Email: user.Email})
}

func (h *Handlers) Connect(c *fiber.Ctx) error {
	email, password, ok := basicCredentials(c.Get(common.AuthorizationHeaderName))
	if !ok {
		return common.ErrorUnauthorized
	}

	ctx := c.UserContext()
	user, err := h.users.AuthenticateBasic(ctx, email, password)
	if err != nil {
		return err
	}
	if user == nil {
		h.logger.Warn(ctx, "failed login", "ip", c.IP())
		return common.ErrorUnauthorized
	}

	token, err := h.users.IssueToken(ctx, user)
	if err != nil {
		return err
	}

	return c.JSON(tokenResponse{Token: token})
}

func (h *Handlers) Disconnect(c *fiber.Ctx) error {
	if err := h.users.RevokeToken(c.UserContext(), c.Get(common.TokenHeaderName)); err != nil {
		return err
	}

	c.Response().Header.SetNoDefaultContentType(true)
	c.Response().ResetBody()
	c.Status(fiber.StatusNoContent)
	return nil
}

func (h *Handlers) PostFile(c *fiber.Ctx) error {
	var req createFileRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	f, err := h.files.CreateFile(c.UserContext(), currentUser(c), services.CreateFileInput{
		Name:     req.Name,
		Type:     req.Type,
		Data:     req.Data,
		ParentID: normalizeParent(string(req.ParentID)),
		IsPublic: bool(req.IsPublic),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toFileResponse(f))
}

func (h *Handlers) GetFile(c *fiber.Ctx) error {
	f, err := h.files.GetFile(c.UserContext(), currentUser(c), canonicalID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(toFileResponse(f))
}

func (h *Handlers) ListFiles(c *fiber.Ctx) error {
	parentID := normalizeParent(c.Query("parentId"))
	page := pagination.ResolvePage(c.Query("page"))

	list, err := h.files.ListFiles(c.UserContext(), currentUser(c), parentID, page)
	if err != nil {
		return err
	}
	return c.JSON(toFileResponses(list))
}

func (h *Handlers) Publish(c *fiber.Ctx) error {
	return h.setPublish(c, true)
}

func (h *Handlers) Unpublish(c *fiber.Ctx) error {
	return h.setPublish(c, false)
}

func (h *Handlers) setPublish(c *fiber.Ctx, isPublic bool) error {
	f, err := h.files.SetPublish(c.UserContext(), currentUser(c), canonicalID(c.Params("id")), isPublic)
	if err != nil {
		return err
	}
	return c.JSON(toFileResponse(f))
}

// GetData streams the raw bytes. An unparsable size is reported like an
// unknown one.
func (h *Handlers) GetData(c *fiber.Ctx) error {
	size := 0
	if raw := strings.TrimSpace(c.Query("size")); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil {
			return common.ErrorNotFound
		}
		size = n
	}

	data, contentType, err := h.files.GetData(c.UserContext(), currentUser(c), canonicalID(c.Params("id")), size)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

func (h *Handlers) Status(c *fiber.Ctx) error {
	st := h.status.Status(c.UserContext())
	return c.JSON(statusResponse{Redis: st.Redis, DB: st.DB})
}

func (h *Handlers) Stats(c *fiber.Ctx) error {
	counts, err := h.status.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(statsResponse{Users: counts.Users, Files: counts.Files})
}
