package httpapi

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

type userRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// looseString accepts a JSON string or number.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*s = ""
		return nil
	}
	str, err := cast.ToStringE(v)
	if err != nil {
		return err
	}
	*s = looseString(str)
	return nil
}

// looseBool accepts true/false, "true"/"false" and 0/1.
type looseBool bool

func (b *looseBool) UnmarshalJSON(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	if v == nil {
		*b = false
		return nil
	}
	val, err := cast.ToBoolE(v)
	if err != nil {
		return err
	}
	*b = looseBool(val)
	return nil
}

type createFileRequest struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Data     string      `json:"data"`
	ParentID looseString `json:"parentId"`
	IsPublic looseBool   `json:"isPublic"`
}

type fileResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID any    `json:"parentId"`
}

type statusResponse struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

type statsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// toFileResponse renders root as the number 0 and other parents as strings.
func toFileResponse(f *models.FileRecord) fileResponse {
	var parent any = f.ParentID
	if f.IsRoot() {
		parent = 0
	}
	return fileResponse{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     string(f.Type),
		IsPublic: f.IsPublic,
		ParentID: parent,
	}
}

func toFileResponses(records []*models.FileRecord) []fileResponse {
	return lo.Map(records, func(f *models.FileRecord, _ int) fileResponse {
		return toFileResponse(f)
	})
}

// normalizeParent maps the accepted spellings of root onto models.RootID.
func normalizeParent(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.RootID
	}
	return canonicalID(raw)
}

// canonicalID rewrites a decimal id like "007" as "7" so that every record
// store sees the same spelling. Anything else is passed through and simply
// matches nothing.
func canonicalID(raw string) string {
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}
	return strconv.FormatInt(n, 10)
}
