package sessions

import (
	"time"

	"varanno/api/models"
	"varanno/api/models/constants"

	"github.com/google/uuid"
)

type Session struct {
	Id         uuid.UUID              `json:"id"`
	Filename   string                 `json:"filename"`
	Format     constants.FileFormat   `json:"format"`
	State      constants.SessionState `json:"state"`
	Message    string                 `json:"message"`
	ToolOutput string                 `json:"toolOutput,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`

	WorkDirectory string                  `json:"-"`
	Records       []*models.VariantRecord `json:"-"`
}

type SessionResponseDTO struct {
	Id           uuid.UUID              `json:"id"`
	Filename     string                 `json:"filename"`
	Format       constants.FileFormat   `json:"format"`
	State        constants.SessionState `json:"state"`
	Message      string                 `json:"message"`
	ToolOutput   string                 `json:"toolOutput,omitempty"`
	VariantCount int                    `json:"variantCount"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func (s Session) ToResponseDTO() SessionResponseDTO {
	return SessionResponseDTO{
		Id:           s.Id,
		Filename:     s.Filename,
		Format:       s.Format,
		State:        s.State,
		Message:      s.Message,
		ToolOutput:   s.ToolOutput,
		VariantCount: len(s.Records),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
