package contract

import (
	"context"

	"github.com/KhadijaXD/NoteNova/internal/entity"
	"github.com/KhadijaXD/NoteNova/internal/repository/specification"

	"github.com/google/uuid"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error)
	// UsageCounts aggregates tag usage over one user's notes, most used
	// first.
	UsageCounts(ctx context.Context, userId uuid.UUID) ([]*entity.TagUsage, error)
}
