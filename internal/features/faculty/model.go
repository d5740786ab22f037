package faculty

import (
	"time"

	common_models "go-dutyleave/internal/common/models"
)

// Faculty is an approver identity. Role is the position in the approval
// chain; Department scopes CC and HOD, while for VP it is a label only.
type Faculty struct {
	ID         string                  `bson:"_id,omitempty" json:"id"`
	Name       string                  `bson:"name" json:"name"`
	Email      string                  `bson:"email" json:"email"`
	Password   string                  `bson:"password" json:"-"`
	Role       common_models.StageRole `bson:"role" json:"role"`
	Department string                  `bson:"department" json:"department"`
	CreatedAt  time.Time               `bson:"createdAt" json:"createdAt"`
}
