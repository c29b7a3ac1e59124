package inquiries

import "time"

const (
	StatusNew       = "new"
	StatusReviewing = "reviewing"
	StatusQualified = "qualified"
	StatusWon       = "won"
	StatusLost      = "lost"

	TopicConsulting = "consulting"
	TopicPricing    = "pricing"
	TopicOther      = "other"
)

var validStatuses = map[string]struct{}{
	StatusNew:       {},
	StatusReviewing: {},
	StatusQualified: {},
	StatusWon:       {},
	StatusLost:      {},
}

func IsValidStatus(value string) bool {
	_, ok := validStatuses[value]
	return ok
}

// Inquiry is a consulting or pricing request submitted from the public site.
type Inquiry struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Company   string    `bson:"company,omitempty" json:"company,omitempty"`
	Topic     string    `bson:"topic" json:"topic"`
	Budget    string    `bson:"budget,omitempty" json:"budget,omitempty"`
	Message   string    `bson:"message" json:"message"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company"`
	Topic   string `json:"topic" validate:"omitempty,oneof=consulting pricing other"`
	Budget  string `json:"budget"`
	Message string `json:"message" validate:"required"`
}

type AdminStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=new reviewing qualified won lost"`
}

type ListFilter struct {
	Status string
	Topic  string
}
