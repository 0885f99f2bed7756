package chat

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/kly-netizen/infonow-chat/infrastructure"
)

// Validator is the gate every creation request passes before any storage
// work starts. Field rules live on CreateChatRequest tags; cross-field
// rules (group chats carry a name, direct chats never do) are registered
// as a struct-level validation.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterStructValidation(createChatStructLevel, CreateChatRequest{})
	return &Validator{validate: v}
}

func createChatStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateChatRequest)

	switch ChatType(req.Type) {
	case ChatTypeGroup:
		if req.GroupName == nil {
			sl.ReportError(req.GroupName, "group_name", "GroupName", "required_for_group", "")
		}
	case ChatTypeDirect:
		if req.GroupName != nil {
			sl.ReportError(req.GroupName, "group_name", "GroupName", "forbidden_for_direct", "")
		}
		if req.GroupPhoto != nil {
			sl.ReportError(req.GroupPhoto, "group_photo", "GroupPhoto", "forbidden_for_direct", "")
		}
	}
}

// ValidateCreateChat returns ErrValidationFailed wrapped with field-level
// detail so callers can surface which fields were rejected.
func (v *Validator) ValidateCreateChat(req CreateChatRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", infrastructure.ErrValidationFailed, err)
	}
	return nil
}
