package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction is the fixed vocabulary of audited actions.
type ActivityAction string

const (
	ActionLogin          ActivityAction = "LOGIN"
	ActionLoginGoogle    ActivityAction = "LOGIN_GOOGLE"
	ActionRegister       ActivityAction = "REGISTER"
	ActionRegisterGoogle ActivityAction = "REGISTER_GOOGLE"
	ActionCreateLead     ActivityAction = "CREATE_LEAD"
	ActionUpdateLead     ActivityAction = "UPDATE_LEAD"
	ActionDeleteLead     ActivityAction = "DELETE_LEAD"
	ActionAddNote        ActivityAction = "ADD_NOTE"
	ActionDeleteNote     ActivityAction = "DELETE_NOTE"
	ActionImportLeads    ActivityAction = "IMPORT_LEADS"
	ActionExportLeads    ActivityAction = "EXPORT_LEADS"
	ActionUpdateProfile  ActivityAction = "UPDATE_PROFILE"
	ActionCreateUser     ActivityAction = "CREATE_USER"
	ActionUpdateUser     ActivityAction = "UPDATE_USER"
	ActionDeleteUser     ActivityAction = "DELETE_USER"
)

func (a ActivityAction) String() string { return string(a) }

// ActivityLog is an immutable audit record.
type ActivityLog struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Action    ActivityAction
	Details   string
	IPAddress string
	CreatedAt time.Time
	// Actor is nil when the acting user no longer exists.
	Actor *UserRef
}
