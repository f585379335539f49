package models

type AccountingAction string

const (
	AccountingActionSubmit  AccountingAction = "SUBMIT"
	AccountingActionApprove AccountingAction = "APPROVE"
	AccountingActionReject  AccountingAction = "REJECT"
	AccountingActionLock    AccountingAction = "LOCK"
)

type AccountingTransitionRequest struct {
	Action AccountingAction `json:"action" validate:"required,oneof=SUBMIT APPROVE REJECT LOCK"`
	Reason *string          `json:"reason,omitempty" validate:"omitempty,max=500"`
	Actor  ActorRequest     `json:"actor" validate:"required"`
}

type JobStatusRequest struct {
	Actor ActorRequest `json:"actor" validate:"required"`
}

type ActorRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	UserName string `json:"user_name" validate:"required,max=255"`
	UserRole string `json:"user_role" validate:"required,max=50"`
}
