package apierrors

const (
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgTagNotFound        = "tagNotFound"
	MsgTagExists          = "tagExists"
	MsgNoPendingRequest   = "noPendingRequest"
	MsgRequestPending     = "requestPending"
	MsgInvalidCredentials = "invalidCredentials"
	MsgUnauthorized       = "unauthorized"
	MsgForbidden          = "forbidden"
	MsgStorageFailure     = "storageFailure"
	MsgFailListTask       = "errorListTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
)
