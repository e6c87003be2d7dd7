package domain

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusProgress  TaskStatus = "Progress"
	TaskStatusRework    TaskStatus = "Rework"
	TaskStatusCompleted TaskStatus = "Completed"
	TaskStatusCancelled TaskStatus = "Cancelled"
)

// IsTerminal reports whether no further lifecycle transition applies.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusDeclined RequestStatus = "Declined"
)

// FileMeta describes one stored upload. Exactly one task, rework entry
// or request entry owns a stored file at a time.
type FileMeta struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

type CompletionDetails struct {
	CompletedDate string `json:"completedDate,omitempty"`
	CompletedBy   string `json:"completedBy,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// ReworkEntry is one round of "sent back for changes". Its deadline, if
// set, supersedes the task's due date as the effective deadline.
type ReworkEntry struct {
	Comment           string             `json:"comment"`
	Deadline          string             `json:"deadline"`
	Date              string             `json:"date"`
	RequestedBy       string             `json:"requestedBy,omitempty"`
	CompletionDetails *CompletionDetails `json:"completionDetails,omitempty"`
	AttachmentFile    *FileMeta          `json:"attachmentFile,omitempty"`
	ReminderSent      bool               `json:"reminderSent,omitempty"`
}

type ExtensionRequest struct {
	Reason          string        `json:"reason"`
	RequestDate     string        `json:"requestDate"`
	RequestedBy     string        `json:"requestedBy"`
	Status          RequestStatus `json:"status"`
	AttachmentFile  *FileMeta     `json:"attachmentFile,omitempty"`
	ResponseComment string        `json:"responseComment,omitempty"`
	ResponseDate    string        `json:"responseDate,omitempty"`
	DeclinedBy      string        `json:"declinedBy,omitempty"`
	DeclinedDate    string        `json:"declinedDate,omitempty"`
	Feedback        string        `json:"feedback,omitempty"`
}

type CancellationRequest struct {
	Reason         string        `json:"reason"`
	RequestedBy    string        `json:"requestedBy"`
	RequestDate    string        `json:"requestDate"`
	Status         RequestStatus `json:"status"`
	AttachmentFile *FileMeta     `json:"attachmentFile,omitempty"`
	ApprovedDate   string        `json:"approvedDate,omitempty"`
	DeclinedDate   string        `json:"declinedDate,omitempty"`
	Feedback       string        `json:"feedback,omitempty"`
}

type Task struct {
	ID                   int                   `json:"id"`
	Title                string                `json:"title"`
	Description          string                `json:"description,omitempty"`
	Tags                 []string              `json:"tags,omitempty"`
	AssignedTo           string                `json:"assignedTo"`
	DueDate              string                `json:"dueDate"`
	Priority             TaskPriority          `json:"priority"`
	Status               TaskStatus            `json:"status"`
	ReferenceLink        string                `json:"referenceLink,omitempty"`
	File                 *FileMeta             `json:"file,omitempty"`
	AttachmentFile       *FileMeta             `json:"attachmentFile,omitempty"`
	ReworkDetails        []ReworkEntry         `json:"reworkDetails,omitempty"`
	ExtensionRequests    []ExtensionRequest    `json:"extensionRequests,omitempty"`
	CancellationRequests []CancellationRequest `json:"cancellationRequests,omitempty"`
	CompletionDetails    *CompletionDetails    `json:"completionDetails,omitempty"`
	ReminderSent         bool                  `json:"reminderSent,omitempty"`
	CalendarEventID      string                `json:"calendarEventId,omitempty"`
	CreatedAt            string                `json:"createdAt,omitempty"`
}

// EffectiveDeadline returns the deadline currently governing the task:
// the latest rework entry's deadline when one exists, else the due date.
func (t Task) EffectiveDeadline() string {
	for i := len(t.ReworkDetails) - 1; i >= 0; i-- {
		if t.ReworkDetails[i].Deadline != "" {
			return t.ReworkDetails[i].Deadline
		}
	}
	return t.DueDate
}

// PendingExtensionIndex returns the index of the most recent pending
// extension request, or -1 when none is pending.
func (t Task) PendingExtensionIndex() int {
	for i := len(t.ExtensionRequests) - 1; i >= 0; i-- {
		if t.ExtensionRequests[i].Status == RequestStatusPending {
			return i
		}
	}
	return -1
}

// PendingCancellationIndex returns the index of the most recent pending
// cancellation request, or -1 when none is pending.
func (t Task) PendingCancellationIndex() int {
	for i := len(t.CancellationRequests) - 1; i >= 0; i-- {
		if t.CancellationRequests[i].Status == RequestStatusPending {
			return i
		}
	}
	return -1
}

type CreateTaskInput struct {
	Title         string
	Description   string
	Tags          []string
	AssignedTo    string
	DueDate       string
	Priority      TaskPriority
	ReferenceLink string
}

// UpdateTaskInput carries the fields a work submission may change. Nil
// pointers mean "leave unchanged".
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	ReferenceLink     *string
	Tags              []string
	CompletionDetails *CompletionDetails
}
