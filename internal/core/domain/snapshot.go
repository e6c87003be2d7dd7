package domain

// Snapshot is the whole persisted document. Every mutation loads it,
// rewrites it in memory and saves it back wholesale.
type Snapshot struct {
	Users []User   `json:"users"`
	Tasks []Task   `json:"tasks"`
	Tags  []string `json:"tags"`
}

// TaskByID returns a pointer into the snapshot's task slice, or nil.
func (s *Snapshot) TaskByID(id int) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// UserByID returns a pointer into the snapshot's user slice, or nil.
func (s *Snapshot) UserByID(id int) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// NextTaskID is max existing id + 1, starting at 1.
func (s *Snapshot) NextTaskID() int {
	next := 1
	for i := range s.Tasks {
		if s.Tasks[i].ID >= next {
			next = s.Tasks[i].ID + 1
		}
	}
	return next
}
