package domain

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// Subtask is a single step inside a task. IDs are unique within the parent
// task's subtask list.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Reminder carries a spoken reminder time ("5pm tomorrow") and a follow-up
// question to put in the notification ("Are you at the gym?").
type Reminder struct {
	Time     string `json:"time"`
	Question string `json:"question"`
}

// Task is a single to-do item. The ID is assigned exactly once at creation
// and never regenerated on update.
type Task struct {
	ID            string     `json:"id"`
	Description   string     `json:"task"`
	Emoji         string     `json:"emoji,omitempty"`
	Deadline      string     `json:"deadline,omitempty"`
	Priority      Priority   `json:"priority,omitempty"`
	People        []string   `json:"people,omitempty"`
	Organizations []string   `json:"organizations,omitempty"`
	Status        TaskStatus `json:"status"`
	Reminder      *Reminder  `json:"reminder,omitempty"`
	Subtasks      []Subtask  `json:"subtasks,omitempty"`
}

// Category groups tasks under a name. Names are unique within a plan and
// matched by exact string equality, so "Work" and "work" are distinct buckets.
type Category struct {
	Name  string `json:"category"`
	Tasks []Task `json:"tasks"`
}

// Plan is a titled collection of categorized tasks.
type Plan struct {
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Categories []Category `json:"categories"`
}

// TaskIDs returns the set of task identifiers currently in the plan.
func (p *Plan) TaskIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, c := range p.Categories {
		for _, t := range c.Tasks {
			ids[t.ID] = true
		}
	}
	return ids
}

// FindTask returns pointers to the category and task with the given id,
// or nil if absent.
func (p *Plan) FindTask(taskID string) (*Category, *Task) {
	for ci := range p.Categories {
		for ti := range p.Categories[ci].Tasks {
			if p.Categories[ci].Tasks[ti].ID == taskID {
				return &p.Categories[ci], &p.Categories[ci].Tasks[ti]
			}
		}
	}
	return nil, nil
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	out := p
	out.Categories = make([]Category, len(p.Categories))
	for i, c := range p.Categories {
		cc := c
		cc.Tasks = make([]Task, len(c.Tasks))
		for j, t := range c.Tasks {
			cc.Tasks[j] = t.Clone()
		}
		out.Categories[i] = cc
	}
	return out
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	if t.People != nil {
		out.People = append([]string(nil), t.People...)
	}
	if t.Organizations != nil {
		out.Organizations = append([]string(nil), t.Organizations...)
	}
	if t.Reminder != nil {
		r := *t.Reminder
		out.Reminder = &r
	}
	if t.Subtasks != nil {
		out.Subtasks = append([]Subtask(nil), t.Subtasks...)
	}
	return out
}
