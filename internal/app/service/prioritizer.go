package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
)

// Per-tag weights for the base score. Unknown tags count tagDefaultWeight.
var tagComplexityWeights = map[string]int{
	"backend":     5,
	"database":    5,
	"integration": 5,
	"api":         4,
	"frontend":    4,
	"security":    4,
	"testing":     3,
	"design":      3,
	"docs":        2,
}

const tagDefaultWeight = 3

// Per-tag [0,1] factors for the refinement pass. Unknown tags count
// tagDefaultComplexity.
var tagComplexityFactors = map[string]float64{
	"backend":     0.9,
	"database":    0.9,
	"integration": 0.9,
	"api":         0.7,
	"frontend":    0.7,
	"security":    0.8,
	"testing":     0.5,
	"design":      0.4,
	"docs":        0.2,
}

const tagDefaultComplexity = 0.5

// PrioritizedTask is an advisory annotation; the task's own priority
// field is never overwritten.
type PrioritizedTask struct {
	TaskID              int                 `json:"taskId"`
	AISuggestedPriority domain.TaskPriority `json:"aiSuggestedPriority"`
	Explanation         string              `json:"explanation"`
}

// Prioritizer scores tasks deterministically from deadline proximity,
// status, assignee workload and tag complexity.
type Prioritizer struct {
	clock ports.Clock
}

func NewPrioritizer(clock ports.Clock) *Prioritizer {
	return &Prioritizer{clock: clock}
}

func (p *Prioritizer) PrioritizeTasks(tasks []domain.Task, _ []domain.User) []PrioritizedTask {
	results := make([]PrioritizedTask, 0, len(tasks))
	for _, task := range tasks {
		results = append(results, p.prioritize(task, tasks))
	}
	return results
}

func (p *Prioritizer) prioritize(task domain.Task, all []domain.Task) PrioritizedTask {
	days := p.daysUntilDeadline(task)

	score := 0
	switch {
	case days <= 3:
		score += 30
	case days <= 7:
		score += 20
	case days <= 14:
		score += 10
	}

	switch task.Status {
	case domain.TaskStatusRework:
		score += 35
	case domain.TaskStatusPending:
		score += 25
	case domain.TaskStatusProgress:
		score += 15
	}

	for _, tag := range task.Tags {
		if w, ok := tagComplexityWeights[strings.ToLower(tag)]; ok {
			score += w
		} else {
			score += tagDefaultWeight
		}
	}

	base := 1
	switch {
	case score >= 50:
		base = 3
	case score >= 30:
		base = 2
	}

	deadlineFactor := deadlineProximityFactor(days)
	workloadFactor := 0.4
	if openTaskCount(all, task.AssignedTo) > 3 {
		workloadFactor = 0.8
	}
	complexityFactor := maxTagComplexity(task.Tags)

	refined := float64(base) + 0.4*deadlineFactor + 0.3*workloadFactor + 0.3*complexityFactor

	suggested := domain.PriorityLow
	switch {
	case refined >= 2.7:
		suggested = domain.PriorityHigh
	case refined >= 1.7:
		suggested = domain.PriorityMedium
	}

	return PrioritizedTask{
		TaskID:              task.ID,
		AISuggestedPriority: suggested,
		Explanation: fmt.Sprintf(
			"base score %d (due in %d days, status %s), refined %.2f from deadline %.1f, workload %.1f, complexity %.1f",
			score, days, task.Status, refined, deadlineFactor, workloadFactor, complexityFactor,
		),
	}
}

func (p *Prioritizer) daysUntilDeadline(task domain.Task) int {
	deadline := deadlineDate(task.EffectiveDeadline())
	due, err := time.Parse(dateLayout, deadline)
	if err != nil {
		// No usable deadline: treat as far out.
		return 365
	}
	today, _ := time.Parse(dateLayout, p.clock.Now().Format(dateLayout))
	return int(due.Sub(today).Hours() / 24)
}

func deadlineProximityFactor(days int) float64 {
	switch {
	case days <= 3:
		return 1.0
	case days <= 7:
		return 0.7
	case days <= 14:
		return 0.4
	default:
		return 0.1
	}
}

func openTaskCount(tasks []domain.Task, assignedTo string) int {
	count := 0
	for _, t := range tasks {
		if t.AssignedTo != assignedTo {
			continue
		}
		if t.Status == domain.TaskStatusPending || t.Status == domain.TaskStatusRework {
			count++
		}
	}
	return count
}

func maxTagComplexity(tags []string) float64 {
	if len(tags) == 0 {
		return tagDefaultComplexity
	}
	max := 0.0
	for _, tag := range tags {
		factor, ok := tagComplexityFactors[strings.ToLower(tag)]
		if !ok {
			factor = tagDefaultComplexity
		}
		if factor > max {
			max = factor
		}
	}
	return max
}
