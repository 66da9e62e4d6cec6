package domain

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Plan is a batch of items to create from a file.
// Fields are ordered to minimize memory padding.
type Plan struct {
	Tasks []PlanItem
	Epics []PlanEpic
}

// PlanItem is a task or subtask parsed from a plan file.
// Fields are ordered to minimize memory padding.
type PlanItem struct {
	Schedule    *Schedule
	Title       string
	Description string
	Status      Status
}

// PlanEpic is an epic with its subtasks parsed from a plan file.
// Fields are ordered to minimize memory padding.
type PlanEpic struct {
	Title       string
	Description string
	Subtasks    []PlanItem
}

// Size returns the number of items the plan creates.
func (p *Plan) Size() int {
	n := len(p.Tasks) + len(p.Epics)
	for _, e := range p.Epics {
		n += len(e.Subtasks)
	}
	return n
}

type planFile struct {
	Tasks []planItemFile `yaml:"tasks"`
	Epics []planEpicFile `yaml:"epics"`
}

type planItemFile struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Start       string `yaml:"start"`
	Duration    string `yaml:"duration"`
}

type planEpicFile struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Subtasks    []planItemFile `yaml:"subtasks"`
}

// ParsePlan parses a YAML plan file.
//
// Format:
//
//	tasks:
//	  - title: Write report
//	    start: "2024-06-03 09:00"
//	    duration: 1h
//	epics:
//	  - title: Release
//	    subtasks:
//	      - title: Tag
//	        status: done
//
// Start times use the "2006-01-02 15:04" layout in local time, or RFC 3339.
// Unknown keys are rejected.
func ParsePlan(content []byte) (*Plan, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmptyFile
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	var raw planFile
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if len(raw.Tasks) == 0 && len(raw.Epics) == 0 {
		return nil, ErrNoItemsInFile
	}

	plan := &Plan{
		Tasks: make([]PlanItem, 0, len(raw.Tasks)),
		Epics: make([]PlanEpic, 0, len(raw.Epics)),
	}
	for i, t := range raw.Tasks {
		item, err := t.resolve()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		plan.Tasks = append(plan.Tasks, item)
	}
	for i, e := range raw.Epics {
		if strings.TrimSpace(e.Title) == "" {
			return nil, fmt.Errorf("epic %d: %w", i+1, ErrEmptyTitle)
		}
		epic := PlanEpic{
			Title:       e.Title,
			Description: e.Description,
			Subtasks:    make([]PlanItem, 0, len(e.Subtasks)),
		}
		for j, s := range e.Subtasks {
			item, err := s.resolve()
			if err != nil {
				return nil, fmt.Errorf("epic %d subtask %d: %w", i+1, j+1, err)
			}
			epic.Subtasks = append(epic.Subtasks, item)
		}
		plan.Epics = append(plan.Epics, epic)
	}
	return plan, nil
}

func (f planItemFile) resolve() (PlanItem, error) {
	item := PlanItem{
		Title:       f.Title,
		Description: f.Description,
		Status:      StatusNew,
	}
	if strings.TrimSpace(f.Title) == "" {
		return item, ErrEmptyTitle
	}
	if f.Status != "" {
		st, err := ParseStatus(f.Status)
		if err != nil {
			return item, err
		}
		item.Status = st
	}

	if (f.Start == "") != (f.Duration == "") {
		return item, ErrIncompleteSchedule
	}
	if f.Start == "" {
		return item, nil
	}
	start, err := ParseStartTime(f.Start)
	if err != nil {
		return item, err
	}
	d, err := time.ParseDuration(f.Duration)
	if err != nil {
		return item, fmt.Errorf("invalid duration %q: %w", f.Duration, err)
	}
	s, err := NewSchedule(start, d)
	if err != nil {
		return item, err
	}
	item.Schedule = s
	return item, nil
}

// ParseStartTime parses a start time in TimeLayout (local time) or RFC 3339.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(TimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q (want %q)", s, TimeLayout)
	}
	return t, nil
}
