package agenda

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/viniciusmf/gym-management-backend/internal/auditlog"
	"github.com/viniciusmf/gym-management-backend/internal/confirm"
	"github.com/viniciusmf/gym-management-backend/internal/optimistic"
)

// Service is the event mutation controller. It keeps an optimistic local
// mirror of the agenda: every mutation validates against the mirror first,
// applies to it immediately, then commits to the store and either refreshes
// (absorbing server-assigned id/created_at) or reverts.
//
// The mirror is owned by this service and guarded by mu; the store stays the
// single shared authority. Two concurrent mutations racing for one slot are
// settled by the store's partial unique index — the loser rolls back.
type Service struct {
	store    Store
	AuditSvc auditlog.Service

	mu     sync.Mutex
	local  []Event
	loaded bool
}

func NewService(store Store, auditSvc auditlog.Service) *Service {
	return &Service{store: store, AuditSvc: auditSvc}
}

// ===========================
// 📄 List Events (status filter + free-text search)
func (s *Service) Events(ctx context.Context, statusFilter, search string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(ctx); err != nil {
		return nil, fmt.Errorf("could not load events: %w", err)
	}

	needle := strings.ToLower(search)
	out := make([]Event, 0, len(s.local))
	for _, ev := range s.local {
		if statusFilter != "" && statusFilter != "all" && string(ev.Status) != statusFilter {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(ev.Title), needle) &&
			!strings.Contains(strings.ToLower(ev.Responsible), needle) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// ===========================
// 🎯 Create Event
func (s *Service) Create(ctx context.Context, in EventInput, operatorID *uint, ip string) Result {
	res := s.create(ctx, in)
	countMutation("create", res.Code)
	s.logAction(ctx, operatorID, "AGENDA_EVENT_CREATED", ip, res, map[string]interface{}{
		"title": in.Title,
		"date":  in.Date,
		"time":  in.Time,
	})
	return res
}

func (s *Service) create(ctx context.Context, in EventInput) Result {
	title, date, timeOfDay, responsible, res := validateInput(in)
	if !res.OK() {
		return res
	}
	status, err := parseStatus(in.Status, StatusActive)
	if err != nil {
		return rejectedValidation(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return rolledBackTransport()
	}

	if status == StatusActive && HasConflict(s.local, date, timeOfDay, 0) {
		return rejectedConflict()
	}

	ev := Event{
		Title:       title,
		EventDate:   date,
		EventTime:   timeOfDay,
		Responsible: responsible,
		Status:      status,
	}

	_, err = optimistic.Apply(&s.local, cloneEvents,
		func(local *[]Event) { *local = append(*local, ev) },
		func() error {
			if err := s.recheckSlot(ctx, status, date, timeOfDay, 0); err != nil {
				return err
			}
			return s.store.Insert(ctx, &ev)
		},
	)
	if err != nil {
		return classifyRemoteError(err)
	}

	s.absorbStoreLocked(ctx)
	return committed("event created successfully", &ev)
}

// ===========================
// 🛠 Edit Event (any field; conflict check excludes own id)
func (s *Service) Edit(ctx context.Context, id uint, in EventInput, operatorID *uint, ip string) Result {
	res := s.edit(ctx, id, in)
	countMutation("edit", res.Code)
	s.logAction(ctx, operatorID, "AGENDA_EVENT_UPDATED", ip, res, map[string]interface{}{
		"event_id": id,
		"title":    in.Title,
	})
	return res
}

func (s *Service) edit(ctx context.Context, id uint, in EventInput) Result {
	title, date, timeOfDay, responsible, res := validateInput(in)
	if !res.OK() {
		return res
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return rolledBackTransport()
	}

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return rejectedValidation("event not found")
	}
	current := s.local[idx]

	status, err := parseStatus(in.Status, current.Status)
	if err != nil {
		return rejectedValidation(err.Error())
	}
	// The deny transition is one-way; there is no approve action.
	if current.Status == StatusDenied && status == StatusActive {
		return rejectedValidation("a denied event cannot be reactivated")
	}

	if status == StatusActive && HasConflict(s.local, date, timeOfDay, id) {
		return rejectedConflict()
	}

	updated := current
	updated.Title = title
	updated.EventDate = date
	updated.EventTime = timeOfDay
	updated.Responsible = responsible
	updated.Status = status

	_, err = optimistic.Apply(&s.local, cloneEvents,
		func(local *[]Event) { (*local)[idx] = updated },
		func() error {
			if err := s.recheckSlot(ctx, status, date, timeOfDay, id); err != nil {
				return err
			}
			return s.store.Update(ctx, &updated)
		},
	)
	if err != nil {
		return classifyRemoteError(err)
	}

	s.absorbStoreLocked(ctx)
	return committed("event updated successfully", &updated)
}

// ===========================
// 🟠 Move Event (drag to a new date/time)
func (s *Service) Move(ctx context.Context, id uint, in MoveInput, operatorID *uint, ip string) Result {
	res := s.move(ctx, id, in)
	countMutation("move", res.Code)
	s.logAction(ctx, operatorID, "AGENDA_EVENT_MOVED", ip, res, map[string]interface{}{
		"event_id": id,
		"date":     in.Date,
		"time":     in.Time,
	})
	return res
}

func (s *Service) move(ctx context.Context, id uint, in MoveInput) Result {
	if in.Date == "" {
		return rejectedValidation("date is required")
	}
	if in.Time == "" {
		return rejectedValidation("time is required")
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return rejectedValidation(err.Error())
	}
	timeOfDay, err := NormalizeTime(in.Time)
	if err != nil {
		return rejectedValidation(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return rolledBackTransport()
	}

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return rejectedValidation("event not found")
	}
	current := s.local[idx]

	if current.Status == StatusActive && HasConflict(s.local, date, timeOfDay, id) {
		// Rejected before any store write; the caller reverts the
		// dragged position from its pre-move snapshot.
		return rejectedConflict()
	}

	_, err = optimistic.Apply(&s.local, cloneEvents,
		func(local *[]Event) {
			(*local)[idx].EventDate = date
			(*local)[idx].EventTime = timeOfDay
		},
		func() error {
			if err := s.recheckSlot(ctx, current.Status, date, timeOfDay, id); err != nil {
				return err
			}
			return s.store.UpdateSlot(ctx, id, date, timeOfDay)
		},
	)
	if err != nil {
		return classifyRemoteError(err)
	}

	s.absorbStoreLocked(ctx)
	moved := current
	moved.EventDate = date
	moved.EventTime = timeOfDay
	return committed("event moved successfully", &moved)
}

// ===========================
// 🚫 Deny Event (active → denied, one-way, never conflict-checked)
func (s *Service) Deny(ctx context.Context, id uint, operatorID *uint, ip string) Result {
	res := s.deny(ctx, id)
	countMutation("deny", res.Code)
	s.logAction(ctx, operatorID, "AGENDA_EVENT_DENIED", ip, res, map[string]interface{}{
		"event_id": id,
	})
	return res
}

func (s *Service) deny(ctx context.Context, id uint) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return rolledBackTransport()
	}

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return rejectedValidation("event not found")
	}

	// Denying never creates a collision, so the conflict detector is
	// deliberately not consulted.
	_, err := optimistic.Apply(&s.local, cloneEvents,
		func(local *[]Event) { (*local)[idx].Status = StatusDenied },
		func() error { return s.store.UpdateStatus(ctx, id, StatusDenied) },
	)
	if err != nil {
		return classifyRemoteError(err)
	}

	denied := s.local[idx]
	s.absorbStoreLocked(ctx)
	return committed("event denied", &denied)
}

// ===========================
// ❌ Delete Event (always behind the confirmation port)
func (s *Service) Delete(ctx context.Context, id uint, conf confirm.Confirmer, operatorID *uint, ip string) Result {
	res := s.delete(ctx, id, conf)
	countMutation("delete", res.Code)
	if res.Code != ResultDeclined {
		s.logAction(ctx, operatorID, "AGENDA_EVENT_DELETED", ip, res, map[string]interface{}{
			"event_id": id,
		})
	}
	return res
}

func (s *Service) delete(ctx context.Context, id uint, conf confirm.Confirmer) Result {
	if conf == nil || !conf.Confirm("are you sure you want to delete this event?") {
		return declined()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return rolledBackTransport()
	}

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return rejectedValidation("event not found")
	}

	_, err := optimistic.Apply(&s.local, cloneEvents,
		func(local *[]Event) {
			*local = append((*local)[:idx:idx], (*local)[idx+1:]...)
		},
		func() error { return s.store.Delete(ctx, id) },
	)
	if err != nil {
		return classifyRemoteError(err)
	}

	s.absorbStoreLocked(ctx)
	return committed("event deleted", nil)
}

// ===========================
// internal helpers

func validateInput(in EventInput) (title string, date time.Time, timeOfDay, responsible string, res Result) {
	res = Result{Code: ResultCommitted}
	switch {
	case strings.TrimSpace(in.Title) == "":
		return "", time.Time{}, "", "", rejectedValidation("title is required")
	case in.Date == "":
		return "", time.Time{}, "", "", rejectedValidation("date is required")
	case in.Time == "":
		return "", time.Time{}, "", "", rejectedValidation("time is required")
	case strings.TrimSpace(in.Responsible) == "":
		return "", time.Time{}, "", "", rejectedValidation("responsible is required")
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return "", time.Time{}, "", "", rejectedValidation(err.Error())
	}
	timeOfDay, err = NormalizeTime(in.Time)
	if err != nil {
		return "", time.Time{}, "", "", rejectedValidation(err.Error())
	}

	return strings.TrimSpace(in.Title), date, timeOfDay, strings.TrimSpace(in.Responsible), res
}

func parseStatus(raw string, fallback Status) (Status, error) {
	switch raw {
	case "":
		return fallback, nil
	case string(StatusActive):
		return StatusActive, nil
	case string(StatusDenied):
		return StatusDenied, nil
	default:
		return "", errors.New("invalid status. Use active or denied")
	}
}

// recheckSlot closes the race window between the local conflict check and the
// commit: the authoritative remote set is consulted one last time before the
// write. The store's unique index still backstops anything that slips past.
func (s *Service) recheckSlot(ctx context.Context, status Status, date time.Time, timeOfDay string, excludeID uint) error {
	if status != StatusActive {
		return nil
	}
	remote, err := s.store.FetchAll(ctx)
	if err != nil {
		return err
	}
	if HasConflict(remote, date, timeOfDay, excludeID) {
		return ErrSlotTaken
	}
	return nil
}

func (s *Service) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.refreshLocked(ctx)
}

func (s *Service) refreshLocked(ctx context.Context) error {
	events, err := s.store.FetchAll(ctx)
	if err != nil {
		return err
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !sameDay(events[i].EventDate, events[j].EventDate) {
			return events[i].EventDate.Before(events[j].EventDate)
		}
		return events[i].EventTime < events[j].EventTime
	})
	s.local = events
	s.loaded = true
	return nil
}

// absorbStoreLocked re-reads the full event list after a commit so the mirror
// picks up server-assigned fields (id, created_at). If the refresh fails the
// mirror is marked stale and reloaded on the next operation.
func (s *Service) absorbStoreLocked(ctx context.Context) {
	if err := s.refreshLocked(ctx); err != nil {
		s.loaded = false
	}
}

func (s *Service) indexOfLocked(id uint) int {
	for i := range s.local {
		if s.local[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneEvents(events []Event) []Event {
	return append([]Event(nil), events...)
}

func classifyRemoteError(err error) Result {
	if errors.Is(err, ErrSlotTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return rolledBackConflict()
	}
	return rolledBackTransport()
}

func (s *Service) logAction(ctx context.Context, operatorID *uint, action, ip string, res Result, details map[string]interface{}) {
	if s.AuditSvc == nil {
		return
	}
	status := "success"
	if !res.OK() {
		status = "failure"
		details["error"] = res.Message
	}
	s.AuditSvc.LogAction(ctx, operatorID, action, details, ip, status)
}
