package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/viniciusmf/gym-management-backend/internal/auditlog"
	"github.com/viniciusmf/gym-management-backend/internal/confirm"
	"github.com/viniciusmf/gym-management-backend/utils"
)

var (
	ErrNoSession      = errors.New("no attendance session loaded. Load a date first")
	ErrNothingToSave  = errors.New("there are no attendance changes to save")
	weeklyCacheTTL    = 5 * time.Minute
	weeklyCachePrefix = "attendance:weekly:"
)

// Service keeps one working session per operator, so two staff members
// marking different classes never step on each other's unsaved edits. The
// store is only touched on load and on save; saving runs the reconciler.
type Service struct {
	store      Store
	reconciler *Reconciler
	AuditSvc   auditlog.Service
	log        *logrus.Logger

	mu       sync.Mutex
	sessions map[uint]*Session
}

func NewService(store Store, reconciler *Reconciler, auditSvc auditlog.Service, log *logrus.Logger) *Service {
	return &Service{
		store:      store,
		reconciler: reconciler,
		AuditSvc:   auditSvc,
		log:        log,
		sessions:   make(map[uint]*Session),
	}
}

// ===========================
// 📄 LoadDay opens (or switches to) a session for one calendar day.
// Switching away from a dirty session is gated by the confirmer; a declined
// switch keeps the current session untouched.
func (s *Service) LoadDay(ctx context.Context, operatorID uint, date string, conf confirm.Confirmer) (SessionState, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return SessionState{}, errors.New("invalid date format. Use YYYY-MM-DD")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.sessions[operatorID]; ok {
		if sameCalendarDay(cur.Day(), day) {
			return cur.State(), nil
		}
		if err := cur.CanLeave(conf); err != nil {
			return cur.State(), err
		}
	}

	marks, err := s.store.FetchByDate(ctx, day)
	if err != nil {
		return SessionState{}, fmt.Errorf("could not load attendance: %w", err)
	}
	registered := make([]string, 0, len(marks))
	for _, mark := range marks {
		registered = append(registered, mark.MemberID)
	}

	session := NewSession(day, registered)
	s.sessions[operatorID] = session
	return session.State(), nil
}

// ===========================
// 🎯 Toggle flips one member's presence in the operator's session.
func (s *Service) Toggle(operatorID uint, memberID string) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[operatorID]
	if !ok {
		return SessionState{}, ErrNoSession
	}
	session.Toggle(memberID)
	return session.State(), nil
}

// ===========================
// 🛠 Save reconciles the session's desired set against the store. On success
// the session is clean again and the weekly summary cache is invalidated.
func (s *Service) Save(ctx context.Context, operatorID uint, ip string) (SessionState, Plan, error) {
	s.mu.Lock()
	session, ok := s.sessions[operatorID]
	if !ok {
		s.mu.Unlock()
		return SessionState{}, Plan{}, ErrNoSession
	}
	if !session.Dirty() {
		state := session.State()
		s.mu.Unlock()
		return state, Plan{}, ErrNothingToSave
	}
	day := session.Day()
	desired := session.Desired()
	gen := session.Generation()
	s.mu.Unlock()

	// The store round-trip runs off the lock so a slow save never blocks
	// other operators' toggles and loads.
	plan, err := s.reconciler.Reconcile(ctx, day, desired)
	s.logSave(ctx, operatorID, day, plan, ip, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.sessions[operatorID] // never removed, at worst replaced by LoadDay
	if err != nil {
		// Some marks may have landed; the session stays dirty and the
		// next save re-diffs against whatever is now registered.
		return cur.State(), plan, err
	}

	// Only the exact snapshot that was persisted counts as saved. Toggles
	// that raced in during the reconcile keep the session dirty.
	if cur == session && cur.Generation() == gen {
		cur.MarkSaved()
	}
	s.invalidateWeekly(ctx, day)
	return cur.State(), plan, nil
}

// ===========================
// 📊 WeeklySummary returns per-day totals for the Sunday–Saturday week that
// contains today, cached briefly in Redis.
func (s *Service) WeeklySummary(ctx context.Context, today time.Time) ([]DaySummary, error) {
	sunday, saturday := WeekRange(today)
	cacheKey := weeklyCachePrefix + sunday.Format("2006-01-02")

	if raw, err := utils.CacheGet(ctx, cacheKey); err == nil && len(raw) > 0 {
		var cached []DaySummary
		if json.Unmarshal(raw, &cached) == nil {
			return cached, nil
		}
	}

	counts, err := s.store.CountByDay(ctx, sunday, saturday.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("could not build weekly summary: %w", err)
	}

	summary := make([]DaySummary, 0, 7)
	for d := 0; d < 7; d++ {
		day := sunday.AddDate(0, 0, d)
		key := day.Format("2006-01-02")
		summary = append(summary, DaySummary{
			Date:    key,
			Weekday: day.Weekday().String(),
			Total:   counts[key],
		})
	}

	if payload, err := json.Marshal(summary); err == nil {
		if err := utils.CacheSet(ctx, cacheKey, payload, weeklyCacheTTL); err != nil {
			s.log.WithError(err).Debug("weekly summary not cached")
		}
	}
	return summary, nil
}

func (s *Service) invalidateWeekly(ctx context.Context, day time.Time) {
	sunday, _ := WeekRange(day)
	if err := utils.CacheDelete(ctx, weeklyCachePrefix+sunday.Format("2006-01-02")); err != nil {
		s.log.WithError(err).Debug("weekly summary cache not invalidated")
	}
}

func (s *Service) logSave(ctx context.Context, operatorID uint, day time.Time, plan Plan, ip string, saveErr error) {
	if s.AuditSvc == nil {
		return
	}
	status := "success"
	details := map[string]interface{}{
		"date":    day.Format("2006-01-02"),
		"created": len(plan.ToCreate),
		"deleted": len(plan.ToDelete),
	}
	if saveErr != nil {
		status = "failure"
		details["error"] = saveErr.Error()
	}
	opID := operatorID
	s.AuditSvc.LogAction(ctx, &opID, "ATTENDANCE_SAVED", details, ip, status)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
