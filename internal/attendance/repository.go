package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Store is the attendance side of the event-store collaborator.
type Store interface {
	FetchByDate(ctx context.Context, day time.Time) ([]Attendance, error)
	Insert(ctx context.Context, memberID string, day time.Time) error
	DeleteByMemberAndDay(ctx context.Context, memberID string, day time.Time) error
	CountByDay(ctx context.Context, from, to time.Time) (map[string]int, error)
}

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 📄 Fetch marks for one day
func (r *Repository) FetchByDate(ctx context.Context, day time.Time) ([]Attendance, error) {
	from, to := DayRange(day)
	var marks []Attendance
	err := r.DB.WithContext(ctx).
		Where("check_in_date >= ? AND check_in_date < ?", from, to).
		Find(&marks).Error
	return marks, err
}

// ===========================
// 🎯 Insert one mark
func (r *Repository) Insert(ctx context.Context, memberID string, day time.Time) error {
	mark := &Attendance{
		MemberID:    memberID,
		CheckInDate: CanonicalCheckIn(day),
	}
	return r.DB.WithContext(ctx).Create(mark).Error
}

// ===========================
// ❌ Delete the mark for (member, day)
func (r *Repository) DeleteByMemberAndDay(ctx context.Context, memberID string, day time.Time) error {
	from, to := DayRange(day)
	return r.DB.WithContext(ctx).
		Where("member_id = ? AND check_in_date >= ? AND check_in_date < ?", memberID, from, to).
		Delete(&Attendance{}).Error
}

// ===========================
// 📊 Per-day counts over a range (weekly summary)
func (r *Repository) CountByDay(ctx context.Context, from, to time.Time) (map[string]int, error) {
	var rows []struct {
		Day   time.Time
		Total int
	}
	err := r.DB.WithContext(ctx).
		Model(&Attendance{}).
		Select("check_in_date AS day, COUNT(*) AS total").
		Where("check_in_date >= ? AND check_in_date < ?", from, to).
		Group("check_in_date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Day.Format("2006-01-02")] += row.Total
	}
	return counts, nil
}
