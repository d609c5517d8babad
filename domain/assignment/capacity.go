package assignment

import (
	"assignman/bizerror"
	"assignman/common"
	"assignman/domain"
	"assignman/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// Indefinite ongoing assignments are capacity-checked day by day on weekdays
// over a bounded lookahead from the assignment start, not forever.
const ongoingCheckHorizonYears = 1

const capacityEpsilon = 1e-9

// scheduledHoursOnDate sums the prorated load of the member's detailed and
// ongoing assignments covering date. Weekends carry zero load. The exclude ids
// keep an assignment under re-evaluation out of its own aggregate.
func scheduledHoursOnDate(db *gorm.DB, memberID types.ID, date domain.Date,
	excludeDetailedID, excludeOngoingID types.ID) (float64, error) {

	if date.IsWeekend() {
		return 0, nil
	}

	var detailed []domain.DetailedProjectAssignment
	q := db.Where("member_id = ? AND start_date <= ? AND end_date >= ?", memberID, date.Time(), date.Time())
	if excludeDetailedID != 0 {
		q = q.Where("id != ?", excludeDetailedID)
	}
	if err := q.Find(&detailed).Error; err != nil {
		return 0, err
	}

	total := 0.0
	for i := range detailed {
		total += detailed[i].DailyHours(date)
	}

	var ongoing []domain.OngoingAssignment
	q = db.Where("member_id = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)",
		memberID, date.Time(), date.Time())
	if excludeOngoingID != 0 {
		q = q.Where("id != ?", excludeOngoingID)
	}
	if err := q.Find(&ongoing).Error; err != nil {
		return 0, err
	}
	for i := range ongoing {
		total += ongoing[i].DailyHours(date)
	}

	return total, nil
}

// checkMemberCapacity walks the weekdays of [start, end] and fails on the
// first date where the member's committed hours plus candidateDailyHours would
// exceed the daily capacity. A nil end means indefinite; the walk is then
// bounded to the lookahead horizon.
func checkMemberCapacity(db *gorm.DB, member *domain.Member, start domain.Date, end *domain.Date,
	candidateDailyHours float64, excludeDetailedID, excludeOngoingID types.ID) error {

	if candidateDailyHours <= 0 {
		return nil
	}

	last := start.AddYears(ongoingCheckHorizonYears)
	if end != nil {
		last = *end
	}

	capacity := member.DailyCapacity()
	for d := start; !d.After(last); d = d.AddDays(1) {
		if d.IsWeekend() {
			continue
		}
		committed, err := scheduledHoursOnDate(db, member.ID, d, excludeDetailedID, excludeOngoingID)
		if err != nil {
			return err
		}
		if committed+candidateDailyHours > capacity+capacityEpsilon {
			return &bizerror.CapacityExceededError{MemberID: member.ID, Date: d}
		}
	}
	return nil
}

// ScheduledHoursOnDate returns the member's committed hours on a date.
func ScheduledHoursOnDate(memberID types.ID, date domain.Date) (float64, error) {
	hours, err := scheduledHoursOnDate(persistence.ActiveDataSourceManager.GormDB(), memberID, date, 0, 0)
	if err != nil {
		return 0, err
	}
	return common.Round1(hours), nil
}

// AvailableHoursOnDate returns the member's remaining capacity on a date,
// zero on weekends.
func AvailableHoursOnDate(memberID types.ID, date domain.Date) (float64, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	member := domain.Member{}
	if err := db.Where("id = ?", memberID).First(&member).Error; err != nil {
		return 0, err
	}
	if date.IsWeekend() {
		return 0, nil
	}
	committed, err := scheduledHoursOnDate(db, memberID, date, 0, 0)
	if err != nil {
		return 0, err
	}
	return common.Round1(member.DailyCapacity() - committed), nil
}

// ScheduledHoursForWeek sums the member's committed hours over the week
// starting at weekStart.
func ScheduledHoursForWeek(memberID types.ID, weekStart domain.Date) (float64, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	total := 0.0
	for i := 0; i < 7; i++ {
		d := weekStart.AddDays(i)
		if d.IsWeekend() {
			continue
		}
		hours, err := scheduledHoursOnDate(db, memberID, d, 0, 0)
		if err != nil {
			return 0, err
		}
		total += hours
	}
	return common.Round1(total), nil
}

// TotalScheduledHours sums the raw scheduled hours of every assignment
// overlapping [start, end]: full scheduled hours for rough and detailed
// assignments, weekly hours times the covered week count for ongoing ones.
func TotalScheduledHours(memberID types.ID, start, end domain.Date) (float64, error) {
	if end.Before(start) {
		return 0, bizerror.ErrInvalidDateRange
	}
	db := persistence.ActiveDataSourceManager.GormDB()

	total := 0.0
	var detailed []domain.DetailedProjectAssignment
	if err := db.Where("member_id = ? AND start_date <= ? AND end_date >= ?",
		memberID, end.Time(), start.Time()).Find(&detailed).Error; err != nil {
		return 0, err
	}
	for i := range detailed {
		total += detailed[i].ScheduledHours
	}

	var rough []domain.RoughProjectAssignment
	if err := db.Where("member_id = ? AND start_date <= ? AND end_date >= ?",
		memberID, end.Time(), start.Time()).Find(&rough).Error; err != nil {
		return 0, err
	}
	for i := range rough {
		total += rough[i].ScheduledHours
	}

	weeks := (start.DaysUntil(end) + 6) / 7
	if weeks < 1 {
		weeks = 1
	}
	var ongoing []domain.OngoingAssignment
	if err := db.Where("member_id = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)",
		memberID, end.Time(), start.Time()).Find(&ongoing).Error; err != nil {
		return 0, err
	}
	for i := range ongoing {
		total += ongoing[i].WeeklyScheduledHours * float64(weeks)
	}

	return common.Round1(total), nil
}
