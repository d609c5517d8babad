package domain_test

import (
	"assignman/domain"
	"encoding/json"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestDate(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should know weekdays and weekends", func(t *testing.T) {
		// 2025-01-08 is a Wednesday
		Expect(domain.NewDate(2025, time.January, 8).IsWeekend()).To(BeFalse())
		Expect(domain.NewDate(2025, time.January, 11).IsWeekend()).To(BeTrue())
		Expect(domain.NewDate(2025, time.January, 12).IsWeekend()).To(BeTrue())
		Expect(domain.NewDate(2025, time.January, 13).IsWeekend()).To(BeFalse())
	})

	t.Run("should add days across month boundaries", func(t *testing.T) {
		d := domain.NewDate(2025, time.January, 30).AddDays(3)
		Expect(d).To(Equal(domain.NewDate(2025, time.February, 2)))
		Expect(domain.NewDate(2025, time.January, 1).DaysUntil(d)).To(Equal(32))
	})

	t.Run("should order dates", func(t *testing.T) {
		a := domain.NewDate(2025, time.January, 8)
		b := domain.NewDate(2025, time.January, 15)
		Expect(a.Before(b)).To(BeTrue())
		Expect(b.After(a)).To(BeTrue())
		Expect(a.Equal(domain.NewDate(2025, time.January, 8))).To(BeTrue())
		Expect(domain.MinDate(a, b)).To(Equal(a))
		Expect(domain.MaxDate(a, b)).To(Equal(b))
	})

	t.Run("should marshal and unmarshal as yyyy-mm-dd", func(t *testing.T) {
		raw, err := json.Marshal(domain.NewDate(2025, time.January, 8))
		Expect(err).To(BeNil())
		Expect(string(raw)).To(Equal(`"2025-01-08"`))

		var d domain.Date
		Expect(json.Unmarshal([]byte(`"2025-03-31"`), &d)).To(BeNil())
		Expect(d).To(Equal(domain.NewDate(2025, time.March, 31)))

		Expect(json.Unmarshal([]byte(`"2025/03/31"`), &d)).ToNot(BeNil())
	})

	t.Run("should count working days inclusively", func(t *testing.T) {
		mon := domain.NewDate(2025, time.January, 6)
		Expect(domain.WorkingDaysBetween(mon, mon.AddDays(2))).To(Equal(3))
		// full week including weekend
		Expect(domain.WorkingDaysBetween(mon, mon.AddDays(6))).To(Equal(5))
		// weekend only
		Expect(domain.WorkingDaysBetween(mon.AddDays(5), mon.AddDays(6))).To(Equal(0))
		// reversed range
		Expect(domain.WorkingDaysBetween(mon.AddDays(3), mon)).To(Equal(0))
	})
}
