package zonerules

import (
	"testing"
	"time"

	"github.com/ngrash/go-zonerules/localtime"
)

func TestDaySpecDayIn(t *testing.T) {
	cases := []struct {
		spec  DaySpec
		year  int
		month time.Month
		want  int
	}{
		{OnDay(25), 2021, time.March, 25},
		{OnDay(1), 2021, time.March, 1},
		{OnDay(-1), 2021, time.March, 31},
		{OnDay(-1), 2020, time.February, 29},
		{OnDay(-1), 2021, time.February, 28},
		{OnLastDay(), 2021, time.April, 30},
		{OnDay(-28), 2021, time.February, 1},
		{OnLastWeekday(time.Sunday), 2000, time.March, 26},
		{OnLastWeekday(time.Sunday), 2000, time.October, 29},
		{OnLastWeekday(time.Saturday), 2020, time.February, 29},
		{OnNthWeekday(2, time.Sunday), 2007, time.March, 11},
		{OnNthWeekday(1, time.Sunday), 2007, time.November, 4},
		{OnNthWeekday(-1, time.Sunday), 2000, time.March, 26},
	}
	for _, c := range cases {
		if got := c.spec.DayIn(c.year, c.month); got != c.want {
			t.Errorf("(%v).DayIn(%d, %v) = %d, want %d", c.spec, c.year, c.month, got, c.want)
		}
	}
}

func TestDaySpecValidate(t *testing.T) {
	cases := []struct {
		name               string
		spec               DaySpec
		month              time.Month
		startYear, endYear int
		wantErr            bool
	}{
		{"fixed day", OnDay(20), time.March, 2000, 2000, false},
		{"zero value", DaySpec{}, time.March, 2000, 2000, true},
		{"day zero", OnDay(0), time.March, 2000, 2000, true},
		{"day 32", OnDay(32), time.March, 2000, 2000, true},
		{"day -29", OnDay(-29), time.March, 2000, 2000, true},
		{"last day forever", OnLastDay(), time.February, 2000, localtime.MaxYear, false},
		{"feb 29 in leap year", OnDay(29), time.February, 2020, 2020, false},
		{"feb 29 in non-leap year", OnDay(29), time.February, 2021, 2021, true},
		{"feb 29 across range with non-leap year", OnDay(29), time.February, 2020, 2021, true},
		{"feb 29 forever", OnDay(29), time.February, 2000, localtime.MaxYear, true},
		{"feb 28 forever", OnDay(28), time.February, 2000, localtime.MaxYear, false},
		{"last weekday forever", OnLastWeekday(time.Sunday), time.March, 2000, localtime.MaxYear, false},
		{"fourth weekday forever", OnNthWeekday(4, time.Sunday), time.March, 2000, localtime.MaxYear, false},
		{"fifth weekday forever", OnNthWeekday(5, time.Wednesday), time.March, 2000, localtime.MaxYear, true},
		{"fifth weekday existing year", OnNthWeekday(5, time.Wednesday), time.March, 2021, 2021, false},
		{"fifth weekday missing year", OnNthWeekday(5, time.Monday), time.February, 2021, 2021, true},
		{"ordinal zero", OnNthWeekday(0, time.Sunday), time.March, 2000, 2000, true},
		{"ordinal six", OnNthWeekday(6, time.Sunday), time.March, 2000, 2000, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.spec.Validate(c.month, c.startYear, c.endYear)
			if c.wantErr && err == nil {
				t.Errorf("Validate(%v, %d, %d): expected error", c.month, c.startYear, c.endYear)
			}
			if !c.wantErr && err != nil {
				t.Errorf("Validate(%v, %d, %d): %v", c.month, c.startYear, c.endYear, err)
			}
		})
	}
}
