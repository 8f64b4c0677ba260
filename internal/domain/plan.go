package domain

import "sort"

// WeeklyPlan is a weekly plan priced by calendar days: the installment is
// five business days' worth of the daily rate.
type WeeklyPlan struct {
	Label        string  `json:"label"`
	CalendarDays int     `json:"calendar_days"`
	Factor       float64 `json:"factor"`
}

// PeriodPlan is a biweekly or monthly plan whose label is the number of periods.
type PeriodPlan struct {
	Label  string  `json:"label"`
	Factor float64 `json:"factor"`
}

// Plan is the result of a plan table lookup. Exactly one of Weekly and
// Period is set.
type Plan struct {
	Weekly *WeeklyPlan
	Period *PeriodPlan
}

func (p Plan) Factor() float64 {
	if p.Weekly != nil {
		return p.Weekly.Factor
	}
	if p.Period != nil {
		return p.Period.Factor
	}
	return 0
}

// The factors below are the ones already-issued loans were priced with and
// must not change.
var weeklyPlans = map[string]WeeklyPlan{
	"11":   {Label: "11", CalendarDays: 55, Factor: 1.92},
	"14.2": {Label: "14.2", CalendarDays: 72, Factor: 2.16},
	"22":   {Label: "22", CalendarDays: 110, Factor: 2.64},
	"32":   {Label: "32", CalendarDays: 160, Factor: 2.88},
	"40":   {Label: "40", CalendarDays: 210, Factor: 3.12},
	"48":   {Label: "48", CalendarDays: 240, Factor: 3.375},
}

var periodPlans = map[Frequency]map[string]PeriodPlan{
	FrequencyBiweekly: {
		"6":  {Label: "6", Factor: 1.92},
		"7":  {Label: "7", Factor: 2.16},
		"11": {Label: "11", Factor: 2.64},
		"16": {Label: "16", Factor: 2.88},
		"20": {Label: "20", Factor: 3.12},
		"24": {Label: "24", Factor: 3.375},
	},
	FrequencyMonthly: {
		"4":  {Label: "4", Factor: 2.16},
		"6":  {Label: "6", Factor: 2.64},
		"8":  {Label: "8", Factor: 2.88},
		"10": {Label: "10", Factor: 3.12},
		"12": {Label: "12", Factor: 3.375},
	},
}

// LookupPlan finds the fixed plan for a frequency and term label. Labels are
// matched as given, so "11" and "11.0" are different keys.
func LookupPlan(freq Frequency, label string) (Plan, bool) {
	if freq == FrequencyWeekly {
		p, ok := weeklyPlans[label]
		if !ok {
			return Plan{}, false
		}
		return Plan{Weekly: &p}, true
	}
	p, ok := periodPlans[freq][label]
	if !ok {
		return Plan{}, false
	}
	return Plan{Period: &p}, true
}

// PlanCatalog lists the plan table for display, ordered by factor.
type PlanCatalog struct {
	Weekly   []WeeklyPlan `json:"weekly"`
	Biweekly []PeriodPlan `json:"biweekly"`
	Monthly  []PeriodPlan `json:"monthly"`
}

func Plans() PlanCatalog {
	catalog := PlanCatalog{
		Weekly:   make([]WeeklyPlan, 0, len(weeklyPlans)),
		Biweekly: sortedPeriodPlans(periodPlans[FrequencyBiweekly]),
		Monthly:  sortedPeriodPlans(periodPlans[FrequencyMonthly]),
	}
	for _, p := range weeklyPlans {
		catalog.Weekly = append(catalog.Weekly, p)
	}
	sort.Slice(catalog.Weekly, func(i, j int) bool {
		return catalog.Weekly[i].Factor < catalog.Weekly[j].Factor
	})
	return catalog
}

func sortedPeriodPlans(m map[string]PeriodPlan) []PeriodPlan {
	out := make([]PeriodPlan, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Factor < out[j].Factor })
	return out
}
