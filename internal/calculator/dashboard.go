// Package calculator computes mess dashboards: meal units, the period
// meal rate, per-member costs and balances, and manager duty statistics.
// It is a pure computation over already-fetched rows; the service layer
// does the fetching.
package calculator

import (
	"math"
	"sort"
	"time"
)

// centEpsilon separates "settled" from genuine dues/advances after
// float rounding.
const centEpsilon = 0.005

// Settings carries the mess options that affect meal counting.
type Settings struct {
	// IncludeBreakfast controls whether breakfasts count at all.
	IncludeBreakfast bool
	// BreakfastWeight is the meal-unit value of one breakfast.
	BreakfastWeight float64
}

// MemberInfo identifies one active member of the mess.
type MemberInfo struct {
	ID   string
	Name string
}

// MealEntry is one member-date meal row within the period.
type MealEntry struct {
	MemberID  string
	Breakfast bool
	Lunch     bool
	Dinner    bool
	Extra     float64
}

// ExpenseEntry is one shared-fund expense within the period.
type ExpenseEntry struct {
	Amount float64
}

// DepositEntry is one member deposit within the period.
type DepositEntry struct {
	MemberID string
	Amount   float64
}

// AssignmentEntry is one manager assignment (not clipped to the period;
// duty statistics cover the whole assignment history).
type AssignmentEntry struct {
	ManagerID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// Summary is the mess-level portion of a dashboard.
type Summary struct {
	TotalMeals     float64 // meal units consumed by all members
	TotalExpense   float64
	TotalCollected float64 // deposits received
	MealRate       float64 // expense per meal unit; 0 when no meals
	MessBalance    float64 // collected - spent
	ActiveMembers  int
}

// MemberRow is one member's line on the dashboard.
type MemberRow struct {
	MemberID  string
	Name      string
	Meals     float64 // meal units in the period
	MealCost  float64 // Meals x MealRate
	Deposited float64
	Net       float64 // Deposited - MealCost
	Status    string  // "due", "advance" or "settled"
}

// ManagerStat aggregates one manager's duty history.
type ManagerStat struct {
	ManagerID       string
	Name            string
	TotalDays       int
	AssignmentCount int
	LastStart       time.Time
	LastEnd         time.Time
}

// Dashboard is the full result of ComputeDashboard.
type Dashboard struct {
	Summary      Summary
	Members      []MemberRow
	ManagerStats []ManagerStat
}

// MealUnits converts one meal row to meal units under the given settings:
// breakfast contributes BreakfastWeight (or nothing when breakfasts are
// excluded), lunch and dinner contribute 1 each, extras count as-is.
func MealUnits(s Settings, e MealEntry) float64 {
	units := e.Extra
	if e.Breakfast && s.IncludeBreakfast {
		units += s.BreakfastWeight
	}
	if e.Lunch {
		units++
	}
	if e.Dinner {
		units++
	}
	return units
}

// ComputeDashboard computes the dashboard for one mess and period.
//
// The meal rate is total expense divided by total meal units, defined
// as 0 when no meal units were recorded. Every member in members gets a
// row even with no activity, so the dashboard always shows the full
// roster. Member order is preserved from the input; manager stats are
// sorted by name for deterministic output.
func ComputeDashboard(
	settings Settings,
	members []MemberInfo,
	meals []MealEntry,
	expenses []ExpenseEntry,
	deposits []DepositEntry,
	assignments []AssignmentEntry,
) Dashboard {
	var totalExpense float64
	for _, e := range expenses {
		totalExpense += e.Amount
	}

	var totalCollected float64
	depositsByMember := make(map[string]float64)
	for _, d := range deposits {
		totalCollected += d.Amount
		depositsByMember[d.MemberID] += d.Amount
	}

	var totalMeals float64
	mealsByMember := make(map[string]float64)
	for _, m := range meals {
		units := MealUnits(settings, m)
		mealsByMember[m.MemberID] += units
		totalMeals += units
	}

	var mealRate float64
	if totalMeals > 0 {
		mealRate = roundCents(totalExpense / totalMeals)
	}

	rows := make([]MemberRow, 0, len(members))
	for _, member := range members {
		memberMeals := mealsByMember[member.ID]
		cost := roundCents(memberMeals * mealRate)
		deposited := depositsByMember[member.ID]
		net := roundCents(deposited - cost)

		status := "settled"
		switch {
		case net < -centEpsilon:
			status = "due"
		case net > centEpsilon:
			status = "advance"
		}

		rows = append(rows, MemberRow{
			MemberID:  member.ID,
			Name:      member.Name,
			Meals:     memberMeals,
			MealCost:  cost,
			Deposited: deposited,
			Net:       net,
			Status:    status,
		})
	}

	return Dashboard{
		Summary: Summary{
			TotalMeals:     totalMeals,
			TotalExpense:   totalExpense,
			TotalCollected: totalCollected,
			MealRate:       mealRate,
			MessBalance:    roundCents(totalCollected - totalExpense),
			ActiveMembers:  len(members),
		},
		Members:      rows,
		ManagerStats: computeManagerStats(assignments),
	}
}

// computeManagerStats sums duty days per manager. An assignment from
// start to end counts end-start+1 days, both ends inclusive.
func computeManagerStats(assignments []AssignmentEntry) []ManagerStat {
	byManager := make(map[string]*ManagerStat)
	for _, a := range assignments {
		stat, ok := byManager[a.ManagerID]
		if !ok {
			stat = &ManagerStat{
				ManagerID: a.ManagerID,
				Name:      a.Name,
				LastStart: a.StartDate,
				LastEnd:   a.EndDate,
			}
			byManager[a.ManagerID] = stat
		}

		stat.TotalDays += dutyDays(a.StartDate, a.EndDate)
		stat.AssignmentCount++
		if a.StartDate.After(stat.LastStart) {
			stat.LastStart = a.StartDate
			stat.LastEnd = a.EndDate
		}
	}

	stats := make([]ManagerStat, 0, len(byManager))
	for _, stat := range byManager {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

func dutyDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
