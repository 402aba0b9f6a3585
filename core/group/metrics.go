package group

import "github.com/trezcool/educrm/core"

// Pure aggregate functions over store snapshots. They never mutate their
// input and are safe to call from any goroutine.

// AttendanceRate returns round(100 * present / total) for the given records,
// or 0 when there are none.
func AttendanceRate(records []AttendanceRecord) int {
	if len(records) == 0 {
		return 0
	}
	var present int
	for _, rec := range records {
		if rec.Status == Present {
			present++
		}
	}
	return core.RoundHalfUp(100 * float64(present) / float64(len(records)))
}

// Occupancy returns the number of students assigned to the group.
func Occupancy(grp Group) int {
	return len(grp.StudentIDs)
}

// ActiveCount reports how many groups are currently active.
func ActiveCount(groups []Group) int {
	var n int
	for _, grp := range groups {
		if grp.Active {
			n++
		}
	}
	return n
}

// MarkAverage returns the average of the given marks rounded half-up,
// or 0 when there are none.
func MarkAverage(marks []StudentMark) int {
	if len(marks) == 0 {
		return 0
	}
	var sum int
	for _, mrk := range marks {
		sum += mrk.Mark
	}
	return core.RoundHalfUp(float64(sum) / float64(len(marks)))
}
