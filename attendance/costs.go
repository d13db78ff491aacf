package attendance

import (
	"sort"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// ProjectCost is the labour cost booked to one project.
type ProjectCost struct {
	ProjectID wage.ProjectID
	Minutes   int
	Wage      wage.Money
	Sessions  int
	Workers   int
}

// Hours returns the project's booked hours.
func (c ProjectCost) Hours() wage.Hours { return wage.MinutesToHours(c.Minutes) }

// ProjectCosts sums allocated wages and session minutes per project,
// ordered by project id.
func ProjectCosts(records []wage.AttendanceRecord) []ProjectCost {
	byProject := make(map[wage.ProjectID]*ProjectCost)
	workers := make(map[wage.ProjectID]map[wage.WorkerID]bool)

	for _, r := range records {
		for _, s := range r.Sessions {
			c, ok := byProject[s.ProjectID]
			if !ok {
				c = &ProjectCost{ProjectID: s.ProjectID}
				byProject[s.ProjectID] = c
				workers[s.ProjectID] = make(map[wage.WorkerID]bool)
			}
			c.Minutes += s.Minutes
			c.Wage += s.AllocatedWage
			c.Sessions++
			workers[s.ProjectID][r.WorkerID] = true
		}
	}

	out := make([]ProjectCost, 0, len(byProject))
	for id, c := range byProject {
		c.Workers = len(workers[id])
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out
}
