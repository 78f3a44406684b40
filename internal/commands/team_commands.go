package commands

import (
	"fmt"

	"github.com/ourines/codes-coord/internal/output"
	"github.com/ourines/codes-coord/internal/teammate"
)

// RunTeamCreate registers a new team.
func RunTeamCreate(name string) {
	m := teammate.NewManager()
	result, err := m.CreateTeam(name)
	if err != nil {
		output.PrintError(err)
		return
	}

	output.Print(struct {
		Team   string `json:"team"`
		Result string `json:"result"`
	}{Team: name, Result: result}, func() {
		fmt.Printf("team %q: %s\n", name, result)
	})
}

// RunTeamDelete shuts down every member of name and removes the team.
func RunTeamDelete(name string) {
	m := teammate.NewManager()
	result, err := m.DeleteTeam(name)
	if err != nil {
		output.PrintError(err)
		return
	}

	output.Print(struct {
		Team   string `json:"team"`
		Result string `json:"result"`
	}{Team: name, Result: result}, func() {
		fmt.Printf("team %q: %s\n", name, result)
	})
}

// RunTeamSpawn registers a new teammate in team. No idle loop is started
// for it: the Manager built here keeps its default no-op spawn function.
func RunTeamSpawn(team, name, prompt string) {
	m := teammate.NewManager()
	rec, err := m.SpawnTeammate(name, team, prompt)
	if err != nil {
		output.PrintError(err)
		return
	}

	output.Print(rec, func() {
		fmt.Printf("teammate %q spawned into team %q (status: %s)\n", rec.Name, rec.TeamName, rec.GetStatus())
	})
}

// RunTeamStatus prints a team's member summary.
func RunTeamStatus(name string) {
	m := teammate.NewManager()
	summary, err := m.GetTeamStatus(name)
	if err != nil {
		output.PrintError(err)
		return
	}

	output.Print(struct {
		Team    string `json:"team"`
		Summary string `json:"summary"`
	}{Team: name, Summary: summary}, func() {
		fmt.Println(summary)
	})
}
