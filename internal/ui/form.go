package ui

import (
	"slices"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/desertthunder/agenda/internal/book"
	"github.com/desertthunder/agenda/internal/models"
)

// focusStop is a position in the tab order.
type focusStop int

const (
	focusUsername focusStop = iota
	focusDisplayName
	focusCEP
	focusSubmit
	focusSearch
	focusCity
	focusState
	focusTable
	focusStops
)

// Indices into Model.inputs.
const (
	inputUsername = iota
	inputDisplayName
	inputCEP
	inputSearch
	inputCount
)

// input returns the index in Model.inputs for a focus stop.
func (f focusStop) input() (int, bool) {
	switch f {
	case focusUsername:
		return inputUsername, true
	case focusDisplayName:
		return inputDisplayName, true
	case focusCEP:
		return inputCEP, true
	case focusSearch:
		return inputSearch, true
	default:
		return 0, false
	}
}

// inForm reports whether enter on this stop submits the add form.
func (f focusStop) inForm() bool {
	return f <= focusSubmit
}

func (f focusStop) move(delta int) focusStop {
	n := int(focusStops)
	return focusStop(((int(f)+delta)%n + n) % n)
}

func newInput(placeholder string, limit int) textinput.Model {
	t := textinput.New()
	t.Placeholder = placeholder
	t.Prompt = "> "
	t.CharLimit = limit
	t.Width = 32
	t.Cursor.Style = styles.focused
	return t
}

func newInputs() []textinput.Model {
	inputs := make([]textinput.Model, inputCount)
	inputs[inputUsername] = newInput("who is this address for", 64)
	inputs[inputDisplayName] = newInput("home, office, ...", 64)
	inputs[inputCEP] = newInput("01001-000", 0)
	inputs[inputSearch] = newInput("search by display name", 64)
	return inputs
}

func newEditInput() textinput.Model {
	t := newInput("display name", 0)
	t.PromptStyle = styles.focused
	t.TextStyle = styles.focused
	return t
}

// cycleOption steps through "" (all) followed by options, wrapping at both ends.
//
// A current value missing from options restarts from "all".
func cycleOption(options []string, current string, delta int) string {
	values := append([]string{""}, options...)
	i := slices.Index(values, current)
	if i < 0 {
		i = 0
	}
	n := len(values)
	return values[((i+delta)%n+n)%n]
}

// optionLabel renders a selector value.
func optionLabel(v string) string {
	if v == "" {
		return "All"
	}
	return v
}

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "User", Width: 12},
		{Title: "Display Name", Width: 20},
		{Title: "CEP", Width: 10},
		{Title: "Street", Width: 26},
		{Title: "Neighborhood", Width: 16},
		{Title: "City", Width: 16},
		{Title: "State", Width: 5},
	}
}

// tableRows converts addresses into table rows and the matching row IDs.
func tableRows(addresses []models.Address) ([]table.Row, []string) {
	rows := make([]table.Row, len(addresses))
	ids := make([]string, len(addresses))
	for i, a := range addresses {
		rows[i] = table.Row{a.Username, a.DisplayName, a.CEP, a.Street, a.Neighborhood, a.City, a.State}
		ids[i] = a.ID
	}
	return rows, ids
}

// formInput reads the add form fields.
func formInput(inputs []textinput.Model) book.Input {
	return book.Input{
		Username:    inputs[inputUsername].Value(),
		DisplayName: inputs[inputDisplayName].Value(),
		CEP:         inputs[inputCEP].Value(),
	}
}
