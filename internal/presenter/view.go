package presenter

import "presupuesto/internal/core"

// View is everything the renderer needs to draw the budget screen.
type View struct {
	HasLedger      bool
	Total          core.Money
	Remaining      core.Money
	Expenses       []core.Expense
	Status         core.Status
	Exhausted      bool
	SubmitDisabled bool
	Notifications  []Notification
}

func buildView(l *core.Ledger, notes []Notification) View {
	v := View{Notifications: notes}
	if l == nil {
		return v
	}
	c := l.Classify()
	v.HasLedger = true
	v.Total = l.Total()
	v.Remaining = l.Remaining()
	v.Expenses = l.Expenses()
	v.Status = c.Status
	v.Exhausted = c.Exhausted
	v.SubmitDisabled = c.Exhausted
	return v
}
