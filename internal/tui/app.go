// Package tui provides the interactive Bubble Tea screen for the budget.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	applog "presupuesto/internal/log"
	"presupuesto/internal/presenter"
)

// RefreshMsg asks the screen to redraw, typically after a notification
// expired on its own.
type RefreshMsg struct{}

// Options holds the optional collaborators of the App.
type Options struct {
	// Refresher delivers redraws requested outside the UI loop.
	Refresher *Refresher
	Logger    *applog.Logger
}

const (
	focusName = iota
	focusAmount
	focusList
	focusCount // sentinel
)

const (
	nameCharLimit   = 200
	amountCharLimit = 20
	maxContentWidth = 72
)

// App is the root Bubble Tea model.
type App struct {
	ctx       context.Context
	presenter *presenter.Presenter
	refresher *Refresher
	logger    *applog.Logger
	keys      KeyMap

	// Budget prompt (huh form), active while no ledger exists.
	budgetForm *huh.Form
	budgetRaw  *string

	// Expense form and list
	name   textinput.Model
	amount textinput.Model
	focus  int
	cursor int

	width  int
	height int
}

// NewApp creates the model. needsBudget comes from Presenter.Start and
// decides whether the screen opens on the budget prompt.
func NewApp(ctx context.Context, p *presenter.Presenter, needsBudget bool, opts Options) App {
	name := textinput.New()
	name.Placeholder = "Expense name"
	name.CharLimit = nameCharLimit
	name.Width = 40
	name.Focus()

	amount := textinput.New()
	amount.Placeholder = "Amount"
	amount.CharLimit = amountCharLimit
	amount.Width = 16

	a := App{
		ctx:       ctx,
		presenter: p,
		refresher: opts.Refresher,
		logger:    applog.OrDiscard(opts.Logger).WithComponent(applog.ComponentTUI),
		keys:      DefaultKeyMap,
		name:      name,
		amount:    amount,
	}
	if needsBudget {
		a.openBudgetForm()
	}
	return a
}

func newBudgetForm(raw *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly budget").
				Description("Enter the total you can spend.").
				Placeholder("1000").
				CharLimit(amountCharLimit).
				Value(raw).
				Validate(func(s string) error {
					_, err := presenter.ValidateBudget(s)
					return err
				}),
		),
	).WithShowHelp(false)
}

func (a *App) openBudgetForm() {
	a.budgetRaw = new(string)
	a.budgetForm = newBudgetForm(a.budgetRaw)
	if a.width > 0 {
		a.budgetForm = a.budgetForm.WithWidth(min(a.width, maxContentWidth))
	}
}

// Prompting reports whether the budget prompt is showing.
func (a App) Prompting() bool { return a.budgetForm != nil }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	wait := waitForRefresh(a.ctx, a.refresher)
	if a.budgetForm != nil {
		return tea.Batch(a.budgetForm.Init(), wait)
	}
	return tea.Batch(textinput.Blink, wait)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.budgetForm != nil {
			a.budgetForm = a.budgetForm.WithWidth(min(msg.Width, maxContentWidth))
		}
		return a, nil

	case RefreshMsg:
		return a, waitForRefresh(a.ctx, a.refresher)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.logger.DebugContext(a.ctx, "Quit requested", "key", msg.String())
			return a, tea.Quit
		}
		if a.budgetForm != nil {
			return a.updateBudgetForm(msg)
		}
		return a.updateMain(msg)
	}

	// Forward everything else (cursor blinks) to whatever has focus.
	if a.budgetForm != nil {
		return a.updateBudgetForm(msg)
	}
	return a.updateInputs(msg)
}

func (a App) updateBudgetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.budgetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.budgetForm = f
	}

	switch a.budgetForm.State {
	case huh.StateCompleted:
		if err := a.presenter.CreateBudget(a.ctx, *a.budgetRaw); err != nil {
			// The answer was valid, so the write failed; ask again.
			a.logger.WarnContext(a.ctx, "Budget not saved, prompting again", applog.FieldError, err)
			a.openBudgetForm()
			return a, a.budgetForm.Init()
		}
		a.budgetForm = nil
		a.budgetRaw = nil
		a.setFocus(focusName)
		a.cursor = 0
		return a, textinput.Blink
	case huh.StateAborted:
		a.logger.DebugContext(a.ctx, "Budget prompt aborted")
		return a, tea.Quit
	}
	return a, cmd
}

func (a App) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.logger.DebugContext(a.ctx, "Quit requested", "key", msg.String())
		return a, tea.Quit
	case key.Matches(msg, a.keys.Reset):
		if err := a.presenter.Reset(a.ctx); err != nil {
			return a, nil
		}
		a.logger.DebugContext(a.ctx, "Budget reset, reopening prompt", applog.FieldOperation, applog.OpReset)
		a.name.Reset()
		a.amount.Reset()
		a.openBudgetForm()
		return a, a.budgetForm.Init()
	case key.Matches(msg, a.keys.NextField):
		a.setFocus((a.focus + 1) % focusCount)
		return a, nil
	case key.Matches(msg, a.keys.PrevField):
		a.setFocus((a.focus + focusCount - 1) % focusCount)
		return a, nil
	}

	if a.focus == focusList {
		return a.updateList(msg)
	}

	if key.Matches(msg, a.keys.Submit) {
		return a.submitExpense()
	}
	return a.updateInputs(msg)
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	expenses := a.presenter.View().Expenses
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(expenses)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Delete):
		if a.cursor < len(expenses) {
			_ = a.presenter.RemoveExpense(a.ctx, expenses[a.cursor].ID)
			a.clampCursor()
		}
	}
	return a, nil
}

// submitExpense hands the form to the presenter. The fields are cleared
// only when the expense was recorded.
func (a App) submitExpense() (tea.Model, tea.Cmd) {
	in := presenter.ExpenseInput{Name: a.name.Value(), Amount: a.amount.Value()}
	if err := a.presenter.AddExpense(a.ctx, in); err != nil {
		return a, nil
	}
	a.name.Reset()
	a.amount.Reset()
	a.setFocus(focusName)
	return a, nil
}

func (a App) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.name, cmd = a.name.Update(msg)
	cmds = append(cmds, cmd)
	a.amount, cmd = a.amount.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *App) setFocus(f int) {
	a.focus = f
	a.name.Blur()
	a.amount.Blur()
	switch f {
	case focusName:
		a.name.Focus()
	case focusAmount:
		a.amount.Focus()
	case focusList:
		a.clampCursor()
	}
}

func (a *App) clampCursor() {
	n := len(a.presenter.View().Expenses)
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// View implements tea.Model.
func (a App) View() string {
	if a.budgetForm != nil {
		var b strings.Builder
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("  Presupuesto"))
		b.WriteString("\n\n")
		b.WriteString(a.budgetForm.View())
		b.WriteString(a.renderNotifications(a.presenter.View()))
		return b.String()
	}
	return a.viewMain()
}

func (a App) viewMain() string {
	v := a.presenter.View()
	width := maxContentWidth
	if a.width > 0 && a.width < width {
		width = a.width
	}

	sections := []string{
		titleStyle.Render("Presupuesto"),
		a.renderSummary(v),
		a.renderForm(v, width),
		a.renderList(v, width),
		a.renderNotifications(v),
		a.renderHelp(),
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (a App) renderSummary(v presenter.View) string {
	remaining := statusStyle(v.Status).Render(v.Remaining.Fixed())
	line := fmt.Sprintf("%s %s   %s %s   %s %s",
		labelStyle.Render("Total"), valueStyle.Render(v.Total.Fixed()),
		labelStyle.Render("Remaining"), remaining,
		labelStyle.Render("Status"), statusStyle(v.Status).Render(v.Status.String()))
	if v.Exhausted {
		line += "  " + exhaustedBadgeStyle.Render("EXHAUSTED")
	}
	return line
}

func (a App) renderForm(v presenter.View, width int) string {
	button := buttonStyle.Render("Add")
	if v.SubmitDisabled {
		button = disabledButtonStyle.Render("Add")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		a.name.View(),
		a.amount.View(),
		button,
	)
	style := panelStyle
	if a.focus != focusList {
		style = focusedPanelStyle
	}
	return style.Width(width - 2).Render(body)
}

func (a App) renderList(v presenter.View, width int) string {
	style := panelStyle
	if a.focus == focusList {
		style = focusedPanelStyle
	}
	if len(v.Expenses) == 0 {
		return style.Width(width - 2).Render(dimStyle.Render("No expenses yet"))
	}

	inner := width - 6
	rows := make([]string, 0, len(v.Expenses))
	for i, e := range v.Expenses {
		amount := e.Amount.Fixed()
		name := e.Name
		if room := inner - len(amount) - 1; room > 0 && lipgloss.Width(name) > room {
			name = truncate(name, room)
		}
		pad := inner - lipgloss.Width(name) - len(amount)
		if pad < 1 {
			pad = 1
		}
		row := name + strings.Repeat(" ", pad) + amount
		if a.focus == focusList && i == a.cursor {
			row = selectedRowStyle.Render(row)
		} else {
			row = valueStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return style.Width(width - 2).Render(strings.Join(rows, "\n"))
}

func (a App) renderNotifications(v presenter.View) string {
	if len(v.Notifications) == 0 {
		return ""
	}
	lines := make([]string, 0, len(v.Notifications))
	for _, n := range v.Notifications {
		if n.Kind == presenter.KindError {
			lines = append(lines, errorStyle.Render("✗ "+n.Message))
		} else {
			lines = append(lines, successStyle.Render("✓ "+n.Message))
		}
	}
	return "\n" + strings.Join(lines, "\n")
}

func (a App) renderHelp() string {
	bindings := a.keys.formHelp()
	if a.focus == focusList {
		bindings = a.keys.listHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+dimStyle.Render(h.Desc))
	}
	return "\n" + labelStyle.Render(strings.Join(parts, "  •  "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
