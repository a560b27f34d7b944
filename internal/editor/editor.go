// Package editor is the interactive terminal frontend of the contact
// database. It is a pure presentation state machine: every durable change
// goes through the store, and the store is the single source of truth the
// list is refreshed from after each write.
package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contacts-desk/internal/model"
	"gitlab.com/dirk.krummacker/contacts-desk/internal/store"
	"gitlab.com/dirk.krummacker/contacts-desk/internal/validate"
)

// mode selects which screen is active. Exactly one is active at any time.
type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

// Model is the top-level bubbletea model. Zero value is not usable; construct
// with New.
type Model struct {
	store  *store.Store
	log    *zap.Logger
	msgs   Messages
	styles Styles

	mode   mode
	width  int
	height int

	// List screen.
	table         table.Model
	search        textinput.Model
	searchFocused bool
	contacts      []model.Contact
	marked        map[int64]bool
	status        string

	// Form screen. editingId is zero when adding a new contact.
	form      formModel
	editingId int64

	// Confirmation screen.
	pendingDelete []int64

	// A failed storage operation is unrecoverable: the editor quits and main
	// reports it. Validation failures never end up here.
	fatal error
}

// New builds the editor over an open store and loads the initial contact
// list. The language selects the message catalog.
func New(st *store.Store, language string, log *zap.Logger) (Model, error) {
	msgs := MessagesFor(language)
	styles := DefaultStyles()

	columns := []table.Column{
		{Title: " ", Width: 1},
		{Title: msgs[msgColumnId], Width: 4},
		{Title: msgs[msgLabelName], Width: 24},
		{Title: msgs[msgLabelEmail], Width: 24},
		{Title: msgs[msgLabelPhone], Width: 18},
		{Title: msgs[msgLabelCompany], Width: 16},
		{Title: msgs[msgLabelTags], Width: 14},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = msgs[msgSearchPlaceholder]
	search.CharLimit = 128
	search.Width = 50

	m := Model{
		store:  st,
		log:    log,
		msgs:   msgs,
		styles: styles,
		table:  t,
		search: search,
		marked: map[int64]bool{},
	}
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Err returns the storage error that terminated the editor, if any. main
// checks it after the program exits.
func (m Model) Err() error {
	return m.fatal
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - 9
		if h < 5 {
			h = 5
		}
		m.table.SetHeight(h)
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// updateList handles keys on the list screen. While the search box is
// focused, every keystroke re-queries the store so the list narrows live.
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "enter", "esc":
			m.searchFocused = false
			m.search.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			if err := m.refresh(); err != nil {
				return m.fail(err)
			}
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		m.status = ""
		return m, m.search.Focus()
	case "a":
		m.form = newForm(m.msgs, m.styles, m.msgs[msgTitleAdd], model.Fields{})
		m.editingId = 0
		m.mode = modeForm
		m.status = ""
		return m, textinput.Blink
	case "enter", "e":
		c, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.form = newForm(m.msgs, m.styles, m.msgs[msgTitleEdit], c.Fields())
		m.editingId = c.Id
		m.mode = modeForm
		m.status = ""
		return m, textinput.Blink
	case " ":
		if c, ok := m.selected(); ok {
			if m.marked[c.Id] {
				delete(m.marked, c.Id)
			} else {
				m.marked[c.Id] = true
			}
			m.updateRows()
			m.table.MoveDown(1)
		}
		return m, nil
	case "d", "delete":
		ids := m.markedIds()
		if len(ids) == 0 {
			c, ok := m.selected()
			if !ok {
				return m, nil
			}
			ids = []int64{c.Id}
		}
		m.pendingDelete = ids
		m.mode = modeConfirmDelete
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateForm handles keys on the add/edit screen. Enter submits from any
// single-line field; inside the notes area it inserts a newline and ctrl+s
// submits instead. Esc discards the form without touching the store.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeList
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if !m.form.inNotes() {
			return m.submitForm()
		}
	case "tab":
		return m, m.form.moveFocus(false)
	case "shift+tab":
		return m, m.form.moveFocus(true)
	case "up", "down":
		// Inside the notes area the arrows move the cursor between lines.
		if !m.form.inNotes() {
			return m, m.form.moveFocus(msg.String() == "up")
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// updateConfirm handles the delete confirmation prompt.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "enter":
		ids := m.pendingDelete
		m.pendingDelete = nil
		m.mode = modeList

		var deleted int64
		if len(ids) == 1 {
			if err := m.store.Delete(ids[0]); err != nil {
				return m.fail(err)
			}
			deleted = 1
		} else {
			var err error
			deleted, err = m.store.DeleteMany(ids)
			if err != nil {
				return m.fail(err)
			}
		}
		for _, id := range ids {
			delete(m.marked, id)
		}
		m.log.Info("contacts deleted",
			zap.Int("requested", len(ids)),
			zap.Int64("deleted", deleted))
		m.status = fmt.Sprintf(m.msgs[msgDeleted], len(ids))
		if err := m.refresh(); err != nil {
			return m.fail(err)
		}
		return m, nil
	case "n", "esc":
		m.pendingDelete = nil
		m.mode = modeList
		return m, nil
	}
	return m, nil
}

// submitForm validates the form and writes it to the store. Validation
// failures keep the form open with a message and never reach the store.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form.fields()
	if err := validate.Fields(f); err != nil {
		m.form.errMsg = m.msgs.translate(err)
		return m, nil
	}

	var (
		saved model.Contact
		err   error
	)
	if m.editingId == 0 {
		saved, err = m.store.Create(f)
	} else {
		saved, err = m.store.Update(m.editingId, f)
	}
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			m.form.errMsg = m.msgs.translate(err)
			return m, nil
		}
		if errors.Is(err, store.ErrNotFound) {
			// The contact was deleted underneath the open form.
			m.mode = modeList
			m.status = m.msgs[msgNotFound]
			if err := m.refresh(); err != nil {
				return m.fail(err)
			}
			return m, nil
		}
		return m.fail(err)
	}

	m.log.Info("contact saved",
		zap.Int64("id", saved.Id),
		zap.Bool("created", m.editingId == 0))
	m.mode = modeList
	m.status = m.msgs[msgSaved]
	if err := m.refresh(); err != nil {
		return m.fail(err)
	}
	return m, nil
}

// refresh re-queries the store with the current search term and rebuilds the
// table rows. Marks on rows that no longer exist are dropped.
func (m *Model) refresh() error {
	contacts, err := m.store.List(strings.TrimSpace(m.search.Value()))
	if err != nil {
		return err
	}
	m.contacts = contacts

	alive := make(map[int64]bool, len(contacts))
	for _, c := range contacts {
		alive[c.Id] = true
	}
	for id := range m.marked {
		if !alive[id] {
			delete(m.marked, id)
		}
	}
	m.updateRows()
	return nil
}

// updateRows renders the contact slice into table rows.
func (m *Model) updateRows() {
	rows := make([]table.Row, 0, len(m.contacts))
	for _, c := range m.contacts {
		mark := " "
		if m.marked[c.Id] {
			mark = "*"
		}
		rows = append(rows, table.Row{
			mark,
			strconv.FormatInt(c.Id, 10),
			c.Name,
			c.Email,
			validate.FormatPhone(c.Phone),
			c.Company,
			c.Tags,
		})
	}
	m.table.SetRows(rows)
	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

// selected returns the contact under the cursor.
func (m Model) selected() (model.Contact, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.contacts) {
		return model.Contact{}, false
	}
	return m.contacts[i], true
}

// markedIds returns the marked ids in list order.
func (m Model) markedIds() []int64 {
	var ids []int64
	for _, c := range m.contacts {
		if m.marked[c.Id] {
			ids = append(ids, c.Id)
		}
	}
	return ids
}

// fail records an unrecoverable storage error and quits. The raw error is
// logged here; the screen only ever shows the translated message.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.log.Error("storage operation failed", zap.Error(err))
	m.fatal = err
	return m, tea.Quit
}

func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.form.View()
	case modeConfirmDelete:
		return m.viewConfirm()
	default:
		return m.viewList()
	}
}

func (m Model) viewConfirm() string {
	prompt := m.msgs[msgConfirmDeleteOne]
	if len(m.pendingDelete) > 1 {
		prompt = fmt.Sprintf(m.msgs[msgConfirmDeleteMany], len(m.pendingDelete))
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.msgs[msgTitleList]))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Confirm.Render(prompt))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render(m.msgs[msgHelpConfirm]))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.msgs[msgTitleList]))
	b.WriteString("\n")
	b.WriteString(m.styles.Search.Render(m.search.View()))
	b.WriteString("\n")
	if len(m.contacts) == 0 {
		b.WriteString(m.styles.Help.Render(m.msgs[msgNoContacts]))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.Table.Render(m.table.View()))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.msgs[msgHelpList]))
	b.WriteString("\n")
	return b.String()
}
