package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap holds the calendar key bindings.
type keyMap struct {
	quit           key.Binding
	reload         key.Binding
	toggleHelp     key.Binding
	prevDay        key.Binding
	nextDay        key.Binding
	prevWeek       key.Binding
	nextWeek       key.Binding
	prevMonth      key.Binding
	nextMonth      key.Binding
	today          key.Binding
	nextBlock      key.Binding
	addEntry       key.Binding
	addActivity    key.Binding
	deleteEntry    key.Binding
	deleteActivity key.Binding
	copyShare      key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		reload:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		toggleHelp:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		prevDay:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev day")),
		nextDay:        key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next day")),
		prevWeek:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "week back")),
		nextWeek:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "week forward")),
		prevMonth:      key.NewBinding(key.WithKeys("H", "pgup"), key.WithHelp("H", "prev month")),
		nextMonth:      key.NewBinding(key.WithKeys("L", "pgdown"), key.WithHelp("L", "next month")),
		today:          key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		nextBlock:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next block")),
		addEntry:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add entry")),
		addActivity:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add activity")),
		deleteEntry:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
		deleteActivity: key.NewBinding(key.WithKeys("X", "shift+x"), key.WithHelp("X", "delete activity")),
		copyShare:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy share link")),
	}
}

// KeyConfig carries optional overrides for the rebindable calendar actions.
// Empty fields keep the defaults.
type KeyConfig struct {
	AddEntry       string
	AddActivity    string
	DeleteEntry    string
	DeleteActivity string
	CopyShare      string
	Today          string
}

// applyConfig rewrites the rebindable bindings with configured overrides.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.addEntry, cfg.AddEntry, "a", "add entry")
	configureBinding(&k.addActivity, cfg.AddActivity, "A", "add activity")
	configureBinding(&k.deleteEntry, cfg.DeleteEntry, "d", "delete entry")
	configureBinding(&k.deleteActivity, cfg.DeleteActivity, "X", "delete activity")
	configureBinding(&k.copyShare, cfg.CopyShare, "y", "copy share link")
	configureBinding(&k.today, cfg.Today, "t", "today")
}

// configureBinding applies one parsed override onto an existing binding.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, helpKey := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(helpKey, desc)
}

// parseBindingKeys expands one configured key string into the matcher set
// bubbles needs plus the help label. A single uppercase rune matches both the
// bare rune and its shift+ form; "space" matches the literal space rune.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	if strings.EqualFold(raw, "space") {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(raw) == 1 {
		r, _ := utf8.DecodeRuneInString(raw)
		if unicode.IsUpper(r) {
			return []string{raw, "shift+" + strings.ToLower(raw)}, raw
		}
		return []string{raw}, raw
	}
	return []string{strings.ToLower(raw)}, raw
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.prevDay, k.nextDay, k.today, k.addEntry, k.copyShare, k.toggleHelp, k.quit}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.prevDay, k.nextDay, k.prevWeek, k.nextWeek, k.prevMonth, k.nextMonth, k.today, k.nextBlock},
		{k.addEntry, k.addActivity, k.deleteEntry, k.deleteActivity, k.copyShare},
		{k.reload, k.toggleHelp, k.quit},
	}
}
