package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// form is the set of inputs for one tab; exactly one input is focused
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

type fieldDef struct {
	label, value, placeholder string
}

func newForm(fields ...fieldDef) *form {
	f := &form{}
	for _, def := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = def.placeholder
		ti.CharLimit = 24
		ti.Width = 20
		ti.SetValue(def.value)
		f.labels = append(f.labels, def.label)
		f.inputs = append(f.inputs, ti)
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) set(i int, value string) {
	f.inputs[i].SetValue(value)
}

// number parses field i; an empty field reads as zero
func (f *form) number(i int) (decimal.Decimal, error) {
	s := strings.ReplaceAll(f.value(i), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewInputError(fieldName(f.labels[i]), "%q is not a number", f.value(i))
	}
	return d, nil
}

// integer parses field i; an empty field reads as zero
func (f *form) integer(i int) (int, error) {
	s := f.value(i)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.NewInputError(fieldName(f.labels[i]), "%q is not a whole number", s)
	}
	return n, nil
}

func fieldName(label string) string {
	return strings.ToLower(label)
}
