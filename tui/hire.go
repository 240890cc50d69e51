package main

import (
	"strings"
	"unicode/utf8"

	qrcode "github.com/skip2/go-qrcode"

	"snakeos/portfolio"
)

const maxFieldLen = 500

var fieldLabels = [...]string{"NAME", "EMAIL", "MESSAGE"}

// hireForm is the game-over contact form. Delivery is simulated.
type hireForm struct {
	fields [len(fieldLabels)]string
	focus  int
	status string // "", portfolio.HireSending or portfolio.HireSent
	err    string
}

func (f *hireForm) locked() bool { return f.status != "" }

func (f *hireForm) typeRune(r rune) {
	if f.locked() || utf8.RuneCountInString(f.fields[f.focus]) >= maxFieldLen {
		return
	}
	f.fields[f.focus] += string(r)
	f.err = ""
}

func (f *hireForm) backspace() {
	if f.locked() {
		return
	}
	s := f.fields[f.focus]
	if s == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s)
	f.fields[f.focus] = s[:len(s)-size]
}

func (f *hireForm) next() {
	f.focus = (f.focus + 1) % len(f.fields)
}

func (f *hireForm) request() portfolio.HireRequest {
	return portfolio.HireRequest{
		Name:    strings.TrimSpace(f.fields[0]),
		Email:   strings.TrimSpace(f.fields[1]),
		Message: strings.TrimSpace(f.fields[2]),
	}
}

// submit validates and, on success, moves the form to SENDING.
func (f *hireForm) submit() error {
	if f.locked() {
		return nil
	}
	if err := f.request().Validate(); err != nil {
		f.err = strings.ToUpper(err.Error())
		return err
	}
	f.err = ""
	f.status = portfolio.HireSending
	return nil
}

func (f *hireForm) sent() {
	if f.status == portfolio.HireSending {
		f.status = portfolio.HireSent
	}
}

// qrLines renders data as a QR code using half-block characters, two modules per row.
// Light modules are drawn, so the code reads correctly on a dark terminal.
func qrLines(data string) ([]string, error) {
	qr, err := qrcode.New(data, qrcode.Low)
	if err != nil {
		return nil, err
	}
	qr.DisableBorder = true
	bitmap := qr.Bitmap()

	// One module of quiet zone on every side.
	size := len(bitmap) + 2
	light := func(x, y int) bool {
		if x <= 0 || y <= 0 || x >= size-1 || y >= size-1 {
			return true
		}
		return !bitmap[y-1][x-1]
	}

	lines := make([]string, 0, (size+1)/2)
	for y := 0; y < size; y += 2 {
		var b strings.Builder
		for x := 0; x < size; x++ {
			top := light(x, y)
			bottom := y+1 < size && light(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		lines = append(lines, b.String())
	}
	return lines, nil
}
