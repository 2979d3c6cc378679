package ast

import "fmt"

// format implements the shared rendering used by every node's Format method:
// it expands tmpl with args via fmt.Sprintf, then applies the verb/width/
// flag handling fmt.Formatter is expected to honor.
func format(f fmt.State, verb rune, tmpl string, args ...interface{}) {
	s := fmt.Sprintf(tmpl, args...)

	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, s)
		return
	}

	width, hasWidth := f.Width()
	if !hasWidth {
		fmt.Fprint(f, s)
		return
	}

	pad := width - len(s)
	if pad <= 0 {
		fmt.Fprint(f, s)
		return
	}
	if f.Flag('-') {
		fmt.Fprint(f, s, spaces(pad))
	} else {
		fmt.Fprint(f, spaces(pad), s)
	}
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
