package driver

import (
	"fmt"
	"strings"
)

// Kind identifies one of the interchangeable browser engines the harness can drive.
type Kind int

const (
	Chromium Kind = iota
	Firefox
	WebKit
)

var kindNames = map[Kind]string{
	Chromium: "chromium",
	Firefox:  "firefox",
	WebKit:   "webkit",
}

// AllKinds returns every engine in the order the harness runs them.
func AllKinds() []Kind {
	return []Kind{Chromium, Firefox, WebKit}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts the engine names used on the command line, case-insensitively.
func ParseKind(s string) (Kind, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown browser engine %q", s)
}
