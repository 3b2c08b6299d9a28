package envfile

import "fmt"

// Policy decides what happens to lines that lack '='.
type Policy string

const (
	PolicyFail        Policy = "fail"
	PolicySkip        Policy = "skip"
	PolicySkipAndWarn Policy = "skip-and-warn"
)

func (p Policy) String() string {
	return string(p)
}

func (p Policy) Valid() bool {
	switch p {
	case PolicyFail, PolicySkip, PolicySkipAndWarn:
		return true
	}
	return false
}

// UnmarshalText lets flag and config decoding accept policy names.
func (p *Policy) UnmarshalText(text []byte) error {
	candidate := Policy(text)
	if !candidate.Valid() {
		return fmt.Errorf("unknown malformed-line policy %q (want fail, skip or skip-and-warn)", text)
	}
	*p = candidate
	return nil
}
