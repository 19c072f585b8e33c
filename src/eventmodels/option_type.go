package eventmodels

import (
	"fmt"
	"strings"
)

type OptionType string

func (o OptionType) Validate() error {
	if o != OptionTypeCall && o != OptionTypePut {
		return fmt.Errorf("OptionType: Validate: invalid option type: %s", o)
	}

	return nil
}

func (o OptionType) String() string {
	return string(o)
}

// ParseOptionType accepts "call"/"put" in any case, plus the single letter forms "c"/"p".
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return OptionTypeCall, nil
	case "put", "p":
		return OptionTypePut, nil
	}

	return "", fmt.Errorf("ParseOptionType: unknown option type %q: %w", s, InvalidContractErr)
}

const (
	OptionTypeCall OptionType = "call"
	OptionTypePut  OptionType = "put"
)
