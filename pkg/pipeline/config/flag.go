package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

var ErrInvalidFlag = errors.New("invalid stage flag")

// ParsePosition reads "", "FIRST", "LAST" (any case) or a non-negative integer.
func ParsePosition(raw string) (model.Position, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToUpper(raw) {
	case "":
		return model.Unspecified(), nil
	case "FIRST":
		return model.First(), nil
	case "LAST":
		return model.Last(), nil
	}

	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 {
		return model.Position{}, errors.Wrapf(ErrInvalidFlag, "position %q", raw)
	}

	return model.AtIndex(idx), nil
}

// ParseStageFlag reads a stage flag of the form --name[:position] together with
// its optional argument, a comma separated list.
func ParseStageFlag(flag, argument string) (model.StageConfig, error) {
	body := strings.TrimLeft(flag, "-")
	name, rawPos, _ := strings.Cut(body, ":")
	if name == "" {
		return model.StageConfig{}, errors.Wrapf(ErrInvalidFlag, "flag %q", flag)
	}

	pos, err := ParsePosition(rawPos)
	if err != nil {
		return model.StageConfig{}, errors.Wrapf(err, "flag %q", flag)
	}

	return model.StageConfig{
		Name:      name,
		Position:  pos,
		Arguments: SplitArguments(argument),
	}, nil
}

// SplitArguments splits a comma separated list, dropping blank items.
func SplitArguments(argument string) []string {
	var out []string
	for item := range strings.SplitSeq(argument, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}

	return out
}
