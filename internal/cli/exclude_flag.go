package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/bigFin/glimpse/internal/types"
)

const excludeFlagTypeName = "excludes"

// excludeListFlagValue accumulates -e/--exclude values. Each flag occurrence
// is split on commas and every piece is classified exactly once at parse
// time: tokens naming an existing filesystem entry become File excludes,
// everything else becomes a Pattern exclude.
type excludeListFlagValue struct {
	entries *[]types.ExcludeEntry
}

func (value *excludeListFlagValue) Set(input string) error {
	for _, piece := range strings.Split(input, ",") {
		if piece == "" {
			continue
		}
		*value.entries = append(*value.entries, types.ClassifyExclude(piece))
	}
	return nil
}

func (value *excludeListFlagValue) String() string {
	if value.entries == nil || len(*value.entries) == 0 {
		return ""
	}
	tokens := make([]string, 0, len(*value.entries))
	for _, entry := range *value.entries {
		tokens = append(tokens, entry.Value)
	}
	return strings.Join(tokens, ",")
}

func (value *excludeListFlagValue) Type() string {
	return excludeFlagTypeName
}

func registerExcludeFlag(flagSet *pflag.FlagSet, entries *[]types.ExcludeEntry) {
	if flagSet == nil || entries == nil {
		return
	}
	flagSet.VarP(&excludeListFlagValue{entries: entries}, excludeFlagName, excludeFlagShorthand, excludeFlagDescription)
}
