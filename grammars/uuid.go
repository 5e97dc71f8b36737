package grammars

import (
	"fmt"
	"strings"

	pcomb "github.com/SimonDaKappa/go-pcomb"
	"github.com/google/uuid"
)

func hexGroup(n int) *pcomb.Parser {
	return pcomb.Regex(fmt.Sprintf("hex%d", n), fmt.Sprintf("[0-9a-fA-F]{%d}", n))
}

var dash = pcomb.Char('-')

// UUID parses the canonical textual form of a UUID,
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx, into a uuid.UUID.
var UUID = pcomb.SequenceOf(
	hexGroup(8), dash,
	hexGroup(4), dash,
	hexGroup(4), dash,
	hexGroup(4), dash,
	hexGroup(12),
).Chain(func(r any) *pcomb.Parser {
	var sb strings.Builder
	for _, part := range r.([]any) {
		sb.WriteString(part.(string))
	}
	id, err := uuid.Parse(sb.String())
	if err != nil {
		return pcomb.Fail(fmt.Sprintf("uuid: %v", err))
	}
	return pcomb.Succeed(id)
}).Named("uuid")

// UUIDList parses a comma separated list of UUIDs.
var UUIDList = pcomb.SepBy(pcomb.Str(","))(UUID).Named("uuidList")

// ParseUUIDs parses a complete comma separated list of UUIDs.
func ParseUUIDs(s string) ([]uuid.UUID, error) {
	state := pcomb.SequenceOf(UUIDList, pcomb.EndOfInput).RunString(s)
	if state.Failed() {
		return nil, state.Err
	}

	items := state.Result.([]any)[0].([]any)
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.(uuid.UUID))
	}
	return ids, nil
}
