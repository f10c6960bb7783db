package pack

import (
	"sort"
	"strings"
	"time"
)

const changelogDateLayout = "2006-01-02"

// ParseChangelogEntry parses a changelog string of the form
// "<author>:<text>:<yyyy-mm-dd>". The date is interpreted as midnight UTC.
func ParseChangelogEntry(raw string) (ChangelogEntry, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return ChangelogEntry{}, &ParseError{
			Input: raw,
			Msg:   "expected <author>:<text>:<yyyy-mm-dd>",
		}
	}

	date, err := time.ParseInLocation(changelogDateLayout, parts[2], time.UTC)
	if err != nil {
		return ChangelogEntry{}, &ParseError{Input: raw, Msg: err.Error()}
	}

	return ChangelogEntry{
		Author: parts[0],
		Text:   parts[1],
		Time:   date.Unix(),
	}, nil
}

// ParseChangelog parses a slice of changelog strings, skipping empty ones.
func ParseChangelog(rawEntries []string) ([]ChangelogEntry, error) {
	var entries []ChangelogEntry
	for _, raw := range rawEntries {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		entry, err := ParseChangelogEntry(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// addChangelogTags writes the changelog triplet to the header tag set with
// the newest entry first. Entries sharing a timestamp keep their declared
// relative order.
func addChangelogTags(header *rpmTagSetType, entries []ChangelogEntry) {
	if len(entries) == 0 {
		return
	}

	sorted := make([]ChangelogEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time > sorted[j].Time
	})

	times := make([]int32, 0, len(sorted))
	names := make([]string, 0, len(sorted))
	texts := make([]string, 0, len(sorted))
	for _, entry := range sorted {
		times = append(times, int32(entry.Time))
		names = append(names, entry.Author)
		texts = append(texts, entry.Text)
	}

	header.addTags([]rpmTagType{
		{ID: tagChangelogTime, Type: rpmTypeInt32, Value: times},
		{ID: tagChangelogName, Type: rpmTypeStringArray, Value: names},
		{ID: tagChangelogText, Type: rpmTypeStringArray, Value: texts},
	}...)
}
