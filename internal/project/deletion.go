package project

import (
	"fmt"
	"strings"
)

// DeletionKind tags what a deletion id refers to.
type DeletionKind string

const (
	KindWord    DeletionKind = "word"
	KindPause   DeletionKind = "pause"
	KindSilence DeletionKind = "silence"
)

// Deletion is the normalized form of a deletion id. Ref keeps the raw id so
// the original string scheme survives a round trip to persisted projects.
type Deletion struct {
	Kind DeletionKind
	Ref  string
}

// Pause and silence id formats. Two generations of pause ids are in
// circulation and both must keep resolving against persisted projects:
// the current per-word form and the older clip-qualified pair form.
const (
	pauseAfterPrefix   = "pause-after-"
	pauseBeforePrefix  = "pause-before-clip-"
	pauseLegacyPrefix  = "pause-clip-"
	silencePrefix      = "silence-"
	firstWordSuffix    = "-first-word"
)

// PauseAfterID is the current id for the pause following a word. It also
// names the trailing pause after a clip's last word.
func PauseAfterID(wordID string) string {
	return pauseAfterPrefix + wordID
}

// LeadingPauseID names the pause between a clip's start and its first word.
func LeadingPauseID(clipIndex int) string {
	return fmt.Sprintf("%s%d%s", pauseBeforePrefix, clipIndex, firstWordSuffix)
}

// LegacyLeadingPauseID is the older leading-pause id without the suffix.
func LegacyLeadingPauseID(clipIndex int) string {
	return fmt.Sprintf("%s%d", pauseBeforePrefix, clipIndex)
}

// LegacyPauseID is the older inter-word pause id naming both adjacent words.
func LegacyPauseID(clipIndex int, wordID1, wordID2 string) string {
	return fmt.Sprintf("%s%d-%s-%s", pauseLegacyPrefix, clipIndex, wordID1, wordID2)
}

// SilenceID names a detector-reported silence segment.
func SilenceID(clipIndex int, segmentID string) string {
	return fmt.Sprintf("%s%d-%s", silencePrefix, clipIndex, segmentID)
}

// ParseDeletionID classifies a raw deletion id. Anything that matches no known
// pause or silence scheme is treated as a word id; stale ids that reference
// nothing simply never match during range resolution.
func ParseDeletionID(id string) Deletion {
	switch {
	case strings.HasPrefix(id, pauseAfterPrefix),
		strings.HasPrefix(id, pauseBeforePrefix),
		strings.HasPrefix(id, pauseLegacyPrefix):
		return Deletion{Kind: KindPause, Ref: id}
	case strings.HasPrefix(id, silencePrefix):
		return Deletion{Kind: KindSilence, Ref: id}
	default:
		return Deletion{Kind: KindWord, Ref: id}
	}
}

// InterWordPauseDeleted checks the pause between two adjacent words against
// both id generations.
func InterWordPauseDeleted(deleted StringSet, clipIndex int, before, after Word) bool {
	return deleted.HasAny(
		PauseAfterID(before.ID),
		LegacyPauseID(clipIndex, before.ID, after.ID),
	)
}

// LeadingPauseDeleted checks a clip's leading pause against both id forms.
func LeadingPauseDeleted(deleted StringSet, clipIndex int) bool {
	return deleted.HasAny(LeadingPauseID(clipIndex), LegacyLeadingPauseID(clipIndex))
}

// TrailingPauseDeleted checks the pause after a clip's last word.
func TrailingPauseDeleted(deleted StringSet, lastWord Word) bool {
	return deleted.Has(PauseAfterID(lastWord.ID))
}
