package badger

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/mmwithiga/tarumbeta/core"
	"golang.org/x/text/cases"
)

// Key prefixes for different data types. Each ends in a separator so no
// prefix is a prefix of another.
const (
	candidatePrefix           = "cand:"
	candidateInstrumentPrefix = "candinst:"
	candidateNamePrefix       = "candname:"
	candidateProfilePrefix    = "candpid:"
	candidateIDSeq            = "candseq"
	matchLogPrefix            = "mlog:"
	matchLogLearnerPrefix     = "mlogl:"
	matchLogIDSeq             = "mlogseq"
	bundlePrefix              = "bundle:"
	currentBundleKey          = "bundlecur"
)

// foldKey normalizes user-facing strings used inside index keys.
func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// makeCandidateKey generates a key for a candidate by ID.
// IDs are big-endian so a prefix scan yields insertion order.
func makeCandidateKey(id core.ID) []byte {
	return appendID([]byte(candidatePrefix), id)
}

// makeCandidateInstrumentKey generates a composite key for the instrument index.
// Format: prefix folded-instrument 0x00 id
func makeCandidateInstrumentKey(instrument string, id core.ID) []byte {
	return appendID(makePartialInstrumentKey(instrument), id)
}

// makePartialInstrumentKey generates a partial key for instrument queries.
func makePartialInstrumentKey(instrument string) []byte {
	key := []byte(candidateInstrumentPrefix + foldKey(instrument))
	return append(key, 0)
}

// makeCandidateNameKey generates a composite key for the live name index.
// Format: prefix folded-name 0x00 id
func makeCandidateNameKey(name string, id core.ID) []byte {
	return appendID(makePartialNameKey(name), id)
}

// makePartialNameKey generates a partial key for name lookups.
func makePartialNameKey(name string) []byte {
	key := []byte(candidateNamePrefix + foldKey(name))
	return append(key, 0)
}

// makeCandidateProfileKey generates a key for the profile id index.
func makeCandidateProfileKey(profileID string) []byte {
	return []byte(candidateProfilePrefix + profileID)
}

// makeMatchLogKey generates a key for a match log entry by ID.
func makeMatchLogKey(id core.ID) []byte {
	return appendID([]byte(matchLogPrefix), id)
}

// makeMatchLogLearnerKey generates a composite key for the learner index.
// Format: prefix learner 0x00 created id
func makeMatchLogLearnerKey(learnerID string, created time.Time, id core.ID) []byte {
	key := makePartialLearnerKey(learnerID)
	key = binary.BigEndian.AppendUint64(key, uint64(created.UnixMicro()))
	return appendID(key, id)
}

// makePartialLearnerKey generates a partial key for a learner's entries.
func makePartialLearnerKey(learnerID string) []byte {
	key := []byte(matchLogLearnerPrefix + learnerID)
	return append(key, 0)
}

// makeBundleKey generates a key for an artifact bundle by version.
func makeBundleKey(version string) []byte {
	return []byte(fmt.Sprintf("%s%s", bundlePrefix, version))
}

func appendID(key []byte, id core.ID) []byte {
	return binary.BigEndian.AppendUint64(key, uint64(id))
}

// prefixEnd returns a key greater than every index key with prefix, used to
// seek reverse iterators.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	return append(end, bytes.Repeat([]byte{0xff}, 24)...)
}
