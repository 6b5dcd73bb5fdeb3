package observations

import (
	"fmt"
	"time"

	"github.com/gobwas/glob"
)

const (
	idPrefix      = "obs"
	idDateLayout  = "20060102"
	dateLayout    = "2006-01-02"
	idSuffixWidth = 3
)

// GenerateID returns the next observation ID for the day of now:
// obs-<YYYYMMDD>-<NNN>, numbered one past the count of existing IDs
// from that same day.
//
// Only IDs currently present are counted, so removing an earlier record
// of the day can make the next ID collide with a surviving one.
func GenerateID(existing []Observation, now time.Time) string {
	day := now.Format(idDateLayout)
	sameDay := glob.MustCompile(fmt.Sprintf("%s-%s-*", idPrefix, day))

	count := 0
	for _, o := range existing {
		if sameDay.Match(o.ID) {
			count++
		}
	}
	return fmt.Sprintf("%s-%s-%0*d", idPrefix, day, idSuffixWidth, count+1)
}
