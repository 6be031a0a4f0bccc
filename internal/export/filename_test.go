package export

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2023, 10, 28, 10, 30, 15, 0, time.UTC)
}

func TestNamer_Filename_FixedClock(t *testing.T) {
	n := NewNamerWithClock("", fixedClock)

	assert.Equal(t, "export_data_2023-10-28_10-30-15.csv", n.Filename("csv"))
	assert.Equal(t, "export_data_2023-10-28_10-30-15.json", n.Filename("json"))
}

func TestNamer_Filename_Pattern(t *testing.T) {
	n := NewNamer("")

	got := n.Filename("csv")
	assert.Regexp(t, regexp.MustCompile(`^export_data_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.csv$`), got)
}

func TestNamer_Filename_CustomPrefix(t *testing.T) {
	n := NewNamerWithClock("failed_logins", fixedClock)

	assert.Equal(t, "failed_logins_2023-10-28_10-30-15.json", n.Filename("json"))
}

func TestNamer_Filename_ExtensionVerbatim(t *testing.T) {
	// The extension is concatenated as given; no validation is applied.
	n := NewNamerWithClock("", fixedClock)

	assert.Equal(t, "export_data_2023-10-28_10-30-15.tar.gz", n.Filename("tar.gz"))
}
