package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	yearOnlyRegex = regexp.MustCompile(`\b(20\d{2})\b`)
)

// IsRecentPosting reports whether a feed item's published date is fresh
// enough to bother fetching (<= 60 days old). Unparseable or absent dates
// pass, the page itself decides later.
func IsRecentPosting(dateStr string) bool {
	if dateStr == "" || dateStr == "N/A" || dateStr == "Recent" {
		return true
	}

	now := time.Now()

	//Case 1: ISO format "2026-01-27" or 2026-01-27T...
	if isoDateRegex.MatchString(dateStr) {
		jobDate, err := time.Parse("2006-01-02", dateStr[:10])
		if err == nil {
			return isWithin60Days(now, jobDate)
		}
	}

	//case 2: RFC1123-style feed dates ("Mon, 02 Jan 2026 15:04:05 GMT")
	for _, layout := range []string{time.RFC1123, time.RFC1123Z, time.RFC822, time.RFC822Z} {
		if jobDate, err := time.Parse(layout, dateStr); err == nil {
			return isWithin60Days(now, jobDate)
		}
	}

	//case 3: dd/mm/yyyy
	if strings.Contains(dateStr, "/") {
		parts := strings.Split(dateStr, "/")
		if len(parts) >= 3 {
			day, _ := strconv.Atoi(parts[0])
			month, _ := strconv.Atoi(parts[1])
			year, _ := strconv.Atoi(parts[2])
			jobDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			return isWithin60Days(now, jobDate)
		}
	}

	//case 4: year only fallback
	if match := yearOnlyRegex.FindStringSubmatch(dateStr); match != nil {
		year, _ := strconv.Atoi(match[1])
		return year == now.Year() || year == now.Year()-1
	}

	//default
	return true
}

func isWithin60Days(now, jobDate time.Time) bool {
	diff := now.Sub(jobDate)
	//reject if older than 60 days
	if diff > 60*24*time.Hour {
		return false
	}

	//reject if future date >2 days (timezone issues)
	if diff < -2*24*time.Hour {
		return false
	}
	return true
}
