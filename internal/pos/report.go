package pos

import (
	"time"

	"github.com/minipos/minipos/internal/models"
)

// Period selects the reporting window, measured back from the caller's clock.
type Period string

const (
	PeriodToday Period = "today"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Granularity selects the calendar bucket size for grouping.
type Granularity string

const (
	GroupByDay   Granularity = "day"
	GroupByMonth Granularity = "month"
	GroupByYear  Granularity = "year"
)

// Summary holds aggregate totals over a set of sales.
type Summary struct {
	Revenue       float64 `json:"revenue"`
	Transactions  int     `json:"transactions"`
	UnitsSold     int     `json:"units_sold"`
	AverageTicket float64 `json:"average_ticket"`
}

// Bucket groups the sales sharing one calendar label.
type Bucket struct {
	Label   string        `json:"label"`
	Sales   []models.Sale `json:"sales"`
	Summary Summary       `json:"summary"`
}

// Report is the reporting projection for one period and granularity choice.
type Report struct {
	Buckets []Bucket `json:"buckets"`
	Summary Summary  `json:"summary"`
}

// FilterByPeriod returns the sales whose timestamp falls within
// [period start, now], preserving input order. PeriodAll returns everything
// unfiltered. Period starts use the local calendar of now.
func FilterByPeriod(sales []models.Sale, p Period, now time.Time) []models.Sale {
	var start time.Time
	switch p {
	case PeriodToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		out := make([]models.Sale, len(sales))
		copy(out, sales)
		return out
	}

	var out []models.Sale
	for _, s := range sales {
		if !s.Date.Before(start) && !s.Date.After(now) {
			out = append(out, s)
		}
	}
	return out
}

func bucketLabel(d time.Time, g Granularity) string {
	switch g {
	case GroupByMonth:
		return d.Format("January 2006")
	case GroupByYear:
		return d.Format("2006")
	default:
		return d.Format("Monday, January 2, 2006")
	}
}

// GroupSales partitions sales into calendar buckets at the given granularity.
// Bucket order follows the first occurrence of each label in the input, so a
// newest-first ledger yields newest-first buckets without re-sorting.
func GroupSales(sales []models.Sale, g Granularity) []Bucket {
	index := make(map[string]int)
	var buckets []Bucket
	for _, s := range sales {
		label := bucketLabel(s.Date, g)
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, Bucket{Label: label})
		}
		buckets[i].Sales = append(buckets[i].Sales, s)
	}
	for i := range buckets {
		buckets[i].Summary = Summarize(buckets[i].Sales)
	}
	return buckets
}

// Summarize computes revenue, transaction count, units sold and average
// ticket over a set of sales. The average is zero when there are no sales.
func Summarize(sales []models.Sale) Summary {
	var sum Summary
	for _, s := range sales {
		sum.Revenue += s.Total
		sum.Transactions++
		for _, it := range s.Items {
			sum.UnitsSold += it.Quantity
		}
	}
	if sum.Transactions > 0 {
		sum.AverageTicket = sum.Revenue / float64(sum.Transactions)
	}
	return sum
}

// BuildReport filters the ledger by period, groups the result and attaches
// the overall summary. Recomputed on demand, nothing is cached.
func BuildReport(sales []models.Sale, p Period, g Granularity, now time.Time) Report {
	filtered := FilterByPeriod(sales, p, now)
	return Report{
		Buckets: GroupSales(filtered, g),
		Summary: Summarize(filtered),
	}
}
