package entity

import "time"

// Summary holds the derived statistics rendered on the dashboard: the
// all-time balance plus figures for the month containing the reference time.
type Summary struct {
	Balance           string // all-time income minus expense
	MonthIncome       string // income in the reference month
	MonthExpense      string // expense in the reference month
	MonthRemaining    string // MonthIncome minus MonthExpense
	EstimatedDaysLeft *int   // days the remainder lasts at the month's average daily spend
}

// MonthKey formats a time as the "YYYY-MM" prefix used to bucket
// transactions by month
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ComputeSummary aggregates the given transactions into a Summary relative
// to now. The estimate is nil when the month has no spend or the remainder
// is non-positive.
func ComputeSummary(transactions []*Transaction, now time.Time) *Summary {
	monthKey := MonthKey(now)

	var totalIncome, totalExpense int64
	var monthIncome, monthExpense int64

	for _, txn := range transactions {
		if txn.IsIncome() {
			totalIncome += txn.AmountInCents
			if txn.InMonth(monthKey) {
				monthIncome += txn.AmountInCents
			}
		} else {
			totalExpense += txn.AmountInCents
			if txn.InMonth(monthKey) {
				monthExpense += txn.AmountInCents
			}
		}
	}

	remaining := monthIncome - monthExpense

	summary := &Summary{
		Balance:        AmountInCentsToString(totalIncome - totalExpense),
		MonthIncome:    AmountInCentsToString(monthIncome),
		MonthExpense:   AmountInCentsToString(monthExpense),
		MonthRemaining: AmountInCentsToString(remaining),
	}

	if monthExpense > 0 && remaining > 0 {
		daysPassed := int64(now.Day())
		averageDaily := monthExpense / daysPassed
		if averageDaily > 0 {
			days := int(remaining / averageDaily)
			summary.EstimatedDaysLeft = &days
		}
	}

	return summary
}
