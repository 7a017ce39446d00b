// Package daterange computes the [now - N days, now] windows sent to the market data providers.
package daterange

import "time"

// DateLayout はニュース・ティックAPIが要求する日付フォーマットです。
const DateLayout = "2006-01-02"

// Day は1日の長さです。Unix範囲の計算に使用します。
const Day = 24 * time.Hour

// Dates は now から days 日前までの範囲を YYYY-MM-DD 形式で返します。
// from は暦日で days 日前になります。
func Dates(now time.Time, days int) (from, to string) {
	return now.AddDate(0, 0, -days).Format(DateLayout), now.Format(DateLayout)
}

// Unix は now から days 日前までの範囲をUnix秒で返します。
// to - from は常に days*86400 です。
func Unix(now time.Time, days int) (from, to int64) {
	to = now.Unix()
	from = now.Add(-time.Duration(days) * Day).Unix()
	return from, to
}

// Today は now の日付を YYYY-MM-DD 形式で返します。
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
