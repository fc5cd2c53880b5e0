package journal

// Session bounds in seconds from midnight, local wall clock. The intraday
// session is a fixed property of the analyzed market, not a user setting.
const (
	sessionStartSeconds = (15*60 + 30) * 60 // 15:30:00
	sessionEndSeconds   = 22 * 60 * 60      // 22:00:00
)

// FilterSession keeps only records whose open time falls inside the trading
// session, both bounds inclusive at second granularity. No timezone
// conversion: timestamps are compared as exported.
func FilterSession(records []TradeRecord) []TradeRecord {
	kept := make([]TradeRecord, 0, len(records))
	for _, r := range records {
		seconds := r.OpenTime.Hour()*3600 + r.OpenTime.Minute()*60 + r.OpenTime.Second()
		if seconds >= sessionStartSeconds && seconds <= sessionEndSeconds {
			kept = append(kept, r)
		}
	}
	return kept
}
