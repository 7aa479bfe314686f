package ledger

// currentWindow computes the window start that applies at now and whether
// the record's window has lapsed.
//
// Fixed windows are epoch-aligned: the boundary is now - (now mod period).
// Rolling windows are anchored to the record's last accepted transfer, so
// two transfers exactly one period apart never share a window.
func currentWindow(rolling bool, period, recStart, now int64) (start int64, expired bool) {
	if rolling {
		if now-recStart >= period {
			return now, true
		}
		return recStart, false
	}
	cur := now - now%period
	if recStart < cur {
		return cur, true
	}
	return recStart, false
}
