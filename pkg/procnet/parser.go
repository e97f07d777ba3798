package procnet

import (
	"bufio"
	"strings"
)

// NotAvailable is the value of a field missing from the snapshot.
const NotAvailable = "N/A"

// Fields holds the headline counters of /proc/net/sockstat.
type Fields struct {
	SocketsUsed string `json:"SocketsUsed"`
	TCPInUse    string `json:"TCPInUse"`
	UDPInUse    string `json:"UDPInUse"`
}

// ExtractFields pulls the third token of the first "sockets:", "TCP:" and
// "UDP:" line, i.e. the N in "sockets: used N" and "TCP: inuse N ...". The
// position is fixed; a missing line or a short one yields NotAvailable.
func ExtractFields(snap *Snapshot) Fields {
	return Fields{
		SocketsUsed: nthToken(snap, "sockets:", 3),
		TCPInUse:    nthToken(snap, "TCP:", 3),
		UDPInUse:    nthToken(snap, "UDP:", 3),
	}
}

// nthToken returns the n-th (1-based) whitespace token of the first line
// starting with prefix.
func nthToken(snap *Snapshot, prefix string, n int) string {
	for _, line := range snap.lines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		wordscanner := bufio.NewScanner(strings.NewReader(line))
		wordscanner.Split(bufio.ScanWords)
		for i := 1; wordscanner.Scan(); i++ {
			if i == n {
				return wordscanner.Text()
			}
		}
		return NotAvailable
	}
	return NotAvailable
}
