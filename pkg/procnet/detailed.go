package procnet

// TCPStats mirrors the "TCP:" line.
type TCPStats struct {
	InUse     string `json:"inuse"`
	Orphan    string `json:"orphan"`
	TimeWait  string `json:"time_wait"`
	Allocated string `json:"allocated"`
	Memory    string `json:"memory"`
}

// UDPStats mirrors the "UDP:" line.
type UDPStats struct {
	InUse  string `json:"inuse"`
	Memory string `json:"memory"`
}

// InUseStats covers protocols that only report an in-use count.
type InUseStats struct {
	InUse string `json:"inuse"`
}

// FragStats mirrors the "FRAG:" line.
type FragStats struct {
	InUse  string `json:"inuse"`
	Memory string `json:"memory"`
}

// DetailedReport is every counter of /proc/net/sockstat, grouped by protocol.
// Values are strings so absent counters can carry NotAvailable.
type DetailedReport struct {
	SocketsUsed string     `json:"SocketsUsed"`
	TCP         TCPStats   `json:"TCP"`
	UDP         UDPStats   `json:"UDP"`
	UDPLite     InUseStats `json:"UDPLITE"`
	RAW         InUseStats `json:"RAW"`
	FRAG        FragStats  `json:"FRAG"`
}

// ReadDetailed reads the sockstat file once and builds the full report from
// it. Read errors and empty content are reported as by Read.
func (s *Source) ReadDetailed() (*DetailedReport, error) {
	snap, err := s.Read()
	if err != nil {
		return nil, err
	}
	return NewDetailedReport(snap), nil
}

// NewDetailedReport takes every counter by its token position, e.g. the
// orphan count is the 5th token of "TCP: inuse 7 orphan 0 tw 1 alloc 9 mem 2".
// Missing lines or short ones yield NotAvailable, never an error.
func NewDetailedReport(snap *Snapshot) *DetailedReport {
	return &DetailedReport{
		SocketsUsed: nthToken(snap, "sockets:", 3),
		TCP: TCPStats{
			InUse:     nthToken(snap, "TCP:", 3),
			Orphan:    nthToken(snap, "TCP:", 5),
			TimeWait:  nthToken(snap, "TCP:", 7),
			Allocated: nthToken(snap, "TCP:", 9),
			Memory:    nthToken(snap, "TCP:", 11),
		},
		UDP: UDPStats{
			InUse:  nthToken(snap, "UDP:", 3),
			Memory: nthToken(snap, "UDP:", 5),
		},
		UDPLite: InUseStats{InUse: nthToken(snap, "UDPLITE:", 3)},
		RAW:     InUseStats{InUse: nthToken(snap, "RAW:", 3)},
		FRAG: FragStats{
			InUse:  nthToken(snap, "FRAG:", 3),
			Memory: nthToken(snap, "FRAG:", 5),
		},
	}
}
