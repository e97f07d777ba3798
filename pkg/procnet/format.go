package procnet

import (
	"encoding/json"
)

const indent = "    "

// FormatRaw returns the snapshot text as captured.
func FormatRaw(snap *Snapshot) string {
	return snap.Text()
}

// FormatStructured renders v (Fields or a DetailedReport) as indented JSON.
func FormatStructured(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
